package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seojin/team-task-service/internal/domain"
)

const subtaskColumns = `id, task_id, team, is_completed, completed_at, created_at, modified_at`

// SubTaskRepository реализует repository.SubTaskRepository для PostgreSQL
type SubTaskRepository struct {
	db *pgxpool.Pool
}

// NewSubTaskRepository создает новый экземпляр SubTaskRepository
func NewSubTaskRepository(db *pgxpool.Pool) *SubTaskRepository {
	return &SubTaskRepository{db: db}
}

// Create создает новую подзадачу
func (r *SubTaskRepository) Create(ctx context.Context, subtask *domain.SubTask) error {
	query := `
		INSERT INTO subtasks (id, task_id, team)
		VALUES ($1, $2, $3)
		RETURNING is_completed, completed_at, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query, subtask.ID, subtask.TaskID, subtask.Team).
		Scan(&subtask.IsCompleted, &subtask.CompletedAt, &subtask.CreatedAt, &subtask.ModifiedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

// GetByID получает подзадачу по ID
func (r *SubTaskRepository) GetByID(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error) {
	query := `SELECT ` + subtaskColumns + ` FROM subtasks WHERE id = $1`

	return scanSubTask(r.db.QueryRow(ctx, query, subtaskID))
}

// ListByTeam возвращает страницу подзадач команды
func (r *SubTaskRepository) ListByTeam(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.SubTask, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subtasks WHERE team = $1`, team).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + subtaskColumns + `
		FROM subtasks
		WHERE team = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, team, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	subtasks := []*domain.SubTask{}
	for rows.Next() {
		subtask, err := scanSubTaskRow(rows)
		if err != nil {
			return nil, 0, err
		}
		subtasks = append(subtasks, subtask)
	}

	return subtasks, total, rows.Err()
}

// Update заменяет team/is_completed/completed_at подзадачи
func (r *SubTaskRepository) Update(ctx context.Context, subtask *domain.SubTask) error {
	query := `
		UPDATE subtasks
		SET team = $1, is_completed = $2, completed_at = $3, modified_at = NOW()
		WHERE id = $4
		RETURNING modified_at
	`

	err := r.db.QueryRow(ctx, query,
		subtask.Team, subtask.IsCompleted, subtask.CompletedAt, subtask.ID,
	).Scan(&subtask.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSubTaskNotFound
		}
		return err
	}

	return nil
}

// Delete удаляет подзадачу
func (r *SubTaskRepository) Delete(ctx context.Context, subtaskID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM subtasks WHERE id = $1`, subtaskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSubTaskNotFound
	}

	return nil
}

// Complete помечает подзадачу завершенной (идемпотентная операция)
func (r *SubTaskRepository) Complete(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error) {
	query := `
		UPDATE subtasks
		SET is_completed = true, completed_at = NOW(), modified_at = NOW()
		WHERE id = $1
		RETURNING ` + subtaskColumns

	return scanSubTask(r.db.QueryRow(ctx, query, subtaskID))
}

func scanSubTask(row pgx.Row) (*domain.SubTask, error) {
	subtask, err := scanSubTaskRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubTaskNotFound
		}
		return nil, err
	}
	return subtask, nil
}

func scanSubTaskRow(row pgx.Row) (*domain.SubTask, error) {
	var subtask domain.SubTask
	err := row.Scan(
		&subtask.ID,
		&subtask.TaskID,
		&subtask.Team,
		&subtask.IsCompleted,
		&subtask.CompletedAt,
		&subtask.CreatedAt,
		&subtask.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}
