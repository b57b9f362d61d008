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

const taskColumns = `id, create_user_id, title, content, team, is_completed, completed_at, created_at, modified_at`

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create создает новую задачу
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, create_user_id, title, content, team)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING is_completed, completed_at, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query,
		task.ID, task.CreateUserID, task.Title, task.Content, task.Team,
	).Scan(&task.IsCompleted, &task.CompletedAt, &task.CreatedAt, &task.ModifiedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrUserNotFound
		}
		return err
	}

	return nil
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	return scanTask(r.db.QueryRow(ctx, query, taskID))
}

// GetDetail получает задачу вместе с её подзадачами
func (r *TaskRepository) GetDetail(ctx context.Context, taskID uuid.UUID) (*domain.TaskDetail, error) {
	task, err := r.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, task_id, team, is_completed, completed_at, created_at, modified_at
		FROM subtasks
		WHERE task_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subtasks := []*domain.SubTask{}
	for rows.Next() {
		var st domain.SubTask
		if err := rows.Scan(
			&st.ID, &st.TaskID, &st.Team, &st.IsCompleted,
			&st.CompletedAt, &st.CreatedAt, &st.ModifiedAt,
		); err != nil {
			return nil, err
		}
		subtasks = append(subtasks, &st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.TaskDetail{Task: *task, SubTasks: subtasks}, nil
}

// ListVisible возвращает страницу задач, видимых команде: задача относится
// к команде либо имеет подзадачу этой команды
func (r *TaskRepository) ListVisible(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.Task, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM tasks t
		WHERE t.team = $1
		   OR EXISTS (SELECT 1 FROM subtasks st WHERE st.task_id = t.id AND st.team = $1)
	`

	var total int
	if err := r.db.QueryRow(ctx, countQuery, team).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT t.id, t.create_user_id, t.title, t.content, t.team,
		       t.is_completed, t.completed_at, t.created_at, t.modified_at
		FROM tasks t
		WHERE t.team = $1
		   OR EXISTS (SELECT 1 FROM subtasks st WHERE st.task_id = t.id AND st.team = $1)
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, team, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	return tasks, total, rows.Err()
}

// Update заменяет title/content/team задачи
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, content = $2, team = $3, modified_at = NOW()
		WHERE id = $4
		RETURNING modified_at
	`

	err := r.db.QueryRow(ctx, query, task.Title, task.Content, task.Team, task.ID).
		Scan(&task.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

// Delete удаляет задачу, подзадачи удаляются каскадно на уровне БД
func (r *TaskRepository) Delete(ctx context.Context, taskID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Complete помечает задачу завершенной (идемпотентная операция,
// completed_at обновляется при каждом вызове)
func (r *TaskRepository) Complete(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET is_completed = true, completed_at = NOW(), modified_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	return scanTask(r.db.QueryRow(ctx, query, taskID))
}

// CompleteIfAllSubTasksDone помечает задачу завершенной если у неё есть хотя бы
// одна подзадача и ни одна из них не осталась незавершенной. Одиночный UPDATE,
// поэтому гонка двух одновременных завершений схлопывается на уровне строки.
func (r *TaskRepository) CompleteIfAllSubTasksDone(ctx context.Context, taskID uuid.UUID) (bool, error) {
	query := `
		UPDATE tasks
		SET is_completed = true, completed_at = NOW(), modified_at = NOW()
		WHERE id = $1
		  AND is_completed = false
		  AND EXISTS (SELECT 1 FROM subtasks WHERE task_id = $1)
		  AND NOT EXISTS (SELECT 1 FROM subtasks WHERE task_id = $1 AND is_completed = false)
	`

	result, err := r.db.Exec(ctx, query, taskID)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

// Exists проверяет существование задачи
func (r *TaskRepository) Exists(ctx context.Context, taskID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, taskID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return exists, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	task, err := scanTaskRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func scanTaskRow(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.CreateUserID,
		&task.Title,
		&task.Content,
		&task.Team,
		&task.IsCompleted,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
