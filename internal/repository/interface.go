package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetByUsername получает пользователя по имени
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create создает новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу по ID
	GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)

	// GetDetail получает задачу вместе с её подзадачами
	GetDetail(ctx context.Context, taskID uuid.UUID) (*domain.TaskDetail, error)

	// ListVisible возвращает страницу задач, видимых команде: задача
	// относится к команде либо имеет подзадачу этой команды.
	// Сортировка по времени создания по убыванию. Возвращает общее количество.
	ListVisible(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.Task, int, error)

	// Update заменяет title/content/team задачи
	Update(ctx context.Context, task *domain.Task) error

	// Delete удаляет задачу вместе с подзадачами (каскад)
	Delete(ctx context.Context, taskID uuid.UUID) error

	// Complete помечает задачу завершенной (идемпотентная операция,
	// completed_at обновляется при каждом вызове)
	Complete(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)

	// CompleteIfAllSubTasksDone помечает задачу завершенной если у неё есть
	// хотя бы одна подзадача и все подзадачи завершены. Уже завершенную
	// задачу не трогает. Возвращает true если задача была помечена.
	CompleteIfAllSubTasksDone(ctx context.Context, taskID uuid.UUID) (bool, error)

	// Exists проверяет существование задачи
	Exists(ctx context.Context, taskID uuid.UUID) (bool, error)
}

// SubTaskRepository определяет методы для работы с данными подзадач
type SubTaskRepository interface {
	// Create создает новую подзадачу
	Create(ctx context.Context, subtask *domain.SubTask) error

	// GetByID получает подзадачу по ID
	GetByID(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error)

	// ListByTeam возвращает страницу подзадач команды, сортировка по времени
	// создания по убыванию. Возвращает общее количество.
	ListByTeam(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.SubTask, int, error)

	// Update заменяет team/is_completed/completed_at подзадачи
	Update(ctx context.Context, subtask *domain.SubTask) error

	// Delete удаляет подзадачу
	Delete(ctx context.Context, subtaskID uuid.UUID) error

	// Complete помечает подзадачу завершенной (идемпотентная операция)
	Complete(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error)
}
