package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ограничения полей задачи
const (
	MaxTitleLength   = 100
	MaxContentLength = 1000
)

// Task представляет задачу, принадлежащую создателю и видимую его команде
type Task struct {
	ID           uuid.UUID  `json:"id"`
	CreateUserID uuid.UUID  `json:"create_user_id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Team         Team       `json:"team"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	ModifiedAt   time.Time  `json:"modified_at"`
}

// TaskDetail представляет задачу вместе с её подзадачами (используется в детальном просмотре)
type TaskDetail struct {
	Task
	SubTasks []*SubTask `json:"subtasks"`
}

// IsCreatedBy проверяет, является ли пользователь создателем задачи
func (t *Task) IsCreatedBy(userID uuid.UUID) bool {
	return t.CreateUserID == userID
}
