package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubTask представляет подзадачу, привязанную к родительской задаче.
// Удаляется каскадно вместе с родительской задачей.
type SubTask struct {
	ID          uuid.UUID  `json:"id"`
	TaskID      uuid.UUID  `json:"task_id"`
	Team        Team       `json:"team"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
}
