package domain

import (
	"time"

	"github.com/google/uuid"
)

// User представляет сотрудника
type User struct {
	ID           uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt-хэш, никогда не сериализуется
	Team         Team      `json:"team"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Ограничения полей пользователя
const (
	MaxUsernameLength = 150
)
