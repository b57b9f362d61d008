package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки сервиса
var (
	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound возвращается когда задача не найдена
	ErrTaskNotFound = errors.New("task not found")

	// ErrSubTaskNotFound возвращается когда подзадача не найдена
	ErrSubTaskNotFound = errors.New("subtask not found")

	// ErrUsernameTaken возвращается при попытке регистрации с занятым именем
	ErrUsernameTaken = errors.New("username already taken")

	// ErrWrongPassword возвращается когда пароль не совпадает с хэшем
	ErrWrongPassword = errors.New("wrong password")

	// ErrCompletedSubTask возвращается при попытке удалить завершённую подзадачу
	ErrCompletedSubTask = errors.New("cannot delete completed subtask")

	// ErrPermissionDenied возвращается когда у пользователя нет прав на операцию
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError описывает ошибку валидации конкретного поля
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError создает ошибку валидации поля
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// ErrorCode представляет машиночитаемые коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeValidation       ErrorCode = "VALIDATION_ERROR"
	CodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	CodeWrongPassword    ErrorCode = "WRONG_PASSWORD_ERROR"
	CodeCompletedSubTask ErrorCode = "COMPLETED_SUBTASK_ERROR"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeTaskNotFound     ErrorCode = "TASK_NOT_FOUND"
	CodeSubTaskNotFound  ErrorCode = "SUBTASK_NOT_FOUND"
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return CodeValidation
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrWrongPassword):
		return CodeWrongPassword
	case errors.Is(err, ErrCompletedSubTask):
		return CodeCompletedSubTask
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTaskNotFound):
		return CodeTaskNotFound
	case errors.Is(err, ErrSubTaskNotFound):
		return CodeSubTaskNotFound
	case errors.Is(err, ErrPermissionDenied):
		return CodePermissionDenied
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
