package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/seojin/team-task-service/internal/domain"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит код и описание ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondWithError(w, r, http.StatusBadRequest, string(code), validationErr.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		RespondWithError(w, r, http.StatusBadRequest, string(code), "a user with that username already exists")
	case errors.Is(err, domain.ErrWrongPassword):
		RespondWithError(w, r, http.StatusBadRequest, string(code), "wrong password")
	case errors.Is(err, domain.ErrCompletedSubTask):
		RespondWithError(w, r, http.StatusBadRequest, string(code), "cannot delete a completed subtask")
	case errors.Is(err, domain.ErrUserNotFound):
		RespondWithError(w, r, http.StatusNotFound, string(code), "user not found")
	case errors.Is(err, domain.ErrTaskNotFound):
		RespondWithError(w, r, http.StatusNotFound, string(code), "task not found")
	case errors.Is(err, domain.ErrSubTaskNotFound):
		RespondWithError(w, r, http.StatusNotFound, string(code), "subtask not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		RespondWithError(w, r, http.StatusForbidden, string(code), "you do not have permission to perform this action")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "unauthorized")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}
