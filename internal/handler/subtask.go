package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/middleware"
	"github.com/seojin/team-task-service/internal/service"
)

// SubTaskHandler обрабатывает эндпоинты подзадач
type SubTaskHandler struct {
	subtaskService *service.SubTaskService
}

// NewSubTaskHandler создает новый SubTaskHandler
func NewSubTaskHandler(subtaskService *service.SubTaskService) *SubTaskHandler {
	return &SubTaskHandler{
		subtaskService: subtaskService,
	}
}

// CreateSubTaskRequest представляет тело запроса для создания подзадачи
type CreateSubTaskRequest struct {
	Team string `json:"team"`
}

// Create обрабатывает POST /tasks/{id}/subtasks
func (h *SubTaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrTaskNotFound)
		return
	}

	var req CreateSubTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	subtask, err := h.subtaskService.Create(r.Context(), taskID, req.Team)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, subtask)
}

// Get обрабатывает GET /subtasks/{id}
func (h *SubTaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	subtaskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrSubTaskNotFound)
		return
	}

	subtask, err := h.subtaskService.Get(r.Context(), subtaskID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, subtask)
}

// List обрабатывает GET /subtasks?page=N
func (h *SubTaskHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	callerTeam := middleware.GetTeamFromContext(r.Context())

	subtasks, total, err := h.subtaskService.List(r.Context(), callerTeam, page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPaginatedResponse(r, total, page, service.PageSize, subtasks))
}

// UpdateSubTaskRequest представляет тело запроса для изменения подзадачи.
// Отсутствующие поля не изменяются (PATCH); PUT присылает все поля.
type UpdateSubTaskRequest struct {
	Team        *string `json:"team"`
	IsCompleted *bool   `json:"is_completed"`
}

// Update обрабатывает PUT/PATCH /subtasks/{id}
func (h *SubTaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	subtaskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrSubTaskNotFound)
		return
	}

	var req UpdateSubTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	callerTeam := middleware.GetTeamFromContext(r.Context())

	subtask, err := h.subtaskService.Update(r.Context(), callerTeam, subtaskID, service.SubTaskUpdate{
		Team:        req.Team,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, subtask)
}

// Delete обрабатывает DELETE /subtasks/{id}
func (h *SubTaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subtaskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrSubTaskNotFound)
		return
	}

	callerTeam := middleware.GetTeamFromContext(r.Context())

	if err := h.subtaskService.Delete(r.Context(), callerTeam, subtaskID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete обрабатывает PATCH /subtasks/{id}/completion
func (h *SubTaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	subtaskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrSubTaskNotFound)
		return
	}

	callerTeam := middleware.GetTeamFromContext(r.Context())

	subtask, err := h.subtaskService.Complete(r.Context(), callerTeam, subtaskID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, subtask)
}
