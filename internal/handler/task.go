package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/middleware"
	"github.com/seojin/team-task-service/internal/service"
)

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest представляет тело запроса для создания задачи
type CreateTaskRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Team    string `json:"team"`
}

// Create обрабатывает POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	callerID := middleware.GetUserIDFromContext(r.Context())

	task, err := h.taskService.Create(r.Context(), callerID, req.Title, req.Content, req.Team)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get обрабатывает GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrTaskNotFound)
		return
	}

	callerID := middleware.GetUserIDFromContext(r.Context())

	detail, err := h.taskService.Get(r.Context(), callerID, taskID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, detail)
}

// List обрабатывает GET /tasks?page=N
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r)
	callerTeam := middleware.GetTeamFromContext(r.Context())

	tasks, total, err := h.taskService.List(r.Context(), callerTeam, page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPaginatedResponse(r, total, page, service.PageSize, tasks))
}

// UpdateTaskRequest представляет тело запроса для изменения задачи.
// Отсутствующие поля не изменяются (PATCH); PUT присылает все поля.
type UpdateTaskRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Team    *string `json:"team"`
}

// Update обрабатывает PUT/PATCH /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrTaskNotFound)
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	callerID := middleware.GetUserIDFromContext(r.Context())

	task, err := h.taskService.Update(r.Context(), callerID, taskID, service.TaskUpdate{
		Title:   req.Title,
		Content: req.Content,
		Team:    req.Team,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete обрабатывает DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrTaskNotFound)
		return
	}

	callerID := middleware.GetUserIDFromContext(r.Context())

	if err := h.taskService.Delete(r.Context(), callerID, taskID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete обрабатывает PATCH /tasks/{id}/completion
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, domain.ErrTaskNotFound)
		return
	}

	callerID := middleware.GetUserIDFromContext(r.Context())

	task, err := h.taskService.Complete(r.Context(), callerID, taskID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// parsePage читает номер страницы из query-параметра page (по умолчанию 1)
func parsePage(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
