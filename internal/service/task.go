package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/repository"
)

// PageSize is the fixed page size of all list endpoints
const PageSize = 10

// TaskService handles business logic for tasks
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// Create validates and persists a new task owned by the caller
func (s *TaskService) Create(ctx context.Context, callerID uuid.UUID, title, content, team string) (*domain.Task, error) {
	parsedTeam, err := validateTaskFields(title, content, team)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:           uuid.New(),
		CreateUserID: callerID,
		Title:        title,
		Content:      content,
		Team:         parsedTeam,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get returns a task with its subtasks; only the creator may read the detail view
func (s *TaskService) Get(ctx context.Context, callerID, taskID uuid.UUID) (*domain.TaskDetail, error) {
	detail, err := s.taskRepo.GetDetail(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeTask(callerID, &detail.Task); err != nil {
		return nil, err
	}

	return detail, nil
}

// List returns one page of tasks visible to the caller's team, newest first
func (s *TaskService) List(ctx context.Context, callerTeam domain.Team, page int) ([]*domain.Task, int, error) {
	if page < 1 {
		page = 1
	}

	return s.taskRepo.ListVisible(ctx, callerTeam, PageSize, (page-1)*PageSize)
}

// TaskUpdate holds the client-writable task fields; nil means keep as is
type TaskUpdate struct {
	Title   *string
	Content *string
	Team    *string
}

// Update replaces title/content/team of the caller's own task
func (s *TaskService) Update(ctx context.Context, callerID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeTask(callerID, task); err != nil {
		return nil, err
	}

	title := task.Title
	content := task.Content
	team := string(task.Team)
	if update.Title != nil {
		title = *update.Title
	}
	if update.Content != nil {
		content = *update.Content
	}
	if update.Team != nil {
		team = *update.Team
	}

	parsedTeam, err := validateTaskFields(title, content, team)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Content = content
	task.Team = parsedTeam

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the caller's own task together with its subtasks
func (s *TaskService) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := AuthorizeTask(callerID, task); err != nil {
		return err
	}

	return s.taskRepo.Delete(ctx, taskID)
}

// Complete marks the caller's own task as completed (idempotent)
func (s *TaskService) Complete(ctx context.Context, callerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeTask(callerID, task); err != nil {
		return nil, err
	}

	return s.taskRepo.Complete(ctx, taskID)
}

func validateTaskFields(title, content, team string) (domain.Team, error) {
	if title == "" {
		return "", domain.NewValidationError("title", "must not be empty")
	}
	// Лимиты считаются в символах, не в байтах
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return "", domain.NewValidationError("title", fmt.Sprintf("must be at most %d characters", domain.MaxTitleLength))
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return "", domain.NewValidationError("content", fmt.Sprintf("must be at most %d characters", domain.MaxContentLength))
	}

	return domain.ParseTeam(team)
}
