package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
	"github.com/seojin/team-task-service/internal/repository"
)

// SubTaskService handles business logic for subtasks, including the
// completion propagation to the parent task
type SubTaskService struct {
	subtaskRepo repository.SubTaskRepository
	taskRepo    repository.TaskRepository
	logger      *slog.Logger
}

// NewSubTaskService creates a new SubTaskService
func NewSubTaskService(subtaskRepo repository.SubTaskRepository, taskRepo repository.TaskRepository, logger *slog.Logger) *SubTaskService {
	return &SubTaskService{
		subtaskRepo: subtaskRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// Create persists a new subtask under an existing task
func (s *SubTaskService) Create(ctx context.Context, taskID uuid.UUID, team string) (*domain.SubTask, error) {
	exists, err := s.taskRepo.Exists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTaskNotFound
	}

	parsedTeam, err := domain.ParseTeam(team)
	if err != nil {
		return nil, err
	}

	subtask := &domain.SubTask{
		ID:     uuid.New(),
		TaskID: taskID,
		Team:   parsedTeam,
	}

	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, err
	}

	// A fresh subtask is incomplete, but the rule runs on every save
	s.onSubTaskSaved(ctx, subtask)

	return subtask, nil
}

// Get retrieves a subtask by ID
func (s *SubTaskService) Get(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error) {
	return s.subtaskRepo.GetByID(ctx, subtaskID)
}

// List returns one page of the caller's team subtasks, newest first
func (s *SubTaskService) List(ctx context.Context, callerTeam domain.Team, page int) ([]*domain.SubTask, int, error) {
	if page < 1 {
		page = 1
	}

	return s.subtaskRepo.ListByTeam(ctx, callerTeam, PageSize, (page-1)*PageSize)
}

// SubTaskUpdate holds the client-writable subtask fields; nil means keep as is
type SubTaskUpdate struct {
	Team        *string
	IsCompleted *bool
}

// Update replaces team and optionally the completion flag of a subtask
// belonging to the caller's team
func (s *SubTaskService) Update(ctx context.Context, callerTeam domain.Team, subtaskID uuid.UUID, update SubTaskUpdate) (*domain.SubTask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeSubTask(callerTeam, subtask); err != nil {
		return nil, err
	}

	if update.Team != nil {
		parsedTeam, err := domain.ParseTeam(*update.Team)
		if err != nil {
			return nil, err
		}
		subtask.Team = parsedTeam
	}

	if update.IsCompleted != nil && *update.IsCompleted != subtask.IsCompleted {
		subtask.IsCompleted = *update.IsCompleted
		if *update.IsCompleted {
			now := time.Now()
			subtask.CompletedAt = &now
		} else {
			subtask.CompletedAt = nil
		}
	}

	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, err
	}

	s.onSubTaskSaved(ctx, subtask)

	return subtask, nil
}

// Delete removes an incomplete subtask of the caller's team.
// Completed subtasks cannot be deleted. No propagation runs on delete.
func (s *SubTaskService) Delete(ctx context.Context, callerTeam domain.Team, subtaskID uuid.UUID) error {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return err
	}

	if err := AuthorizeSubTask(callerTeam, subtask); err != nil {
		return err
	}

	if subtask.IsCompleted {
		return domain.ErrCompletedSubTask
	}

	return s.subtaskRepo.Delete(ctx, subtaskID)
}

// Complete marks a subtask of the caller's team as completed (idempotent)
func (s *SubTaskService) Complete(ctx context.Context, callerTeam domain.Team, subtaskID uuid.UUID) (*domain.SubTask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeSubTask(callerTeam, subtask); err != nil {
		return nil, err
	}

	completed, err := s.subtaskRepo.Complete(ctx, subtaskID)
	if err != nil {
		return nil, err
	}

	s.onSubTaskSaved(ctx, completed)

	return completed, nil
}

// onSubTaskSaved runs the completion propagation rule after every
// successful subtask save. The rule is monotonic: it may only mark the
// parent task completed, never the other way around, and a task without
// subtasks is never touched.
func (s *SubTaskService) onSubTaskSaved(ctx context.Context, subtask *domain.SubTask) {
	completed, err := s.taskRepo.CompleteIfAllSubTasksDone(ctx, subtask.TaskID)
	if err != nil {
		// The subtask write already succeeded; the next save retries the rule
		s.logger.Error("completion propagation failed",
			"task_id", subtask.TaskID,
			"subtask_id", subtask.ID,
			"error", err,
		)
		return
	}

	if completed {
		s.logger.Info("task auto-completed",
			"task_id", subtask.TaskID,
			"subtask_id", subtask.ID,
		)
	}
}
