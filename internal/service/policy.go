package service

import (
	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
)

// Object-level authorization rules. One typed function per entity kind,
// applied after the not-found check on mutating operations.

// AuthorizeTask allows the operation only for the task's creator
func AuthorizeTask(callerID uuid.UUID, task *domain.Task) error {
	if !task.IsCreatedBy(callerID) {
		return domain.ErrPermissionDenied
	}
	return nil
}

// AuthorizeSubTask allows the operation only for members of the subtask's team
func AuthorizeSubTask(callerTeam domain.Team, subtask *domain.SubTask) error {
	if callerTeam != subtask.Team {
		return domain.ErrPermissionDenied
	}
	return nil
}
