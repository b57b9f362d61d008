package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/seojin/team-task-service/internal/domain"
)

func TestAuthorizeTask(t *testing.T) {
	creator := uuid.New()
	task := &domain.Task{ID: uuid.New(), CreateUserID: creator}

	assert.NoError(t, AuthorizeTask(creator, task))
	assert.ErrorIs(t, AuthorizeTask(uuid.New(), task), domain.ErrPermissionDenied)
}

func TestAuthorizeSubTask(t *testing.T) {
	subtask := &domain.SubTask{ID: uuid.New(), Team: domain.TeamDanbie}

	assert.NoError(t, AuthorizeSubTask(domain.TeamDanbie, subtask))
	assert.ErrorIs(t, AuthorizeSubTask(domain.TeamSupi, subtask), domain.ErrPermissionDenied)
}
