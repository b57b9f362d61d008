package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojin/team-task-service/internal/domain"
)

func TestSubTaskCreateUnderMissingTask(t *testing.T) {
	store := newMemStore()
	_, subtasks := newTestServices(store)

	_, err := subtasks.Create(context.Background(), uuid.New(), "Danbie")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSubTaskCreateDefaults(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	st, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)
	assert.Equal(t, task.ID, st.TaskID)
	assert.False(t, st.IsCompleted)
	assert.Nil(t, st.CompletedAt)

	_, err = subtasks.Create(ctx, task.ID, "NoSuchTeam")
	require.Error(t, err)
}

func TestCompletionPropagation(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	var created []*domain.SubTask
	for i := 0; i < 3; i++ {
		st, err := subtasks.Create(ctx, task.ID, "Danbie")
		require.NoError(t, err)
		created = append(created, st)
	}

	// Пока есть незавершенные подзадачи, родитель не трогается
	for _, st := range created[:2] {
		_, err := subtasks.Complete(ctx, alice.Team, st.ID)
		require.NoError(t, err)

		parent, err := tasks.Get(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.False(t, parent.IsCompleted)
		assert.Nil(t, parent.CompletedAt)
	}

	// Завершение последней подзадачи завершает родителя
	_, err = subtasks.Complete(ctx, alice.Team, created[2].ID)
	require.NoError(t, err)

	parent, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, parent.IsCompleted)
	require.NotNil(t, parent.CompletedAt)
	completedAt := *parent.CompletedAt

	// Повторное завершение идемпотентно, родитель остается завершенным
	_, err = subtasks.Complete(ctx, alice.Team, created[2].ID)
	require.NoError(t, err)

	parent, err = tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, parent.IsCompleted)
	assert.Equal(t, completedAt, *parent.CompletedAt, "propagation does not rewrite a completed task")
}

func TestPropagationViaUpdate(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	st, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)

	done := true
	updated, err := subtasks.Update(ctx, alice.Team, st.ID, SubTaskUpdate{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletedAt)

	parent, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, parent.IsCompleted, "update save triggers propagation")
}

func TestPropagationIsMonotonic(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	st, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)

	_, err = subtasks.Complete(ctx, alice.Team, st.ID)
	require.NoError(t, err)

	// Отмена завершения подзадачи не снимает флаг с родителя
	notDone := false
	_, err = subtasks.Update(ctx, alice.Team, st.ID, SubTaskUpdate{IsCompleted: &notDone})
	require.NoError(t, err)

	parent, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, parent.IsCompleted, "rule never un-completes the parent")
}

func TestZeroSubTasksNeverAutoCompletes(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	other, err := tasks.Create(ctx, alice.ID, "other", "c", "Danbie")
	require.NoError(t, err)

	// Завершение подзадачи другой задачи не влияет на задачу без подзадач
	st, err := subtasks.Create(ctx, other.ID, "Danbie")
	require.NoError(t, err)
	_, err = subtasks.Complete(ctx, alice.Team, st.ID)
	require.NoError(t, err)

	parent, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, parent.IsCompleted)
}

func TestSubTaskDelete(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	st, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)

	// Чужая команда не может удалять
	assert.ErrorIs(t, subtasks.Delete(ctx, domain.TeamSupi, st.ID), domain.ErrPermissionDenied)

	// Завершенную подзадачу удалить нельзя
	_, err = subtasks.Complete(ctx, alice.Team, st.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, subtasks.Delete(ctx, alice.Team, st.ID), domain.ErrCompletedSubTask)

	// Незавершенную можно
	st2, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)
	require.NoError(t, subtasks.Delete(ctx, alice.Team, st2.ID))

	_, err = subtasks.Get(ctx, st2.ID)
	assert.ErrorIs(t, err, domain.ErrSubTaskNotFound)
}

func TestSubTaskCompleteRequiresTeam(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	st, err := subtasks.Create(ctx, task.ID, "Danbie")
	require.NoError(t, err)

	_, err = subtasks.Complete(ctx, domain.TeamSupi, st.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = subtasks.Update(ctx, domain.TeamSupi, st.ID, SubTaskUpdate{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestSubTaskListPagination(t *testing.T) {
	store := newMemStore()
	tasks, subtasks := newTestServices(store)
	alice := seedUser(t, store, "alice", domain.TeamDanbie)
	ctx := context.Background()

	task, err := tasks.Create(ctx, alice.ID, "t", "c", "Danbie")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		_, err := subtasks.Create(ctx, task.ID, "Danbie")
		require.NoError(t, err)
	}

	for page := 1; page <= 3; page++ {
		items, total, err := subtasks.List(ctx, alice.Team, page)
		require.NoError(t, err)
		assert.Equal(t, 30, total)
		assert.Len(t, items, PageSize)
	}

	// Чужая команда не видит этих подзадач
	items, total, err := subtasks.List(ctx, domain.TeamSupi, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
