package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/seojin/team-task-service/internal/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories,
// implementing repository.UserRepository, TaskRepository and SubTaskRepository
type memStore struct {
	users    map[uuid.UUID]*domain.User
	tasks    map[uuid.UUID]*domain.Task
	subtasks map[uuid.UUID]*domain.SubTask
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*domain.User),
		tasks:    make(map[uuid.UUID]*domain.Task),
		subtasks: make(map[uuid.UUID]*domain.SubTask),
		clock:    time.Now(),
	}
}

// now returns a strictly increasing timestamp so created_at ordering is stable
func (m *memStore) now() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *memStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}

	now := m.now()
	user.CreatedAt = now
	user.ModifiedAt = now
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memTaskRepo struct{ *memStore }

func (m memTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	if _, ok := m.users[task.CreateUserID]; !ok {
		return domain.ErrUserNotFound
	}

	now := m.now()
	task.IsCompleted = false
	task.CompletedAt = nil
	task.CreatedAt = now
	task.ModifiedAt = now
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m memTaskRepo) GetByID(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m memTaskRepo) GetDetail(ctx context.Context, taskID uuid.UUID) (*domain.TaskDetail, error) {
	task, err := m.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	subtasks := []*domain.SubTask{}
	for _, st := range m.subtasks {
		if st.TaskID == taskID {
			copied := *st
			subtasks = append(subtasks, &copied)
		}
	}
	sort.Slice(subtasks, func(i, j int) bool {
		return subtasks[i].CreatedAt.After(subtasks[j].CreatedAt)
	})

	return &domain.TaskDetail{Task: *task, SubTasks: subtasks}, nil
}

func (m memTaskRepo) ListVisible(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.Task, int, error) {
	visible := []*domain.Task{}
	for _, task := range m.tasks {
		if task.Team == team || m.hasSubTaskOfTeam(task.ID, team) {
			copied := *task
			visible = append(visible, &copied)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	total := len(visible)
	if offset >= total {
		return []*domain.Task{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return visible[offset:end], total, nil
}

func (m memTaskRepo) hasSubTaskOfTeam(taskID uuid.UUID, team domain.Team) bool {
	for _, st := range m.subtasks {
		if st.TaskID == taskID && st.Team == team {
			return true
		}
	}
	return false
}

func (m memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	stored, ok := m.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}

	stored.Title = task.Title
	stored.Content = task.Content
	stored.Team = task.Team
	stored.ModifiedAt = m.now()
	task.ModifiedAt = stored.ModifiedAt
	return nil
}

func (m memTaskRepo) Delete(ctx context.Context, taskID uuid.UUID) error {
	if _, ok := m.tasks[taskID]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.tasks, taskID)

	for id, st := range m.subtasks {
		if st.TaskID == taskID {
			delete(m.subtasks, id)
		}
	}
	return nil
}

func (m memTaskRepo) Complete(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	stored, ok := m.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	now := m.now()
	stored.IsCompleted = true
	stored.CompletedAt = &now
	stored.ModifiedAt = now
	copied := *stored
	return &copied, nil
}

func (m memTaskRepo) CompleteIfAllSubTasksDone(ctx context.Context, taskID uuid.UUID) (bool, error) {
	stored, ok := m.tasks[taskID]
	if !ok || stored.IsCompleted {
		return false, nil
	}

	total := 0
	for _, st := range m.subtasks {
		if st.TaskID != taskID {
			continue
		}
		if !st.IsCompleted {
			return false, nil
		}
		total++
	}
	if total == 0 {
		return false, nil
	}

	now := m.now()
	stored.IsCompleted = true
	stored.CompletedAt = &now
	stored.ModifiedAt = now
	return true, nil
}

func (m memTaskRepo) Exists(ctx context.Context, taskID uuid.UUID) (bool, error) {
	_, ok := m.tasks[taskID]
	return ok, nil
}

type memSubTaskRepo struct{ *memStore }

func (m memSubTaskRepo) Create(ctx context.Context, subtask *domain.SubTask) error {
	if _, ok := m.tasks[subtask.TaskID]; !ok {
		return domain.ErrTaskNotFound
	}

	now := m.now()
	subtask.IsCompleted = false
	subtask.CompletedAt = nil
	subtask.CreatedAt = now
	subtask.ModifiedAt = now
	stored := *subtask
	m.subtasks[subtask.ID] = &stored
	return nil
}

func (m memSubTaskRepo) GetByID(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error) {
	subtask, ok := m.subtasks[subtaskID]
	if !ok {
		return nil, domain.ErrSubTaskNotFound
	}
	copied := *subtask
	return &copied, nil
}

func (m memSubTaskRepo) ListByTeam(ctx context.Context, team domain.Team, limit, offset int) ([]*domain.SubTask, int, error) {
	matched := []*domain.SubTask{}
	for _, st := range m.subtasks {
		if st.Team == team {
			copied := *st
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*domain.SubTask{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m memSubTaskRepo) Update(ctx context.Context, subtask *domain.SubTask) error {
	stored, ok := m.subtasks[subtask.ID]
	if !ok {
		return domain.ErrSubTaskNotFound
	}

	stored.Team = subtask.Team
	stored.IsCompleted = subtask.IsCompleted
	stored.CompletedAt = subtask.CompletedAt
	stored.ModifiedAt = m.now()
	subtask.ModifiedAt = stored.ModifiedAt
	return nil
}

func (m memSubTaskRepo) Delete(ctx context.Context, subtaskID uuid.UUID) error {
	if _, ok := m.subtasks[subtaskID]; !ok {
		return domain.ErrSubTaskNotFound
	}
	delete(m.subtasks, subtaskID)
	return nil
}

func (m memSubTaskRepo) Complete(ctx context.Context, subtaskID uuid.UUID) (*domain.SubTask, error) {
	stored, ok := m.subtasks[subtaskID]
	if !ok {
		return nil, domain.ErrSubTaskNotFound
	}

	now := m.now()
	stored.IsCompleted = true
	stored.CompletedAt = &now
	stored.ModifiedAt = now
	copied := *stored
	return &copied, nil
}
