package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/repository"
)

// fakeTaskRepo is an in-memory TaskRepository with the same conditional
// update semantics as the postgres implementation: mutations hold the
// lock for check and write together and return (nil, nil) on a miss.
type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int
	tasks  map[int]*entity.VolunteerTask
}

var _ repository.TaskRepository = (*fakeTaskRepo)(nil)

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: make(map[int]*entity.VolunteerTask)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entity.VolunteerTask) (*entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *task
	stored.ID = r.nextID
	r.nextID++
	stored.Status = entity.StatusOpen
	stored.Volunteers = []int{}
	stored.CreatedAt = time.Now()
	r.tasks[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id int) (*entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	out := *task
	out.Volunteers = append([]int(nil), task.Volunteers...)
	return &out, nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []entity.VolunteerTask
	for _, task := range r.tasks {
		out := *task
		out.Volunteers = append([]int(nil), task.Volunteers...)
		tasks = append(tasks, out)
	}
	return tasks, nil
}

func (r *fakeTaskRepo) AddVolunteer(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, nil
	}
	if task.Status != entity.StatusOpen && task.Status != entity.StatusInProgress {
		return nil, nil
	}
	if task.HasVolunteer(userID) {
		return nil, nil
	}
	if len(task.Volunteers) >= task.MaxVolunteers {
		return nil, nil
	}

	task.Volunteers = append(task.Volunteers, userID)
	if task.Status == entity.StatusOpen {
		task.Status = entity.StatusInProgress
	}

	out := *task
	out.Volunteers = append([]int(nil), task.Volunteers...)
	return &out, nil
}

func (r *fakeTaskRepo) Complete(ctx context.Context, taskID int, actualHours *float64) (*entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return nil, nil
	}

	task.Status = entity.StatusCompleted
	now := time.Now()
	task.CompletedAt = &now
	hours := task.DurationHours
	if actualHours != nil {
		hours = *actualHours
	}
	task.ActualHours = &hours

	out := *task
	out.Volunteers = append([]int(nil), task.Volunteers...)
	return &out, nil
}

func (r *fakeTaskRepo) Cancel(ctx context.Context, taskID int) (*entity.VolunteerTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return nil, nil
	}

	task.Status = entity.StatusCancelled

	out := *task
	out.Volunteers = append([]int(nil), task.Volunteers...)
	return &out, nil
}

// fakeUserRepo resolves refs from a fixed map; other methods are unused
// by TaskService.
type fakeUserRepo struct {
	refs map[int]entity.UserRef
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetRefs(ctx context.Context, ids []int) (map[int]entity.UserRef, error) {
	out := make(map[int]entity.UserRef)
	for _, id := range ids {
		if ref, ok := r.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id int, name, phone string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) VerifyByToken(ctx context.Context, token string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, id int) error {
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error {
	return nil
}

func newTestService(taskRepo repository.TaskRepository) *TaskService {
	return NewTaskService(taskRepo, &fakeUserRepo{refs: map[int]entity.UserRef{}}, nopPublisher{}, zap.NewNop())
}

var authority = entity.AuthUser{ID: 100, Name: "Ops", Role: entity.RoleAuthority}

func createTask(t *testing.T, svc *TaskService, req entity.CreateTaskRequest) *entity.VolunteerTask {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), &req, authority)
	require.NoError(t, err)
	return task
}

func TestCreateTask_Defaults(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title:       "Sandbag the riverbank",
		Description: "North bank is overflowing",
		Location:    "Aluva",
	})

	assert.Equal(t, entity.StatusOpen, task.Status)
	assert.Equal(t, entity.PriorityMedium, task.Priority)
	assert.Equal(t, 1, task.MaxVolunteers)
	assert.Equal(t, "Not specified", task.EstimatedDuration)
	assert.Equal(t, 0.0, task.DurationHours)
	assert.Empty(t, task.Volunteers)
	assert.Equal(t, authority.ID, task.CreatedBy)
}

func TestCreateTask_ParsesDuration(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title:             "Clear debris",
		Description:       "Fallen trees on the access road",
		Location:          "Kalady",
		EstimatedDuration: "3.5 hours",
	})

	assert.Equal(t, 3.5, task.DurationHours)
}

func TestJoinTask_FullLifecycle(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title:         "Distribute water",
		Description:   "Relief camp supply run",
		Location:      "Chengannur",
		MaxVolunteers: 2,
	})

	joined, err := svc.JoinTask(ctx, task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, joined.Status)
	assert.Equal(t, []int{1}, joined.Volunteers)

	_, err = svc.JoinTask(ctx, task.ID, 1)
	assert.ErrorIs(t, err, entity.ErrAlreadyVolunteer)

	joined, err = svc.JoinTask(ctx, task.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, joined.Volunteers)

	_, err = svc.JoinTask(ctx, task.ID, 3)
	assert.ErrorIs(t, err, entity.ErrCapacityReached)
}

func TestJoinTask_NotFound(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())

	_, err := svc.JoinTask(context.Background(), 42, 1)
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}

func TestJoinTask_TerminalStates(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	completed := createTask(t, svc, entity.CreateTaskRequest{
		Title: "A", Description: "d", Location: "l",
	})
	_, err := svc.JoinTask(ctx, completed.ID, 1)
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, completed.ID, authority, nil)
	require.NoError(t, err)

	_, err = svc.JoinTask(ctx, completed.ID, 2)
	assert.ErrorIs(t, err, entity.ErrTaskUnavailable)

	cancelled := createTask(t, svc, entity.CreateTaskRequest{
		Title: "B", Description: "d", Location: "l",
	})
	_, err = svc.CancelTask(ctx, cancelled.ID, authority)
	require.NoError(t, err)

	_, err = svc.JoinTask(ctx, cancelled.ID, 2)
	assert.ErrorIs(t, err, entity.ErrTaskUnavailable)
}

// The capacity invariant must hold under concurrent joins racing for the
// last slot.
func TestJoinTask_ConcurrentCapacity(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Rescue boat crew", Description: "d", Location: "l",
		MaxVolunteers: 1,
	})

	const joiners = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes int

	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			if _, err := svc.JoinTask(ctx, task.ID, userID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i + 1)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)

	final, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, final.Volunteers, 1)
	assert.LessOrEqual(t, len(final.Volunteers), final.MaxVolunteers)
}

func TestCompleteTask_ActualHoursFallback(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Medical camp", Description: "d", Location: "l",
		EstimatedDuration: "2 hours",
	})
	_, err := svc.JoinTask(ctx, task.ID, 7)
	require.NoError(t, err)

	completed, err := svc.CompleteTask(ctx, task.ID, entity.AuthUser{ID: 7, Role: entity.RoleVolunteer}, nil)
	require.NoError(t, err)
	require.NotNil(t, completed.ActualHours)
	assert.Equal(t, 2.0, *completed.ActualHours)
	assert.NotNil(t, completed.CompletedAt)
}

func TestCompleteTask_ExplicitHours(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Shelter setup", Description: "d", Location: "l",
		EstimatedDuration: "2 hours",
	})
	_, err := svc.JoinTask(ctx, task.ID, 7)
	require.NoError(t, err)

	hours := 4.0
	completed, err := svc.CompleteTask(ctx, task.ID, authority, &hours)
	require.NoError(t, err)
	require.NotNil(t, completed.ActualHours)
	assert.Equal(t, 4.0, *completed.ActualHours)
}

func TestCompleteTask_Unauthorized(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Supply run", Description: "d", Location: "l",
	})
	_, err := svc.JoinTask(ctx, task.ID, 7)
	require.NoError(t, err)

	outsider := entity.AuthUser{ID: 99, Role: entity.RoleVolunteer}
	_, err = svc.CompleteTask(ctx, task.ID, outsider, nil)
	assert.ErrorIs(t, err, entity.ErrForbidden)
}

func TestCompleteTask_Idempotence(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Cleanup", Description: "d", Location: "l",
		EstimatedDuration: "1 hour",
	})
	_, err := svc.JoinTask(ctx, task.ID, 7)
	require.NoError(t, err)

	first, err := svc.CompleteTask(ctx, task.ID, authority, nil)
	require.NoError(t, err)

	_, err = svc.CompleteTask(ctx, task.ID, authority, nil)
	assert.ErrorIs(t, err, entity.ErrTaskCompleted)

	// Second attempt must not disturb the first completion's record.
	after, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.ActualHours, *after.ActualHours)
	assert.True(t, first.CompletedAt.Equal(*after.CompletedAt))
}

func TestCompleteTask_CancelledRejected(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Abandoned effort", Description: "d", Location: "l",
	})
	_, err := svc.CancelTask(ctx, task.ID, authority)
	require.NoError(t, err)

	_, err = svc.CompleteTask(ctx, task.ID, authority, nil)
	assert.ErrorIs(t, err, entity.ErrTaskCancelled)
}

func TestCancelTask_Terminal(t *testing.T) {
	svc := newTestService(newFakeTaskRepo())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Stood down", Description: "d", Location: "l",
	})

	cancelled, err := svc.CancelTask(ctx, task.ID, authority)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)

	_, err = svc.CancelTask(ctx, task.ID, authority)
	assert.ErrorIs(t, err, entity.ErrTaskCancelled)
}

// mockTaskRepo lets a test script individual repository calls.
type mockTaskRepo struct {
	fakeTaskRepo
	addVolunteerFunc func(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error)
	getByIDFunc      func(ctx context.Context, id int) (*entity.VolunteerTask, error)
}

func (m *mockTaskRepo) AddVolunteer(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error) {
	if m.addVolunteerFunc != nil {
		return m.addVolunteerFunc(ctx, taskID, userID)
	}
	return m.fakeTaskRepo.AddVolunteer(ctx, taskID, userID)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int) (*entity.VolunteerTask, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return m.fakeTaskRepo.GetByID(ctx, id)
}

// A conditional-update miss with no violated precondition at read time
// means a concurrent writer got between the two statements; the join must
// be retried, not failed.
func TestJoinTask_RetriesOnCleanMiss(t *testing.T) {
	open := &entity.VolunteerTask{
		ID:            1,
		Status:        entity.StatusOpen,
		Volunteers:    []int{},
		MaxVolunteers: 2,
	}

	var attempts int
	repo := &mockTaskRepo{
		addVolunteerFunc: func(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error) {
			attempts++
			if attempts == 1 {
				return nil, nil // simulated lost race
			}
			joined := *open
			joined.Volunteers = []int{userID}
			joined.Status = entity.StatusInProgress
			return &joined, nil
		},
		getByIDFunc: func(ctx context.Context, id int) (*entity.VolunteerTask, error) {
			out := *open
			return &out, nil
		},
	}

	svc := newTestService(repo)
	joined, err := svc.JoinTask(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []int{7}, joined.Volunteers)
}

func TestListTasks_ResolvesIdentities(t *testing.T) {
	repo := newFakeTaskRepo()
	users := &fakeUserRepo{refs: map[int]entity.UserRef{
		100: {ID: 100, Name: "Ops", Role: entity.RoleAuthority},
		7:   {ID: 7, Name: "Asha", Role: entity.RoleVolunteer},
	}}
	svc := NewTaskService(repo, users, nopPublisher{}, zap.NewNop())
	ctx := context.Background()

	task := createTask(t, svc, entity.CreateTaskRequest{
		Title: "Food packets", Description: "d", Location: "l",
	})
	_, err := svc.JoinTask(ctx, task.ID, 7)
	require.NoError(t, err)

	views, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].CreatedByUser)
	assert.Equal(t, "Ops", views[0].CreatedByUser.Name)
	require.Len(t, views[0].VolunteerList, 1)
	assert.Equal(t, "Asha", views[0].VolunteerList[0].Name)
}
