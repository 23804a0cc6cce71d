package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/repository"
)

// EventPublisher emits task lifecycle events to the notification queue.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error
}

// joinAttempts bounds the classify-and-retry loop around the conditional
// volunteer append. A retry only happens when the update missed but a
// fresh read shows no violated precondition, i.e. a concurrent writer
// moved the task between our two statements.
const joinAttempts = 3

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	events   EventPublisher
	logger   *zap.Logger
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		events:   events,
		logger:   logger,
	}
}

// CreateTask registers a new task in state open. Role enforcement lives in
// the HTTP layer; the creator identity is taken from the verified token,
// never from the body.
func (s *TaskService) CreateTask(ctx context.Context, req *entity.CreateTaskRequest, creator entity.AuthUser) (*entity.VolunteerTask, error) {
	task := &entity.VolunteerTask{
		Title:             req.Title,
		Description:       req.Description,
		Location:          req.Location,
		Priority:          req.Priority,
		CreatedBy:         creator.ID,
		MaxVolunteers:     req.MaxVolunteers,
		RequiredSkills:    req.RequiredSkills,
		EstimatedDuration: req.EstimatedDuration,
	}
	if task.Priority == "" {
		task.Priority = entity.PriorityMedium
	}
	if task.MaxVolunteers < 1 {
		task.MaxVolunteers = 1
	}
	if task.RequiredSkills == nil {
		task.RequiredSkills = []string{}
	}
	if task.EstimatedDuration == "" {
		task.EstimatedDuration = "Not specified"
	}
	task.DurationHours = entity.ParseDurationHours(task.EstimatedDuration)

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.publishEvent(entity.EventTaskCreated, creator.ID, created.ID, map[string]any{
		"title":    created.Title,
		"location": created.Location,
		"priority": created.Priority,
	})

	return created, nil
}

// JoinTask appends the caller to the task's volunteers. The append and its
// preconditions execute as one conditional update; a miss is classified by
// a follow-up read so the caller gets the precise failure.
func (s *TaskService) JoinTask(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error) {
	for attempt := 0; attempt < joinAttempts; attempt++ {
		joined, err := s.taskRepo.AddVolunteer(ctx, taskID, userID)
		if err != nil {
			return nil, err
		}
		if joined != nil {
			s.publishEvent(entity.EventTaskJoined, userID, joined.ID, map[string]any{
				"volunteers":     len(joined.Volunteers),
				"max_volunteers": joined.MaxVolunteers,
			})
			return joined, nil
		}

		task, err := s.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch {
		case task == nil:
			return nil, entity.ErrTaskNotFound
		case task.Status != entity.StatusOpen && task.Status != entity.StatusInProgress:
			return nil, entity.ErrTaskUnavailable
		case task.HasVolunteer(userID):
			return nil, entity.ErrAlreadyVolunteer
		case len(task.Volunteers) >= task.MaxVolunteers:
			return nil, entity.ErrCapacityReached
		}
		// No precondition was violated at read time: a concurrent join
		// landed between our update and the read. Try again.
	}

	return nil, entity.ErrTaskUnavailable
}

// CompleteTask is the terminal happy-path transition. Only a volunteer on
// the task or an authority may complete it; completing a task that is
// already completed or was cancelled is rejected.
func (s *TaskService) CompleteTask(ctx context.Context, taskID int, caller entity.AuthUser, actualHours *float64) (*entity.VolunteerTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	if !task.HasVolunteer(caller.ID) && !caller.IsAuthority() {
		return nil, entity.ErrForbidden
	}

	switch task.Status {
	case entity.StatusCompleted:
		return nil, entity.ErrTaskCompleted
	case entity.StatusCancelled:
		return nil, entity.ErrTaskCancelled
	}

	completed, err := s.taskRepo.Complete(ctx, taskID, actualHours)
	if err != nil {
		return nil, err
	}
	if completed == nil {
		// Lost a race against another completion or a cancellation.
		return nil, s.classifyTerminalMiss(ctx, taskID)
	}

	s.publishEvent(entity.EventTaskCompleted, caller.ID, completed.ID, map[string]any{
		"actual_hours": completed.ActualHours,
		"volunteers":   len(completed.Volunteers),
	})

	return completed, nil
}

// CancelTask is the administrative terminal transition; the HTTP layer
// restricts it to authorities.
func (s *TaskService) CancelTask(ctx context.Context, taskID int, caller entity.AuthUser) (*entity.VolunteerTask, error) {
	cancelled, err := s.taskRepo.Cancel(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		return nil, s.classifyTerminalMiss(ctx, taskID)
	}

	s.publishEvent(entity.EventTaskCancelled, caller.ID, cancelled.ID, nil)

	return cancelled, nil
}

// ListTasks returns every task with creator and volunteer identities
// resolved for display, newest first.
func (s *TaskService) ListTasks(ctx context.Context) ([]entity.TaskView, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	var ids []int
	collect := func(id int) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, task := range tasks {
		collect(task.CreatedBy)
		for _, v := range task.Volunteers {
			collect(v)
		}
	}

	refs, err := s.userRepo.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]entity.TaskView, 0, len(tasks))
	for _, task := range tasks {
		view := entity.TaskView{
			VolunteerTask: task,
			VolunteerList: make([]entity.UserRef, 0, len(task.Volunteers)),
		}
		if ref, ok := refs[task.CreatedBy]; ok {
			view.CreatedByUser = &ref
		}
		for _, v := range task.Volunteers {
			if ref, ok := refs[v]; ok {
				view.VolunteerList = append(view.VolunteerList, ref)
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// GetStats recomputes the fleet-wide snapshot from the full task
// collection on every call; nothing is cached.
func (s *TaskService) GetStats(ctx context.Context) (*VolunteerStats, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(tasks)
	return &stats, nil
}

func (s *TaskService) classifyTerminalMiss(ctx context.Context, taskID int) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	switch {
	case task == nil:
		return entity.ErrTaskNotFound
	case task.Status == entity.StatusCancelled:
		return entity.ErrTaskCancelled
	default:
		return entity.ErrTaskCompleted
	}
}

// publishEvent hands the event to the queue without blocking the request;
// delivery failures are logged, never surfaced to the caller.
func (s *TaskService) publishEvent(eventType entity.EventType, actorID, entityID int, payload map[string]any) {
	event := &entity.TaskEvent{
		Type:      eventType,
		ActorID:   actorID,
		EntityID:  entityID,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.events.PublishTaskEvent(ctx, event); err != nil {
			s.logger.Warn("failed to publish task event",
				zap.String("type", string(eventType)),
				zap.Int("entity_id", entityID),
				zap.Error(err))
		}
	}()
}
