package entity

import (
	"regexp"
	"strconv"
	"time"
)

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Terminal reports whether no further transition is possible out of s.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// VolunteerTask is a unit of volunteer work with bounded capacity and a
// forward-only status lifecycle. Volunteers keeps insertion order; no user
// appears in it twice and its length never exceeds MaxVolunteers.
type VolunteerTask struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Location          string       `json:"location"`
	Status            TaskStatus   `json:"status"`
	Priority          TaskPriority `json:"priority"`
	CreatedBy         int          `json:"createdBy"`
	Volunteers        []int        `json:"volunteers"`
	MaxVolunteers     int          `json:"maxVolunteers"`
	RequiredSkills    []string     `json:"requiredSkills"`
	EstimatedDuration string       `json:"estimatedDuration"`
	DurationHours     float64      `json:"durationHours"`
	ActualHours       *float64     `json:"actualHours,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	CompletedAt       *time.Time   `json:"completedAt,omitempty"`
}

// HasVolunteer reports whether userID already joined the task.
func (t *VolunteerTask) HasVolunteer(userID int) bool {
	for _, id := range t.Volunteers {
		if id == userID {
			return true
		}
	}
	return false
}

// TaskView is a task with creator and volunteer identities resolved
// for display.
type TaskView struct {
	VolunteerTask
	CreatedByUser *UserRef  `json:"createdByUser,omitempty"`
	VolunteerList []UserRef `json:"volunteerList"`
}

type CreateTaskRequest struct {
	Title             string       `json:"title" validate:"required,min=1,max=255"`
	Description       string       `json:"description" validate:"required"`
	Location          string       `json:"location" validate:"required"`
	Priority          TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	RequiredSkills    []string     `json:"requiredSkills"`
	EstimatedDuration string       `json:"estimatedDuration"`
	MaxVolunteers     int          `json:"maxVolunteers" validate:"omitempty,min=1"`
}

type AssignRequest struct {
	TaskID int `json:"taskId" validate:"required,min=1"`
}

type CompleteRequest struct {
	TaskID      int      `json:"taskId" validate:"required,min=1"`
	ActualHours *float64 `json:"actualHours,omitempty" validate:"omitempty,min=0"`
}

type CancelRequest struct {
	TaskID int `json:"taskId" validate:"required,min=1"`
}

var durationPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseDurationHours extracts the first numeric token from a free-text
// duration such as "3.5 hours". Returns 0 when nothing numeric is present.
func ParseDurationHours(estimated string) float64 {
	match := durationPattern.FindString(estimated)
	if match == "" {
		return 0
	}
	hours, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return hours
}
