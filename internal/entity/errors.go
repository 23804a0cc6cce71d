package entity

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrTaskUnavailable    = errors.New("this task is no longer available")
	ErrTaskCompleted      = errors.New("this task is already completed")
	ErrTaskCancelled      = errors.New("this task was cancelled")
	ErrAlreadyVolunteer   = errors.New("you are already volunteering for this task")
	ErrCapacityReached    = errors.New("maximum number of volunteers reached for this task")
	ErrForbidden          = errors.New("forbidden: access denied")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
