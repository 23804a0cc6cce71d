package repository

import (
	"context"

	"github.com/JibinB02/pehlahath/internal/entity"
)

// TaskRepository persists volunteer tasks. AddVolunteer, Complete and
// Cancel are conditional updates: they return (nil, nil) when no row
// matched their guard, and the caller classifies the miss.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.VolunteerTask) (*entity.VolunteerTask, error)
	GetByID(ctx context.Context, id int) (*entity.VolunteerTask, error)
	List(ctx context.Context) ([]entity.VolunteerTask, error)
	AddVolunteer(ctx context.Context, taskID, userID int) (*entity.VolunteerTask, error)
	Complete(ctx context.Context, taskID int, actualHours *float64) (*entity.VolunteerTask, error)
	Cancel(ctx context.Context, taskID int) (*entity.VolunteerTask, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetRefs(ctx context.Context, ids []int) (map[int]entity.UserRef, error)
	UpdateProfile(ctx context.Context, id int, name, phone string) (*entity.User, error)
	VerifyByToken(ctx context.Context, token string) (*entity.User, error)
	TouchLastLogin(ctx context.Context, id int) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) (*entity.Report, error)
	GetByID(ctx context.Context, id int) (*entity.Report, error)
	List(ctx context.Context) ([]entity.Report, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) (*entity.Resource, error)
	GetByID(ctx context.Context, id int) (*entity.Resource, error)
	List(ctx context.Context) ([]entity.Resource, error)
	ListByProvider(ctx context.Context, userID int) ([]entity.Resource, error)
	UpdateStatus(ctx context.Context, id int, status entity.ResourceStatus) (*entity.Resource, error)
	Allocate(ctx context.Context, id, providerID int) (*entity.Resource, error)
	DeleteAllocated(ctx context.Context, id, providerID int) (bool, error)
}

type TaskAuditRepository interface {
	Create(ctx context.Context, audit *entity.TaskAudit) error
	ListByEntity(ctx context.Context, entityID int) ([]entity.TaskAudit, error)
}
