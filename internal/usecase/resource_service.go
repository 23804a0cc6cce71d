package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/repository"
)

type ResourceService struct {
	resourceRepo repository.ResourceRepository
	logger       *zap.Logger
}

func NewResourceService(resourceRepo repository.ResourceRepository, logger *zap.Logger) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

func (s *ResourceService) CreateRequest(ctx context.Context, req *entity.CreateResourceRequest, provider entity.AuthUser) (*entity.Resource, error) {
	resource := &entity.Resource{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Location:    req.Location,
		Description: req.Description,
		Urgency:     req.Urgency,
		ProvidedBy:  provider.ID,
	}
	if resource.Urgency == "" {
		resource.Urgency = "medium"
	}

	return s.resourceRepo.Create(ctx, resource)
}

func (s *ResourceService) ListResources(ctx context.Context) ([]entity.Resource, error) {
	return s.resourceRepo.List(ctx)
}

func (s *ResourceService) ListUserRequests(ctx context.Context, userID int) ([]entity.Resource, error) {
	return s.resourceRepo.ListByProvider(ctx, userID)
}

func (s *ResourceService) UpdateStatus(ctx context.Context, id int, status entity.ResourceStatus) (*entity.Resource, error) {
	resource, err := s.resourceRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, entity.ErrResourceNotFound
	}
	return resource, nil
}

// Allocate marks the caller's own resource as allocated.
func (s *ResourceService) Allocate(ctx context.Context, id int, caller entity.AuthUser) (*entity.Resource, error) {
	resource, err := s.resourceRepo.Allocate(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, entity.ErrResourceNotFound
	}
	return resource, nil
}

// DeleteAllocated removes one of the caller's allocated resources.
func (s *ResourceService) DeleteAllocated(ctx context.Context, id int, caller entity.AuthUser) error {
	deleted, err := s.resourceRepo.DeleteAllocated(ctx, id, caller.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrResourceNotFound
	}
	return nil
}
