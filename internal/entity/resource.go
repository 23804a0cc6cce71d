package entity

import "time"

type ResourceCategory string

const (
	CategoryMedical   ResourceCategory = "medical"
	CategoryFood      ResourceCategory = "food"
	CategoryShelter   ResourceCategory = "shelter"
	CategoryClothing  ResourceCategory = "clothing"
	CategoryEquipment ResourceCategory = "equipment"
	CategoryOther     ResourceCategory = "other"
)

type ResourceStatus string

const (
	ResourceRequested ResourceStatus = "requested"
	ResourceAvailable ResourceStatus = "available"
	ResourceAllocated ResourceStatus = "allocated"
)

type Resource struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Category    ResourceCategory `json:"category"`
	Quantity    int              `json:"quantity"`
	Unit        string           `json:"unit"`
	Location    string           `json:"location"`
	Status      ResourceStatus   `json:"status"`
	Description string           `json:"description"`
	Urgency     string           `json:"urgency"`
	ProvidedBy  int              `json:"providedBy"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type CreateResourceRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=255"`
	Category    ResourceCategory `json:"category" validate:"required,oneof=medical food shelter clothing equipment other"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
	Unit        string           `json:"unit" validate:"required"`
	Location    string           `json:"location" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Urgency     string           `json:"urgency" validate:"omitempty,oneof=low medium high"`
}

type UpdateResourceStatusRequest struct {
	Status ResourceStatus `json:"status" validate:"required,oneof=requested available allocated"`
}
