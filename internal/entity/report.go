package entity

import "time"

type Report struct {
	ID          int       `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Severity    string    `json:"severity"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubmitReportRequest struct {
	Type        string   `json:"type" validate:"required"`
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Severity    string   `json:"severity" validate:"required"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}
