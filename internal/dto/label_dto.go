package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLabelRequest struct {
	Name    string `json:"name" validate:"required,max=64"`
	Visible *bool  `json:"visible"`
}

type UpdateLabelRequest struct {
	Id      uuid.UUID
	Name    string `json:"name" validate:"required,max=64"`
	Visible *bool  `json:"visible"`
}

type LabelResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Visible   bool       `json:"visible"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
