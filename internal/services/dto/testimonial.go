package dto

import (
	"time"

	"sakanly_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreateTestimonialRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Text       string  `json:"text" validate:"required,max=2000"`
	ImageURL   string  `json:"imageUrl" validate:"omitempty,url"`
	Role       string  `json:"role" validate:"omitempty,max=100"`
	Type       string  `json:"type" validate:"required,oneof=property agency"`
	PropertyID *string `json:"propertyId,omitempty" validate:"omitempty,uuid"`
	AgencyID   *string `json:"agencyId,omitempty" validate:"omitempty,uuid"`
}

type UpdateTestimonialStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

type ListTestimonialsRequest struct {
	Status     string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Type       string `form:"type" validate:"omitempty,oneof=property agency"`
	PropertyID string `form:"propertyId" validate:"omitempty,uuid"`
	AgencyID   string `form:"agencyId" validate:"omitempty,uuid"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ======================
// Response DTOs
// ======================

type TestimonialResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"text"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Role       string    `json:"role,omitempty"`
	Type       string    `json:"type"`
	PropertyID *string   `json:"propertyId,omitempty"`
	AgencyID   *string   `json:"agencyId,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	Pagination   Pagination            `json:"pagination"`
}

func NewTestimonialResponse(t *models.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:         t.ID,
		Name:       t.Name,
		Text:       t.Text,
		ImageURL:   t.ImageURL,
		Role:       t.Role,
		Type:       string(t.Type),
		PropertyID: t.PropertyID,
		AgencyID:   t.AgencyID,
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
	}
}

func NewTestimonialResponses(testimonials []models.Testimonial) []TestimonialResponse {
	out := make([]TestimonialResponse, 0, len(testimonials))
	for i := range testimonials {
		out = append(out, NewTestimonialResponse(&testimonials[i]))
	}
	return out
}
