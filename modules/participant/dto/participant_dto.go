package dto

import (
	"time"

	"meeting-scheduler/modules/participant/entity"
)

// ===================== Request DTOs =====================

// CreateParticipantRequest for registering a new participant
type CreateParticipantRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateParticipantRequest for updating participant details
type UpdateParticipantRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive *bool  `json:"is_active"`
}

// AddAvailabilityRequest declares one free window on a date
type AddAvailabilityRequest struct {
	Date        string `json:"date" validate:"required"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// ===================== Response DTOs =====================

// ParticipantResponse for participant details
type ParticipantResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	IsActive  bool                   `json:"is_active"`
	Intervals []AvailabilityResponse `json:"availability,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// AvailabilityResponse for one availability interval
type AvailabilityResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// ToParticipantResponse maps a participant and its intervals to a response
func ToParticipantResponse(p *entity.Participant, intervals []entity.AvailabilityInterval) *ParticipantResponse {
	resp := &ParticipantResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
	for _, iv := range intervals {
		resp.Intervals = append(resp.Intervals, ToAvailabilityResponse(&iv))
	}
	return resp
}

// ToAvailabilityResponse maps an availability interval to a response
func ToAvailabilityResponse(iv *entity.AvailabilityInterval) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          iv.ID.String(),
		Date:        iv.Date,
		StartMinute: iv.StartMinute,
		EndMinute:   iv.EndMinute,
	}
}
