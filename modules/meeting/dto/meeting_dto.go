package dto

import (
	"time"

	"meeting-scheduler/modules/meeting/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingRequest for creating a new meeting
type CreateMeetingRequest struct {
	Name                string   `json:"name" validate:"required"`
	TargetDate          string   `json:"target_date" validate:"required"`
	DurationMinutes     int      `json:"duration_minutes" validate:"required,min=1"`
	MinimumParticipants int      `json:"minimum_participants" validate:"min=1"`
	ParticipantIDs      []string `json:"participant_ids"`
}

// UpdateMeetingRequest for updating meeting details. Only unscheduled
// meetings can be updated.
type UpdateMeetingRequest struct {
	Name                string   `json:"name"`
	TargetDate          string   `json:"target_date"`
	DurationMinutes     int      `json:"duration_minutes"`
	MinimumParticipants int      `json:"minimum_participants"`
	ParticipantIDs      []string `json:"participant_ids"`
}

// ===================== Response DTOs =====================

// MeetingResponse for meeting details
type MeetingResponse struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Slug                string         `json:"slug"`
	TargetDate          string         `json:"target_date"`
	DurationMinutes     int            `json:"duration_minutes"`
	MinimumParticipants int            `json:"minimum_participants"`
	Scheduled           bool           `json:"scheduled"`
	ScheduledSlot       *SlotResponse  `json:"scheduled_slot,omitempty"`
	ParticipantIDs      []string       `json:"participant_ids"`
	AttendeeIDs         []string       `json:"attendee_ids,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

// SlotResponse for a scheduled time window
type SlotResponse struct {
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// ToMeetingResponse maps a meeting, its links and optional slot to a response
func ToMeetingResponse(m *entity.Meeting, links []entity.MeetingParticipant, slot *entity.ScheduledSlot) *MeetingResponse {
	resp := &MeetingResponse{
		ID:                  m.ID.String(),
		Name:                m.Name,
		Slug:                m.Slug,
		TargetDate:          m.TargetDate,
		DurationMinutes:     m.DurationMinutes,
		MinimumParticipants: m.MinimumParticipants,
		Scheduled:           m.Scheduled(),
		ParticipantIDs:      make([]string, 0, len(links)),
		CreatedAt:           m.CreatedAt,
	}
	for _, l := range links {
		resp.ParticipantIDs = append(resp.ParticipantIDs, l.ParticipantID.String())
		if l.IsAttendee {
			resp.AttendeeIDs = append(resp.AttendeeIDs, l.ParticipantID.String())
		}
	}
	if slot != nil {
		resp.ScheduledSlot = &SlotResponse{
			Date:        slot.Date,
			StartMinute: slot.StartMinute,
			EndMinute:   slot.EndMinute,
		}
	}
	return resp
}
