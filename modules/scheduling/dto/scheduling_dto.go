package dto

import (
	"time"

	"meeting-scheduler/modules/scheduling/engine"
)

// ===================== Response DTOs =====================

// SlotDTO is a scheduled time window
type SlotDTO struct {
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// MeetingOutcomeDTO is the per-meeting result of a scheduling run
type MeetingOutcomeDTO struct {
	MeetingID string   `json:"meeting_id"`
	Name      string   `json:"name"`
	Scheduled bool     `json:"scheduled"`
	Slot      *SlotDTO `json:"slot,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// SummaryDTO aggregates a run's outcomes
type SummaryDTO struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

// RunResponse is the full result of one scheduling run. It is also the value
// cached as the "last result" and served by the status endpoint.
type RunResponse struct {
	RunID    string              `json:"run_id"`
	RanAt    time.Time           `json:"ran_at"`
	Outcomes []MeetingOutcomeDTO `json:"outcomes"`
	Summary  SummaryDTO          `json:"summary"`
}

// EnqueueResponse acknowledges an async run request
type EnqueueResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// ToOutcomeDTO maps an engine outcome to its transport shape
func ToOutcomeDTO(o engine.Outcome) MeetingOutcomeDTO {
	out := MeetingOutcomeDTO{
		MeetingID: o.MeetingID.String(),
		Name:      o.Name,
		Scheduled: o.Scheduled,
		Reason:    o.Reason,
	}
	if o.Slot != nil {
		out.Slot = &SlotDTO{
			Date:        o.Slot.Date,
			StartMinute: o.Slot.StartMinute,
			EndMinute:   o.Slot.EndMinute,
		}
	}
	for _, a := range o.Attendees {
		out.Attendees = append(out.Attendees, a.String())
	}
	return out
}
