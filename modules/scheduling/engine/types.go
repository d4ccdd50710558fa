package engine

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidInterval is returned when an interval's minutes are out of range
// or its end does not come after its start.
var ErrInvalidInterval = errors.New("engine: invalid interval")

// MinutesPerDay bounds interval minutes. Intervals are half-open [start, end)
// with 0 <= start < end <= MinutesPerDay.
const MinutesPerDay = 1440

// Failure reasons reported on unscheduled outcomes.
const (
	ReasonInfeasible = "insufficient combined availability"
)

// Interval is a contiguous range of minutes within one calendar date,
// half-open: [StartMinute, EndMinute).
type Interval struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return iv.EndMinute - iv.StartMinute
}

// Valid reports whether the interval is well formed.
func (iv Interval) Valid() bool {
	return iv.StartMinute >= 0 && iv.EndMinute <= MinutesPerDay && iv.StartMinute < iv.EndMinute
}

// Participant is the engine's read-only view of a participant: identity,
// active flag and raw availability keyed by date ("2006-01-02").
type Participant struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Active    bool                  `json:"active"`
	Intervals map[string][]Interval `json:"intervals"`
}

// MeetingRequest is one immutable meeting to place within a run.
type MeetingRequest struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	TargetDate          string      `json:"target_date"`
	DurationMinutes     int         `json:"duration_minutes"`
	MinimumParticipants int         `json:"minimum_participants"`
	ParticipantIDs      []uuid.UUID `json:"participant_ids"`
}

// ScheduledSlot is the concrete time window a meeting was placed into.
type ScheduledSlot struct {
	Date        string `json:"date"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// Outcome is the per-meeting result of a run. Exactly one of Slot or Reason
// is set: Scheduled true carries Slot and Attendees, false carries Reason.
type Outcome struct {
	MeetingID uuid.UUID      `json:"meeting_id"`
	Name      string         `json:"name"`
	Scheduled bool           `json:"scheduled"`
	Slot      *ScheduledSlot `json:"slot,omitempty"`
	Attendees []uuid.UUID    `json:"attendees,omitempty"`
	Reason    string         `json:"reason,omitempty"`
}

// Snapshot is the frozen input of one batch run. Meetings are processed in
// the order given; earlier meetings have priority over later ones competing
// for the same participants' time.
type Snapshot struct {
	Participants []Participant    `json:"participants"`
	Meetings     []MeetingRequest `json:"meetings"`
}
