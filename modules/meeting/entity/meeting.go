package entity

import (
	"time"

	"github.com/google/uuid"
)

// Meeting represents one meeting request to be placed by the scheduler
type Meeting struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Slug                string     `db:"slug" json:"slug"`
	TargetDate          string     `db:"target_date" json:"target_date"`
	DurationMinutes     int        `db:"duration_minutes" json:"duration_minutes"`
	MinimumParticipants int        `db:"minimum_participants" json:"minimum_participants"`
	ScheduledSlotID     *uuid.UUID `db:"scheduled_slot_id" json:"scheduled_slot_id,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// Scheduled reports whether the meeting has been placed into a slot.
func (m *Meeting) Scheduled() bool {
	return m.ScheduledSlotID != nil
}
