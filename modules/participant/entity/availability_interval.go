package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityInterval is one declared free window of a participant on a
// calendar date. Minutes are from midnight, half-open [start, end).
type AvailabilityInterval struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	Date          string    `db:"date" json:"date"`
	StartMinute   int       `db:"start_minute" json:"start_minute"`
	EndMinute     int       `db:"end_minute" json:"end_minute"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
