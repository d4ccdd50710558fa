package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledSlot is the concrete time window assigned to a meeting by a
// scheduling run. Only the scheduler creates these.
type ScheduledSlot struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Date        string    `db:"date" json:"date"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
