package entity

import (
	"github.com/google/uuid"
)

// MeetingParticipant links an invited participant to a meeting. IsAttendee
// becomes true once a scheduling run actually places the participant into
// the meeting's slot.
type MeetingParticipant struct {
	MeetingID     uuid.UUID `db:"meeting_id" json:"meeting_id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	IsAttendee    bool      `db:"is_attendee" json:"is_attendee"`
}
