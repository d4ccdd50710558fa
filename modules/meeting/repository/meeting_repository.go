package repository

import (
	"context"
	"database/sql"

	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/meeting/entity"

	"github.com/google/uuid"
)

// MeetingRepository handles meeting database operations
type MeetingRepository struct {
	DB database.IDatabase
}

// NewMeetingRepository creates a new repository instance
func NewMeetingRepository(db database.IDatabase) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

// MeetingRepositoryInterface defines the repository contract
type MeetingRepositoryInterface interface {
	CreateMeeting(ctx context.Context, m *entity.Meeting) (*entity.Meeting, error)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	GetAllMeetings(ctx context.Context) ([]entity.Meeting, error)
	GetUnscheduledMeetings(ctx context.Context) ([]entity.Meeting, error)
	UpdateMeeting(ctx context.Context, m *entity.Meeting) error
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	AddParticipant(ctx context.Context, link *entity.MeetingParticipant) error
	GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error)
	RemoveParticipants(ctx context.Context, meetingID uuid.UUID) error
	MarkAttendees(ctx context.Context, meetingID uuid.UUID, participantIDs []uuid.UUID) error

	CreateScheduledSlot(ctx context.Context, slot *entity.ScheduledSlot) (*entity.ScheduledSlot, error)
	GetScheduledSlotByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledSlot, error)
	AssignScheduledSlot(ctx context.Context, meetingID uuid.UUID, slotID uuid.UUID) error
	ClearScheduledSlot(ctx context.Context, meetingID uuid.UUID) error
}

// ===================== Meeting CRUD =====================

func (r *MeetingRepository) CreateMeeting(ctx context.Context, m *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (id, name, slug, target_date, duration_minutes, minimum_participants)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, target_date, duration_minutes, minimum_participants,
		          scheduled_slot_id, created_at, updated_at
	`

	var created entity.Meeting
	err := r.DB.GetContext(ctx, &created, query,
		m.ID, m.Name, m.Slug, m.TargetDate, m.DurationMinutes, m.MinimumParticipants)
	if err != nil {
		logger.Error("MeetingRepository:CreateMeeting", err)
		return nil, err
	}

	return &created, nil
}

func (r *MeetingRepository) GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `
		SELECT id, name, slug, target_date, duration_minutes, minimum_participants,
		       scheduled_slot_id, created_at, updated_at
		FROM meetings WHERE id = $1
	`

	var m entity.Meeting
	err := r.DB.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingByID", err)
		return nil, err
	}

	return &m, nil
}

func (r *MeetingRepository) GetAllMeetings(ctx context.Context) ([]entity.Meeting, error) {
	query := `
		SELECT id, name, slug, target_date, duration_minutes, minimum_participants,
		       scheduled_slot_id, created_at, updated_at
		FROM meetings
		ORDER BY created_at ASC
	`

	var meetings []entity.Meeting
	err := r.DB.SelectContext(ctx, &meetings, query)
	if err != nil {
		logger.Error("MeetingRepository:GetAllMeetings", err)
		return nil, err
	}

	return meetings, nil
}

// GetUnscheduledMeetings returns meetings without a slot, oldest first. The
// scheduler relies on this ordering: earlier submissions commit first.
func (r *MeetingRepository) GetUnscheduledMeetings(ctx context.Context) ([]entity.Meeting, error) {
	query := `
		SELECT id, name, slug, target_date, duration_minutes, minimum_participants,
		       scheduled_slot_id, created_at, updated_at
		FROM meetings
		WHERE scheduled_slot_id IS NULL
		ORDER BY created_at ASC
	`

	var meetings []entity.Meeting
	err := r.DB.SelectContext(ctx, &meetings, query)
	if err != nil {
		logger.Error("MeetingRepository:GetUnscheduledMeetings", err)
		return nil, err
	}

	return meetings, nil
}

func (r *MeetingRepository) UpdateMeeting(ctx context.Context, m *entity.Meeting) error {
	query := `
		UPDATE meetings
		SET name = $2, slug = $3, target_date = $4, duration_minutes = $5,
		    minimum_participants = $6, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		m.ID, m.Name, m.Slug, m.TargetDate, m.DurationMinutes, m.MinimumParticipants)
	if err != nil {
		logger.Error("MeetingRepository:UpdateMeeting", err)
		return err
	}

	return nil
}

func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		logger.Error("MeetingRepository:DeleteMeeting", err)
		return err
	}
	return nil
}

// ===================== Invited participants =====================

func (r *MeetingRepository) AddParticipant(ctx context.Context, link *entity.MeetingParticipant) error {
	query := `
		INSERT INTO meeting_participants (meeting_id, participant_id, is_attendee)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id, participant_id) DO NOTHING
	`

	err := r.DB.ExecContext(ctx, query, link.MeetingID, link.ParticipantID, link.IsAttendee)
	if err != nil {
		logger.Error("MeetingRepository:AddParticipant", err)
		return err
	}
	return nil
}

func (r *MeetingRepository) GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	query := `
		SELECT meeting_id, participant_id, is_attendee
		FROM meeting_participants
		WHERE meeting_id = $1
		ORDER BY participant_id ASC
	`

	var links []entity.MeetingParticipant
	err := r.DB.SelectContext(ctx, &links, query, meetingID)
	if err != nil {
		logger.Error("MeetingRepository:GetParticipantsByMeetingID", err)
		return nil, err
	}

	return links, nil
}

func (r *MeetingRepository) RemoveParticipants(ctx context.Context, meetingID uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM meeting_participants WHERE meeting_id = $1`, meetingID)
	if err != nil {
		logger.Error("MeetingRepository:RemoveParticipants", err)
		return err
	}
	return nil
}

// MarkAttendees flags the participants actually placed into the meeting's
// slot, resetting any previous marks first.
func (r *MeetingRepository) MarkAttendees(ctx context.Context, meetingID uuid.UUID, participantIDs []uuid.UUID) error {
	if err := r.DB.ExecContext(ctx,
		`UPDATE meeting_participants SET is_attendee = FALSE WHERE meeting_id = $1`, meetingID); err != nil {
		logger.Error("MeetingRepository:MarkAttendees:Reset", err)
		return err
	}

	for _, pid := range participantIDs {
		if err := r.DB.ExecContext(ctx,
			`UPDATE meeting_participants SET is_attendee = TRUE WHERE meeting_id = $1 AND participant_id = $2`,
			meetingID, pid); err != nil {
			logger.Error("MeetingRepository:MarkAttendees", "error", err, "participant_id", pid)
			return err
		}
	}
	return nil
}

// ===================== Scheduled slots =====================

func (r *MeetingRepository) CreateScheduledSlot(ctx context.Context, slot *entity.ScheduledSlot) (*entity.ScheduledSlot, error) {
	query := `
		INSERT INTO scheduled_slots (id, date, start_minute, end_minute)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, start_minute, end_minute, created_at
	`

	var created entity.ScheduledSlot
	err := r.DB.GetContext(ctx, &created, query, slot.ID, slot.Date, slot.StartMinute, slot.EndMinute)
	if err != nil {
		logger.Error("MeetingRepository:CreateScheduledSlot", err)
		return nil, err
	}

	return &created, nil
}

func (r *MeetingRepository) GetScheduledSlotByID(ctx context.Context, id uuid.UUID) (*entity.ScheduledSlot, error) {
	query := `
		SELECT id, date, start_minute, end_minute, created_at
		FROM scheduled_slots WHERE id = $1
	`

	var slot entity.ScheduledSlot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetScheduledSlotByID", err)
		return nil, err
	}

	return &slot, nil
}

func (r *MeetingRepository) AssignScheduledSlot(ctx context.Context, meetingID uuid.UUID, slotID uuid.UUID) error {
	err := r.DB.ExecContext(ctx,
		`UPDATE meetings SET scheduled_slot_id = $2, updated_at = NOW() WHERE id = $1`,
		meetingID, slotID)
	if err != nil {
		logger.Error("MeetingRepository:AssignScheduledSlot", err)
		return err
	}
	return nil
}

func (r *MeetingRepository) ClearScheduledSlot(ctx context.Context, meetingID uuid.UUID) error {
	err := r.DB.ExecContext(ctx,
		`UPDATE meetings SET scheduled_slot_id = NULL, updated_at = NOW() WHERE id = $1`,
		meetingID)
	if err != nil {
		logger.Error("MeetingRepository:ClearScheduledSlot", err)
		return err
	}
	return nil
}
