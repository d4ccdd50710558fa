package repository

import (
	"context"
	"database/sql"

	"meeting-scheduler/core/database"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/participant/entity"

	"github.com/google/uuid"
)

// ParticipantRepository handles participant database operations
type ParticipantRepository struct {
	DB database.IDatabase
}

// NewParticipantRepository creates a new repository instance
func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// ParticipantRepositoryInterface defines the repository contract
type ParticipantRepositoryInterface interface {
	CreateParticipant(ctx context.Context, p *entity.Participant) (*entity.Participant, error)
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error)
	GetParticipantByEmail(ctx context.Context, email string) (*entity.Participant, error)
	GetAllParticipants(ctx context.Context) ([]entity.Participant, error)
	GetActiveParticipants(ctx context.Context) ([]entity.Participant, error)
	UpdateParticipant(ctx context.Context, p *entity.Participant) error
	DeleteParticipant(ctx context.Context, id uuid.UUID) error

	AddAvailability(ctx context.Context, iv *entity.AvailabilityInterval) (*entity.AvailabilityInterval, error)
	GetAvailabilityByParticipant(ctx context.Context, participantID uuid.UUID) ([]entity.AvailabilityInterval, error)
	GetAvailabilityByParticipantAndDate(ctx context.Context, participantID uuid.UUID, date string) ([]entity.AvailabilityInterval, error)
	DeleteAvailability(ctx context.Context, participantID uuid.UUID, intervalID uuid.UUID) error
}

// ===================== Participant CRUD =====================

func (r *ParticipantRepository) CreateParticipant(ctx context.Context, p *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO participants (id, name, email, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, is_active, created_at, updated_at
	`

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query, p.ID, p.Name, p.Email, p.IsActive)
	if err != nil {
		logger.Error("ParticipantRepository:CreateParticipant", err)
		return nil, err
	}

	return &created, nil
}

func (r *ParticipantRepository) GetParticipantByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM participants WHERE id = $1
	`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByID", err)
		return nil, err
	}

	return &p, nil
}

func (r *ParticipantRepository) GetParticipantByEmail(ctx context.Context, email string) (*entity.Participant, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM participants WHERE email = $1
	`

	var p entity.Participant
	err := r.DB.GetContext(ctx, &p, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByEmail", err)
		return nil, err
	}

	return &p, nil
}

func (r *ParticipantRepository) GetAllParticipants(ctx context.Context) ([]entity.Participant, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM participants
		ORDER BY created_at ASC
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query)
	if err != nil {
		logger.Error("ParticipantRepository:GetAllParticipants", err)
		return nil, err
	}

	return participants, nil
}

func (r *ParticipantRepository) GetActiveParticipants(ctx context.Context) ([]entity.Participant, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at
		FROM participants
		WHERE is_active = TRUE
		ORDER BY created_at ASC
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query)
	if err != nil {
		logger.Error("ParticipantRepository:GetActiveParticipants", err)
		return nil, err
	}

	return participants, nil
}

func (r *ParticipantRepository) UpdateParticipant(ctx context.Context, p *entity.Participant) error {
	query := `
		UPDATE participants
		SET name = $2, email = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, p.ID, p.Name, p.Email, p.IsActive)
	if err != nil {
		logger.Error("ParticipantRepository:UpdateParticipant", err)
		return err
	}

	return nil
}

func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		logger.Error("ParticipantRepository:DeleteParticipant", err)
		return err
	}
	return nil
}

// ===================== Availability intervals =====================

func (r *ParticipantRepository) AddAvailability(ctx context.Context, iv *entity.AvailabilityInterval) (*entity.AvailabilityInterval, error) {
	query := `
		INSERT INTO availability_intervals (id, participant_id, date, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, participant_id, date, start_minute, end_minute, created_at
	`

	var created entity.AvailabilityInterval
	err := r.DB.GetContext(ctx, &created, query, iv.ID, iv.ParticipantID, iv.Date, iv.StartMinute, iv.EndMinute)
	if err != nil {
		logger.Error("ParticipantRepository:AddAvailability", err)
		return nil, err
	}

	return &created, nil
}

func (r *ParticipantRepository) GetAvailabilityByParticipant(ctx context.Context, participantID uuid.UUID) ([]entity.AvailabilityInterval, error) {
	query := `
		SELECT id, participant_id, date, start_minute, end_minute, created_at
		FROM availability_intervals
		WHERE participant_id = $1
		ORDER BY date ASC, start_minute ASC
	`

	var intervals []entity.AvailabilityInterval
	err := r.DB.SelectContext(ctx, &intervals, query, participantID)
	if err != nil {
		logger.Error("ParticipantRepository:GetAvailabilityByParticipant", err)
		return nil, err
	}

	return intervals, nil
}

func (r *ParticipantRepository) GetAvailabilityByParticipantAndDate(ctx context.Context, participantID uuid.UUID, date string) ([]entity.AvailabilityInterval, error) {
	query := `
		SELECT id, participant_id, date, start_minute, end_minute, created_at
		FROM availability_intervals
		WHERE participant_id = $1 AND date = $2
		ORDER BY start_minute ASC
	`

	var intervals []entity.AvailabilityInterval
	err := r.DB.SelectContext(ctx, &intervals, query, participantID, date)
	if err != nil {
		logger.Error("ParticipantRepository:GetAvailabilityByParticipantAndDate", err)
		return nil, err
	}

	return intervals, nil
}

func (r *ParticipantRepository) DeleteAvailability(ctx context.Context, participantID uuid.UUID, intervalID uuid.UUID) error {
	err := r.DB.ExecContext(ctx,
		`DELETE FROM availability_intervals WHERE id = $1 AND participant_id = $2`,
		intervalID, participantID)
	if err != nil {
		logger.Error("ParticipantRepository:DeleteAvailability", err)
		return err
	}
	return nil
}
