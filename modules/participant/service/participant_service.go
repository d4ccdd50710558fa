package service

import (
	"context"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/modules/participant/dto"
	"meeting-scheduler/modules/participant/entity"
	"meeting-scheduler/modules/participant/repository"

	"github.com/google/uuid"
)

// ParticipantService handles participant business logic
type ParticipantService struct {
	repo repository.ParticipantRepositoryInterface
}

// ParticipantServiceInterface defines the service contract
type ParticipantServiceInterface interface {
	CreateParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	GetAllParticipants(ctx context.Context) ([]dto.ParticipantResponse, *errors.AppError)
	UpdateParticipant(ctx context.Context, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	DeleteParticipant(ctx context.Context, id uuid.UUID) *errors.AppError

	AddAvailability(ctx context.Context, participantID uuid.UUID, req *dto.AddAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
	GetAvailability(ctx context.Context, participantID uuid.UUID, date string) ([]dto.AvailabilityResponse, *errors.AppError)
	DeleteAvailability(ctx context.Context, participantID uuid.UUID, intervalID uuid.UUID) *errors.AppError
}

// NewParticipantService creates a new participant service
func NewParticipantService(repo repository.ParticipantRepositoryInterface) ParticipantServiceInterface {
	return &ParticipantService{repo: repo}
}

// CreateParticipant registers a new participant
func (s *ParticipantService) CreateParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Name and email are required", nil)
	}

	existing, err := s.repo.GetParticipantByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check existing participant", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "A participant with this email already exists", nil)
	}

	participant := &entity.Participant{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}

	created, err := s.repo.CreateParticipant(ctx, participant)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create participant", err)
	}

	return dto.ToParticipantResponse(created, nil), nil
}

// GetParticipantByID retrieves a participant with their availability
func (s *ParticipantService) GetParticipantByID(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	participant, err := s.repo.GetParticipantByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", nil)
	}

	intervals, _ := s.repo.GetAvailabilityByParticipant(ctx, id)
	return dto.ToParticipantResponse(participant, intervals), nil
}

// GetAllParticipants retrieves every registered participant
func (s *ParticipantService) GetAllParticipants(ctx context.Context) ([]dto.ParticipantResponse, *errors.AppError) {
	participants, err := s.repo.GetAllParticipants(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get participants", err)
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, *dto.ToParticipantResponse(&p, nil))
	}
	return result, nil
}

// UpdateParticipant updates participant details
func (s *ParticipantService) UpdateParticipant(ctx context.Context, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	participant, err := s.repo.GetParticipantByID(ctx, id)
	if err != nil || participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", err)
	}

	if req.Name != "" {
		participant.Name = req.Name
	}
	if req.Email != "" {
		participant.Email = req.Email
	}
	if req.IsActive != nil {
		participant.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateParticipant(ctx, participant); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update participant", err)
	}

	intervals, _ := s.repo.GetAvailabilityByParticipant(ctx, id)
	return dto.ToParticipantResponse(participant, intervals), nil
}

// DeleteParticipant removes a participant and their availability
func (s *ParticipantService) DeleteParticipant(ctx context.Context, id uuid.UUID) *errors.AppError {
	participant, err := s.repo.GetParticipantByID(ctx, id)
	if err != nil || participant == nil {
		return errors.NewAppError(errors.ErrNotFound, "Participant not found", err)
	}

	if err := s.repo.DeleteParticipant(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete participant", err)
	}
	return nil
}

// AddAvailability declares a free window for a participant. Malformed
// intervals are rejected here at the intake boundary; overlap with already
// stored windows is fine, the engine merges on snapshot load.
func (s *ParticipantService) AddAvailability(ctx context.Context, participantID uuid.UUID, req *dto.AddAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	if appErr := validateInterval(req); appErr != nil {
		return nil, appErr
	}

	participant, err := s.repo.GetParticipantByID(ctx, participantID)
	if err != nil || participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", err)
	}

	interval := &entity.AvailabilityInterval{
		ID:            uuid.New(),
		ParticipantID: participantID,
		Date:          req.Date,
		StartMinute:   req.StartMinute,
		EndMinute:     req.EndMinute,
	}

	created, err := s.repo.AddAvailability(ctx, interval)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to add availability", err)
	}

	logger.Info("ParticipantService:AddAvailability",
		"participant_id", participantID,
		"date", created.Date,
		"start_minute", created.StartMinute,
		"end_minute", created.EndMinute,
	)

	resp := dto.ToAvailabilityResponse(created)
	return &resp, nil
}

// GetAvailability lists a participant's availability, optionally for one date
func (s *ParticipantService) GetAvailability(ctx context.Context, participantID uuid.UUID, date string) ([]dto.AvailabilityResponse, *errors.AppError) {
	participant, err := s.repo.GetParticipantByID(ctx, participantID)
	if err != nil || participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Participant not found", err)
	}

	var intervals []entity.AvailabilityInterval
	if date != "" {
		intervals, err = s.repo.GetAvailabilityByParticipantAndDate(ctx, participantID, date)
	} else {
		intervals, err = s.repo.GetAvailabilityByParticipant(ctx, participantID)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get availability", err)
	}

	result := make([]dto.AvailabilityResponse, 0, len(intervals))
	for _, iv := range intervals {
		result = append(result, dto.ToAvailabilityResponse(&iv))
	}
	return result, nil
}

// DeleteAvailability removes one declared window
func (s *ParticipantService) DeleteAvailability(ctx context.Context, participantID uuid.UUID, intervalID uuid.UUID) *errors.AppError {
	if err := s.repo.DeleteAvailability(ctx, participantID, intervalID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete availability", err)
	}
	return nil
}

func validateInterval(req *dto.AddAvailabilityRequest) *errors.AppError {
	if req.Date == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Date is required", nil)
	}
	if req.StartMinute < 0 || req.EndMinute > constants.MinutesPerDay {
		return errors.NewAppError(errors.ErrInvalidInput, "Minutes must be within [0, 1440]", nil)
	}
	if req.EndMinute <= req.StartMinute {
		return errors.NewAppError(errors.ErrInvalidInput, "End minute must be after start minute", nil)
	}
	return nil
}
