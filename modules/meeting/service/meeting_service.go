package service

import (
	"context"
	"time"

	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/modules/meeting/dto"
	"meeting-scheduler/modules/meeting/entity"
	"meeting-scheduler/modules/meeting/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MeetingService handles meeting business logic
type MeetingService struct {
	repo repository.MeetingRepositoryInterface
}

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	GetAllMeetings(ctx context.Context) ([]dto.MeetingResponse, *errors.AppError)
	UpdateMeeting(ctx context.Context, id uuid.UUID, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	DeleteMeeting(ctx context.Context, id uuid.UUID) *errors.AppError
}

// NewMeetingService creates a new meeting service
func NewMeetingService(repo repository.MeetingRepositoryInterface) MeetingServiceInterface {
	return &MeetingService{repo: repo}
}

// CreateMeeting creates a new meeting with invited participants
func (s *MeetingService) CreateMeeting(ctx context.Context, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	if appErr := validateMeetingRequest(req.Name, req.TargetDate, req.DurationMinutes, req.MinimumParticipants, len(req.ParticipantIDs)); appErr != nil {
		return nil, appErr
	}

	meeting := &entity.Meeting{
		ID:                  uuid.New(),
		Name:                req.Name,
		Slug:                slug.Make(req.Name),
		TargetDate:          req.TargetDate,
		DurationMinutes:     req.DurationMinutes,
		MinimumParticipants: req.MinimumParticipants,
	}

	created, err := s.repo.CreateMeeting(ctx, meeting)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create meeting", err)
	}

	links := make([]entity.MeetingParticipant, 0, len(req.ParticipantIDs))
	for _, idStr := range req.ParticipantIDs {
		participantID, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			continue
		}

		link := &entity.MeetingParticipant{
			MeetingID:     created.ID,
			ParticipantID: participantID,
		}
		if err := s.repo.AddParticipant(ctx, link); err != nil {
			continue
		}
		links = append(links, *link)
	}

	return dto.ToMeetingResponse(created, links, nil), nil
}

// GetMeetingByID retrieves a meeting with its participants and slot
func (s *MeetingService) GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}

	return s.toResponse(ctx, meeting), nil
}

// GetAllMeetings retrieves all meetings oldest first
func (s *MeetingService) GetAllMeetings(ctx context.Context) ([]dto.MeetingResponse, *errors.AppError) {
	meetings, err := s.repo.GetAllMeetings(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get meetings", err)
	}

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		result = append(result, *s.toResponse(ctx, &m))
	}
	return result, nil
}

// UpdateMeeting updates an unscheduled meeting's details
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, req *dto.UpdateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil || meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", err)
	}
	if meeting.Scheduled() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cannot update a scheduled meeting", nil)
	}

	if req.Name != "" {
		meeting.Name = req.Name
		meeting.Slug = slug.Make(req.Name)
	}
	if req.TargetDate != "" {
		if _, parseErr := time.Parse(constants.DateLayout, req.TargetDate); parseErr != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Target date must be YYYY-MM-DD", parseErr)
		}
		meeting.TargetDate = req.TargetDate
	}
	if req.DurationMinutes > 0 {
		meeting.DurationMinutes = req.DurationMinutes
	}
	if req.MinimumParticipants > 0 {
		meeting.MinimumParticipants = req.MinimumParticipants
	}

	if err := s.repo.UpdateMeeting(ctx, meeting); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update meeting", err)
	}

	if req.ParticipantIDs != nil {
		if err := s.repo.RemoveParticipants(ctx, id); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update participants", err)
		}
		for _, idStr := range req.ParticipantIDs {
			participantID, parseErr := uuid.Parse(idStr)
			if parseErr != nil {
				return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid participant ID: "+idStr, parseErr)
			}
			if err := s.repo.AddParticipant(ctx, &entity.MeetingParticipant{
				MeetingID:     id,
				ParticipantID: participantID,
			}); err != nil {
				return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update participants", err)
			}
		}
	}

	return s.toResponse(ctx, meeting), nil
}

// DeleteMeeting removes a meeting and its participant links
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) *errors.AppError {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil || meeting == nil {
		return errors.NewAppError(errors.ErrNotFound, "Meeting not found", err)
	}

	if err := s.repo.DeleteMeeting(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete meeting", err)
	}
	return nil
}

func (s *MeetingService) toResponse(ctx context.Context, meeting *entity.Meeting) *dto.MeetingResponse {
	links, _ := s.repo.GetParticipantsByMeetingID(ctx, meeting.ID)

	var slot *entity.ScheduledSlot
	if meeting.ScheduledSlotID != nil {
		slot, _ = s.repo.GetScheduledSlotByID(ctx, *meeting.ScheduledSlotID)
	}

	return dto.ToMeetingResponse(meeting, links, slot)
}

func validateMeetingRequest(name, targetDate string, duration, minimum, invited int) *errors.AppError {
	if name == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Name is required", nil)
	}
	if _, err := time.Parse(constants.DateLayout, targetDate); err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "Target date must be YYYY-MM-DD", err)
	}
	if duration <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "Duration must be positive", nil)
	}
	if minimum < 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "Minimum participants must be at least 1", nil)
	}
	if invited == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "At least one participant must be invited", nil)
	}
	if minimum > invited {
		return errors.NewAppError(errors.ErrInvalidInput, "Minimum participants cannot exceed the number invited", nil)
	}
	return nil
}
