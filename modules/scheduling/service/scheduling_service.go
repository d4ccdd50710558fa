package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"meeting-scheduler/core/cache"
	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/errors"
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/utils"
	meetingEntity "meeting-scheduler/modules/meeting/entity"
	meetingRepo "meeting-scheduler/modules/meeting/repository"
	participantRepo "meeting-scheduler/modules/participant/repository"
	"meeting-scheduler/modules/scheduling/dto"
	"meeting-scheduler/modules/scheduling/engine"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// SchedulingService freezes a snapshot of participants and unscheduled
// meetings, runs the engine over it and persists the results. The previous
// run's output is cached wholesale and served by the status endpoint.
type SchedulingService struct {
	participants participantRepo.ParticipantRepositoryInterface
	meetings     meetingRepo.MeetingRepositoryInterface
	cache        cache.ICache
	queue        *asynq.Client
	orchestrator *engine.Orchestrator

	// runMu serializes runs: a batch is one logical transaction over its
	// snapshot, and overlapping runs could double-commit slots.
	runMu sync.Mutex
}

// SchedulingServiceInterface defines the service contract
type SchedulingServiceInterface interface {
	Run(ctx context.Context) (*dto.RunResponse, *errors.AppError)
	EnqueueRun(ctx context.Context) (*dto.EnqueueResponse, *errors.AppError)
	LastResult(ctx context.Context) (*dto.RunResponse, *errors.AppError)
	Summary(ctx context.Context) (*dto.SummaryDTO, *errors.AppError)
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(
	participants participantRepo.ParticipantRepositoryInterface,
	meetings meetingRepo.MeetingRepositoryInterface,
	cacheClient cache.ICache,
	queue *asynq.Client,
) *SchedulingService {
	return &SchedulingService{
		participants: participants,
		meetings:     meetings,
		cache:        cacheClient,
		queue:        queue,
		orchestrator: engine.NewOrchestrator(),
	}
}

// Run executes one scheduling batch synchronously: snapshot, engine run,
// persistence, cache replacement.
func (s *SchedulingService) Run(ctx context.Context) (*dto.RunResponse, *errors.AppError) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	runID := utils.GenerateID()
	logger.Info("SchedulingService:Run:Start", "run_id", runID)

	snapshot, appErr := s.loadSnapshot(ctx)
	if appErr != nil {
		return nil, appErr
	}

	outcomes, err := s.orchestrator.Run(ctx, *snapshot)
	if err != nil {
		logger.Error("SchedulingService:Run:Engine", "error", err, "run_id", runID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Scheduling run failed", err)
	}

	if appErr := s.persistOutcomes(ctx, outcomes); appErr != nil {
		return nil, appErr
	}

	reporter := engine.NewReporter(outcomes)
	summary := reporter.Summary()

	resp := &dto.RunResponse{
		RunID:    runID,
		RanAt:    time.Now().UTC(),
		Outcomes: make([]dto.MeetingOutcomeDTO, 0, len(outcomes)),
		Summary: dto.SummaryDTO{
			Total:     summary.Total,
			Scheduled: summary.Scheduled,
			Failed:    summary.Failed,
		},
	}
	for _, o := range reporter.Outcomes() {
		resp.Outcomes = append(resp.Outcomes, dto.ToOutcomeDTO(o))
	}

	s.storeLastResult(ctx, resp)

	logger.Info("SchedulingService:Run:Done",
		"run_id", runID,
		"total", summary.Total,
		"scheduled", summary.Scheduled,
		"failed", summary.Failed,
	)
	return resp, nil
}

// EnqueueRun queues a background run and returns immediately.
func (s *SchedulingService) EnqueueRun(ctx context.Context) (*dto.EnqueueResponse, *errors.AppError) {
	runID := utils.GenerateID()
	payload, _ := json.Marshal(map[string]string{"run_id": runID})

	task := asynq.NewTask(constants.TaskTypeSchedulingRun, payload)
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		logger.Error("SchedulingService:EnqueueRun", "error", err, "run_id", runID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to enqueue scheduling run", err)
	}

	logger.Info("SchedulingService:EnqueueRun:Queued", "run_id", runID)
	return &dto.EnqueueResponse{RunID: runID, Status: "queued"}, nil
}

// LastResult returns the cached output of the previous run. It is purely a
// cache read and never recomputes.
func (s *SchedulingService) LastResult(ctx context.Context) (*dto.RunResponse, *errors.AppError) {
	raw, err := s.cache.Get(ctx, constants.CacheKeyLastSchedulingResult)
	if err == cache.ErrCacheMiss {
		return nil, errors.NewAppError(errors.ErrNotFound, "No scheduling run has completed yet", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to read last scheduling result", err)
	}

	var resp dto.RunResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Corrupt cached scheduling result", err)
	}
	return &resp, nil
}

// Summary returns the scheduled/failed counts of the previous run.
func (s *SchedulingService) Summary(ctx context.Context) (*dto.SummaryDTO, *errors.AppError) {
	last, appErr := s.LastResult(ctx)
	if appErr != nil {
		return nil, appErr
	}
	return &last.Summary, nil
}

// loadSnapshot freezes a consistent view of active participants with their
// availability and the unscheduled meetings in submission order.
func (s *SchedulingService) loadSnapshot(ctx context.Context) (*engine.Snapshot, *errors.AppError) {
	participants, err := s.participants.GetActiveParticipants(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load participants", err)
	}

	snapshot := &engine.Snapshot{
		Participants: make([]engine.Participant, 0, len(participants)),
	}
	for _, p := range participants {
		intervals, err := s.participants.GetAvailabilityByParticipant(ctx, p.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load availability", err)
		}

		ep := engine.Participant{
			ID:        p.ID,
			Name:      p.Name,
			Active:    p.IsActive,
			Intervals: make(map[string][]engine.Interval),
		}
		for _, iv := range intervals {
			ep.Intervals[iv.Date] = append(ep.Intervals[iv.Date], engine.Interval{
				StartMinute: iv.StartMinute,
				EndMinute:   iv.EndMinute,
			})
		}
		snapshot.Participants = append(snapshot.Participants, ep)
	}

	meetings, err := s.meetings.GetUnscheduledMeetings(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load meetings", err)
	}
	for _, m := range meetings {
		links, err := s.meetings.GetParticipantsByMeetingID(ctx, m.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load meeting participants", err)
		}

		req := engine.MeetingRequest{
			ID:                  m.ID,
			Name:                m.Name,
			TargetDate:          m.TargetDate,
			DurationMinutes:     m.DurationMinutes,
			MinimumParticipants: m.MinimumParticipants,
			ParticipantIDs:      make([]uuid.UUID, 0, len(links)),
		}
		for _, l := range links {
			req.ParticipantIDs = append(req.ParticipantIDs, l.ParticipantID)
		}
		snapshot.Meetings = append(snapshot.Meetings, req)
	}

	return snapshot, nil
}

// persistOutcomes writes scheduled slots back onto their meetings. Failed
// outcomes persist nothing; their meetings stay unscheduled for the next run.
func (s *SchedulingService) persistOutcomes(ctx context.Context, outcomes []engine.Outcome) *errors.AppError {
	for _, o := range outcomes {
		if !o.Scheduled {
			continue
		}

		slot, err := s.meetings.CreateScheduledSlot(ctx, &meetingEntity.ScheduledSlot{
			ID:          uuid.New(),
			Date:        o.Slot.Date,
			StartMinute: o.Slot.StartMinute,
			EndMinute:   o.Slot.EndMinute,
		})
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "Failed to persist scheduled slot", err)
		}
		if err := s.meetings.AssignScheduledSlot(ctx, o.MeetingID, slot.ID); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "Failed to assign scheduled slot", err)
		}
		if err := s.meetings.MarkAttendees(ctx, o.MeetingID, o.Attendees); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark attendees", err)
		}
	}
	return nil
}

// storeLastResult replaces the cached run output wholesale. A cache write
// failure is logged, not surfaced: the run itself succeeded.
func (s *SchedulingService) storeLastResult(ctx context.Context, resp *dto.RunResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		logger.Error("SchedulingService:StoreLastResult:Marshal", err)
		return
	}
	if err := s.cache.Set(ctx, constants.CacheKeyLastSchedulingResult, raw); err != nil {
		logger.Error("SchedulingService:StoreLastResult:Set", "error", err, "run_id", resp.RunID)
	}
}
