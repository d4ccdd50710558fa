package service

import (
	"context"
	"testing"

	"meeting-scheduler/core/cache"
	meetingEntity "meeting-scheduler/modules/meeting/entity"
	participantEntity "meeting-scheduler/modules/participant/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================== Fakes =====================

type fakeParticipantRepo struct {
	participants []participantEntity.Participant
	availability map[uuid.UUID][]participantEntity.AvailabilityInterval
}

func (f *fakeParticipantRepo) CreateParticipant(ctx context.Context, p *participantEntity.Participant) (*participantEntity.Participant, error) {
	f.participants = append(f.participants, *p)
	return p, nil
}

func (f *fakeParticipantRepo) GetParticipantByID(ctx context.Context, id uuid.UUID) (*participantEntity.Participant, error) {
	for i := range f.participants {
		if f.participants[i].ID == id {
			return &f.participants[i], nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantRepo) GetParticipantByEmail(ctx context.Context, email string) (*participantEntity.Participant, error) {
	return nil, nil
}

func (f *fakeParticipantRepo) GetAllParticipants(ctx context.Context) ([]participantEntity.Participant, error) {
	return f.participants, nil
}

func (f *fakeParticipantRepo) GetActiveParticipants(ctx context.Context) ([]participantEntity.Participant, error) {
	var active []participantEntity.Participant
	for _, p := range f.participants {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakeParticipantRepo) UpdateParticipant(ctx context.Context, p *participantEntity.Participant) error {
	return nil
}

func (f *fakeParticipantRepo) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeParticipantRepo) AddAvailability(ctx context.Context, iv *participantEntity.AvailabilityInterval) (*participantEntity.AvailabilityInterval, error) {
	f.availability[iv.ParticipantID] = append(f.availability[iv.ParticipantID], *iv)
	return iv, nil
}

func (f *fakeParticipantRepo) GetAvailabilityByParticipant(ctx context.Context, participantID uuid.UUID) ([]participantEntity.AvailabilityInterval, error) {
	return f.availability[participantID], nil
}

func (f *fakeParticipantRepo) GetAvailabilityByParticipantAndDate(ctx context.Context, participantID uuid.UUID, date string) ([]participantEntity.AvailabilityInterval, error) {
	var out []participantEntity.AvailabilityInterval
	for _, iv := range f.availability[participantID] {
		if iv.Date == date {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) DeleteAvailability(ctx context.Context, participantID uuid.UUID, intervalID uuid.UUID) error {
	return nil
}

type fakeMeetingRepo struct {
	meetings  []meetingEntity.Meeting
	links     map[uuid.UUID][]meetingEntity.MeetingParticipant
	slots     map[uuid.UUID]meetingEntity.ScheduledSlot
	assigned  map[uuid.UUID]uuid.UUID
	attendees map[uuid.UUID][]uuid.UUID
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{
		links:     map[uuid.UUID][]meetingEntity.MeetingParticipant{},
		slots:     map[uuid.UUID]meetingEntity.ScheduledSlot{},
		assigned:  map[uuid.UUID]uuid.UUID{},
		attendees: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeMeetingRepo) CreateMeeting(ctx context.Context, m *meetingEntity.Meeting) (*meetingEntity.Meeting, error) {
	f.meetings = append(f.meetings, *m)
	return m, nil
}

func (f *fakeMeetingRepo) GetMeetingByID(ctx context.Context, id uuid.UUID) (*meetingEntity.Meeting, error) {
	for i := range f.meetings {
		if f.meetings[i].ID == id {
			return &f.meetings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingRepo) GetAllMeetings(ctx context.Context) ([]meetingEntity.Meeting, error) {
	return f.meetings, nil
}

func (f *fakeMeetingRepo) GetUnscheduledMeetings(ctx context.Context) ([]meetingEntity.Meeting, error) {
	var out []meetingEntity.Meeting
	for _, m := range f.meetings {
		if _, ok := f.assigned[m.ID]; !ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) UpdateMeeting(ctx context.Context, m *meetingEntity.Meeting) error {
	return nil
}

func (f *fakeMeetingRepo) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeMeetingRepo) AddParticipant(ctx context.Context, link *meetingEntity.MeetingParticipant) error {
	f.links[link.MeetingID] = append(f.links[link.MeetingID], *link)
	return nil
}

func (f *fakeMeetingRepo) GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]meetingEntity.MeetingParticipant, error) {
	return f.links[meetingID], nil
}

func (f *fakeMeetingRepo) RemoveParticipants(ctx context.Context, meetingID uuid.UUID) error {
	delete(f.links, meetingID)
	return nil
}

func (f *fakeMeetingRepo) MarkAttendees(ctx context.Context, meetingID uuid.UUID, participantIDs []uuid.UUID) error {
	f.attendees[meetingID] = participantIDs
	return nil
}

func (f *fakeMeetingRepo) CreateScheduledSlot(ctx context.Context, slot *meetingEntity.ScheduledSlot) (*meetingEntity.ScheduledSlot, error) {
	f.slots[slot.ID] = *slot
	return slot, nil
}

func (f *fakeMeetingRepo) GetScheduledSlotByID(ctx context.Context, id uuid.UUID) (*meetingEntity.ScheduledSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeMeetingRepo) AssignScheduledSlot(ctx context.Context, meetingID uuid.UUID, slotID uuid.UUID) error {
	f.assigned[meetingID] = slotID
	return nil
}

func (f *fakeMeetingRepo) ClearScheduledSlot(ctx context.Context, meetingID uuid.UUID) error {
	delete(f.assigned, meetingID)
	return nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

// ===================== Fixtures =====================

const testDate = "2024-01-10"

func fixtureParticipant(f *fakeParticipantRepo, n int, active bool, windows [][2]int) uuid.UUID {
	id := uuid.New()
	f.participants = append(f.participants, participantEntity.Participant{
		ID:       id,
		Name:     "p" + string(rune('0'+n)),
		IsActive: active,
	})
	for _, w := range windows {
		f.availability[id] = append(f.availability[id], participantEntity.AvailabilityInterval{
			ID:            uuid.New(),
			ParticipantID: id,
			Date:          testDate,
			StartMinute:   w[0],
			EndMinute:     w[1],
		})
	}
	return id
}

func fixtureMeeting(f *fakeMeetingRepo, name string, dur, minCount int, invited []uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.meetings = append(f.meetings, meetingEntity.Meeting{
		ID:                  id,
		Name:                name,
		TargetDate:          testDate,
		DurationMinutes:     dur,
		MinimumParticipants: minCount,
	})
	for _, pid := range invited {
		f.links[id] = append(f.links[id], meetingEntity.MeetingParticipant{
			MeetingID:     id,
			ParticipantID: pid,
		})
	}
	return id
}

// ===================== Tests =====================

func TestRunSchedulesAndPersists(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	x := fixtureParticipant(participants, 1, true, [][2]int{{540, 720}})
	y := fixtureParticipant(participants, 2, true, [][2]int{{600, 660}})
	standup := fixtureMeeting(meetings, "Standup", 30, 2, []uuid.UUID{x, y})

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)
	resp, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)

	require.Len(t, resp.Outcomes, 1)
	out := resp.Outcomes[0]
	assert.True(t, out.Scheduled)
	require.NotNil(t, out.Slot)
	assert.Equal(t, 600, out.Slot.StartMinute)
	assert.Equal(t, 630, out.Slot.EndMinute)
	assert.Equal(t, 1, resp.Summary.Scheduled)
	assert.NotEmpty(t, resp.RunID)

	slotID, ok := meetings.assigned[standup]
	require.True(t, ok, "meeting should have a slot assigned")
	slot := meetings.slots[slotID]
	assert.Equal(t, testDate, slot.Date)
	assert.Equal(t, 600, slot.StartMinute)
	assert.ElementsMatch(t, []uuid.UUID{x, y}, meetings.attendees[standup])
}

func TestRunInfeasibleMeetingPersistsNothing(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	x := fixtureParticipant(participants, 1, true, [][2]int{{540, 600}})
	y := fixtureParticipant(participants, 2, true, [][2]int{{600, 660}})
	teamSync := fixtureMeeting(meetings, "Sync", 30, 2, []uuid.UUID{x, y})

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)
	resp, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)

	require.Len(t, resp.Outcomes, 1)
	assert.False(t, resp.Outcomes[0].Scheduled)
	assert.Equal(t, "insufficient combined availability", resp.Outcomes[0].Reason)
	assert.Equal(t, 1, resp.Summary.Failed)

	_, assigned := meetings.assigned[teamSync]
	assert.False(t, assigned)
	assert.Empty(t, meetings.slots)
}

func TestScheduledMeetingsLeaveSnapshot(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	x := fixtureParticipant(participants, 1, true, [][2]int{{540, 720}})
	fixtureMeeting(meetings, "One-on-one", 30, 1, []uuid.UUID{x})

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)

	first, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, 1, first.Summary.Scheduled)

	// Second run sees no unscheduled meetings left.
	second, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, 0, second.Summary.Total)
	assert.Empty(t, second.Outcomes)
}

func TestLastResultReadsCacheOnly(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)

	_, appErr := svc.LastResult(context.Background())
	require.NotNil(t, appErr, "no run yet")

	ran, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)

	last, appErr := svc.LastResult(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, ran.RunID, last.RunID)
	assert.Equal(t, ran.Summary, last.Summary)

	// Mutating the store after the run does not change the cached result.
	x := fixtureParticipant(participants, 1, true, [][2]int{{540, 720}})
	fixtureMeeting(meetings, "Later", 30, 1, []uuid.UUID{x})

	again, appErr := svc.LastResult(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, ran.RunID, again.RunID)
}

func TestSummaryMatchesLastRun(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	x := fixtureParticipant(participants, 1, true, [][2]int{{540, 720}})
	y := fixtureParticipant(participants, 2, true, [][2]int{{540, 600}})
	fixtureMeeting(meetings, "Feasible", 30, 1, []uuid.UUID{x})
	fixtureMeeting(meetings, "Infeasible", 120, 2, []uuid.UUID{x, y})

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)
	_, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)

	summary, appErr := svc.Summary(context.Background())
	require.Nil(t, appErr)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Scheduled)
	assert.Equal(t, 1, summary.Failed)
}

func TestRunWithInactiveParticipant(t *testing.T) {
	participants := &fakeParticipantRepo{availability: map[uuid.UUID][]participantEntity.AvailabilityInterval{}}
	meetings := newFakeMeetingRepo()
	cacheClient := newFakeCache()

	x := fixtureParticipant(participants, 1, false, [][2]int{{540, 720}})
	y := fixtureParticipant(participants, 2, true, [][2]int{{600, 660}})
	fixtureMeeting(meetings, "Pair", 30, 2, []uuid.UUID{x, y})

	svc := NewSchedulingService(participants, meetings, cacheClient, nil)
	resp, appErr := svc.Run(context.Background())
	require.Nil(t, appErr)

	require.Len(t, resp.Outcomes, 1)
	assert.False(t, resp.Outcomes[0].Scheduled)
}
