package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mid(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("10000000-0000-0000-0000-0000000000%02d", n))
}

func scenarioParticipants() []Participant {
	return []Participant{
		{ID: pid(1), Name: "X", Active: true, Intervals: map[string][]Interval{testDate: {{540, 720}}}},
		{ID: pid(2), Name: "Y", Active: true, Intervals: map[string][]Interval{testDate: {{600, 660}}}},
		{ID: pid(3), Name: "Z", Active: true, Intervals: map[string][]Interval{testDate: {{630, 720}}}},
	}
}

func TestRunSchedulesEarliestPair(t *testing.T) {
	snapshot := Snapshot{
		Participants: scenarioParticipants(),
		Meetings: []MeetingRequest{{
			ID: mid(1), Name: "standup", TargetDate: testDate,
			DurationMinutes: 30, MinimumParticipants: 2,
			ParticipantIDs: []uuid.UUID{pid(1), pid(2), pid(3)},
		}},
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	got := outcomes[0]
	assert.True(t, got.Scheduled)
	assert.Empty(t, got.Reason)
	require.NotNil(t, got.Slot)
	assert.Equal(t, ScheduledSlot{Date: testDate, StartMinute: 600, EndMinute: 630}, *got.Slot)
	assert.Equal(t, []uuid.UUID{pid(1), pid(2)}, got.Attendees)
}

func TestRunReportsInfeasible(t *testing.T) {
	participants := scenarioParticipants()
	// shrink Y so no 30 minute window holds all three
	participants[1].Intervals = map[string][]Interval{testDate: {{600, 645}}}

	snapshot := Snapshot{
		Participants: participants,
		Meetings: []MeetingRequest{{
			ID: mid(1), Name: "all-hands", TargetDate: testDate,
			DurationMinutes: 30, MinimumParticipants: 3,
			ParticipantIDs: []uuid.UUID{pid(1), pid(2), pid(3)},
		}},
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	got := outcomes[0]
	assert.False(t, got.Scheduled)
	assert.Nil(t, got.Slot)
	assert.Empty(t, got.Attendees)
	assert.Equal(t, ReasonInfeasible, got.Reason)
}

// Two back-to-back hour meetings compete for X's 09:00-11:00. Submission
// order decides who gets the morning slot, and X is never double-booked.
func TestRunOrderSensitivityAndNoDoubleBooking(t *testing.T) {
	participants := []Participant{
		{ID: pid(1), Name: "X", Active: true, Intervals: map[string][]Interval{testDate: {{540, 660}}}},
	}
	first := MeetingRequest{
		ID: mid(1), Name: "first", TargetDate: testDate,
		DurationMinutes: 60, MinimumParticipants: 1,
		ParticipantIDs: []uuid.UUID{pid(1)},
	}
	second := MeetingRequest{
		ID: mid(2), Name: "second", TargetDate: testDate,
		DurationMinutes: 60, MinimumParticipants: 1,
		ParticipantIDs: []uuid.UUID{pid(1)},
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), Snapshot{
		Participants: participants,
		Meetings:     []MeetingRequest{first, second},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, ScheduledSlot{Date: testDate, StartMinute: 540, EndMinute: 600}, *outcomes[0].Slot)
	assert.Equal(t, ScheduledSlot{Date: testDate, StartMinute: 600, EndMinute: 660}, *outcomes[1].Slot)

	// reversed submission order flips the slots
	reversed, err := NewOrchestrator().Run(context.Background(), Snapshot{
		Participants: participants,
		Meetings:     []MeetingRequest{second, first},
	})
	require.NoError(t, err)
	require.Len(t, reversed, 2)
	assert.Equal(t, mid(2), reversed[0].MeetingID)
	assert.Equal(t, ScheduledSlot{Date: testDate, StartMinute: 540, EndMinute: 600}, *reversed[0].Slot)
	assert.Equal(t, ScheduledSlot{Date: testDate, StartMinute: 600, EndMinute: 660}, *reversed[1].Slot)

	assertNoDoubleBooking(t, outcomes)
	assertNoDoubleBooking(t, reversed)
}

func assertNoDoubleBooking(t *testing.T, outcomes []Outcome) {
	t.Helper()
	type slotRef struct {
		slot ScheduledSlot
	}
	byParticipant := make(map[uuid.UUID][]slotRef)
	for _, o := range outcomes {
		if !o.Scheduled {
			continue
		}
		for _, a := range o.Attendees {
			byParticipant[a] = append(byParticipant[a], slotRef{slot: *o.Slot})
		}
	}
	for p, slots := range byParticipant {
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				a, b := slots[i].slot, slots[j].slot
				if a.Date != b.Date {
					continue
				}
				overlap := a.StartMinute < b.EndMinute && b.StartMinute < a.EndMinute
				assert.False(t, overlap, "participant %s booked into %v and %v", p, a, b)
			}
		}
	}
}

func TestRunValidationFailuresDoNotAbortBatch(t *testing.T) {
	snapshot := Snapshot{
		Participants: scenarioParticipants(),
		Meetings: []MeetingRequest{
			{
				ID: mid(1), Name: "zero duration", TargetDate: testDate,
				DurationMinutes: 0, MinimumParticipants: 1,
				ParticipantIDs: []uuid.UUID{pid(1)},
			},
			{
				ID: mid(2), Name: "minimum too high", TargetDate: testDate,
				DurationMinutes: 30, MinimumParticipants: 3,
				ParticipantIDs: []uuid.UUID{pid(1), pid(2)},
			},
			{
				ID: mid(3), Name: "nobody invited", TargetDate: testDate,
				DurationMinutes: 30, MinimumParticipants: 1,
			},
			{
				ID: mid(4), Name: "fine", TargetDate: testDate,
				DurationMinutes: 30, MinimumParticipants: 1,
				ParticipantIDs: []uuid.UUID{pid(1)},
			},
		},
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.False(t, outcomes[0].Scheduled)
	assert.Contains(t, outcomes[0].Reason, "invalid request")
	assert.False(t, outcomes[1].Scheduled)
	assert.Contains(t, outcomes[1].Reason, "invalid request")
	assert.False(t, outcomes[2].Scheduled)
	assert.Contains(t, outcomes[2].Reason, "invalid request")
	assert.True(t, outcomes[3].Scheduled)
}

func TestRunSkipsInactiveParticipants(t *testing.T) {
	participants := scenarioParticipants()
	participants[0].Active = false // X out of office

	snapshot := Snapshot{
		Participants: participants,
		Meetings: []MeetingRequest{{
			ID: mid(1), Name: "pair", TargetDate: testDate,
			DurationMinutes: 30, MinimumParticipants: 2,
			ParticipantIDs: []uuid.UUID{pid(1), pid(2), pid(3)},
		}},
	}

	outcomes, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	// without X the earliest pair is Y+Z at 10:30
	got := outcomes[0]
	require.True(t, got.Scheduled)
	assert.Equal(t, 630, got.Slot.StartMinute)
	assert.Equal(t, []uuid.UUID{pid(2), pid(3)}, got.Attendees)
}

func TestRunCorruptSnapshotIsFatal(t *testing.T) {
	snapshot := Snapshot{
		Participants: []Participant{{
			ID: pid(1), Active: true,
			Intervals: map[string][]Interval{testDate: {{600, 540}}},
		}},
		Meetings: []MeetingRequest{{
			ID: mid(1), Name: "m", TargetDate: testDate,
			DurationMinutes: 30, MinimumParticipants: 1,
			ParticipantIDs: []uuid.UUID{pid(1)},
		}},
	}

	_, err := NewOrchestrator().Run(context.Background(), snapshot)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestRunDeterminism(t *testing.T) {
	snapshot := Snapshot{
		Participants: scenarioParticipants(),
		Meetings: []MeetingRequest{
			{
				ID: mid(1), Name: "a", TargetDate: testDate,
				DurationMinutes: 30, MinimumParticipants: 2,
				ParticipantIDs: []uuid.UUID{pid(1), pid(2)},
			},
			{
				ID: mid(2), Name: "b", TargetDate: testDate,
				DurationMinutes: 45, MinimumParticipants: 1,
				ParticipantIDs: []uuid.UUID{pid(3)},
			},
			{
				ID: mid(3), Name: "c", TargetDate: testDate,
				DurationMinutes: 30, MinimumParticipants: 2,
				ParticipantIDs: []uuid.UUID{pid(1), pid(3)},
			},
		},
	}

	first, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)
	second, err := NewOrchestrator().Run(context.Background(), snapshot)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot := Snapshot{
		Participants: scenarioParticipants(),
		Meetings: []MeetingRequest{{
			ID: mid(1), Name: "m", TargetDate: testDate,
			DurationMinutes: 30, MinimumParticipants: 1,
			ParticipantIDs: []uuid.UUID{pid(1)},
		}},
	}

	outcomes, err := NewOrchestrator().Run(ctx, snapshot)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

// Meetings with disjoint invited sets land in separate groups; meetings
// sharing a participant, even transitively, stay together in input order.
func TestGroupByParticipants(t *testing.T) {
	meetings := []MeetingRequest{
		{ID: mid(1), ParticipantIDs: []uuid.UUID{pid(1), pid(2)}},
		{ID: mid(2), ParticipantIDs: []uuid.UUID{pid(3)}},
		{ID: mid(3), ParticipantIDs: []uuid.UUID{pid(2), pid(4)}},
		{ID: mid(4), ParticipantIDs: []uuid.UUID{pid(4), pid(1)}},
		{ID: mid(5), ParticipantIDs: []uuid.UUID{pid(5)}},
	}

	groups := groupByParticipants(meetings)
	require.Len(t, groups, 3)
	assert.Equal(t, []int{0, 2, 3}, groups[0])
	assert.Equal(t, []int{1}, groups[1])
	assert.Equal(t, []int{4}, groups[2])
}
