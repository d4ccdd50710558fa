package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"golang.org/x/sync/errgroup"
)

// Orchestrator drives one batch run: per meeting, in input order, derive
// effective availability, find the best slot, commit it to the busy overlay
// and record an outcome. Meetings whose invited sets share no participant are
// independent; they are partitioned into connectivity groups and the groups
// evaluated in parallel, each with its own overlay, so commits for any given
// participant stay serialized.
type Orchestrator struct{}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// Run executes the batch against a frozen snapshot. The outcome list matches
// the meeting input order one-to-one. Validation failures and infeasibility
// are recorded per meeting and never abort the run; only a corrupted snapshot
// (malformed stored interval) or context cancellation returns an error.
// On cancellation the returned list covers only meetings fully processed.
func (o *Orchestrator) Run(ctx context.Context, snapshot Snapshot) ([]Outcome, error) {
	index := NewAvailabilityIndex()
	known := make(map[uuid.UUID]bool)
	for _, p := range snapshot.Participants {
		if !p.Active {
			continue
		}
		known[p.ID] = true
		for date, intervals := range p.Intervals {
			for _, iv := range intervals {
				if err := index.AddInterval(p.ID, date, iv); err != nil {
					return nil, fmt.Errorf("snapshot for participant %s on %s: %w", p.ID, date, err)
				}
			}
		}
	}

	results := make([]*Outcome, len(snapshot.Meetings))
	groups := groupByParticipants(snapshot.Meetings)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, group := range groups {
		eg.Go(func() error {
			overlay := NewBusyOverlay()
			for _, idx := range group {
				if err := egCtx.Err(); err != nil {
					return err
				}
				outcome := o.processMeeting(index, overlay, known, snapshot.Meetings[idx])
				results[idx] = &outcome
			}
			return nil
		})
	}
	runErr := eg.Wait()

	outcomes := make([]Outcome, 0, len(results))
	for _, r := range results {
		if r != nil {
			outcomes = append(outcomes, *r)
		}
	}
	return outcomes, runErr
}

// processMeeting performs the single Pending -> {Scheduled, Failed}
// transition for one meeting. The commit is atomic: either every attendee is
// marked busy for the slot or the overlay is untouched.
func (o *Orchestrator) processMeeting(
	index *AvailabilityIndex,
	overlay *BusyOverlay,
	known map[uuid.UUID]bool,
	m MeetingRequest,
) Outcome {
	outcome := Outcome{MeetingID: m.ID, Name: m.Name}

	if reason := validateMeeting(m); reason != "" {
		outcome.Reason = reason
		return outcome
	}

	invited := make([]uuid.UUID, 0, len(m.ParticipantIDs))
	for _, pid := range m.ParticipantIDs {
		if known[pid] {
			invited = append(invited, pid)
		}
	}

	effective := func(pid uuid.UUID, date string) []Interval {
		return overlay.EffectiveIntervalsOn(index, pid, date)
	}

	candidate, ok := FindBestSlot(m.TargetDate, m.DurationMinutes, m.MinimumParticipants, invited, effective)
	if !ok {
		outcome.Reason = ReasonInfeasible
		return outcome
	}

	slot := Interval{StartMinute: candidate.StartMinute, EndMinute: candidate.EndMinute}
	for _, pid := range candidate.Attendees {
		overlay.MarkBusy(pid, m.TargetDate, slot)
	}

	outcome.Scheduled = true
	outcome.Slot = &ScheduledSlot{
		Date:        m.TargetDate,
		StartMinute: candidate.StartMinute,
		EndMinute:   candidate.EndMinute,
	}
	outcome.Attendees = candidate.Attendees
	return outcome
}

func validateMeeting(m MeetingRequest) string {
	if m.DurationMinutes <= 0 {
		return "invalid request: duration must be positive"
	}
	if len(m.ParticipantIDs) == 0 {
		return "invalid request: no invited participants"
	}
	if m.MinimumParticipants < 1 {
		return "invalid request: minimum participants must be at least 1"
	}
	if m.MinimumParticipants > len(m.ParticipantIDs) {
		return "invalid request: minimum participants exceeds invited count"
	}
	return ""
}

// groupByParticipants partitions meeting indexes into groups connected by
// shared invited participants (union-find). Meetings inside a group keep
// their input order.
func groupByParticipants(meetings []MeetingRequest) [][]int {
	parent := make([]int, len(meetings))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	owner := make(map[uuid.UUID]int)
	for i, m := range meetings {
		for _, pid := range m.ParticipantIDs {
			if prev, ok := owner[pid]; ok {
				union(prev, i)
			} else {
				owner[pid] = i
			}
		}
	}

	grouped := make(map[int][]int)
	order := make([]int, 0)
	for i := range meetings {
		root := find(i)
		if _, ok := grouped[root]; !ok {
			order = append(order, root)
		}
		grouped[root] = append(grouped[root], i)
	}

	groups := make([][]int, 0, len(order))
	for _, root := range order {
		groups = append(groups, grouped[root])
	}
	return groups
}
