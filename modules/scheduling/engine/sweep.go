package engine

import (
	"sort"

	"github.com/google/uuid"
)

// EffectiveAvailabilityFunc yields a participant's effective (raw minus busy)
// intervals for a date, sorted ascending.
type EffectiveAvailabilityFunc func(participantID uuid.UUID, date string) []Interval

// Candidate is a feasible slot with the participants available for its full
// length. Attendees are sorted by id for deterministic output.
type Candidate struct {
	StartMinute int
	EndMinute   int
	Attendees   []uuid.UUID
}

// sweepEvent marks one participant entering (+1) or leaving (-1) the set of
// participants who could still start the meeting at the event's minute.
type sweepEvent struct {
	minute int
	delta  int
	id     uuid.UUID
}

// FindBestSlot finds the best slot of the given duration on the given date
// where at least minCount of the candidate participants are simultaneously
// available for the whole meeting.
//
// Each effective interval [s, e) admits meeting start minutes in [s, e-duration];
// those anchor windows are swept with +1/-1 events, leave events ordered
// before enter events at equal minutes so a participant whose window ends
// exactly where another's begins is never counted twice. Whenever the running
// count first reaches minCount at some minute, that minute is the earliest
// feasible anchor; all currently-open participants attend. Earlier anchors
// always win; the attendee set is everyone available, so a span offering more
// than the minimum keeps its bonus attendees.
//
// Returns false when no anchor anywhere in the date reaches minCount.
func FindBestSlot(
	date string,
	durationMinutes int,
	minCount int,
	participantIDs []uuid.UUID,
	effective EffectiveAvailabilityFunc,
) (Candidate, bool) {
	if durationMinutes <= 0 || durationMinutes > MinutesPerDay || minCount < 1 {
		return Candidate{}, false
	}

	events := make([]sweepEvent, 0, len(participantIDs)*2)
	for _, pid := range participantIDs {
		for _, iv := range effective(pid, date) {
			lastStart := iv.EndMinute - durationMinutes
			if lastStart < iv.StartMinute {
				continue // interval too short to host the meeting
			}
			events = append(events, sweepEvent{minute: iv.StartMinute, delta: +1, id: pid})
			events = append(events, sweepEvent{minute: lastStart + 1, delta: -1, id: pid})
		}
	}
	if len(events) == 0 {
		return Candidate{}, false
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].minute != events[j].minute {
			return events[i].minute < events[j].minute
		}
		return events[i].delta < events[j].delta
	})

	open := make(map[uuid.UUID]bool)

	for i := 0; i < len(events); {
		minute := events[i].minute
		for i < len(events) && events[i].minute == minute {
			if events[i].delta > 0 {
				open[events[i].id] = true
			} else {
				delete(open, events[i].id)
			}
			i++
		}

		if len(open) < minCount {
			continue
		}

		// First minute with enough coverage is the earliest anchor, and by
		// taking everyone currently open the attendee bonus is maximal.
		attendees := make([]uuid.UUID, 0, len(open))
		for pid := range open {
			attendees = append(attendees, pid)
		}
		sort.Slice(attendees, func(a, b int) bool {
			return attendees[a].String() < attendees[b].String()
		})

		return Candidate{
			StartMinute: minute,
			EndMinute:   minute + durationMinutes,
			Attendees:   attendees,
		}, true
	}

	return Candidate{}, false
}
