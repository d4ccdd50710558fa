package engine

import (
	"github.com/google/uuid"
)

// BusyOverlay tracks the time consumed by meetings committed earlier in the
// same run. Raw availability is never mutated; effective availability is
// recomputed from (raw, busy) on every read, which keeps a run replayable
// from the same snapshot.
type BusyOverlay struct {
	busy map[uuid.UUID]map[string][]Interval
}

func NewBusyOverlay() *BusyOverlay {
	return &BusyOverlay{
		busy: make(map[uuid.UUID]map[string][]Interval),
	}
}

// MarkBusy records a committed slot for one participant on one date.
func (o *BusyOverlay) MarkBusy(participantID uuid.UUID, date string, iv Interval) {
	dates, ok := o.busy[participantID]
	if !ok {
		dates = make(map[string][]Interval)
		o.busy[participantID] = dates
	}
	dates[date] = mergeInto(dates[date], iv)
}

// EffectiveIntervalsOn returns the participant's raw availability minus all
// busy time committed so far in the run.
func (o *BusyOverlay) EffectiveIntervalsOn(index *AvailabilityIndex, participantID uuid.UUID, date string) []Interval {
	raw := index.IntervalsOn(participantID, date)
	if len(raw) == 0 {
		return nil
	}

	dates, ok := o.busy[participantID]
	if !ok {
		return raw
	}
	busy := dates[date]
	if len(busy) == 0 {
		return raw
	}

	return subtract(raw, busy)
}

// subtract removes the busy intervals from each raw interval. Both inputs are
// sorted and non-overlapping; each raw interval yields zero, one or more
// remaining sub-intervals.
func subtract(raw, busy []Interval) []Interval {
	out := make([]Interval, 0, len(raw))

	for _, r := range raw {
		cursor := r.StartMinute
		for _, b := range busy {
			if b.EndMinute <= cursor {
				continue
			}
			if b.StartMinute >= r.EndMinute {
				break
			}
			if b.StartMinute > cursor {
				out = append(out, Interval{StartMinute: cursor, EndMinute: b.StartMinute})
			}
			cursor = max(cursor, b.EndMinute)
			if cursor >= r.EndMinute {
				break
			}
		}
		if cursor < r.EndMinute {
			out = append(out, Interval{StartMinute: cursor, EndMinute: r.EndMinute})
		}
	}

	return out
}
