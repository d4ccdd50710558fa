package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// AvailabilityIndex holds each participant's availability as a minimal set of
// non-overlapping, non-touching intervals per date. It is built once per run
// and read-only afterwards.
type AvailabilityIndex struct {
	byParticipant map[uuid.UUID]map[string][]Interval
}

func NewAvailabilityIndex() *AvailabilityIndex {
	return &AvailabilityIndex{
		byParticipant: make(map[uuid.UUID]map[string][]Interval),
	}
}

// AddInterval merges an interval into the participant's set for its date.
// Overlapping or touching intervals coalesce into one; an interval already
// covered by an existing one leaves the set unchanged. Malformed intervals
// are rejected with ErrInvalidInterval, never silently normalized.
func (x *AvailabilityIndex) AddInterval(participantID uuid.UUID, date string, iv Interval) error {
	if !iv.Valid() {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, iv.StartMinute, iv.EndMinute)
	}

	dates, ok := x.byParticipant[participantID]
	if !ok {
		dates = make(map[string][]Interval)
		x.byParticipant[participantID] = dates
	}

	dates[date] = mergeInto(dates[date], iv)
	return nil
}

// IntervalsOn returns the participant's intervals for a date, sorted
// ascending by start. The returned slice must not be mutated.
func (x *AvailabilityIndex) IntervalsOn(participantID uuid.UUID, date string) []Interval {
	dates, ok := x.byParticipant[participantID]
	if !ok {
		return nil
	}
	return dates[date]
}

// mergeInto inserts iv into a sorted non-overlapping slice, coalescing with
// any interval it overlaps or touches.
func mergeInto(existing []Interval, iv Interval) []Interval {
	merged := make([]Interval, 0, len(existing)+1)

	inserted := false
	for _, cur := range existing {
		switch {
		case cur.EndMinute < iv.StartMinute:
			// strictly before, no contact
			merged = append(merged, cur)
		case iv.EndMinute < cur.StartMinute:
			// strictly after: emit iv first if not yet placed
			if !inserted {
				merged = append(merged, iv)
				inserted = true
			}
			merged = append(merged, cur)
		default:
			// overlap or touch: absorb cur into iv and keep scanning
			iv.StartMinute = min(iv.StartMinute, cur.StartMinute)
			iv.EndMinute = max(iv.EndMinute, cur.EndMinute)
		}
	}
	if !inserted {
		merged = append(merged, iv)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].StartMinute < merged[j].StartMinute
	})
	return merged
}
