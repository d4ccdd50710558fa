package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		raw  []Interval
		busy []Interval
		want []Interval
	}{
		{
			name: "no busy time",
			raw:  []Interval{{540, 720}},
			busy: nil,
			want: []Interval{{540, 720}},
		},
		{
			name: "busy in the middle splits in two",
			raw:  []Interval{{540, 720}},
			busy: []Interval{{600, 660}},
			want: []Interval{{540, 600}, {660, 720}},
		},
		{
			name: "busy at the head leaves one tail",
			raw:  []Interval{{540, 720}},
			busy: []Interval{{540, 600}},
			want: []Interval{{600, 720}},
		},
		{
			name: "busy at the tail leaves one head",
			raw:  []Interval{{540, 720}},
			busy: []Interval{{660, 720}},
			want: []Interval{{540, 660}},
		},
		{
			name: "busy covering everything leaves nothing",
			raw:  []Interval{{540, 720}},
			busy: []Interval{{500, 800}},
			want: []Interval{},
		},
		{
			name: "busy outside does not touch the raw interval",
			raw:  []Interval{{540, 720}},
			busy: []Interval{{100, 200}, {800, 900}},
			want: []Interval{{540, 720}},
		},
		{
			name: "several busy spans against several raw intervals",
			raw:  []Interval{{540, 660}, {700, 800}},
			busy: []Interval{{600, 720}, {780, 790}},
			want: []Interval{{540, 600}, {720, 780}, {790, 800}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtract(tt.raw, tt.busy))
		})
	}
}

func TestEffectiveIntervalsDoNotMutateIndex(t *testing.T) {
	idx := NewAvailabilityIndex()
	require.NoError(t, idx.AddInterval(pid(1), testDate, Interval{540, 720}))

	overlay := NewBusyOverlay()
	overlay.MarkBusy(pid(1), testDate, Interval{600, 660})

	assert.Equal(t, []Interval{{540, 600}, {660, 720}},
		overlay.EffectiveIntervalsOn(idx, pid(1), testDate))

	// raw availability stays pristine
	assert.Equal(t, []Interval{{540, 720}}, idx.IntervalsOn(pid(1), testDate))

	// a fresh overlay over the same index sees the raw intervals again
	fresh := NewBusyOverlay()
	assert.Equal(t, []Interval{{540, 720}}, fresh.EffectiveIntervalsOn(idx, pid(1), testDate))
}

func TestMarkBusyAccumulates(t *testing.T) {
	idx := NewAvailabilityIndex()
	require.NoError(t, idx.AddInterval(pid(1), testDate, Interval{540, 780}))

	overlay := NewBusyOverlay()
	overlay.MarkBusy(pid(1), testDate, Interval{540, 600})
	overlay.MarkBusy(pid(1), testDate, Interval{600, 660})
	overlay.MarkBusy(pid(1), testDate, Interval{700, 720})

	assert.Equal(t, []Interval{{660, 700}, {720, 780}},
		overlay.EffectiveIntervalsOn(idx, pid(1), testDate))
}

func TestBusyOnOtherDateIgnored(t *testing.T) {
	idx := NewAvailabilityIndex()
	require.NoError(t, idx.AddInterval(pid(1), testDate, Interval{540, 720}))

	overlay := NewBusyOverlay()
	overlay.MarkBusy(pid(1), "2024-01-11", Interval{540, 720})

	assert.Equal(t, []Interval{{540, 720}}, overlay.EffectiveIntervalsOn(idx, pid(1), testDate))
}
