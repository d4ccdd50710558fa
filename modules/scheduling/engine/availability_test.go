package engine

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pid(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-0000000000%02d", n))
}

const testDate = "2024-01-10"

func TestAddIntervalRejectsMalformed(t *testing.T) {
	idx := NewAvailabilityIndex()

	tests := []struct {
		name string
		iv   Interval
	}{
		{"end equals start", Interval{StartMinute: 600, EndMinute: 600}},
		{"end before start", Interval{StartMinute: 600, EndMinute: 540}},
		{"negative start", Interval{StartMinute: -10, EndMinute: 60}},
		{"end past midnight", Interval{StartMinute: 1400, EndMinute: 1500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := idx.AddInterval(pid(1), testDate, tt.iv)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}

	assert.Empty(t, idx.IntervalsOn(pid(1), testDate))
}

func TestAddIntervalMerges(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Interval
		want   []Interval
	}{
		{
			name:   "disjoint stay separate",
			inputs: []Interval{{540, 600}, {660, 720}},
			want:   []Interval{{540, 600}, {660, 720}},
		},
		{
			name:   "overlapping coalesce",
			inputs: []Interval{{540, 620}, {600, 700}},
			want:   []Interval{{540, 700}},
		},
		{
			name:   "touching coalesce",
			inputs: []Interval{{540, 600}, {600, 660}},
			want:   []Interval{{540, 660}},
		},
		{
			name:   "contained is a no-op",
			inputs: []Interval{{540, 720}, {600, 660}},
			want:   []Interval{{540, 720}},
		},
		{
			name:   "bridges several existing intervals",
			inputs: []Interval{{540, 570}, {600, 630}, {660, 690}, {560, 670}},
			want:   []Interval{{540, 690}},
		},
		{
			name:   "inserted out of order comes back sorted",
			inputs: []Interval{{660, 720}, {540, 600}, {60, 120}},
			want:   []Interval{{60, 120}, {540, 600}, {660, 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := NewAvailabilityIndex()
			for _, iv := range tt.inputs {
				require.NoError(t, idx.AddInterval(pid(1), testDate, iv))
			}
			assert.Equal(t, tt.want, idx.IntervalsOn(pid(1), testDate))
		})
	}
}

// After any insert sequence no two stored intervals may overlap or touch,
// and ordering must be ascending by start.
func TestMergeInvariant(t *testing.T) {
	idx := NewAvailabilityIndex()
	inserts := []Interval{
		{100, 200}, {150, 250}, {300, 400}, {250, 300}, {50, 60},
		{500, 510}, {505, 520}, {490, 530}, {60, 100},
	}
	for _, iv := range inserts {
		require.NoError(t, idx.AddInterval(pid(7), testDate, iv))
	}

	stored := idx.IntervalsOn(pid(7), testDate)
	require.NotEmpty(t, stored)
	for i := 1; i < len(stored); i++ {
		assert.Greater(t, stored[i].StartMinute, stored[i-1].EndMinute,
			"intervals %v and %v overlap or touch", stored[i-1], stored[i])
	}
}

func TestIntervalsOnIsolation(t *testing.T) {
	idx := NewAvailabilityIndex()
	require.NoError(t, idx.AddInterval(pid(1), testDate, Interval{540, 600}))
	require.NoError(t, idx.AddInterval(pid(2), testDate, Interval{0, 1440}))
	require.NoError(t, idx.AddInterval(pid(1), "2024-01-11", Interval{60, 120}))

	assert.Equal(t, []Interval{{540, 600}}, idx.IntervalsOn(pid(1), testDate))
	assert.Equal(t, []Interval{{60, 120}}, idx.IntervalsOn(pid(1), "2024-01-11"))
	assert.Empty(t, idx.IntervalsOn(pid(3), testDate))
	assert.Empty(t, idx.IntervalsOn(pid(1), "2024-02-01"))
}
