package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterSummary(t *testing.T) {
	outcomes := []Outcome{
		{MeetingID: mid(1), Scheduled: true},
		{MeetingID: mid(2), Scheduled: false, Reason: ReasonInfeasible},
		{MeetingID: mid(3), Scheduled: true},
	}

	r := NewReporter(outcomes)
	assert.Equal(t, outcomes, r.Outcomes())
	assert.Equal(t, Summary{Total: 3, Scheduled: 2, Failed: 1}, r.Summary())
}

func TestReporterEmptyRun(t *testing.T) {
	r := NewReporter(nil)
	assert.Empty(t, r.Outcomes())
	assert.Equal(t, Summary{}, r.Summary())
}
