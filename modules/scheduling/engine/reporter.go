package engine

// Summary aggregates one run's outcomes for status dashboards.
type Summary struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

// Reporter exposes a run's outcomes in submission order. Pure aggregation,
// no decision logic.
type Reporter struct {
	outcomes []Outcome
}

func NewReporter(outcomes []Outcome) *Reporter {
	return &Reporter{outcomes: outcomes}
}

// Outcomes returns the outcomes in the same order meetings were submitted.
func (r *Reporter) Outcomes() []Outcome {
	return r.outcomes
}

// Summary returns scheduled and failed counts.
func (r *Reporter) Summary() Summary {
	s := Summary{Total: len(r.outcomes)}
	for _, o := range r.outcomes {
		if o.Scheduled {
			s.Scheduled++
		} else {
			s.Failed++
		}
	}
	return s
}
