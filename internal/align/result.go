package align

// Status classifies a per-cue alignment outcome. Shortfalls are not errors;
// they are accumulated and surfaced in the Summary.
type Status string

const (
	// StatusMatched means the best span scored at or above the acceptance
	// threshold and its token range was claimed.
	StatusMatched Status = "matched"
	// StatusPartial means the best span cleared the floor but not the
	// acceptance threshold. The span is recorded for review and left
	// unclaimed so a better-matching cue can still use those tokens.
	StatusPartial Status = "partial"
	// StatusUnmatched means no span cleared the floor threshold.
	StatusUnmatched Status = "unmatched"
)

// Span is a contiguous transcript token range [StartToken, EndToken) with
// derived source times and joined text.
type Span struct {
	StartToken int
	EndToken   int
	Start      float64
	End        float64
	Text       string
}

// Result is the alignment outcome for one dialogue cue. Span is nil exactly
// when Status is unmatched.
type Result struct {
	CueIndex int
	Span     *Span
	Score    float64
	Status   Status
}

// Summary aggregates per-cue outcomes for caller visibility.
type Summary struct {
	Matched   int
	Partial   int
	Unmatched int
}

// Total returns the number of dialogue cues processed.
func (s Summary) Total() int {
	return s.Matched + s.Partial + s.Unmatched
}
