package runs

import "time"

// Status is the terminal state of a pipeline run.
type Status string

const (
	// StatusCompleted means a timeline with renderable entries was exported.
	StatusCompleted Status = "completed"
	// StatusReview means the run finished but needs operator attention
	// (bad input, or nothing renderable in the cut list).
	StatusReview Status = "review"
	// StatusFailed means the run aborted.
	StatusFailed Status = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID             string
	CreatedAt      time.Time
	ScriptPath     string
	TranscriptPath string
	TimelinePath   string
	Matched        int
	Partial        int
	Unmatched      int
	Status         Status
	ErrorMessage   string
}
