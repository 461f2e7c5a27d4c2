package services

import (
	"errors"
	"fmt"
	"strings"

	"cutplan/internal/runs"
)

var (
	// ErrInput marks unusable caller-supplied input (empty script,
	// malformed transcript). Fatal, no partial run is attempted.
	ErrInput = errors.New("input error")
	// ErrConfiguration marks invalid or missing configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of external binaries (ffmpeg, uvx).
	ErrExternalTool = errors.New("external tool error")
	// ErrTransient marks failures expected to succeed on retry.
	ErrTransient = errors.New("transient failure")
	// ErrInternal marks invariant violations inside this engine. These are
	// defects, never silently patched.
	ErrInternal = errors.New("internal invariant violation")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a stage error to the run status the pipeline should
// persist after the stage fails.
func FailureStatus(err error) runs.Status {
	switch {
	case errors.Is(err, ErrInput), errors.Is(err, ErrConfiguration):
		return runs.StatusReview
	default:
		return runs.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
