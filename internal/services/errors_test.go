package services

import (
	"errors"
	"testing"

	"cutplan/internal/runs"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrInput, "parse", "script", "no cues", base)
	if !errors.Is(err, ErrInput) {
		t.Errorf("Wrap() lost marker: %v", err)
	}
	if !errors.Is(err, base) {
		t.Errorf("Wrap() lost cause: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "align", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Errorf("Wrap(nil marker) = %v, want ErrTransient", err)
	}
}

func TestFailureStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want runs.Status
	}{
		{"input error", Wrap(ErrInput, "parse", "", "", nil), runs.StatusReview},
		{"configuration error", Wrap(ErrConfiguration, "config", "", "", nil), runs.StatusReview},
		{"internal error", Wrap(ErrInternal, "align", "", "", nil), runs.StatusFailed},
		{"plain error", errors.New("boom"), runs.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureStatus(tt.err); got != tt.want {
				t.Errorf("FailureStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}
