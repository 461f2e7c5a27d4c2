package services

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	got, ok := RunIDFromContext(ctx)
	if !ok || got != "run-123" {
		t.Errorf("RunIDFromContext() = %q, %v", got, ok)
	}
}

func TestRunIDEmptyIgnored(t *testing.T) {
	ctx := WithRunID(context.Background(), "")
	if _, ok := RunIDFromContext(ctx); ok {
		t.Error("empty run id should not be stored")
	}
}

func TestStageAndCueIndex(t *testing.T) {
	ctx := WithStage(context.Background(), "align")
	ctx = WithCueIndex(ctx, 3)

	if stage, ok := StageFromContext(ctx); !ok || stage != "align" {
		t.Errorf("StageFromContext() = %q, %v", stage, ok)
	}
	if index, ok := CueIndexFromContext(ctx); !ok || index != 3 {
		t.Errorf("CueIndexFromContext() = %d, %v", index, ok)
	}
}

func TestMissingValues(t *testing.T) {
	ctx := context.Background()
	if _, ok := StageFromContext(ctx); ok {
		t.Error("unexpected stage on empty context")
	}
	if _, ok := CueIndexFromContext(ctx); ok {
		t.Error("unexpected cue index on empty context")
	}
}
