package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	stageKey    contextKey = "stage"
	cueIndexKey contextKey = "cue_index"
)

// WithRunID annotates context with the pipeline run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCueIndex annotates context with the cue currently being aligned.
func WithCueIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, cueIndexKey, index)
}

// CueIndexFromContext extracts the cue index if present.
func CueIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(cueIndexKey)
	if v == nil {
		return 0, false
	}
	if index, ok := v.(int); ok {
		return index, true
	}
	return 0, false
}
