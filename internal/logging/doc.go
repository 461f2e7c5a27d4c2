// Package logging builds slog loggers for the pipeline: a human-oriented
// console handler for interactive use, a JSON handler for machine
// consumption, and helpers that thread run metadata from context into
// structured fields.
package logging
