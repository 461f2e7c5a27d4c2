// Package services holds cross-cutting helpers for the pipeline stages:
// sentinel error markers for failure classification, error wrapping with
// stage context, and context carriers for run metadata.
package services
