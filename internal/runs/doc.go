// Package runs persists pipeline run history to SQLite so past alignment
// outcomes stay inspectable after the batch finishes.
package runs
