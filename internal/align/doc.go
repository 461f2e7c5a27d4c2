// Package align matches dialogue cues against a normalized transcript. For
// each cue it searches the unclaimed transcript for the best-scoring span,
// handles duplicate takes with a configurable tie-break, and classifies the
// outcome as matched, partial, or unmatched. Cues are processed in script
// order so earlier cues get first claim on ambiguous spans.
package align
