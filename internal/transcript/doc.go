// Package transcript turns raw timestamped word records from the external
// transcription engine into cleaned, indexable token sequences. Tokens below
// the confidence floor and pure filler words remain in the sequence for
// timing continuity but are unweighted in similarity scoring.
package transcript
