package transcript

import (
	"errors"
	"fmt"

	"cutplan/internal/textutil"
)

// ErrMalformed reports transcript timestamps inverted beyond tolerance.
// This signals a defect in the upstream transcription engine, not a
// recoverable condition here.
var ErrMalformed = errors.New("transcript: malformed timestamps")

// fillerWords never carry alignment signal regardless of confidence.
var fillerWords = map[string]struct{}{
	"um":  {},
	"uh":  {},
	"uhm": {},
	"erm": {},
	"hmm": {},
	"mm":  {},
}

// Options controls normalization.
type Options struct {
	// ConfidenceFloor marks tokens below this confidence as unweighted.
	ConfidenceFloor float64
	// TimestampTolerance is the allowed backwards drift (seconds) between
	// consecutive start times before the input is rejected as malformed.
	TimestampTolerance float64
}

// DefaultOptions returns the normalization defaults.
func DefaultOptions() Options {
	return Options{
		ConfidenceFloor:    0.2,
		TimestampTolerance: 0.25,
	}
}

// Normalize validates and cleans raw word records into alignment tokens.
// The returned sequence preserves every input word so timing continuity
// survives; filler and low-confidence words are merely unweighted.
func Normalize(words []Word, opts Options) ([]Token, error) {
	tokens := make([]Token, 0, len(words))
	prevStart := 0.0

	for i, word := range words {
		if word.End <= word.Start {
			return nil, fmt.Errorf("%w: word %d (%q) has end %.3f <= start %.3f",
				ErrMalformed, i, word.Word, word.End, word.Start)
		}
		if i > 0 && word.Start < prevStart-opts.TimestampTolerance {
			return nil, fmt.Errorf("%w: word %d (%q) starts at %.3f before previous start %.3f",
				ErrMalformed, i, word.Word, word.Start, prevStart)
		}
		prevStart = word.Start

		norm := textutil.NormalizeWord(word.Word)
		weighted := norm != "" && word.Confidence >= opts.ConfidenceFloor
		if _, filler := fillerWords[norm]; filler {
			weighted = false
		}
		tokens = append(tokens, Token{
			Word:       word.Word,
			Norm:       norm,
			Start:      word.Start,
			End:        word.End,
			Confidence: word.Confidence,
			Weighted:   weighted,
		})
	}

	return tokens, nil
}
