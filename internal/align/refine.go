package align

import (
	"context"
	"log/slog"

	"cutplan/internal/logging"
	"cutplan/internal/script"
	"cutplan/internal/services"
	"cutplan/internal/textutil"
	"cutplan/internal/transcript"
)

// refinePartials submits provisional matches to the assist service and
// upgrades them when a verified proposal clears the acceptance threshold.
// Assist failures degrade to the local result; they never abort the batch.
func (e *Engine) refinePartials(ctx context.Context, cues []script.Cue, tokens []transcript.Token, claims *pool, results []Result) error {
	cueText := make(map[int]string, len(cues))
	for _, cue := range cues {
		cueText[cue.Index] = cue.Text
	}

	for idx := range results {
		result := &results[idx]
		if result.Status != StatusPartial {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		cueCtx := services.WithCueIndex(ctx, result.CueIndex)
		logger := logging.WithContext(cueCtx, e.logger)

		proposal, err := e.assist.ProposeSpan(cueCtx, cueText[result.CueIndex], tokens)
		if err != nil {
			logger.Warn("assist refinement failed, keeping local result", slog.Any("error", err))
			continue
		}

		start, end, ok := tokenRangeForTimes(tokens, proposal.Start, proposal.End)
		if !ok {
			logger.Debug("assist proposal covers no transcript tokens",
				slog.Float64("start", proposal.Start),
				slog.Float64("end", proposal.End))
			continue
		}
		if claims.Overlaps(start, end) {
			logger.Debug("assist proposal overlaps a claimed span")
			continue
		}

		cueWords := textutil.Tokenize(cueText[result.CueIndex])
		_, _, words := weightedWindow(tokens, start, end)
		score := textutil.SequenceSimilarity(cueWords, words)
		if score < e.cfg.AcceptanceThreshold {
			logger.Debug("assist proposal below acceptance threshold",
				slog.Float64("score", score))
			continue
		}

		if err := claims.Claim(start, end); err != nil {
			return err
		}
		span := buildSpan(tokens, start, end)
		result.Span = &span
		result.Score = score
		result.Status = StatusMatched
		logger.Info("assist refinement accepted", slog.Float64("score", score))
	}
	return nil
}

// tokenRangeForTimes maps a source time range to the [start, end) token
// range whose midpoints fall inside it.
func tokenRangeForTimes(tokens []transcript.Token, startTime, endTime float64) (int, int, bool) {
	start, end := -1, -1
	for i, token := range tokens {
		mid := (token.Start + token.End) / 2
		if mid < startTime || mid > endTime {
			continue
		}
		if start == -1 {
			start = i
		}
		end = i + 1
	}
	if start == -1 {
		return 0, 0, false
	}
	return start, end, true
}
