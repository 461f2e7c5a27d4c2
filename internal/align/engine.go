package align

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"cutplan/internal/logging"
	"cutplan/internal/script"
	"cutplan/internal/services"
	"cutplan/internal/textutil"
	"cutplan/internal/transcript"
)

// Config carries the engine's thresholds and take-selection policy.
type Config struct {
	// AcceptanceThreshold is the minimum score for a confident match.
	AcceptanceThreshold float64
	// FloorThreshold is the minimum score for a span to be recorded at all.
	FloorThreshold float64
	// TieBreakWindow is the score epsilon within which candidates are tied.
	TieBreakWindow float64
	// MaxWindowSlack bounds window length at ±slack of the cue word count.
	MaxWindowSlack float64
	// PreferLaterTake resolves ties to the temporally later span. Retake
	// convention: later deliveries are usually the corrected ones.
	PreferLaterTake bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		AcceptanceThreshold: 0.75,
		FloorThreshold:      0.40,
		TieBreakWindow:      0.05,
		MaxWindowSlack:      0.50,
		PreferLaterTake:     true,
	}
}

// Assister proposes a source time range for a cue the local scorer could not
// confidently place. Implementations retry internally; the engine treats any
// error as a signal to keep the local result.
type Assister interface {
	ProposeSpan(ctx context.Context, cueText string, tokens []transcript.Token) (Proposal, error)
}

// Proposal is an assist-suggested source time range, in seconds.
type Proposal struct {
	Start float64
	End   float64
}

// Engine aligns dialogue cues against a transcript.
type Engine struct {
	cfg    Config
	logger *slog.Logger
	assist Assister
}

// Option customizes the engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAssister enables assist refinement of partial matches.
func WithAssister(assist Assister) Option {
	return func(e *Engine) {
		e.assist = assist
	}
}

// NewEngine constructs an alignment engine.
func NewEngine(cfg Config, opts ...Option) *Engine {
	engine := &Engine{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Align produces one Result per dialogue cue, in script order. Per-cue
// shortfalls never abort the batch; the error return is reserved for
// cancellation and internal invariant violations.
func (e *Engine) Align(ctx context.Context, cues []script.Cue, tokens []transcript.Token) ([]Result, Summary, error) {
	dialogues := script.Dialogues(cues)
	results := make([]Result, 0, len(dialogues))
	claims := newPool(len(tokens))

	for _, cue := range dialogues {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}
		cueCtx := services.WithCueIndex(ctx, cue.Index)
		result, err := e.alignCue(cueCtx, cue, tokens, claims)
		if err != nil {
			return nil, Summary{}, err
		}
		results = append(results, result)
	}

	if e.assist != nil {
		if err := e.refinePartials(ctx, cues, tokens, claims, results); err != nil {
			return nil, Summary{}, err
		}
	}

	summary := summarize(results)
	e.logger.Info("alignment complete",
		slog.Int("matched", summary.Matched),
		slog.Int("partial", summary.Partial),
		slog.Int("unmatched", summary.Unmatched))
	return results, summary, nil
}

func (e *Engine) alignCue(ctx context.Context, cue script.Cue, tokens []transcript.Token, claims *pool) (Result, error) {
	logger := logging.WithContext(ctx, e.logger)
	cueWords := textutil.Tokenize(cue.Text)
	if len(cueWords) == 0 {
		logger.Warn("cue has no scoreable words", slog.String("text", cue.Text))
		return Result{CueIndex: cue.Index, Status: StatusUnmatched}, nil
	}

	takes := e.collectTakes(cueWords, tokens, claims)
	best, ok := e.selectTake(takes)
	if !ok {
		logger.Debug("no span cleared the floor threshold")
		return Result{CueIndex: cue.Index, Status: StatusUnmatched}, nil
	}

	span := buildSpan(tokens, best.start, best.end)
	if best.score >= e.cfg.AcceptanceThreshold {
		if err := claims.Claim(best.start, best.end); err != nil {
			return Result{}, err
		}
		logger.Debug("cue matched",
			slog.Float64("score", best.score),
			slog.Float64("start", span.Start),
			slog.Float64("end", span.End),
			slog.Int("takes", len(takes)))
		return Result{CueIndex: cue.Index, Span: &span, Score: best.score, Status: StatusMatched}, nil
	}

	// Provisional: recorded for review but the tokens stay unclaimed so a
	// later, better-matching cue can use them.
	logger.Debug("cue partially matched",
		slog.Float64("score", best.score),
		slog.Float64("start", span.Start),
		slog.Float64("end", span.End))
	return Result{CueIndex: cue.Index, Span: &span, Score: best.score, Status: StatusPartial}, nil
}

// candidate is an ephemeral scored window over the transcript.
type candidate struct {
	start     int
	end       int
	score     float64
	startTime float64
}

// collectTakes slides variable-length windows across the unclaimed
// transcript and returns every span scoring at or above the floor threshold:
// the duplicate-take set for the cue.
func (e *Engine) collectTakes(cueWords []string, tokens []transcript.Token, claims *pool) []candidate {
	expected := len(cueWords)
	minLen := int(math.Ceil(float64(expected) * (1 - e.cfg.MaxWindowSlack)))
	if minLen < 1 {
		minLen = 1
	}
	maxLen := int(math.Floor(float64(expected) * (1 + e.cfg.MaxWindowSlack)))
	if maxLen < minLen {
		maxLen = minLen
	}

	cueFingerprint := textutil.NewFingerprint(cueWords)
	seen := make(map[[2]int]struct{})
	var takes []candidate

	for i := 0; i < len(tokens); i++ {
		for length := minLen; length <= maxLen; length++ {
			j := i + length
			if j > len(tokens) {
				break
			}
			if claims.Overlaps(i, j) {
				continue
			}
			start, end, words := weightedWindow(tokens, i, j)
			if len(words) == 0 {
				continue
			}
			key := [2]int{start, end}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			// Cheap pre-filter: no shared vocabulary means the exact
			// scorer cannot reach the floor.
			if textutil.CosineSimilarity(cueFingerprint, textutil.NewFingerprint(words)) == 0 {
				continue
			}
			score := textutil.SequenceSimilarity(cueWords, words)
			if score < e.cfg.FloorThreshold {
				continue
			}
			takes = append(takes, candidate{
				start:     start,
				end:       end,
				score:     score,
				startTime: tokens[start].Start,
			})
		}
	}
	return takes
}

// selectTake picks the winning take: highest score, with near-ties (within
// TieBreakWindow of the top score) resolved by the configured take policy.
func (e *Engine) selectTake(takes []candidate) (candidate, bool) {
	if len(takes) == 0 {
		return candidate{}, false
	}
	top := takes[0].score
	for _, take := range takes[1:] {
		if take.score > top {
			top = take.score
		}
	}

	var best candidate
	found := false
	for _, take := range takes {
		if take.score < top-e.cfg.TieBreakWindow {
			continue
		}
		if !found || e.preferred(take, best) {
			best = take
			found = true
		}
	}
	return best, found
}

// preferred reports whether take should win a near-tie against best.
func (e *Engine) preferred(take, best candidate) bool {
	if take.startTime == best.startTime {
		return take.score > best.score
	}
	if e.cfg.PreferLaterTake {
		return take.startTime > best.startTime
	}
	return take.startTime < best.startTime
}

// weightedWindow trims a raw window to its weighted tokens and returns the
// trimmed range with the scoreable words inside it.
func weightedWindow(tokens []transcript.Token, i, j int) (int, int, []string) {
	first, last := -1, -1
	words := make([]string, 0, j-i)
	for k := i; k < j; k++ {
		if !tokens[k].Weighted {
			continue
		}
		if first == -1 {
			first = k
		}
		last = k
		words = append(words, tokens[k].Norm)
	}
	if first == -1 {
		return 0, 0, nil
	}
	return first, last + 1, words
}

func buildSpan(tokens []transcript.Token, start, end int) Span {
	parts := make([]string, 0, end-start)
	for k := start; k < end; k++ {
		if word := strings.TrimSpace(tokens[k].Word); word != "" {
			parts = append(parts, word)
		}
	}
	return Span{
		StartToken: start,
		EndToken:   end,
		Start:      tokens[start].Start,
		End:        tokens[end-1].End,
		Text:       strings.Join(parts, " "),
	}
}

func summarize(results []Result) Summary {
	var summary Summary
	for _, result := range results {
		switch result.Status {
		case StatusMatched:
			summary.Matched++
		case StatusPartial:
			summary.Partial++
		case StatusUnmatched:
			summary.Unmatched++
		}
	}
	return summary
}
