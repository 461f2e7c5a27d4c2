package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cutplan/internal/align"
	"cutplan/internal/broll"
	"cutplan/internal/config"
	"cutplan/internal/cutlist"
	"cutplan/internal/logging"
	"cutplan/internal/runs"
	"cutplan/internal/script"
	"cutplan/internal/services"
	"cutplan/internal/timeline"
	"cutplan/internal/transcript"
)

// Request names the inputs and output of one pipeline run.
type Request struct {
	// ScriptPath is the authored script file.
	ScriptPath string
	// TranscriptPath is the word-aligned transcript JSON.
	TranscriptPath string
	// RegistryPath is the optional b-roll asset registry JSON.
	RegistryPath string
	// OutputPath is where the timeline JSON is written.
	OutputPath string
}

// Outcome summarizes a finished run.
type Outcome struct {
	RunID        string
	Summary      align.Summary
	TimelinePath string
	Status       runs.Status
}

// Pipeline wires the engine stages together: parse, normalize, align, build,
// b-roll match, export. One run is one batch; the data directory lock keeps
// concurrent processes from interleaving run records.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *runs.Store
	assist align.Assister
}

// Option customizes the pipeline.
type Option func(*Pipeline)

// WithAssister enables assist refinement of partial matches.
func WithAssister(assist align.Assister) Option {
	return func(p *Pipeline) {
		p.assist = assist
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a pipeline. The store may be nil; run history is then not
// recorded (useful for dry runs and tests).
func New(cfg *config.Config, store *runs.Store, opts ...Option) *Pipeline {
	pipeline := &Pipeline{
		cfg:    cfg,
		logger: logging.NewNop(),
		store:  store,
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline
}

// Run executes the full pipeline for one script/transcript pair. Matching
// shortfalls are not errors; the returned error is reserved for unusable
// input, stage failures, and internal invariant violations. When the cut
// list has no renderable entries, the placeholder timeline is still exported
// and the run is recorded for review alongside the returned error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Outcome, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "setup", "ensure directories", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.DataDir, "cutplan.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "setup", "acquire data directory lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "pipeline", "setup",
			"another run holds the data directory lock", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	record := runs.Run{
		ID:             runID,
		CreatedAt:      time.Now().UTC(),
		ScriptPath:     req.ScriptPath,
		TranscriptPath: req.TranscriptPath,
	}

	outcome, err := p.execute(ctx, req, &record)
	if err != nil {
		record.Status = services.FailureStatus(err)
		record.ErrorMessage = err.Error()
	}
	p.record(ctx, logger, record)
	return outcome, err
}

func (p *Pipeline) execute(ctx context.Context, req Request, record *runs.Run) (*Outcome, error) {
	cues, err := p.parseScript(ctx, req.ScriptPath)
	if err != nil {
		return nil, err
	}

	tokens, err := p.normalizeTranscript(ctx, req.TranscriptPath)
	if err != nil {
		return nil, err
	}

	results, summary, err := p.align(ctx, cues, tokens)
	if err != nil {
		return nil, services.Wrap(services.ErrInternal, "pipeline", "align", "", err)
	}
	record.Matched = summary.Matched
	record.Partial = summary.Partial
	record.Unmatched = summary.Unmatched

	entries, buildErr := cutlist.Build(cues, results)
	if buildErr != nil && !errors.Is(buildErr, cutlist.ErrEmptyCutList) {
		return nil, buildErr
	}

	if req.RegistryPath != "" {
		if err := p.matchBRoll(ctx, req.RegistryPath, entries); err != nil {
			return nil, err
		}
	}

	stageCtx := services.WithStage(ctx, "export")
	if err := timeline.Write(req.OutputPath, entries); err != nil {
		return nil, err
	}
	record.TimelinePath = req.OutputPath
	logging.WithContext(stageCtx, p.logger).Info("timeline exported",
		slog.String("path", req.OutputPath),
		slog.Int("entries", len(entries)))

	outcome := &Outcome{
		RunID:        record.ID,
		Summary:      summary,
		TimelinePath: req.OutputPath,
		Status:       runs.StatusCompleted,
	}
	if buildErr != nil {
		// Placeholders were exported so the gaps stay visible, but there is
		// nothing to render; surface the run for review.
		outcome.Status = runs.StatusReview
		return outcome, services.Wrap(services.ErrInput, "pipeline", "build",
			fmt.Sprintf("no dialogue cue matched the transcript (%d unmatched)", summary.Unmatched),
			buildErr)
	}
	record.Status = runs.StatusCompleted
	return outcome, nil
}

func (p *Pipeline) parseScript(ctx context.Context, path string) ([]script.Cue, error) {
	stageCtx := services.WithStage(ctx, "parse")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "parse",
			fmt.Sprintf("read script %s", path), err)
	}
	cues, err := script.Parse(string(data))
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "parse", "", err)
	}
	logging.WithContext(stageCtx, p.logger).Info("script parsed",
		slog.Int("cues", len(cues)),
		slog.Int("dialogues", len(script.Dialogues(cues))))
	return cues, nil
}

func (p *Pipeline) normalizeTranscript(ctx context.Context, path string) ([]transcript.Token, error) {
	stageCtx := services.WithStage(ctx, "normalize")
	words, err := transcript.LoadWords(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "normalize",
			fmt.Sprintf("load transcript %s", path), err)
	}
	tokens, err := transcript.Normalize(words, transcript.Options{
		ConfidenceFloor:    p.cfg.Alignment.ConfidenceFloor,
		TimestampTolerance: p.cfg.Alignment.TimestampTolerance,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "pipeline", "normalize", "", err)
	}
	logging.WithContext(stageCtx, p.logger).Info("transcript normalized",
		slog.Int("tokens", len(tokens)))
	return tokens, nil
}

func (p *Pipeline) align(ctx context.Context, cues []script.Cue, tokens []transcript.Token) ([]align.Result, align.Summary, error) {
	stageCtx := services.WithStage(ctx, "align")
	engineCfg := align.Config{
		AcceptanceThreshold: p.cfg.Alignment.AcceptanceThreshold,
		FloorThreshold:      p.cfg.Alignment.FloorThreshold,
		TieBreakWindow:      p.cfg.Alignment.TieBreakWindow,
		MaxWindowSlack:      p.cfg.Alignment.MaxWindowSlack,
		PreferLaterTake:     p.cfg.Alignment.PreferLaterTake,
	}
	options := []align.Option{align.WithLogger(p.logger)}
	if p.assist != nil {
		options = append(options, align.WithAssister(p.assist))
	}
	engine := align.NewEngine(engineCfg, options...)
	return engine.Align(stageCtx, cues, tokens)
}

func (p *Pipeline) matchBRoll(ctx context.Context, registryPath string, entries []cutlist.Entry) error {
	stageCtx := services.WithStage(ctx, "broll")
	registry, err := broll.LoadRegistry(registryPath)
	if err != nil {
		return err
	}
	attached := 0
	for i := range entries {
		if len(entries[i].BRollKeywords) == 0 {
			continue
		}
		if ref, ok := registry.Match(entries[i].BRollKeywords, p.cfg.BRoll.MinOverlap); ok {
			entries[i].BRollRef = ref
			attached++
		}
	}
	logging.WithContext(stageCtx, p.logger).Info("b-roll matched",
		slog.Int("assets", registry.Len()),
		slog.Int("attached", attached))
	return nil
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, record runs.Run) {
	if p.store == nil {
		return
	}
	if record.Status == "" {
		record.Status = runs.StatusCompleted
	}
	if err := p.store.Record(ctx, record); err != nil {
		logger.Warn("failed to record run history", slog.Any("error", err))
	}
}
