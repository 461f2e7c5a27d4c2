package cutlist

import (
	"errors"
	"sort"

	"cutplan/internal/align"
	"cutplan/internal/script"
	"cutplan/internal/services"
)

// ErrEmptyCutList reports that no entry carries renderable source bounds.
// Build still returns the placeholder entries alongside it so the caller can
// surface the authored content instead of dropping it.
var ErrEmptyCutList = errors.New("cut list has no renderable entries")

// Entry is the renderer-facing unit: one per dialogue cue, in script order.
// SourceStart and SourceEnd are nil exactly when Status is unmatched.
type Entry struct {
	Order         int
	CueIndex      int
	SourceStart   *float64
	SourceEnd     *float64
	Text          string
	OverlayText   string
	BRollKeywords map[string]struct{}
	BRollRef      string
	Score         float64
	Status        align.Status
}

// Renderable reports whether the entry carries source bounds.
func (e Entry) Renderable() bool {
	return e.SourceStart != nil && e.SourceEnd != nil
}

// Build assembles the cut list from alignment results and the original cue
// sequence. Each matched or partial result becomes an entry with its span
// bounds; unmatched cues become placeholder entries with nil bounds so the
// renderer can mark a gap instead of silently losing authored content.
// Overlay text and b-roll keywords attach to the dialogue cue they follow,
// up to the next dialogue cue.
func Build(cues []script.Cue, results []align.Result) ([]Entry, error) {
	byIndex := make(map[int]align.Result, len(results))
	for _, result := range results {
		byIndex[result.CueIndex] = result
	}

	var entries []Entry
	for pos, cue := range cues {
		if !cue.IsDialogue() {
			continue
		}
		result, ok := byIndex[cue.Index]
		if !ok {
			return nil, services.Wrap(services.ErrInternal, "cutlist", "build",
				"dialogue cue has no alignment result", nil)
		}

		entry := Entry{
			Order:    cue.Index,
			CueIndex: cue.Index,
			Text:     cue.Text,
			Score:    result.Score,
			Status:   result.Status,
		}
		if result.Span != nil {
			start, end := result.Span.Start, result.Span.End
			entry.SourceStart = &start
			entry.SourceEnd = &end
		}
		annotate(&entry, cues[pos+1:])
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})

	for _, entry := range entries {
		if entry.Renderable() {
			return entries, nil
		}
	}
	return entries, ErrEmptyCutList
}

// annotate copies the first overlay text and first b-roll keyword set found
// between this dialogue cue and the next one.
func annotate(entry *Entry, following []script.Cue) {
	for _, cue := range following {
		switch cue.Kind {
		case script.KindDialogue:
			return
		case script.KindOverlay:
			if entry.OverlayText == "" {
				entry.OverlayText = cue.Text
			}
		case script.KindBRoll:
			if entry.BRollKeywords == nil {
				entry.BRollKeywords = cue.Keywords
			}
		}
	}
}
