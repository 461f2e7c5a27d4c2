package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cutplan/internal/align"
	"cutplan/internal/cutlist"
	"cutplan/internal/services"
)

// Entry is the renderer boundary record. Unmatched placeholders carry null
// bounds so the renderer can skip or mark the gap.
type Entry struct {
	Order       int      `json:"order"`
	SourceStart *float64 `json:"sourceStart"`
	SourceEnd   *float64 `json:"sourceEnd"`
	Text        string   `json:"text,omitempty"`
	OverlayText string   `json:"overlayText,omitempty"`
	BRollRef    string   `json:"brollRef,omitempty"`
	Score       float64  `json:"score"`
	Status      string   `json:"status"`
}

// Export converts cut list entries into the boundary format. Structural
// defects (negative duration, bounds on an unmatched entry, half-set bounds)
// indicate an upstream invariant violation and are fatal.
func Export(entries []cutlist.Entry) ([]Entry, error) {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if err := validate(entry); err != nil {
			return nil, err
		}
		out = append(out, Entry{
			Order:       entry.Order,
			SourceStart: entry.SourceStart,
			SourceEnd:   entry.SourceEnd,
			Text:        entry.Text,
			OverlayText: entry.OverlayText,
			BRollRef:    entry.BRollRef,
			Score:       entry.Score,
			Status:      string(entry.Status),
		})
	}
	return out, nil
}

// Write exports entries and writes them to path as indented JSON.
func Write(path string, entries []cutlist.Entry) error {
	out, err := Export(entries)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrInternal, "timeline", "write", "encode timeline", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrConfiguration, "timeline", "write",
				fmt.Sprintf("create output directory %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "timeline", "write",
			fmt.Sprintf("write timeline %s", path), err)
	}
	return nil
}

func validate(entry cutlist.Entry) error {
	hasStart := entry.SourceStart != nil
	hasEnd := entry.SourceEnd != nil
	if hasStart != hasEnd {
		return services.Wrap(services.ErrInternal, "timeline", "export",
			fmt.Sprintf("entry %d has half-set source bounds", entry.Order), nil)
	}
	if entry.Status == align.StatusUnmatched {
		if hasStart {
			return services.Wrap(services.ErrInternal, "timeline", "export",
				fmt.Sprintf("unmatched entry %d carries source bounds", entry.Order), nil)
		}
		return nil
	}
	if !hasStart {
		return services.Wrap(services.ErrInternal, "timeline", "export",
			fmt.Sprintf("%s entry %d is missing source bounds", entry.Status, entry.Order), nil)
	}
	if *entry.SourceEnd <= *entry.SourceStart {
		return services.Wrap(services.ErrInternal, "timeline", "export",
			fmt.Sprintf("entry %d has non-positive duration [%v, %v]",
				entry.Order, *entry.SourceStart, *entry.SourceEnd), nil)
	}
	return nil
}
