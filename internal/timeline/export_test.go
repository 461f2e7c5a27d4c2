package timeline

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cutplan/internal/align"
	"cutplan/internal/cutlist"
	"cutplan/internal/services"
)

func bounds(start, end float64) (*float64, *float64) {
	return &start, &end
}

func TestExport(t *testing.T) {
	start, end := bounds(10, 12)
	entries := []cutlist.Entry{
		{
			Order:       0,
			SourceStart: start,
			SourceEnd:   end,
			Text:        "Hello world",
			OverlayText: "SUBSCRIBE",
			BRollRef:    "clip1",
			Score:       1.0,
			Status:      align.StatusMatched,
		},
		{Order: 1, Status: align.StatusUnmatched},
	}

	out, err := Export(entries)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Status != "matched" || *out[0].SourceStart != 10 || *out[0].SourceEnd != 12 {
		t.Errorf("out[0] = %+v, want matched [10, 12]", out[0])
	}
	if out[1].SourceStart != nil || out[1].SourceEnd != nil {
		t.Errorf("out[1] bounds = %v, %v, want nulls", out[1].SourceStart, out[1].SourceEnd)
	}
}

func TestExportRejectsInvalidEntries(t *testing.T) {
	start, end := bounds(10, 12)
	backwardsStart, backwardsEnd := bounds(12, 10)

	tests := []struct {
		name  string
		entry cutlist.Entry
	}{
		{
			"negative duration",
			cutlist.Entry{Order: 0, SourceStart: backwardsStart, SourceEnd: backwardsEnd, Status: align.StatusMatched},
		},
		{
			"unmatched with bounds",
			cutlist.Entry{Order: 0, SourceStart: start, SourceEnd: end, Status: align.StatusUnmatched},
		},
		{
			"matched without bounds",
			cutlist.Entry{Order: 0, Status: align.StatusMatched},
		},
		{
			"half-set bounds",
			cutlist.Entry{Order: 0, SourceStart: start, Status: align.StatusMatched},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Export([]cutlist.Entry{tt.entry}); !errors.Is(err, services.ErrInternal) {
				t.Errorf("Export() error = %v, want ErrInternal", err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	start, end := bounds(0, 2.5)
	entries := []cutlist.Entry{
		{Order: 0, SourceStart: start, SourceEnd: end, Text: "Hello world", Score: 1.0, Status: align.StatusMatched},
		{Order: 1, Status: align.StatusUnmatched},
	}

	path := filepath.Join(t.TempDir(), "out", "timeline.json")
	if err := Write(path, entries); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var decoded []Entry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len(decoded) = %d, want 2", len(decoded))
	}
	if decoded[1].Status != "unmatched" {
		t.Errorf("decoded[1].Status = %q, want unmatched", decoded[1].Status)
	}
	// Null bounds must be explicit in the payload, not omitted.
	if !strings.Contains(string(data), `"sourceStart": null`) {
		t.Error("payload should spell out null bounds for unmatched entries")
	}
}
