package main

import (
	"os"

	"cutplan/internal/runs"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderStatus colors a run status for terminal output.
func renderStatus(status runs.Status, colorize bool) string {
	text := string(status)
	if !colorize {
		return text
	}
	switch status {
	case runs.StatusCompleted:
		return ansiGreen + text + ansiReset
	case runs.StatusReview:
		return ansiYellow + text + ansiReset
	case runs.StatusFailed:
		return ansiRed + text + ansiReset
	default:
		return text
	}
}

// removeQuietly deletes a scratch file, ignoring failures. Leftover scratch
// audio is an annoyance, not an error worth failing the command over.
func removeQuietly(path string) {
	_ = os.Remove(path)
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
