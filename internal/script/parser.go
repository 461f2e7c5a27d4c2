package script

import (
	"errors"
	"strings"

	"cutplan/internal/textutil"
)

// ErrEmptyScript reports a script with zero dialogue cues. Alignment is
// meaningless without at least one spoken line.
var ErrEmptyScript = errors.New("script: no dialogue cues found")

var directives = []Kind{KindDialogue, KindBRoll, KindOverlay}

// Parse converts raw script text into an ordered cue sequence. Blank lines
// and lines without a recognized directive are skipped, never fatal.
func Parse(raw string) ([]Cue, error) {
	lines := strings.Split(raw, "\n")
	var cues []Cue

	for i := 0; i < len(lines); i++ {
		kind, rest, ok := splitDirective(lines[i])
		if !ok {
			continue
		}
		text := strings.TrimSpace(rest)
		if text == "" {
			// Bare directive line: cue text sits on the next non-blank,
			// non-directive line.
			for j := i + 1; j < len(lines); j++ {
				candidate := strings.TrimSpace(lines[j])
				if candidate == "" {
					continue
				}
				if _, _, isDirective := splitDirective(lines[j]); isDirective {
					break
				}
				text = candidate
				i = j
				break
			}
		}
		if text == "" {
			continue
		}
		cue := Cue{
			Index: len(cues),
			Kind:  kind,
			Text:  text,
		}
		if kind == KindBRoll {
			cue.Keywords = textutil.WordSet(textutil.Tokenize(stripMarkers(text)))
		}
		cues = append(cues, cue)
	}

	if dialogueCount(cues) == 0 {
		return nil, ErrEmptyScript
	}
	return cues, nil
}

// splitDirective returns the cue kind and the remainder of the line when the
// line starts with a known directive prefix.
func splitDirective(line string) (Kind, string, bool) {
	trimmed := strings.TrimSpace(line)
	lowered := strings.ToLower(trimmed)
	for _, kind := range directives {
		prefix := string(kind) + ":"
		if strings.HasPrefix(lowered, prefix) {
			return kind, trimmed[len(prefix):], true
		}
	}
	return "", "", false
}

// stripMarkers removes the square-bracket convention some authors use around
// b-roll descriptions ("[showing computer screen]").
func stripMarkers(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	return text
}

func dialogueCount(cues []Cue) int {
	count := 0
	for _, cue := range cues {
		if cue.IsDialogue() {
			count++
		}
	}
	return count
}

// Dialogues returns the dialogue cues in script order.
func Dialogues(cues []Cue) []Cue {
	out := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if cue.IsDialogue() {
			out = append(out, cue)
		}
	}
	return out
}
