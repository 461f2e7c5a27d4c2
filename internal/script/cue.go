package script

// Kind identifies the cue variant. The set is closed; consumers switch
// exhaustively over these three values.
type Kind string

const (
	// KindDialogue is a spoken line that the alignment engine matches
	// against the transcript.
	KindDialogue Kind = "dialogue"
	// KindBRoll marks footage to overlay on the preceding dialogue line.
	KindBRoll Kind = "b-roll"
	// KindOverlay is on-screen text attached to the preceding dialogue line.
	KindOverlay Kind = "overlay"
)

// Cue is one authored unit from the script. Cues are immutable once parsed;
// Index is the sole ordering key downstream.
type Cue struct {
	Index    int
	Kind     Kind
	Text     string
	Keywords map[string]struct{}
}

// IsDialogue reports whether the cue consumes transcript spans.
func (c Cue) IsDialogue() bool {
	return c.Kind == KindDialogue
}
