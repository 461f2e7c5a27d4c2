package script

import (
	"errors"
	"testing"
)

func TestParseInlineDirectives(t *testing.T) {
	raw := `dialogue: Hello world
b-roll: [showing computer screen]
overlay: Welcome!
dialogue: How are you?`

	cues, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cues) != 4 {
		t.Fatalf("Parse() returned %d cues, want 4", len(cues))
	}

	want := []struct {
		kind Kind
		text string
	}{
		{KindDialogue, "Hello world"},
		{KindBRoll, "[showing computer screen]"},
		{KindOverlay, "Welcome!"},
		{KindDialogue, "How are you?"},
	}
	for i, w := range want {
		if cues[i].Kind != w.kind {
			t.Errorf("cue[%d].Kind = %q, want %q", i, cues[i].Kind, w.kind)
		}
		if cues[i].Text != w.text {
			t.Errorf("cue[%d].Text = %q, want %q", i, cues[i].Text, w.text)
		}
		if cues[i].Index != i {
			t.Errorf("cue[%d].Index = %d, want %d", i, cues[i].Index, i)
		}
	}
}

func TestParseBareDirectiveLines(t *testing.T) {
	raw := `dialogue:
Hello world

b-roll:
[computer screen]

dialogue:
How are you?`

	cues, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cues) != 3 {
		t.Fatalf("Parse() returned %d cues, want 3", len(cues))
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("cue[0].Text = %q, want %q", cues[0].Text, "Hello world")
	}
	if cues[2].Text != "How are you?" {
		t.Errorf("cue[2].Text = %q, want %q", cues[2].Text, "How are you?")
	}
}

func TestParseSkipsUnrecognizedLines(t *testing.T) {
	raw := `# production notes
title: My Video
dialogue: Hello world
random text between cues
overlay: Hi`

	cues, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("Parse() returned %d cues, want 2", len(cues))
	}
}

func TestParseBRollKeywords(t *testing.T) {
	cues, err := Parse("dialogue: Hello\nb-roll: [Showing Computer Screen]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	broll := cues[1]
	for _, keyword := range []string{"showing", "computer", "screen"} {
		if _, ok := broll.Keywords[keyword]; !ok {
			t.Errorf("keywords missing %q: %v", keyword, broll.Keywords)
		}
	}
	if len(broll.Keywords) != 3 {
		t.Errorf("keywords = %v, want 3 entries", broll.Keywords)
	}
}

func TestParseEmptyScript(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"no directives", "just some prose\nwith no cues"},
		{"only non-dialogue", "b-roll: desk shot\noverlay: Hello"},
		{"dangling directive", "dialogue:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.raw); !errors.Is(err, ErrEmptyScript) {
				t.Errorf("Parse() error = %v, want ErrEmptyScript", err)
			}
		})
	}
}

func TestDialogues(t *testing.T) {
	cues, err := Parse("dialogue: one\noverlay: x\ndialogue: two")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	dialogues := Dialogues(cues)
	if len(dialogues) != 2 {
		t.Fatalf("Dialogues() = %d cues, want 2", len(dialogues))
	}
	if dialogues[0].Index != 0 || dialogues[1].Index != 2 {
		t.Errorf("dialogue indices = %d, %d, want 0, 2", dialogues[0].Index, dialogues[1].Index)
	}
}
