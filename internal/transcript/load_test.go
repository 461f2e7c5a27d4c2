package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWordsFlatArray(t *testing.T) {
	words, err := ParseWords([]byte(`[
		{"word": "Hello", "start": 0.0, "end": 0.5, "confidence": 0.9},
		{"word": "world", "start": 0.5, "end": 1.0}
	]`))
	if err != nil {
		t.Fatalf("ParseWords() error = %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(words))
	}
	if words[0].Confidence != 0.9 {
		t.Errorf("words[0].Confidence = %v, want 0.9", words[0].Confidence)
	}
	// Missing confidence defaults to fully trusted.
	if words[1].Confidence != 1.0 {
		t.Errorf("words[1].Confidence = %v, want 1.0", words[1].Confidence)
	}
}

func TestParseWordsWhisperXSegments(t *testing.T) {
	words, err := ParseWords([]byte(`{
		"segments": [
			{"words": [
				{"word": "Hello", "start": 0.0, "end": 0.5, "score": 0.85},
				{"word": "world", "start": 0.5, "end": 1.0, "score": 0.92}
			]},
			{"words": [
				{"word": "again", "start": 2.0, "end": 2.5, "score": 0.7}
			]}
		]
	}`))
	if err != nil {
		t.Fatalf("ParseWords() error = %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("len(words) = %d, want 3", len(words))
	}
	// WhisperX spells confidence as "score".
	if words[0].Confidence != 0.85 {
		t.Errorf("words[0].Confidence = %v, want 0.85", words[0].Confidence)
	}
	if words[2].Word != "again" {
		t.Errorf("words[2].Word = %q, want again", words[2].Word)
	}
}

func TestParseWordsRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseWords([]byte(`"not a transcript"`)); err == nil {
		t.Fatal("ParseWords() should reject non-transcript JSON")
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.json")
	payload := `[{"word": "Hello", "start": 0, "end": 0.5, "confidence": 0.9}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords() error = %v", err)
	}
	if len(words) != 1 || words[0].Word != "Hello" {
		t.Errorf("words = %+v, want one Hello", words)
	}

	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadWords(missing) should fail")
	}
}
