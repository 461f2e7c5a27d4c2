package transcript

import (
	"encoding/json"
	"fmt"
	"os"
)

// wordRecord tolerates both boundary spellings for per-word confidence:
// "confidence" in the flat format and "score" in WhisperX JSON output.
type wordRecord struct {
	Word       string   `json:"word"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Confidence *float64 `json:"confidence"`
	Score      *float64 `json:"score"`
}

type segmentRecord struct {
	Words []wordRecord `json:"words"`
}

type segmentsPayload struct {
	Segments []segmentRecord `json:"segments"`
}

// LoadWords reads timestamped word records from a transcript JSON file.
// Two shapes are accepted: a flat array of word records, or the WhisperX
// segment document ({"segments": [{"words": [...]}]}).
func LoadWords(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return ParseWords(data)
}

// ParseWords decodes transcript JSON in either accepted shape.
func ParseWords(data []byte) ([]Word, error) {
	var flat []wordRecord
	if err := json.Unmarshal(data, &flat); err == nil {
		return convertWords(flat), nil
	}

	var payload segmentsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse transcript json: %w", err)
	}
	var records []wordRecord
	for _, segment := range payload.Segments {
		records = append(records, segment.Words...)
	}
	return convertWords(records), nil
}

func convertWords(records []wordRecord) []Word {
	words := make([]Word, 0, len(records))
	for _, rec := range records {
		confidence := 1.0
		switch {
		case rec.Confidence != nil:
			confidence = *rec.Confidence
		case rec.Score != nil:
			confidence = *rec.Score
		}
		words = append(words, Word{
			Word:       rec.Word,
			Start:      rec.Start,
			End:        rec.End,
			Confidence: confidence,
		})
	}
	return words
}
