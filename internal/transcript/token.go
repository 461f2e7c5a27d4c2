package transcript

// Word is one timestamped word record as produced by the transcription
// collaborator. Start and End are in seconds; records are read-only once
// produced.
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Token is a normalized word ready for alignment. Norm is the lowercase
// punctuation-free form; Weighted reports whether the token participates in
// similarity scoring.
type Token struct {
	Word       string
	Norm       string
	Start      float64
	End        float64
	Confidence float64
	Weighted   bool
}
