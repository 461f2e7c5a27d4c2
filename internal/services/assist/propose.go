package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cutplan/internal/align"
	"cutplan/internal/transcript"
)

// proposalPrompt instructs the model to locate one scripted line inside the
// timestamped transcript and answer with a bare time range.
const proposalPrompt = `You locate a scripted line inside a timestamped transcript of raw footage.
The transcript contains false starts, filler words, and repeated takes of the same line.
Given the scripted line and the transcript words, find the single best spoken occurrence.
Prefer the cleanest, most complete delivery; when several takes are equally good, prefer the latest one.
Respond with JSON only, no prose: {"start": <seconds>, "end": <seconds>}.
If the line was never spoken, respond with {"start": -1, "end": -1}.`

type promptWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type proposalPayload struct {
	Line  string       `json:"line"`
	Words []promptWord `json:"words"`
}

// ProposeSpan asks the model for the source time range of cueText within the
// transcript. It satisfies the alignment engine's Assister contract; the
// caller re-scores the proposal locally before trusting it.
func (c *Client) ProposeSpan(ctx context.Context, cueText string, tokens []transcript.Token) (align.Proposal, error) {
	cueText = strings.TrimSpace(cueText)
	if cueText == "" {
		return align.Proposal{}, fmt.Errorf("assist propose: empty cue text")
	}
	if len(tokens) == 0 {
		return align.Proposal{}, fmt.Errorf("assist propose: empty transcript")
	}

	payload := proposalPayload{
		Line:  cueText,
		Words: make([]promptWord, 0, len(tokens)),
	}
	for _, token := range tokens {
		payload.Words = append(payload.Words, promptWord{
			Word:  token.Word,
			Start: token.Start,
			End:   token.End,
		})
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return align.Proposal{}, fmt.Errorf("assist propose: encode payload: %w", err)
	}

	content, err := c.CompleteJSON(ctx, proposalPrompt, string(encoded))
	if err != nil {
		return align.Proposal{}, err
	}

	var parsed struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	if err := DecodeJSONPayload(content, &parsed); err != nil {
		return align.Proposal{}, fmt.Errorf("assist propose: parse payload: %w", err)
	}
	if parsed.Start < 0 || parsed.End <= parsed.Start {
		return align.Proposal{}, fmt.Errorf("assist propose: no usable range [%v, %v]", parsed.Start, parsed.End)
	}
	return align.Proposal{Start: parsed.Start, End: parsed.End}, nil
}
