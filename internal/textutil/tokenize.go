package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenSplitPattern matches separator runs between word tokens. Apostrophes
// stay inside tokens so contractions survive ("don't", "we're").
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9']+`)

var lowerCaser = cases.Lower(language.Und)

// Tokenize splits text into lowercase word tokens with punctuation removed.
// Every word is kept regardless of length; short words carry alignment
// signal in spoken dialogue.
func Tokenize(text string) []string {
	lowered := lowerCaser.String(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.Trim(token, "'")
		if token == "" {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// NormalizeWord lowercases a single word and strips surrounding punctuation.
// Returns "" when nothing alphanumeric remains.
func NormalizeWord(word string) string {
	tokens := Tokenize(word)
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, " ")
}

// WordSet builds a membership set from a token slice.
func WordSet(tokens []string) map[string]struct{} {
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
