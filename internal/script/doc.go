// Package script parses authored scripts into an ordered sequence of typed
// cues. A script is line-oriented UTF-8 text where each cue starts with a
// directive prefix (dialogue:, b-roll:, overlay:); the cue text may follow
// the directive on the same line or on the next non-blank line.
package script
