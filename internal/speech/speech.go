package speech

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Transcriber converts one spoken utterance into text. The assistant treats
// transcription as an optional substitute source for the utterance; no
// microphone driver ships with this module.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// ErrNotConfigured is returned by the disabled transcriber.
var ErrNotConfigured = errors.New("speech transcription is not configured")

// Disabled is a Transcriber that always fails with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Transcribe(context.Context) (string, error) {
	return "", ErrNotConfigured
}

// corrections maps common transcription mishearings of project keys to the
// intended key. Matched on whole words, case-insensitively; longer phrases
// first so "are a" wins over "are".
var corrections = []struct {
	wrong *regexp.Regexp
	right string
}{
	{regexp.MustCompile(`(?i)\bare a\b`), "RA"},
	{regexp.MustCompile(`(?i)\bour a\b`), "RA"},
	{regexp.MustCompile(`(?i)\bare\b`), "RA"},
	{regexp.MustCompile(`(?i)\bour\b`), "RA"},
}

// CorrectProjectKey fixes common speech-to-text misinterpretations of
// project keys in a transcription.
func CorrectProjectKey(transcription string) string {
	for _, c := range corrections {
		transcription = c.wrong.ReplaceAllString(transcription, c.right)
	}
	return transcription
}

// Clean normalizes a transcription before it enters the pipeline: trims
// whitespace and applies the project-key corrections.
func Clean(transcription string) string {
	return CorrectProjectKey(strings.TrimSpace(transcription))
}

// Describe renders a transcription for echo-back in the terminal.
func Describe(transcription string) string {
	return fmt.Sprintf("You said: %s", transcription)
}
