package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectProjectKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"show me are a project board", "show me RA project board"},
		{"show me our a project board", "show me RA project board"},
		{"what are the issues in are", "what RA the issues in RA"},
		{"Our sprint is behind", "RA sprint is behind"},
		// Whole words only; substrings stay untouched.
		{"compare the boards", "compare the boards"},
		{"hourly builds", "hourly builds"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CorrectProjectKey(tt.in), "in=%q", tt.in)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "RA sprint status", Clean("  are a sprint status \n"))
}

func TestDisabledTranscriber(t *testing.T) {
	_, err := Disabled{}.Transcribe(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
