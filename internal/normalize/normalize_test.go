package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Great Product", "great product"},
		{"strips bracketed annotation", "great [sarcasm]", "great "},
		{"strips punctuation", "good, stuff!", "good stuff"},
		{"bracket then punctuation", "good [ironic] stuff!", "good  stuff"},
		{"multiple brackets", "a [x] b [y] c", "a  b  c"},
		{"empty", "", ""},
		{"whitespace untouched", "a  b\tc", "a  b\tc"},
		{"symbols and digits", "win-win @ 100%", "winwin  100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Great [sarcasm] product!!!",
		"The QUICK brown fox... jumped?",
		"",
		"already clean text",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "docs", RemoveLinks("[docs](https://example.com/docs)"))
	assert.Equal(t, "see ", RemoveLinks("see https://example.com"))
	assert.Equal(t, "see ", RemoveLinks("see www.example.com"))
}

func TestStripMarkdown(t *testing.T) {
	got := StripMarkdown("# Heading\n\nSome **bold** text with a [link](https://example.com).")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "https://")
	assert.Contains(t, got, "Heading")
	assert.Contains(t, got, "bold")
	assert.Contains(t, got, "link")
}
