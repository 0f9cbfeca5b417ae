package lemma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIsCached(t *testing.T) {
	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLemmatizeFilterEmptyInput(t *testing.T) {
	tagger, err := Load()
	require.NoError(t, err)

	out, err := tagger.LemmatizeFilter("", DefaultPOS())
	require.NoError(t, err)
	assert.Equal(t, "", out)

	out, err = tagger.LemmatizeFilter("   \t ", DefaultPOS())
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestLemmatizeFilterDropsStopwordsAndPOS(t *testing.T) {
	tagger, err := Load()
	require.NoError(t, err)

	out, err := tagger.LemmatizeFilter(
		"The quick brown foxes are running quickly",
		NewPOSSet(Noun, Verb),
	)
	require.NoError(t, err)

	assert.Contains(t, out, "fox")
	assert.Contains(t, out, "run")
	assert.NotContains(t, out, "the")
	assert.NotContains(t, out, "quickly")
	assert.NotContains(t, out, "are")
}

func TestLemmatizeFilterJoinsWithSingleSpaces(t *testing.T) {
	tagger, err := Load()
	require.NoError(t, err)

	out, err := tagger.LemmatizeFilter("dogs chase cats", DefaultPOS())
	require.NoError(t, err)

	assert.False(t, strings.HasPrefix(out, " "))
	assert.False(t, strings.HasSuffix(out, " "))
	assert.NotContains(t, out, "  ")
}

func TestLemmatizeFilterNoQualifyingTokens(t *testing.T) {
	tagger, err := Load()
	require.NoError(t, err)

	// Only a determiner and a preposition: nothing survives the filter.
	out, err := tagger.LemmatizeFilter("the of", NewPOSSet(Noun))
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestPOSSet(t *testing.T) {
	s := NewPOSSet(Noun, Verb)
	assert.True(t, s.Contains(Noun))
	assert.False(t, s.Contains(Adverb))
	assert.Len(t, DefaultPOS(), 4)
}

func TestMapPennTag(t *testing.T) {
	tests := map[string]PartOfSpeech{
		"NN":    Noun,
		"NNS":   Noun,
		"NNP":   Noun,
		"VB":    Verb,
		"VBG":   Verb,
		"VBZ":   Verb,
		"JJ":    Adjective,
		"JJR":   Adjective,
		"RB":    Adverb,
		"RBS":   Adverb,
		"DT":    Other,
		"IN":    Other,
		"CC":    Other,
		"other": Other,
	}
	for tag, want := range tests {
		assert.Equal(t, want, mapPennTag(tag), "tag %q", tag)
	}
}
