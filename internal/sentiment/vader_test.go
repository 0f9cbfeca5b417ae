package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePolarity(t *testing.T) {
	pos := Score("I love this, it's great!")
	assert.Greater(t, pos.Compound, 0.0)

	neg := Score("I hate this, it's terrible!")
	assert.Less(t, neg.Compound, 0.0)
}

func TestScoreProportionsSumToOne(t *testing.T) {
	texts := []string{
		"I love this, it's great!",
		"I hate this, it's terrible!",
		"The package arrived on Tuesday.",
		"Pretty good overall, though the battery could be better.",
	}

	for _, text := range texts {
		s := Score(text)
		sum := s.Negative + s.Neutral + s.Positive
		assert.InDelta(t, 1.0, sum, 0.01, "text %q", text)
	}
}

func TestScoreBlankInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		s := Score(text)
		assert.Equal(t, Scores{Neutral: 1.0}, s)
	}
}

func TestScoreRanges(t *testing.T) {
	s := Score("An absolutely wonderful, fantastic experience!")
	assert.GreaterOrEqual(t, s.Negative, 0.0)
	assert.LessOrEqual(t, s.Negative, 1.0)
	assert.GreaterOrEqual(t, s.Positive, 0.0)
	assert.LessOrEqual(t, s.Positive, 1.0)
	assert.GreaterOrEqual(t, s.Compound, -1.0)
	assert.LessOrEqual(t, s.Compound, 1.0)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "positive", Label(0.7))
	assert.Equal(t, "negative", Label(-0.7))
	assert.Equal(t, "neutral", Label(0.05))
}
