// Package sentiment scores text polarity with VADER. The analyzer is
// created once and shared by every request; it is read-only after init.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// Scores are the four VADER outputs. Negative, Neutral and Positive are
// proportions summing to ~1; Compound is the aggregate polarity in [-1, 1].
type Scores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// Score computes polarity for the ORIGINAL, uncleaned text. Cleaning strips
// punctuation and casing that carry sentiment signal, so it must never run
// before scoring. Blank input scores as fully neutral.
func Score(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{Neutral: 1.0}
	}

	s := analyzer.PolarityScores(text)
	return Scores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

// Label buckets a compound score the way downstream consumers expect.
func Label(compound float64) string {
	switch {
	case compound >= 0.20:
		return "positive"
	case compound <= -0.20:
		return "negative"
	default:
		return "neutral"
	}
}
