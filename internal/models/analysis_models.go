package models

// AnalysisResult is one fully processed text: the submitted text, its
// cleaned form, and the four VADER polarity scores computed from the
// original (uncleaned) text. Immutable once produced by the pipeline.
type AnalysisResult struct {
	OriginalText      string  `json:"original_text"`
	CleanedText       string  `json:"cleaned_text"`
	SentimentNeg      float64 `json:"sentiment_neg"`
	SentimentNeu      float64 `json:"sentiment_neu"`
	SentimentPos      float64 `json:"sentiment_pos"`
	SentimentCompound float64 `json:"sentiment_compound"`
}

type SingleTextInput struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"`
}

type BatchAnalysisResponse struct {
	Results []AnalysisResult `json:"results"`
	Skipped []string         `json:"skipped,omitempty"`
}

type ErrorOutput struct {
	Error string `json:"error"`
}
