// Package pipeline composes the cleaning and scoring stages into one
// request-scoped orchestrator. Cleaning runs Normalize then the
// lemmatizer; scoring always runs on the original text.
package pipeline

import (
	"context"
	"fmt"

	"github.com/spacesedan/polarity/internal/lemma"
	"github.com/spacesedan/polarity/internal/models"
	"github.com/spacesedan/polarity/internal/normalize"
	"github.com/spacesedan/polarity/internal/sentiment"
)

// Input is the sealed single-or-batch request shape. Handlers build one
// with ParseInput; Process dispatches on the concrete type.
type Input interface {
	isInput()
}

type Single struct {
	Text   string
	Format string
}

type Batch struct {
	Items []Single
}

func (Single) isInput() {}
func (Batch) isInput()  {}

// Pipeline holds the per-process processing configuration. The linguistic
// resources themselves live behind lemma.Load and sentiment's shared
// analyzer, so Pipeline values are cheap and safe to share.
type Pipeline struct {
	allowedPOS lemma.POSSet
}

func New() *Pipeline {
	return &Pipeline{allowedPOS: lemma.DefaultPOS()}
}

// NewWithPOS builds a pipeline keeping only the given parts of speech.
func NewWithPOS(allowed lemma.POSSet) *Pipeline {
	return &Pipeline{allowedPOS: allowed}
}

// Process dispatches on the input shape. A nil or unknown input yields a
// ShapeError value, never a panic; resource failures come back as ordinary
// wrapped errors.
func (p *Pipeline) Process(ctx context.Context, in Input) ([]models.AnalysisResult, error) {
	switch v := in.(type) {
	case Single:
		rec, err := p.ProcessSingle(ctx, v.Text)
		if err != nil {
			return nil, err
		}
		return []models.AnalysisResult{rec}, nil
	case Batch:
		texts := make([]string, len(v.Items))
		for i, item := range v.Items {
			texts[i] = item.Text
		}
		return p.ProcessBatch(ctx, texts)
	default:
		return nil, &ShapeError{Message: "not valid input: provide a single object or a list of objects"}
	}
}

// ProcessSingle cleans and scores one text.
func (p *Pipeline) ProcessSingle(ctx context.Context, text string) (models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return models.AnalysisResult{}, err
	}

	cleaned, err := p.Clean(text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	scores := sentiment.Score(text)

	return models.AnalysisResult{
		OriginalText:      text,
		CleanedText:       cleaned,
		SentimentNeg:      scores.Negative,
		SentimentNeu:      scores.Neutral,
		SentimentPos:      scores.Positive,
		SentimentCompound: scores.Compound,
	}, nil
}

// ProcessBatch cleans and scores each text in order. The output always
// matches the input in order and count; an empty batch returns an empty
// slice. The first per-item failure aborts the whole call.
func (p *Pipeline) ProcessBatch(ctx context.Context, texts []string) ([]models.AnalysisResult, error) {
	results := make([]models.AnalysisResult, 0, len(texts))
	for i, text := range texts {
		rec, err := p.ProcessSingle(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("[Pipeline] item %d: %w", i, err)
		}
		results = append(results, rec)
	}
	return results, nil
}

// Clean runs the full cleaning chain: normalize, then lemmatize keeping
// only the configured parts of speech.
func (p *Pipeline) Clean(text string) (string, error) {
	tagger, err := lemma.Load()
	if err != nil {
		return "", err
	}
	return tagger.LemmatizeFilter(normalize.Normalize(text), p.allowedPOS)
}
