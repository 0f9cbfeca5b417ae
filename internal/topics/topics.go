package topics

import (
	"fmt"
	"sort"

	"github.com/james-bowman/nlp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

type Algorithm int

const (
	NMF Algorithm = iota
	LDA
)

func (a Algorithm) String() string {
	if a == LDA {
		return "lda"
	}
	return "nmf"
}

// nmfDocLimit is the corpus size up to which NMF is the recommended
// algorithm; larger corpora model better with LDA. A guideline surfaced to
// callers, never enforced.
const nmfDocLimit = 10000

func Recommend(nDocs int) Algorithm {
	if nDocs <= nmfDocLimit {
		return NMF
	}
	return LDA
}

type TopicOptions struct {
	Algorithm     Algorithm
	NumTopics     int
	TopTerms      int
	MaxIterations int
	RandomSeed    int64
}

func DefaultTopicOptions() TopicOptions {
	return TopicOptions{
		Algorithm:     NMF,
		NumTopics:     5,
		TopTerms:      10,
		MaxIterations: 200,
		RandomSeed:    42,
	}
}

// ExtractTopics factorizes a term-document matrix into NumTopics topics
// and returns each topic's top terms, ranked by descending weight with
// ties broken by vocabulary order. Labels are topic_1..topic_n in
// component order. Deterministic for a fixed matrix, options, and seed.
func ExtractTopics(dtm *mat.Dense, vocab []string, opts TopicOptions) (map[string][]string, error) {
	opts = withTopicDefaults(opts)
	nTerms, _ := dtm.Dims()
	if nTerms != len(vocab) {
		return nil, fmt.Errorf("[Topics] matrix has %d term rows but vocabulary has %d entries", nTerms, len(vocab))
	}
	if opts.NumTopics < 1 {
		return nil, fmt.Errorf("[Topics] invalid topic count %d", opts.NumTopics)
	}

	var topicWeights [][]float64
	switch opts.Algorithm {
	case LDA:
		weights, err := ldaTopicWeights(dtm, opts)
		if err != nil {
			return nil, err
		}
		topicWeights = weights
	default:
		w, _ := nmfFactorize(dtm, opts.NumTopics, opts.MaxIterations, opts.RandomSeed)
		topicWeights = make([][]float64, opts.NumTopics)
		for k := 0; k < opts.NumTopics; k++ {
			col := make([]float64, nTerms)
			mat.Col(col, k, w)
			topicWeights[k] = col
		}
	}

	result := make(map[string][]string, opts.NumTopics)
	for k, weights := range topicWeights {
		result[fmt.Sprintf("topic_%d", k+1)] = topTerms(weights, vocab, opts.TopTerms)
	}
	return result, nil
}

// ldaTopicWeights fits the nlp LatentDirichletAllocation on the matrix and
// reads back the topics-over-words components.
func ldaTopicWeights(dtm *mat.Dense, opts TopicOptions) ([][]float64, error) {
	lda := nlp.NewLatentDirichletAllocation(opts.NumTopics)
	lda.Iterations = opts.MaxIterations
	lda.Processes = 1 // single worker keeps the fit reproducible
	lda.Rnd = rand.New(rand.NewSource(uint64(opts.RandomSeed)))

	if _, err := lda.FitTransform(dtm); err != nil {
		return nil, fmt.Errorf("[Topics] LDA fit failed: %w", err)
	}

	components := lda.Components()
	nTopics, nTerms := components.Dims()
	weights := make([][]float64, nTopics)
	for t := 0; t < nTopics; t++ {
		row := make([]float64, nTerms)
		for w := 0; w < nTerms; w++ {
			row[w] = components.At(t, w)
		}
		weights[t] = row
	}
	return weights, nil
}

// topTerms ranks vocabulary terms by descending weight. The stable sort
// preserves vocabulary order among equal weights.
func topTerms(weights []float64, vocab []string, topN int) []string {
	idx := make([]int, len(vocab))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return weights[idx[i]] > weights[idx[j]]
	})

	if topN > len(idx) {
		topN = len(idx)
	}
	terms := make([]string, topN)
	for i := 0; i < topN; i++ {
		terms[i] = vocab[idx[i]]
	}
	return terms
}

func withTopicDefaults(opts TopicOptions) TopicOptions {
	if opts.NumTopics == 0 {
		opts.NumTopics = 5
	}
	if opts.TopTerms == 0 {
		opts.TopTerms = 10
	}
	if opts.MaxIterations == 0 {
		opts.MaxIterations = 200
	}
	if opts.RandomSeed == 0 {
		opts.RandomSeed = 42
	}
	return opts
}
