package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var fixtureCorpus = []string{
	"dog bark loud dog",
	"cat purr soft cat",
	"dog chase cat",
	"market stock rise price",
	"stock price fall market",
	"trader buy stock price",
}

func TestBuildMatrixCounts(t *testing.T) {
	dtm, vocab, err := BuildMatrix(fixtureCorpus, VectorizerOptions{MinDocFreq: 2})
	require.NoError(t, err)

	nTerms, nDocs := dtm.Dims()
	assert.Equal(t, len(vocab), nTerms)
	assert.Equal(t, len(fixtureCorpus), nDocs)

	// vocabulary is sorted, so indices are stable
	assert.IsNonDecreasing(t, vocab)

	idx := map[string]int{}
	for i, term := range vocab {
		idx[term] = i
	}

	// "dog" appears twice in doc 0
	require.Contains(t, idx, "dog")
	assert.Equal(t, 2.0, dtm.At(idx["dog"], 0))
	assert.Equal(t, 0.0, dtm.At(idx["dog"], 3))

	// "loud" appears in only one document, pruned by min_df=2
	assert.NotContains(t, idx, "loud")
}

func TestBuildMatrixMaxDocFreq(t *testing.T) {
	corpus := []string{
		"common alpha word",
		"common beta word",
		"common gamma word",
	}

	_, vocab, err := BuildMatrix(corpus, VectorizerOptions{MinDocFreq: 1, MaxDocFreq: 2})
	require.NoError(t, err)
	assert.NotContains(t, vocab, "common")
	assert.NotContains(t, vocab, "word")
}

func TestBuildMatrixNGrams(t *testing.T) {
	corpus := []string{
		"stock price rise",
		"stock price fall",
	}

	_, vocab, err := BuildMatrix(corpus, VectorizerOptions{
		MinDocFreq: 2,
		NGramMin:   1,
		NGramMax:   2,
	})
	require.NoError(t, err)
	assert.Contains(t, vocab, "stock")
	assert.Contains(t, vocab, "stock price")
}

func TestBuildMatrixExcludesStopwords(t *testing.T) {
	corpus := []string{
		"the dog and the cat",
		"the dog or the cat",
	}

	_, vocab, err := BuildMatrix(corpus, VectorizerOptions{MinDocFreq: 1})
	require.NoError(t, err)
	assert.NotContains(t, vocab, "the")
	assert.NotContains(t, vocab, "and")
	assert.Contains(t, vocab, "dog")
}

func TestBuildMatrixErrors(t *testing.T) {
	_, _, err := BuildMatrix(nil, DefaultVectorizerOptions())
	assert.Error(t, err)

	// every term falls below min_df
	_, _, err = BuildMatrix([]string{"unique words only here"}, VectorizerOptions{MinDocFreq: 5})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestBuildMatrixTFIDFDemotesUbiquitousTerms(t *testing.T) {
	corpus := []string{
		"shared dog dog",
		"shared cat cat",
		"shared bird bird",
	}

	dtm, vocab, err := BuildMatrix(corpus, VectorizerOptions{Mode: TFIDF, MinDocFreq: 1})
	require.NoError(t, err)

	idx := map[string]int{}
	for i, term := range vocab {
		idx[term] = i
	}

	// "shared" occurs in every document; inverse document frequency should
	// weight it below the document-specific term in its own column.
	assert.Less(t, dtm.At(idx["shared"], 0), dtm.At(idx["dog"], 0))
}

func TestExtractTopicsNMF(t *testing.T) {
	dtm, vocab, err := BuildMatrix(fixtureCorpus, VectorizerOptions{MinDocFreq: 2})
	require.NoError(t, err)

	opts := TopicOptions{Algorithm: NMF, NumTopics: 2, TopTerms: 3, MaxIterations: 100, RandomSeed: 42}
	result, err := ExtractTopics(dtm, vocab, opts)
	require.NoError(t, err)

	require.Len(t, result, 2)
	require.Contains(t, result, "topic_1")
	require.Contains(t, result, "topic_2")
	for _, terms := range result {
		assert.Len(t, terms, 3)
	}
}

func TestExtractTopicsDeterministicForFixedSeed(t *testing.T) {
	dtm, vocab, err := BuildMatrix(fixtureCorpus, VectorizerOptions{MinDocFreq: 2})
	require.NoError(t, err)

	opts := TopicOptions{Algorithm: NMF, NumTopics: 2, TopTerms: 4, MaxIterations: 100, RandomSeed: 7}

	first, err := ExtractTopics(dtm, vocab, opts)
	require.NoError(t, err)
	second, err := ExtractTopics(dtm, vocab, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractTopicsLDA(t *testing.T) {
	dtm, vocab, err := BuildMatrix(fixtureCorpus, VectorizerOptions{MinDocFreq: 2})
	require.NoError(t, err)

	opts := TopicOptions{Algorithm: LDA, NumTopics: 2, TopTerms: 3, MaxIterations: 30, RandomSeed: 42}
	result, err := ExtractTopics(dtm, vocab, opts)
	require.NoError(t, err)

	require.Len(t, result, 2)
	for _, terms := range result {
		assert.Len(t, terms, 3)
		for _, term := range terms {
			assert.Contains(t, vocab, term)
		}
	}
}

func TestExtractTopicsValidatesShape(t *testing.T) {
	dtm := mat.NewDense(3, 2, nil)
	_, err := ExtractTopics(dtm, []string{"a", "b"}, DefaultTopicOptions())
	assert.Error(t, err)
}

func TestTopTermsTieBreaksByVocabularyOrder(t *testing.T) {
	vocab := []string{"alpha", "beta", "gamma", "delta"}
	weights := []float64{0.5, 0.5, 0.9, 0.5}

	terms := topTerms(weights, vocab, 4)
	assert.Equal(t, []string{"gamma", "alpha", "beta", "delta"}, terms)
}

func TestTopTermsCapsAtVocabulary(t *testing.T) {
	terms := topTerms([]float64{0.2, 0.1}, []string{"a", "b"}, 10)
	assert.Len(t, terms, 2)
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, NMF, Recommend(100))
	assert.Equal(t, NMF, Recommend(10000))
	assert.Equal(t, LDA, Recommend(10001))
}
