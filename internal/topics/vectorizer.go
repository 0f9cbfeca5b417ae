// Package topics builds document-term matrices from cleaned corpora and
// factorizes them into topics. Matrices follow the term-by-document
// convention (rows are vocabulary terms, columns are documents) so they
// feed straight into the nlp transformers.
package topics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/james-bowman/nlp"
	"github.com/kljensen/snowball/english"
	"gonum.org/v1/gonum/mat"
)

type VectorizerMode int

const (
	Count VectorizerMode = iota
	TFIDF
)

func (m VectorizerMode) String() string {
	if m == TFIDF {
		return "tfidf"
	}
	return "count"
}

// VectorizerOptions control vocabulary construction. MinDocFreq and
// MaxDocFreq are absolute document counts (MaxDocFreq 0 means unlimited);
// MaxDocRatio caps vocabulary terms by document-frequency ratio and
// defaults to 1.0.
type VectorizerOptions struct {
	Mode        VectorizerMode
	NGramMin    int
	NGramMax    int
	MinDocFreq  int
	MaxDocFreq  int
	MaxDocRatio float64
}

func DefaultVectorizerOptions() VectorizerOptions {
	return VectorizerOptions{
		Mode:        Count,
		NGramMin:    1,
		NGramMax:    1,
		MinDocFreq:  2,
		MaxDocRatio: 1.0,
	}
}

var ErrEmptyVocabulary = errors.New("[Topics] vocabulary is empty after pruning")

// BuildMatrix turns a corpus of cleaned documents into a term-document
// matrix and its vocabulary. The vocabulary is sorted, so term indices are
// stable for a given corpus and options. Stop words never enter the
// vocabulary.
func BuildMatrix(corpus []string, opts VectorizerOptions) (*mat.Dense, []string, error) {
	if len(corpus) == 0 {
		return nil, nil, errors.New("[Topics] empty corpus")
	}
	opts = withVectorizerDefaults(opts)
	if opts.NGramMin > opts.NGramMax {
		return nil, nil, fmt.Errorf("[Topics] invalid ngram range %d-%d", opts.NGramMin, opts.NGramMax)
	}

	termCounts := make([]map[string]int, len(corpus))
	docFreq := make(map[string]int)
	for i, doc := range corpus {
		counts := make(map[string]int)
		for _, term := range extractTerms(doc, opts.NGramMin, opts.NGramMax) {
			counts[term]++
		}
		termCounts[i] = counts
		for term := range counts {
			docFreq[term]++
		}
	}

	maxDF := int(opts.MaxDocRatio * float64(len(corpus)))
	if opts.MaxDocFreq > 0 && opts.MaxDocFreq < maxDF {
		maxDF = opts.MaxDocFreq
	}

	var vocab []string
	for term, df := range docFreq {
		if df >= opts.MinDocFreq && df <= maxDF {
			vocab = append(vocab, term)
		}
	}
	if len(vocab) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}
	sort.Strings(vocab)

	counts := mat.NewDense(len(vocab), len(corpus), nil)
	for t, term := range vocab {
		for d := range corpus {
			counts.Set(t, d, float64(termCounts[d][term]))
		}
	}

	if opts.Mode == TFIDF {
		weighted, err := nlp.NewTfidfTransformer().FitTransform(counts)
		if err != nil {
			return nil, nil, fmt.Errorf("[Topics] tfidf weighting failed: %w", err)
		}
		return mat.DenseCopyOf(weighted), vocab, nil
	}

	return counts, vocab, nil
}

// extractTerms tokenizes one cleaned document and expands the requested
// ngram range. Stop words are dropped before ngrams are formed, matching
// the usual vectorizer behavior.
func extractTerms(doc string, nMin, nMax int) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(doc)) {
		if english.IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	var terms []string
	for n := nMin; n <= nMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func withVectorizerDefaults(opts VectorizerOptions) VectorizerOptions {
	if opts.NGramMin == 0 {
		opts.NGramMin = 1
	}
	if opts.NGramMax == 0 {
		opts.NGramMax = opts.NGramMin
	}
	if opts.MinDocFreq == 0 {
		opts.MinDocFreq = 1
	}
	if opts.MaxDocRatio == 0 {
		opts.MaxDocRatio = 1.0
	}
	return opts
}
