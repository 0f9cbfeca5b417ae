package models

type TopicRequest struct {
	Documents  []string `json:"documents"`
	Vectorizer string   `json:"vectorizer,omitempty"` // "count" or "tfidf"
	Algorithm  string   `json:"algorithm,omitempty"`  // "nmf" or "lda"
	NumTopics  int      `json:"n_topics,omitempty"`
	TopTerms   int      `json:"top_terms,omitempty"`
	NGramMin   int      `json:"ngram_min,omitempty"`
	NGramMax   int      `json:"ngram_max,omitempty"`
	MinDocFreq int      `json:"min_df,omitempty"`
	MaxDocFreq float64  `json:"max_df,omitempty"`
	MaxIter    int      `json:"max_iter,omitempty"`
	Seed       int64    `json:"seed,omitempty"`
}

type TopicResponse struct {
	Topics               map[string][]string `json:"topics"`
	RecommendedAlgorithm string              `json:"recommended_algorithm"`
}
