package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spacesedan/polarity/internal/models"
	"github.com/spacesedan/polarity/internal/topics"
)

// Topics cleans a caller-supplied corpus through the same pipeline as the
// analysis endpoints, vectorizes it, and factorizes it into topics.
// Nothing here is persisted.
func (h *Handler) Topics(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.TopicRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "invalid JSON body"})
	}
	if len(req.Documents) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "documents list cannot be empty"})
	}

	algorithm, verr := parseAlgorithm(req.Algorithm)
	if verr != "" {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: verr})
	}
	mode, verr := parseVectorizer(req.Vectorizer, algorithm)
	if verr != "" {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: verr})
	}

	corpus := make([]string, 0, len(req.Documents))
	for _, doc := range req.Documents {
		if ctx.Err() != nil {
			return c.JSON(http.StatusRequestTimeout, models.ErrorOutput{Error: "request canceled"})
		}
		cleaned, err := h.pipeline.Clean(doc)
		if err != nil {
			slog.Error("[API] Failed to clean corpus document", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
				Error: "an unexpected error occurred while cleaning the corpus",
			})
		}
		corpus = append(corpus, cleaned)
	}

	vopts := topics.VectorizerOptions{
		Mode:       mode,
		NGramMin:   req.NGramMin,
		NGramMax:   req.NGramMax,
		MinDocFreq: req.MinDocFreq,
	}
	// max_df follows the dual numeric convention: values in (0, 1] are a
	// document-frequency ratio, anything above 1 is an absolute count.
	if req.MaxDocFreq > 1 {
		vopts.MaxDocFreq = int(req.MaxDocFreq)
	} else {
		vopts.MaxDocRatio = req.MaxDocFreq
	}

	dtm, vocab, err := topics.BuildMatrix(corpus, vopts)
	if err != nil {
		if errors.Is(err, topics.ErrEmptyVocabulary) {
			return c.JSON(http.StatusBadRequest, models.ErrorOutput{
				Error: "no vocabulary survives the document-frequency thresholds; relax min_df/max_df or supply more documents",
			})
		}
		slog.Error("[API] Vectorization failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: err.Error()})
	}

	topicMap, err := topics.ExtractTopics(dtm, vocab, topics.TopicOptions{
		Algorithm:     algorithm,
		NumTopics:     req.NumTopics,
		TopTerms:      req.TopTerms,
		MaxIterations: req.MaxIter,
		RandomSeed:    req.Seed,
	})
	if err != nil {
		slog.Error("[API] Topic extraction failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
			Error: "an unexpected error occurred during topic extraction",
		})
	}

	h.metrics.TopicModelsTotal.WithLabelValues(algorithm.String()).Inc()

	return c.JSON(http.StatusOK, models.TopicResponse{
		Topics:               topicMap,
		RecommendedAlgorithm: topics.Recommend(len(req.Documents)).String(),
	})
}

func parseAlgorithm(s string) (topics.Algorithm, string) {
	switch s {
	case "", "nmf":
		return topics.NMF, ""
	case "lda":
		return topics.LDA, ""
	default:
		return topics.NMF, "algorithm must be one of: nmf, lda"
	}
}

// parseVectorizer defaults to the pairing the algorithms work best with:
// TF-IDF for NMF, raw counts for LDA.
func parseVectorizer(s string, algorithm topics.Algorithm) (topics.VectorizerMode, string) {
	switch s {
	case "count":
		return topics.Count, ""
	case "tfidf":
		return topics.TFIDF, ""
	case "":
		if algorithm == topics.LDA {
			return topics.Count, ""
		}
		return topics.TFIDF, ""
	default:
		return topics.Count, "vectorizer must be one of: count, tfidf"
	}
}
