// Package api wires the processing pipeline to the HTTP surface. Request
// validation lives here, before the orchestrator is ever invoked.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spacesedan/polarity/internal/models"
	"github.com/spacesedan/polarity/internal/monitoring"
	"github.com/spacesedan/polarity/internal/normalize"
	"github.com/spacesedan/polarity/internal/pipeline"
)

const (
	MinTextLength = 5
	Language      = "English"

	formatMarkdown = "markdown"
)

// ResultStore persists processed records. Batch writes are a single
// transactional unit.
type ResultStore interface {
	InsertResult(ctx context.Context, rec models.AnalysisResult, language string) error
	BatchInsertResults(ctx context.Context, recs []models.AnalysisResult, language string) error
}

// ResultCache is an optional read-through cache over the pipeline.
type ResultCache interface {
	Get(ctx context.Context, text string) (models.AnalysisResult, bool)
	Set(ctx context.Context, rec models.AnalysisResult)
}

// ResultPublisher receives committed records for downstream delivery.
type ResultPublisher interface {
	Enqueue(results ...models.AnalysisResult)
}

type Handler struct {
	pipeline  *pipeline.Pipeline
	store     ResultStore
	cache     ResultCache     // nil when caching is disabled
	publisher ResultPublisher // nil when event publishing is disabled
	metrics   *monitoring.Metrics
}

func NewHandler(p *pipeline.Pipeline, store ResultStore, cache ResultCache, publisher ResultPublisher, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		pipeline:  p,
		store:     store,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	v1.POST("/analyze", h.Analyze)
	v1.POST("/analyze-single", h.AnalyzeSingle)
	v1.POST("/analyze-batch", h.AnalyzeBatch)
	v1.POST("/topics", h.Topics)
	e.GET("/healthz", h.Health)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Analyze is the dual-mode endpoint: a single object or a list of objects,
// dispatched on payload shape. Shape problems come back as 400 error
// bodies, never as faults.
func (h *Handler) Analyze(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "failed to read request body"})
	}

	in, err := pipeline.ParseInput(raw)
	if err != nil {
		var shapeErr *pipeline.ShapeError
		if errors.As(err, &shapeErr) {
			return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: shapeErr.Message})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorOutput{Error: "unexpected error parsing input"})
	}

	switch v := in.(type) {
	case pipeline.Single:
		return h.analyzeOne(c, models.SingleTextInput{Text: v.Text, Format: v.Format})
	case pipeline.Batch:
		inputs := make([]models.SingleTextInput, len(v.Items))
		for i, item := range v.Items {
			inputs[i] = models.SingleTextInput{Text: item.Text, Format: item.Format}
		}
		return h.analyzeMany(c, inputs)
	default:
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{
			Error: "not valid input: provide a single object or a list of objects",
		})
	}
}

func (h *Handler) AnalyzeSingle(c echo.Context) error {
	var input models.SingleTextInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "invalid JSON body"})
	}
	return h.analyzeOne(c, input)
}

func (h *Handler) AnalyzeBatch(c echo.Context) error {
	var inputs []models.SingleTextInput
	if err := c.Bind(&inputs); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "invalid JSON body"})
	}
	return h.analyzeMany(c, inputs)
}

func (h *Handler) analyzeOne(c echo.Context, input models.SingleTextInput) error {
	ctx := c.Request().Context()

	if msg := validateText(input.Text); msg != "" {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: msg})
	}

	rec, err := h.processText(ctx, prepareText(input))
	if err != nil {
		slog.Error("[API] Analysis failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
			Error: "an unexpected error occurred during text analysis",
		})
	}

	if err := h.store.InsertResult(ctx, rec, Language); err != nil {
		slog.Error("[API] Failed to save result", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
			Error: "an error occurred while saving the analysis results",
		})
	}

	if h.publisher != nil {
		h.publisher.Enqueue(rec)
	}

	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) analyzeMany(c echo.Context, inputs []models.SingleTextInput) error {
	ctx := c.Request().Context()

	if len(inputs) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{Error: "input list cannot be empty"})
	}

	var valid []models.SingleTextInput
	var skipped []string
	for i, input := range inputs {
		if msg := validateText(input.Text); msg != "" {
			skipped = append(skipped, fmt.Sprintf("item %d: %s", i, msg))
			continue
		}
		valid = append(valid, input)
	}

	if len(valid) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorOutput{
			Error: "no valid text inputs provided. " + strings.Join(skipped, " "),
		})
	}

	results := make([]models.AnalysisResult, 0, len(valid))
	for _, input := range valid {
		rec, err := h.processText(ctx, prepareText(input))
		if err != nil {
			slog.Error("[API] Batch analysis failed", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
				Error: "an unexpected error occurred during batch text analysis",
			})
		}
		results = append(results, rec)
	}

	// One transaction for the whole batch: either all rows land or none.
	if err := h.store.BatchInsertResults(ctx, results, Language); err != nil {
		slog.Error("[API] Failed to save batch", slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, models.ErrorOutput{
			Error: "an error occurred while saving the batch analysis results",
		})
	}

	if h.publisher != nil {
		h.publisher.Enqueue(results...)
	}

	return c.JSON(http.StatusOK, models.BatchAnalysisResponse{
		Results: results,
		Skipped: skipped,
	})
}

// processText runs one text through cache and pipeline and records the
// pipeline metrics.
func (h *Handler) processText(ctx context.Context, text string) (models.AnalysisResult, error) {
	if h.cache != nil {
		if rec, ok := h.cache.Get(ctx, text); ok {
			h.metrics.CacheHitsTotal.Inc()
			return rec, nil
		}
		h.metrics.CacheMissesTotal.Inc()
	}

	start := time.Now()
	rec, err := h.pipeline.ProcessSingle(ctx, text)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	h.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	h.metrics.TextsAnalyzedTotal.Inc()

	if h.cache != nil {
		h.cache.Set(ctx, rec)
	}
	return rec, nil
}

// prepareText applies the declared input format before the pipeline sees
// the text. Markdown is rendered to plain text; anything else passes
// through untouched.
func prepareText(input models.SingleTextInput) string {
	if input.Format == formatMarkdown {
		return normalize.StripMarkdown(input.Text)
	}
	return input.Text
}

// validateText enforces the API-layer contract: non-empty and at least
// MinTextLength characters after trimming. Returns an empty string when
// the text is acceptable.
func validateText(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "text field cannot be empty"
	}
	if len(trimmed) < MinTextLength {
		return fmt.Sprintf("text must be at least %d characters long", MinTextLength)
	}
	return ""
}
