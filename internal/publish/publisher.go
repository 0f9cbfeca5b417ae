// Package publish buffers committed analysis results and flushes them to
// Kafka in batches, so the HTTP path never blocks on the broker.
package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/polarity/internal/clients"
	"github.com/spacesedan/polarity/internal/models"
	"github.com/spacesedan/polarity/internal/utils"
)

const (
	flushInterval  = 5 * time.Second
	flushBatchSize = 10
	publishRetries = 3
)

type Publisher struct {
	topic string
	buf   *utils.BatchBuffer[models.AnalysisResult]
}

func NewPublisher(topic string) *Publisher {
	return &Publisher{
		topic: topic,
		buf:   utils.NewBatchBuffer[models.AnalysisResult](),
	}
}

// Enqueue stages results for the next flush. Results reach the buffer only
// after their transaction committed.
func (p *Publisher) Enqueue(results ...models.AnalysisResult) {
	p.buf.Add(results...)
	if p.buf.Size() >= flushBatchSize {
		p.flush()
	}
}

// Start runs the periodic flush loop until ctx is canceled, draining the
// buffer one last time on shutdown.
func (p *Publisher) Start(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[Publisher] shutting down, flushing remaining results")
			p.flush()
			return
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Publisher) flush() {
	batch := p.buf.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var err error
	for i := 0; i < publishRetries; i++ {
		err = clients.PublishAnalysisResults(p.topic, batch)
		if err == nil {
			return
		}
		slog.Warn("[Publisher] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	slog.Error("[Publisher] Dropping batch after repeated publish failures",
		slog.Int("count", len(batch)),
		slog.String("error", err.Error()))
}
