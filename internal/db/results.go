// Package db persists analysis results. The pipeline hands records over
// and never reads the storage-assigned ids back.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spacesedan/polarity/internal/models"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS analysis_results (
	id           BIGSERIAL PRIMARY KEY,
	text         TEXT        NOT NULL,
	cleaned_text TEXT,
	language     VARCHAR(30),
	neg          DOUBLE PRECISION,
	neu          DOUBLE PRECISION,
	pos          DOUBLE PRECISION,
	compound     DOUBLE PRECISION,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertResult = `
INSERT INTO analysis_results (text, cleaned_text, language, neg, neu, pos, compound)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Store writes analysis results to PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// InitSchema creates the results table if it does not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createResultsTable); err != nil {
		return fmt.Errorf("[DB] failed to create analysis_results table: %w", err)
	}
	slog.Info("[DB] analysis_results schema ready")
	return nil
}

// InsertResult stores one record.
func (s *Store) InsertResult(ctx context.Context, rec models.AnalysisResult, language string) error {
	_, err := s.pool.Exec(ctx, insertResult,
		rec.OriginalText, rec.CleanedText, language,
		rec.SentimentNeg, rec.SentimentNeu, rec.SentimentPos, rec.SentimentCompound)
	if err != nil {
		return fmt.Errorf("[DB] failed to insert result: %w", err)
	}
	return nil
}

// BatchInsertResults stores every record inside one transaction: either
// all rows commit or none do.
func (s *Store) BatchInsertResults(ctx context.Context, recs []models.AnalysisResult, language string) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("[DB] failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(insertResult,
			rec.OriginalText, rec.CleanedText, language,
			rec.SentimentNeg, rec.SentimentNeu, rec.SentimentPos, rec.SentimentCompound)
	}

	br := tx.SendBatch(ctx, batch)
	for range recs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("[DB] batch insert failed, rolling back: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("[DB] failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("[DB] failed to commit batch: %w", err)
	}

	slog.Info("[DB] Stored batch of analysis results", slog.Int("count", len(recs)))
	return nil
}
