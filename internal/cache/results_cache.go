// Package cache keeps recently computed analysis results in Valkey so
// identical texts skip recomputation. The cache is best-effort: any cache
// failure falls back to the pipeline.
package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/polarity/config"
	"github.com/spacesedan/polarity/internal/models"
)

const (
	resultKeyPrefix  = "analysis:"
	resultTTLSeconds = 86400
)

var (
	cacheInstance *ResultsCache
	cacheOnce     sync.Once
)

type ResultsCache struct {
	client valkey.Client
	cfg    config.ValkeyConfig
	mu     sync.Mutex
}

// InitResultsCache connects to Valkey once per process. It panics when the
// server is unreachable: a misconfigured cache address is an operator
// error, not something to limp through.
func InitResultsCache(cfg config.ValkeyConfig) *ResultsCache {
	cacheOnce.Do(func() {
		client, err := newValkeyClient(cfg)
		if err != nil {
			panic(fmt.Errorf("[ResultsCache] failed to create Valkey client: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if c := client.Do(ctx, client.B().Ping().Build()); c.Error() != nil {
			panic(fmt.Errorf("[ResultsCache] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ResultsCache] Successfully connected to valkey")
		cacheInstance = &ResultsCache{client: client, cfg: cfg}
	})
	return cacheInstance
}

func newValkeyClient(cfg config.ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}
	return valkey.NewClient(opts)
}

func CloseResultsCache() {
	if cacheInstance != nil {
		cacheInstance.client.Close()
	}
}

// Get returns the cached record for a text, if present.
func (rc *ResultsCache) Get(ctx context.Context, text string) (models.AnalysisResult, bool) {
	res := rc.doWithRetry(ctx, func() valkey.Completed {
		return rc.client.B().Get().Key(keyForText(text)).Build()
	}, 3)
	if err := res.Error(); err != nil {
		if isConnectionError(err) {
			rc.recreateClient()
		}
		return models.AnalysisResult{}, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return models.AnalysisResult{}, false
	}

	var rec models.AnalysisResult
	if err := json.Unmarshal(raw, &rec); err != nil {
		slog.Warn("[ResultsCache] Failed to decode cached result",
			slog.String("error", err.Error()))
		return models.AnalysisResult{}, false
	}
	return rec, true
}

// Set stores a record under the text's hash with a 24h expiry.
func (rc *ResultsCache) Set(ctx context.Context, rec models.AnalysisResult) {
	raw, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("[ResultsCache] Failed to encode result",
			slog.String("error", err.Error()))
		return
	}

	cmd := func() valkey.Completed {
		return rc.client.B().Set().
			Key(keyForText(rec.OriginalText)).
			Value(string(raw)).
			ExSeconds(resultTTLSeconds).
			Build()
	}

	if res := rc.doWithRetry(ctx, cmd, 3); res.Error() != nil {
		slog.Warn("[ResultsCache] Failed to cache result",
			slog.String("error", res.Error().Error()))
	}
}

func keyForText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return resultKeyPrefix + hex.EncodeToString(hash[:])
}

// doWithRetry issues the command up to retries times. The command is
// rebuilt per attempt: valkey-go recycles a Completed after Do, so a
// built command must never be submitted twice.
func (rc *ResultsCache) doWithRetry(ctx context.Context, build func() valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = rc.client.Do(ctx, build())
		if result.Error() == nil {
			break
		}

		slog.Warn("[ResultsCache] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}
	return result
}

func (rc *ResultsCache) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[ResultsCache] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	rc.mu.Lock()
	defer rc.mu.Unlock()
	slog.Warn("[ResultsCache] Attempting to recreate Valkey client...")
	rc.client.Close()

	client, err := newValkeyClient(rc.cfg)
	if err != nil {
		panic(fmt.Errorf("[ResultsCache] failed to recreate Valkey client: %w", err))
	}
	rc.client = client
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "EOF")
}
