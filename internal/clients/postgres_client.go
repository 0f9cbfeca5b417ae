package clients

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	postgresInstance *Postgres
	postgresOnce     sync.Once
	postgresErr      error
)

type Postgres struct {
	DB *pgxpool.Pool
}

// GetPostgresClient creates the shared pgx pool on first call and reuses
// it afterwards. The connection error is cached like the pool itself.
func GetPostgresClient(ctx context.Context, dsn string) (*Postgres, error) {
	postgresOnce.Do(func() {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			postgresErr = fmt.Errorf("[PostgresClient] failed to create pool: %w", err)
			return
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			postgresErr = fmt.Errorf("[PostgresClient] failed to ping PostgreSQL: %w", err)
			return
		}

		slog.Info("[PostgresClient] Connected to PostgreSQL successfully")
		postgresInstance = &Postgres{DB: pool}
	})

	return postgresInstance, postgresErr
}

func (p *Postgres) Close() {
	if p.DB != nil {
		p.DB.Close()
	}
}
