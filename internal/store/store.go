package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store persists match snapshots in Postgres. Snapshots are opaque JSON blobs
// keyed by match ID; the store never inspects them.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS game_snapshots (
	game_id    text PRIMARY KEY,
	snapshot   jsonb NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

// New connects to the database and ensures the snapshot table exists.
func New(ctx context.Context, url string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to snapshot store: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping snapshot store: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}

	return &Store{pool: pool, logger: logger}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Save upserts a snapshot and refreshes its timestamp.
func (s *Store) Save(ctx context.Context, gameID string, snapshot []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_snapshots (game_id, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (game_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`,
		gameID, snapshot)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", gameID, err)
	}
	return nil
}

// Load fetches a snapshot. The second return is false when no snapshot exists
// for the ID.
func (s *Store) Load(ctx context.Context, gameID string) ([]byte, bool, error) {
	var snapshot []byte
	err := s.pool.QueryRow(ctx,
		`SELECT snapshot FROM game_snapshots WHERE game_id = $1`,
		gameID).Scan(&snapshot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", gameID, err)
	}
	return snapshot, true, nil
}

func (s *Store) Delete(ctx context.Context, gameID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM game_snapshots WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", gameID, err)
	}
	return nil
}

// PurgeOlderThan deletes snapshots untouched since the cutoff and returns how
// many were removed.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM game_snapshots WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}

	if n := tag.RowsAffected(); n > 0 {
		s.logger.Info("purged stale snapshots", zap.Int64("count", n))
		return n, nil
	}
	return 0, nil
}
