package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ytpicker/internal/core/ports/driven"
)

// cacheStore implements driven.Cache.
type cacheStore struct {
	store *Store
}

var _ driven.Cache = (*cacheStore)(nil)

// Get returns the value under key if it has not expired.
func (c *cacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt sql.NullInt64
	)
	err := c.store.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM cache_entries WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}

	if expiresAt.Valid && c.store.now().UnixMilli() >= expiresAt.Int64 {
		if _, err := c.store.db.ExecContext(ctx,
			"DELETE FROM cache_entries WHERE key = ? AND expires_at = ?", key, expiresAt.Int64,
		); err != nil {
			return nil, false, fmt.Errorf("deleting expired cache entry: %w", err)
		}
		return nil, false, nil
	}
	return value, true, nil
}

// Has reports whether a live entry exists under key.
func (c *cacheStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := c.Get(ctx, key)
	return ok, err
}

// Put stores or replaces the entry. A ttl of zero or less keeps it forever.
func (c *cacheStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: c.store.now().Add(ttl).UnixMilli(), Valid: true}
	}
	if value == nil {
		value = []byte{}
	}

	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			created_at = CURRENT_TIMESTAMP
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Forget removes key.
func (c *cacheStore) Forget(ctx context.Context, key string) error {
	if _, err := c.store.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry whose key starts with prefix.
func (c *cacheStore) Clear(ctx context.Context, prefix string) error {
	var err error
	if prefix == "" {
		_, err = c.store.db.ExecContext(ctx, "DELETE FROM cache_entries")
	} else {
		// substr avoids escaping LIKE wildcards in the prefix.
		_, err = c.store.db.ExecContext(ctx,
			"DELETE FROM cache_entries WHERE substr(key, 1, ?) = ?", len(prefix), prefix)
	}
	if err != nil {
		return fmt.Errorf("clearing cache entries: %w", err)
	}
	return nil
}

// PruneExpired deletes every expired entry and returns how many were removed.
func (s *Store) PruneExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= ?", s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("pruning cache entries: %w", err)
	}
	return res.RowsAffected()
}
