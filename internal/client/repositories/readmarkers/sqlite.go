package readmarkers

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/dbx"
)

var _ Repository = (*SQLiteRepository)(nil)

const upsertMarker = `
		INSERT INTO read_markers (key, expires_at) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET expires_at = excluded.expires_at
	`

// SQLiteRepository keeps markers in the `read_markers` table with expiry as
// unix milliseconds.
type SQLiteRepository struct {
	db dbx.DB
}

func NewSQLiteRepository(db dbx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Set(ctx context.Context, m Marker) error {
	_, err := r.db.ExecContext(ctx, upsertMarker, m.Key, m.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set read_markers[%s]: %w", m.Key, err)
	}
	return nil
}

func (r *SQLiteRepository) SetMany(ctx context.Context, ms []Marker) error {
	if len(ms) == 0 {
		return nil
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, m := range ms {
			if _, err := tx.ExecContext(ctx, upsertMarker, m.Key, m.ExpiresAt.UnixMilli()); err != nil {
				return fmt.Errorf("read_markers[%s]: %w", m.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set read markers: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Has(ctx context.Context, key string, now time.Time) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM read_markers WHERE key = ? AND expires_at > ?`, key, now.UnixMilli()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to get read_markers[%s]: %w", key, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM read_markers WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete read_markers[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM read_markers WHERE expires_at > ? ORDER BY key`, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list read_markers: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan read_markers row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate read_markers rows: %w", err)
	}
	return keys, nil
}

func (r *SQLiteRepository) Prune(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM read_markers WHERE expires_at <= ?`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune read_markers: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune read_markers: %w", err)
	}
	return n, nil
}
