package recents

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/dbx"
)

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Add(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recents (key, created_at) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
		key, r.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to add recents[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete recents[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM recents ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recents: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan recents row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recents rows: %w", err)
	}
	return keys, nil
}
