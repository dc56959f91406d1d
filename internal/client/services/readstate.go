package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/repositories/readmarkers"
)

// ReadStateService records which messages have been read. A marker expires
// one time window after the message's timestamp.
type ReadStateService interface {
	StoreAsRead(ctx context.Context, msg models.Message) error
	MarkFilteredRead(ctx context.Context) error
	HasBeenRead(ctx context.Context, msg models.Message) (bool, error)
	Prune(ctx context.Context) (int64, error)
}

type readStateService struct {
	e *Engine
}

func newReadStateService(e *Engine) ReadStateService {
	return &readStateService{e: e}
}

// StoreAsRead writes a read marker for msg. A marker that is already
// expired is still written and simply never counts.
func (s *readStateService) StoreAsRead(ctx context.Context, msg models.Message) error {
	var m readmarkers.Marker
	s.e.view(func() { m = s.e.markerLocked(msg) })
	if err := s.e.repos.ReadMarkers.Set(ctx, m); err != nil {
		return fmt.Errorf("failed to store read marker: %w", err)
	}
	return nil
}

// MarkFilteredRead stores a read marker for every message in the filtered
// view.
func (s *readStateService) MarkFilteredRead(ctx context.Context) error {
	var err error
	s.e.view(func() { err = s.e.markFilteredReadLocked(ctx) })
	return err
}

// HasBeenRead reports whether msg carries a live read marker.
func (s *readStateService) HasBeenRead(ctx context.Context, msg models.Message) (bool, error) {
	var (
		read bool
		err  error
	)
	s.e.view(func() { read, err = s.e.hasBeenReadLocked(ctx, msg) })
	return read, err
}

// Prune deletes expired markers and reports how many were removed.
func (s *readStateService) Prune(ctx context.Context) (int64, error) {
	n, err := s.e.repos.ReadMarkers.Prune(ctx, s.e.now())
	if err != nil {
		return 0, fmt.Errorf("failed to prune read markers: %w", err)
	}
	s.e.log.Info(ctx, "read markers pruned", "removed", n)
	return n, nil
}

func (e *Engine) markerLocked(msg models.Message) readmarkers.Marker {
	return readmarkers.Marker{
		Key:       msg.Key,
		ExpiresAt: time.UnixMilli(msg.Timestamp).Add(e.timeWindowLocked()),
	}
}

func (e *Engine) markFilteredReadLocked(ctx context.Context) error {
	if len(e.filtered) == 0 {
		return nil
	}

	ms := make([]readmarkers.Marker, 0, len(e.filtered))
	for _, msg := range e.filtered {
		ms = append(ms, e.markerLocked(msg))
	}
	if err := e.repos.ReadMarkers.SetMany(ctx, ms); err != nil {
		return fmt.Errorf("failed to store read markers: %w", err)
	}
	return nil
}

func (e *Engine) hasBeenReadLocked(ctx context.Context, msg models.Message) (bool, error) {
	read, err := e.repos.ReadMarkers.Has(ctx, msg.Key, e.now())
	if err != nil {
		return false, fmt.Errorf("failed to check read marker: %w", err)
	}
	return read, nil
}
