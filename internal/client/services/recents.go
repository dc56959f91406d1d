package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/dmitrijs2005/chatcore/internal/common"
)

// RecentsService is the persisted registry of groups messaged before.
type RecentsService interface {
	Get(ctx context.Context) ([]recipients.Group, error)
	Add(ctx context.Context, group recipients.Group) error
	Remove(ctx context.Context, group recipients.Group) error
}

type recentsService struct {
	e *Engine
}

func newRecentsService(e *Engine) RecentsService {
	return &recentsService{e: e}
}

// Get returns every recent group in the order it was first used.
func (s *recentsService) Get(ctx context.Context) ([]recipients.Group, error) {
	keys, err := s.e.repos.Recents.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recents: %w", err)
	}

	out := make([]recipients.Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, recipients.ParseKey(k))
	}
	return out, nil
}

// Add records group and emits recents-changed.
func (s *recentsService) Add(ctx context.Context, group recipients.Group) error {
	return s.change(ctx, group, s.e.repos.Recents.Add)
}

// Remove forgets group and emits recents-changed.
func (s *recentsService) Remove(ctx context.Context, group recipients.Group) error {
	return s.change(ctx, group, s.e.repos.Recents.Remove)
}

func (s *recentsService) change(ctx context.Context, group recipients.Group, op func(context.Context, string) error) error {
	g := recipients.New(group...)
	if len(g) == 0 {
		return common.ErrInvalidRecipients
	}

	var err error
	s.e.update(func() {
		if err = op(ctx, g.Key()); err != nil {
			err = fmt.Errorf("failed to update recents: %w", err)
			return
		}
		s.e.emitRecentsLocked(ctx)
	})
	return err
}

// addRecentLocked is the best-effort form used by other operations.
func (e *Engine) addRecentLocked(ctx context.Context, g recipients.Group) {
	if err := e.repos.Recents.Add(ctx, g.Key()); err != nil {
		e.log.Warn(ctx, "failed to add recent group", "group", g.Key(), "error", err)
		return
	}
	e.emitRecentsLocked(ctx)
}

func (e *Engine) emitRecentsLocked(ctx context.Context) {
	groups, err := e.Recents.Get(ctx)
	if err != nil {
		e.log.Warn(ctx, "failed to read recents", "error", err)
		return
	}
	e.emitLocked(events.RecentsChanged, groupsPayload(groups))
}
