package services

import (
	"context"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
)

// UnreadService tracks which private conversations have unseen messages.
// A conversation has at most one entry however many messages are unread.
type UnreadService interface {
	Add(group recipients.Group)
	Get() []recipients.Group
	Last() (recipients.Group, bool)
	SetAsRead(ctx context.Context, group recipients.Group)
}

type unreadService struct {
	e *Engine
}

func newUnreadService(e *Engine) UnreadService {
	return &unreadService{e: e}
}

// Add appends group as unread. Message pushes call this themselves; it is
// exposed for restoring state.
func (s *unreadService) Add(group recipients.Group) {
	g := recipients.New(group...)
	s.e.update(func() { s.e.addUnreadLocked(g) })
}

func (s *unreadService) Get() []recipients.Group {
	var out []recipients.Group
	s.e.view(func() { out = cloneGroups(s.e.unreads) })
	return out
}

// Last returns the most recently added unread group.
func (s *unreadService) Last() (recipients.Group, bool) {
	var g recipients.Group
	var ok bool
	s.e.view(func() {
		if n := len(s.e.unreads); n > 0 {
			g, ok = s.e.unreads[n-1].Clone(), true
		}
	})
	return g, ok
}

// SetAsRead drops every unread entry equal to group (local identity
// excluded) and marks the whole filtered view as read.
func (s *unreadService) SetAsRead(ctx context.Context, group recipients.Group) {
	s.e.update(func() { s.e.setAsReadLocked(ctx, group) })
}

func (e *Engine) addUnreadLocked(g recipients.Group) {
	e.unreads = append(e.unreads, g)
	e.emitLocked(events.UnreadsChanged, groupsPayload(e.unreads))
}

func (e *Engine) hasUnreadLocked(g recipients.Group) bool {
	for _, u := range e.unreads {
		if recipients.Equal(u, g) {
			return true
		}
	}
	return false
}

func (e *Engine) setAsReadLocked(ctx context.Context, group recipients.Group) {
	target := recipients.New(group...).Without(e.me)

	kept := make([]recipients.Group, 0, len(e.unreads))
	for _, u := range e.unreads {
		if !recipients.Equal(u, target) {
			kept = append(kept, u)
		}
	}
	e.unreads = kept
	e.emitLocked(events.UnreadsChanged, groupsPayload(e.unreads))

	if err := e.markFilteredReadLocked(ctx); err != nil {
		e.log.Warn(ctx, "failed to mark conversation read", "error", err)
	}
}

func cloneGroups(gs []recipients.Group) []recipients.Group {
	out := make([]recipients.Group, len(gs))
	for i, g := range gs {
		out[i] = g.Clone()
	}
	return out
}
