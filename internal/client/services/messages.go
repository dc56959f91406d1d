package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
)

// MessageService is the message timeline and its filtered view.
type MessageService interface {
	Insert(msg models.Message)
	RefreshFiltered()
	Push(ctx context.Context, msg models.Message)
	Get() []models.Message
	Timeline() []models.Message
}

type messageService struct {
	e *Engine
}

func newMessageService(e *Engine) MessageService {
	return &messageService{e: e}
}

// Insert places msg in the timeline by timestamp without refiltering.
func (s *messageService) Insert(msg models.Message) {
	msg = msg.Clone()
	s.e.update(func() { s.e.insertLocked(msg) })
}

// RefreshFiltered recomputes the filtered view and emits messages-changed.
func (s *messageService) RefreshFiltered() {
	s.e.update(s.e.refreshFilteredLocked)
}

// Push adds an incoming or outgoing message. A private message may become
// the thread root of the open conversation, and one from someone else raises
// an unread entry for its group unless that group already has one or the
// message is already marked read.
func (s *messageService) Push(ctx context.Context, msg models.Message) {
	msg = msg.Clone()
	e := s.e

	e.update(func() {
		e.insertLocked(msg)
		e.refreshFilteredLocked()

		if !msg.Private {
			return
		}

		if e.mode == models.ModePrivate && e.root == "" && recipients.Equal(msg.Recipients, e.recipients) {
			e.root = msg.Key
			e.log.Debug(ctx, "thread root set", "root", msg.Key)
		}

		if len(msg.Recipients) == 0 || msg.Author == e.me {
			return
		}

		group := recipients.New(msg.Recipients...).Without(e.me)
		if len(group) == 0 || e.hasUnreadLocked(group) {
			return
		}

		read, err := e.hasBeenReadLocked(ctx, msg)
		if err != nil {
			e.log.Warn(ctx, "failed to check read marker", "key", msg.Key, "error", err)
		}
		if read {
			return
		}

		e.addUnreadLocked(group)
		e.addRecentLocked(ctx, group.With(e.me))
	})
}

// Get returns the filtered view.
func (s *messageService) Get() []models.Message {
	var out []models.Message
	s.e.view(func() { out = models.CloneMessages(s.e.filtered) })
	return out
}

// Timeline returns every message in timestamp order.
func (s *messageService) Timeline() []models.Message {
	var out []models.Message
	s.e.view(func() { out = models.CloneMessages(s.e.messages) })
	return out
}

// insertLocked appends when msg is strictly newer than the last message;
// otherwise it goes before the first message with an equal or later
// timestamp. Placement is final.
func (e *Engine) insertLocked(msg models.Message) {
	n := len(e.messages)
	if n == 0 || e.messages[n-1].Timestamp < msg.Timestamp {
		e.messages = append(e.messages, msg)
		return
	}

	i := slices.IndexFunc(e.messages, func(m models.Message) bool {
		return m.Timestamp >= msg.Timestamp
	})
	e.messages = slices.Insert(e.messages, i, msg)
}

func (e *Engine) refreshFilteredLocked() {
	filtered := make([]models.Message, 0, len(e.filtered))
	for _, m := range e.messages {
		if e.visibleLocked(m) {
			filtered = append(filtered, m)
		}
	}
	e.filtered = filtered
	e.emitLocked(events.MessagesChanged, models.CloneMessages(filtered))
}

// visibleLocked: public mode shows public messages; private mode shows the
// private messages addressed to exactly the selected group.
func (e *Engine) visibleLocked(m models.Message) bool {
	if e.mode == models.ModePrivate {
		return m.Private && recipients.Equal(m.Recipients, e.recipients)
	}
	return !m.Private
}
