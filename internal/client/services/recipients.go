package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/recipients"
	"github.com/dmitrijs2005/chatcore/internal/common"
)

// RecipientService manages the selected private conversation.
type RecipientService interface {
	Get() recipients.Group
	Set(ctx context.Context, ids ...string) error
	Reset()
	NotMe(ctx context.Context) []string
	Root() string
	Last() recipients.Group
	Compare(a, b any) bool
}

type recipientService struct {
	e *Engine
}

func newRecipientService(e *Engine) RecipientService {
	return &recipientService{e: e}
}

// Get returns the selected group, local identity included.
func (s *recipientService) Get() recipients.Group {
	var g recipients.Group
	s.e.view(func() { g = s.e.recipients.Clone() })
	return g
}

// Set selects the conversation with ids. The local identity is added, the
// group is recorded as recent, the engine switches to private mode and the
// group's unread entry is cleared. It fails only when ids name nobody but
// the local identity.
func (s *recipientService) Set(ctx context.Context, ids ...string) error {
	var err error
	e := s.e

	e.update(func() {
		group := recipients.New(append(slices.Clone(ids), e.me)...)
		if len(group.Without(e.me)) == 0 {
			err = common.ErrInvalidRecipients
			return
		}

		e.recipients = group
		e.addRecentLocked(ctx, group)
		e.setPrivateLocked()
		e.setAsReadLocked(ctx, group)
		e.emitLocked(events.RecipientsChanged, group.Strings())
	})
	return err
}

// Reset clears the selection and thread root. A non-empty selection is kept
// as the last recipients first. The mode is left alone.
func (s *recipientService) Reset() {
	s.e.update(s.e.resetRecipientsLocked)
}

// NotMe returns the display names of the selected recipients other than the
// local identity.
func (s *recipientService) NotMe(ctx context.Context) []string {
	var ids recipients.Group
	s.e.view(func() { ids = s.e.recipients.Without(s.e.me) })

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, s.e.Authors.GetName(ctx, id))
	}
	return names
}

// Root is the key of the message the current private thread hangs off.
func (s *recipientService) Root() string {
	var root string
	s.e.view(func() { root = s.e.root })
	return root
}

// Last returns the group selected before the most recent reset, or nil.
func (s *recipientService) Last() recipients.Group {
	var g recipients.Group
	s.e.view(func() { g = s.e.lastRecipients.Clone() })
	return g
}

// Compare reports whether a and b are the same group. Values that are not
// groups never compare equal.
func (s *recipientService) Compare(a, b any) bool {
	return recipients.Compare(a, b)
}

func (e *Engine) resetRecipientsLocked() {
	if len(e.recipients) > 0 {
		e.lastRecipients = e.recipients.Clone()
		e.emitLocked(events.LastRecipientsChanged, e.lastRecipients.Strings())
	}
	e.recipients = recipients.New()
	e.root = ""
	e.emitLocked(events.RecipientsChanged, e.recipients.Strings())
}
