package services

import (
	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
)

type ModeService interface {
	Get() models.Mode
	IsPrivate() bool
	SetPublic()
	SetPrivate()
}

type modeService struct {
	e *Engine
}

func newModeService(e *Engine) ModeService {
	return &modeService{e: e}
}

func (s *modeService) Get() models.Mode {
	var m models.Mode
	s.e.view(func() { m = s.e.mode })
	return m
}

func (s *modeService) IsPrivate() bool {
	return s.Get() == models.ModePrivate
}

// SetPublic leaves the private conversation: the selection is archived and
// cleared, the timeline refiltered and mode-changed emitted.
func (s *modeService) SetPublic() {
	s.e.update(func() {
		s.e.mode = models.ModePublic
		s.e.resetRecipientsLocked()
		s.e.refreshFilteredLocked()
		s.e.emitLocked(events.ModeChanged, models.ModePublic)
	})
}

// SetPrivate switches to the currently selected group and anchors the
// thread on its latest visible message. With no visible message the root is
// left empty so the next message to the group becomes it.
func (s *modeService) SetPrivate() {
	s.e.update(s.e.setPrivateLocked)
}

func (e *Engine) setPrivateLocked() {
	e.mode = models.ModePrivate
	e.refreshFilteredLocked()

	e.root = ""
	if n := len(e.filtered); n > 0 {
		e.root = e.filtered[n-1].Key
	}
	e.emitLocked(events.ModeChanged, models.ModePrivate)
}
