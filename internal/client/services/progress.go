package services

import (
	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
)

type ProgressService interface {
	Get() models.Progress
	Set(p models.Progress)
}

type progressService struct {
	e *Engine
}

func newProgressService(e *Engine) ProgressService {
	return &progressService{e: e}
}

func (s *progressService) Get() models.Progress {
	var p models.Progress
	s.e.view(func() { p = s.e.progress })
	return p
}

func (s *progressService) Set(p models.Progress) {
	s.e.update(func() {
		s.e.progress = p
		s.e.emitLocked(events.ProgressChanged, p)
	})
}
