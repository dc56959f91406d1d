package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/network"
)

const metaKeyMe = "me"

// MeService holds the local identity and the names others know it by.
type MeService interface {
	Get() string
	Set(ctx context.Context, id string)
	Load(ctx context.Context) error
	Names() []string
}

type meService struct {
	e *Engine
}

func newMeService(e *Engine) MeService {
	return &meService{e: e}
}

func (s *meService) Get() string {
	var me string
	s.e.view(func() { me = s.e.me })
	return me
}

// Set records id as the local identity, persists it and refreshes the list
// of names given to it.
func (s *meService) Set(ctx context.Context, id string) {
	if err := s.e.repos.Metadata.Set(ctx, metaKeyMe, []byte(id)); err != nil {
		s.e.log.Warn(ctx, "failed to persist local identity", "error", err)
	}
	s.set(ctx, id)
}

// Load restores the identity saved by Set, if there is one.
func (s *meService) Load(ctx context.Context) error {
	b, err := s.e.repos.Metadata.Get(ctx, metaKeyMe)
	if err != nil {
		return fmt.Errorf("failed to load local identity: %w", err)
	}
	if b == nil {
		return nil
	}
	s.set(ctx, string(b))
	return nil
}

// Names returns the distinct names other authors have given the local
// identity, sorted.
func (s *meService) Names() []string {
	var out []string
	s.e.view(func() { out = slices.Clone(s.e.myNames) })
	return out
}

func (s *meService) set(ctx context.Context, id string) {
	var client network.Client
	s.e.update(func() {
		s.e.me = id
		client = s.e.network
		s.e.emitLocked(events.MeChanged, id)
	})

	resolver, err := network.AsNameHistoryResolver(client)
	if err != nil {
		s.e.log.Warn(ctx, "cannot fetch my names", "error", err)
		return
	}

	names := []string{}
	given, err := resolver.Names(ctx, id)
	if err != nil {
		s.e.log.Warn(ctx, "failed to fetch my names", "me", id, "error", err)
	} else {
		for _, n := range given {
			if n != "" {
				names = append(names, n)
			}
		}
		slices.Sort(names)
		names = slices.Compact(names)
	}

	s.e.update(func() {
		s.e.myNames = names
		s.e.emitLocked(events.MyNamesChanged, slices.Clone(names))
	})
}
