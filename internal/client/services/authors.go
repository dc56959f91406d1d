package services

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/chatcore/internal/client/events"
	"github.com/dmitrijs2005/chatcore/internal/client/models"
	"github.com/dmitrijs2005/chatcore/internal/client/network"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rawIDMarker prefixes a name typed as a raw identity.
const rawIDMarker = "@"

// AuthorService is the author directory: a cache of display names plus the
// local identity's friend graph.
type AuthorService interface {
	GetName(ctx context.Context, id string) string
	SetName(ctx context.Context, ids ...string)
	BulkNames(ctx context.Context, ids []string)
	GetID(name string) string
	FindMatches(partial string) []string
	UpdateFriends(ctx context.Context)
	All() map[string]string
	Friends() models.Friends
}

type authorService struct {
	e *Engine
}

func newAuthorService(e *Engine) AuthorService {
	return &authorService{e: e}
}

// GetName returns the cached display name of id. On a miss it returns id
// itself and starts a background resolution; use Engine.Wait to join it.
func (s *authorService) GetName(ctx context.Context, id string) string {
	var name string
	s.e.view(func() { name = s.e.authors[id] })

	if name == "" || name == id {
		s.e.log.Debug(ctx, "author name not cached", "id", id)
		s.e.background(ctx, func(ctx context.Context) { s.SetName(ctx, id) })
		return id
	}
	return name
}

// SetName resolves every id in parallel, caches each name that resolves and
// emits one authors-changed once all lookups have settled. Failed lookups
// are logged and leave the id unresolved. Log lines of one call share a
// "batch" id.
func (s *authorService) SetName(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}

	log := s.e.log.With("batch", uuid.NewString())

	resolver, err := network.AsNameResolver(s.e.Network())
	if err != nil {
		log.Warn(ctx, "cannot resolve author names", "ids", ids, "error", err)
		return
	}

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			name, err := resolver.Name(ctx, id)
			if err != nil {
				log.Warn(ctx, "failed to resolve author name", "id", id, "error", err)
				return nil
			}
			s.e.view(func() { s.e.authors[id] = name })
			log.Debug(ctx, "author name resolved", "id", id, "name", name)
			return nil
		})
	}
	_ = g.Wait()

	s.e.update(func() {
		s.e.emitLocked(events.AuthorsChanged, maps.Clone(s.e.authors))
	})
	log.Debug(ctx, "author names settled", "ids", len(ids))
}

// BulkNames resolves the ids that have no real name cached yet.
func (s *authorService) BulkNames(ctx context.Context, ids []string) {
	var pending []string
	s.e.view(func() {
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			if name := s.e.authors[id]; name == "" || name == id {
				pending = append(pending, id)
			}
		}
	})
	s.SetName(ctx, pending...)
}

// GetID finds the identity whose display name is name. A leading "@" is
// ignored for the match. When nothing matches, name is returned unchanged.
// Ties go to the lowest identity.
func (s *authorService) GetID(name string) string {
	target := strings.TrimPrefix(name, rawIDMarker)

	var matches []string
	s.e.view(func() {
		for id, n := range s.e.authors {
			if n == target {
				matches = append(matches, id)
			}
		}
	})

	if len(matches) == 0 {
		return name
	}
	slices.Sort(matches)
	return matches[0]
}

// FindMatches returns the cached display names starting with partial,
// sorted and without repeats. The match is case-sensitive.
func (s *authorService) FindMatches(partial string) []string {
	out := []string{}
	s.e.view(func() {
		for _, n := range s.e.authors {
			if n != "" && strings.HasPrefix(n, partial) {
				out = append(out, n)
			}
		}
	})
	slices.Sort(out)
	return slices.Compact(out)
}

// UpdateFriends refetches the local identity's friend graph, replaces the
// stored one, emits friends-changed and warms the name cache for everyone in
// it. Failures are logged and leave the previous graph in place.
func (s *authorService) UpdateFriends(ctx context.Context) {
	var me string
	var client network.Client
	s.e.view(func() { me, client = s.e.me, s.e.network })

	source, err := network.AsFriendsSource(client)
	if err != nil {
		s.e.log.Warn(ctx, "cannot update friends", "error", err)
		return
	}

	graph, err := source.Friends(ctx, me)
	if err != nil {
		s.e.log.Warn(ctx, "failed to fetch friends", "me", me, "error", err)
		return
	}

	friends := models.FriendsFromGraph(graph)
	s.e.update(func() {
		s.e.friends = friends
		s.e.emitLocked(events.FriendsChanged, friends.Clone())
	})
	s.e.log.Debug(ctx, "friends updated", "following", len(friends.Following), "blocking", len(friends.Blocking))

	s.BulkNames(ctx, friends.All())
}

// All returns a copy of the name cache.
func (s *authorService) All() map[string]string {
	var out map[string]string
	s.e.view(func() { out = maps.Clone(s.e.authors) })
	return out
}

func (s *authorService) Friends() models.Friends {
	var out models.Friends
	s.e.view(func() { out = s.e.friends.Clone() })
	return out
}
