// Package recipients defines recipient groups: the unordered sets of
// identities that name a private conversation. Every component that has to
// decide "is this the same conversation" (timeline filtering, unread
// de-duplication, recents) uses Equal from here.
package recipients

import (
	"slices"
	"strings"
)

// KeySeparator joins members in the persisted form of a group.
//
// Identities containing the separator would collide; the network's identity
// format does not use it, and no validation is done here.
const KeySeparator = ","

// Group is a sorted, duplicate-free set of identities. A nil Group means
// "no group at all" and never equals anything; an empty non-nil Group is the
// empty set.
type Group []string

// New builds a Group from ids, dropping blanks and duplicates and sorting the
// result. The returned Group is never nil.
func New(ids ...string) Group {
	g := make(Group, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		g = append(g, id)
	}
	slices.Sort(g)
	return slices.Compact(g)
}

// Has reports whether id is a member of g.
func (g Group) Has(id string) bool {
	for _, m := range g {
		if m == id {
			return true
		}
	}
	return false
}

// With returns a new Group with id added.
func (g Group) With(id string) Group {
	return New(append(slices.Clone(g), id)...)
}

// Without returns a new Group with id removed.
func (g Group) Without(id string) Group {
	out := make(Group, 0, len(g))
	for _, m := range g {
		if m != id {
			out = append(out, m)
		}
	}
	return New(out...)
}

// Clone returns a copy of g, preserving nil.
func (g Group) Clone() Group {
	if g == nil {
		return nil
	}
	return slices.Clone(g)
}

// Strings returns the members as a plain slice, never nil.
func (g Group) Strings() []string {
	if g == nil {
		return []string{}
	}
	return slices.Clone([]string(g))
}

// Key is the stable string form of g used as a persistence key.
func (g Group) Key() string {
	return strings.Join(New(g...), KeySeparator)
}

// ParseKey decodes a key produced by Group.Key.
func ParseKey(key string) Group {
	if key == "" {
		return New()
	}
	return New(strings.Split(key, KeySeparator)...)
}

// Equal reports whether a and b have exactly the same members, regardless of
// order. A nil group is not equal to anything, including another nil group.
func Equal(a, b Group) bool {
	if a == nil || b == nil {
		return false
	}

	as, bs := uniq(a), uniq(b)
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if _, ok := bs[id]; !ok {
			return false
		}
	}
	return true
}

// Compare is Equal for loosely typed input: Group, []string and nil are
// understood; anything else is "not a set" and compares unequal.
func Compare(a, b any) bool {
	ga, ok := asGroup(a)
	if !ok {
		return false
	}
	gb, ok := asGroup(b)
	if !ok {
		return false
	}
	return Equal(ga, gb)
}

func asGroup(v any) (Group, bool) {
	switch g := v.(type) {
	case Group:
		return g, g != nil
	case []string:
		return Group(g), g != nil
	}
	return nil, false
}

func uniq(g Group) map[string]struct{} {
	m := make(map[string]struct{}, len(g))
	for _, id := range g {
		m[id] = struct{}{}
	}
	return m
}
