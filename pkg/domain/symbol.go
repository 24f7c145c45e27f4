package domain

import "sort"

// Symbol is an opaque token drawn from a finite alphabet.
type Symbol string

// StateID names a machine state. Halting is a property of membership in a StateSet,
// never of the identifier itself.
type StateID string

// StateSet is a set of state identifiers (e.g. the halting set).
type StateSet map[StateID]struct{}

// NewStateSet builds a set from the given identifiers.
func NewStateSet(ids ...StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member of the set. A nil set contains nothing.
func (s StateSet) Contains(id StateID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s StateSet) Add(id StateID) {
	s[id] = struct{}{}
}

// Sorted returns the members in lexical order.
func (s StateSet) Sorted() []StateID {
	out := make([]StateID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the set.
func (s StateSet) Clone() StateSet {
	out := make(StateSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
