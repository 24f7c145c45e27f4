package domain

import "sort"

// Key identifies a row of the transition table: the current state and the symbol under the head.
type Key struct {
	State StateID `json:"state"`
	Read  Symbol  `json:"read"`
}

// Transition is the action taken when a Key matches.
type Transition struct {
	Next  StateID   `json:"next"`
	Write Symbol    `json:"write"`
	Move  Direction `json:"move"`
}

// Table is the deterministic partial function from Key to Transition.
// It need not be total; missing keys surface as an Undefined outcome at run time.
type Table map[Key]Transition

// NewTable creates an empty table.
func NewTable() Table {
	return make(Table)
}

// Define inserts the transition for (state, read).
// Redefining an existing key overwrites it (last write wins); incremental table
// building relies on this.
func (t Table) Define(state StateID, read Symbol, tr Transition) {
	t[Key{State: state, Read: read}] = tr
}

// Lookup returns the transition for (state, read), if defined.
func (t Table) Lookup(state StateID, read Symbol) (Transition, bool) {
	tr, ok := t[Key{State: state, Read: read}]
	return tr, ok
}

// Keys returns the table keys ordered by state, then symbol.
func (t Table) Keys() []Key {
	keys := make([]Key, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return keys[i].Read < keys[j].Read
	})
	return keys
}

// States returns every state that appears as a key, ordered.
func (t Table) States() []StateID {
	seen := make(StateSet)
	for k := range t {
		seen.Add(k.State)
	}
	return seen.Sorted()
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
