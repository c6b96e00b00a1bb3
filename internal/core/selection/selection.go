// Package selection tracks the set of selected element ids and implements
// marquee (rectangle) selection over laid-out shots.
package selection

// Set is an unordered collection of selected element ids. The zero value
// is not usable; construct with NewSet.
type Set map[string]struct{}

// NewSet returns a selection containing the given ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is selected.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids in unspecified order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Select returns a singleton selection of id, replacing the current set.
func Select(id string) Set {
	return NewSet(id)
}

// Toggle returns current with id added if absent or removed if present,
// the multi-select modifier behavior. The input set is not modified.
func Toggle(id string, current Set) Set {
	next := current.Clone()
	if next.Contains(id) {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// SelectAll returns a selection of every given id.
func SelectAll(ids []string) Set {
	return NewSet(ids...)
}

// Clear returns the empty selection.
func Clear() Set {
	return NewSet()
}

// Invalidate returns current with every id not present in alive removed,
// dropping references to deleted elements.
func Invalidate(current Set, alive []string) Set {
	keep := NewSet(alive...)
	next := NewSet()
	for id := range current {
		if keep.Contains(id) {
			next[id] = struct{}{}
		}
	}
	return next
}

// Union returns the combination of two selections.
func Union(a, b Set) Set {
	next := a.Clone()
	for id := range b {
		next[id] = struct{}{}
	}
	return next
}
