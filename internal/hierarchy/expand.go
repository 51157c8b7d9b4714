package hierarchy

// ExpandedSet tracks which tree nodes are open. It is the only
// long-lived mutable state feeding the builder; each view owns one and
// it is discarded on navigation away.
//
// The version counter increments on every mutation so callers can skip
// rebuilding the tree when nothing changed. Not safe for concurrent
// use; all access happens on the UI loop.
type ExpandedSet struct {
	ids     map[string]bool
	version uint64
}

// NewExpandedSet returns an empty set with everything collapsed.
func NewExpandedSet() *ExpandedSet {
	return &ExpandedSet{ids: make(map[string]bool)}
}

// Has reports whether the node with the given id is expanded.
func (s *ExpandedSet) Has(id string) bool { return s.ids[id] }

// Len returns the number of expanded nodes.
func (s *ExpandedSet) Len() int { return len(s.ids) }

// Version returns a counter that changes on every mutation.
func (s *ExpandedSet) Version() uint64 { return s.version }

// Toggle flips the expansion state of one node.
func (s *ExpandedSet) Toggle(id string) {
	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
	s.version++
}

// Expand marks a node as open. No-op when already open.
func (s *ExpandedSet) Expand(id string) {
	if s.ids[id] {
		return
	}
	s.ids[id] = true
	s.version++
}

// Collapse marks a node as closed. No-op when already closed.
func (s *ExpandedSet) Collapse(id string) {
	if !s.ids[id] {
		return
	}
	delete(s.ids, id)
	s.version++
}

// IDs returns the expanded ids as a plain set copy, useful for tests
// and for rebuilding a set with identical contents.
func (s *ExpandedSet) IDs() map[string]bool {
	out := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		out[id] = true
	}
	return out
}
