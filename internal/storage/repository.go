package storage

import "context"

// SeenStore persists the identifiers of listings already processed.
type SeenStore interface {
	// Load returns the persisted identifiers in insertion order.
	// A missing store is empty, not an error.
	Load(ctx context.Context) (*SeenSet, error)

	// Save replaces the persisted identifiers with the full set.
	Save(ctx context.Context, seen *SeenSet) error
}

// SeenSet is an ordered, duplicate-free list of listing identifiers.
type SeenSet struct {
	ids   []string
	index map[string]struct{}
}

func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s *SeenSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends id unless it is already present. Reports whether it was added.
func (s *SeenSet) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *SeenSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the identifiers, oldest first.
func (s *SeenSet) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Newest returns at most n identifiers, keeping the most recently added.
// n <= 0 means no bound.
func (s *SeenSet) Newest(n int) []string {
	if n <= 0 || len(s.ids) <= n {
		return s.IDs()
	}
	return append([]string(nil), s.ids[len(s.ids)-n:]...)
}
