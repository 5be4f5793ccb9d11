package session

import "sort"

// Selection is the set of issue ids marked for bulk operations.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the id when absent and removes it when present.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports whether the id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the selection size.
func (s *Selection) Len() int { return len(s.ids) }

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// IDs returns the selected ids in stable order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prune drops ids that are no longer visible.
func (s *Selection) Prune(visible map[string]struct{}) {
	for id := range s.ids {
		if _, ok := visible[id]; !ok {
			delete(s.ids, id)
		}
	}
}
