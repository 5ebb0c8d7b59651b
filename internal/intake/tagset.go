package intake

// TagSet is an insertion-ordered set mutated by toggling
type TagSet struct {
	items []string
}

// NewTagSet creates a set seeded with items, ignoring duplicates
func NewTagSet(items ...string) *TagSet {
	s := &TagSet{}
	for _, item := range items {
		if !s.Has(item) {
			s.items = append(s.items, item)
		}
	}
	return s
}

// Toggle removes item if present, otherwise adds it. It returns whether the
// item is selected afterwards.
func (s *TagSet) Toggle(item string) bool {
	for i, existing := range s.items {
		if existing == item {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return false
		}
	}
	s.items = append(s.items, item)
	return true
}

// Has reports membership
func (s *TagSet) Has(item string) bool {
	for _, existing := range s.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Items returns the members in selection order
func (s *TagSet) Items() []string {
	return append([]string{}, s.items...)
}

// Len returns the number of members
func (s *TagSet) Len() int {
	return len(s.items)
}
