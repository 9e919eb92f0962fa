package node

// Set is an unordered collection of distinct node handles of kind T.
// Membership is handle identity, like raw element equality in Range.
type Set[T Node] struct {
	items map[Node]T
}

func NewSet[T Node](items ...T) *Set[T] {
	s := &Set[T]{items: make(map[Node]T, len(items))}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s *Set[T]) Add(item T) {
	s.items[Node(item)] = item
}

func (s *Set[T]) Contains(item T) bool {
	_, ok := s.items[Node(item)]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.items)
}

// Items returns the members in unspecified order.
func (s *Set[T]) Items() []T {
	out := make([]T, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out
}
