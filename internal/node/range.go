package node

import (
	"fmt"
	"iter"

	"fortio.org/safecast"
)

// Iterator is a position inside a backing sequence of base node handles,
// narrowed on access to the refined kind T. Construction and movement never
// validate anything: a position one past the last element is the usual end
// sentinel, and out-of-bounds movement only becomes a defect if the position
// is dereferenced. Iterators are plain values; copying one copies a position,
// never the elements.
type Iterator[T Node] struct {
	nodes []Node
	pos   int
}

// NewIterator places an iterator at pos within nodes.
func NewIterator[T Node](nodes []Node, pos int) Iterator[T] {
	return Iterator[T]{nodes: nodes, pos: pos}
}

// Node returns the element at the current position in its raw form.
func (it Iterator[T]) Node() Node {
	return it.nodes[it.pos]
}

// Deref returns the element at the current position narrowed to T. The
// element's dynamic kind must be T; anything else panics, since the view the
// iterator came from promised T for every position in its bounds.
func (it Iterator[T]) Deref() T {
	return narrow[T](it.nodes[it.pos])
}

func (it Iterator[T]) Next() Iterator[T] {
	it.pos++
	return it
}

func (it Iterator[T]) Prev() Iterator[T] {
	it.pos--
	return it
}

// Offset moves the iterator by n positions, in either direction.
func (it Iterator[T]) Offset(n int) Iterator[T] {
	it.pos += n
	return it
}

// Distance returns the signed number of elements from other to it. Both
// iterators must point into the same backing sequence.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return it.pos - other.pos
}

// Equal reports whether both iterators reference the same position of the
// same backing sequence. It compares positions, not pointed-to elements.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.pos == other.pos && sameBacking(it.nodes, other.nodes)
}

// sameBacking reports whether two slices share one backing array and bounds.
// Two empty views are interchangeable regardless of where they came from.
func sameBacking(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// Range is a [begin, end) view over a backing sequence of base node handles,
// asserting that every element inside the bounds is of kind T. It owns
// nothing but the two boundary positions: no element is copied or re-stored,
// and dropping the view has no effect on the sequence. The zero value is a
// valid empty view.
//
// The "every element is T" invariant is the builder's promise, not something
// checked up front; it is enforced lazily, element by element, when a
// position is actually dereferenced.
type Range[T Node] struct {
	begin Iterator[T]
	end   Iterator[T]
}

// NewRange bounds a view by an explicit iterator pair.
func NewRange[T Node](begin, end Iterator[T]) Range[T] {
	return Range[T]{begin: begin, end: end}
}

// Over views an entire backing sequence.
func Over[T Node](nodes []Node) Range[T] {
	return Range[T]{
		begin: NewIterator[T](nodes, 0),
		end:   NewIterator[T](nodes, len(nodes)),
	}
}

// Between views the sub-sequence nodes[from:to].
func Between[T Node](nodes []Node, from, to int) Range[T] {
	return Range[T]{
		begin: NewIterator[T](nodes, from),
		end:   NewIterator[T](nodes, to),
	}
}

func (r Range[T]) Begin() Iterator[T] { return r.begin }
func (r Range[T]) End() Iterator[T]   { return r.end }

// Size returns the number of elements in the view.
func (r Range[T]) Size() uint {
	n, err := safecast.Conv[uint](r.end.Distance(r.begin))
	if err != nil {
		panic(fmt.Errorf("range size overflow: %w", err))
	}
	return n
}

func (r Range[T]) Empty() bool {
	return r.begin.Equal(r.end)
}

// Front returns the first element in its raw, non-narrowed form. The view
// must not be empty; callers check Empty first.
func (r Range[T]) Front() Node {
	if r.Empty() {
		panic(fmt.Errorf("front on empty range"))
	}
	return r.begin.Node()
}

// At returns the i-th element narrowed to T. i must be below Size.
func (r Range[T]) At(i uint) T {
	if i >= r.Size() {
		panic(fmt.Errorf("range index %d out of bounds [0, %d)", i, r.Size()))
	}
	off, err := safecast.Conv[int](i)
	if err != nil {
		panic(fmt.Errorf("range index overflow: %w", err))
	}
	return r.begin.Offset(off).Deref()
}

// All yields every element in order, narrowed to T.
func (r Range[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := r.begin; !it.Equal(r.end); it = it.Next() {
			if !yield(it.Deref()) {
				return
			}
		}
	}
}

// Copy materializes the view into a newly allocated slice of independent
// deep clones, in order. This is the one escape hatch from pure-view
// semantics, for contents that must outlive or be decoupled from the backing
// sequence.
func (r Range[T]) Copy() []T {
	out := make([]T, 0, r.end.Distance(r.begin))
	for it := r.begin; !it.Equal(r.end); it = it.Next() {
		out = append(out, narrow[T](it.Node().Clone()))
	}
	return out
}

// Equal reports whether both views have the same size and identical raw
// elements in order. Element comparison is handle identity, matching how the
// backing sequence itself compares elements; use EqualFunc for a different
// contract.
func (r Range[T]) Equal(other Range[T]) bool {
	return r.EqualFunc(other, func(a, b Node) bool { return a == b })
}

// EqualFunc is Equal with a caller-supplied element comparator.
func (r Range[T]) EqualFunc(other Range[T], eq func(a, b Node) bool) bool {
	// Identical bounds means identical views; skip the element walk.
	if r.begin.Equal(other.begin) && r.end.Equal(other.end) {
		return true
	}
	if r.Size() != other.Size() {
		return false
	}
	x, y := r.begin, other.begin
	for !x.Equal(r.end) {
		if !eq(x.Node(), y.Node()) {
			return false
		}
		x, y = x.Next(), y.Next()
	}
	return true
}
