package node

import (
	"testing"

	"nodeview/internal/source"
)

func identSeq(names ...string) []Node {
	nodes := make([]Node, len(names))
	for i, name := range names {
		nodes[i] = &Ident{Sp: source.Span{Start: uint32(i), End: uint32(i + 1)}, Name: name}
	}
	return nodes
}

func TestRangeOverFullSequence(t *testing.T) {
	seq := identSeq("a", "b", "c")
	r := Over[*Ident](seq)

	if r.Size() != 3 {
		t.Fatalf("expected size 3, got %d", r.Size())
	}
	if r.Empty() {
		t.Fatalf("three-element range should not be empty")
	}
	if r.Front() != seq[0] {
		t.Fatalf("front should be the first backing element")
	}
	if r.At(2) != seq[2] {
		t.Fatalf("At(2) should be the third backing element")
	}
	if !r.Equal(NewRange(NewIterator[*Ident](seq, 0), NewIterator[*Ident](seq, 3))) {
		t.Fatalf("full-sequence range should equal explicit-bounds range")
	}
}

func TestRangeIterationYieldsBackingElements(t *testing.T) {
	seq := identSeq("a", "b", "c", "d")
	r := Over[*Ident](seq)

	var got []*Ident
	for n := range r.All() {
		got = append(got, n)
	}
	if len(got) != len(seq) {
		t.Fatalf("expected %d elements, got %d", len(seq), len(got))
	}
	for i, n := range got {
		if Node(n) != seq[i] {
			t.Fatalf("element %d is not identical to backing element", i)
		}
	}
}

func TestRangeSubSequence(t *testing.T) {
	seq := identSeq("a", "b", "c")
	r := Between[*Ident](seq, 1, 3)

	if r.Size() != 2 {
		t.Fatalf("expected size 2, got %d", r.Size())
	}
	if r.Front() != seq[1] {
		t.Fatalf("front of [1,3) should be the second backing element")
	}
	if r.At(1) != seq[2] {
		t.Fatalf("At(1) of [1,3) should be the third backing element")
	}
}

func TestRangeIndexMatchesAdvance(t *testing.T) {
	seq := identSeq("a", "b", "c", "d", "e")
	r := Between[*Ident](seq, 1, 4)

	for i := uint(0); i < r.Size(); i++ {
		it := r.Begin()
		for k := uint(0); k < i; k++ {
			it = it.Next()
		}
		if r.At(i) != it.Deref() {
			t.Fatalf("At(%d) disagrees with advancing begin %d times", i, i)
		}
	}
}

func TestEmptyRange(t *testing.T) {
	var r Range[*Ident]
	if r.Size() != 0 {
		t.Fatalf("zero range should have size 0, got %d", r.Size())
	}
	if !r.Empty() {
		t.Fatalf("zero range should be empty")
	}
	var other Range[*Ident]
	if !r.Equal(other) {
		t.Fatalf("two zero ranges should be equal")
	}
	if !r.Equal(Over[*Ident](nil)) {
		t.Fatalf("zero range should equal a range over an empty sequence")
	}
}

func TestRangeCopyIsDeep(t *testing.T) {
	seq := identSeq("a", "b", "c")
	r := Between[*Ident](seq, 1, 3)

	clones := r.Copy()
	if len(clones) != 2 {
		t.Fatalf("expected 2 clones, got %d", len(clones))
	}
	for i, c := range clones {
		src := seq[i+1].(*Ident)
		if c == src {
			t.Fatalf("clone %d shares identity with its source", i)
		}
		if c.Name != src.Name || c.Sp != src.Sp {
			t.Fatalf("clone %d differs in content from its source", i)
		}
	}
	// Mutating a clone must not reach back into the source.
	clones[0].Name = "mutated"
	if seq[1].(*Ident).Name != "b" {
		t.Fatalf("mutating a clone changed the source element")
	}
}

func TestRangeEquality(t *testing.T) {
	seq := identSeq("a", "b", "c")

	full := Over[*Ident](seq)
	if !full.Equal(full) {
		t.Fatalf("equality should be reflexive")
	}

	same := Over[*Ident](seq)
	if !full.Equal(same) || !same.Equal(full) {
		t.Fatalf("ranges over the same bounds should be equal both ways")
	}

	prefix := Between[*Ident](seq, 0, 2)
	if full.Equal(prefix) || prefix.Equal(full) {
		t.Fatalf("ranges of different sizes should never be equal")
	}

	// Same elements reached through a distinct backing slice: raw identity
	// still matches element by element.
	alias := make([]Node, len(seq))
	copy(alias, seq)
	if !full.Equal(Over[*Ident](alias)) {
		t.Fatalf("ranges over identical handles should be equal")
	}

	// Clones are equal in content but not in identity.
	cloned := make([]Node, len(seq))
	for i, n := range seq {
		cloned[i] = n.Clone()
	}
	if full.Equal(Over[*Ident](cloned)) {
		t.Fatalf("identity equality should not match distinct clones")
	}
	structural := func(a, b Node) bool {
		return a.(*Ident).Name == b.(*Ident).Name
	}
	if !full.EqualFunc(Over[*Ident](cloned), structural) {
		t.Fatalf("EqualFunc should honor the supplied comparator")
	}
}

func TestIteratorMovement(t *testing.T) {
	seq := identSeq("a", "b", "c", "d")
	begin := NewIterator[*Ident](seq, 0)
	end := NewIterator[*Ident](seq, len(seq))

	if end.Distance(begin) != 4 {
		t.Fatalf("expected distance 4, got %d", end.Distance(begin))
	}
	if begin.Distance(end) != -4 {
		t.Fatalf("distance should be signed, got %d", begin.Distance(end))
	}

	it := begin.Offset(2)
	if it.Deref() != seq[2] {
		t.Fatalf("Offset(2) should land on the third element")
	}
	if !it.Prev().Equal(begin.Next()) {
		t.Fatalf("Offset(2).Prev() should equal begin.Next()")
	}
	if !it.Offset(-2).Equal(begin) {
		t.Fatalf("Offset is not symmetric")
	}
}

func TestIteratorEqualityIsPositional(t *testing.T) {
	seq := identSeq("a", "b")
	a := NewIterator[*Ident](seq, 1)
	b := NewIterator[*Ident](seq, 1)
	if !a.Equal(b) {
		t.Fatalf("iterators at the same position should be equal")
	}
	if a.Equal(b.Next()) {
		t.Fatalf("iterators at different positions should not be equal")
	}

	other := identSeq("a", "b")
	if a.Equal(NewIterator[*Ident](other, 1)) {
		t.Fatalf("iterators over different backing sequences should not be equal")
	}
}

func TestDerefWrongKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on kind mismatch")
		}
	}()
	seq := []Node{&IntLit{Value: 1}}
	Over[*Ident](seq).At(0)
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-bounds index")
		}
	}()
	Over[*Ident](identSeq("a")).At(1)
}

func TestFrontOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on front of empty range")
		}
	}()
	var r Range[*Ident]
	r.Front()
}
