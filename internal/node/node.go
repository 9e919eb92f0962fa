package node

import (
	"fmt"

	"nodeview/internal/source"
)

// Kind enumerates all supported kinds of nodes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindIdent
	KindIntLit
	KindStrLit
	KindParam
	KindCall
	KindBlock
	KindFnDecl
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindIdent:
		return "ident"
	case KindIntLit:
		return "int"
	case KindStrLit:
		return "str"
	case KindParam:
		return "param"
	case KindCall:
		return "call"
	case KindBlock:
		return "block"
	case KindFnDecl:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Node is the base capability shared by every AST node. Collections store
// nodes uniformly through this interface; call sites that know more narrow
// individual handles back down via Range and Iterator.
//
// All concrete nodes are pointer types, so comparing two Node values with ==
// compares handle identity, not content.
type Node interface {
	Kind() Kind
	Span() source.Span
	// Clone returns an independent deep copy: the result shares no mutable
	// state with the receiver, children included.
	Clone() Node
}

// narrow asserts that n is of the concrete kind T. The caller vouches for the
// kind; a mismatch is a defect in whoever built the surrounding view, so it
// panics rather than returning an error.
func narrow[T Node](n Node) T {
	t, ok := n.(T)
	if !ok {
		panic(fmt.Errorf("node kind mismatch: have %s, want %T", n.Kind(), t))
	}
	return t
}
