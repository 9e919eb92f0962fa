package node

import (
	"nodeview/internal/source"
)

// Ident is a name reference.
type Ident struct {
	Sp   source.Span
	Name string
}

func (n *Ident) Kind() Kind        { return KindIdent }
func (n *Ident) Span() source.Span { return n.Sp }
func (n *Ident) Clone() Node {
	c := *n
	return &c
}

// IntLit is an integer literal.
type IntLit struct {
	Sp    source.Span
	Value int64
}

func (n *IntLit) Kind() Kind        { return KindIntLit }
func (n *IntLit) Span() source.Span { return n.Sp }
func (n *IntLit) Clone() Node {
	c := *n
	return &c
}

// StrLit is a string literal.
type StrLit struct {
	Sp    source.Span
	Value string
}

func (n *StrLit) Kind() Kind        { return KindStrLit }
func (n *StrLit) Span() source.Span { return n.Sp }
func (n *StrLit) Clone() Node {
	c := *n
	return &c
}

// Param is a single declaration parameter: a name with an optional type
// annotation.
type Param struct {
	Sp   source.Span
	Name string
	Type *Ident // nil when unannotated
}

func (n *Param) Kind() Kind        { return KindParam }
func (n *Param) Span() source.Span { return n.Sp }
func (n *Param) Clone() Node {
	c := *n
	if n.Type != nil {
		c.Type = n.Type.Clone().(*Ident)
	}
	return &c
}

// Call is a call expression: a callee applied to an argument list. Arguments
// are stored through the base capability; typed consumers view them with
// Over[T](c.Args).
type Call struct {
	Sp     source.Span
	Callee *Ident
	Args   []Node
}

func (n *Call) Kind() Kind        { return KindCall }
func (n *Call) Span() source.Span { return n.Sp }
func (n *Call) Clone() Node {
	c := *n
	if n.Callee != nil {
		c.Callee = n.Callee.Clone().(*Ident)
	}
	c.Args = cloneNodes(n.Args)
	return &c
}

// Block is an ordered sequence of statement nodes.
type Block struct {
	Sp    source.Span
	Stmts []Node
}

func (n *Block) Kind() Kind        { return KindBlock }
func (n *Block) Span() source.Span { return n.Sp }
func (n *Block) Clone() Node {
	c := *n
	c.Stmts = cloneNodes(n.Stmts)
	return &c
}

// FnDecl is a function declaration. ParamList holds only *Param nodes; it is
// []Node so generic machinery can walk it like any other child list, and
// Params hands typed consumers the narrowed view.
type FnDecl struct {
	Sp        source.Span
	Name      string
	ParamList []Node
	Body      *Block
}

func (n *FnDecl) Kind() Kind        { return KindFnDecl }
func (n *FnDecl) Span() source.Span { return n.Sp }
func (n *FnDecl) Clone() Node {
	c := *n
	c.ParamList = cloneNodes(n.ParamList)
	if n.Body != nil {
		c.Body = n.Body.Clone().(*Block)
	}
	return &c
}

// Params views the declaration's parameter nodes as their refined kind.
func (n *FnDecl) Params() Range[*Param] {
	return Over[*Param](n.ParamList)
}

// Children returns the node's direct child list, or nil for leaves. The
// returned slice is the node's own storage; callers must not mutate it.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Call:
		kids := make([]Node, 0, len(n.Args)+1)
		if n.Callee != nil {
			kids = append(kids, n.Callee)
		}
		return append(kids, n.Args...)
	case *Block:
		return n.Stmts
	case *FnDecl:
		kids := make([]Node, 0, len(n.ParamList)+1)
		kids = append(kids, n.ParamList...)
		if n.Body != nil {
			kids = append(kids, n.Body)
		}
		return kids
	case *Param:
		if n.Type != nil {
			return []Node{n.Type}
		}
		return nil
	default:
		return nil
	}
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
