// Package fixture loads node trees from TOML tree files. A tree file is a
// flat list of node records; records refer to other records by their index in
// the list, and may only refer backwards, so a single forward pass builds the
// whole tree.
package fixture

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"nodeview/internal/node"
	"nodeview/internal/source"
)

// Tree is a loaded tree file: every constructed node in record order, plus
// the designated roots.
type Tree struct {
	Name  string
	Nodes []node.Node
	Roots []node.Node
}

type treeFile struct {
	Name  string       `toml:"name"`
	Roots []int        `toml:"roots"`
	Nodes []nodeRecord `toml:"node"`
}

type nodeRecord struct {
	Kind   string   `toml:"kind"`
	Name   string   `toml:"name"`
	Int    int64    `toml:"int"`
	Str    string   `toml:"str"`
	Span   []uint32 `toml:"span"` // [file, start, end]
	Callee *int     `toml:"callee"`
	Type   *int     `toml:"type"`
	Body   *int     `toml:"body"`
	Args   []int    `toml:"args"`
	Stmts  []int    `toml:"stmts"`
	Params []int    `toml:"params"`
}

// Load reads and builds the tree file at path.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Parse builds a tree from TOML tree-file content.
func Parse(data []byte) (*Tree, error) {
	var file treeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode tree file: %w", err)
	}

	nodes := make([]node.Node, 0, len(file.Nodes))
	for i, rec := range file.Nodes {
		n, err := buildNode(rec, nodes)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}

	roots := make([]node.Node, 0, len(file.Roots))
	for _, idx := range file.Roots {
		if idx < 0 || idx >= len(nodes) {
			return nil, fmt.Errorf("root index %d out of range", idx)
		}
		roots = append(roots, nodes[idx])
	}

	return &Tree{Name: file.Name, Nodes: nodes, Roots: roots}, nil
}

// buildNode constructs the node for rec. built holds every earlier record's
// node; rec may only reference those.
func buildNode(rec nodeRecord, built []node.Node) (node.Node, error) {
	sp, err := recordSpan(rec.Span)
	if err != nil {
		return nil, err
	}

	switch rec.Kind {
	case "ident":
		return &node.Ident{Sp: sp, Name: rec.Name}, nil
	case "int":
		return &node.IntLit{Sp: sp, Value: rec.Int}, nil
	case "str":
		return &node.StrLit{Sp: sp, Value: rec.Str}, nil
	case "param":
		p := &node.Param{Sp: sp, Name: rec.Name}
		if rec.Type != nil {
			typ, err := refNode[*node.Ident](built, *rec.Type, "type")
			if err != nil {
				return nil, err
			}
			p.Type = typ
		}
		return p, nil
	case "call":
		c := &node.Call{Sp: sp}
		if rec.Callee != nil {
			callee, err := refNode[*node.Ident](built, *rec.Callee, "callee")
			if err != nil {
				return nil, err
			}
			c.Callee = callee
		}
		if c.Args, err = refNodes(built, rec.Args, "args"); err != nil {
			return nil, err
		}
		return c, nil
	case "block":
		b := &node.Block{Sp: sp}
		if b.Stmts, err = refNodes(built, rec.Stmts, "stmts"); err != nil {
			return nil, err
		}
		return b, nil
	case "fn":
		fn := &node.FnDecl{Sp: sp, Name: rec.Name}
		if fn.ParamList, err = refNodes(built, rec.Params, "params"); err != nil {
			return nil, err
		}
		for i, p := range fn.ParamList {
			if p.Kind() != node.KindParam {
				return nil, fmt.Errorf("params[%d]: expected a param node, got %s", i, p.Kind())
			}
		}
		if rec.Body != nil {
			body, err := refNode[*node.Block](built, *rec.Body, "body")
			if err != nil {
				return nil, err
			}
			fn.Body = body
		}
		return fn, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", rec.Kind)
	}
}

func recordSpan(span []uint32) (source.Span, error) {
	switch len(span) {
	case 0:
		return source.Span{}, nil
	case 3:
		return source.Span{File: source.FileID(span[0]), Start: span[1], End: span[2]}, nil
	default:
		return source.Span{}, fmt.Errorf("span must be [file, start, end], got %d values", len(span))
	}
}

func refNode[T node.Node](built []node.Node, idx int, field string) (T, error) {
	var zero T
	if idx < 0 || idx >= len(built) {
		return zero, fmt.Errorf("%s: index %d must reference an earlier node", field, idx)
	}
	t, ok := built[idx].(T)
	if !ok {
		return zero, fmt.Errorf("%s: node %d has the wrong kind (%s)", field, idx, built[idx].Kind())
	}
	return t, nil
}

func refNodes(built []node.Node, idxs []int, field string) ([]node.Node, error) {
	if len(idxs) == 0 {
		return nil, nil
	}
	out := make([]node.Node, len(idxs))
	for i, idx := range idxs {
		if idx < 0 || idx >= len(built) {
			return nil, fmt.Errorf("%s[%d]: index %d must reference an earlier node", field, i, idx)
		}
		out[i] = built[idx]
	}
	return out, nil
}
