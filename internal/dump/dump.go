// Package dump renders node trees for humans: an indented pretty form with
// optional color, and a JSON form for tooling.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"nodeview/internal/node"
)

// PrettyOpts configures pretty-printing of node trees.
type PrettyOpts struct {
	Color    bool
	ShowSpan bool
}

var (
	kindColor  = color.New(color.FgCyan, color.Bold)
	leafColor  = color.New(color.FgGreen)
	spanColor  = color.New(color.Faint)
	kindColumn = runewidth.StringWidth("invalid") + 1
)

// Pretty writes an indented rendering of each root and its subtree.
func Pretty(w io.Writer, roots []node.Node, opts PrettyOpts) error {
	for _, root := range roots {
		if err := prettyNode(w, root, 0, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyNode(w io.Writer, n node.Node, depth int, opts PrettyOpts) error {
	kind := runewidth.FillRight(n.Kind().String(), kindColumn)
	label := nodeLabel(n)
	if opts.Color {
		kind = kindColor.Sprint(kind)
		label = leafColor.Sprint(label)
	}

	line := strings.Repeat("  ", depth) + kind + label
	if opts.ShowSpan && !n.Span().Empty() {
		span := " @" + n.Span().String()
		if opts.Color {
			span = spanColor.Sprint(span)
		}
		line += span
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	// Params render their annotation inline; don't repeat the type node.
	if _, ok := n.(*node.Param); ok {
		return nil
	}
	// Parameter lists get the typed view; everything else walks raw children.
	if fn, ok := n.(*node.FnDecl); ok {
		for p := range fn.Params().All() {
			if err := prettyNode(w, p, depth+1, opts); err != nil {
				return err
			}
		}
		if fn.Body != nil {
			return prettyNode(w, fn.Body, depth+1, opts)
		}
		return nil
	}
	for _, child := range node.Children(n) {
		if err := prettyNode(w, child, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

// nodeLabel is the human-readable payload summary shown next to the kind.
func nodeLabel(n node.Node) string {
	switch n := n.(type) {
	case *node.Ident:
		return n.Name
	case *node.IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *node.StrLit:
		return strconv.Quote(n.Value)
	case *node.Param:
		if n.Type != nil {
			return n.Name + ": " + n.Type.Name
		}
		return n.Name
	case *node.Call:
		if n.Callee != nil {
			return n.Callee.Name + "(...)"
		}
		return "(...)"
	case *node.Block:
		return fmt.Sprintf("{%d stmts}", len(n.Stmts))
	case *node.FnDecl:
		return n.Name
	default:
		return ""
	}
}

type jsonNode struct {
	Kind     string     `json:"kind"`
	Label    string     `json:"label,omitempty"`
	Span     string     `json:"span,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

// JSON writes an indented JSON rendering of the roots.
func JSON(w io.Writer, roots []node.Node) error {
	out := make([]jsonNode, len(roots))
	for i, root := range roots {
		out[i] = buildJSONNode(root)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func buildJSONNode(n node.Node) jsonNode {
	jn := jsonNode{
		Kind:  n.Kind().String(),
		Label: nodeLabel(n),
	}
	if !n.Span().Empty() {
		jn.Span = n.Span().String()
	}
	for _, child := range node.Children(n) {
		jn.Children = append(jn.Children, buildJSONNode(child))
	}
	return jn
}
