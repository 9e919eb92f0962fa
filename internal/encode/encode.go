// Package encode serializes node trees to schema-versioned msgpack
// snapshots. A snapshot is a flat, deduplicated record list: each node is
// written once, children referenced by record index, children before parents.
package encode

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"nodeview/internal/node"
	"nodeview/internal/source"
)

// Current schema version - increment when the snapshot format changes.
const snapshotSchemaVersion uint16 = 1

const noRef int32 = -1

type snapshot struct {
	Schema uint16
	Name   string
	Roots  []uint32
	Nodes  []record
}

// record is one flattened node. Callee/Type/Body are noRef when absent; Kids
// holds the ordered child list fields (call args, block stmts, fn params).
type record struct {
	Kind   uint8
	File   uint32
	Start  uint32
	End    uint32
	Name   string
	IntVal int64
	StrVal string
	Callee int32
	Type   int32
	Body   int32
	Kids   []uint32
}

// Marshal flattens the given roots (and everything reachable from them) into
// snapshot bytes. Handles shared between roots are written once and restored
// as shared handles by Unmarshal.
func Marshal(name string, roots []node.Node) ([]byte, error) {
	fl := &flattener{index: make(map[node.Node]uint32)}
	snap := snapshot{Schema: snapshotSchemaVersion, Name: name}
	for _, root := range roots {
		idx, err := fl.flatten(root)
		if err != nil {
			return nil, err
		}
		snap.Roots = append(snap.Roots, idx)
	}
	snap.Nodes = fl.records
	return msgpack.Marshal(&snap)
}

// Unmarshal rebuilds the trees stored in snapshot bytes, returning the name
// and roots.
func Unmarshal(data []byte) (string, []node.Node, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return "", nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return "", nil, fmt.Errorf("snapshot schema %d is not supported (want %d)", snap.Schema, snapshotSchemaVersion)
	}

	nodes := make([]node.Node, 0, len(snap.Nodes))
	for i, rec := range snap.Nodes {
		n, err := rebuild(rec, nodes)
		if err != nil {
			return "", nil, fmt.Errorf("record %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}

	roots := make([]node.Node, 0, len(snap.Roots))
	for _, idx := range snap.Roots {
		if int(idx) >= len(nodes) {
			return "", nil, fmt.Errorf("root index %d out of range", idx)
		}
		roots = append(roots, nodes[idx])
	}
	return snap.Name, roots, nil
}

// WriteFile marshals roots and atomically replaces path with the result.
func WriteFile(path, name string, roots []node.Node) error {
	data, err := Marshal(name, roots)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile reads and rebuilds a snapshot file.
func ReadFile(path string) (string, []node.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	name, roots, err := Unmarshal(data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return name, roots, nil
}

type flattener struct {
	records []record
	index   map[node.Node]uint32
}

// flatten writes n's children first, then n, and returns n's record index.
// Previously seen handles are reused.
func (fl *flattener) flatten(n node.Node) (uint32, error) {
	if idx, ok := fl.index[n]; ok {
		return idx, nil
	}

	sp := n.Span()
	rec := record{
		Kind:   uint8(n.Kind()),
		File:   uint32(sp.File),
		Start:  sp.Start,
		End:    sp.End,
		Callee: noRef,
		Type:   noRef,
		Body:   noRef,
	}

	var err error
	switch n := n.(type) {
	case *node.Ident:
		rec.Name = n.Name
	case *node.IntLit:
		rec.IntVal = n.Value
	case *node.StrLit:
		rec.StrVal = n.Value
	case *node.Param:
		rec.Name = n.Name
		if n.Type != nil {
			if rec.Type, err = fl.flattenRef(n.Type); err != nil {
				return 0, err
			}
		}
	case *node.Call:
		if n.Callee != nil {
			if rec.Callee, err = fl.flattenRef(n.Callee); err != nil {
				return 0, err
			}
		}
		if rec.Kids, err = fl.flattenAll(n.Args); err != nil {
			return 0, err
		}
	case *node.Block:
		if rec.Kids, err = fl.flattenAll(n.Stmts); err != nil {
			return 0, err
		}
	case *node.FnDecl:
		rec.Name = n.Name
		if rec.Kids, err = fl.flattenAll(n.ParamList); err != nil {
			return 0, err
		}
		if n.Body != nil {
			if rec.Body, err = fl.flattenRef(n.Body); err != nil {
				return 0, err
			}
		}
	default:
		return 0, fmt.Errorf("cannot snapshot node of kind %s", n.Kind())
	}

	idx := uint32(len(fl.records))
	fl.records = append(fl.records, rec)
	fl.index[n] = idx
	return idx, nil
}

func (fl *flattener) flattenRef(n node.Node) (int32, error) {
	idx, err := fl.flatten(n)
	if err != nil {
		return noRef, err
	}
	return int32(idx), nil
}

func (fl *flattener) flattenAll(nodes []node.Node) ([]uint32, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]uint32, len(nodes))
	for i, n := range nodes {
		idx, err := fl.flatten(n)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// rebuild constructs the node for rec. built holds every earlier record's
// node; since flatten writes children first, all references resolve there.
func rebuild(rec record, built []node.Node) (node.Node, error) {
	sp := source.Span{File: source.FileID(rec.File), Start: rec.Start, End: rec.End}

	switch node.Kind(rec.Kind) {
	case node.KindIdent:
		return &node.Ident{Sp: sp, Name: rec.Name}, nil
	case node.KindIntLit:
		return &node.IntLit{Sp: sp, Value: rec.IntVal}, nil
	case node.KindStrLit:
		return &node.StrLit{Sp: sp, Value: rec.StrVal}, nil
	case node.KindParam:
		p := &node.Param{Sp: sp, Name: rec.Name}
		if rec.Type != noRef {
			typ, err := ref[*node.Ident](built, rec.Type)
			if err != nil {
				return nil, err
			}
			p.Type = typ
		}
		return p, nil
	case node.KindCall:
		c := &node.Call{Sp: sp}
		if rec.Callee != noRef {
			callee, err := ref[*node.Ident](built, rec.Callee)
			if err != nil {
				return nil, err
			}
			c.Callee = callee
		}
		args, err := refAll(built, rec.Kids)
		if err != nil {
			return nil, err
		}
		c.Args = args
		return c, nil
	case node.KindBlock:
		stmts, err := refAll(built, rec.Kids)
		if err != nil {
			return nil, err
		}
		return &node.Block{Sp: sp, Stmts: stmts}, nil
	case node.KindFnDecl:
		fn := &node.FnDecl{Sp: sp, Name: rec.Name}
		params, err := refAll(built, rec.Kids)
		if err != nil {
			return nil, err
		}
		fn.ParamList = params
		if rec.Body != noRef {
			body, err := ref[*node.Block](built, rec.Body)
			if err != nil {
				return nil, err
			}
			fn.Body = body
		}
		return fn, nil
	default:
		return nil, fmt.Errorf("unknown node kind %d", rec.Kind)
	}
}

func ref[T node.Node](built []node.Node, idx int32) (T, error) {
	var zero T
	if idx < 0 || int(idx) >= len(built) {
		return zero, fmt.Errorf("reference %d must point at an earlier record", idx)
	}
	t, ok := built[idx].(T)
	if !ok {
		return zero, fmt.Errorf("reference %d has the wrong kind (%s)", idx, built[idx].Kind())
	}
	return t, nil
}

func refAll(built []node.Node, idxs []uint32) ([]node.Node, error) {
	if len(idxs) == 0 {
		return nil, nil
	}
	out := make([]node.Node, len(idxs))
	for i, idx := range idxs {
		if int(idx) >= len(built) {
			return nil, fmt.Errorf("reference %d must point at an earlier record", idx)
		}
		out[i] = built[idx]
	}
	return out, nil
}
