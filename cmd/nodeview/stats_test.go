package main

import (
	"os"
	"path/filepath"
	"testing"

	"nodeview/internal/node"
)

const statsTree = `
name = "t"
roots = [2]

[[node]]
kind = "ident"
name = "f"

[[node]]
kind = "int"
int = 1

[[node]]
kind = "call"
callee = 0
args = [1]
`

func writeTree(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(statsTree), 0o644); err != nil {
		t.Fatalf("failed to write tree file: %v", err)
	}
	return path
}

func TestFileStats(t *testing.T) {
	path := writeTree(t, t.TempDir(), "t.toml")

	res, err := fileStats(path)
	if err != nil {
		t.Fatalf("fileStats failed: %v", err)
	}
	if res.Total != 3 {
		t.Fatalf("expected 3 nodes, got %d", res.Total)
	}
	if res.Kinds[node.KindCall] != 1 || res.Kinds[node.KindIdent] != 1 || res.Kinds[node.KindIntLit] != 1 {
		t.Fatalf("unexpected kind counts: %v", res.Kinds)
	}
}

func TestCollectTreeFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "b.toml")
	writeTree(t, dir, "a.toml")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	files, err := collectTreeFiles([]string{dir})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 toml files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "a.toml" || filepath.Base(files[1]) != "b.toml" {
		t.Fatalf("files should be sorted: %v", files)
	}
}
