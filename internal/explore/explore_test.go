package explore

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"nodeview/internal/node"
)

func browseModel() *model {
	roots := []node.Node{
		&node.Call{
			Callee: &node.Ident{Name: "print"},
			Args:   []node.Node{&node.StrLit{Value: "hi"}},
		},
		&node.Ident{Name: "x"},
	}
	return NewModel("sample", roots).(*model)
}

func press(m tea.Model, k string) tea.Model {
	var msg tea.Msg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestViewShowsRoots(t *testing.T) {
	m := browseModel()
	out := m.View()
	if !strings.Contains(out, "sample") {
		t.Fatalf("view should show the tree name:\n%s", out)
	}
	if !strings.Contains(out, "print(...)") || !strings.Contains(out, "x") {
		t.Fatalf("view should list both roots:\n%s", out)
	}
}

func TestDescendAndBack(t *testing.T) {
	var m tea.Model = browseModel()

	m = press(m, "enter")
	if got := len(m.(*model).stack); got != 2 {
		t.Fatalf("enter on a call should descend, stack depth %d", got)
	}
	out := m.View()
	if !strings.Contains(out, "sample > print(...)") {
		t.Fatalf("breadcrumb should show the path:\n%s", out)
	}
	if !strings.Contains(out, `"hi"`) {
		t.Fatalf("child level should list the call's children:\n%s", out)
	}

	m = press(m, "esc")
	if got := len(m.(*model).stack); got != 1 {
		t.Fatalf("esc should walk back up, stack depth %d", got)
	}
}

func TestDescendOnLeafIsNoop(t *testing.T) {
	var m tea.Model = browseModel()
	m = press(m, "down") // cursor onto the leaf ident
	m = press(m, "enter")
	if got := len(m.(*model).stack); got != 1 {
		t.Fatalf("enter on a leaf should not descend, stack depth %d", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	var m tea.Model = browseModel()
	m = press(m, "up")
	if m.(*model).stack[0].cursor != 0 {
		t.Fatalf("cursor should not move above the first item")
	}
	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "down")
	if m.(*model).stack[0].cursor != 1 {
		t.Fatalf("cursor should clamp at the last item")
	}
}
