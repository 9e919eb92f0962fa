// Package explore is an interactive terminal browser for node trees: one
// level of the tree at a time, descend into a node's children, walk back up.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"nodeview/internal/node"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Descend key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Descend: key.NewBinding(key.WithKeys("enter", "l"), key.WithHelp("enter", "descend")),
	Back:    key.NewBinding(key.WithKeys("esc", "backspace", "h"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// frame is one level of the browse stack: a child list and a cursor into it.
type frame struct {
	title  string
	nodes  []node.Node
	cursor int
}

type model struct {
	treeName string
	stack    []frame
	width    int
}

// NewModel returns a Bubble Tea model browsing the given roots.
func NewModel(treeName string, roots []node.Node) tea.Model {
	return &model{
		treeName: treeName,
		stack:    []frame{{title: treeName, nodes: roots}},
		width:    80,
	}
}

// Run browses the roots until the user quits.
func Run(treeName string, roots []node.Node) error {
	_, err := tea.NewProgram(NewModel(treeName, roots)).Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		top := &m.stack[len(m.stack)-1]
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if top.cursor > 0 {
				top.cursor--
			}
		case key.Matches(msg, keys.Down):
			if top.cursor < len(top.nodes)-1 {
				top.cursor++
			}
		case key.Matches(msg, keys.Descend):
			if len(top.nodes) == 0 {
				return m, nil
			}
			cur := top.nodes[top.cursor]
			kids := node.Children(cur)
			if len(kids) == 0 {
				return m, nil
			}
			m.stack = append(m.stack, frame{title: itemLabel(cur), nodes: kids})
		case key.Matches(msg, keys.Back):
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		}
	}
	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m *model) View() string {
	top := m.stack[len(m.stack)-1]

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.breadcrumb()))
	b.WriteString("\n\n")

	if len(top.nodes) == 0 {
		b.WriteString(dimStyle.Render("  (no nodes)"))
		b.WriteString("\n")
	}
	for i, n := range top.nodes {
		marker := "  "
		if i == top.cursor {
			marker = cursorStyle.Render("> ")
		}
		kind := kindStyle.Render(runewidth.FillRight(n.Kind().String(), 6))
		label := truncate(itemLabel(n), m.width-12)
		note := ""
		if count := len(node.Children(n)); count > 0 {
			note = dimStyle.Render(fmt.Sprintf("  [%d]", count))
		}
		b.WriteString(marker + kind + label + note + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move · enter descend · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *model) breadcrumb() string {
	parts := make([]string, len(m.stack))
	for i, fr := range m.stack {
		parts[i] = fr.title
	}
	return strings.Join(parts, " > ")
}

func itemLabel(n node.Node) string {
	switch n := n.(type) {
	case *node.Ident:
		return n.Name
	case *node.IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *node.StrLit:
		return fmt.Sprintf("%q", n.Value)
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
		return n.Kind().String()
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
