package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/pkg/treeio"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newExploreCmd creates the explore command, an interactive walk through
// a placed layout.
func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [layout.json]",
		Short: "Interactively walk a placed layout",
		Long: `Interactively walk a placed layout.

Navigate with the arrow keys, descend into a child with enter or its
quadrant key (1=NW 2=NE 3=SW 4=SE), and go back up with backspace.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := treeio.ImportLayout(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(doc.Nodes) == 0 {
				return fmt.Errorf("%s: empty layout", args[0])
			}
			_, err = tea.NewProgram(newExploreModel(doc)).Run()
			return err
		},
	}
	return cmd
}

// exploreModel is the bubbletea model for walking a layout document.
// children preserves document edge order, which is NW, NE, SW, SE.
type exploreModel struct {
	doc      *treeio.Document
	children map[string][]string
	current  string
	cursor   int
}

func newExploreModel(doc *treeio.Document) exploreModel {
	children := make(map[string][]string)
	for _, e := range doc.Edges {
		children[e.From] = append(children[e.From], e.To)
	}
	return exploreModel{
		doc:      doc,
		children: children,
		current:  treeio.RootID,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		kids := m.children[m.current]
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(kids)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if m.cursor < len(kids) {
				m.current = kids[m.cursor]
				m.cursor = 0
			}
		case "backspace", "left", "h":
			if i := strings.LastIndex(m.current, "."); i >= 0 {
				m.current = m.current[:i]
				m.cursor = 0
			}
		case "1", "2", "3", "4":
			quad := map[string]string{"1": "nw", "2": "ne", "3": "sw", "4": "se"}[msg.String()]
			for _, id := range kids {
				if strings.HasSuffix(id, "."+quad) {
					m.current = id
					m.cursor = 0
					break
				}
			}
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ descend  ⌫ up  1-4 quadrant  q quit"))
	b.WriteString("\n\n")

	node, ok := m.doc.Lookup(m.current)
	if !ok {
		return b.String()
	}

	b.WriteString(StyleHighlight.Render(m.current))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("position"),
		listNormalStyle.Render(fmt.Sprintf("column %g, depth %d", node.Column, node.Depth))))
	b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("pixels  "),
		listNormalStyle.Render(fmt.Sprintf("(%.1f, %.1f)", node.X, node.Y))))
	if node.Label != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("label   "),
			listNormalStyle.Render(fmt.Sprintf("%d", *node.Label))))
	}
	b.WriteString("\n")

	kids := m.children[m.current]
	if len(kids) == 0 {
		b.WriteString(listDimStyle.Render("  leaf node"))
		b.WriteString("\n")
		return b.String()
	}

	for i, id := range kids {
		child, _ := m.doc.Lookup(id)
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := "—"
		if child.Label != nil {
			label = fmt.Sprintf("%d", *child.Label)
		}
		line := fmt.Sprintf("%s%-3s column %-6g %s", cursor,
			strings.ToUpper(child.Quadrant), child.Column, listDimStyle.Render(label))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
