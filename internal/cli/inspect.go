package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/pkg/treeio"
)

// newInspectCmd creates the inspect command for examining a layout
// document without rendering it.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Print a summary and indented dump of a placed layout",
		Long: `Print a summary and indented dump of a placed layout.

Each node is printed as "column,depth" with its quadrant and label,
indented by tree depth. Useful for checking placements without opening
a rendered image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := treeio.ImportLayout(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			depth := 0
			for _, n := range doc.Nodes {
				if n.Depth > depth {
					depth = n.Depth
				}
			}

			fmt.Println(StyleTitle.Render("=== Layout ==="))
			printKeyValue("Nodes", fmt.Sprintf("%d", len(doc.Nodes)))
			printKeyValue("Edges", fmt.Sprintf("%d", len(doc.Edges)))
			printKeyValue("Depth", fmt.Sprintf("%d", depth))
			printKeyValue("Frame", fmt.Sprintf("%.0f x %.0f px", doc.Width, doc.Height))
			printKeyValue("Grid", fmt.Sprintf("%g/col, %g/row, node %gx%g",
				doc.Grid.ColumnSpacing, doc.Grid.RowSpacing, doc.Grid.NodeWidth, doc.Grid.NodeHeight))
			printNewline()

			// Nodes are stored in pre-order, so indenting by depth
			// reproduces the tree shape.
			for _, n := range doc.Nodes {
				tab := strings.Repeat("  ", n.Depth)
				line := fmt.Sprintf("%s%g,%d", tab, n.Column, n.Depth)
				if n.Quadrant != "" {
					line += " " + StyleHighlight.Render(n.Quadrant)
				}
				if n.Label != nil {
					line += StyleDim.Render(fmt.Sprintf(" (%d)", *n.Label))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	return cmd
}
