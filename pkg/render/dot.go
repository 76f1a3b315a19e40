package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/quadviz/quadviz/pkg/treeio"
)

// ToDOT converts a layout document to Graphviz DOT for the node-link
// view. Node positions are pinned to the computed layout (neato honors
// the "!" suffix), with y negated because Graphviz points up while the
// layout points down.
func ToDOT(doc *treeio.Document) string {
	var buf bytes.Buffer
	buf.WriteString("graph quadtree {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=12, fixedsize=true];\n")
	buf.WriteString("\n")

	w := doc.Grid.NodeWidth / 72
	h := doc.Grid.NodeHeight / 72
	for _, n := range doc.Nodes {
		label := ""
		if n.Label != nil {
			label = fmt.Sprintf("%d", *n.Label)
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.1f,%.1f!\", width=%.2f, height=%.2f];\n",
			n.ID, label, n.X, -n.Y, w, h)
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// The returned SVG can be converted further with [ToPDF] or [ToPNG].
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
