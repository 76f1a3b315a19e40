package render

import (
	"bytes"
	"fmt"
)

// Accent colors marking which quadrant of the parent a node occupies.
// The tint covers the matching quarter of the node square.
var accentFill = map[string]string{
	"nw": "#ffcccc",
	"ne": "#ccffcc",
	"sw": "#ccccff",
	"se": "#ccffff",
}

const (
	classicFill     = "white"
	classicZeroFill = "#cccccc"
	classicStroke   = "black"
	fontSizeLarge   = 12.0
	fontSizeSmall   = 8.0
)

// Classic is the default style: white squares with black outlines, gray
// fill for zero-valued nodes and pastel corner tints per quadrant.
type Classic struct{}

func (Classic) RenderDefs(buf *bytes.Buffer) {}

func (Classic) RenderEdge(buf *bytes.Buffer, e EdgeLine) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2, classicStroke)
}

func (Classic) RenderNode(buf *bytes.Buffer, n NodeShape) {
	fill := classicFill
	if n.Zero {
		fill = classicZeroFill
	}
	fmt.Fprintf(buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		n.ID, n.X, n.Y, n.W, n.H, fill, classicStroke)

	if accent, ok := accentFill[n.Quadrant]; ok {
		ax, ay := n.X, n.Y
		if n.Quadrant == "ne" || n.Quadrant == "se" {
			ax += n.W / 2
		}
		if n.Quadrant == "sw" || n.Quadrant == "se" {
			ay += n.H / 2
		}
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
			ax, ay, n.W/2, n.H/2, accent, classicStroke)
	}
}

func (Classic) RenderText(buf *bytes.Buffer, n NodeShape) {
	if n.Label == "" {
		return
	}
	size := fontSizeLarge
	if n.Small {
		size = fontSizeSmall
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		n.CX, n.CY, size, n.Label)
}

// Ensure Classic implements Style.
var _ Style = Classic{}
