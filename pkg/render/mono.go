package render

import (
	"bytes"
	"fmt"
)

// Mono is a grayscale style for print output. Quadrant membership is
// shown with a hatched corner instead of color.
type Mono struct{}

func (Mono) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <pattern id="hatch" width="4" height="4" patternUnits="userSpaceOnUse" patternTransform="rotate(45)">
      <line x1="0" y1="0" x2="0" y2="4" stroke="#888888" stroke-width="1"/>
    </pattern>
  </defs>
`)
}

func (Mono) RenderEdge(buf *bytes.Buffer, e EdgeLine) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444" stroke-width="1"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2)
}

func (Mono) RenderNode(buf *bytes.Buffer, n NodeShape) {
	fill := "white"
	if n.Zero {
		fill = "#dddddd"
	}
	fmt.Fprintf(buf, `  <rect id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#444444"/>`+"\n",
		n.ID, n.X, n.Y, n.W, n.H, fill)

	if _, ok := accentFill[n.Quadrant]; ok {
		ax, ay := n.X, n.Y
		if n.Quadrant == "ne" || n.Quadrant == "se" {
			ax += n.W / 2
		}
		if n.Quadrant == "sw" || n.Quadrant == "se" {
			ay += n.H / 2
		}
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#hatch)" stroke="#444444"/>`+"\n",
			ax, ay, n.W/2, n.H/2)
	}
}

func (Mono) RenderText(buf *bytes.Buffer, n NodeShape) {
	if n.Label == "" {
		return
	}
	size := fontSizeLarge
	if n.Small {
		size = fontSizeSmall
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-family="monospace" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		n.CX, n.CY, size, n.Label)
}

// Ensure Mono implements Style.
var _ Style = Mono{}
