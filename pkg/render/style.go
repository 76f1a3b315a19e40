package render

import (
	"bytes"

	"github.com/quadviz/quadviz/pkg/errors"
)

// Style defines the visual appearance for grid diagram rendering.
// Implementations control how nodes, edges and label text are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderEdge writes the SVG for a parent-child connecting line.
	RenderEdge(buf *bytes.Buffer, e EdgeLine)
	// RenderNode writes the SVG for a single node square.
	RenderNode(buf *bytes.Buffer, n NodeShape)
	// RenderText writes the SVG for a node's label text.
	RenderText(buf *bytes.Buffer, n NodeShape)
}

// NodeShape contains all data needed to render a single node.
type NodeShape struct {
	ID         string  // Node identifier (quadrant path)
	X, Y, W, H float64 // Top-left position and dimensions
	CX, CY     float64 // Center coordinates (for text)
	Quadrant   string  // Quadrant within the parent, empty for the root
	Label      string  // Display text, empty when unlabeled
	Zero       bool    // Label value is zero (drawn dimmed)
	Small      bool    // Label needs the smaller font to fit
}

// EdgeLine contains positioning data for a parent-child edge.
type EdgeLine struct {
	FromID, ToID   string  // Connected node IDs
	X1, Y1, X2, Y2 float64 // Line coordinates
}

// StyleByName returns the style registered under the given name.
func StyleByName(name string) (Style, error) {
	switch name {
	case "classic":
		return Classic{}, nil
	case "mono":
		return Mono{}, nil
	}
	return nil, errors.ValidateStyle(name)
}
