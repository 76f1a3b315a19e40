// Package render turns placed layout documents into SVG, PNG, PDF and
// Graphviz DOT artifacts. SVG is the native output; PNG and PDF are
// produced from it with rsvg-convert, and DOT feeds the node-link view.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/quadviz/quadviz/pkg/treeio"
)

// Inset shifts the drawing right and down so strokes on the outermost
// nodes are not clipped by the frame.
const Inset = 4.0

// smallLabelThreshold is the first label value that no longer fits the
// node square at the large font size.
const smallLabelThreshold = 10

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	showText  bool
	showEdges bool
}

// WithStyle selects the visual style. Default is [Classic].
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithoutLabels suppresses label text.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showText = false } }

// WithoutEdges suppresses parent-child connecting lines.
func WithoutEdges() SVGOption { return func(r *svgRenderer) { r.showEdges = false } }

// RenderSVG renders a layout document to SVG. Edges are drawn first so
// node squares cover the line endpoints, then nodes in document order,
// then label text on top.
func RenderSVG(doc *treeio.Document, opts ...SVGOption) []byte {
	r := svgRenderer{style: Classic{}, showText: true, showEdges: true}
	for _, opt := range opts {
		opt(&r)
	}

	shapes := buildShapes(doc)
	width := doc.Width + 2*Inset
	height := doc.Height + 2*Inset

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)
	if r.showEdges {
		for _, e := range buildLines(doc) {
			r.style.RenderEdge(&buf, e)
		}
	}
	for _, s := range shapes {
		r.style.RenderNode(&buf, s)
	}
	if r.showText {
		for _, s := range shapes {
			r.style.RenderText(&buf, s)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildShapes(doc *treeio.Document) []NodeShape {
	w, h := doc.Grid.NodeWidth, doc.Grid.NodeHeight
	shapes := make([]NodeShape, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		s := NodeShape{
			ID:       n.ID,
			X:        n.X - w/2 + Inset,
			Y:        n.Y - h/2 + Inset,
			W:        w,
			H:        h,
			CX:       n.X + Inset,
			CY:       n.Y + Inset,
			Quadrant: n.Quadrant,
		}
		if n.Label != nil {
			s.Label = strconv.Itoa(*n.Label)
			s.Zero = *n.Label == 0
			s.Small = *n.Label >= smallLabelThreshold
		}
		shapes = append(shapes, s)
	}
	return shapes
}

func buildLines(doc *treeio.Document) []EdgeLine {
	// Index once; per-edge Lookup scans would make assembly quadratic
	// in the node count.
	byID := make(map[string]treeio.PlacedNode, len(doc.Nodes))
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}

	lines := make([]EdgeLine, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		src, okS := byID[e.From]
		dst, okD := byID[e.To]
		if !okS || !okD {
			continue
		}
		lines = append(lines, EdgeLine{
			FromID: e.From, ToID: e.To,
			X1: src.X + Inset, Y1: src.Y + Inset,
			X2: dst.X + Inset, Y2: dst.Y + Inset,
		})
	}
	return lines
}
