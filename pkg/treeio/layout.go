package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/quadviz/quadviz/pkg/layout"
	"github.com/quadviz/quadviz/pkg/quadtree"
)

// RootID is the identifier of the root node in a layout document.
const RootID = "root"

// PlacedNode is one positioned node of a layout document. ID is the
// quadrant path from the root, e.g. "root.nw.se". X and Y are the pixel
// midpoint under the document's grid; Column and Depth are the abstract
// coordinates they were derived from.
type PlacedNode struct {
	ID       string  `json:"id" bson:"id"`
	Quadrant string  `json:"quadrant,omitempty" bson:"quadrant,omitempty"`
	Depth    int     `json:"depth" bson:"depth"`
	Column   float64 `json:"column" bson:"column"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Label    *int    `json:"label,omitempty" bson:"label,omitempty"`
}

// Edge is a parent-to-child connection between two placed nodes.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Document is a fully placed layout: every node with its abstract and
// pixel coordinates, the edges between them, and the grid and frame the
// pixel values were computed under. A Document is self-contained; it can
// be rendered without access to the tree it came from.
type Document struct {
	Grid   layout.Grid  `json:"grid" bson:"grid"`
	Width  float64      `json:"width" bson:"width"`
	Height float64      `json:"height" bson:"height"`
	Nodes  []PlacedNode `json:"nodes" bson:"nodes"`
	Edges  []Edge       `json:"edges" bson:"edges"`
}

// FromLayout flattens a laid-out tree into a Document under the given
// grid. Nodes appear in pre-order, edges in the order a renderer draws
// them. The root must already have been placed with Layout.
func FromLayout(root *layout.Node, grid layout.Grid) *Document {
	doc := &Document{Grid: grid}
	doc.Width, doc.Height = grid.Bounds(root)
	flatten(doc, root, RootID, "", grid)
	return doc
}

func flatten(doc *Document, n *layout.Node, id, quadrant string, grid layout.Grid) {
	x, y := grid.Midpoint(n)
	placed := PlacedNode{
		ID:       id,
		Quadrant: quadrant,
		Depth:    n.Depth,
		Column:   n.Column,
		X:        x,
		Y:        y,
	}
	if v, ok := n.Label(); ok {
		placed.Label = &v
	}
	doc.Nodes = append(doc.Nodes, placed)

	for _, q := range quadtree.Quadrants() {
		c := n.Children[q]
		if c == nil {
			continue
		}
		childID := id + "." + q.String()
		doc.Edges = append(doc.Edges, Edge{From: id, To: childID})
		flatten(doc, c, childID, q.String(), grid)
	}
}

// Lookup returns the placed node with the given ID, or false when the
// document has no such node.
func (d *Document) Lookup(id string) (PlacedNode, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PlacedNode{}, false
}

// ReadLayout decodes a layout document from r.
// ReadLayout does not close r.
func ReadLayout(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// WriteLayout encodes a layout document as indented JSON and writes it
// to w. The format round-trips through [ReadLayout].
func WriteLayout(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportLayout reads a layout document from a JSON file at path.
func ImportLayout(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}

// ExportLayout writes a layout document to a JSON file at path.
func ExportLayout(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(doc, f)
}
