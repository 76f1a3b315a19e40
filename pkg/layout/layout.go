// Package layout assigns non-overlapping 2D coordinates to quadrant-indexed
// trees so they can be rendered for visual inspection.
//
// The algorithm is a two-pass coordinate assignment over a mirror of the
// domain tree. The first pass places every node at the next free column of
// its depth (a per-depth "frontier" counter) and, once its children are
// placed, centers the node over them where possible. When the children end
// up left of a node's already-claimed column, the node cannot move without
// colliding with an earlier sibling; instead the required correction is
// recorded on the node and the second pass pushes all of its descendants
// right by the accumulated amount.
//
// Columns are abstract units: siblings at the same depth are kept at least
// MinSpacing columns apart, and Grid converts (column, depth) pairs into
// pixel coordinates.
//
// The layout does not guarantee a minimum-area result and accepts some
// overlap on deep, dense trees as a tradeoff - see the package tests for
// the properties that are guaranteed.
package layout

import (
	"math"

	"github.com/quadviz/quadviz/pkg/quadtree"
)

// MinSpacing is the minimum horizontal distance, in abstract column units,
// between two nodes at the same depth.
const MinSpacing = 2

// unplaced is the column sentinel before the assignment pass runs.
const unplaced = -1

// Node is one node of the layout tree. It mirrors the domain tree's
// quadrant occupancy exactly and carries the coordinates computed by
// Layout. A Node tree is built fresh per layout run and holds no state
// across runs.
type Node struct {
	// Source is the domain node this layout node mirrors. Read-only.
	Source Source

	// Depth is the number of edges from the root. Fixed at build time.
	Depth int

	// Column is the horizontal position in abstract units. It is
	// unplaced (-1) until Layout runs and may be fractional after
	// centering.
	Column float64

	// Children holds the quadrant-indexed child slots. Empty domain
	// slots produce nil entries.
	Children [4]*Node

	// shift is the pending horizontal correction for this node's
	// descendants, consumed by the adjust pass.
	shift float64

	label LabelFunc
}

// Build constructs a layout tree mirroring src. No coordinates are
// assigned; call Layout on the returned root. The label function is
// optional and is carried through for renderers.
func Build(src Source, label LabelFunc) *Node {
	return build(src, 0, label)
}

func build(src Source, depth int, label LabelFunc) *Node {
	n := &Node{
		Source: src,
		Depth:  depth,
		Column: unplaced,
		label:  label,
	}
	for _, q := range quadtree.Quadrants() {
		if c := src.ChildAt(q); c != nil {
			n.Children[q] = build(c, depth+1, label)
		}
	}
	return n
}

// frontier tracks the next free column per depth. Reading a missing depth
// yields 0, which is exactly the lazily-materialized default the
// assignment pass needs.
type frontier map[int]float64

// Layout computes final columns for every node in the tree. It runs the
// assignment pass with a fresh frontier and then propagates the deferred
// shifts. Calling Layout on a freshly built mirror of the same domain
// tree always produces identical columns.
func (n *Node) Layout() {
	n.assign(0, frontier{})
	n.adjust(0)
}

// assign places the node at the frontier of its depth, recursively places
// its children, and then centers the node over them where possible.
//
// If the children's midpoint lies left of the node's claimed column, the
// node stays put (moving left could collide with an earlier sibling) and
// the difference is recorded as a pending shift for the descendants; the
// child-depth frontier advances by the same amount so later siblings
// leave room. If the midpoint lies right, the node moves onto it and the
// frontier of its own depth is bumped past the new position.
func (n *Node) assign(depth int, next frontier) {
	n.Column = next[depth]
	next[depth] += MinSpacing
	n.Depth = depth

	childMin := math.Inf(1)
	childMax := math.Inf(-1)
	for _, q := range quadtree.Quadrants() {
		c := n.Children[q]
		if c == nil {
			continue
		}
		c.assign(depth+1, next)
		childMin = math.Min(childMin, c.Column)
		childMax = math.Max(childMax, c.Column)
	}

	if math.IsInf(childMin, 1) {
		return // leaf
	}

	// Strict comparisons on purpose: an exactly-equal midpoint is a
	// no-op, and near-equal midpoints from float noise are not rounded.
	childMid := (childMin + childMax) / 2
	switch {
	case childMid < n.Column:
		n.shift = n.Column - childMid
		next[depth+1] += n.shift
	case childMid > n.Column:
		n.Column = childMid
		next[depth] = math.Max(next[depth]+MinSpacing, n.Column+MinSpacing)
	}
}

// adjust applies the accumulated pending shifts root-to-leaf. A shift
// recorded at depth d moves all and only the nodes below d in that
// subtree, each exactly once.
func (n *Node) adjust(offset float64) {
	n.Column += offset
	offset += n.shift
	for _, q := range quadtree.Quadrants() {
		if c := n.Children[q]; c != nil {
			c.adjust(offset)
		}
	}
}

// Shift returns the pending shift recorded on this node by the assignment
// pass. After Layout it has already been applied to the descendants; it is
// exposed for inspection and tests.
func (n *Node) Shift() float64 { return n.shift }

// Label returns the label value for this node's domain payload.
// ok is false when no label function was supplied to Build.
func (n *Node) Label() (value int, ok bool) {
	if n.label == nil {
		return 0, false
	}
	return n.label(n.Source), true
}

// Walk visits the subtree in pre-order, children in NW, NE, SW, SE order.
// This is the traversal order renderers rely on.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, q := range quadtree.Quadrants() {
		if c := n.Children[q]; c != nil {
			c.Walk(fn)
		}
	}
}

// Edges calls fn once per parent→child edge, in the same pre-order the
// renderer draws connecting lines in.
func (n *Node) Edges(fn func(parent, child *Node, q quadtree.Quadrant)) {
	for _, q := range quadtree.Quadrants() {
		if c := n.Children[q]; c != nil {
			fn(n, c, q)
			c.Edges(fn)
		}
	}
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
