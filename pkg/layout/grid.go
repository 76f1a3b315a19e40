package layout

import "fmt"

// Grid converts abstract (column, depth) coordinates into pixel space.
// One column unit maps to ColumnSpacing horizontal pixels and one depth
// level to RowSpacing vertical pixels. Spacings must exceed the node
// dimensions, otherwise neighboring nodes overlap on screen even though
// their abstract columns do not.
type Grid struct {
	ColumnSpacing float64 `json:"column_spacing" bson:"column_spacing" toml:"column_spacing"`
	RowSpacing    float64 `json:"row_spacing" bson:"row_spacing" toml:"row_spacing"`
	NodeWidth     float64 `json:"node_width" bson:"node_width" toml:"node_width"`
	NodeHeight    float64 `json:"node_height" bson:"node_height" toml:"node_height"`
}

// DefaultGrid returns the standard grid: 25x25 nodes on a 30x80 raster.
func DefaultGrid() Grid {
	return Grid{
		ColumnSpacing: 30,
		RowSpacing:    80,
		NodeWidth:     25,
		NodeHeight:    25,
	}
}

// Validate checks that the grid constants cannot produce overlapping
// nodes at the pixel level, given the unit-2 minimum column spacing.
func (g Grid) Validate() error {
	if g.ColumnSpacing <= 0 || g.RowSpacing <= 0 || g.NodeWidth <= 0 || g.NodeHeight <= 0 {
		return fmt.Errorf("grid dimensions must be positive")
	}
	if g.NodeWidth >= g.ColumnSpacing {
		return fmt.Errorf("node width %.1f must be less than column spacing %.1f", g.NodeWidth, g.ColumnSpacing)
	}
	if g.NodeHeight >= g.RowSpacing {
		return fmt.Errorf("node height %.1f must be less than row spacing %.1f", g.NodeHeight, g.RowSpacing)
	}
	return nil
}

// Midpoint returns the pixel-space center of the node's rectangle.
func (g Grid) Midpoint(n *Node) (x, y float64) {
	return n.Column*g.ColumnSpacing + g.NodeWidth/2,
		float64(n.Depth)*g.RowSpacing + g.NodeHeight/2
}

// TopLeft returns the pixel-space top-left corner of the node's rectangle.
func (g Grid) TopLeft(n *Node) (x, y float64) {
	return n.Column * g.ColumnSpacing, float64(n.Depth) * g.RowSpacing
}

// Bounds returns the pixel dimensions of the smallest frame containing
// every node of the laid-out tree.
func (g Grid) Bounds(root *Node) (width, height float64) {
	maxColumn := 0.0
	maxDepth := 0
	root.Walk(func(n *Node) {
		if n.Column > maxColumn {
			maxColumn = n.Column
		}
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	})
	return maxColumn*g.ColumnSpacing + g.NodeWidth,
		float64(maxDepth)*g.RowSpacing + g.NodeHeight
}
