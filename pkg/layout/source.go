package layout

import "github.com/quadviz/quadviz/pkg/quadtree"

// Source is the read-only view of a domain tree node required by the
// layout engine. The engine never inspects payloads - it only asks which
// quadrant slots are occupied and recurses into them.
//
// ChildAt must return nil for an empty slot. Implementations must describe
// a finite tree: a cyclic structure would make layout recurse forever,
// which is a caller contract violation rather than a handled error.
type Source interface {
	ChildAt(q quadtree.Quadrant) Source
}

// LabelFunc derives an integer label from a domain node. Labels are used
// only by renderers (fill color and node text); the layout algorithm
// itself never calls them.
type LabelFunc func(Source) int

// TreeAdapter adapts a *quadtree.Node to the Source interface.
type TreeAdapter struct {
	Node *quadtree.Node
}

// ChildAt returns the adapted child at q, or nil when the slot is empty.
func (a TreeAdapter) ChildAt(q quadtree.Quadrant) Source {
	if c := a.Node.ChildAt(q); c != nil {
		return TreeAdapter{Node: c}
	}
	return nil
}

// SizeLabel labels a quadtree node with the number of points in its
// subtree. It is the default label for trees built from pkg/quadtree.
func SizeLabel(s Source) int {
	if a, ok := s.(TreeAdapter); ok {
		return a.Node.Size()
	}
	return 0
}
