// Package quadtree implements a point-region quadtree over a rectangular
// region of the plane.
//
// Each node covers an axis-aligned region and has up to four children, one
// per quadrant (NW, NE, SW, SE). Leaves hold at most one point; inserting a
// second point into an occupied leaf subdivides it. The tree therefore
// adapts its depth to the local density of the point set.
//
// Coordinates follow screen convention: x grows to the right, y grows
// downward, so NW is the top-left quadrant.
//
// The zero value of Tree is not usable - use New to create an instance.
// Tree is not safe for concurrent use without external synchronization.
package quadtree

import "errors"

var (
	// ErrEmptyRegion is returned by [New] when the region has no area.
	ErrEmptyRegion = errors.New("region must have positive width and height")

	// ErrOutOfBounds is returned by [Tree.Insert] when the point lies
	// outside the tree's region.
	ErrOutOfBounds = errors.New("point outside tree region")

	// ErrDuplicatePoint is returned by [Tree.Insert] when the exact point
	// is already present. Duplicate points cannot be separated by
	// subdivision and would recurse forever.
	ErrDuplicatePoint = errors.New("duplicate point")
)

// Point is a location in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned region. Min is inclusive, Max exclusive on both
// axes, so adjacent quadrants never share a point.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether p lies inside the region.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Empty reports whether the region has zero or negative area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// mid returns the center point used for subdivision.
func (r Rect) mid() (float64, float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

// QuadrantOf returns the quadrant of r that contains p.
// Points on the dividing lines belong to the east/south side,
// consistent with the inclusive-min convention of Contains.
func (r Rect) QuadrantOf(p Point) Quadrant {
	mx, my := r.mid()
	if p.Y < my {
		if p.X < mx {
			return NW
		}
		return NE
	}
	if p.X < mx {
		return SW
	}
	return SE
}

// Quadrant returns the sub-region covered by quadrant q.
func (r Rect) Quadrant(q Quadrant) Rect {
	mx, my := r.mid()
	switch q {
	case NW:
		return Rect{r.MinX, r.MinY, mx, my}
	case NE:
		return Rect{mx, r.MinY, r.MaxX, my}
	case SW:
		return Rect{r.MinX, my, mx, r.MaxY}
	default:
		return Rect{mx, my, r.MaxX, r.MaxY}
	}
}

// Node is a single quadtree node. Internal nodes hold no point of their
// own; leaves hold at most one. The child array is indexed by Quadrant and
// mirrors exactly the occupancy that layout and rendering operate on.
type Node struct {
	region   Rect
	point    *Point
	children [4]*Node
	size     int // points stored in this subtree
}

// Region returns the region this node covers.
func (n *Node) Region() Rect { return n.region }

// ChildAt returns the child occupying quadrant q, or nil if the slot is
// empty. This is the read-only view the layout engine requires.
func (n *Node) ChildAt(q Quadrant) *Node {
	if q < NW || q > SE {
		return nil
	}
	return n.children[q]
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// Point returns the point stored directly at this node, if any.
// Only leaves store points.
func (n *Node) Point() (Point, bool) {
	if n.point == nil {
		return Point{}, false
	}
	return *n.point, true
}

// Size returns the number of points stored in this subtree. It is the
// default label value shown when the tree is rendered.
func (n *Node) Size() int { return n.size }

// Walk visits the subtree in pre-order, children in NW, NE, SW, SE order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, q := range Quadrants() {
		if c := n.children[q]; c != nil {
			c.Walk(fn)
		}
	}
}

// insert adds p to the subtree, subdividing leaves as needed.
func (n *Node) insert(p Point) error {
	if !n.IsLeaf() {
		q := n.region.QuadrantOf(p)
		c := n.children[q]
		if c == nil {
			c = &Node{region: n.region.Quadrant(q)}
			n.children[q] = c
		}
		if err := c.insert(p); err != nil {
			return err
		}
		n.size++
		return nil
	}

	if n.point == nil {
		n.point = &p
		n.size++
		return nil
	}
	if *n.point == p {
		return ErrDuplicatePoint
	}

	// Occupied leaf: push the resident point down, then insert p.
	resident := *n.point
	n.point = nil
	n.size = 0
	q := n.region.QuadrantOf(resident)
	n.children[q] = &Node{region: n.region.Quadrant(q)}
	if err := n.children[q].insert(resident); err != nil {
		return err
	}
	n.size++
	return n.insert(p)
}

// Tree is a point-region quadtree over a fixed region.
type Tree struct {
	root *Node
}

// New creates an empty quadtree covering region.
// Returns ErrEmptyRegion if the region has no area.
func New(region Rect) (*Tree, error) {
	if region.Empty() {
		return nil, ErrEmptyRegion
	}
	return &Tree{root: &Node{region: region}}, nil
}

// Insert adds a point to the tree.
// Returns ErrOutOfBounds if the point lies outside the tree's region,
// or ErrDuplicatePoint if the exact point is already present.
func (t *Tree) Insert(p Point) error {
	if !t.root.region.Contains(p) {
		return ErrOutOfBounds
	}
	return t.root.insert(p)
}

// Root returns the root node. The root always exists, even for an empty
// tree.
func (t *Tree) Root() *Node { return t.root }

// Region returns the region the tree covers.
func (t *Tree) Region() Rect { return t.root.region }

// Len returns the number of points in the tree.
func (t *Tree) Len() int { return t.root.size }
