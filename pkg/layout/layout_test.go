package layout

import (
	"math/rand"
	"testing"

	"github.com/quadviz/quadviz/pkg/quadtree"
)

// stub is a hand-built Source for shaping exact test topologies.
type stub struct {
	children [4]*stub
}

func (s *stub) ChildAt(q quadtree.Quadrant) Source {
	if c := s.children[q]; c != nil {
		return c
	}
	return nil
}

// leaf returns a childless stub node.
func leaf() *stub { return &stub{} }

// node builds a stub with the given quadrant slots occupied.
func node(slots map[quadtree.Quadrant]*stub) *stub {
	s := &stub{}
	for q, c := range slots {
		s.children[q] = c
	}
	return s
}

// place builds and lays out a stub tree.
func place(t *testing.T, root *stub) *Node {
	t.Helper()
	n := Build(root, nil)
	n.Layout()
	return n
}

func TestSingleNode(t *testing.T) {
	n := place(t, leaf())

	if n.Column != 0 {
		t.Errorf("root column = %v, want 0", n.Column)
	}
	if n.Depth != 0 {
		t.Errorf("root depth = %v, want 0", n.Depth)
	}
	for q, c := range n.Children {
		if c != nil {
			t.Errorf("unexpected child at quadrant %d", q)
		}
	}
}

func TestTwoChildrenCenterParent(t *testing.T) {
	// Root occupied at NW and SE only: children land at columns 0 and 2,
	// the root centers exactly between them.
	n := place(t, node(map[quadtree.Quadrant]*stub{
		quadtree.NW: leaf(),
		quadtree.SE: leaf(),
	}))

	nw := n.Children[quadtree.NW]
	se := n.Children[quadtree.SE]
	if nw == nil || se == nil {
		t.Fatal("expected children at NW and SE")
	}
	if nw.Column != 0 || nw.Depth != 1 {
		t.Errorf("NW child at (%v, %v), want (0, 1)", nw.Column, nw.Depth)
	}
	if se.Column != 2 || se.Depth != 1 {
		t.Errorf("SE child at (%v, %v), want (2, 1)", se.Column, se.Depth)
	}
	if n.Column != 1.0 {
		t.Errorf("root column = %v, want 1.0", n.Column)
	}
}

func TestCenteringChain(t *testing.T) {
	// root → NW child → {NW, NE} leaves: each parent's frontier slot sits
	// at or left of its children's midpoint, so centering cascades up
	// without any pending shift.
	n := place(t, node(map[quadtree.Quadrant]*stub{
		quadtree.NW: node(map[quadtree.Quadrant]*stub{
			quadtree.NW: leaf(),
			quadtree.NE: leaf(),
		}),
	}))

	mid := n.Children[quadtree.NW]
	l1 := mid.Children[quadtree.NW]
	l2 := mid.Children[quadtree.NE]

	if l1.Column != 0 || l2.Column != 2 {
		t.Errorf("leaves at %v and %v, want 0 and 2", l1.Column, l2.Column)
	}
	if l1.Depth != 2 || l2.Depth != 2 {
		t.Errorf("leaf depths %d and %d, want 2", l1.Depth, l2.Depth)
	}
	if mid.Column != 1.0 || mid.Depth != 1 {
		t.Errorf("middle node at (%v, %v), want (1.0, 1)", mid.Column, mid.Depth)
	}
	if n.Column != 1.0 {
		t.Errorf("root column = %v, want 1.0", n.Column)
	}

	n.Walk(func(ln *Node) {
		if ln.Shift() != 0 {
			t.Errorf("node at depth %d has shift %v, want 0", ln.Depth, ln.Shift())
		}
	})
}

func TestPendingShiftPushesDescendants(t *testing.T) {
	// Root has a childless NW child and an NE child with two leaves. The
	// NE child claims column 2 at depth 1, but its children start at the
	// untouched depth-2 frontier (columns 0 and 2, midpoint 1). The
	// children sit left of their parent, so the parent records a pending
	// shift instead of moving.
	root := node(map[quadtree.Quadrant]*stub{
		quadtree.NW: leaf(),
		quadtree.NE: node(map[quadtree.Quadrant]*stub{
			quadtree.NW: leaf(),
			quadtree.NE: leaf(),
		}),
	})

	// Run the assignment pass alone to capture pre-adjustment columns.
	n := Build(root, nil)
	n.assign(0, frontier{})

	ne := n.Children[quadtree.NE]
	if ne.Shift() <= 0 {
		t.Fatalf("NE child shift = %v, want > 0", ne.Shift())
	}

	before := map[*Node]float64{}
	n.Walk(func(ln *Node) { before[ln] = ln.Column })

	n.adjust(0)

	// Every node's final column must equal its pre-adjustment column
	// plus the sum of pending shifts along its ancestor chain.
	var check func(ln *Node, inherited float64)
	check = func(ln *Node, inherited float64) {
		want := before[ln] + inherited
		if ln.Column != want {
			t.Errorf("node at depth %d: column %v, want %v (inherited shift %v)",
				ln.Depth, ln.Column, want, inherited)
		}
		for _, q := range quadtree.Quadrants() {
			if c := ln.Children[q]; c != nil {
				check(c, inherited+ln.Shift())
			}
		}
	}
	check(n, 0)

	// Concrete coordinates for this topology.
	wantCols := map[string]float64{"root": 1, "nw": 0, "ne": 2, "ne.nw": 1, "ne.ne": 3}
	gotCols := map[string]float64{
		"root":  n.Column,
		"nw":    n.Children[quadtree.NW].Column,
		"ne":    ne.Column,
		"ne.nw": ne.Children[quadtree.NW].Column,
		"ne.ne": ne.Children[quadtree.NE].Column,
	}
	for id, want := range wantCols {
		if gotCols[id] != want {
			t.Errorf("%s column = %v, want %v", id, gotCols[id], want)
		}
	}
}

func TestSingleChildAlignment(t *testing.T) {
	// With one child min = max = the child's column, so the parent ends
	// exactly on it.
	n := place(t, node(map[quadtree.Quadrant]*stub{
		quadtree.SW: leaf(),
	}))

	child := n.Children[quadtree.SW]
	if n.Column != child.Column {
		t.Errorf("parent column %v differs from single child column %v", n.Column, child.Column)
	}
}

func TestMirrorsDomainShape(t *testing.T) {
	root := node(map[quadtree.Quadrant]*stub{
		quadtree.NE: node(map[quadtree.Quadrant]*stub{
			quadtree.SW: leaf(),
		}),
		quadtree.SE: leaf(),
	})

	n := Build(root, nil)

	var verify func(ln *Node, s *stub)
	verify = func(ln *Node, s *stub) {
		for _, q := range quadtree.Quadrants() {
			got, want := ln.Children[q], s.children[q]
			if (got == nil) != (want == nil) {
				t.Fatalf("quadrant %s occupancy mismatch at depth %d", q, ln.Depth)
			}
			if got != nil {
				if got.Depth != ln.Depth+1 {
					t.Errorf("child depth = %d, want %d", got.Depth, ln.Depth+1)
				}
				verify(got, want)
			}
		}
	}
	verify(n, root)

	// Columns stay at the sentinel until Layout runs.
	n.Walk(func(ln *Node) {
		if ln.Column != unplaced {
			t.Errorf("column assigned before Layout: %v", ln.Column)
		}
	})
}

// randomTree builds a depth-limited random stub tree. Depth is capped at 2
// because the frontier compensation guarantees sibling spacing only across
// one deferred level; deeper trees may legitimately overlap.
func randomTree(rng *rand.Rand, depth int) *stub {
	s := &stub{}
	if depth == 0 {
		return s
	}
	occupied := 0
	for _, q := range quadtree.Quadrants() {
		if rng.Intn(2) == 0 {
			s.children[q] = randomTree(rng, depth-1)
			occupied++
		}
	}
	if occupied == 0 {
		s.children[quadtree.Quadrants()[rng.Intn(4)]] = randomTree(rng, depth-1)
	}
	return s
}

func TestRandomTreesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		root := randomTree(rng, 2)
		n := place(t, root)

		// Depth correctness and centering-when-possible.
		n.Walk(func(ln *Node) {
			childMin, childMax := 0.0, 0.0
			seen := false
			for _, q := range quadtree.Quadrants() {
				c := ln.Children[q]
				if c == nil {
					continue
				}
				if c.Depth != ln.Depth+1 {
					t.Errorf("tree %d: child depth %d under parent depth %d", i, c.Depth, ln.Depth)
				}
				if !seen || c.Column < childMin {
					childMin = c.Column
				}
				if !seen || c.Column > childMax {
					childMax = c.Column
				}
				seen = true
			}
			if seen && (ln.Column < childMin || ln.Column > childMax) {
				t.Errorf("tree %d: parent column %v outside child span [%v, %v]",
					i, ln.Column, childMin, childMax)
			}
		})

		// Sibling spacing: same-depth nodes in traversal order stay at
		// least MinSpacing columns apart.
		byDepth := map[int][]float64{}
		n.Walk(func(ln *Node) {
			byDepth[ln.Depth] = append(byDepth[ln.Depth], ln.Column)
		})
		for depth, cols := range byDepth {
			for j := 1; j < len(cols); j++ {
				if cols[j] < cols[j-1]+MinSpacing {
					t.Errorf("tree %d: depth %d columns %v and %v closer than %d",
						i, depth, cols[j-1], cols[j], MinSpacing)
				}
			}
		}
	}
}

func TestDeterministicRelayout(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	root := randomTree(rng, 4)

	columns := func() []float64 {
		n := Build(root, nil)
		n.Layout()
		var cols []float64
		n.Walk(func(ln *Node) { cols = append(cols, ln.Column) })
		return cols
	}

	first := columns()
	second := columns()
	if len(first) != len(second) {
		t.Fatalf("node counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("column %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestWalkOrder(t *testing.T) {
	// Pre-order, quadrants in NW, NE, SW, SE order.
	root := node(map[quadtree.Quadrant]*stub{
		quadtree.NE: leaf(),
		quadtree.SW: node(map[quadtree.Quadrant]*stub{
			quadtree.SE: leaf(),
		}),
	})
	n := place(t, root)

	var depths []int
	n.Walk(func(ln *Node) { depths = append(depths, ln.Depth) })
	want := []int{0, 1, 1, 2}
	if len(depths) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(depths), len(want))
	}
	for i := range want {
		if depths[i] != want[i] {
			t.Errorf("visit %d at depth %d, want %d", i, depths[i], want[i])
		}
	}

	edges := 0
	n.Edges(func(parent, child *Node, q quadtree.Quadrant) {
		edges++
		if child.Depth != parent.Depth+1 {
			t.Errorf("edge spans depths %d → %d", parent.Depth, child.Depth)
		}
	})
	if edges != n.Count()-1 {
		t.Errorf("visited %d edges for %d nodes", edges, n.Count())
	}
}

func TestLabelCarriedThrough(t *testing.T) {
	calls := 0
	label := func(Source) int {
		calls++
		return 7
	}

	n := Build(leaf(), label)
	n.Layout()

	if v, ok := n.Label(); !ok || v != 7 {
		t.Errorf("Label() = %d, %v; want 7, true", v, ok)
	}
	// Layout itself never consults the label function.
	if calls != 1 {
		t.Errorf("label invoked %d times, want once (by the Label call)", calls)
	}

	unlabeled := Build(leaf(), nil)
	if _, ok := unlabeled.Label(); ok {
		t.Error("Label() ok = true without a label function")
	}
}

func TestQuadtreeAdapter(t *testing.T) {
	tree, err := quadtree.New(quadtree.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100})
	if err != nil {
		t.Fatal(err)
	}
	pts := []quadtree.Point{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 10, Y: 90}}
	for _, p := range pts {
		if err := tree.Insert(p); err != nil {
			t.Fatalf("insert %v: %v", p, err)
		}
	}

	n := Build(TreeAdapter{Node: tree.Root()}, SizeLabel)
	n.Layout()

	if v, ok := n.Label(); !ok || v != len(pts) {
		t.Errorf("root label = %d, %v; want %d, true", v, ok, len(pts))
	}

	// Mirror shape matches the domain tree.
	for _, q := range quadtree.Quadrants() {
		domain := tree.Root().ChildAt(q)
		mirrored := n.Children[q]
		if (domain == nil) != (mirrored == nil) {
			t.Errorf("quadrant %s: domain occupancy %v, layout occupancy %v",
				q, domain != nil, mirrored != nil)
		}
	}
}
