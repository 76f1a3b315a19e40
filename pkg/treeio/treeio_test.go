package treeio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quadviz/quadviz/pkg/layout"
	"github.com/quadviz/quadviz/pkg/quadtree"
)

func buildTree(t *testing.T, pts ...quadtree.Point) *quadtree.Tree {
	t.Helper()
	tree, err := quadtree.New(quadtree.Rect{MinX: 0, MinY: 0, MaxX: 128, MaxY: 128})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pts {
		if err := tree.Insert(p); err != nil {
			t.Fatal(err)
		}
	}
	return tree
}

func TestReadTree(t *testing.T) {
	input := `{
		"region": {"min_x": 0, "min_y": 0, "max_x": 128, "max_y": 128},
		"points": [{"x": 10, "y": 10}, {"x": 100, "y": 100}]
	}`

	tree, err := ReadTree(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tree.Len())
	}
	if tree.Root().ChildAt(quadtree.NW) == nil || tree.Root().ChildAt(quadtree.SE) == nil {
		t.Error("expected children at NW and SE")
	}
}

func TestReadTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"region":`},
		{"empty region", `{"region": {}, "points": []}`},
		{"point outside region", `{
			"region": {"min_x": 0, "min_y": 0, "max_x": 10, "max_y": 10},
			"points": [{"x": 50, "y": 50}]
		}`},
		{"duplicate point", `{
			"region": {"min_x": 0, "min_y": 0, "max_x": 10, "max_y": 10},
			"points": [{"x": 5, "y": 5}, {"x": 5, "y": 5}]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTree(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadTree() = nil error, want failure")
			}
		})
	}
}

func TestTreeRoundTrip(t *testing.T) {
	tree := buildTree(t,
		quadtree.Point{X: 5, Y: 5},
		quadtree.Point{X: 120, Y: 6},
		quadtree.Point{X: 40, Y: 40},
	)

	var buf bytes.Buffer
	if err := WriteTree(tree, &buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTree(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != tree.Len() {
		t.Errorf("round-trip Len() = %d, want %d", got.Len(), tree.Len())
	}
	if got.Region() != tree.Region() {
		t.Errorf("round-trip region = %+v, want %+v", got.Region(), tree.Region())
	}

	// Same point set means same subdivision.
	var a, b []int
	tree.Root().Walk(func(n *quadtree.Node) { a = append(a, n.Size()) })
	got.Root().Walk(func(n *quadtree.Node) { b = append(b, n.Size()) })
	if len(a) != len(b) {
		t.Fatalf("round-trip node count = %d, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("node %d size = %d, want %d", i, b[i], a[i])
		}
	}
}

func TestFromLayout(t *testing.T) {
	tree := buildTree(t,
		quadtree.Point{X: 10, Y: 10},
		quadtree.Point{X: 100, Y: 100},
	)
	root := layout.Build(layout.TreeAdapter{Node: tree.Root()}, layout.SizeLabel)
	root.Layout()

	doc := FromLayout(root, layout.DefaultGrid())

	if len(doc.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(doc.Nodes))
	}

	// Pre-order: root, then NW before SE.
	wantIDs := []string{"root", "root.nw", "root.se"}
	for i, id := range wantIDs {
		if doc.Nodes[i].ID != id {
			t.Errorf("node %d ID = %q, want %q", i, doc.Nodes[i].ID, id)
		}
	}

	rootNode, ok := doc.Lookup("root")
	if !ok {
		t.Fatal("root not found")
	}
	if rootNode.Column != 1 || rootNode.Depth != 0 {
		t.Errorf("root placed at (%v, %d), want (1, 0)", rootNode.Column, rootNode.Depth)
	}
	if rootNode.X != 42.5 || rootNode.Y != 12.5 {
		t.Errorf("root midpoint = (%v, %v), want (42.5, 12.5)", rootNode.X, rootNode.Y)
	}
	if rootNode.Label == nil || *rootNode.Label != 2 {
		t.Errorf("root label = %v, want 2", rootNode.Label)
	}
	if rootNode.Quadrant != "" {
		t.Errorf("root quadrant = %q, want empty", rootNode.Quadrant)
	}

	se, ok := doc.Lookup("root.se")
	if !ok {
		t.Fatal("root.se not found")
	}
	if se.Column != 2 || se.Depth != 1 || se.Quadrant != "se" {
		t.Errorf("root.se = %+v", se)
	}

	wantEdges := []Edge{
		{From: "root", To: "root.nw"},
		{From: "root", To: "root.se"},
	}
	if len(doc.Edges) != len(wantEdges) {
		t.Fatalf("len(Edges) = %d, want %d", len(doc.Edges), len(wantEdges))
	}
	for i, e := range wantEdges {
		if doc.Edges[i] != e {
			t.Errorf("edge %d = %+v, want %+v", i, doc.Edges[i], e)
		}
	}

	if doc.Width != 85 || doc.Height != 105 {
		t.Errorf("frame = %vx%v, want 85x105", doc.Width, doc.Height)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	tree := buildTree(t,
		quadtree.Point{X: 10, Y: 10},
		quadtree.Point{X: 100, Y: 100},
		quadtree.Point{X: 120, Y: 120},
	)
	root := layout.Build(layout.TreeAdapter{Node: tree.Root()}, layout.SizeLabel)
	root.Layout()
	doc := FromLayout(root, layout.DefaultGrid())

	var buf bytes.Buffer
	if err := WriteLayout(doc, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Nodes) != len(doc.Nodes) || len(got.Edges) != len(doc.Edges) {
		t.Fatalf("round-trip shape = %d nodes / %d edges, want %d / %d",
			len(got.Nodes), len(got.Edges), len(doc.Nodes), len(doc.Edges))
	}
	for i := range doc.Nodes {
		want, have := doc.Nodes[i], got.Nodes[i]
		if have.ID != want.ID || have.Column != want.Column || have.X != want.X {
			t.Errorf("node %d = %+v, want %+v", i, have, want)
		}
	}
	if got.Grid != doc.Grid {
		t.Errorf("round-trip grid = %+v, want %+v", got.Grid, doc.Grid)
	}
}

func TestImportExportTree(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tree.json"

	tree := buildTree(t, quadtree.Point{X: 3, Y: 4})
	if err := ExportTree(tree, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportTree(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Errorf("imported Len() = %d, want 1", got.Len())
	}

	if _, err := ImportTree(dir + "/missing.json"); err == nil {
		t.Error("ImportTree(missing) = nil error, want failure")
	}
}
