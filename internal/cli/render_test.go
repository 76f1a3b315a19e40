package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quadviz/quadviz/pkg/layout"
	"github.com/quadviz/quadviz/pkg/quadtree"
	"github.com/quadviz/quadviz/pkg/treeio"
)

func writeTestLayout(t *testing.T, dir string) string {
	t.Helper()
	tree, err := quadtree.New(quadtree.Rect{MaxX: 128, MaxY: 128})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []quadtree.Point{{X: 10, Y: 10}, {X: 100, Y: 100}} {
		if err := tree.Insert(p); err != nil {
			t.Fatal(err)
		}
	}
	root := layout.Build(layout.TreeAdapter{Node: tree.Root()}, layout.SizeLabel)
	root.Layout()
	doc := treeio.FromLayout(root, layout.DefaultGrid())

	path := filepath.Join(dir, "demo.layout.json")
	if err := treeio.ExportLayout(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRenderSVG(t *testing.T) {
	dir := t.TempDir()
	input := writeTestLayout(t, dir)

	opts := renderOpts{
		vizTypes: []string{"grid"},
		formats:  []string{"svg"},
		style:    "classic",
		noCache:  true,
	}
	if err := runRender(context.Background(), input, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	out := filepath.Join(dir, "demo_grid.svg")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output at %s: %v", out, err)
	}
	svg := string(data)
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, `id="node-root"`) {
		t.Errorf("unexpected svg output: %.120s", svg)
	}
}

func TestRunRenderValidation(t *testing.T) {
	dir := t.TempDir()
	input := writeTestLayout(t, dir)

	tests := []struct {
		name string
		opts renderOpts
	}{
		{"unknown format", renderOpts{vizTypes: []string{"grid"}, formats: []string{"webp"}, style: "classic", noCache: true}},
		{"unknown type", renderOpts{vizTypes: []string{"tower"}, formats: []string{"svg"}, style: "classic", noCache: true}},
		{"unknown style", renderOpts{vizTypes: []string{"grid"}, formats: []string{"svg"}, style: "neon", noCache: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runRender(context.Background(), input, tt.opts); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRunRenderSkipsInapplicableFormats(t *testing.T) {
	dir := t.TempDir()
	input := writeTestLayout(t, dir)

	// DOT only applies to the nodelink view; a grid-only run produces
	// no file rather than failing.
	opts := renderOpts{
		vizTypes: []string{"grid"},
		formats:  []string{"dot"},
		style:    "classic",
		noCache:  true,
	}
	if err := runRender(context.Background(), input, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo_grid.dot")); !os.IsNotExist(err) {
		t.Error("grid dot output should be skipped")
	}
}
