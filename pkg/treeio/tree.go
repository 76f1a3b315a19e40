// Package treeio reads and writes the JSON interchange formats: point-set
// tree descriptions on the way in, placed layout documents on the way out.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/quadviz/quadviz/pkg/quadtree"
)

type treeFile struct {
	Region quadtree.Rect    `json:"region"`
	Points []quadtree.Point `json:"points"`
}

// ReadTree decodes a JSON tree description from r and builds the quadtree.
//
// The input must be a JSON object with a "region" and a "points" array:
//
//	{
//	  "region": {"min_x": 0, "min_y": 0, "max_x": 128, "max_y": 128},
//	  "points": [{"x": 10, "y": 10}, {"x": 100, "y": 40}]
//	}
//
// Points are inserted in file order, which fully determines the resulting
// tree shape. ReadTree returns an error if:
//   - The JSON is malformed
//   - The region is empty or inverted
//   - A point lies outside the region
//   - Two points are identical
//
// Errors are wrapped with the index of the offending point for context.
// ReadTree does not close r.
func ReadTree(r io.Reader) (*quadtree.Tree, error) {
	var data treeFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	tree, err := quadtree.New(data.Region)
	if err != nil {
		return nil, err
	}
	for i, p := range data.Points {
		if err := tree.Insert(p); err != nil {
			return nil, fmt.Errorf("point %d (%g, %g): %w", i, p.X, p.Y, err)
		}
	}
	return tree, nil
}

// WriteTree encodes a quadtree as JSON and writes it to w.
// The output lists the points in tree traversal order and can be
// re-imported with [ReadTree]; the subdivision rule is deterministic in
// the point set, so re-importing reproduces the same tree.
func WriteTree(t *quadtree.Tree, w io.Writer) error {
	out := treeFile{Region: t.Region(), Points: make([]quadtree.Point, 0, t.Len())}
	t.Root().Walk(func(n *quadtree.Node) {
		if p, ok := n.Point(); ok {
			out.Points = append(out.Points, p)
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ImportTree reads a JSON file at path and returns the decoded quadtree.
//
// ImportTree opens the file, decodes it using [ReadTree], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportTree(path string) (*quadtree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f)
}

// ExportTree writes a quadtree to a JSON file at path.
// This is a convenience wrapper around [WriteTree] for file-based output.
func ExportTree(t *quadtree.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(t, f)
}
