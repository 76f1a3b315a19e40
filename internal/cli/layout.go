package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/pkg/cache"
	"github.com/quadviz/quadviz/pkg/layout"
	"github.com/quadviz/quadviz/pkg/treeio"
)

// newLayoutCmd creates the layout command for computing placed layouts.
func newLayoutCmd(cfg *Config) *cobra.Command {
	var (
		output  string
		noCache bool
	)
	grid := layout.Grid{}

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Compute a placed layout from a tree description",
		Long: `Compute a placed layout from a tree description.

The layout command takes a tree.json file (produced by 'generate' or by
hand) and assigns a grid position to every node so that no two nodes
overlap. The output is a layout.json document consumable by 'render'.

Results are cached locally; identical input trees with identical grid
settings reuse the cached layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cfg.Grid
			if cmd.Flags().Changed("column-spacing") {
				g.ColumnSpacing = grid.ColumnSpacing
			}
			if cmd.Flags().Changed("row-spacing") {
				g.RowSpacing = grid.RowSpacing
			}
			if cmd.Flags().Changed("node-width") {
				g.NodeWidth = grid.NodeWidth
			}
			if cmd.Flags().Changed("node-height") {
				g.NodeHeight = grid.NodeHeight
			}
			if err := g.Validate(); err != nil {
				return err
			}
			return runLayout(cmd.Context(), args[0], output, g, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&grid.ColumnSpacing, "column-spacing", 0, "pixels per column unit")
	cmd.Flags().Float64Var(&grid.RowSpacing, "row-spacing", 0, "pixels per depth level")
	cmd.Flags().Float64Var(&grid.NodeWidth, "node-width", 0, "node width in pixels")
	cmd.Flags().Float64Var(&grid.NodeHeight, "node-height", 0, "node height in pixels")

	return cmd
}

func runLayout(ctx context.Context, input, output string, grid layout.Grid, noCache bool) error {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	c, keyer, err := openCache(noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	key := keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		ColumnSpacing: grid.ColumnSpacing,
		RowSpacing:    grid.RowSpacing,
		NodeWidth:     grid.NodeWidth,
		NodeHeight:    grid.NodeHeight,
	})

	var docJSON []byte
	cached := false
	if b, hit, err := c.Get(ctx, key); err == nil && hit {
		docJSON = b
		cached = true
		logger.Debug("layout cache hit", "key", key)
	}

	var nodeCount, edgeCount int
	if cached {
		doc, err := treeio.ReadLayout(bytes.NewReader(docJSON))
		if err != nil {
			return err
		}
		nodeCount, edgeCount = len(doc.Nodes), len(doc.Edges)
	} else {
		prog := newProgress(logger)
		tree, err := treeio.ReadTree(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}

		root := layout.Build(layout.TreeAdapter{Node: tree.Root()}, layout.SizeLabel)
		root.Layout()
		doc := treeio.FromLayout(root, grid)
		nodeCount, edgeCount = len(doc.Nodes), len(doc.Edges)
		prog.done(fmt.Sprintf("Placed %d nodes", nodeCount))

		var buf bytes.Buffer
		if err := treeio.WriteLayout(doc, &buf); err != nil {
			return err
		}
		docJSON = buf.Bytes()

		if err := c.Set(ctx, key, docJSON, cache.TTLLayout); err != nil {
			logger.Warn("layout cache write failed", "err", err)
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(output, docJSON, 0o644); err != nil {
		return err
	}

	printSuccess("Layout written")
	printFile(output)
	printStats(nodeCount, edgeCount, cached)
	printNextStep("Next", fmt.Sprintf("quadviz render %s", output))
	return nil
}

// openCache returns the file-backed cache, or the null cache when
// caching is disabled.
func openCache(noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if noCache {
		return cache.NewNullCache(), keyer, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return c, keyer, nil
}
