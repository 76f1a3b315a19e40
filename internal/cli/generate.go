package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/pkg/quadtree"
	"github.com/quadviz/quadviz/pkg/treeio"
)

// newGenerateCmd creates the generate command for producing random tree
// descriptions. The output is a tree.json file consumable by the layout
// command.
func newGenerateCmd() *cobra.Command {
	var (
		output string
		count  int
		size   float64
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random point-set tree description",
		Long: `Generate a random point-set tree description.

Points are drawn uniformly from a square region. The same seed always
produces the same point set, and therefore the same tree.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if count < 1 {
				return fmt.Errorf("point count must be positive, got %d", count)
			}
			if size <= 0 {
				return fmt.Errorf("region size must be positive, got %g", size)
			}

			tree, err := quadtree.New(quadtree.Rect{MaxX: size, MaxY: size})
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			inserted := 0
			for inserted < count {
				p := quadtree.Point{X: rng.Float64() * size, Y: rng.Float64() * size}
				if err := tree.Insert(p); err != nil {
					// Duplicate draws are possible in principle; retry.
					logger.Debugf("rejected %v: %v", p, err)
					continue
				}
				inserted++
			}

			if err := treeio.ExportTree(tree, output); err != nil {
				return err
			}

			printSuccess("Generated %d points (seed %d)", count, seed)
			printFile(output)
			printNextStep("Next", fmt.Sprintf("quadviz layout %s", output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "tree.json", "output file")
	cmd.Flags().IntVarP(&count, "count", "n", 16, "number of points")
	cmd.Flags().Float64Var(&size, "size", 128, "side length of the square region")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	return cmd
}
