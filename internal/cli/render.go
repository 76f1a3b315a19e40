package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadviz/quadviz/pkg/cache"
	"github.com/quadviz/quadviz/pkg/errors"
	"github.com/quadviz/quadviz/pkg/render"
	"github.com/quadviz/quadviz/pkg/treeio"
)

// errSkipFormat marks a format/type combination that produces no output
// file, such as asking for DOT of the grid view.
var errSkipFormat = stderrors.New("format not applicable to this type")

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	vizTypes []string // visualization types: "grid", "nodelink"
	formats  []string // output formats: "svg", "png", "pdf", "dot", "json"
	style    string   // visual style: "classic" or "mono"
	scale    float64  // raster scale factor for PNG output
	noLabels bool     // omit node labels
	noEdges  bool     // omit parent-child edges
	noCache  bool     // disable artifact caching
}

// newRenderCmd creates the render command for producing diagrams from a
// placed layout.
func newRenderCmd(cfg *Config) *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a placed layout as SVG, PNG, PDF, DOT or JSON",
		Long: `Render a placed layout as SVG, PNG, PDF, DOT or JSON.

The grid type draws every node at its assigned grid position with a
corner accent indicating which quadrant of its parent it occupies. The
nodelink type emits a Graphviz diagram with nodes pinned to their grid
coordinates.

PNG and PDF conversion requires rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.style == "" {
				opts.style = cfg.Render.Style
			}
			if len(opts.formats) == 0 {
				opts.formats = []string{cfg.Render.Format}
			}
			if len(opts.vizTypes) == 0 {
				opts.vizTypes = []string{cfg.Render.Type}
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.Render.Scale
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path (default: derived from input)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "output formats (svg, png, pdf, dot, json)")
	cmd.Flags().StringSliceVarP(&opts.vizTypes, "type", "t", nil, "visualization types (grid, nodelink)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style (classic, mono)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&opts.noEdges, "no-edges", false, "omit parent-child edges")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	for _, f := range opts.formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	for _, t := range opts.vizTypes {
		if err := errors.ValidateVizType(t); err != nil {
			return err
		}
	}
	if err := errors.ValidateStyle(opts.style); err != nil {
		return err
	}

	// One read serves both the cache hash and the decode, so a
	// concurrent rewrite of the file cannot desync them.
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	doc, err := treeio.ReadLayout(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	c, keyer, err := openCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()
	layoutHash := cache.Hash(data)

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(input, ".layout.json")
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	written := 0
	for _, vizType := range opts.vizTypes {
		for _, format := range opts.formats {
			path := fmt.Sprintf("%s_%s.%s", base, vizType, format)
			out, cached, err := renderArtifact(ctx, doc, layoutHash, vizType, format, opts, c, keyer)
			if stderrors.Is(err, errSkipFormat) {
				logger.Debug("skipping", "type", vizType, "format", format)
				continue
			}
			if err != nil {
				return fmt.Errorf("render %s %s: %w", vizType, format, err)
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return err
			}
			if cached {
				logger.Debug("artifact cache hit", "type", vizType, "format", format)
			}
			printFile(path)
			written++
		}
	}

	if written == 0 {
		printWarning("No outputs produced; check the format/type combination")
		return nil
	}
	printSuccess("Rendered %d file(s)", written)
	return nil
}

// renderArtifact produces one artifact, consulting the cache first.
// JSON is only meaningful for the grid view and DOT only for nodelink.
func renderArtifact(ctx context.Context, doc *treeio.Document, layoutHash, vizType, format string, opts renderOpts, c cache.Cache, keyer cache.Keyer) ([]byte, bool, error) {
	switch {
	case format == "json" && vizType != "grid":
		return nil, false, errSkipFormat
	case format == "dot" && vizType != "nodelink":
		return nil, false, errSkipFormat
	}

	key := keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{
		Format:  format,
		Style:   opts.style,
		VizType: vizType,
	})
	if b, hit, err := c.Get(ctx, key); err == nil && hit {
		return b, true, nil
	}

	out, err := buildArtifact(ctx, doc, vizType, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := c.Set(ctx, key, out, cache.TTLArtifact); err != nil {
		loggerFromContext(ctx).Warn("artifact cache write failed", "err", err)
	}
	return out, false, nil
}

func buildArtifact(ctx context.Context, doc *treeio.Document, vizType, format string, opts renderOpts) ([]byte, error) {
	if format == "json" {
		var sb strings.Builder
		if err := treeio.WriteLayout(doc, &sb); err != nil {
			return nil, err
		}
		return []byte(sb.String()), nil
	}

	var svg []byte
	switch vizType {
	case "grid":
		style, err := render.StyleByName(opts.style)
		if err != nil {
			return nil, err
		}
		svgOpts := []render.SVGOption{render.WithStyle(style)}
		if opts.noLabels {
			svgOpts = append(svgOpts, render.WithoutLabels())
		}
		if opts.noEdges {
			svgOpts = append(svgOpts, render.WithoutEdges())
		}
		svg = render.RenderSVG(doc, svgOpts...)
	case "nodelink":
		dot := render.ToDOT(doc)
		if format == "dot" {
			return []byte(dot), nil
		}
		var err error
		svg, err = render.RenderDOT(ctx, dot)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.ValidateVizType(vizType)
	}

	switch format {
	case "svg":
		return svg, nil
	case "png":
		sp := newSpinnerWithContext(ctx, "Converting to PNG")
		sp.Start()
		out, err := render.ToPNG(svg, opts.scale)
		if err != nil {
			sp.StopWithError("PNG conversion failed")
			return nil, err
		}
		sp.Stop()
		return out, nil
	case "pdf":
		sp := newSpinnerWithContext(ctx, "Converting to PDF")
		sp.Start()
		out, err := render.ToPDF(svg)
		if err != nil {
			sp.StopWithError("PDF conversion failed")
			return nil, err
		}
		sp.Stop()
		return out, nil
	default:
		return nil, errors.ValidateFormat(format)
	}
}
