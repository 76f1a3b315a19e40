package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// rsvgBinary is the external converter both raster formats go through.
// PNG and PDF are derived from the SVG sink rather than drawn natively.
const rsvgBinary = "rsvg-convert"

// ToPDF converts a rendered SVG diagram to PDF.
// Requires librsvg (apt install librsvg2-bin, brew install librsvg).
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, "pdf")
}

// ToPNG converts a rendered SVG diagram to PNG at the given scale.
// A scale of 2.0 doubles the pixel dimensions of the SVG frame, which
// keeps small node labels legible in raster output.
// Requires librsvg (apt install librsvg2-bin, brew install librsvg).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convertSVG(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// convertSVG pipes the SVG through rsvg-convert. The diagram goes in on
// stdin and the converted bytes come back on stdout, so no temp files
// are involved.
func convertSVG(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, fmt.Errorf("%s output needs librsvg (%s not on PATH); install with 'apt install librsvg2-bin' or 'brew install librsvg'", format, rsvgBinary)
	}

	cmd := exec.Command(rsvgBinary, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("convert diagram to %s: %w: %s", format, err, stderr.String())
	}
	return out.Bytes(), nil
}
