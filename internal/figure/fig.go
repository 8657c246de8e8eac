// Package figure wraps the gonum/plot primitives the renderers share: an
// explicit per-chart figure object (no implicit current-figure state), a
// multi-format save, dense grids for heatmaps, and colormap helpers.
package figure

import (
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Fig is one chart in flight: a plot plus its output size in inches.
type Fig struct {
	*plot.Plot
	Width  vg.Length
	Height vg.Length
}

// New creates a figure of the given size in inches.
func New(widthIn, heightIn float64) *Fig {
	return &Fig{
		Plot:   plot.New(),
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
	}
}

// SaveAll writes the figure once per requested format, as
// <outDir>/<base>.<format>. The format list is the already-split value of
// the --formats option; gonum/plot picks the encoder from the extension.
func (f *Fig) SaveAll(outDir, base string, formats []string) error {
	for _, format := range formats {
		path := filepath.Join(outDir, base+"."+format)
		if err := f.Save(f.Width, f.Height, path); err != nil {
			return fmt.Errorf("error saving %s: %w", path, err)
		}
	}
	log.Printf("[figure] wrote %s (%d formats)", base, len(formats))
	return nil
}
