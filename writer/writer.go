// Package writer implements the core's step-boundary output contract: a
// callable invoked with read access to every cell's elevation and water
// depth, at a configurable step interval. It generalizes the original's
// PPMWriter/BOVWriter periodic-snapshot mechanism (elevation_ppm,
// water_depth_ppm, water_depth_bov) to two idiomatic Go encodings: a PNG
// depth-map image and a CSV summary row.
package writer

import (
	"context"

	"github.com/dvalters/catchmentfp/grid"
)

// Writer is invoked by the executor at step boundaries. It must not
// mutate g.
type Writer interface {
	Write(ctx context.Context, step int, g *grid.Grid) error
}

// Interval wraps a Writer so it only fires every n steps (step 0 always
// fires), mirroring the original's *_ppm_interval/*_bov_interval
// parameters.
type Interval struct {
	N int
	W Writer
}

// Write calls the wrapped Writer if step is a multiple of N (or N <= 1,
// meaning "every step").
func (iv Interval) Write(ctx context.Context, step int, g *grid.Grid) error {
	if iv.N > 1 && step%iv.N != 0 {
		return nil
	}
	return iv.W.Write(ctx, step, g)
}

// Multi fans a single step-boundary call out to every wrapped Writer,
// stopping at the first error.
type Multi []Writer

func (m Multi) Write(ctx context.Context, step int, g *grid.Grid) error {
	for _, w := range m {
		if err := w.Write(ctx, step, g); err != nil {
			return err
		}
	}
	return nil
}
