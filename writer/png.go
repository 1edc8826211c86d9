package writer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/dvalters/catchmentfp/grid"
)

// DepthPNG writes one grayscale PNG per invocation, one pixel per cell,
// scaled linearly from 0 to MaxDepth. NoData cells are rendered pure
// black regardless of depth. Files are named "<Prefix><step>.png" inside
// Dir, with the step zero-padded to six digits, matching the original's "water_depth/ppm/water_depth<step>.ppm"
// naming convention translated to PNG.
type DepthPNG struct {
	Dir      string
	Prefix   string
	MaxDepth float64
}

// Write renders g's WaterDepth field to a grayscale PNG.
func (d DepthPNG) Write(ctx context.Context, step int, g *grid.Grid) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("writer: creating output directory %s: %w", d.Dir, err)
	}
	img := image.NewGray(image.Rect(0, 0, g.JMax, g.IMax))
	maxDepth := d.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 1
	}
	for row := 0; row < g.IMax; row++ {
		for col := 0; col < g.JMax; col++ {
			c := g.At(row, col)
			var v uint8
			if c.Type != grid.NoData {
				frac := math.Min(c.WaterDepth/maxDepth, 1.0)
				v = uint8(frac * 255)
			}
			img.SetGray(col, row, color.Gray{Y: v})
		}
	}

	path := filepath.Join(d.Dir, fmt.Sprintf("%s%06d.png", d.Prefix, step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writer: creating %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
