package writer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/dvalters/catchmentfp/grid"
)

// CSVSummary appends one row per invocation to a single CSV file: step
// number, total wetted-cell count, total water volume (depth summed over
// cells, in units of DX*DY per cell), and maximum depth. It opens the
// file once and keeps it open across calls; callers must call Close when
// the run ends.
type CSVSummary struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// NewCSVSummary creates (or truncates) the file at path and writes the
// header row.
func NewCSVSummary(path string) (*CSVSummary, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("writer: creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "wetted_cells", "total_depth", "max_depth"}); err != nil {
		f.Close()
		return nil, err
	}
	return &CSVSummary{path: path, f: f, w: w}, nil
}

// Write computes the row for this step and appends it.
func (c *CSVSummary) Write(ctx context.Context, step int, g *grid.Grid) error {
	var wetted int
	var total, maxDepth float64
	for _, cell := range g.Cells {
		if cell.Type == grid.NoData {
			continue
		}
		if cell.WaterDepth > 0 {
			wetted++
		}
		total += cell.WaterDepth
		if cell.WaterDepth > maxDepth {
			maxDepth = cell.WaterDepth
		}
	}
	row := []string{
		strconv.Itoa(step),
		strconv.Itoa(wetted),
		strconv.FormatFloat(total, 'f', -1, 64),
		strconv.FormatFloat(maxDepth, 'f', -1, 64),
	}
	if err := c.w.Write(row); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVSummary) Close() error {
	c.w.Flush()
	return c.f.Close()
}
