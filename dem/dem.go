// Package dem reads the ASCII Esri-grid-style raster that seeds a
// catchment's elevation model: six header token/value pairs followed by
// imax x jmax whitespace-separated elevation values in row-major order.
package dem

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/ctessum/geom"

	"github.com/dvalters/catchmentfp/cerrors"
	"github.com/dvalters/catchmentfp/grid"
)

// Header holds the six georeferencing fields read from the DEM's leading
// lines, in the fixed order the original raster reader expects them:
// column count, row count, lower-left x, lower-left y, cell size, and the
// nodata sentinel.
type Header struct {
	JMax        int
	IMax        int
	XLLCorner   float64
	YLLCorner   float64
	CellSize    float64
	NoDataValue float64
}

// Extent returns the DEM's real-world bounding box, lower-left corner at
// (XLLCorner, YLLCorner) and upper-right at XLLCorner+JMax*CellSize,
// YLLCorner+IMax*CellSize — the same corner/cellsize-derived rectangle the
// teacher builds per-cell geometry from in framework.go, here built once
// for the whole raster rather than per cell since every cell here is a
// uniform square.
func (h Header) Extent() *geom.Bounds {
	b := geom.NewBoundsPoint(geom.Point{X: h.XLLCorner, Y: h.YLLCorner})
	b.Extend(geom.NewBoundsPoint(geom.Point{
		X: h.XLLCorner + float64(h.JMax)*h.CellSize,
		Y: h.YLLCorner + float64(h.IMax)*h.CellSize,
	}))
	return b
}

// Load reads the DEM at path and returns the populated grid along with the
// parsed header (callers need CellSize and NoDataValue to build grid.Params
// even once the grid itself exists). Any read or parse failure is wrapped
// in a *cerrors.DEMLoadError.
func Load(path string) (*grid.Grid, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, &cerrors.DEMLoadError{Path: path, Err: err}
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	s.Split(bufio.ScanWords)

	hdr, err := readHeader(s)
	if err != nil {
		return nil, Header{}, &cerrors.DEMLoadError{Path: path, Err: err}
	}

	elevations := make([]float64, hdr.IMax*hdr.JMax)
	for i := range elevations {
		if !s.Scan() {
			return nil, Header{}, &cerrors.DEMLoadError{
				Path: path,
				Err:  fmt.Errorf("body has fewer than imax*jmax = %d values (stopped at %d)", len(elevations), i),
			}
		}
		v, err := strconv.ParseFloat(s.Text(), 64)
		if err != nil {
			return nil, Header{}, &cerrors.DEMLoadError{Path: path, Err: fmt.Errorf("body value %d: %w", i, err)}
		}
		elevations[i] = v
	}

	g := grid.FromElevations(elevations, hdr.IMax, hdr.JMax, hdr.NoDataValue)
	return g, hdr, nil
}

// readHeader consumes the six label/value token pairs in their fixed
// order. Labels are discarded; only the values are meaningful (matching
// the original reader, which does the same with an input-stream label
// placeholder).
func readHeader(s *bufio.Scanner) (Header, error) {
	var hdr Header

	jmax, err := nextLabeledInt(s, "ncols")
	if err != nil {
		return Header{}, err
	}
	imax, err := nextLabeledInt(s, "nrows")
	if err != nil {
		return Header{}, err
	}
	xll, err := nextLabeledFloat(s, "xllcorner")
	if err != nil {
		return Header{}, err
	}
	yll, err := nextLabeledFloat(s, "yllcorner")
	if err != nil {
		return Header{}, err
	}
	cellsize, err := nextLabeledFloat(s, "cellsize")
	if err != nil {
		return Header{}, err
	}
	nodata, err := nextLabeledFloat(s, "nodata_value")
	if err != nil {
		return Header{}, err
	}

	hdr.JMax = jmax
	hdr.IMax = imax
	hdr.XLLCorner = xll
	hdr.YLLCorner = yll
	hdr.CellSize = cellsize
	hdr.NoDataValue = nodata
	if hdr.IMax <= 0 || hdr.JMax <= 0 {
		return Header{}, fmt.Errorf("header gives non-positive dimensions imax=%d jmax=%d", hdr.IMax, hdr.JMax)
	}
	return hdr, nil
}

// nextLabeledInt discards one token (the label) then parses the next as
// an int. label is used only in error messages.
func nextLabeledInt(s *bufio.Scanner, label string) (int, error) {
	if !s.Scan() {
		return 0, fmt.Errorf("header ended before %s label", label)
	}
	if !s.Scan() {
		return 0, fmt.Errorf("header ended before %s value", label)
	}
	v, err := strconv.Atoi(s.Text())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

// nextLabeledFloat is nextLabeledInt's float64 counterpart.
func nextLabeledFloat(s *bufio.Scanner, label string) (float64, error) {
	if !s.Scan() {
		return 0, fmt.Errorf("header ended before %s label", label)
	}
	if !s.Scan() {
		return 0, fmt.Errorf("header ended before %s value", label)
	}
	v, err := strconv.ParseFloat(s.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}
