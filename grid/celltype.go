package grid

// CellType classifies a cell by its position in the grid, plus the
// special NoData tag for cells outside the catchment. It is set once at
// initialization and never mutated (spec.md §3).
type CellType int

const (
	Interior CellType = iota
	EdgeN
	EdgeS
	EdgeE
	EdgeW
	CornerNW
	CornerNE
	CornerSW
	CornerSE
	NoData
)

func (t CellType) String() string {
	switch t {
	case Interior:
		return "INTERIOR"
	case EdgeN:
		return "EDGE_N"
	case EdgeS:
		return "EDGE_S"
	case EdgeE:
		return "EDGE_E"
	case EdgeW:
		return "EDGE_W"
	case CornerNW:
		return "CORNER_NW"
	case CornerNE:
		return "CORNER_NE"
	case CornerSW:
		return "CORNER_SW"
	case CornerSE:
		return "CORNER_SE"
	case NoData:
		return "NODATA"
	default:
		return "UNKNOWN"
	}
}

// ClassifyPosition returns the boundary tag implied by a cell's (row, col)
// position in an imax x jmax grid (spec.md §3). It never returns NoData —
// that tag is assigned separately, from the DEM value, and overrides
// whatever this function returns.
func ClassifyPosition(row, col, imax, jmax int) CellType {
	north := row == 0
	south := row == imax-1
	west := col == 0
	east := col == jmax-1

	switch {
	case north && west:
		return CornerNW
	case north && east:
		return CornerNE
	case south && west:
		return CornerSW
	case south && east:
		return CornerSE
	case north:
		return EdgeN
	case south:
		return EdgeS
	case west:
		return EdgeW
	case east:
		return EdgeE
	default:
		return Interior
	}
}

// IsBoundary reports whether the outflow clamp (spec.md §4.1 phase 6)
// applies to this cell type: every type except Interior and NoData.
func (t CellType) IsBoundary() bool {
	return t != Interior && t != NoData
}

// xUpstreamMissing reports whether the cell sits on the axis-facing
// upstream (west) edge for the x-flux calculation, so its west neighbor
// does not exist (spec.md §4.3 step 1).
func (t CellType) xUpstreamMissing() bool {
	switch t {
	case EdgeW, CornerNW, CornerSW:
		return true
	default:
		return false
	}
}

// xDownstreamBoundary reports whether the cell sits on the axis-facing
// downstream (east) edge for the x-flux calculation: the west neighbor is
// still read for hflow, but the slope uses edgeslope (spec.md §4.3 step 1).
func (t CellType) xDownstreamBoundary() bool {
	switch t {
	case EdgeE, CornerNE, CornerSE:
		return true
	default:
		return false
	}
}

// yUpstreamMissing is the y-axis analog of xUpstreamMissing: the north
// neighbor does not exist.
func (t CellType) yUpstreamMissing() bool {
	switch t {
	case EdgeN, CornerNW, CornerNE:
		return true
	default:
		return false
	}
}

// yDownstreamBoundary is the y-axis analog of xDownstreamBoundary: the
// north neighbor is still read for hflow, but the slope uses edgeslope.
func (t CellType) yDownstreamBoundary() bool {
	switch t {
	case EdgeS, CornerSW, CornerSE:
		return true
	default:
		return false
	}
}

// EastTermZero reports whether the depth-update phase's east term (the
// east neighbor's previous qx) should be taken as zero rather than read,
// because there is no east neighbor (spec.md §4.5 table).
func (t CellType) EastTermZero() bool {
	return t.xDownstreamBoundary()
}

// SouthTermZero is the south-term analog of EastTermZero.
func (t CellType) SouthTermZero() bool {
	return t.yDownstreamBoundary()
}
