package grid

// Cell holds the hydraulic state of a single grid cell. Elevation and Type
// are constant over the core's lifetime; WaterDepth, Qx, and Qy evolve at
// every step (spec.md §3).
type Cell struct {
	Type CellType

	// Elevation is the bed elevation, in the same length units as DX/DY.
	Elevation float64

	// WaterDepth is the depth of the water column above the bed. It is
	// nonnegative at every committed step.
	WaterDepth float64

	// Qx is the signed discharge per unit width across the cell's west
	// face; positive means eastward flow into this cell.
	Qx float64

	// Qy is the signed discharge per unit width across the cell's north
	// face; positive means southward flow into this cell.
	Qy float64
}
