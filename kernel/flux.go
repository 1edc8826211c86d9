package kernel

import "math"

import "github.com/dvalters/catchmentfp/grid"

// xFlux computes the cell's new x-axis discharge (qx) from its own
// previous state and its west neighbor's previous state (spec.md §4.3,
// using D = DX and the boundary substitutions for the west/east edges).
func xFlux(self, west grid.Cell, p grid.Params, localDt float64) float64 {
	var nbElev, nbDepth, tempslope float64
	switch {
	case self.Type.xUpstreamMissing():
		// No west neighbor exists: substitute nodata elevation / zero depth.
		nbElev = p.NoDataValue
		nbDepth = 0
		tempslope = p.EdgeSlope
	case self.Type.xDownstreamBoundary():
		// No east neighbor, but this is the x-flux into the cell from the
		// west, which does exist; the edge's own downstream-ness only
		// affects the slope, which uses edgeslope rather than the real
		// gradient.
		nbElev = west.Elevation
		nbDepth = west.WaterDepth
		tempslope = p.EdgeSlope
	default:
		nbElev = west.Elevation
		nbDepth = west.WaterDepth
		tempslope = ((nbElev + nbDepth) - (self.Elevation + self.WaterDepth)) / p.DX
	}
	return flux(self.WaterDepth, self.Qx, self.Elevation, nbDepth, nbElev, tempslope, p.DX, p, localDt)
}

// yFlux is the y-axis analog of xFlux, using the north neighbor and D = DY.
func yFlux(self, north grid.Cell, p grid.Params, localDt float64) float64 {
	var nbElev, nbDepth, tempslope float64
	switch {
	case self.Type.yUpstreamMissing():
		nbElev = p.NoDataValue
		nbDepth = 0
		tempslope = p.EdgeSlope
	case self.Type.yDownstreamBoundary():
		nbElev = north.Elevation
		nbDepth = north.WaterDepth
		tempslope = p.EdgeSlope
	default:
		nbElev = north.Elevation
		nbDepth = north.WaterDepth
		tempslope = ((nbElev + nbDepth) - (self.Elevation + self.WaterDepth)) / p.DY
	}
	return flux(self.WaterDepth, self.Qy, self.Elevation, nbDepth, nbElev, tempslope, p.DY, p, localDt)
}

// flux implements the shared inertial-flux arithmetic of spec.md §4.3,
// steps 3-8: the zero-depth gate, the effective flow depth, the inertial
// momentum update, the Froude limiter, and the discharge limiter, applied
// in that fixed order.
func flux(selfDepth, qOld, selfElev, nbDepth, nbElev, tempslope, d float64, p grid.Params, localDt float64) float64 {
	// Gate: both sides dry, no flux.
	if selfDepth == 0 && nbDepth == 0 {
		return 0
	}

	hflow := math.Max(selfElev+selfDepth, nbElev+nbDepth) - math.Max(selfElev, nbElev)
	if hflow <= p.HflowThreshold {
		return 0
	}

	qNew := (qOld - grid.Gravity*hflow*localDt*tempslope) /
		(1 + grid.Gravity*hflow*localDt*p.Mannings*p.Mannings*math.Abs(qOld)/math.Pow(hflow, 10./3.))

	// Froude limiter.
	froude := math.Abs(qNew/hflow) / math.Sqrt(grid.Gravity*hflow)
	if froude > p.FroudeLimit {
		qNew = signOf(qNew) * hflow * math.Sqrt(grid.Gravity*hflow) * p.FroudeLimit
	}

	// Discharge limiter: bounds a single-step dewatering to 1/5 of the
	// donor column, triggered at 1/4 of the donor column (spec.md §4.3
	// step 8 — the 4:5 ratio is deliberate, see DESIGN.md Open Question 5).
	c := math.Abs(qNew * localDt / d)
	switch {
	case qNew > 0 && c > selfDepth/4:
		qNew = (selfDepth * d / 5) / localDt
	case qNew < 0 && c > nbDepth/4:
		qNew = -(nbDepth * d / 5) / localDt
	}

	return qNew
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
