package kernel

import "github.com/dvalters/catchmentfp/grid"
import "github.com/dvalters/catchmentfp/stability"

// Update is the stencil kernel: a pure function of a cell's previous state
// (self) and its four cardinal neighbors' previous states (via ctx),
// producing the cell's next state. It runs the six phases of spec.md
// §4.1 in this fixed order and never reads or writes a neighbor's
// next-step state.
//
// The second return value is the amount of depth removed by the phase-6
// outflow clamp (0 if the clamp did not fire on this invocation); callers
// that don't need mass-balance accounting can discard it.
func Update(self grid.Cell, ctx NeighborContext, p grid.Params) (grid.Cell, float64) {
	next := self // Type and Elevation never change; carried over as-is.

	if self.Type == grid.NoData {
		// NODATA cells have WaterDepth == 0 permanently; other phases are
		// skipped entirely (spec.md §3, §4.4).
		next.WaterDepth = 0
		next.Qx = 0
		next.Qy = 0
		return next, 0
	}

	// Phase 1: seed. Subsequent phases only add to or clamp this value.
	next.WaterDepth = self.WaterDepth

	// Phase 2: water input (west-edge injection).
	if self.Type == grid.EdgeW {
		next.WaterDepth += grid.WaterInputIncrement
	}

	localDt := stability.LocalTimestep(p)

	// Phase 3: x-flux.
	next.Qx = xFlux(self, ctx.West(), p, localDt)

	// Phase 4: y-flux.
	next.Qy = yFlux(self, ctx.North(), p, localDt)

	// Phase 5: depth (mass) update.
	east := ctx.East()
	south := ctx.South()
	eastQx := east.Qx
	if self.Type.EastTermZero() {
		eastQx = 0
	}
	southQy := south.Qy
	if self.Type.SouthTermZero() {
		southQy = 0
	}
	next.WaterDepth = depthUpdate(next.WaterDepth, self, eastQx, southQy, p, localDt)

	// Phase 6: outflow clamp. Uses the *previous* depth to decide whether
	// to clamp, but overwrites the value the earlier phases just computed.
	var clamped float64
	if self.Type.IsBoundary() && self.WaterDepth > p.WaterDepthErosionThreshold {
		clamped = next.WaterDepth - p.WaterDepthErosionThreshold
		next.WaterDepth = p.WaterDepthErosionThreshold
	}

	return next, clamped
}
