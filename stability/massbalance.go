package stability

import "github.com/dvalters/catchmentfp/grid"

// MassBalance accumulates injected vs. clamped-out mass across steps. It
// supplements spec.md (not named there explicitly, but implied by §8
// testable property 8's round-trip mass check) and is grounded on
// run.go's SteadyStateConvergenceCheck, which sums a tracked quantity
// across all cells once per check period. Unlike that check, MassBalance
// does not stop the run — it is purely an accounting hook a caller can
// inspect or log.
//
// The clamp delta kernel.Update reports per cell is the only place the
// pre-clamp depth is available, so ObserveClamp takes that value directly
// rather than trying to reconstruct it from before/after grid snapshots.
type MassBalance struct {
	Injected       float64 // cumulative water added at EDGE_W cells
	ClampedOutflow float64 // cumulative depth removed by the outflow clamp
}

// ObserveInjection records one step's west-edge water input across prev,
// the grid as it stood before the step's kernel fan-out.
func (m *MassBalance) ObserveInjection(prev *grid.Grid) {
	for _, c := range prev.Cells {
		if c.Type == grid.EdgeW {
			m.Injected += grid.WaterInputIncrement
		}
	}
}

// ObserveClamp records one cell's phase-6 clamp delta, as returned by
// kernel.Update. Callers invoke this once per cell per step, alongside
// ObserveInjection.
func (m *MassBalance) ObserveClamp(delta float64) {
	m.ClampedOutflow += delta
}

// Balance returns Injected - ClampedOutflow, the net mass added to the
// domain that has not yet left through a clamped boundary.
func (m *MassBalance) Balance() float64 {
	return m.Injected - m.ClampedOutflow
}
