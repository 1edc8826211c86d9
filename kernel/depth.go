package kernel

import "github.com/dvalters/catchmentfp/grid"

// depthUpdate implements spec.md §4.4: it adds the net flux divergence and
// the unconditional numerical floor to the seeded accumulator. eastQx and
// southQy are the east and south neighbors' previous qx/qy, already zeroed
// by the caller for downstream-boundary cell types per spec.md §4.5.
func depthUpdate(accum float64, self grid.Cell, eastQx, southQy float64, p grid.Params, localDt float64) float64 {
	accum += localDt * ((eastQx-self.Qx)/p.DX + (southQy-self.Qy)/p.DY)
	accum += grid.DepthFloor
	return accum
}
