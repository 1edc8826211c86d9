// Package kernel implements the LISFLOOD-FP stencil update rule: a pure
// function of a cell's previous state and its four cardinal neighbors'
// previous states (spec.md §4.1). The kernel never names coordinates or
// reads/writes a neighbor's next-step state — it only sees whatever
// NeighborContext hands it — which is what makes domain decomposition with
// single-cell halos correct (spec.md §4.6, design note "Neighbor access").
package kernel

import "github.com/dvalters/catchmentfp/grid"

// NeighborContext exposes read-only snapshots of a cell's four cardinal
// neighbors' previous-step state. The executor constructs one per cell per
// step; the kernel never names grid coordinates directly.
type NeighborContext interface {
	North() grid.Cell
	South() grid.Cell
	East() grid.Cell
	West() grid.Cell
}
