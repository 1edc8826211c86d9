// Package stability implements the CFL-bounded time-step machinery of
// spec.md §4.2: the global time-step set (run once per external step,
// before kernel fan-out) and the local time-step clamp (run once per
// kernel invocation). time_factor is the only field of grid.Params mutated
// at runtime, and Controller is the sole mutator — kernel.Update only
// reads it, through the read-only Params value it is handed.
package stability

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/dvalters/catchmentfp/grid"
)

// Bound returns the CFL bound τ(h) = courant * dx / sqrt(g * h), with h
// floored at grid.MinDepthForCFL (spec.md §4.2).
func Bound(maxDepth, courant, dx float64) float64 {
	h := math.Max(maxDepth, grid.MinDepthForCFL)
	return courant * dx / math.Sqrt(grid.Gravity*h)
}

// LocalTimestep computes the per-invocation time step the kernel uses for
// its own flux/depth arithmetic: time_factor clamped down to the current
// CFL bound, but never raised by it. Safe to call concurrently — p is
// passed by value, so no synchronization with the Controller that produced
// it is needed (spec.md §4.2, §5).
func LocalTimestep(p grid.Params) float64 {
	local := p.TimeFactor
	if bound := Bound(p.MaxDepth, p.CourantNumber, p.DX); local > bound {
		local = bound
	}
	return local
}

// Controller owns the process-wide numerical state and serializes the one
// field that mutates at runtime, TimeFactor. It must be read-only during a
// step's kernel fan-out; callers take a Snapshot before fanning out and
// hand that value (not the Controller) to every concurrent kernel
// invocation (spec.md §5 "Shared mutable state").
type Controller struct {
	mu     sync.Mutex
	params grid.Params
}

// NewController wraps the given parameters. MaxDepth is floored at
// grid.MinDepthForCFL immediately, matching the source's unconditional
// floor (spec.md §4.2).
func NewController(p grid.Params) *Controller {
	if p.MaxDepth <= grid.MinDepthForCFL {
		p.MaxDepth = grid.MinDepthForCFL
	}
	return &Controller{params: p}
}

// SetGlobalTimestep performs the global time-step set: if TimeFactor is
// below the current CFL bound, raise it to the bound. This monotonically
// raises the time step as the (statically configured — see DESIGN.md Open
// Question 2) maximum depth allows; it is run once per external step,
// before kernel fan-out.
func (c *Controller) SetGlobalTimestep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.params.MaxDepth <= grid.MinDepthForCFL {
		c.params.MaxDepth = grid.MinDepthForCFL
	}
	if bound := Bound(c.params.MaxDepth, c.params.CourantNumber, c.params.DX); c.params.TimeFactor < bound {
		c.params.TimeFactor = bound
	}
}

// Snapshot returns a read-only copy of the current parameters, safe to
// hand to any number of concurrent kernel invocations.
func (c *Controller) Snapshot() grid.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// StepCount returns the number of steps recorded so far.
func (c *Controller) StepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params.StepCount
}

// AdvanceStep increments the recorded step count. Called once per external
// step by the executor, after the step's kernel fan-out has committed.
func (c *Controller) AdvanceStep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.StepCount++
}

// MaxDepth returns the maximum WaterDepth across every cell of g. It is a
// diagnostic helper, not part of the CFL bound's own static MaxDepth
// parameter (see DESIGN.md Open Question 2) — callers use it for logging
// or for deciding whether the configured MaxDepth still bounds reality.
func MaxDepth(g *grid.Grid) float64 {
	depths := make([]float64, len(g.Cells))
	for i, c := range g.Cells {
		depths[i] = c.WaterDepth
	}
	return floats.Max(depths)
}
