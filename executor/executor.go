// Package executor drives the bulk-synchronous step loop: once per step
// it snapshots the process-wide numerical parameters, fans the stencil
// kernel out across every cell with a WaitGroup-style concurrency bound
// (generalizing run.go's Calculations, which does the same fan-out per
// cell over a CellManipulator chain), then commits the next buffer as the
// new previous buffer and advances the stability controller.
package executor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dvalters/catchmentfp/cerrors"
	"github.com/dvalters/catchmentfp/grid"
	"github.com/dvalters/catchmentfp/kernel"
	"github.com/dvalters/catchmentfp/stability"
	"github.com/dvalters/catchmentfp/writer"
)

// gridContext implements kernel.NeighborContext by reading a fixed
// (row, col) position out of a previous-step grid. The kernel asks for
// all four neighbors of every cell; a direction that falls outside the
// grid yields grid.Cell{Type: grid.NoData}, and the kernel's
// boundary-substitution tables decide whether that value is used.
type gridContext struct {
	g        *grid.Grid
	row, col int
}

func (c gridContext) North() grid.Cell { return c.neighbor(-1, 0) }
func (c gridContext) South() grid.Cell { return c.neighbor(1, 0) }
func (c gridContext) East() grid.Cell  { return c.neighbor(0, 1) }
func (c gridContext) West() grid.Cell  { return c.neighbor(0, -1) }

func (c gridContext) neighbor(drow, dcol int) grid.Cell {
	row, col := c.row+drow, c.col+dcol
	if !c.g.InBounds(row, col) {
		return grid.Cell{Type: grid.NoData}
	}
	return c.g.At(row, col)
}

// SerialExecutor runs the step loop in a single process, over however
// many goroutines the concurrency limit allows, using two grid buffers
// it swaps at every step boundary (spec.md §4.6 "two-buffer time-stepping").
type SerialExecutor struct {
	prev, next *grid.Grid
	controller *stability.Controller
	balance    stability.MassBalance
	writer     writer.Writer
	log        logrus.FieldLogger

	// Concurrency is the number of goroutines the per-step fan-out uses.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int
}

// New builds a SerialExecutor over an initial grid and parameter set. w
// may be nil, meaning no output is emitted.
func New(initial *grid.Grid, p grid.Params, w writer.Writer, log logrus.FieldLogger) *SerialExecutor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SerialExecutor{
		prev:       initial,
		next:       initial.Clone(),
		controller: stability.NewController(p),
		writer:     w,
		log:        log,
	}
}

// MassBalance returns the running injected/clamped-outflow totals
// accumulated across every Step call so far.
func (e *SerialExecutor) MassBalance() stability.MassBalance { return e.balance }

// Grid returns the current (most recently committed) grid state.
func (e *SerialExecutor) Grid() *grid.Grid { return e.prev }

// Step runs exactly one external step: the global time-step set, the
// kernel fan-out over every cell, mass-balance accounting, and the
// buffer swap. It does not invoke the writer or advance the step counter
// beyond what stability.Controller.AdvanceStep records — Run does both.
func (e *SerialExecutor) Step(ctx context.Context) error {
	e.controller.SetGlobalTimestep()
	params := e.controller.Snapshot()

	e.balance.ObserveInjection(e.prev)

	g, egctx := errgroup.WithContext(ctx)
	limit := e.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	n := len(e.prev.Cells)
	clamps := make([]float64, n) // one slot per cell index; each goroutine only ever touches its own, so no synchronization is needed
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-egctx.Done():
				return egctx.Err()
			default:
			}
			row, col := i/e.prev.JMax, i%e.prev.JMax
			self := e.prev.At(row, col)
			ctxN := gridContext{g: e.prev, row: row, col: col}
			next, clamp := kernel.Update(self, ctxN, params)
			if next.WaterDepth < 0 {
				return &cerrors.NumericalInstabilityError{Row: row, Col: col, WaterDepth: next.WaterDepth}
			}
			e.next.Set(row, col, next)
			clamps[i] = clamp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("executor: step %d: %w", e.controller.StepCount(), err)
	}
	for _, c := range clamps {
		if c > 0 {
			e.balance.ObserveClamp(c)
		}
	}

	e.prev, e.next = e.next, e.prev
	e.controller.AdvanceStep()
	return nil
}

// Run drives numSteps consecutive steps (or until ctx is canceled),
// invoking the writer after every step and logging walltime/step-time
// the way run.go's Log DomainManipulator does.
func (e *SerialExecutor) Run(ctx context.Context, numSteps int) error {
	start := time.Now()
	stepStart := start

	for s := 0; s < numSteps; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(ctx); err != nil {
			return err
		}

		e.log.WithFields(logrus.Fields{
			"step":          s,
			"walltime":      time.Since(start),
			"step_walltime": time.Since(stepStart),
			"mass_injected": e.balance.Injected,
			"mass_clamped":  e.balance.ClampedOutflow,
			"max_depth":     stability.MaxDepth(e.prev),
		}).Info("step complete")
		stepStart = time.Now()

		if e.writer != nil {
			if err := e.writer.Write(ctx, s, e.prev); err != nil {
				return fmt.Errorf("executor: writer at step %d: %w", s, err)
			}
		}
	}
	return nil
}
