package distexec

import (
	"net"
	"net/http"
	"net/rpc"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dvalters/catchmentfp/grid"
	"github.com/dvalters/catchmentfp/kernel"
	"github.com/dvalters/catchmentfp/stability"
)

// Empty is used for content-less RPC messages, matching sr.Empty.
type Empty struct{}

// InitRequest seeds a freshly dialed Worker with its partition and the
// process-wide numerical parameters.
type InitRequest struct {
	Partition Partition
	Params    grid.Params
}

// HaloRequest delivers one edge row from a neighboring partition.
type HaloRequest struct {
	Rows []grid.Cell
	Side Side
}

// Side names which of a partition's two halo rows a HaloRequest targets.
type Side int

const (
	North Side = iota
	South
)

// StepResult reports one step's outcome: the partition's own new edge
// rows (for the coordinator to forward to its neighbors as their next
// halo) and the clamp mass removed this step, for mass-balance
// accounting.
type StepResult struct {
	NorthEdge, SouthEdge []grid.Cell
	ClampedOutflow       float64
}

// Worker holds one partition's state and exposes the RPC methods a
// Cluster drives it through, generalizing sr.Worker's Init/Calculate/Exit
// shape to a per-step halo-exchange computation instead of a whole
// simulation run per call.
type Worker struct {
	partition  *Partition
	controller *stability.Controller
	log        logrus.FieldLogger
}

// NewWorker constructs an unseeded Worker; Init populates it.
func NewWorker(log logrus.FieldLogger) *Worker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Worker{log: log}
}

// Init seeds the worker's partition and parameters. It meets the
// requirements for use with rpc.Call.
func (w *Worker) Init(req *InitRequest, _ *Empty) error {
	p := req.Partition
	w.partition = &p
	w.controller = stability.NewController(req.Params)
	w.log.WithFields(logrus.Fields{"start_row": p.StartRow, "rows": p.Rows}).Info("worker initialized")
	return nil
}

// SetHalo installs one edge row borrowed from a neighboring partition.
// It meets the requirements for use with rpc.Call.
func (w *Worker) SetHalo(req *HaloRequest, _ *Empty) error {
	switch req.Side {
	case North:
		w.partition.NorthHalo = req.Rows
	case South:
		w.partition.SouthHalo = req.Rows
	}
	return nil
}

// Step performs the global time-step set (spec.md §4.2/§5: serialized,
// once per step, before kernel fan-out), then runs the stencil kernel
// across every cell of the worker's partition using its current halo rows
// for the rows that border a neighboring partition. It meets the
// requirements for use with rpc.Call.
func (w *Worker) Step(_ *Empty, resp *StepResult) error {
	w.controller.SetGlobalTimestep()
	params := w.controller.Snapshot()

	p := w.partition
	next := make([]grid.Cell, len(p.Cells))

	var clamped float64
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.JMax; c++ {
			self := p.At(r, c)
			ctx := partitionContext{p: p, row: r, col: c}
			nextCell, clamp := kernel.Update(self, ctx, params)
			next[p.localIndex(r, c)] = nextCell
			clamped += clamp
		}
	}
	p.Cells = next
	w.controller.AdvanceStep()

	resp.NorthEdge = p.NorthEdge()
	resp.SouthEdge = p.SouthEdge()
	resp.ClampedOutflow = clamped
	return nil
}

// Partition returns the worker's current partition, for the coordinator
// to merge back into the global grid once a run completes. It is a
// plain accessor, not an RPC method (RPC methods must return only an
// error plus populate an out-parameter).
func (w *Worker) Partition() *Partition { return w.partition }

// Exit shuts the worker process down. It meets the requirements for use
// with rpc.Call.
func (w *Worker) Exit(_ *Empty, _ *Empty) error {
	go func() {
		// Let the RPC reply reach the coordinator before the process ends.
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()
	return nil
}

// Listen registers w and starts serving RPC requests over rpcPort,
// exactly mirroring sr.WorkerListen's rpc.Register/HandleHTTP/http.Serve
// sequence.
func Listen(w *Worker, rpcPort string) error {
	if err := rpc.Register(w); err != nil {
		return err
	}
	rpc.HandleHTTP()
	l, err := net.Listen("tcp", ":"+rpcPort)
	if err != nil {
		return err
	}
	w.log.WithField("port", rpcPort).Info("worker listening")
	return http.Serve(l, nil)
}

// partitionContext implements kernel.NeighborContext over one cell of a
// Partition, reading NorthHalo/SouthHalo for the rows this partition does
// not itself own, and grid.Cell{Type: grid.NoData} past the partition's
// own east/west edges (partitions never split columns, so east/west
// neighbors are always local).
type partitionContext struct {
	p        *Partition
	row, col int
}

func (c partitionContext) North() grid.Cell {
	if c.row == 0 {
		if c.p.NorthHalo == nil {
			return grid.Cell{Type: grid.NoData}
		}
		return c.p.NorthHalo[c.col]
	}
	return c.p.At(c.row-1, c.col)
}

func (c partitionContext) South() grid.Cell {
	if c.row == c.p.Rows-1 {
		if c.p.SouthHalo == nil {
			return grid.Cell{Type: grid.NoData}
		}
		return c.p.SouthHalo[c.col]
	}
	return c.p.At(c.row+1, c.col)
}

func (c partitionContext) East() grid.Cell {
	if c.col+1 >= c.p.JMax {
		return grid.Cell{Type: grid.NoData}
	}
	return c.p.At(c.row, c.col+1)
}

func (c partitionContext) West() grid.Cell {
	if c.col-1 < 0 {
		return grid.Cell{Type: grid.NoData}
	}
	return c.p.At(c.row, c.col-1)
}
