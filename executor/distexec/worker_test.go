package distexec

import (
	"testing"

	"github.com/dvalters/catchmentfp/grid"
	"github.com/dvalters/catchmentfp/stability"
)

// testParams leaves TimeFactor at its production-wiring zero value: Worker
// must perform its own global time-step set (Worker.Step) rather than
// relying on a pre-seeded value, matching config.Resolve's real output.
func testParams() grid.Params {
	return grid.Params{
		DX: 10, DY: 10,
		NoDataValue:                -9999,
		WaterDepthErosionThreshold: 0.5,
		EdgeSlope:                  0.001,
		HflowThreshold:             0.001,
		Mannings:                   0.03,
		FroudeLimit:                0.8,
		CourantNumber:              0.7,
		MaxDepth:                   0.5,
	}
}

func TestWorkerStepWithoutHalo(t *testing.T) {
	g := sampleGrid(t)
	parts := SplitRows(g, 2)

	w := NewWorker(nil)
	if err := w.Init(&InitRequest{Partition: *parts[0], Params: testParams()}, &Empty{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	var resp StepResult
	if err := w.Step(&Empty{}, &resp); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(resp.NorthEdge) != parts[0].JMax || len(resp.SouthEdge) != parts[0].JMax {
		t.Errorf("edge row lengths = (%d,%d), want (%d,%d)", len(resp.NorthEdge), len(resp.SouthEdge), parts[0].JMax, parts[0].JMax)
	}
}

func TestWorkerSetHaloFeedsNeighborContext(t *testing.T) {
	g := sampleGrid(t)
	parts := SplitRows(g, 2)

	w := NewWorker(nil)
	w.Init(&InitRequest{Partition: *parts[1], Params: testParams()}, &Empty{})

	haloRow := make([]grid.Cell, parts[1].JMax)
	for i := range haloRow {
		haloRow[i] = grid.Cell{Type: grid.Interior, Elevation: 100, WaterDepth: 2}
	}
	if err := w.SetHalo(&HaloRequest{Rows: haloRow, Side: North}, &Empty{}); err != nil {
		t.Fatalf("SetHalo: %v", err)
	}
	if w.partition.NorthHalo == nil {
		t.Fatal("NorthHalo not set after SetHalo")
	}

	var resp StepResult
	if err := w.Step(&Empty{}, &resp); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func TestWorkerStepPerformsGlobalTimestepSet(t *testing.T) {
	g := sampleGrid(t)
	parts := SplitRows(g, 2)

	w := NewWorker(nil)
	if err := w.Init(&InitRequest{Partition: *parts[0], Params: testParams()}, &Empty{}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := w.controller.Snapshot().TimeFactor; got != 0 {
		t.Fatalf("TimeFactor before the first Step = %v, want 0", got)
	}

	var resp StepResult
	if err := w.Step(&Empty{}, &resp); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := stability.Bound(testParams().MaxDepth, testParams().CourantNumber, testParams().DX)
	if got := w.controller.Snapshot().TimeFactor; got != want {
		t.Errorf("TimeFactor after Step = %v, want the CFL bound %v", got, want)
	}
}

func TestPartitionContextReadsHaloAndLocal(t *testing.T) {
	g := sampleGrid(t)
	parts := SplitRows(g, 2)
	p := parts[1]
	p.NorthHalo = make([]grid.Cell, p.JMax)
	for i := range p.NorthHalo {
		p.NorthHalo[i] = grid.Cell{Elevation: 42}
	}

	ctx := partitionContext{p: p, row: 0, col: 0}
	if got := ctx.North(); got.Elevation != 42 {
		t.Errorf("North() at row 0 should read the halo, got elevation %v, want 42", got.Elevation)
	}

	ctx2 := partitionContext{p: p, row: 1, col: 0}
	if got := ctx2.North(); got != p.At(0, 0) {
		t.Errorf("North() at row 1 should read the local row above, got %+v, want %+v", got, p.At(0, 0))
	}
}
