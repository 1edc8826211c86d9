package stability

import (
	"math"
	"testing"

	"github.com/dvalters/catchmentfp/grid"
)

func TestBoundDecreasesWithDepth(t *testing.T) {
	shallow := Bound(0.1, 0.7, 10)
	deep := Bound(4.0, 0.7, 10)
	if deep >= shallow {
		t.Errorf("CFL bound should shrink as depth grows: shallow=%v deep=%v", shallow, deep)
	}
}

func TestBoundFloorsDepth(t *testing.T) {
	atFloor := Bound(grid.MinDepthForCFL, 0.7, 10)
	belowFloor := Bound(grid.MinDepthForCFL/2, 0.7, 10)
	if belowFloor != atFloor {
		t.Errorf("depths below the floor should be clamped to it: got %v, want %v", belowFloor, atFloor)
	}
}

func TestLocalTimestepNeverExceedsCFLBound(t *testing.T) {
	p := grid.Params{DX: 10, CourantNumber: 0.7, MaxDepth: 0.2, TimeFactor: 100}
	got := LocalTimestep(p)
	bound := Bound(p.MaxDepth, p.CourantNumber, p.DX)
	if got > bound {
		t.Errorf("LocalTimestep() = %v exceeds CFL bound %v", got, bound)
	}
}

func TestLocalTimestepNeverRaisesTimeFactor(t *testing.T) {
	p := grid.Params{DX: 10, CourantNumber: 0.7, MaxDepth: 4.0, TimeFactor: 0.0001}
	got := LocalTimestep(p)
	if got != p.TimeFactor {
		t.Errorf("LocalTimestep() = %v, want the unmodified TimeFactor %v when it's already below the bound", got, p.TimeFactor)
	}
}

func TestControllerSetGlobalTimestepRaisesNotLowers(t *testing.T) {
	c := NewController(grid.Params{DX: 10, CourantNumber: 0.7, MaxDepth: 4.0, TimeFactor: 0})
	c.SetGlobalTimestep()
	raised := c.Snapshot().TimeFactor
	if raised <= 0 {
		t.Fatalf("SetGlobalTimestep should raise TimeFactor above 0, got %v", raised)
	}

	c2 := NewController(grid.Params{DX: 10, CourantNumber: 0.7, MaxDepth: 4.0, TimeFactor: 1e6})
	c2.SetGlobalTimestep()
	if got := c2.Snapshot().TimeFactor; got != 1e6 {
		t.Errorf("SetGlobalTimestep should never lower TimeFactor, got %v, want 1e6", got)
	}
}

func TestControllerMaxDepthFloor(t *testing.T) {
	c := NewController(grid.Params{MaxDepth: 0.001})
	if got := c.Snapshot().MaxDepth; got != grid.MinDepthForCFL {
		t.Errorf("NewController should floor MaxDepth at %v, got %v", grid.MinDepthForCFL, got)
	}
}

func TestControllerStepCount(t *testing.T) {
	c := NewController(grid.Params{})
	if c.StepCount() != 0 {
		t.Fatalf("new controller should start at step 0, got %d", c.StepCount())
	}
	c.AdvanceStep()
	c.AdvanceStep()
	if c.StepCount() != 2 {
		t.Errorf("StepCount() = %d, want 2 after two AdvanceStep calls", c.StepCount())
	}
}

func TestMassBalanceAccumulates(t *testing.T) {
	g := grid.New(1, 3)
	g.Set(0, 0, grid.Cell{Type: grid.EdgeW})
	g.Set(0, 1, grid.Cell{Type: grid.Interior})
	g.Set(0, 2, grid.Cell{Type: grid.EdgeE})

	var mb MassBalance
	mb.ObserveInjection(g)
	if mb.Injected != grid.WaterInputIncrement {
		t.Errorf("Injected = %v, want %v for a single EdgeW cell", mb.Injected, grid.WaterInputIncrement)
	}

	mb.ObserveClamp(0.3)
	mb.ObserveClamp(0.2)
	if mb.ClampedOutflow != 0.5 {
		t.Errorf("ClampedOutflow = %v, want 0.5", mb.ClampedOutflow)
	}

	want := mb.Injected - 0.5
	if got := mb.Balance(); math.Abs(got-want) > 1e-12 {
		t.Errorf("Balance() = %v, want %v", got, want)
	}
}
