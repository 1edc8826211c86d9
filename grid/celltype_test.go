package grid

import "testing"

func TestClassifyPosition(t *testing.T) {
	const imax, jmax = 4, 5
	cases := []struct {
		row, col int
		want     CellType
	}{
		{0, 0, CornerNW},
		{0, jmax - 1, CornerNE},
		{imax - 1, 0, CornerSW},
		{imax - 1, jmax - 1, CornerSE},
		{0, 2, EdgeN},
		{imax - 1, 2, EdgeS},
		{2, 0, EdgeW},
		{2, jmax - 1, EdgeE},
		{2, 2, Interior},
	}
	for _, c := range cases {
		if got := ClassifyPosition(c.row, c.col, imax, jmax); got != c.want {
			t.Errorf("ClassifyPosition(%d,%d) = %s, want %s", c.row, c.col, got, c.want)
		}
	}
}

func TestIsBoundary(t *testing.T) {
	if Interior.IsBoundary() {
		t.Error("Interior should not be a boundary type")
	}
	if NoData.IsBoundary() {
		t.Error("NoData should not be a boundary type")
	}
	for _, ct := range []CellType{EdgeN, EdgeS, EdgeE, EdgeW, CornerNW, CornerNE, CornerSW, CornerSE} {
		if !ct.IsBoundary() {
			t.Errorf("%s should be a boundary type", ct)
		}
	}
}

func TestUpstreamDownstreamTables(t *testing.T) {
	if !EdgeW.xUpstreamMissing() {
		t.Error("EdgeW should be x-upstream-missing")
	}
	if !EdgeE.xDownstreamBoundary() {
		t.Error("EdgeE should be x-downstream-boundary")
	}
	if !EdgeN.yUpstreamMissing() {
		t.Error("EdgeN should be y-upstream-missing")
	}
	if !EdgeS.yDownstreamBoundary() {
		t.Error("EdgeS should be y-downstream-boundary")
	}
	if !CornerNW.xUpstreamMissing() || !CornerNW.yUpstreamMissing() {
		t.Error("CornerNW should be missing both west and north neighbors")
	}
	if Interior.xUpstreamMissing() || Interior.xDownstreamBoundary() {
		t.Error("Interior should have neither x table entry set")
	}
}

func TestEastSouthTermZero(t *testing.T) {
	if !EdgeE.EastTermZero() {
		t.Error("EdgeE's east term should be zeroed")
	}
	if !EdgeS.SouthTermZero() {
		t.Error("EdgeS's south term should be zeroed")
	}
	if Interior.EastTermZero() || Interior.SouthTermZero() {
		t.Error("Interior should not zero either term")
	}
}
