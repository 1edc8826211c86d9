package grid

import "testing"

func openCatchment() *Grid {
	const imax, jmax = 3, 3
	const nodata = -9999.0
	elev := []float64{
		nodata, 9, nodata,
		11, 10, 7,
		nodata, 11, nodata,
	}
	return FromElevations(elev, imax, jmax, nodata)
}

func TestValidateOutletOpen(t *testing.T) {
	g := openCatchment()
	if err := g.ValidateOutlet(); err != nil {
		t.Errorf("ValidateOutlet() = %v, want nil for a catchment with data on every border", err)
	}
}

func TestValidateOutletClosedBorder(t *testing.T) {
	const imax, jmax = 3, 3
	const nodata = -9999.0
	elev := []float64{
		nodata, nodata, nodata,
		11, 10, 7,
		nodata, 11, nodata,
	}
	g := FromElevations(elev, imax, jmax, nodata)
	err := g.ValidateOutlet()
	if err == nil {
		t.Fatal("ValidateOutlet() = nil, want an error for an all-NoData north border")
	}
}
