package grid

import "github.com/dvalters/catchmentfp/cerrors"

// ValidateOutlet checks that at least one cell along each of the four DEM
// borders is not NoData, so the catchment has a possible outlet (spec.md
// §6 "Input: edge DEM check"). It returns a *cerrors.ClosedDomainError for
// the first border found to be entirely NoData.
func (g *Grid) ValidateOutlet() error {
	checks := []struct {
		name string
		ok   func() bool
	}{
		{"north", func() bool { return g.borderHasData(0, 0, 0, 1) }},
		{"south", func() bool { return g.borderHasData(g.IMax-1, 0, 0, 1) }},
		{"west", func() bool { return g.borderHasData(0, 0, 1, 0) }},
		{"east", func() bool { return g.borderHasData(0, g.JMax-1, 1, 0) }},
	}
	for _, c := range checks {
		if !c.ok() {
			return &cerrors.ClosedDomainError{Border: c.name}
		}
	}
	return nil
}

// borderHasData walks the border starting at (row, col) stepping by
// (drow, dcol) and reports whether any visited cell is not NoData.
func (g *Grid) borderHasData(row, col, drow, dcol int) bool {
	for g.InBounds(row, col) {
		if g.At(row, col).Type != NoData {
			return true
		}
		row += drow
		col += dcol
	}
	return false
}
