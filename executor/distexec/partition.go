// Package distexec generalizes sr/rpc.go's Cluster/Worker/WorkerListen
// RPC machinery from whole-simulation job dispatch to per-step halo
// exchange across row-sliced partitions of one catchment grid (spec.md
// §4.6 "domain decomposition, single-cell halo exchange"). Workers are
// started independently (e.g. one per node, via the CLI's worker
// subcommand) and dialed by address, the same way NewCluster's
// ssh-spawned slaves register themselves for RPC before the coordinator
// sends them any work.
package distexec

import "github.com/dvalters/catchmentfp/grid"

// Partition is one worker's row-contiguous slice of the global grid:
// rows [StartRow, StartRow+Rows) across the full JMax width, plus the
// single row of halo cells borrowed from the partition immediately north
// and south. A partition at the top or bottom of the domain has a nil
// halo on that side.
type Partition struct {
	StartRow, Rows, JMax int
	Cells                []grid.Cell // Rows * JMax, row-major within the partition
	NorthHalo, SouthHalo []grid.Cell // length JMax each, or nil at the domain edge
}

// localIndex returns the index into p.Cells for a row expressed in
// partition-local coordinates (0 is the partition's first row).
func (p *Partition) localIndex(localRow, col int) int {
	return localRow*p.JMax + col
}

// At returns the cell at partition-local (localRow, col).
func (p *Partition) At(localRow, col int) grid.Cell {
	return p.Cells[p.localIndex(localRow, col)]
}

// Set overwrites the cell at partition-local (localRow, col).
func (p *Partition) Set(localRow, col int, c grid.Cell) {
	p.Cells[p.localIndex(localRow, col)] = c
}

// NorthEdge returns the partition's own first row, the row its northern
// neighbor needs as its SouthHalo.
func (p *Partition) NorthEdge() []grid.Cell {
	return append([]grid.Cell(nil), p.Cells[0:p.JMax]...)
}

// SouthEdge returns the partition's own last row, the row its southern
// neighbor needs as its NorthHalo.
func (p *Partition) SouthEdge() []grid.Cell {
	start := (p.Rows - 1) * p.JMax
	return append([]grid.Cell(nil), p.Cells[start:start+p.JMax]...)
}

// SplitRows divides an imax x jmax grid into n row-contiguous partitions
// of as-equal-as-possible height (n is first clamped to the range
// [1, imax]), returning each one's Partition (with
// halos left nil — the caller wires halos via SetHalo once every
// partition exists).
func SplitRows(g *grid.Grid, n int) []*Partition {
	if n < 1 {
		n = 1
	}
	if n > g.IMax {
		n = g.IMax
	}
	base := g.IMax / n
	extra := g.IMax % n

	parts := make([]*Partition, n)
	row := 0
	for i := 0; i < n; i++ {
		rows := base
		if i < extra {
			rows++
		}
		cells := make([]grid.Cell, rows*g.JMax)
		for r := 0; r < rows; r++ {
			for c := 0; c < g.JMax; c++ {
				cells[r*g.JMax+c] = g.At(row+r, c)
			}
		}
		parts[i] = &Partition{StartRow: row, Rows: rows, JMax: g.JMax, Cells: cells}
		row += rows
	}
	return parts
}

// Merge writes every partition's cells back into a single grid in global
// row order. Partitions must be given in the order SplitRows produced
// them and must together cover every row of g exactly once.
func Merge(g *grid.Grid, parts []*Partition) {
	for _, p := range parts {
		for r := 0; r < p.Rows; r++ {
			for c := 0; c < p.JMax; c++ {
				g.Set(p.StartRow+r, c, p.At(r, c))
			}
		}
	}
}
