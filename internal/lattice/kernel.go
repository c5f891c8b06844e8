package lattice

import (
	"math"

	"github.com/san-kum/latticeflow/internal/compute"
)

// minRowsPerWorker keeps goroutine overhead off small grids.
const minRowsPerWorker = 32

// AccelerateFlow injects momentum along +x on the row one below the top
// of the grid, which acts as the inlet. For each unblocked cell on that
// row it shifts density from the west-facing channels (3, 6, 7) onto the
// east-facing ones (1, 5, 8); the cell's total density is unchanged. A
// cell is skipped when the shift would drive any west-facing channel to
// zero or below, so the guard keeps every channel positive.
func AccelerateFlow(g *Grid, mask *Mask, density, accel float64) {
	if g.Ny < 2 {
		return
	}

	w1 := density * accel / 9.0
	w2 := density * accel / 36.0

	base := (g.Ny - 2) * g.Nx
	for ii := 0; ii < g.Nx; ii++ {
		i := base + ii
		if mask.Blocked[i] {
			continue
		}
		if g.Speeds[3][i]-w1 <= 0 || g.Speeds[6][i]-w2 <= 0 || g.Speeds[7][i]-w2 <= 0 {
			continue
		}

		g.Speeds[1][i] += w1
		g.Speeds[5][i] += w2
		g.Speeds[8][i] += w2
		g.Speeds[3][i] -= w1
		g.Speeds[6][i] -= w2
		g.Speeds[7][i] -= w2
	}
}

// StreamCollide advances one timestep from src into dst. For every cell
// it gathers the nine channel values from the upstream neighbours on the
// periodic grid, then either mirrors them back (bounce-back, solid
// cells) or relaxes them toward local equilibrium at rate omega (BGK,
// fluid cells). Every dst cell is overwritten; src is read-only.
//
// The return value is the spatial average of fluid-cell speed for this
// step. When the mask blocks every cell the average is 0/0 and the
// function returns NaN rather than failing.
func StreamCollide(src, dst *Grid, mask *Mask, omega float64) float64 {
	totU, cells := streamCollideRows(src, dst, mask, omega, 0, src.Ny)
	return totU / float64(cells)
}

// StreamCollideParallel is StreamCollide with rows split across workers.
// Cells only read src, so chunks need no coordination; the per-worker
// partial sums are reduced in worker order. workers <= 0 means one per
// CPU. Small grids fall through to the serial path.
func StreamCollideParallel(src, dst *Grid, mask *Mask, omega float64, workers int) float64 {
	workers = compute.Workers(workers)
	if workers == 1 || src.Ny <= minRowsPerWorker {
		return StreamCollide(src, dst, mask, omega)
	}

	partU := make([]float64, workers)
	partCells := make([]int, workers)

	compute.ForEachChunk(src.Ny, minRowsPerWorker, workers, func(w, start, end int) {
		partU[w], partCells[w] = streamCollideRows(src, dst, mask, omega, start, end)
	})

	totU := 0.0
	cells := 0
	for w := range partU {
		totU += partU[w]
		cells += partCells[w]
	}
	return totU / float64(cells)
}

// streamCollideRows processes rows [rowStart, rowEnd) and returns the
// accumulated fluid-cell speed and fluid-cell count for that span. The
// inner loop is written flat over the nine channels so the whole cell
// update stays in registers.
func streamCollideRows(src, dst *Grid, mask *Mask, omega float64, rowStart, rowEnd int) (float64, int) {
	nx, ny := src.Nx, src.Ny

	const c2sq = 2 * CSq        // 2*c_sq
	const c2sq2 = 2 * CSq * CSq // 2*c_sq^2

	totU := 0.0
	cells := 0

	for jj := rowStart; jj < rowEnd; jj++ {
		// Neighbour rows with periodic wraparound.
		yN := jj + 1
		if yN == ny {
			yN = 0
		}
		yS := jj - 1
		if yS < 0 {
			yS = ny - 1
		}

		rowOff := jj * nx
		nOff := yN * nx
		sOff := yS * nx

		for ii := 0; ii < nx; ii++ {
			xE := ii + 1
			if xE == nx {
				xE = 0
			}
			xW := ii - 1
			if xW < 0 {
				xW = nx - 1
			}

			i := rowOff + ii

			// Gather: channel k arrives from the neighbour at the
			// opposite offset of direction k.
			s0 := src.Speeds[0][i]
			s1 := src.Speeds[1][rowOff+xW] // east
			s2 := src.Speeds[2][sOff+ii]   // north
			s3 := src.Speeds[3][rowOff+xE] // west
			s4 := src.Speeds[4][nOff+ii]   // south
			s5 := src.Speeds[5][sOff+xW]   // north-east
			s6 := src.Speeds[6][sOff+xE]   // north-west
			s7 := src.Speeds[7][nOff+xE]   // south-west
			s8 := src.Speeds[8][nOff+xW]   // south-east

			local := s0 + s1 + s2 + s3 + s4 + s5 + s6 + s7 + s8
			ux := (s1 + s5 + s8 - s3 - s6 - s7) / local
			uy := (s2 + s5 + s6 - s4 - s7 - s8) / local

			if mask.Blocked[i] {
				// Bounce-back: reflect each gathered value into the
				// opposite channel. No relaxation, no contribution to
				// the velocity reduction.
				dst.Speeds[0][i] = s0
				dst.Speeds[1][i] = s3
				dst.Speeds[2][i] = s4
				dst.Speeds[3][i] = s1
				dst.Speeds[4][i] = s2
				dst.Speeds[5][i] = s7
				dst.Speeds[6][i] = s8
				dst.Speeds[7][i] = s5
				dst.Speeds[8][i] = s6
				continue
			}

			uSq := ux*ux + uy*uy

			// Directional velocity components.
			u5 := ux + uy  // north-east
			u6 := -ux + uy // north-west
			u7 := -ux - uy // south-west
			u8 := ux - uy  // south-east

			// Equilibrium densities, then BGK relaxation toward them.
			eq0 := W0 * local * (1 - uSq/c2sq)
			eq1 := W1 * local * (1 + ux/CSq + ux*ux/c2sq2 - uSq/c2sq)
			eq2 := W1 * local * (1 + uy/CSq + uy*uy/c2sq2 - uSq/c2sq)
			eq3 := W1 * local * (1 - ux/CSq + ux*ux/c2sq2 - uSq/c2sq)
			eq4 := W1 * local * (1 - uy/CSq + uy*uy/c2sq2 - uSq/c2sq)
			eq5 := W2 * local * (1 + u5/CSq + u5*u5/c2sq2 - uSq/c2sq)
			eq6 := W2 * local * (1 + u6/CSq + u6*u6/c2sq2 - uSq/c2sq)
			eq7 := W2 * local * (1 + u7/CSq + u7*u7/c2sq2 - uSq/c2sq)
			eq8 := W2 * local * (1 + u8/CSq + u8*u8/c2sq2 - uSq/c2sq)

			dst.Speeds[0][i] = s0 + omega*(eq0-s0)
			dst.Speeds[1][i] = s1 + omega*(eq1-s1)
			dst.Speeds[2][i] = s2 + omega*(eq2-s2)
			dst.Speeds[3][i] = s3 + omega*(eq3-s3)
			dst.Speeds[4][i] = s4 + omega*(eq4-s4)
			dst.Speeds[5][i] = s5 + omega*(eq5-s5)
			dst.Speeds[6][i] = s6 + omega*(eq6-s6)
			dst.Speeds[7][i] = s7 + omega*(eq7-s7)
			dst.Speeds[8][i] = s8 + omega*(eq8-s8)

			totU += math.Sqrt(uSq)
			cells++
		}
	}

	return totU, cells
}
