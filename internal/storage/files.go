package storage

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// Default output file names, matching the classic tool.
const (
	FinalStateFile = "final_state.dat"
	AvVelsFile     = "av_vels.dat"
)

// WriteFinalState writes one line per cell in row-major order:
//
//	col row ux uy |u| pressure flag
//
// Obstacle cells report zero velocity and the reference pressure
// density*c_sq; fluid cells report their local values. The obstacle
// flag is looked up with the same row-major index as every other access
// in the program (the historical tool used a transposed index just
// here, which was a defect).
func WriteFinalState(path string, g *lattice.Grid, mask *lattice.Mask, density float64) error {
	if err := lattice.CheckPair(g, mask); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for jj := 0; jj < g.Ny; jj++ {
		for ii := 0; ii < g.Nx; ii++ {
			i := g.Index(jj, ii)

			var ux, uy, u, pressure float64
			flag := 0
			if mask.Blocked[i] {
				pressure = density * lattice.CSq
				flag = 1
			} else {
				ux, uy = g.CellVelocity(i)
				u = math.Sqrt(ux*ux + uy*uy)
				pressure = g.CellDensity(i) * lattice.CSq
			}

			fmt.Fprintf(w, "%d %d %.12E %.12E %.12E %.12E %d\n",
				ii, jj, ux, uy, u, pressure, flag)
		}
	}

	return w.Flush()
}

// WriteAvVels writes the per-step average velocity log, one
// "index:\tvalue" line per timestep.
func WriteAvVels(path string, avVels []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, v := range avVels {
		fmt.Fprintf(w, "%d:\t%.12E\n", i, v)
	}

	return w.Flush()
}
