package viz

import (
	"math"
	"strings"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// ramp maps normalized speed to display intensity.
var ramp = []rune(" .:-=+*#%@")

const obstacleRune = '█'

// RenderField draws the speed field as an ASCII intensity map,
// downsampled to cols x rows by nearest-cell sampling. Row ny-1 renders
// at the top so +y points up, matching the grid's orientation.
func RenderField(g *lattice.Grid, mask *lattice.Mask, cols, rows int) string {
	if cols > g.Nx {
		cols = g.Nx
	}
	if rows > g.Ny {
		rows = g.Ny
	}

	// Scale intensities against the current fastest cell.
	maxU := 0.0
	speeds := make([]float64, cols*rows)
	solid := make([]bool, cols*rows)

	for r := 0; r < rows; r++ {
		jj := (rows - 1 - r) * g.Ny / rows
		for c := 0; c < cols; c++ {
			ii := c * g.Nx / cols
			i := g.Index(jj, ii)

			if mask.Blocked[i] {
				solid[c+r*cols] = true
				continue
			}

			ux, uy := g.CellVelocity(i)
			u := math.Sqrt(ux*ux + uy*uy)
			speeds[c+r*cols] = u
			if u > maxU {
				maxU = u
			}
		}
	}

	var b strings.Builder
	b.Grow((cols + 1) * rows)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if solid[c+r*cols] {
				b.WriteRune(obstacleRune)
				continue
			}
			level := 0
			if maxU > 0 {
				level = int(speeds[c+r*cols] / maxU * float64(len(ramp)-1))
			}
			b.WriteRune(ramp[level])
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}
