package lattice

import "math"

// AvVelocity computes the spatial average of fluid-cell speed directly
// from a resting grid, with the same arithmetic as the in-kernel
// reduction so post-hoc checks agree with the live per-step value.
// Returns NaN when the mask blocks every cell.
func AvVelocity(g *Grid, mask *Mask) float64 {
	totU := 0.0
	cells := 0

	for i := range mask.Blocked {
		if mask.Blocked[i] {
			continue
		}
		ux, uy := g.CellVelocity(i)
		totU += math.Sqrt(ux*ux + uy*uy)
		cells++
	}

	return totU / float64(cells)
}

// TotalDensity sums every channel value over the whole grid. Streaming
// permutes mass, bounce-back reflects it and BGK relaxation conserves
// it, so the total should hold steady across timesteps up to float
// rounding.
func TotalDensity(g *Grid) float64 {
	total := 0.0
	for k := 0; k < NSpeeds; k++ {
		for _, v := range g.Speeds[k] {
			total += v
		}
	}
	return total
}

// Viscosity is the kinematic viscosity implied by the relaxation rate.
func Viscosity(omega float64) float64 {
	return (1.0 / 6.0) * (2.0/omega - 1.0)
}

// Reynolds computes the Reynolds number from the grid's current average
// velocity, the characteristic dimension and the relaxation-derived
// viscosity.
func Reynolds(g *Grid, mask *Mask, omega float64, reynoldsDim int) float64 {
	return AvVelocity(g, mask) * float64(reynoldsDim) / Viscosity(omega)
}
