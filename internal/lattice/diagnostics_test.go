package lattice

import (
	"math"
	"testing"
)

func TestAvVelocityMatchesKernel(t *testing.T) {
	nx, ny := 8, 8
	g, _ := NewGrid(nx, ny, 0.1)
	scratch, _ := NewEmptyGrid(nx, ny)
	mask, _ := NewMask(nx, ny)
	mask.Block(4, 4)
	perturb(g)

	AccelerateFlow(g, mask, 0.1, 0.005)
	fromKernel := StreamCollide(g, scratch, mask, 1.85)
	fromGrid := AvVelocity(scratch, mask)

	if math.Abs(fromKernel-fromGrid) > 1e-9 {
		t.Errorf("kernel reported %.15g, diagnostic computed %.15g", fromKernel, fromGrid)
	}
}

func TestAvVelocityAllObstacles(t *testing.T) {
	g, _ := NewGrid(3, 3, 0.1)
	mask, _ := NewMask(3, 3)
	for i := range mask.Blocked {
		mask.Blocked[i] = true
	}
	if av := AvVelocity(g, mask); !math.IsNaN(av) {
		t.Errorf("got %g, want NaN", av)
	}
}

func TestTotalDensity(t *testing.T) {
	density := 0.1
	nx, ny := 5, 4
	g, _ := NewGrid(nx, ny, density)

	want := density * float64(nx*ny)
	if got := TotalDensity(g); math.Abs(got-want) > 1e-12 {
		t.Errorf("total density = %.15g, want %.15g", got, want)
	}
}

func TestViscosity(t *testing.T) {
	tests := []struct {
		omega float64
		want  float64
	}{
		{1.5, 1.0 / 18.0},
		{1.0, 1.0 / 6.0},
		{2.0, 0.0},
	}
	for _, tt := range tests {
		if got := Viscosity(tt.omega); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("Viscosity(%g) = %g, want %g", tt.omega, got, tt.want)
		}
	}
}

func TestReynolds(t *testing.T) {
	nx, ny := 4, 4
	g, _ := NewGrid(nx, ny, 0.1)
	mask, _ := NewMask(nx, ny)

	// Mirror the definition directly so constants stay honest.
	omega := 1.5
	dim := 10
	want := AvVelocity(g, mask) * float64(dim) / Viscosity(omega)
	got := Reynolds(g, mask, omega, dim)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Reynolds = %.15g, want %.15g", got, want)
	}

	// At rest the average velocity is zero, so Reynolds must be too.
	if got != 0 {
		t.Errorf("Reynolds at rest = %g, want 0", got)
	}
}
