package lattice

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridEquilibrium(t *testing.T) {
	density := 0.1
	g, err := NewGrid(4, 3, density)
	if err != nil {
		t.Fatalf("new grid failed: %v", err)
	}

	for i := 0; i < 4*3; i++ {
		if math.Abs(g.Speeds[0][i]-4.0/9.0*density) > 1e-15 {
			t.Errorf("cell %d: rest channel %g, want %g", i, g.Speeds[0][i], 4.0/9.0*density)
		}
		for k := 1; k <= 4; k++ {
			if math.Abs(g.Speeds[k][i]-density/9.0) > 1e-15 {
				t.Errorf("cell %d channel %d: %g, want %g", i, k, g.Speeds[k][i], density/9.0)
			}
		}
		for k := 5; k <= 8; k++ {
			if math.Abs(g.Speeds[k][i]-density/36.0) > 1e-15 {
				t.Errorf("cell %d channel %d: %g, want %g", i, k, g.Speeds[k][i], density/36.0)
			}
		}
	}

	// Each cell sums to the reference density.
	if d := g.CellDensity(0); math.Abs(d-density) > 1e-15 {
		t.Errorf("cell density %g, want %g", d, density)
	}
}

func TestNewGridInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		nx, ny int
	}{
		{"zero nx", 0, 4},
		{"zero ny", 4, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.nx, tt.ny, 0.1); !errors.Is(err, ErrDimensions) {
				t.Errorf("expected ErrDimensions, got %v", err)
			}
		})
	}
}

func TestGridIndex(t *testing.T) {
	g, _ := NewGrid(5, 3, 0.1)

	if got := g.Index(0, 0); got != 0 {
		t.Errorf("Index(0,0) = %d, want 0", got)
	}
	if got := g.Index(0, 4); got != 4 {
		t.Errorf("Index(0,4) = %d, want 4", got)
	}
	if got := g.Index(2, 3); got != 13 {
		t.Errorf("Index(2,3) = %d, want 13", got)
	}
}

func TestGridClone(t *testing.T) {
	g, _ := NewGrid(2, 2, 0.1)
	c := g.Clone()

	c.Speeds[0][0] = 42

	if g.Speeds[0][0] == 42 {
		t.Error("clone shares storage with original")
	}
}

func TestCellVelocityAtRest(t *testing.T) {
	g, _ := NewGrid(3, 3, 0.1)

	for i := 0; i < 9; i++ {
		ux, uy := g.CellVelocity(i)
		if ux != 0 || uy != 0 {
			t.Errorf("cell %d: velocity (%g, %g), want (0, 0)", i, ux, uy)
		}
	}
}

func TestMask(t *testing.T) {
	m, err := NewMask(4, 3)
	if err != nil {
		t.Fatalf("new mask failed: %v", err)
	}

	if got := m.FluidCells(); got != 12 {
		t.Errorf("fluid cells = %d, want 12", got)
	}

	m.Block(1, 2)

	if !m.Blocked[m.Index(1, 2)] {
		t.Error("expected cell (1,2) blocked")
	}
	if got := m.FluidCells(); got != 11 {
		t.Errorf("fluid cells = %d, want 11", got)
	}
}

func TestParamsValidate(t *testing.T) {
	valid := Params{Nx: 8, Ny: 8, MaxIters: 10, ReynoldsDim: 8, Density: 0.1, Accel: 0.005, Omega: 1.85}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"zero nx", func(p *Params) { p.Nx = 0 }, ErrDimensions},
		{"zero ny", func(p *Params) { p.Ny = 0 }, ErrDimensions},
		{"zero iters", func(p *Params) { p.MaxIters = 0 }, ErrIterations},
		{"zero density", func(p *Params) { p.Density = 0 }, ErrDensity},
		{"zero omega", func(p *Params) { p.Omega = 0 }, ErrRelaxation},
		{"omega too large", func(p *Params) { p.Omega = 2.5 }, ErrRelaxation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCheckPair(t *testing.T) {
	g, _ := NewGrid(4, 4, 0.1)
	m, _ := NewMask(4, 4)

	if err := CheckPair(g, m); err != nil {
		t.Errorf("matching pair rejected: %v", err)
	}

	small, _ := NewMask(3, 4)
	if err := CheckPair(g, small); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}
