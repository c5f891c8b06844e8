package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/latticeflow/internal/lattice"
)

func TestMassDrift(t *testing.T) {
	g, _ := lattice.NewGrid(4, 4, 0.1)
	mask, _ := lattice.NewMask(4, 4)

	m := NewMassDrift()
	if m.Name() != "mass_drift" {
		t.Errorf("name = %q", m.Name())
	}

	m.Observe(g, mask, 0, 0)
	if m.Value() != 0 {
		t.Errorf("drift after baseline = %g, want 0", m.Value())
	}

	// Bleed 1% of the rest channel everywhere and observe again.
	for i := range g.Speeds[0] {
		g.Speeds[0][i] *= 0.99
	}
	m.Observe(g, mask, 1, 0)

	w0 := 4.0 / 9.0
	wantDrift := 0.01 * w0
	if math.Abs(m.Value()-wantDrift) > 1e-12 {
		t.Errorf("drift = %g, want %g", m.Value(), wantDrift)
	}

	// Drift is a high-water mark: recovering mass does not lower it.
	for i := range g.Speeds[0] {
		g.Speeds[0][i] /= 0.99
	}
	m.Observe(g, mask, 2, 0)
	if math.Abs(m.Value()-wantDrift) > 1e-12 {
		t.Errorf("drift dropped to %g after recovery, want %g", m.Value(), wantDrift)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset = %g", m.Value())
	}
}

func TestMomentum(t *testing.T) {
	g, _ := lattice.NewGrid(4, 4, 0.1)
	mask, _ := lattice.NewMask(4, 4)

	m := NewMomentum()
	if m.Name() != "x_momentum" {
		t.Errorf("name = %q", m.Name())
	}
	if m.Value() != 0 {
		t.Errorf("value with no samples = %g, want 0", m.Value())
	}

	// Equilibrium at rest has zero net x-momentum.
	m.Observe(g, mask, 0, 0)
	if math.Abs(m.Value()) > 1e-15 {
		t.Errorf("momentum at rest = %g, want 0", m.Value())
	}

	// Shift one cell's east channel and check the mean.
	i := g.Index(1, 1)
	g.Speeds[1][i] += 0.05
	m.Observe(g, mask, 1, 0)
	if math.Abs(m.Value()-0.025) > 1e-15 {
		t.Errorf("mean momentum = %g, want 0.025", m.Value())
	}

	// Blocked cells are excluded from the sum.
	mask.Block(1, 1)
	m.Reset()
	m.Observe(g, mask, 0, 0)
	if math.Abs(m.Value()) > 1e-15 {
		t.Errorf("momentum with shifted cell blocked = %g, want 0", m.Value())
	}
}

func TestStability(t *testing.T) {
	g, _ := lattice.NewGrid(2, 2, 0.1)
	mask, _ := lattice.NewMask(2, 2)

	s := NewStability()
	if s.Name() != "stability" {
		t.Errorf("name = %q", s.Name())
	}
	if s.Value() != 1.0 {
		t.Errorf("value with no samples = %g, want 1", s.Value())
	}

	s.Observe(g, mask, 0, 0.01)
	s.Observe(g, mask, 1, 0.02)
	s.Observe(g, mask, 2, math.NaN())
	s.Observe(g, mask, 3, math.Inf(1))

	if got := s.Value(); got != 0.5 {
		t.Errorf("stability = %g, want 0.5", got)
	}

	s.Reset()
	if s.Value() != 1.0 {
		t.Errorf("value after reset = %g, want 1", s.Value())
	}
}
