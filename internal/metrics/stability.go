package metrics

import (
	"math"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// Stability reports the fraction of observed steps whose average
// velocity was finite. A NaN or Inf average means the run diverged (or
// the grid is fully blocked); anything below 1.0 deserves a look.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(g *lattice.Grid, mask *lattice.Mask, step int, avVel float64) {
	s.samples++
	if math.IsNaN(avVel) || math.IsInf(avVel, 0) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
