package metrics

import "github.com/san-kum/latticeflow/internal/lattice"

// Momentum reports the mean over observed steps of the grid's total
// x-momentum across fluid cells. The inlet forcing pushes along +x, so
// the value grows from zero toward a steady level as the flow develops.
type Momentum struct {
	name    string
	total   float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "x_momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(g *lattice.Grid, mask *lattice.Mask, step int, avVel float64) {
	px := 0.0
	for i := range mask.Blocked {
		if mask.Blocked[i] {
			continue
		}
		px += g.Speeds[1][i] + g.Speeds[5][i] + g.Speeds[8][i] -
			g.Speeds[3][i] - g.Speeds[6][i] - g.Speeds[7][i]
	}
	m.total += px
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.total = 0
	m.samples = 0
}
