package metrics

import (
	"math"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// MassDrift tracks the worst relative deviation of total grid density
// from its value at the first observed step. Forcing, streaming,
// bounce-back and BGK collision all conserve mass, so the value should
// stay near float rounding for a healthy run.
type MassDrift struct {
	name        string
	initialMass float64
	maxDrift    float64
	samples     int
}

func NewMassDrift() *MassDrift {
	return &MassDrift{name: "mass_drift"}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(g *lattice.Grid, mask *lattice.Mask, step int, avVel float64) {
	total := lattice.TotalDensity(g)

	if m.samples == 0 {
		m.initialMass = total
	}
	m.samples++

	if m.initialMass != 0 {
		drift := math.Abs(total-m.initialMass) / math.Abs(m.initialMass)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initialMass = 0
	m.maxDrift = 0
	m.samples = 0
}
