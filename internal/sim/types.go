package sim

import "github.com/san-kum/latticeflow/internal/lattice"

// Metric observes the grid after each completed timestep and reduces to
// a single reported value at the end of the run.
type Metric interface {
	Name() string
	Observe(g *lattice.Grid, mask *lattice.Mask, step int, avVel float64)
	Value() float64
	Reset()
}

// Observer is notified after each completed timestep. Observers are for
// reporting and visualization; they must not mutate the grid.
type Observer interface {
	OnStep(g *lattice.Grid, step int, avVel float64)
}

// Config carries per-run execution options, as opposed to the physics
// parameters in lattice.Params.
type Config struct {
	// Threads is the kernel worker count: 0 = one per CPU, 1 = serial.
	Threads int
}

// Result is a completed run: one average velocity per timestep, the
// final grid state, and the reduced metrics.
type Result struct {
	AvVels   []float64
	Final    *lattice.Grid
	Reynolds float64
	Steps    int
	Metrics  map[string]float64
}
