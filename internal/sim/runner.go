package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// Runner drives the double-buffered timestep loop: forcing on the
// current grid, stream/collide into the scratch grid, then the two swap
// roles. Runner instances are not safe for concurrent use.
type Runner struct {
	params    lattice.Params
	mask      *lattice.Mask
	metrics   []Metric
	observers []Observer
}

// New validates the parameters against the mask once; the per-step loop
// assumes they are consistent.
func New(p lattice.Params, mask *lattice.Mask) (*Runner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Nx != mask.Nx || p.Ny != mask.Ny {
		return nil, fmt.Errorf("%w: params %dx%d, mask %dx%d",
			lattice.ErrSizeMismatch, p.Nx, p.Ny, mask.Nx, mask.Ny)
	}
	return &Runner{
		params:    p,
		mask:      mask,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes MaxIters timesteps to completion. There is no early exit
// beyond context cancellation, in which case the partial result is
// returned alongside the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	p := r.params

	cells, err := lattice.NewGrid(p.Nx, p.Ny, p.Density)
	if err != nil {
		return nil, err
	}
	scratch, err := lattice.NewEmptyGrid(p.Nx, p.Ny)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AvVels:  make([]float64, 0, p.MaxIters),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for step := 0; step < p.MaxIters; step++ {
		select {
		case <-ctx.Done():
			result.Final = cells
			return result, ctx.Err()
		default:
		}

		lattice.AccelerateFlow(cells, r.mask, p.Density, p.Accel)

		var av float64
		if cfg.Threads == 1 {
			av = lattice.StreamCollide(cells, scratch, r.mask, p.Omega)
		} else {
			av = lattice.StreamCollideParallel(cells, scratch, r.mask, p.Omega, cfg.Threads)
		}

		cells, scratch = scratch, cells

		result.AvVels = append(result.AvVels, av)
		result.Steps++

		for _, m := range r.metrics {
			m.Observe(cells, r.mask, step, av)
		}
		for _, o := range r.observers {
			o.OnStep(cells, step, av)
		}
	}

	result.Final = cells
	result.Reynolds = lattice.Reynolds(cells, r.mask, p.Omega, p.ReynoldsDim)

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
