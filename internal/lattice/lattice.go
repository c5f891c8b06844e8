package lattice

import "fmt"

// NSpeeds is the number of discrete velocity channels in the D2Q9 scheme.
const NSpeeds = 9

// Lattice weights and the squared speed of sound.
const (
	W0  = 4.0 / 9.0  // rest channel
	W1  = 1.0 / 9.0  // axis channels 1..4
	W2  = 1.0 / 36.0 // diagonal channels 5..8
	CSq = 1.0 / 3.0
)

// Params holds the run parameters, loaded once and immutable afterwards.
type Params struct {
	Nx          int     // cells in the x-direction
	Ny          int     // cells in the y-direction
	MaxIters    int     // timesteps to run
	ReynoldsDim int     // characteristic dimension for the Reynolds number
	Density     float64 // reference density per link
	Accel       float64 // inlet forcing magnitude
	Omega       float64 // BGK relaxation rate
}

func (p Params) Validate() error {
	if p.Nx <= 0 || p.Ny <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrDimensions, p.Nx, p.Ny)
	}
	if p.MaxIters <= 0 {
		return fmt.Errorf("%w: got %d", ErrIterations, p.MaxIters)
	}
	if p.Density <= 0 {
		return fmt.Errorf("%w: got %g", ErrDensity, p.Density)
	}
	if p.Omega <= 0 || p.Omega > 2 {
		return fmt.Errorf("%w: got %g", ErrRelaxation, p.Omega)
	}
	return nil
}

// Grid is one D2Q9 state: nine channel buffers in struct-of-arrays
// layout, each of length Nx*Ny. Two grids alternate roles per timestep;
// a grid is never streamed in place.
type Grid struct {
	Nx, Ny int
	Speeds [NSpeeds][]float64
}

// NewGrid allocates a grid and fills every cell with the zero-velocity
// equilibrium for the given density.
func NewGrid(nx, ny int, density float64) (*Grid, error) {
	g, err := NewEmptyGrid(nx, ny)
	if err != nil {
		return nil, err
	}
	g.SetEquilibrium(density)
	return g, nil
}

// NewEmptyGrid allocates a zeroed grid, typically used as the scratch
// half of the double buffer.
func NewEmptyGrid(nx, ny int) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimensions, nx, ny)
	}
	g := &Grid{Nx: nx, Ny: ny}
	for k := range g.Speeds {
		g.Speeds[k] = make([]float64, nx*ny)
	}
	return g, nil
}

// Index maps (row, col) to the linear cell index. Row-major: col + row*nx.
// The hot loop assumes in-range indices; this is the only addressing
// convention in the package.
func (g *Grid) Index(row, col int) int {
	return col + row*g.Nx
}

// SetEquilibrium resets every cell to the stationary equilibrium
// distribution for the given density: 4/9 on the rest channel, 1/9 on
// the axes, 1/36 on the diagonals.
func (g *Grid) SetEquilibrium(density float64) {
	w0 := W0 * density
	w1 := W1 * density
	w2 := W2 * density
	for i := range g.Speeds[0] {
		g.Speeds[0][i] = w0
		g.Speeds[1][i] = w1
		g.Speeds[2][i] = w1
		g.Speeds[3][i] = w1
		g.Speeds[4][i] = w1
		g.Speeds[5][i] = w2
		g.Speeds[6][i] = w2
		g.Speeds[7][i] = w2
		g.Speeds[8][i] = w2
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Nx: g.Nx, Ny: g.Ny}
	for k := range g.Speeds {
		c.Speeds[k] = make([]float64, len(g.Speeds[k]))
		copy(c.Speeds[k], g.Speeds[k])
	}
	return c
}

// CellDensity sums the nine channel values at a linear cell index.
func (g *Grid) CellDensity(i int) float64 {
	d := 0.0
	for k := 0; k < NSpeeds; k++ {
		d += g.Speeds[k][i]
	}
	return d
}

// CellVelocity returns the macroscopic velocity at a linear cell index.
func (g *Grid) CellVelocity(i int) (ux, uy float64) {
	d := g.CellDensity(i)
	ux = (g.Speeds[1][i] + g.Speeds[5][i] + g.Speeds[8][i] -
		g.Speeds[3][i] - g.Speeds[6][i] - g.Speeds[7][i]) / d
	uy = (g.Speeds[2][i] + g.Speeds[5][i] + g.Speeds[6][i] -
		g.Speeds[4][i] - g.Speeds[7][i] - g.Speeds[8][i]) / d
	return ux, uy
}

// Mask flags solid cells. Loaded once, read-only afterwards.
type Mask struct {
	Nx, Ny  int
	Blocked []bool
}

func NewMask(nx, ny int) (*Mask, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrDimensions, nx, ny)
	}
	return &Mask{Nx: nx, Ny: ny, Blocked: make([]bool, nx*ny)}, nil
}

// Index maps (row, col) to the linear cell index, same convention as Grid.
func (m *Mask) Index(row, col int) int {
	return col + row*m.Nx
}

// Block marks the cell at (row, col) as solid.
func (m *Mask) Block(row, col int) {
	m.Blocked[m.Index(row, col)] = true
}

// FluidCells counts the unblocked cells.
func (m *Mask) FluidCells() int {
	n := 0
	for _, b := range m.Blocked {
		if !b {
			n++
		}
	}
	return n
}

// CheckPair verifies a grid and mask cover the same cells. Mismatched
// pairs are caller bugs; callers check once at setup, not per step.
func CheckPair(g *Grid, m *Mask) error {
	if g.Nx != m.Nx || g.Ny != m.Ny {
		return fmt.Errorf("%w: grid %dx%d, mask %dx%d", ErrSizeMismatch, g.Nx, g.Ny, m.Nx, m.Ny)
	}
	return nil
}
