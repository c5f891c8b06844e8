package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// paramFields names the seven scalars of the classic parameter file, in
// file order.
var paramFields = [7]string{"nx", "ny", "maxIters", "reynolds_dim", "density", "accel", "omega"}

// LoadParams reads the classic parameter file: seven whitespace- or
// newline-separated scalars in fixed order (nx, ny, maxIters,
// reynolds_dim, density, accel, omega). The first four are integers,
// the last three floats. Anything else is a fatal input error.
func LoadParams(path string) (lattice.Params, error) {
	var p lattice.Params

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("could not open input parameter file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) != len(paramFields) {
		return p, fmt.Errorf("parameter file %s: expected %d values, got %d",
			path, len(paramFields), len(fields))
	}

	ints := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return p, fmt.Errorf("could not read param file: %s: %w", paramFields[i], err)
		}
		ints[i] = v
	}

	floats := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[4+i], 64)
		if err != nil {
			return p, fmt.Errorf("could not read param file: %s: %w", paramFields[4+i], err)
		}
		floats[i] = v
	}

	p = lattice.Params{
		Nx:          ints[0],
		Ny:          ints[1],
		MaxIters:    ints[2],
		ReynoldsDim: ints[3],
		Density:     floats[0],
		Accel:       floats[1],
		Omega:       floats[2],
	}

	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("parameter file %s: %w", path, err)
	}
	return p, nil
}
