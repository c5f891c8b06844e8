package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/latticeflow/internal/lattice"
)

// LoadObstacles reads the obstacle file: zero or more lines of
// "x y flag" where flag must be 1 and the coordinates must lie inside
// the grid. Any cell not listed stays fluid. Malformed lines are fatal
// input errors.
func LoadObstacles(path string, nx, ny int) (*lattice.Mask, error) {
	mask, err := lattice.NewMask(nx, ny)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input obstacles file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("obstacle file %s line %d: expected 3 values per line, got %d",
				path, lineNum, len(fields))
		}

		x, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("obstacle file %s line %d: bad x-coord: %w", path, lineNum, err)
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("obstacle file %s line %d: bad y-coord: %w", path, lineNum, err)
		}
		blocked, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("obstacle file %s line %d: bad blocked flag: %w", path, lineNum, err)
		}

		if x < 0 || x > nx-1 {
			return nil, fmt.Errorf("obstacle file %s line %d: x-coord %d out of range [0, %d)",
				path, lineNum, x, nx)
		}
		if y < 0 || y > ny-1 {
			return nil, fmt.Errorf("obstacle file %s line %d: y-coord %d out of range [0, %d)",
				path, lineNum, y, ny)
		}
		if blocked != 1 {
			return nil, fmt.Errorf("obstacle file %s line %d: blocked value should be 1, got %d",
				path, lineNum, blocked)
		}

		mask.Block(y, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read obstacles file %s: %w", path, err)
	}

	return mask, nil
}
