// Package lattice implements the D2Q9 lattice Boltzmann BGK scheme on a
// periodic 2D grid.
//
// Each cell carries nine mesoscopic densities ("speeds"), one per
// discrete velocity direction:
//
//	6 2 5
//	 \|/
//	3-0-1
//	 /|\
//	7 4 8
//
// The grid is unwrapped row-major, so cell (row, col) lives at linear
// index col + row*nx in each of the nine channel buffers. The channels
// are stored as nine separate contiguous slices rather than an array of
// 9-tuples; the hot loop in [StreamCollide] streams over columns within
// a row and benefits from the flat layout.
//
// A timestep is: [AccelerateFlow] on the source grid, then
// [StreamCollide] from the source into a scratch grid, then the two
// grids swap roles. Streaming gathers from neighbour cells of the source
// grid only, which is what makes the cells independent and the kernel
// safe to run row-parallel.
package lattice
