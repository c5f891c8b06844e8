// Package compute provides chunked parallel execution over index ranges.
//
// The grid kernel is fully data-parallel within a timestep, so rows can
// be split across workers with no coordination beyond the final join:
//
//	compute.ForEachChunk(ny, minRows, workers, func(w, start, end int) {
//		partial[w] = processRows(start, end)
//	})
package compute
