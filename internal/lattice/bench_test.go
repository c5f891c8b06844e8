package lattice

import "testing"

func benchGrid(b *testing.B, nx, ny int) (*Grid, *Grid, *Mask) {
	b.Helper()
	g, err := NewGrid(nx, ny, 0.1)
	if err != nil {
		b.Fatal(err)
	}
	scratch, _ := NewEmptyGrid(nx, ny)
	mask, _ := NewMask(nx, ny)
	for ii := nx / 4; ii < nx/2; ii++ {
		mask.Block(ny/2, ii)
	}
	return g, scratch, mask
}

func BenchmarkStreamCollide(b *testing.B) {
	cur, next, mask := benchGrid(b, 128, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StreamCollide(cur, next, mask, 1.85)
		cur, next = next, cur
	}
}

func BenchmarkStreamCollideParallel(b *testing.B) {
	cur, next, mask := benchGrid(b, 128, 128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StreamCollideParallel(cur, next, mask, 1.85, 4)
		cur, next = next, cur
	}
}
