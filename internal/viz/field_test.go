package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/latticeflow/internal/lattice"
)

func TestRenderFieldShape(t *testing.T) {
	g, _ := lattice.NewGrid(8, 8, 0.1)
	mask, _ := lattice.NewMask(8, 8)

	out := RenderField(g, mask, 4, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("%d rows, want 4", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 4 {
			t.Errorf("row %d: %d cells, want 4", i, n)
		}
	}
}

func TestRenderFieldAtRest(t *testing.T) {
	g, _ := lattice.NewGrid(4, 4, 0.1)
	mask, _ := lattice.NewMask(4, 4)

	out := RenderField(g, mask, 4, 4)
	for _, r := range out {
		if r != ' ' && r != '\n' {
			t.Fatalf("resting field rendered %q, want blanks", r)
		}
	}
}

func TestRenderFieldObstacles(t *testing.T) {
	g, _ := lattice.NewGrid(4, 4, 0.1)
	mask, _ := lattice.NewMask(4, 4)
	mask.Block(0, 0)

	out := RenderField(g, mask, 4, 4)
	if !strings.ContainsRune(out, obstacleRune) {
		t.Error("blocked cell not rendered as obstacle")
	}

	// Row 0 draws at the bottom, so the obstacle is in the last line.
	lines := strings.Split(out, "\n")
	if !strings.ContainsRune(lines[len(lines)-1], obstacleRune) {
		t.Error("obstacle not in bottom row of output")
	}
}

func TestRenderFieldClampsToGrid(t *testing.T) {
	g, _ := lattice.NewGrid(3, 2, 0.1)
	mask, _ := lattice.NewMask(3, 2)

	out := RenderField(g, mask, 100, 50)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("%d rows, want 2", len(lines))
	}
	if n := len([]rune(lines[0])); n != 3 {
		t.Errorf("row width %d, want 3", n)
	}
}
