package termview

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/lightning/pkg/geom"
)

type cell struct{ x, y int }

func collect(a, b geom.Vec2, cellW, cellH float64) []cell {
	var cells []cell
	Rasterize(a, b, cellW, cellH, func(x, y int) {
		cells = append(cells, cell{x, y})
	})
	return cells
}

func TestRasterize(t *testing.T) {
	tests := []struct {
		name  string
		a, b  geom.Vec2
		first cell
		last  cell
		count int
	}{
		{"horizontal", geom.V(0, 0), geom.V(80, 0), cell{0, 0}, cell{10, 0}, 11},
		{"vertical", geom.V(4, 0), geom.V(4, 160), cell{0, 0}, cell{0, 10}, 11},
		{"grid diagonal", geom.V(0, 0), geom.V(40, 80), cell{0, 0}, cell{5, 5}, 6},
		{"reverse horizontal", geom.V(80, 20), geom.V(0, 20), cell{10, 1}, cell{0, 1}, 11},
		{"single cell", geom.V(3, 3), geom.V(7, 15), cell{0, 0}, cell{0, 0}, 1},
		{"negative coordinates", geom.V(-9, -17), geom.V(0, 0), cell{-2, -2}, cell{0, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := collect(tt.a, tt.b, 8, 16)
			if len(cells) != tt.count {
				t.Fatalf("visited %d cells, want %d: %v", len(cells), tt.count, cells)
			}
			if cells[0] != tt.first || cells[len(cells)-1] != tt.last {
				t.Errorf("endpoints %v..%v, want %v..%v", cells[0], cells[len(cells)-1], tt.first, tt.last)
			}
		})
	}
}

func TestRasterize_DiagonalStaysOnDiagonal(t *testing.T) {
	for _, c := range collect(geom.V(0, 0), geom.V(40, 80), 8, 16) {
		if c.x != c.y {
			t.Errorf("cell %v off the diagonal", c)
		}
	}
}

func TestRasterize_Continuous(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 200; trial++ {
		a := geom.V(rng.Float64()*640-320, rng.Float64()*480-240)
		b := geom.V(rng.Float64()*640-320, rng.Float64()*480-240)

		cells := collect(a, b, 8, 16)
		ax, ay := CellOf(a, 8, 16)
		bx, by := CellOf(b, 8, 16)
		if cells[0] != (cell{ax, ay}) || cells[len(cells)-1] != (cell{bx, by}) {
			t.Fatalf("trial %d: endpoints not visited", trial)
		}
		for i := 1; i < len(cells); i++ {
			dx := absInt(cells[i].x - cells[i-1].x)
			dy := absInt(cells[i].y - cells[i-1].y)
			if dx > 1 || dy > 1 || (dx == 0 && dy == 0) {
				t.Fatalf("trial %d: jump from %v to %v", trial, cells[i-1], cells[i])
			}
		}
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		dir  geom.Vec2
		want rune
	}{
		{"right", geom.V(1, 0), '-'},
		{"left", geom.V(-5, 0), '-'},
		{"down", geom.V(0, 3), '|'},
		{"up", geom.V(0, -3), '|'},
		// 单元 8x16：像素方向 (8, 16) 在网格中是 45°
		{"down right", geom.V(8, 16), '\\'},
		{"up left", geom.V(-8, -16), '\\'},
		{"up right", geom.V(8, -16), '/'},
		{"down left", geom.V(-8, 16), '/'},
		// 像素 45° 在网格中偏水平
		{"pixel diagonal", geom.V(16, 8), '-'},
		{"zero", geom.V(0, 0), '*'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Glyph(tt.dir, 8, 16); got != tt.want {
				t.Errorf("Glyph(%v) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}

func TestCellCenter(t *testing.T) {
	p := CellCenter(3, 2, 8, 16)
	if p != geom.V(28, 40) {
		t.Errorf("CellCenter(3, 2) = %v, want (28, 40)", p)
	}
	if x, y := CellOf(p, 8, 16); x != 3 || y != 2 {
		t.Errorf("CellOf(CellCenter) = (%d, %d), want (3, 2)", x, y)
	}
}
