package geometry

import (
	"math"
	"testing"
)

func TestContourArea(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want float64
	}{
		{"unit square", Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"rectangle", Contour{{0, 0}, {100, 0}, {100, 50}, {0, 50}}, 5000},
		{"triangle", Contour{{0, 0}, {10, 0}, {0, 10}}, 50},
		{"degenerate line", Contour{{0, 0}, {5, 5}, {10, 10}}, 0},
		{"too few points", Contour{{0, 0}, {1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Area(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestContourArea_WindingIndependent(t *testing.T) {
	cw := Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	ccw := Contour{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if cw.Area() != ccw.Area() {
		t.Errorf("winding changed area: %g vs %g", cw.Area(), ccw.Area())
	}
	if cw.SignedArea() != -ccw.SignedArea() {
		t.Errorf("signed areas should be opposite: %g vs %g", cw.SignedArea(), ccw.SignedArea())
	}
}

func TestContourPerimeter(t *testing.T) {
	c := Contour{{0, 0}, {3, 0}, {3, 4}, {0, 4}}
	if got := c.Perimeter(); math.Abs(got-14) > 1e-9 {
		t.Errorf("Perimeter() = %g, want 14", got)
	}
}

func TestContourIsConvex(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
		want bool
	}{
		{"square", Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, true},
		{"skewed quad", Contour{{100, 100}, {700, 150}, {680, 650}, {120, 600}}, true},
		{"arrowhead (concave)", Contour{{0, 0}, {10, 5}, {0, 10}, {4, 5}}, false},
		{"collinear only", Contour{{0, 0}, {5, 0}, {10, 0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsConvex(); got != tt.want {
				t.Errorf("IsConvex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContourBoundingSize(t *testing.T) {
	c := Contour{{10, 20}, {110, 25}, {105, 80}, {12, 75}}
	w, h := c.BoundingSize()
	if w != 100 || h != 60 {
		t.Errorf("BoundingSize() = %gx%g, want 100x60", w, h)
	}
}

func TestDist(t *testing.T) {
	if got := Dist(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Errorf("Dist() = %g, want 5", got)
	}
}
