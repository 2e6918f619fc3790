package driver

import (
	"math"
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestMatrixCompose(t *testing.T) {
	m := FlipY.Translate(50, -30)
	x, y := m.Apply(0, 0)
	if x != 50 || y != 30 {
		t.Fatalf("unexpected anchor: %v %v", x, y)
	}
	x, y = m.Apply(10, -5)
	if x != 60 || y != 35 {
		t.Fatalf("unexpected point: %v %v", x, y)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Identity.Rotate(math.Pi / 2)
	x, y := m.Apply(1, 0)
	if math.Abs(x) > 1e-9 || math.Abs(y-1) > 1e-9 {
		t.Fatalf("unexpected rotation: %v %v", x, y)
	}
}

func TestTrPoint(t *testing.T) {
	m := Identity.Scale(2, 3)
	p := m.TrPoint(fixed.Point26_6{X: 64, Y: 64})
	if p.X != 128 || p.Y != 192 {
		t.Fatalf("unexpected point: %v", p)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: 5, W: 20, H: 2}
	u := a.Union(b)
	if u != (Rect{X: 0, Y: 0, W: 25, H: 10}) {
		t.Fatalf("unexpected union: %v", u)
	}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("empty rectangles must be ignored, got %v", got)
	}
}
