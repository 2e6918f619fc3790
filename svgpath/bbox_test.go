package svgpath

import (
	"math/rand"
	"testing"

	"golang.org/x/image/math/fixed"
)

func randPoint(offsetx, offsety int) fixed.Point26_6 {
	x, y := rand.Intn(1100), rand.Intn(1000)
	return fixed.Point26_6{X: fixed.Int26_6(x + offsetx), Y: fixed.Int26_6(y + offsety)}
}

func TestBoundingBoxLine(t *testing.T) {
	var bb BoundingBox
	bb.Start(toFixedP(10, 10))
	bb.Line(toFixedP(50, 30))
	minX, minY, maxX, maxY := bb.Rect()
	if minX != 10 || minY != 10 || maxX != 50 || maxY != 30 {
		t.Fatalf("unexpected box: %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestBoundingBoxContainsEndPoints(t *testing.T) {
	for i := 0; i < 50; i++ {
		var bb BoundingBox
		a, b, c, d := randPoint(40, 40), randPoint(40, 40), randPoint(40, 40), randPoint(40, 40)
		bb.Start(a)
		bb.Line(b)
		bb.QuadBezier(c, d)
		box := bb.BBox
		for _, p := range []fixed.Point26_6{a, b, d} {
			if p.X < box.Min.X || p.X > box.Max.X || p.Y < box.Min.Y || p.Y > box.Max.Y {
				t.Fatalf("point %v outside box %v", p, box)
			}
		}
	}
}

func TestBoundingBoxCubic(t *testing.T) {
	var bb BoundingBox
	bb.Start(toFixedP(0, 0))
	// symmetric control points: the curve peaks at 3/4 of
	// the control offset
	bb.CubeBezier(toFixedP(0, 40), toFixedP(40, 40), toFixedP(40, 0))
	_, _, _, maxY := bb.Rect()
	if maxY < 29 || maxY > 31 {
		t.Fatalf("unexpected curve extent: %v", maxY)
	}
}
