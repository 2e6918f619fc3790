package driver

// Point is a position in user units.
type Point struct {
	X, Y float64
}

// Rect defines an axis aligned rectangle, such as a viewport,
// a page trim box or a path extent.
type Rect struct {
	X, Y, W, H float64
}

// Union returns the smallest rectangle containing r and other.
// An empty rectangle (zero width and height) is ignored.
func (r Rect) Union(other Rect) Rect {
	if other.W == 0 && other.H == 0 {
		return r
	}
	if r.W == 0 && r.H == 0 {
		return other
	}
	minX, minY := r.X, r.Y
	if other.X < minX {
		minX = other.X
	}
	if other.Y < minY {
		minY = other.Y
	}
	maxX, maxY := r.X+r.W, r.Y+r.H
	if x := other.X + other.W; x > maxX {
		maxX = x
	}
	if y := other.Y + other.H; y > maxY {
		maxY = y
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
