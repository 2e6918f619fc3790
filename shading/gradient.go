package shading

import (
	"image/color"

	"github.com/benoitkugler/pdflayout/driver"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds parameter constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    driver.Rect
	Matrix    driver.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial6 [6]float64

func (Radial6) isRadial() bool { return true }

// ApplyPathExtent resolves objectBoundingBox units against the
// bounding box of the shape being painted, expressed in fixed point.
// The returned gradient uses user space coordinates.
func (g Gradient) ApplyPathExtent(minX, minY, maxX, maxY float64) Gradient {
	if g.Units != ObjectBoundingBox {
		return g
	}
	w, h := maxX-minX, maxY-minY
	out := g
	out.Units = UserSpaceOnUse
	switch dir := g.Direction.(type) {
	case Linear:
		out.Direction = Linear{
			minX + dir[0]*w, minY + dir[1]*h,
			minX + dir[2]*w, minY + dir[3]*h,
		}
	case Radial6:
		// radii scale with the width; this matches a square
		// bounding box, the common case for icon shapes
		out.Direction = Radial6{
			minX + dir[0]*w, minY + dir[1]*h,
			minX + dir[2]*w, minY + dir[3]*h,
			dir[4] * w, dir[5] * w,
		}
	}
	return out
}

func colorComponents(c color.Color, opacity float64) []float64 {
	r, g, b, _ := c.RGBA()
	_ = opacity // alpha is handled by the graphic state, not the shading
	return []float64{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
}

// stopsFunction reduces the stop list to a single PDF function:
// one interpolation function for two stops, a stitching function
// otherwise.
func stopsFunction(stops []GradStop) Dict {
	if len(stops) == 0 {
		return interpolationFunction([]float64{0, 0, 0}, []float64{0, 0, 0})
	}
	if len(stops) == 1 {
		c := colorComponents(stops[0].StopColor, stops[0].Opacity)
		return interpolationFunction(c, c)
	}
	if len(stops) == 2 {
		return interpolationFunction(
			colorComponents(stops[0].StopColor, stops[0].Opacity),
			colorComponents(stops[1].StopColor, stops[1].Opacity))
	}
	var (
		functions []Dict
		bounds    []float64
		encode    []float64
	)
	for i := 0; i < len(stops)-1; i++ {
		functions = append(functions, interpolationFunction(
			colorComponents(stops[i].StopColor, stops[i].Opacity),
			colorComponents(stops[i+1].StopColor, stops[i+1].Opacity)))
		encode = append(encode, 0, 1)
		if i != 0 {
			bounds = append(bounds, stops[i].Offset)
		}
	}
	return stitchingFunction(functions, bounds, encode)
}

// extend maps the SVG spread method to the PDF Extend entry:
// only pad has a direct equivalent.
func (g Gradient) extend() [2]bool {
	return [2]bool{g.Spread == PadSpread, g.Spread == PadSpread}
}

// ToShading converts the gradient to the matching PDF shading,
// in DeviceRGB. objectBoundingBox units must have been resolved
// first (see ApplyPathExtent); the gradient transform is not
// included and should be applied by the pattern matrix.
func (g Gradient) ToShading() Shading {
	base := Base{ColorSpace: "DeviceRGB"}
	fn := stopsFunction(g.Stops)
	switch dir := g.Direction.(type) {
	case Radial6:
		return Radial{
			Base: base,
			X0:   dir[2], Y0: dir[3], R0: dir[5],
			X1: dir[0], Y1: dir[1], R1: dir[4],
			Function: fn,
			Extend:   g.extend(),
		}
	case Linear:
		return Axial{
			Base: base,
			X0:   dir[0], Y0: dir[1], X1: dir[2], Y1: dir[3],
			Function: fn,
			Extend:   g.extend(),
		}
	default:
		return Axial{Base: base, Function: fn, Extend: g.extend()}
	}
}
