// Implements a raster backend, by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/pdflayout/driver"
	"github.com/benoitkugler/pdflayout/shading"
	"github.com/benoitkugler/pdflayout/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ driver.PathCanvas = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// RasterPathsToImage fills the given paths, already expressed in
// image space, into a new image of the given size.
func RasterPathsToImage(paths []svgpath.Path, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	renderer.SetFillColor(color.RGBA{A: 255}, 1)
	for _, path := range paths {
		path.Draw(renderer, driver.Identity)
		renderer.Fill(true)
		renderer.Clear()
	}
	return img
}

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
}

func toRasterxGradient(grad shading.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case shading.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case shading.Radial6:
		points[0], points[1], points[2], points[3], points[4], _ = dir[0], dir[1], dir[2], dir[3], dir[4], dir[5] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, s := range grad.Stops {
		stops[i] = rasterx.GradStop{StopColor: s.StopColor, Offset: s.Offset, Opacity: s.Opacity}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   struct{ X, Y, W, H float64 }{grad.Bounds.X, grad.Bounds.Y, grad.Bounds.W, grad.Bounds.H},
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color against the extent of the current path
func setGradient(grad shading.Gradient, opacity float64, scanner rasterx.Scanner) {
	if grad.Units == shading.ObjectBoundingBox {
		fRect := scanner.GetPathExtent()
		mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
		mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
		grad.Bounds.X, grad.Bounds.Y = mnx, mny
		grad.Bounds.W, grad.Bounds.H = mxx-mnx, mxy-mny
	}
	rasterxGradient := toRasterxGradient(grad)
	scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
}

func (rd *Renderer) SetFillColor(c color.Color, opacity float64) {
	rd.filler.Scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

func (rd *Renderer) SetStrokeColor(c color.Color, opacity float64) {
	rd.dasher.Scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
}

// SetFillGradient uses the gradient to color the next Fill call,
// resolving objectBoundingBox units against the current path.
func (rd *Renderer) SetFillGradient(grad shading.Gradient, opacity float64) {
	setGradient(grad, opacity, rd.filler.Scanner)
}

// SetStrokeGradient uses the gradient to color the next
// Stroke call.
func (rd *Renderer) SetStrokeGradient(grad shading.Gradient, opacity float64) {
	setGradient(grad, opacity, rd.dasher.Scanner)
}

// SetLineWidth parametrizes the next stroke with round caps
// and joins.
func (rd *Renderer) SetLineWidth(w float64) {
	rd.dasher.SetStroke(
		fixed.Int26_6(w*64), 4<<6, rasterx.RoundCap, rasterx.RoundCap,
		rasterx.RoundGap, rasterx.Round, nil, 0,
	)
}

// SetStrokeOptions gives full control over the stroke parameters.
func (rd *Renderer) SetStrokeOptions(width, miterLimit fixed.Int26_6,
	capL, capT rasterx.CapFunc, gp rasterx.GapFunc, jm rasterx.JoinMode,
	dashes []float64, dashOffset float64) {
	rd.dasher.SetStroke(width, miterLimit, capL, capT, gp, jm, dashes, dashOffset)
}

func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.filler.Start(a)
	rd.dasher.Start(a)
}

func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.filler.Line(b)
	rd.dasher.Line(b)
}

func (rd *Renderer) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	rd.filler.QuadBezier(b, c)
	rd.dasher.QuadBezier(b, c)
}

func (rd *Renderer) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	rd.filler.CubeBezier(b, c, d)
	rd.dasher.CubeBezier(b, c, d)
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Fill(useNonZeroWinding bool) {
	rd.filler.SetWinding(useNonZeroWinding)
	rd.filler.Draw()
}

func (rd *Renderer) Stroke() {
	rd.dasher.Draw()
}
