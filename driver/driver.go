// Defines the interfaces between the layout and SVG cores
// and the concrete painting backends.
// A backend wraps an actual output library,
// such as a PDF writer or a rasterizer to output .png images.
package driver

import (
	"image/color"

	"golang.org/x/image/math/fixed"
)

// PathCanvas knows how to do the actual path draw operations,
// but doesn't need any SVG or layout knowledge.
// In particular, transformation matrices are already applied to the points
// before sending them to the canvas.
type PathCanvas interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new subpath at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetFillColor sets the color used by the next Fill call.
	SetFillColor(c color.Color, opacity float64)

	// SetStrokeColor sets the color used by the next Stroke call.
	SetStrokeColor(c color.Color, opacity float64)

	// SetLineWidth parametrizes the stroking of the current path.
	SetLineWidth(w float64)

	// Fill fills the accumulated path,
	// with the non zero winding rule or the even-odd rule.
	Fill(useNonZeroWinding bool)

	// Stroke strokes the accumulated path.
	Stroke()
}

// TextMode selects which of the fill and stroke
// painting operations apply to shown text.
type TextMode uint8

const (
	FillText TextMode = iota
	StrokeText
	FillThenStrokeText
)

// TextRun is one placed piece of text inside a chunk.
// Dx and Dy are offsets from the chunk anchor, in user units,
// with Dy growing down the page.
type TextRun struct {
	Font Font
	Text string
	Size float64
	Mode TextMode
	Dx   float64
	Dy   float64
}

// TextCanvas draws accumulated text chunks.
// The pen position of a run is anchor.Apply(run.Dx, -run.Dy).
type TextCanvas interface {
	// DrawTextChunk shows all the runs of one chunk,
	// sharing the anchor transform.
	DrawTextChunk(anchor Matrix2D, runs []TextRun) error
}

// Canvas groups the path and text operations, as exposed
// by a full featured backend (see the svgpdf package).
type Canvas interface {
	PathCanvas
	TextCanvas
}
