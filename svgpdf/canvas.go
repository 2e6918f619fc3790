// Implements a PDF backend to render layout and SVG content,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"

	"github.com/benoitkugler/pdflayout/driver"
	"github.com/benoitkugler/pdflayout/svgpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var _ driver.Canvas = (*Canvas)(nil)

// Canvas draws on one page of a gofpdf document.
// Coordinates are in points, with the origin at the top left of
// the page and y growing down, matching SVG user space.
type Canvas struct {
	pdf *gofpdf.Fpdf

	// target page, selected before each operation; 0 means
	// the current page
	page int

	// extent of the current path, used to resolve
	// objectBoundingBox gradients
	boundingBox svgpath.BoundingBox

	hasContent bool
}

// NewCanvas returns a canvas drawing on the pdf page `page`
// (1 based, 0 for the current page).
func NewCanvas(pdf *gofpdf.Fpdf, page int) *Canvas {
	return &Canvas{pdf: pdf, page: page}
}

// HasContent reports whether at least one painting operation
// was issued on the canvas.
func (c *Canvas) HasContent() bool { return c.hasContent }

// PathExtent returns the bounding box of the last path,
// in points.
func (c *Canvas) PathExtent() (minX, minY, maxX, maxY float64) {
	return c.boundingBox.Rect()
}

func (c *Canvas) ensurePage() {
	if c.page != 0 && c.pdf.PageNo() != c.page {
		c.pdf.SetPage(c.page)
	}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (c *Canvas) Clear() {
	c.boundingBox.Clear()
}

func (c *Canvas) Start(a fixed.Point26_6) {
	c.ensurePage()
	c.pdf.MoveTo(fixedTof(a))
	c.boundingBox.Start(a)
}

func (c *Canvas) Line(b fixed.Point26_6) {
	c.pdf.LineTo(fixedTof(b))
	c.boundingBox.Line(b)
}

func (c *Canvas) QuadBezier(b, q fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(q)
	c.pdf.CurveTo(cx, cy, x, y)
	c.boundingBox.QuadBezier(b, q)
}

func (c *Canvas) CubeBezier(b, q, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(q)
	x, y := fixedTof(d)
	c.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	c.boundingBox.CubeBezier(b, q, d)
}

func (c *Canvas) Stop(closeLoop bool) {
	if closeLoop {
		c.pdf.ClosePath()
	}
}

func rgb(cl color.Color) (r, g, b int, alpha float64) {
	r16, g16, b16, a16 := cl.RGBA()
	return int(r16 >> 8), int(g16 >> 8), int(b16 >> 8), float64(a16) / 0xffff
}

func (c *Canvas) SetFillColor(cl color.Color, opacity float64) {
	c.ensurePage()
	r, g, b, alpha := rgb(cl)
	c.pdf.SetFillColor(r, g, b)
	c.pdf.SetTextColor(r, g, b)
	c.pdf.SetAlpha(opacity*alpha, "")
}

func (c *Canvas) SetStrokeColor(cl color.Color, opacity float64) {
	c.ensurePage()
	r, g, b, alpha := rgb(cl)
	c.pdf.SetDrawColor(r, g, b)
	c.pdf.SetAlpha(opacity*alpha, "")
}

func (c *Canvas) SetLineWidth(w float64) {
	c.ensurePage()
	c.pdf.SetLineWidth(w)
}

func (c *Canvas) Fill(useNonZeroWinding bool) {
	c.ensurePage()
	styleStr := "f*"
	if useNonZeroWinding {
		styleStr = "f"
	}
	c.pdf.DrawPath(styleStr)
	c.hasContent = true
}

func (c *Canvas) Stroke() {
	c.ensurePage()
	c.pdf.DrawPath("D")
	c.hasContent = true
}

// DrawTextChunk shows the runs of one chunk. The pen of a run is
// anchor.Apply(run.Dx, -run.Dy), which lands in the page space
// described above; (x, y) is the left end of the baseline.
// gofpdf offers no control over the text rendering mode, so
// stroked text falls back to filling with the stroke color.
func (c *Canvas) DrawTextChunk(anchor driver.Matrix2D, runs []driver.TextRun) error {
	c.ensurePage()
	for _, run := range runs {
		family, style := run.Font.Name(), ""
		if f, ok := run.Font.(coreFont); ok {
			family, style = f.Family(), f.Style()
		}
		c.pdf.SetFont(family, style, run.Size)
		x, y := anchor.Apply(run.Dx, -run.Dy)
		c.pdf.Text(x, y, run.Text)
	}
	if len(runs) != 0 {
		c.hasContent = true
	}
	return c.pdf.Error()
}
