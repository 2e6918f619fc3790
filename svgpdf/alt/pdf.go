// Alternative implementation of PDF path rendering (experimental),
// writing content stream operators directly through
// github.com/benoitkugler/pdf. Text is not supported yet: see the
// parent package for a full featured backend.
package alt

import (
	"image/color"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/benoitkugler/pdflayout/driver"
	"github.com/benoitkugler/pdflayout/svgpath"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var _ driver.PathCanvas = (*Canvas)(nil)

// Canvas writes path operators on one appearance stream.
// Fill and stroke opacities are installed as extended graphic
// states, cached so that repeated values share one state.
type Canvas struct {
	pdf *contentstream.Appearance

	// extent of the current path, used to resolve
	// objectBoundingBox gradients
	boundingBox svgpath.BoundingBox

	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState

	useNonZeroWinding bool
}

// NewCanvas returns a canvas writing to the given
// appearance stream.
func NewCanvas(cs *contentstream.Appearance) *Canvas {
	return &Canvas{
		pdf:                 cs,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

// RenderPathToPDF draws the given paths, already expressed in page
// space, into the named one page PDF file.
func RenderPathToPDF(paths []svgpath.Path, pdfName string) error {
	pdf := contentstream.NewAppearance(595.28, 841.89)
	canvas := NewCanvas(&pdf)
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, 841.89}},
	)
	for _, path := range paths {
		path.Draw(canvas, driver.Identity)
		canvas.Fill(true)
	}
	pdf.Ops(contentstream.OpRestore{})

	var doc model.Document
	var page model.PageObject
	pdf.ApplyToPageObject(&page, true)
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	return doc.WriteFile(pdfName, nil)
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (c *Canvas) Clear() {
	c.boundingBox.Clear()
}

func (c *Canvas) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	c.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
	c.boundingBox.Start(a)
}

func (c *Canvas) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	c.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
	c.boundingBox.Line(b)
}

func (c *Canvas) QuadBezier(b, q fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(q)
	c.pdf.Ops(contentstream.OpCurveTo1{X2: cx, Y2: cy, X3: x, Y3: y})
	c.boundingBox.QuadBezier(b, q)
}

func (c *Canvas) CubeBezier(b, q, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(q)
	x, y := fixedTof(d)
	c.pdf.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
	c.boundingBox.CubeBezier(b, q, d)
}

func (c *Canvas) Stop(closeLoop bool) {
	if closeLoop {
		c.pdf.Ops(contentstream.OpClosePath{})
	}
}

func (c *Canvas) SetFillColor(cl color.Color, opacity float64) {
	c.pdf.SetColorFill(cl)
	_, _, _, a := cl.RGBA()
	opacity *= float64(a) / 0xffff
	// cache the opacity states
	gs, ok := c.fillOpacityStates[opacity]
	if !ok {
		gs = &model.GraphicState{Ca: model.ObjFloat(opacity), BM: []model.Name{"Normal"}}
		c.fillOpacityStates[opacity] = gs
	}
	name := c.pdf.AddExtGState(gs)
	c.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (c *Canvas) SetStrokeColor(cl color.Color, opacity float64) {
	c.pdf.SetColorStroke(cl)
	_, _, _, a := cl.RGBA()
	opacity *= float64(a) / 0xffff
	gs, ok := c.strokeOpacityStates[opacity]
	if !ok {
		gs = &model.GraphicState{CA: model.ObjFloat(opacity), BM: []model.Name{"Normal"}}
		c.strokeOpacityStates[opacity] = gs
	}
	name := c.pdf.AddExtGState(gs)
	c.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (c *Canvas) SetLineWidth(w float64) {
	c.pdf.Ops(contentstream.OpSetLineWidth{W: w})
}

// SetStrokeOptions writes the dash, cap, join and miter
// parameters of the next stroke.
func (c *Canvas) SetStrokeOptions(dashes []float64, dashOffset float64,
	capStyle, joinStyle uint8, miterLimit float64) {
	c.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: dashes,
			Phase: dashOffset,
		}},
		contentstream.OpSetLineCap{Style: capStyle},
		contentstream.OpSetLineJoin{Style: joinStyle},
		contentstream.OpSetMiterLimit{Limit: miterLimit},
	)
}

func (c *Canvas) Fill(useNonZeroWinding bool) {
	if useNonZeroWinding {
		c.pdf.Ops(contentstream.OpFill{})
	} else {
		c.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (c *Canvas) Stroke() {
	c.pdf.Ops(contentstream.OpStroke{})
}
