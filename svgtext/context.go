package svgtext

import (
	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
)

// DrawContext carries the shared state of one drawing pass over a
// text tree. The running offsets are mutated in place as the tree
// is walked depth first, left to right.
type DrawContext struct {
	Canvas driver.TextCanvas

	// Fonts resolves font characteristics to concrete fonts.
	Fonts driver.FontProvider
	// TempFonts, when not nil, is consulted before Fonts. It holds
	// fonts declared by the stream being processed (@font-face).
	TempFonts driver.FontProvider

	// CSS resolves lengths (the root font size, the viewport).
	CSS *css.Context

	// Transform maps user space to the output surface. It defaults
	// to a vertical flip, matching a PDF page with its origin at
	// the bottom left.
	Transform driver.Matrix2D

	// running pen position, in user space
	moveX, moveY float64

	// current font state, established by the enclosing branch
	font     driver.Font
	fontSize float64
	mode     driver.TextMode
}

// NewDrawContext returns a context drawing on canvas with the
// default vertical flip transform.
func NewDrawContext(canvas driver.TextCanvas, fonts driver.FontProvider, cssCtx *css.Context) *DrawContext {
	return &DrawContext{
		Canvas:    canvas,
		Fonts:     fonts,
		CSS:       cssCtx,
		Transform: driver.FlipY,
	}
}

// Pen returns the running pen position, in user space.
func (ctx *DrawContext) Pen() (x, y float64) { return ctx.moveX, ctx.moveY }

// textChunk accumulates the runs sharing one anchor transform.
// A chunk is opened when drawing starts or when an absolute
// position is seen, and flushed as one unit.
type textChunk struct {
	anchor driver.Matrix2D
	// user space position the anchor was derived from; run offsets
	// are expressed relative to it
	originX, originY float64
	runs             []driver.TextRun
}

func newTextChunk(ctx *DrawContext, x, y float64) *textChunk {
	return &textChunk{
		anchor:  ctx.Transform.Translate(x, -y),
		originX: x,
		originY: y,
	}
}

func (c *textChunk) add(ctx *DrawContext, text string) {
	c.runs = append(c.runs, driver.TextRun{
		Font: ctx.font,
		Text: text,
		Size: ctx.fontSize,
		Mode: ctx.mode,
		Dx:   ctx.moveX - c.originX,
		Dy:   ctx.moveY - c.originY,
	})
}

// flush draws the accumulated runs and empties the chunk.
func (c *textChunk) flush(ctx *DrawContext) error {
	if len(c.runs) == 0 {
		return nil
	}
	err := ctx.Canvas.DrawTextChunk(c.anchor, c.runs)
	c.runs = nil
	return err
}
