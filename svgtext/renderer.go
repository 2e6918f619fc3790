// Package svgtext resolves SVG text and tspan trees into
// absolutely placed text runs: relative moves (dx, dy), absolute
// position overrides (x, y) and text-anchor alignment are applied,
// and the placed runs are accumulated into chunks sharing one
// anchor transform, sent as a unit to the backend.
package svgtext

import (
	"strings"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
)

// NodeKind tags the two concrete renderers of a text tree.
type NodeKind uint8

const (
	// BranchNode is a text or tspan element, owning children.
	BranchNode NodeKind = iota
	// LeafNode is a raw piece of character data.
	LeafNode
)

// Renderer is one node of a text tree.
type Renderer interface {
	// Kind tags the concrete type.
	Kind() NodeKind

	// TextLength returns the advance of the node's content,
	// measured with the current font and size of the context.
	TextLength(ctx *DrawContext) (float64, error)

	// TextRectangle accumulates the bounding rectangle of the node,
	// propagating the running base point, and returns the rectangle
	// and the final baseline right point.
	TextRectangle(ctx *DrawContext, base driver.Point) (driver.Rect, driver.Point, error)

	// draw places the node's content in the current chunk,
	// mutating the running offsets of the context.
	draw(ctx *DrawContext) error

	setParent(p *BranchRenderer)
}

// BranchRenderer is a text or tspan element. Position attributes
// are resolved lazily, at most once per drawing pass.
type BranchRenderer struct {
	attrs    map[string]string
	children []Renderer
	parent   *BranchRenderer // nil on the root

	// memoized resolution of the dx/dy attributes
	moveResolved bool
	dx, dy       float64

	// memoized resolution of the x/y attribute lists
	posResolved bool
	xPos, yPos  []float64

	whitespaceCollapsed bool

	// live chunk, only on the root of the tree
	chunk *textChunk
}

// NewBranchRenderer returns a branch with the given attributes.
// A nil map is treated as empty.
func NewBranchRenderer(attrs map[string]string) *BranchRenderer {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &BranchRenderer{attrs: attrs}
}

// AddChild appends a child node, taking ownership.
func (b *BranchRenderer) AddChild(child Renderer) {
	child.setParent(b)
	b.children = append(b.children, child)
}

// Children returns the ordered child nodes.
func (b *BranchRenderer) Children() []Renderer { return b.children }

func (b *BranchRenderer) Kind() NodeKind { return BranchNode }

func (b *BranchRenderer) setParent(p *BranchRenderer) { b.parent = p }

// root walks the parent chain up to the root-most branch,
// the only node owning the live chunk.
func (b *BranchRenderer) root() *BranchRenderer {
	r := b
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// RelativeTranslation resolves the dx and dy attributes to lengths.
// Only the first value of a list is taken. The resolution runs once
// and is cached on the node.
func (b *BranchRenderer) RelativeTranslation(ctx *DrawContext) (dx, dy float64, err error) {
	if b.moveResolved {
		return b.dx, b.dy, nil
	}
	em := ctx.fontSize
	if em == 0 {
		em = css.DefaultFontSize
	}
	if v, has := b.attrs["dx"]; has {
		if fields := css.SplitValues(v); len(fields) != 0 {
			b.dx, err = ctx.CSS.ParseLength(fields[0], css.Horizontal, em)
			if err != nil {
				return 0, 0, err
			}
		}
	}
	if v, has := b.attrs["dy"]; has {
		if fields := css.SplitValues(v); len(fields) != 0 {
			b.dy, err = ctx.CSS.ParseLength(fields[0], css.Vertical, em)
			if err != nil {
				return 0, 0, err
			}
		}
	}
	b.moveResolved = true
	return b.dx, b.dy, nil
}

// ContainsAbsolutePositionChange resolves the x and y attribute
// lists and reports whether at least one axis has an explicit
// value. The resolution runs once and is cached on the node.
func (b *BranchRenderer) ContainsAbsolutePositionChange(ctx *DrawContext) (bool, error) {
	if b.posResolved {
		return len(b.xPos) != 0 || len(b.yPos) != 0, nil
	}
	em := ctx.fontSize
	if em == 0 {
		em = css.DefaultFontSize
	}
	var err error
	if v, has := b.attrs["x"]; has {
		b.xPos, err = ctx.CSS.ParseLengthList(v, css.Horizontal, em)
		if err != nil {
			return false, err
		}
	}
	if v, has := b.attrs["y"]; has {
		b.yPos, err = ctx.CSS.ParseLengthList(v, css.Vertical, em)
		if err != nil {
			return false, err
		}
	}
	b.posResolved = true
	return len(b.xPos) != 0 || len(b.yPos) != 0, nil
}

// TextLength sums the advances of the children.
func (b *BranchRenderer) TextLength(ctx *DrawContext) (float64, error) {
	var total float64
	for _, child := range b.children {
		l, err := child.TextLength(ctx)
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total, nil
}

// TextRectangle computes the bounding rectangle of the subtree.
// The base point is moved by the node's resolved position and
// translation, then propagated through the children in order.
// The root uses its own resolved x as the line origin rather
// than the left edge of the union.
func (b *BranchRenderer) TextRectangle(ctx *DrawContext, base driver.Point) (driver.Rect, driver.Point, error) {
	if err := b.resolveFont(ctx); err != nil {
		return driver.Rect{}, base, err
	}
	if _, err := b.ContainsAbsolutePositionChange(ctx); err != nil {
		return driver.Rect{}, base, err
	}
	if len(b.xPos) != 0 {
		base.X = b.xPos[0]
	}
	if len(b.yPos) != 0 {
		base.Y = b.yPos[0]
	}
	dx, dy, err := b.RelativeTranslation(ctx)
	if err != nil {
		return driver.Rect{}, base, err
	}
	base.X += dx
	base.Y += dy

	isRoot := b.parent == nil
	rootX := base.X

	var (
		out   driver.Rect
		first = true
	)
	for _, child := range b.children {
		rect, next, err := child.TextRectangle(ctx, base)
		if err != nil {
			return driver.Rect{}, base, err
		}
		if first {
			out, first = rect, false
		} else {
			out = out.Union(rect)
		}
		base = next
	}
	if isRoot && !first {
		// the root establishes the line origin
		out.W = out.X + out.W - rootX
		out.X = rootX
	}
	return out, base, nil
}

// Draw renders the whole subtree on the context canvas.
// It is meant to be called on the root of a text tree.
func (b *BranchRenderer) Draw(ctx *DrawContext) error {
	if len(b.children) == 0 || len(b.attrs) == 0 {
		return nil
	}
	if !b.whitespaceCollapsed {
		b.collapseWhitespace(true)
		b.whitespaceCollapsed = true
	}
	b.resolveTextMode(ctx)
	if err := b.resolveFont(ctx); err != nil {
		return err
	}
	root := b.root()
	root.chunk = newTextChunk(ctx, ctx.moveX, ctx.moveY)
	if err := b.performDrawing(ctx); err != nil {
		return err
	}
	return b.drawLastChunk(ctx)
}

// performDrawing walks the children depth first, maintaining the
// shared running pen of the context.
func (b *BranchRenderer) performDrawing(ctx *DrawContext) error {
	if err := b.resolveFont(ctx); err != nil {
		return err
	}
	b.resolveTextMode(ctx)

	hasAbsolute, err := b.ContainsAbsolutePositionChange(ctx)
	if err != nil {
		return err
	}
	if hasAbsolute {
		// an absolute position breaks the chunk on the axis it
		// specifies; the other axis continues the running line
		x, y := ctx.moveX, ctx.moveY
		if len(b.xPos) != 0 {
			x = b.xPos[0]
		}
		if len(b.yPos) != 0 {
			y = b.yPos[0]
		}
		if err := b.drawLastChunk(ctx); err != nil {
			return err
		}
		b.startNewChunk(ctx, x, y)
		ctx.moveX, ctx.moveY = x, y
	}

	dx, dy, err := b.RelativeTranslation(ctx)
	if err != nil {
		return err
	}
	if dx != 0 || dy != 0 {
		ctx.moveX += dx
		ctx.moveY += dy
	}

	anchor := strings.TrimSpace(b.attrs["text-anchor"])
	for _, child := range b.children {
		// a branch child advances the shared pen itself, through
		// its own leaves; counting its length here would move
		// the pen twice
		var length float64
		if leaf, ok := child.(*LeafRenderer); ok {
			var err error
			length, err = leaf.TextLength(ctx)
			if err != nil {
				return err
			}
		}
		// anchor correction only applies under an explicit x
		if len(b.xPos) != 0 {
			switch anchor {
			case "middle":
				ctx.moveX -= length / 2
			case "end":
				ctx.moveX -= length
			}
		}
		if err := child.draw(ctx); err != nil {
			return err
		}
		// siblings continue from the right edge
		ctx.moveX += length
	}
	return nil
}

func (b *BranchRenderer) draw(ctx *DrawContext) error {
	// restore the enclosing font state once done, so that a tspan
	// font does not leak to its siblings
	font, size, mode := ctx.font, ctx.fontSize, ctx.mode
	err := b.performDrawing(ctx)
	ctx.font, ctx.fontSize, ctx.mode = font, size, mode
	return err
}

// addRun delegates up the parent chain: only the root owns the
// live chunk and may talk to the canvas.
func (b *BranchRenderer) addRun(ctx *DrawContext, text string) {
	root := b.root()
	if root.chunk == nil {
		root.chunk = newTextChunk(ctx, ctx.moveX, ctx.moveY)
	}
	root.chunk.add(ctx, text)
}

func (b *BranchRenderer) drawLastChunk(ctx *DrawContext) error {
	root := b.root()
	if root.chunk == nil {
		return nil
	}
	return root.chunk.flush(ctx)
}

func (b *BranchRenderer) startNewChunk(ctx *DrawContext, x, y float64) {
	b.root().chunk = newTextChunk(ctx, x, y)
}

// collapseWhitespace folds runs of whitespace in the leaves to
// single spaces, dropping leading whitespace at the start of the
// tree and trailing whitespace at its end. It runs once per tree.
func (b *BranchRenderer) collapseWhitespace(atStart bool) bool {
	for _, child := range b.children {
		switch child := child.(type) {
		case *LeafRenderer:
			child.text = collapseSpaces(child.text, atStart)
			if child.text != "" {
				atStart = false
			}
		case *BranchRenderer:
			atStart = child.collapseWhitespace(atStart)
			child.whitespaceCollapsed = true
		}
	}
	if b.parent == nil {
		b.trimTrailing()
	}
	return atStart
}

// trimTrailing removes the whitespace ending the last non empty leaf.
func (b *BranchRenderer) trimTrailing() {
	for i := len(b.children) - 1; i >= 0; i-- {
		switch child := b.children[i].(type) {
		case *LeafRenderer:
			child.text = strings.TrimRight(child.text, " ")
			if child.text != "" {
				return
			}
		case *BranchRenderer:
			child.trimTrailing()
			return
		}
	}
}

func collapseSpaces(s string, atStart bool) string {
	var (
		out     strings.Builder
		inSpace = false
	)
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace && !(atStart && out.Len() == 0) {
			out.WriteByte(' ')
		}
		inSpace = false
		out.WriteRune(r)
	}
	if inSpace && out.Len() != 0 {
		out.WriteByte(' ')
	}
	return out.String()
}

// LeafRenderer is a raw piece of character data inside a text
// or tspan element.
type LeafRenderer struct {
	text   string
	parent *BranchRenderer
}

// NewLeafRenderer returns a leaf holding the given text.
func NewLeafRenderer(text string) *LeafRenderer {
	return &LeafRenderer{text: text}
}

// Text returns the (possibly collapsed) content of the leaf.
func (l *LeafRenderer) Text() string { return l.text }

func (l *LeafRenderer) Kind() NodeKind { return LeafNode }

func (l *LeafRenderer) setParent(p *BranchRenderer) { l.parent = p }

func (l *LeafRenderer) TextLength(ctx *DrawContext) (float64, error) {
	if l.text == "" || ctx.font == nil {
		return 0, nil
	}
	return ctx.font.Width(l.text, ctx.fontSize), nil
}

func (l *LeafRenderer) TextRectangle(ctx *DrawContext, base driver.Point) (driver.Rect, driver.Point, error) {
	length, err := l.TextLength(ctx)
	if err != nil {
		return driver.Rect{}, base, err
	}
	// the rectangle spans from the ascent to the descent,
	// approximated from the font size
	rect := driver.Rect{
		X: base.X,
		Y: base.Y - 0.75*ctx.fontSize,
		W: length,
		H: ctx.fontSize,
	}
	return rect, driver.Point{X: base.X + length, Y: base.Y}, nil
}

func (l *LeafRenderer) draw(ctx *DrawContext) error {
	if l.text == "" {
		return nil
	}
	if l.parent != nil {
		l.parent.addRun(ctx, l.text)
	}
	return nil
}
