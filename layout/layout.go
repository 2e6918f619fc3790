// Package layout paginates a stream of laid out content onto
// fixed size pages: it owns page creation, the content flushing
// order, and the protection of already flushed pages.
// The concrete page surface is abstracted by the Document and
// Page interfaces, implemented by painting backends
// (see the svgpdf package).
package layout

import (
	"fmt"

	"github.com/benoitkugler/pdflayout/driver"
)

// Size is a page size, in points.
type Size struct {
	W, H float64
}

// Margins are the four page margins, in points.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// Area is the target of the next unit of layout content:
// a page number (1 based) and the writable rectangle on it.
type Area struct {
	PageNumber int
	Rect       driver.Rect
}

// AreaBreak asks for a new content area: on a page of a specific
// size, or on the last page of the document.
type AreaBreak struct {
	// PageSize overrides the document default for pages
	// created by this break.
	PageSize *Size
	// MoveToLastPage advances through every existing page
	// instead of advancing by one.
	MoveToLastPage bool
}

// Page is one concrete page surface.
type Page interface {
	// TrimBox returns the visible page rectangle, in points.
	TrimBox() driver.Rect

	// IsFlushed reports whether the page has been finalized.
	// A flushed page may not receive further draw operations.
	IsFlushed() bool

	// Flush finalizes the page.
	Flush() error

	// HasContent reports whether the page already carries
	// a nonempty content stream.
	HasContent() bool

	// WrapContent isolates the existing content stream, so that
	// appended operations do not inherit its graphics state.
	WrapContent()

	// Canvas returns the drawing surface of the page.
	Canvas() driver.Canvas
}

// Document is the page collaborator of the pagination engine.
type Document interface {
	// NumPages returns the current page count.
	NumPages() int

	// Page returns the n-th page, 1 based.
	Page(n int) (Page, error)

	// AddPage appends a page of the given size.
	AddPage(size Size) Page

	// DefaultPageSize returns the size used when an area break
	// does not override it.
	DefaultPageSize() Size

	// IsIncrementalUpdate reports whether the document is an
	// existing file opened for both reading and writing, whose
	// prior content must be preserved.
	IsIncrementalUpdate() bool
}

// Tagger is the optional accessibility collaborator.
type Tagger interface {
	// ReleaseFinishedHints drops the cross reference hints
	// whose content has been fully processed.
	ReleaseFinishedHints()

	// SetPageForTagging points the tagging cursor at a page.
	SetPageForTagging(pageNumber int)
}

// DrawContext binds one draw call to its target page.
type DrawContext struct {
	PageNumber int
	Page       Page
	Canvas     driver.Canvas
}

// ContentRenderer is one fully laid out unit of content.
type ContentRenderer interface {
	// OccupiedArea returns the placement of the content,
	// or nil if it has none.
	OccupiedArea() *Area

	// HasPendingTransform reports whether the content waits for a
	// transform to be applied before it can be drawn.
	HasPendingTransform() bool

	// IsFloating reports whether the content belongs to a
	// floating layout flow.
	IsFloating() bool

	// Draw renders the content on the given page.
	Draw(ctx DrawContext) error
}

// IllegalPageStateError reports an attempted draw onto a page
// already flushed. It signals a pagination ordering bug upstream
// and is never recovered from.
type IllegalPageStateError struct {
	PageNumber int
}

func (e IllegalPageStateError) Error() string {
	return fmt.Sprintf("page %d is already flushed and may not receive content", e.PageNumber)
}

// Options configures a pagination pass.
type Options struct {
	Margins Margins

	// ImmediateFlush finalizes each page as soon as the layout
	// has moved past it: when the area advances to page k+1,
	// page k-1 is flushed. The page being laid out is never
	// flushed, since reflow may still add content to it.
	ImmediateFlush bool
}

// Renderer is the pagination engine of one document session.
// It is not safe for concurrent use.
type Renderer struct {
	doc    Document
	tagger Tagger // optional
	opts   Options

	currentPage int // 0 before the first advance
	currentArea *Area

	// size of the last page created by an area break
	lastPageSize Size

	// pages whose prior content has been wrapped; a page enters
	// this set at most once
	wrapped map[int]bool

	// content whose drawing is deferred (floats, transforms)
	waiting []ContentRenderer

	// page ownership of delivered content
	owners map[ContentRenderer]int
}

// NewRenderer returns a pagination engine over the document.
// tagger may be nil.
func NewRenderer(doc Document, tagger Tagger, opts Options) *Renderer {
	return &Renderer{
		doc:          doc,
		tagger:       tagger,
		opts:         opts,
		lastPageSize: doc.DefaultPageSize(),
		wrapped:      map[int]bool{},
		owners:       map[ContentRenderer]int{},
	}
}

// CurrentArea returns the area of the last advance, or nil
// before the first one.
func (r *Renderer) CurrentArea() *Area { return r.currentArea }

// LastPageSize returns the size of the last page created.
func (r *Renderer) LastPageSize() Size { return r.lastPageSize }

// PageOf returns the page number a delivered content unit was
// associated with, or 0 for unknown content.
func (r *Renderer) PageOf(content ContentRenderer) int { return r.owners[content] }

// AdvanceToNextArea moves the layout to the next writable area.
// overflow may request a specific page size, or a jump to the
// last existing page; nil advances by one page of the default size.
func (r *Renderer) AdvanceToNextArea(overflow *AreaBreak) (Area, error) {
	// deferred content first, so that it lands before its page
	// may be flushed below
	if err := r.FlushWaiting(); err != nil {
		return Area{}, err
	}
	if r.tagger != nil {
		r.tagger.ReleaseFinishedHints()
	}

	if overflow != nil && overflow.MoveToLastPage {
		for r.currentPage < r.doc.NumPages() {
			if err := r.possiblyFlushPrevious(); err != nil {
				return Area{}, err
			}
			r.currentPage++
		}
		if r.currentPage == 0 {
			r.currentPage = 1
		}
	} else {
		if err := r.possiblyFlushPrevious(); err != nil {
			return Area{}, err
		}
		r.currentPage++
	}

	// skip pages flushed by an external caller
	for r.currentPage <= r.doc.NumPages() {
		page, err := r.doc.Page(r.currentPage)
		if err != nil {
			return Area{}, err
		}
		if !page.IsFlushed() {
			break
		}
		r.currentPage++
	}

	var page Page
	for r.doc.NumPages() < r.currentPage {
		size := r.doc.DefaultPageSize()
		if overflow != nil && overflow.PageSize != nil {
			size = *overflow.PageSize
		}
		page = r.doc.AddPage(size)
		r.lastPageSize = size
	}
	if page == nil {
		var err error
		page, err = r.doc.Page(r.currentPage)
		if err != nil {
			return Area{}, err
		}
	}

	r.currentArea = &Area{
		PageNumber: r.currentPage,
		Rect:       insetByMargins(page.TrimBox(), r.opts.Margins),
	}
	return *r.currentArea, nil
}

// possiblyFlushPrevious finalizes the page before the current one.
// The current page is spared: out of order content (keep together
// reflow) may still target it.
func (r *Renderer) possiblyFlushPrevious() error {
	if !r.opts.ImmediateFlush || r.currentPage <= 1 {
		return nil
	}
	page, err := r.doc.Page(r.currentPage - 1)
	if err != nil {
		return err
	}
	if page.IsFlushed() {
		return nil
	}
	return page.Flush()
}

// DeliverFinishedContent commits one laid out content unit to its
// target page. Content waiting on a transform, or belonging to a
// floating flow, is queued and drawn later by FlushWaiting.
// Targeting an already flushed page fails with
// IllegalPageStateError, with no partial draw.
func (r *Renderer) DeliverFinishedContent(content ContentRenderer) error {
	area := content.OccupiedArea()
	if area != nil {
		r.owners[content] = area.PageNumber
	}

	if content.HasPendingTransform() || content.IsFloating() {
		if !r.isWaiting(content) {
			r.waiting = append(r.waiting, content)
		}
		return nil
	}
	return r.drawContent(content)
}

// FlushWaiting draws the deferred content, in delivery order,
// and empties the queue.
func (r *Renderer) FlushWaiting() error {
	waiting := r.waiting
	r.waiting = nil
	for _, content := range waiting {
		if err := r.drawContent(content); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) isWaiting(content ContentRenderer) bool {
	for _, w := range r.waiting {
		if w == content {
			return true
		}
	}
	return false
}

func (r *Renderer) drawContent(content ContentRenderer) error {
	area := content.OccupiedArea()
	if area == nil {
		return nil
	}
	target := area.PageNumber
	for r.doc.NumPages() < target {
		r.doc.AddPage(r.doc.DefaultPageSize())
	}
	page, err := r.doc.Page(target)
	if err != nil {
		return err
	}
	if page.IsFlushed() {
		return IllegalPageStateError{PageNumber: target}
	}
	// incremental updates must not inherit the graphics state of
	// the preexisting content stream
	if page.HasContent() && r.doc.IsIncrementalUpdate() && !r.wrapped[target] {
		page.WrapContent()
		r.wrapped[target] = true
	}
	if r.tagger != nil {
		r.tagger.SetPageForTagging(target)
	}
	return content.Draw(DrawContext{
		PageNumber: target,
		Page:       page,
		Canvas:     page.Canvas(),
	})
}

func insetByMargins(trim driver.Rect, m Margins) driver.Rect {
	return driver.Rect{
		X: trim.X + m.Left,
		Y: trim.Y + m.Top,
		W: trim.W - m.Left - m.Right,
		H: trim.H - m.Top - m.Bottom,
	}
}
