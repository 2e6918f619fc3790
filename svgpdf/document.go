package svgpdf

import (
	"fmt"
	"io"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
	"github.com/benoitkugler/pdflayout/layout"
	"github.com/benoitkugler/pdflayout/svgtext"
	"github.com/jung-kurt/gofpdf"
)

// assert interface conformance
var (
	_ layout.Document = (*Document)(nil)
	_ layout.Page     = (*Page)(nil)
)

// Document implements the pagination collaborator over a
// gofpdf document.
type Document struct {
	pdf         *gofpdf.Fpdf
	pages       []*Page
	defaultSize layout.Size
}

// NewDocument returns an empty document. Pages are added on
// demand by the pagination engine, with `defaultSize` (in points)
// when no area break overrides it.
func NewDocument(defaultSize layout.Size) *Document {
	pdf := gofpdf.New("P", "pt", "A4", "")
	return &Document{pdf: pdf, defaultSize: defaultSize}
}

// Pdf exposes the underlying gofpdf instance.
func (d *Document) Pdf() *gofpdf.Fpdf { return d.pdf }

func (d *Document) NumPages() int { return len(d.pages) }

func (d *Document) Page(n int) (layout.Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("no such page: %d (document has %d)", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

func (d *Document) AddPage(size layout.Size) layout.Page {
	d.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: size.W, Ht: size.H})
	page := &Page{
		size:   size,
		number: len(d.pages) + 1,
	}
	page.canvas = NewCanvas(d.pdf, page.number)
	d.pages = append(d.pages, page)
	return page
}

func (d *Document) DefaultPageSize() layout.Size { return d.defaultSize }

// IsIncrementalUpdate always returns false: gofpdf builds
// documents from scratch and cannot append to an existing file.
func (d *Document) IsIncrementalUpdate() bool { return false }

// WriteFile serializes the document and closes it.
func (d *Document) WriteFile(name string) error {
	return d.pdf.OutputFileAndClose(name)
}

// Write serializes the document to w and closes it.
func (d *Document) Write(w io.Writer) error {
	return d.pdf.Output(w)
}

// Page is one gofpdf page surface.
type Page struct {
	canvas  *Canvas
	size    layout.Size
	number  int
	flushed bool
	wrapped bool
}

// TrimBox returns the full page rectangle: gofpdf pages have
// no separate trim box.
func (p *Page) TrimBox() driver.Rect {
	return driver.Rect{W: p.size.W, H: p.size.H}
}

func (p *Page) IsFlushed() bool { return p.flushed }

// Flush marks the page finalized. The bytes themselves are
// written once for the whole document, on output.
func (p *Page) Flush() error {
	p.flushed = true
	return nil
}

func (p *Page) HasContent() bool { return p.canvas.HasContent() }

// WrapContent records that the preexisting content has been
// isolated. gofpdf resets the graphics state on each operation,
// so no stream rewriting is needed.
func (p *Page) WrapContent() { p.wrapped = true }

func (p *Page) Canvas() driver.Canvas { return p.canvas }

// A4 is the default page size, in points.
var A4 = layout.Size{W: 595.28, H: 841.89}

// RenderSVGTextToPDF reads the text trees of the given SVG
// fragment and renders them into the named PDF file, one page.
func RenderSVGTextToPDF(svg io.Reader, pdfName string) error {
	trees, err := svgtext.ReadTextStream(svg, svgtext.WarnErrorMode)
	if err != nil {
		return err
	}

	doc := NewDocument(A4)
	renderer := layout.NewRenderer(doc, nil, layout.Options{})
	area, err := renderer.AdvanceToNextArea(nil)
	if err != nil {
		return err
	}
	page, err := doc.Page(area.PageNumber)
	if err != nil {
		return err
	}

	var cssCtx css.Context
	cssCtx.SetViewport(A4.W, A4.H)
	ctx := svgtext.NewDrawContext(page.Canvas(), NewCoreFontProvider(), &cssCtx)
	for _, tree := range trees {
		if err := tree.Draw(ctx); err != nil {
			return err
		}
	}
	return doc.WriteFile(pdfName)
}
