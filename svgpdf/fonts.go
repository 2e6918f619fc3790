package svgpdf

import (
	"strings"

	"github.com/benoitkugler/pdflayout/driver"
	"github.com/jung-kurt/gofpdf"
)

// CoreFontProvider resolves font characteristics to the PDF
// core fonts (Helvetica, Times, Courier), which gofpdf embeds
// metrics for. Unknown families fall back to Helvetica.
type CoreFontProvider struct {
	// metrics instance, shared by the fonts it returns
	pdf *gofpdf.Fpdf
}

// NewCoreFontProvider returns a provider with its own
// metrics instance.
func NewCoreFontProvider() *CoreFontProvider {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	return &CoreFontProvider{pdf: pdf}
}

// matches a requested family to one of the core families
func coreFamily(family string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "helvetica", "arial", "sans-serif", "sans":
		return "Helvetica", true
	case "times", "times new roman", "serif":
		return "Times", true
	case "courier", "courier new", "monospace":
		return "Courier", true
	}
	return "", false
}

func styleString(bold, italic bool) string {
	var style string
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	return style
}

// FindFont returns the first core font matching one of the
// families, with the requested style synthesized from the
// B and I variants.
func (p *CoreFontProvider) FindFont(families []string, bold, italic bool) (driver.Font, error) {
	for _, family := range families {
		if core, ok := coreFamily(family); ok {
			return coreFont{pdf: p.pdf, family: core, style: styleString(bold, italic)}, nil
		}
	}
	return nil, nil
}

// DefaultFont returns regular Helvetica.
func (p *CoreFontProvider) DefaultFont() (driver.Font, error) {
	return coreFont{pdf: p.pdf, family: "Helvetica"}, nil
}

// coreFont is one of the 14 standard PDF fonts, measured with
// the metrics shipped in gofpdf.
type coreFont struct {
	pdf    *gofpdf.Fpdf
	family string
	style  string
}

func (f coreFont) Name() string {
	if f.style == "" {
		return f.family
	}
	return f.family + "-" + f.style
}

// Family returns the gofpdf family name.
func (f coreFont) Family() string { return f.family }

// Style returns the gofpdf style string ("", "B", "I" or "BI").
func (f coreFont) Style() string { return f.style }

// Width measures the advance of s at the given size, in points.
func (f coreFont) Width(s string, size float64) float64 {
	f.pdf.SetFont(f.family, f.style, size)
	return f.pdf.GetStringWidth(s)
}
