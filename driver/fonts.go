package driver

// Font is a usable font as resolved by a backend.
// Only the metric needed by the text placement engine is exposed;
// glyph drawing stays inside the backend.
type Font interface {
	// Name returns the backend name of the font, for diagnostics.
	Name() string

	// Width returns the advance width of s when shown
	// at the given size, in user units.
	Width(s string, size float64) float64
}

// FontProvider resolves font characteristics to a concrete font.
type FontProvider interface {
	// FindFont returns the best match for the given family list
	// and the bold/italic flags, or an error if no family is usable.
	FindFont(families []string, bold, italic bool) (Font, error)

	// DefaultFont constructs the built-in fallback font.
	DefaultFont() (Font, error)
}
