// Implements the small CSS state needed when resolving SVG
// lengths: the root font size ("rem" unit) and the viewport,
// with axis aware percentage resolution.
package css

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Axis selects against which dimension of the viewport
// a percentage or viewport-relative value resolves.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
	Diagonal
)

// DefaultFontSize is the font size used when no style sets one,
// in user units.
const DefaultFontSize = 16.

// conversion factors to user units (CSS px), at 96 dpi
const (
	pxPerIn = 96.
	pxPerPt = 96. / 72.
	pxPerPc = 16.
	pxPerCm = 96. / 2.54
	pxPerMm = 9.6 / 2.54
)

// Context holds the resolved CSS state of one rendering pass.
// The zero value has the default root font size and an empty viewport.
type Context struct {
	rootFontSize float64
	hasRoot      bool
	viewportW    float64
	viewportH    float64
}

// SetViewport records the viewport used to resolve percentages.
func (c *Context) SetViewport(w, h float64) {
	c.viewportW, c.viewportH = w, h
}

// RootFontSize returns the font size of the root element.
func (c *Context) RootFontSize() float64 {
	if !c.hasRoot {
		return DefaultFontSize
	}
	return c.rootFontSize
}

// SetRootFontSize parses and stores the root font size, used
// afterwards to resolve "rem" values. Relative units are resolved
// against the default font size.
func (c *Context) SetRootFontSize(v string) error {
	size, err := c.ParseLength(v, Vertical, DefaultFontSize)
	if err != nil {
		return err
	}
	c.rootFontSize = size
	c.hasRoot = true
	return nil
}

func (c *Context) percentageRef(axis Axis) float64 {
	switch axis {
	case Horizontal:
		return c.viewportW
	case Vertical:
		return c.viewportH
	default:
		return math.Sqrt(c.viewportW*c.viewportW+c.viewportH*c.viewportH) / math.Sqrt2
	}
}

// ParseLength converts one CSS length to user units.
// `em` is the current font size, against which "em", "ex" and "%"
// font-relative values resolve; percentages of coordinates resolve
// against the viewport on the given axis.
func (c *Context) ParseLength(v string, axis Axis, em float64) (float64, error) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, errors.New("empty length")
	}
	factor := 1.
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		s, factor = strings.TrimSuffix(s, "pt"), pxPerPt
	case strings.HasSuffix(s, "pc"):
		s, factor = strings.TrimSuffix(s, "pc"), pxPerPc
	case strings.HasSuffix(s, "in"):
		s, factor = strings.TrimSuffix(s, "in"), pxPerIn
	case strings.HasSuffix(s, "cm"):
		s, factor = strings.TrimSuffix(s, "cm"), pxPerCm
	case strings.HasSuffix(s, "mm"):
		s, factor = strings.TrimSuffix(s, "mm"), pxPerMm
	case strings.HasSuffix(s, "rem"):
		s, factor = strings.TrimSuffix(s, "rem"), c.RootFontSize()
	case strings.HasSuffix(s, "em"):
		s, factor = strings.TrimSuffix(s, "em"), em
	case strings.HasSuffix(s, "ex"):
		// approximate the x-height as half the font size
		s, factor = strings.TrimSuffix(s, "ex"), em/2
	case strings.HasSuffix(s, "%"):
		s, factor = strings.TrimSuffix(s, "%"), c.percentageRef(axis)/100
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return f * factor, nil
}

// ParseLengthList parses a comma or space separated list of lengths.
func (c *Context) ParseLengthList(v string, axis Axis, em float64) ([]float64, error) {
	fields := SplitValues(v)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		l, err := c.ParseLength(f, axis, em)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// SplitValues returns the list of strings after splitting the input
// on comma and space delimiters.
func SplitValues(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}
