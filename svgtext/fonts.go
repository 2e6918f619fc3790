package svgtext

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
)

// FontResolutionError is returned when no font can be obtained,
// neither from the providers nor from the default fallback.
type FontResolutionError struct {
	Families []string
}

func (e FontResolutionError) Error() string {
	return fmt.Sprintf("no font could be resolved for families %v", e.Families)
}

// splitFontFamilies cuts a font-family attribute on commas,
// stripping quotes and whitespace.
func splitFontFamilies(v string) []string {
	var out []string
	for _, f := range strings.Split(v, ",") {
		f = strings.Trim(strings.TrimSpace(f), `'"`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isBold(fontWeight string) bool {
	switch strings.TrimSpace(fontWeight) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

func isItalic(fontStyle string) bool {
	switch strings.TrimSpace(fontStyle) {
	case "italic", "oblique":
		return true
	}
	return false
}

// resolveFont establishes the current font and size on the context
// from the node's attributes: the temporary provider is consulted
// first, then the main one, then the default font. Running out of
// candidates is a hard error.
func (b *BranchRenderer) resolveFont(ctx *DrawContext) error {
	families := splitFontFamilies(b.attrs["font-family"])
	bold := isBold(b.attrs["font-weight"])
	italic := isItalic(b.attrs["font-style"])

	var (
		font driver.Font
		err  error
	)
	if ctx.TempFonts != nil {
		font, err = ctx.TempFonts.FindFont(families, bold, italic)
	}
	if font == nil || err != nil {
		font, err = ctx.Fonts.FindFont(families, bold, italic)
	}
	if font == nil || err != nil {
		font, err = ctx.Fonts.DefaultFont()
	}
	if font == nil || err != nil {
		return FontResolutionError{Families: families}
	}
	ctx.font = font

	if v, has := b.attrs["font-size"]; has {
		em := ctx.fontSize
		if em == 0 {
			em = css.DefaultFontSize
		}
		size, err := ctx.CSS.ParseLength(v, css.Diagonal, em)
		if err != nil {
			return err
		}
		ctx.fontSize = size
	} else if ctx.fontSize == 0 {
		ctx.fontSize = css.DefaultFontSize
	}
	return nil
}

// resolveTextMode maps the fill and stroke attributes to the
// text rendering mode: text is filled unless fill is "none",
// and stroked when a stroke paint is given.
func (b *BranchRenderer) resolveTextMode(ctx *DrawContext) {
	fill := strings.TrimSpace(b.attrs["fill"])
	stroke := strings.TrimSpace(b.attrs["stroke"])
	doFill := fill != "none"
	doStroke := stroke != "" && stroke != "none"
	switch {
	case doFill && doStroke:
		ctx.mode = driver.FillThenStrokeText
	case doStroke:
		ctx.mode = driver.StrokeText
	default:
		ctx.mode = driver.FillText
	}
}
