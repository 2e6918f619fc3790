package svgpath

import (
	"fmt"
	"image/color"
	"strings"
	"unicode"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
	"golang.org/x/image/math/fixed"
)

// pathCursor tracks the state needed while compiling the "d"
// attribute of a path element: the current point, and the start
// of the current subpath (the target of a closepath).
type pathCursor struct {
	ctx          *css.Context
	current      driver.Point
	subpathStart driver.Point
	inPath       bool
}

// Parse compiles a subset of the SVG path syntax (moveto, lineto,
// closepath) into the corresponding commands, with relative
// coordinates already made absolute.
func Parse(d string, ctx *css.Context) ([]Command, error) {
	c := pathCursor{ctx: ctx}
	var out []Command
	for _, seg := range splitCommands(d) {
		key, tokens := seg.key, seg.tokens
		// coordinate pairs may be repeated after a single key letter;
		// subsequent moveto pairs are implicit lineto commands
		switch key {
		case 'M', 'm', 'L', 'l':
			if len(tokens) == 0 || len(tokens)%2 != 0 {
				name := "lineto"
				if key == 'M' || key == 'm' {
					name = "moveto"
				}
				return nil, &ArgumentCountError{Command: name, Expected: 2, Tokens: tokens}
			}
			for i := 0; i < len(tokens); i += 2 {
				var cmd Command
				relative := unicode.IsLower(rune(key))
				if (key == 'M' || key == 'm') && i == 0 {
					cmd = NewMoveCommand(relative)
				} else {
					cmd = NewLineCommand(relative)
				}
				if err := cmd.SetCoordinates(tokens[i:i+2], c.current); err != nil {
					return nil, err
				}
				end, err := cmd.EndPoint(ctx)
				if err != nil {
					return nil, err
				}
				if _, isMove := cmd.(*MoveCommand); isMove {
					c.subpathStart = end
					c.inPath = true
				}
				c.current = end
				out = append(out, cmd)
			}
		case 'Z', 'z':
			cmd := &CloseCommand{start: c.subpathStart}
			if err := cmd.SetCoordinates(tokens, c.current); err != nil {
				return nil, err
			}
			c.current = c.subpathStart
			out = append(out, cmd)
		default:
			return nil, fmt.Errorf("unsupported path command %q", string(key))
		}
	}
	return out, nil
}

// Compile parses the "d" attribute and reduces it to a Path
// of absolute operations.
func Compile(d string, ctx *css.Context) (Path, error) {
	cmds, err := Parse(d, ctx)
	if err != nil {
		return nil, err
	}
	var (
		p   Path
		rec = recorder{path: &p}
	)
	for _, cmd := range cmds {
		if err := cmd.Draw(&rec, ctx); err != nil {
			return nil, err
		}
	}
	return p, nil
}

type segment struct {
	key    byte
	tokens []string
}

// splitCommands cuts the "d" string at command letters.
func splitCommands(d string) []segment {
	var (
		out   []segment
		start = -1
	)
	flush := func(end int) {
		if start < 0 {
			return
		}
		out = append(out, segment{
			key:    d[start],
			tokens: css.SplitValues(splitMinus(d[start+1 : end])),
		})
	}
	for i := 0; i < len(d); i++ {
		b := d[i]
		if (b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z') && b != 'e' && b != 'E' {
			flush(i)
			start = i
		}
	}
	flush(len(d))
	return out
}

// splitMinus inserts a separator before minus signs used as
// token delimiters ("10-5" means "10 -5"), leaving exponents alone.
func splitMinus(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i > 0 && s[i-1] != 'e' && s[i-1] != 'E' {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// recorder implements driver.PathCanvas by accumulating the
// operations into a Path; the painting calls are ignored.
type recorder struct {
	path *Path
}

func (r *recorder) Clear()                                   { r.path.Clear() }
func (r *recorder) Start(a fixed.Point26_6)                  { r.path.Start(a) }
func (r *recorder) Line(b fixed.Point26_6)                   { r.path.Line(b) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)          { r.path.QuadBezier(b, c) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6)       { r.path.CubeBezier(b, c, d) }
func (r *recorder) Stop(closeLoop bool)                      { r.path.Stop(closeLoop) }
func (r *recorder) SetFillColor(color.Color, float64)        {}
func (r *recorder) SetStrokeColor(color.Color, float64)      {}
func (r *recorder) SetLineWidth(float64)                     {}
func (r *recorder) Fill(bool)                                {}
func (r *recorder) Stroke()                                  {}
