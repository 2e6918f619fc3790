package svgpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
)

// ArgumentCountError is returned when a path command receives
// a coordinate list of the wrong length. The offending raw tokens
// are kept for diagnostics.
type ArgumentCountError struct {
	Command  string
	Expected int
	Tokens   []string
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("path command %q expects %d coordinates, got %v",
		e.Command, e.Expected, e.Tokens)
}

// Command is one textual SVG path command. Coordinates are kept
// as raw tokens, made absolute when set, and only converted to
// lengths when the command is drawn.
type Command interface {
	// SetCoordinates stores the coordinate tokens, converting them
	// to absolute values against the current point when the command
	// is relative.
	SetCoordinates(tokens []string, current driver.Point) error

	// Draw parses the stored tokens and issues the drawing
	// operations on the canvas.
	Draw(d driver.PathCanvas, ctx *css.Context) error

	// EndPoint returns the point at which the pen rests after
	// this command, used as the current point of the next one.
	EndPoint(ctx *css.Context) (driver.Point, error)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parsePoint resolves a stored (x, y) token pair, using
// axis aware unit parsing: percentages and viewport-relative
// units resolve differently on each axis.
func parsePoint(ctx *css.Context, xTok, yTok string) (driver.Point, error) {
	x, err := ctx.ParseLength(xTok, css.Horizontal, css.DefaultFontSize)
	if err != nil {
		return driver.Point{}, err
	}
	y, err := ctx.ParseLength(yTok, css.Vertical, css.DefaultFontSize)
	if err != nil {
		return driver.Point{}, err
	}
	return driver.Point{X: x, Y: y}, nil
}

// LineCommand is the SVG "L" (or relative "l") path command.
type LineCommand struct {
	coordinates [2]string
	relative    bool
}

// NewLineCommand returns a lineTo command; relative selects
// the lowercase "l" form.
func NewLineCommand(relative bool) *LineCommand {
	return &LineCommand{relative: relative}
}

// IsRelative reports whether the command was written in its
// lowercase, relative form.
func (c *LineCommand) IsRelative() bool { return c.relative }

// Coordinates returns the stored, absolute coordinate tokens.
func (c *LineCommand) Coordinates() [2]string { return c.coordinates }

func (c *LineCommand) SetCoordinates(tokens []string, current driver.Point) error {
	if len(tokens) != 2 {
		return &ArgumentCountError{Command: "lineto", Expected: 2, Tokens: tokens}
	}
	if !c.relative {
		c.coordinates[0], c.coordinates[1] = tokens[0], tokens[1]
		return nil
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
	if err != nil {
		return err
	}
	c.coordinates[0] = formatCoord(current.X + x)
	c.coordinates[1] = formatCoord(current.Y + y)
	return nil
}

func (c *LineCommand) Draw(d driver.PathCanvas, ctx *css.Context) error {
	p, err := parsePoint(ctx, c.coordinates[0], c.coordinates[1])
	if err != nil {
		return err
	}
	d.Line(toFixedP(p.X, p.Y))
	return nil
}

func (c *LineCommand) EndPoint(ctx *css.Context) (driver.Point, error) {
	return parsePoint(ctx, c.coordinates[0], c.coordinates[1])
}

// MoveCommand is the SVG "M" (or relative "m") path command.
type MoveCommand struct {
	coordinates [2]string
	relative    bool
}

func NewMoveCommand(relative bool) *MoveCommand {
	return &MoveCommand{relative: relative}
}

func (c *MoveCommand) SetCoordinates(tokens []string, current driver.Point) error {
	if len(tokens) != 2 {
		return &ArgumentCountError{Command: "moveto", Expected: 2, Tokens: tokens}
	}
	if !c.relative {
		c.coordinates[0], c.coordinates[1] = tokens[0], tokens[1]
		return nil
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
	if err != nil {
		return err
	}
	c.coordinates[0] = formatCoord(current.X + x)
	c.coordinates[1] = formatCoord(current.Y + y)
	return nil
}

func (c *MoveCommand) Draw(d driver.PathCanvas, ctx *css.Context) error {
	p, err := parsePoint(ctx, c.coordinates[0], c.coordinates[1])
	if err != nil {
		return err
	}
	d.Stop(false)
	d.Start(toFixedP(p.X, p.Y))
	return nil
}

func (c *MoveCommand) EndPoint(ctx *css.Context) (driver.Point, error) {
	return parsePoint(ctx, c.coordinates[0], c.coordinates[1])
}

// CloseCommand is the SVG "Z" path command.
type CloseCommand struct {
	start driver.Point // start of the subpath being closed
}

func (c *CloseCommand) SetCoordinates(tokens []string, current driver.Point) error {
	if len(tokens) != 0 {
		return &ArgumentCountError{Command: "closepath", Expected: 0, Tokens: tokens}
	}
	return nil
}

func (c *CloseCommand) Draw(d driver.PathCanvas, ctx *css.Context) error {
	d.Stop(true)
	return nil
}

func (c *CloseCommand) EndPoint(ctx *css.Context) (driver.Point, error) {
	return c.start, nil
}
