package svgpath

import (
	"errors"
	"testing"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
)

func TestLineCommandRelative(t *testing.T) {
	cmd := NewLineCommand(true)
	if err := cmd.SetCoordinates([]string{"10", "5"}, driver.Point{X: 100, Y: 100}); err != nil {
		t.Fatal(err)
	}
	if got := cmd.Coordinates(); got != [2]string{"110", "105"} {
		t.Fatalf("unexpected stored coordinates: %v", got)
	}

	var ctx css.Context
	end, err := cmd.EndPoint(&ctx)
	if err != nil {
		t.Fatal(err)
	}
	if end != (driver.Point{X: 110, Y: 105}) {
		t.Fatalf("unexpected end point: %v", end)
	}

	var p Path
	rec := recorder{path: &p}
	rec.Start(toFixedP(100, 100))
	if err := cmd.Draw(&rec, &ctx); err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 {
		t.Fatalf("unexpected path: %s", p)
	}
	lineTo, ok := p[1].(LineTo)
	if !ok {
		t.Fatalf("expected a line, got %T", p[1])
	}
	if lineTo != LineTo(toFixedP(110, 105)) {
		t.Fatalf("unexpected line target: %v", lineTo)
	}
}

func TestLineCommandArgumentCount(t *testing.T) {
	cmd := NewLineCommand(false)
	err := cmd.SetCoordinates([]string{"10", "5", "3"}, driver.Point{})
	var argErr *ArgumentCountError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected an ArgumentCountError, got %v", err)
	}
	if argErr.Expected != 2 || len(argErr.Tokens) != 3 {
		t.Fatalf("unexpected error content: %v", argErr)
	}

	var closeCmd CloseCommand
	err = closeCmd.SetCoordinates([]string{"1"}, driver.Point{})
	if !errors.As(err, &argErr) {
		t.Fatalf("expected an ArgumentCountError, got %v", err)
	}
}

func TestParsePath(t *testing.T) {
	var ctx css.Context
	cmds, err := Parse("M10,20 L30,40 l5-5 Z", &ctx)
	if err != nil {
		t.Fatal(err)
	}
	// moveto, two linetos, closepath
	if len(cmds) != 4 {
		t.Fatalf("unexpected command count: %d", len(cmds))
	}
	line, ok := cmds[2].(*LineCommand)
	if !ok {
		t.Fatalf("expected a lineto, got %T", cmds[2])
	}
	if !line.IsRelative() {
		t.Fatal("expected a relative lineto")
	}
	if got := line.Coordinates(); got != [2]string{"35", "35"} {
		t.Fatalf("unexpected coordinates: %v", got)
	}
	end, err := cmds[3].EndPoint(&ctx)
	if err != nil {
		t.Fatal(err)
	}
	// closepath returns to the subpath start
	if end != (driver.Point{X: 10, Y: 20}) {
		t.Fatalf("unexpected end point: %v", end)
	}
}

func TestParseImplicitLineto(t *testing.T) {
	var ctx css.Context
	cmds, err := Parse("M10 20 30 40", &ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 2 {
		t.Fatalf("unexpected command count: %d", len(cmds))
	}
	if _, ok := cmds[1].(*LineCommand); !ok {
		t.Fatalf("expected an implicit lineto, got %T", cmds[1])
	}
}

func TestCompile(t *testing.T) {
	var ctx css.Context
	p, err := Compile("M0,0 L10,0 L10,10 Z", &ctx)
	if err != nil {
		t.Fatal(err)
	}
	expected := "M0.000,0.000 L10.000,0.000 L10.000,10.000 Z"
	if got := p.ToSVGPath(); got != expected {
		t.Fatalf("expected %s, got %s", expected, got)
	}
}

func TestParseExponent(t *testing.T) {
	var ctx css.Context
	cmds, err := Parse("M1e-2,0 L-3,4", &ctx)
	if err != nil {
		t.Fatal(err)
	}
	end, err := cmds[0].EndPoint(&ctx)
	if err != nil {
		t.Fatal(err)
	}
	if end.X != 0.01 || end.Y != 0 {
		t.Fatalf("unexpected end point: %v", end)
	}
	end, err = cmds[1].EndPoint(&ctx)
	if err != nil {
		t.Fatal(err)
	}
	if end != (driver.Point{X: -3, Y: 4}) {
		t.Fatalf("unexpected end point: %v", end)
	}
}
