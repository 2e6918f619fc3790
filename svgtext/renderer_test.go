package svgtext

import (
	"testing"

	"github.com/benoitkugler/pdflayout/css"
	"github.com/benoitkugler/pdflayout/driver"
	"github.com/stretchr/testify/require"
)

// font with a fixed advance per rune, independent of the size
type fixedFont struct {
	name    string
	perRune float64
}

func (f fixedFont) Name() string { return f.name }

func (f fixedFont) Width(s string, size float64) float64 {
	return float64(len([]rune(s))) * f.perRune
}

type fakeProvider struct {
	perRune float64
	failAll bool
}

func (p fakeProvider) FindFont(families []string, bold, italic bool) (driver.Font, error) {
	if p.failAll {
		return nil, nil
	}
	return fixedFont{name: "fake", perRune: p.perRune}, nil
}

func (p fakeProvider) DefaultFont() (driver.Font, error) {
	if p.failAll {
		return nil, nil
	}
	return fixedFont{name: "fake-default", perRune: p.perRune}, nil
}

// records the flushed chunks
type fakeCanvas struct {
	anchors []driver.Matrix2D
	runs    [][]driver.TextRun
}

func (c *fakeCanvas) DrawTextChunk(anchor driver.Matrix2D, runs []driver.TextRun) error {
	c.anchors = append(c.anchors, anchor)
	c.runs = append(c.runs, append([]driver.TextRun(nil), runs...))
	return nil
}

func newTestContext(perRune float64) (*DrawContext, *fakeCanvas) {
	canvas := &fakeCanvas{}
	var cssCtx css.Context
	cssCtx.SetViewport(600, 800)
	return NewDrawContext(canvas, fakeProvider{perRune: perRune}, &cssCtx), canvas
}

func TestRelativeTranslationMemoized(t *testing.T) {
	ctx, _ := newTestContext(10)
	attrs := map[string]string{"dx": "5 7", "dy": "3"}
	b := NewBranchRenderer(attrs)

	dx, dy, err := b.RelativeTranslation(ctx)
	require.NoError(t, err)
	// only the first value of a list is taken
	require.Equal(t, 5., dx)
	require.Equal(t, 3., dy)

	// the resolution is cached: mutating the attributes
	// afterwards has no effect
	attrs["dx"] = "100"
	dx, dy, err = b.RelativeTranslation(ctx)
	require.NoError(t, err)
	require.Equal(t, 5., dx)
	require.Equal(t, 3., dy)
}

func TestContainsAbsolutePositionChangeMemoized(t *testing.T) {
	ctx, _ := newTestContext(10)

	b := NewBranchRenderer(map[string]string{"dx": "4"})
	has, err := b.ContainsAbsolutePositionChange(ctx)
	require.NoError(t, err)
	require.False(t, has)

	attrs := map[string]string{"y": "50 60"}
	b = NewBranchRenderer(attrs)
	has, err = b.ContainsAbsolutePositionChange(ctx)
	require.NoError(t, err)
	require.True(t, has)

	delete(attrs, "y")
	has, err = b.ContainsAbsolutePositionChange(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func drawAnchorTree(t *testing.T, anchor string) (*fakeCanvas, *DrawContext) {
	t.Helper()
	ctx, canvas := newTestContext(10)
	attrs := map[string]string{"x": "50"}
	if anchor != "" {
		attrs["text-anchor"] = anchor
	}
	root := NewBranchRenderer(attrs)
	root.AddChild(NewLeafRenderer("ab")) // length 20
	require.NoError(t, root.Draw(ctx))
	return canvas, ctx
}

func penOf(canvas *fakeCanvas, chunk, run int) (float64, float64) {
	r := canvas.runs[chunk][run]
	return canvas.anchors[chunk].Apply(r.Dx, -r.Dy)
}

func TestTextAnchorCorrections(t *testing.T) {
	// end: shifted left by the full length
	canvas, _ := drawAnchorTree(t, "end")
	require.Len(t, canvas.runs, 1)
	x, y := penOf(canvas, 0, 0)
	require.Equal(t, 30., x)
	require.Equal(t, 0., y)

	// middle: shifted left by half the length
	canvas, _ = drawAnchorTree(t, "middle")
	x, _ = penOf(canvas, 0, 0)
	require.Equal(t, 40., x)

	// start: no shift
	canvas, _ = drawAnchorTree(t, "start")
	x, _ = penOf(canvas, 0, 0)
	require.Equal(t, 50., x)
}

func TestTextAnchorWithoutExplicitX(t *testing.T) {
	ctx, canvas := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"text-anchor": "end"})
	root.AddChild(NewLeafRenderer("ab"))
	require.NoError(t, root.Draw(ctx))

	// without an explicit x the correction does not apply
	require.Len(t, canvas.runs, 1)
	x, _ := penOf(canvas, 0, 0)
	require.Equal(t, 0., x)
}

func TestChunkBreakAndBackfill(t *testing.T) {
	ctx, canvas := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"x": "50", "y": "30"})
	root.AddChild(NewLeafRenderer("abc")) // length 30
	child := NewBranchRenderer(map[string]string{"y": "100"})
	child.AddChild(NewLeafRenderer("de"))
	root.AddChild(child)
	require.NoError(t, root.Draw(ctx))

	// the absolute y on the tspan breaks the chunk; the
	// unspecified x continues the running line
	require.Len(t, canvas.runs, 2)
	require.Len(t, canvas.runs[0], 1)
	require.Len(t, canvas.runs[1], 1)

	x, y := penOf(canvas, 0, 0)
	require.Equal(t, 50., x)
	require.Equal(t, 30., y)

	x, y = penOf(canvas, 1, 0)
	require.Equal(t, 80., x) // 50 + len("abc")*10
	require.Equal(t, 100., y)

	// the non root branch never owns a chunk
	require.Nil(t, child.chunk)
}

func TestSiblingAdvance(t *testing.T) {
	ctx, canvas := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"x": "10"})
	root.AddChild(NewLeafRenderer("ab"))
	root.AddChild(NewLeafRenderer("cd"))
	require.NoError(t, root.Draw(ctx))

	require.Len(t, canvas.runs, 1)
	require.Len(t, canvas.runs[0], 2)
	x0, _ := penOf(canvas, 0, 0)
	x1, _ := penOf(canvas, 0, 1)
	require.Equal(t, 10., x0)
	// the second run starts at the right edge of the first
	require.Equal(t, 30., x1)
}

func TestRelativeMove(t *testing.T) {
	ctx, canvas := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"x": "10", "y": "20"})
	root.AddChild(NewLeafRenderer("a"))
	child := NewBranchRenderer(map[string]string{"dx": "5", "dy": "7"})
	child.AddChild(NewLeafRenderer("b"))
	root.AddChild(child)
	require.NoError(t, root.Draw(ctx))

	// a relative move does not break the chunk
	require.Len(t, canvas.runs, 1)
	require.Len(t, canvas.runs[0], 2)
	x, y := penOf(canvas, 0, 1)
	require.Equal(t, 25., x) // 10 + len("a")*10 + dx
	require.Equal(t, 27., y)
}

func TestWhitespaceCollapsedOnce(t *testing.T) {
	ctx, _ := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"x": "0"})
	leaf := NewLeafRenderer("  hello \n\t world  ")
	root.AddChild(leaf)
	require.NoError(t, root.Draw(ctx))
	require.Equal(t, "hello world", leaf.Text())

	// drawing again must not collapse again
	require.NoError(t, root.Draw(ctx))
	require.Equal(t, "hello world", leaf.Text())
}

func TestEmptyTreeIsNoop(t *testing.T) {
	ctx, canvas := newTestContext(10)
	require.NoError(t, NewBranchRenderer(map[string]string{"x": "10"}).Draw(ctx))
	require.NoError(t, func() error {
		b := NewBranchRenderer(nil)
		b.AddChild(NewLeafRenderer("hi"))
		return b.Draw(ctx)
	}())
	require.Empty(t, canvas.runs)
}

func TestTextRectangle(t *testing.T) {
	ctx, _ := newTestContext(10)
	root := NewBranchRenderer(map[string]string{"x": "50", "y": "100", "font-size": "16"})
	root.AddChild(NewLeafRenderer("ab"))
	rect, end, err := root.TextRectangle(ctx, driver.Point{})
	require.NoError(t, err)
	require.Equal(t, driver.Rect{X: 50, Y: 100 - 12, W: 20, H: 16}, rect)
	require.Equal(t, driver.Point{X: 70, Y: 100}, end)
}

func TestFontResolutionError(t *testing.T) {
	canvas := &fakeCanvas{}
	var cssCtx css.Context
	ctx := NewDrawContext(canvas, fakeProvider{failAll: true}, &cssCtx)
	root := NewBranchRenderer(map[string]string{"x": "10", "font-family": "Nope"})
	root.AddChild(NewLeafRenderer("hi"))

	err := root.Draw(ctx)
	var fontErr FontResolutionError
	require.ErrorAs(t, err, &fontErr)
	require.Equal(t, []string{"Nope"}, fontErr.Families)
}

func TestTextModes(t *testing.T) {
	for _, test := range []struct {
		attrs    map[string]string
		expected driver.TextMode
	}{
		{map[string]string{"x": "0"}, driver.FillText},
		{map[string]string{"x": "0", "stroke": "black"}, driver.FillThenStrokeText},
		{map[string]string{"x": "0", "fill": "none", "stroke": "black"}, driver.StrokeText},
	} {
		ctx, canvas := newTestContext(10)
		root := NewBranchRenderer(test.attrs)
		root.AddChild(NewLeafRenderer("hi"))
		require.NoError(t, root.Draw(ctx))
		require.Len(t, canvas.runs, 1)
		require.Equal(t, test.expected, canvas.runs[0][0].Mode)
	}
}
