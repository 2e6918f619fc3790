package css

import (
	"reflect"
	"testing"
)

func TestParseLength(t *testing.T) {
	var ctx Context
	ctx.SetViewport(200, 100)

	for _, test := range []struct {
		input    string
		axis     Axis
		expected float64
	}{
		{"10", Horizontal, 10},
		{"10px", Horizontal, 10},
		{"72pt", Horizontal, 96},
		{"1in", Horizontal, 96},
		{"2.54cm", Horizontal, 96},
		{"1pc", Horizontal, 16},
		{"2em", Horizontal, 32},
		{"2ex", Horizontal, 16},
		{"50%", Horizontal, 100},
		{"50%", Vertical, 50},
	} {
		got, err := ctx.ParseLength(test.input, test.axis, DefaultFontSize)
		if err != nil {
			t.Fatal(err)
		}
		if diff := got - test.expected; diff < -1e-9 || diff > 1e-9 {
			t.Errorf("%s: expected %v, got %v", test.input, test.expected, got)
		}
	}

	if _, err := ctx.ParseLength("", Horizontal, DefaultFontSize); err == nil {
		t.Fatal("expected an error on empty input")
	}
	if _, err := ctx.ParseLength("abc", Horizontal, DefaultFontSize); err == nil {
		t.Fatal("expected an error on invalid input")
	}
}

func TestRootFontSize(t *testing.T) {
	var ctx Context
	if got := ctx.RootFontSize(); got != DefaultFontSize {
		t.Fatalf("expected the default root font size, got %v", got)
	}
	if err := ctx.SetRootFontSize("20px"); err != nil {
		t.Fatal(err)
	}
	got, err := ctx.ParseLength("2rem", Horizontal, DefaultFontSize)
	if err != nil {
		t.Fatal(err)
	}
	if got != 40 {
		t.Fatalf("expected 40, got %v", got)
	}

	// relative root sizes resolve against the default
	if err := ctx.SetRootFontSize("2em"); err != nil {
		t.Fatal(err)
	}
	if got := ctx.RootFontSize(); got != 32 {
		t.Fatalf("expected 32, got %v", got)
	}
}

func TestSplitValues(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected []string
	}{
		{"1, 2,3 4", []string{"1", "2", "3", "4"}},
		{"  ", []string{}},
		{"10 20", []string{"10", "20"}},
	} {
		if got := SplitValues(test.input); !reflect.DeepEqual(got, test.expected) {
			t.Errorf("%q: expected %v, got %v", test.input, test.expected, got)
		}
	}
}

func TestParseLengthList(t *testing.T) {
	var ctx Context
	got, err := ctx.ParseLengthList("10, 20 30", Horizontal, DefaultFontSize)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{10, 20, 30}) {
		t.Fatalf("unexpected lengths: %v", got)
	}
}

func TestMergeStyle(t *testing.T) {
	attrs := map[string]string{"fill": "red", "stroke": "blue"}
	attrs, err := MergeStyle(attrs, "fill: green; font-size: 12px")
	if err != nil {
		t.Fatal(err)
	}
	// the style attribute wins
	if attrs["fill"] != "green" {
		t.Fatalf("unexpected fill: %s", attrs["fill"])
	}
	if attrs["stroke"] != "blue" || attrs["font-size"] != "12px" {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}
