package shading

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/benoitkugler/pdf/model"
)

func TestAxialDict(t *testing.T) {
	sh := Axial{
		Base:     Base{ColorSpace: "DeviceRGB", AntiAlias: true},
		X0:       0, Y0: 0, X1: 100, Y1: 0,
		Function: interpolationFunction([]float64{1, 0, 0}, []float64{0, 0, 1}),
		Extend:   [2]bool{true, true},
	}
	dict, data := sh.Dict()
	if data != nil {
		t.Fatal("axial shadings have no stream data")
	}
	if dict["ShadingType"] != 2 {
		t.Fatalf("unexpected shading type: %v", dict["ShadingType"])
	}
	if dict["ColorSpace"] != model.Name("DeviceRGB") {
		t.Fatalf("unexpected color space: %v", dict["ColorSpace"])
	}
	coords := dict["Coords"].([]float64)
	if len(coords) != 4 || coords[2] != 100 {
		t.Fatalf("unexpected coords: %v", coords)
	}
	if dict["AntiAlias"] != true {
		t.Fatal("missing AntiAlias entry")
	}
}

func TestRadialDict(t *testing.T) {
	sh := Radial{
		Base: Base{ColorSpace: "DeviceRGB"},
		X0:   10, Y0: 20, R0: 0, X1: 10, Y1: 20, R1: 50,
		Function: interpolationFunction([]float64{0, 0, 0}, []float64{1, 1, 1}),
	}
	dict, _ := sh.Dict()
	if dict["ShadingType"] != 3 {
		t.Fatalf("unexpected shading type: %v", dict["ShadingType"])
	}
	coords := dict["Coords"].([]float64)
	if len(coords) != 6 || coords[5] != 50 {
		t.Fatalf("unexpected coords: %v", coords)
	}
}

func TestCoonsValidation(t *testing.T) {
	base := Base{ColorSpace: "DeviceRGB"}
	decode := []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1}

	if _, err := NewCoonsPatchMesh(base, 7, 8, 8, decode, 3); err == nil {
		t.Fatal("expected an error on BitsPerCoordinate 7")
	}
	if _, err := NewCoonsPatchMesh(base, 8, 24, 8, decode, 3); err == nil {
		t.Fatal("expected an error on BitsPerComponent 24")
	}
	if _, err := NewCoonsPatchMesh(base, 8, 8, 3, decode, 3); err == nil {
		t.Fatal("expected an error on BitsPerFlag 3")
	}
	if _, err := NewCoonsPatchMesh(base, 8, 8, 8, decode[:6], 3); err == nil {
		t.Fatal("expected an error on a short Decode array")
	}
	if _, err := NewCoonsPatchMesh(base, 8, 8, 8, decode, 3); err != nil {
		t.Fatal(err)
	}
}

func fullPatchPoints() [][2]float64 {
	out := make([][2]float64, 12)
	for i := range out {
		out[i] = [2]float64{float64(i * 8), float64(100 - i*8)}
	}
	return out
}

func TestCoonsAddPatch(t *testing.T) {
	base := Base{ColorSpace: "DeviceRGB"}
	decode := []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1}
	mesh, err := NewCoonsPatchMesh(base, 8, 8, 8, decode, 3)
	if err != nil {
		t.Fatal(err)
	}

	colors := [][]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0},
	}
	if err := mesh.AddPatch(0, fullPatchPoints(), colors); err != nil {
		t.Fatal(err)
	}
	// a patch sharing an edge needs 8 points and 2 colors
	if err := mesh.AddPatch(1, fullPatchPoints()[:8], colors[:2]); err != nil {
		t.Fatal(err)
	}

	dict, data := mesh.Dict()
	if dict["ShadingType"] != 6 {
		t.Fatalf("unexpected shading type: %v", dict["ShadingType"])
	}
	// first patch: 1 flag + 24 coordinates + 12 components
	// second patch: 1 flag + 16 coordinates + 6 components
	if len(data) != 37+23 {
		t.Fatalf("unexpected data length: %d", len(data))
	}
	if data[0] != 0 {
		t.Fatalf("unexpected first edge flag: %d", data[0])
	}
	if data[37] != 1 {
		t.Fatalf("unexpected second edge flag: %d", data[37])
	}
	// first point (0, 100) quantized on [0, 100]
	if data[1] != 0 || data[2] != 255 {
		t.Fatalf("unexpected first point encoding: %d %d", data[1], data[2])
	}
}

func TestCoonsAddPatchErrors(t *testing.T) {
	base := Base{ColorSpace: "DeviceRGB"}
	decode := []float64{0, 100, 0, 100, 0, 1, 0, 1, 0, 1}
	mesh, err := NewCoonsPatchMesh(base, 8, 8, 8, decode, 3)
	if err != nil {
		t.Fatal(err)
	}
	colors := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}}

	if err := mesh.AddPatch(0, fullPatchPoints()[:8], colors); err == nil {
		t.Fatal("expected an error on a short point list")
	}
	if err := mesh.AddPatch(4, fullPatchPoints(), colors); err == nil {
		t.Fatal("expected an error on edge flag 4")
	}
	if err := mesh.AddPatch(1, fullPatchPoints()[:8], [][]float64{{1, 0}, {0, 1}}); err == nil {
		t.Fatal("expected an error on a short color")
	}
}

func TestBitWriter(t *testing.T) {
	var w bitWriter
	w.write(0b101, 3)
	w.write(0b01, 2)
	w.write(0xff, 8)
	got := w.bytes()
	expected := []byte{0b10101111, 0b11100000}
	if !bytes.Equal(got, expected) {
		t.Fatalf("unexpected packing: %08b", got)
	}
}

func TestGradientToShading(t *testing.T) {
	grad := Gradient{
		Direction: Linear{0, 0, 1, 1},
		Stops: []GradStop{
			{StopColor: color.RGBA{R: 255, A: 255}, Offset: 0, Opacity: 1},
			{StopColor: color.RGBA{B: 255, A: 255}, Offset: 1, Opacity: 1},
		},
		Units: ObjectBoundingBox,
	}
	resolved := grad.ApplyPathExtent(10, 10, 110, 210)
	dir := resolved.Direction.(Linear)
	if dir != (Linear{10, 10, 110, 210}) {
		t.Fatalf("unexpected resolved direction: %v", dir)
	}

	sh := resolved.ToShading()
	if sh.ShadingType() != 2 {
		t.Fatalf("expected an axial shading, got type %d", sh.ShadingType())
	}
	dict, _ := sh.Dict()
	fn := dict["Function"].(Dict)
	if fn["FunctionType"] != 2 {
		t.Fatalf("unexpected function: %v", fn)
	}
	c0 := fn["C0"].([]float64)
	if c0[0] != 1 || c0[1] != 0 || c0[2] != 0 {
		t.Fatalf("unexpected C0: %v", c0)
	}
}

func TestMultiStopFunction(t *testing.T) {
	stops := []GradStop{
		{StopColor: color.RGBA{R: 255, A: 255}, Offset: 0, Opacity: 1},
		{StopColor: color.RGBA{G: 255, A: 255}, Offset: 0.3, Opacity: 1},
		{StopColor: color.RGBA{B: 255, A: 255}, Offset: 1, Opacity: 1},
	}
	fn := stopsFunction(stops)
	if fn["FunctionType"] != 3 {
		t.Fatalf("expected a stitching function, got %v", fn["FunctionType"])
	}
	bounds := fn["Bounds"].([]float64)
	if len(bounds) != 1 || bounds[0] != 0.3 {
		t.Fatalf("unexpected bounds: %v", bounds)
	}
	if len(fn["Functions"].([]Dict)) != 2 {
		t.Fatal("expected two sub functions")
	}
}
