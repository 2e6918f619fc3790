// Package shading builds PDF shading dictionaries (PDF 32000-1:2008,
// section 8.7.4.5): axial and radial shadings, and free form
// Coons patch meshes. The dictionaries are kept as an object model,
// so that backends may serialize them with their own writer.
package shading

import (
	"fmt"

	"github.com/benoitkugler/pdf/model"
)

// Dict is a PDF dictionary, keyed by names. Values are
// numbers, booleans, names, arrays ([]interface{} or typed
// slices) or nested Dict.
type Dict map[model.Name]interface{}

// Shading is one of the shading kinds defined in the PDF spec.
type Shading interface {
	// ShadingType returns the value of the /ShadingType entry.
	ShadingType() int

	// Dict returns the shading dictionary. For mesh shadings the
	// binary patch data is returned separately, to be embedded in
	// a stream by the writer.
	Dict() (Dict, []byte)
}

// Base holds the entries shared by all shading kinds.
type Base struct {
	ColorSpace model.Name // required, for instance DeviceRGB
	Background []float64  // optional, in the color space
	BBox       []float64  // optional, [xmin ymin xmax ymax]
	AntiAlias  bool
}

func (b Base) common(shadingType int) Dict {
	out := Dict{
		"ShadingType": shadingType,
		"ColorSpace":  b.ColorSpace,
	}
	if len(b.Background) != 0 {
		out["Background"] = b.Background
	}
	if len(b.BBox) == 4 {
		out["BBox"] = b.BBox
	}
	if b.AntiAlias {
		out["AntiAlias"] = true
	}
	return out
}

// Axial is a type 2 shading, varying along the axis
// from (X0, Y0) to (X1, Y1).
type Axial struct {
	Base
	X0, Y0, X1, Y1 float64
	Function       Dict
	Extend         [2]bool
}

func (a Axial) ShadingType() int { return 2 }

func (a Axial) Dict() (Dict, []byte) {
	out := a.common(2)
	out["Coords"] = []float64{a.X0, a.Y0, a.X1, a.Y1}
	out["Function"] = a.Function
	out["Extend"] = []bool{a.Extend[0], a.Extend[1]}
	return out, nil
}

// Radial is a type 3 shading, varying between two circles.
type Radial struct {
	Base
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Function   Dict
	Extend     [2]bool
}

func (r Radial) ShadingType() int { return 3 }

func (r Radial) Dict() (Dict, []byte) {
	out := r.common(3)
	out["Coords"] = []float64{r.X0, r.Y0, r.R0, r.X1, r.Y1, r.R1}
	out["Function"] = r.Function
	out["Extend"] = []bool{r.Extend[0], r.Extend[1]}
	return out, nil
}

// exponential interpolation function between two colors (type 2)
func interpolationFunction(c0, c1 []float64) Dict {
	return Dict{
		"FunctionType": 2,
		"Domain":       []float64{0, 1},
		"C0":           c0,
		"C1":           c1,
		"N":            1.,
	}
}

// stitchingFunction combines the given functions (type 3);
// bounds has one entry less than functions, encode two per function.
func stitchingFunction(functions []Dict, bounds, encode []float64) Dict {
	return Dict{
		"FunctionType": 3,
		"Domain":       []float64{0, 1},
		"Functions":    functions,
		"Bounds":       bounds,
		"Encode":       encode,
	}
}

func checkOneOf(value int, allowed []int, entry string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid value %d for %s (allowed: %v)", value, entry, allowed)
}
