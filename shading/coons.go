package shading

import (
	"fmt"
	"math"
)

// permitted values for the Coons mesh encoding entries
var (
	allowedBitsPerCoordinate = []int{1, 2, 4, 8, 12, 16, 24, 32}
	allowedBitsPerComponent  = []int{1, 2, 4, 8, 12, 16}
	allowedBitsPerFlag       = []int{2, 4, 8}
)

// CoonsPatchMesh is a type 6 shading: a free form mesh of
// Coons patches, each bounded by four cubic Bezier curves.
// The patch data is bit packed according to the BitsPerXXX
// entries and the Decode ranges.
type CoonsPatchMesh struct {
	Base
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int

	// Decode gives, for each packed value, the range it is mapped
	// from: [xmin xmax ymin ymax c1min c1max ...].
	Decode []float64

	data bitWriter
}

// NewCoonsPatchMesh validates the encoding parameters.
// nbComponents is the number of color components (3 for DeviceRGB).
func NewCoonsPatchMesh(base Base, bitsPerCoordinate, bitsPerComponent, bitsPerFlag int,
	decode []float64, nbComponents int) (*CoonsPatchMesh, error) {
	if err := checkOneOf(bitsPerCoordinate, allowedBitsPerCoordinate, "BitsPerCoordinate"); err != nil {
		return nil, err
	}
	if err := checkOneOf(bitsPerComponent, allowedBitsPerComponent, "BitsPerComponent"); err != nil {
		return nil, err
	}
	if err := checkOneOf(bitsPerFlag, allowedBitsPerFlag, "BitsPerFlag"); err != nil {
		return nil, err
	}
	if L := 2*2 + 2*nbComponents; len(decode) != L {
		return nil, fmt.Errorf("invalid Decode array length %d, expected %d", len(decode), L)
	}
	return &CoonsPatchMesh{
		Base:              base,
		BitsPerCoordinate: bitsPerCoordinate,
		BitsPerComponent:  bitsPerComponent,
		BitsPerFlag:       bitsPerFlag,
		Decode:            decode,
	}, nil
}

func (c *CoonsPatchMesh) ShadingType() int { return 6 }

func (c *CoonsPatchMesh) Dict() (Dict, []byte) {
	out := c.common(6)
	out["BitsPerCoordinate"] = c.BitsPerCoordinate
	out["BitsPerComponent"] = c.BitsPerComponent
	out["BitsPerFlag"] = c.BitsPerFlag
	out["Decode"] = c.Decode
	return out, c.data.bytes()
}

func (c *CoonsPatchMesh) nbComponents() int { return (len(c.Decode) - 4) / 2 }

// AddPatch appends one patch to the mesh data.
// With edge flag 0 the patch is standalone: 12 control points and
// 4 corner colors are required. With flags 1 to 3 one edge is
// shared with the previous patch: 8 points and 2 colors.
// Points are (x, y) pairs; each color has one value per component.
func (c *CoonsPatchMesh) AddPatch(edgeFlag uint8, points [][2]float64, colors [][]float64) error {
	switch edgeFlag {
	case 0:
		if len(points) != 12 || len(colors) != 4 {
			return fmt.Errorf("edge flag 0 expects 12 points and 4 colors, got %d and %d",
				len(points), len(colors))
		}
	case 1, 2, 3:
		if len(points) != 8 || len(colors) != 2 {
			return fmt.Errorf("edge flag %d expects 8 points and 2 colors, got %d and %d",
				edgeFlag, len(points), len(colors))
		}
	default:
		return fmt.Errorf("invalid edge flag %d", edgeFlag)
	}
	nbC := c.nbComponents()
	for _, col := range colors {
		if len(col) != nbC {
			return fmt.Errorf("expected %d color components, got %d", nbC, len(col))
		}
	}

	c.data.write(uint32(edgeFlag), c.BitsPerFlag)
	for _, p := range points {
		c.data.write(c.quantize(p[0], c.Decode[0], c.Decode[1], c.BitsPerCoordinate), c.BitsPerCoordinate)
		c.data.write(c.quantize(p[1], c.Decode[2], c.Decode[3], c.BitsPerCoordinate), c.BitsPerCoordinate)
	}
	for _, col := range colors {
		for i, v := range col {
			min, max := c.Decode[4+2*i], c.Decode[4+2*i+1]
			c.data.write(c.quantize(v, min, max, c.BitsPerComponent), c.BitsPerComponent)
		}
	}
	return nil
}

// quantize maps v from [min, max] to an integer on `bits` bits,
// clamping out of range values.
func (c *CoonsPatchMesh) quantize(v, min, max float64, bits int) uint32 {
	maxInt := float64(uint64(1)<<uint(bits) - 1)
	if max == min {
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return uint32(math.Round(t * maxInt))
}

// bitWriter packs values most significant bit first.
type bitWriter struct {
	out     []byte
	current uint8 // pending byte
	nbits   int   // bits used in current
}

func (w *bitWriter) write(v uint32, bits int) {
	for i := bits - 1; i >= 0; i-- {
		bit := uint8(v>>uint(i)) & 1
		w.current = w.current<<1 | bit
		w.nbits++
		if w.nbits == 8 {
			w.out = append(w.out, w.current)
			w.current, w.nbits = 0, 0
		}
	}
}

// bytes returns the packed data, padding the last byte with zeros.
func (w *bitWriter) bytes() []byte {
	out := w.out
	if w.nbits != 0 {
		out = append(out, w.current<<uint(8-w.nbits))
	}
	return out
}
