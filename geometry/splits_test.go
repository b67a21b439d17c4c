package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTables(t *testing.T) {
	cases := []struct {
		geom     Type
		sub      Type
		numVerts int
		numSub   int
	}{
		{Triangle, Quad, 7, 3},
		{Tetrahedron, Hex, 15, 4},
		{Prism, Hex, 14, 3},
	}
	for _, c := range cases {
		s, err := SplitFor(c.geom)
		if err != nil {
			t.Fatalf("SplitFor(%v): %v", c.geom, err)
		}
		assert.Equal(t, c.sub, s.SubType)
		assert.Equal(t, c.numVerts, len(s.Vertices))
		assert.Equal(t, c.numSub, s.NumSubElements())
		for _, conn := range s.Connectivity {
			assert.Equal(t, c.sub.NumVerts(), len(conn))
			for _, v := range conn {
				assert.Less(t, v, len(s.Vertices))
			}
		}
	}

	if _, err := SplitFor(Quad); err == nil {
		t.Error("SplitFor(Quad) should fail: not a simplex")
	}
}

// The union of the sub-element volumes must equal the reference simplex
// volume exactly: tri 1/2, tet 1/6, prism 1/2.
func TestSplitVolumesAreWatertight(t *testing.T) {
	cases := []struct {
		geom Type
		want float64
	}{
		{Triangle, 0.5},
		{Tetrahedron, 1.0 / 6.0},
		{Prism, 0.5},
	}
	for _, c := range cases {
		s, _ := SplitFor(c.geom)
		total := 0.0
		for _, conn := range s.Connectivity {
			if s.SubType == Quad {
				total += quadArea(s.Vertices, conn)
			} else {
				total += hexVolume(s.Vertices, conn)
			}
		}
		assert.InDelta(t, c.want, total, 1e-14, "split volume for %v", c.geom)
	}
}

// quadArea computes the area of a straight-sided quadrilateral by the
// shoelace formula. Connectivity orientation is not guaranteed, so the
// absolute value is taken.
func quadArea(verts [][]float64, conn []int) float64 {
	a := 0.0
	for i := 0; i < 4; i++ {
		p, q := verts[conn[i]], verts[conn[(i+1)%4]]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return math.Abs(a) / 2
}

// hexVolume integrates the trilinear map's Jacobian determinant with 2-point
// Gauss per axis, which is exact for trilinear cells.
func hexVolume(verts [][]float64, conn []int) float64 {
	g := []float64{0.5 - 0.5/math.Sqrt(3), 0.5 + 0.5/math.Sqrt(3)}
	vol := 0.0
	for _, x := range g {
		for _, y := range g {
			for _, z := range g {
				vol += 0.125 * trilinearDetJ(verts, conn, x, y, z)
			}
		}
	}
	return math.Abs(vol)
}

func trilinearDetJ(verts [][]float64, conn []int, x, y, z float64) float64 {
	// Shape gradients for vertices ordered bottom CCW then top CCW.
	dN := [8][3]float64{
		{-(1 - y) * (1 - z), -(1 - x) * (1 - z), -(1 - x) * (1 - y)},
		{(1 - y) * (1 - z), -x * (1 - z), -x * (1 - y)},
		{y * (1 - z), x * (1 - z), -x * y},
		{-y * (1 - z), (1 - x) * (1 - z), -(1 - x) * y},
		{-(1 - y) * z, -(1 - x) * z, (1 - x) * (1 - y)},
		{(1 - y) * z, -x * z, x * (1 - y)},
		{y * z, x * z, x * y},
		{-y * z, (1 - x) * z, (1 - x) * y},
	}
	var J [3][3]float64
	for c := 0; c < 8; c++ {
		v := verts[conn[c]]
		for a := 0; a < 3; a++ {
			for d := 0; d < 3; d++ {
				J[d][a] += dN[c][a] * v[d]
			}
		}
	}
	return J[0][0]*(J[1][1]*J[2][2]-J[1][2]*J[2][1]) -
		J[0][1]*(J[1][0]*J[2][2]-J[1][2]*J[2][0]) +
		J[0][2]*(J[1][0]*J[2][1]-J[1][1]*J[2][0])
}
