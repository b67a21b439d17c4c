package basis

import (
	"testing"

	"github.com/notargets/findpts/geometry"
	"github.com/stretchr/testify/assert"
)

// The interpolation operator at the basis's own nodes must be the identity.
func TestSimplexBasisCardinal(t *testing.T) {
	for _, geom := range []geometry.Type{geometry.Triangle, geometry.Tetrahedron, geometry.Prism} {
		for order := 1; order <= 3; order++ {
			b, err := NewSimplexBasis(geom, order)
			if err != nil {
				t.Fatalf("%v order %d: %v", geom, order, err)
			}
			assert.Equal(t, geom.NumDofs(order), b.Np)
			B := b.InterpMatrix(b.Nodes())
			for i := 0; i < b.Np; i++ {
				for j := 0; j < b.Np; j++ {
					want := 0.0
					if i == j {
						want = 1.0
					}
					assert.InDelta(t, want, B.At(i, j), 1e-9,
						"%v order %d: B[%d,%d]", geom, order, i, j)
				}
			}
		}
	}
}

// Interpolating nodal samples of an affine function must reproduce it at
// arbitrary interior points.
func TestSimplexBasisAffineReproduction(t *testing.T) {
	pts2 := [][]float64{{0.2, 0.1, 0.3}, {0.15, 0.6, 0.33}}
	pts3 := [][]float64{{0.2, 0.1, 0.25}, {0.15, 0.3, 0.25}, {0.1, 0.2, 0.25}}

	cases := []struct {
		geom geometry.Type
		pts  [][]float64
	}{
		{geometry.Triangle, pts2},
		{geometry.Tetrahedron, pts3},
		{geometry.Prism, pts3},
	}
	for _, c := range cases {
		b, err := NewSimplexBasis(c.geom, 2)
		if err != nil {
			t.Fatal(err)
		}
		dim := c.geom.Dim()
		f := func(x []float64) float64 {
			v := 1.0
			for d := 0; d < dim; d++ {
				v += float64(d+1) * x[d]
			}
			return v
		}
		nodes := b.Nodes()
		nodal := make([]float64, b.Np)
		x := make([]float64, dim)
		for j := 0; j < b.Np; j++ {
			for d := 0; d < dim; d++ {
				x[d] = nodes[d][j]
			}
			nodal[j] = f(x)
		}
		B := b.InterpMatrix(c.pts)
		for i := range c.pts[0] {
			got := 0.0
			for j := 0; j < b.Np; j++ {
				got += B.At(i, j) * nodal[j]
			}
			for d := 0; d < dim; d++ {
				x[d] = c.pts[d][i]
			}
			assert.InDelta(t, f(x), got, 1e-10, "%v at point %d", c.geom, i)
		}
	}
}

func TestSimplexBasisRejectsTensorShapes(t *testing.T) {
	if _, err := NewSimplexBasis(geometry.Quad, 2); err == nil {
		t.Error("quad should not build a simplex basis")
	}
	if _, err := NewSimplexBasis(geometry.Triangle, 0); err == nil {
		t.Error("order 0 should be rejected")
	}
}
