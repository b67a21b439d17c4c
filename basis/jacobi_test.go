package basis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLobattoNodes(t *testing.T) {
	for p := 1; p <= 6; p++ {
		nodes := LobattoNodes(p)
		assert.Len(t, nodes, p+1)
		assert.Equal(t, 0.0, nodes[0])
		assert.Equal(t, 1.0, nodes[p])
		// Ascending and symmetric about 0.5.
		for i := 1; i <= p; i++ {
			assert.Greater(t, nodes[i], nodes[i-1])
		}
		for i := 0; i <= p; i++ {
			assert.InDelta(t, 1-nodes[p-i], nodes[i], 1e-13)
		}
	}
	// Order 2 has the midpoint.
	assert.InDelta(t, 0.5, LobattoNodes(2)[1], 1e-14)
	// Order 3 interior nodes are at (1 +- 1/sqrt(5))/2.
	n3 := LobattoNodes(3)
	assert.InDelta(t, (1-1/math.Sqrt(5))/2, n3[1], 1e-13)
	assert.InDelta(t, (1+1/math.Sqrt(5))/2, n3[2], 1e-13)
}

// The normalized Legendre polynomials satisfy P_n(1) = sqrt((2n+1)/2).
func TestJacobiPEndpointValues(t *testing.T) {
	for n := 0; n <= 5; n++ {
		got := JacobiP([]float64{1}, 0, 0, n)[0]
		want := math.Sqrt((2*float64(n) + 1) / 2)
		assert.InDelta(t, want, got, 1e-12, "P_%d(1)", n)
	}
}

// Normalized Legendre polynomials are orthonormal on [-1,1]; check with
// Gauss quadrature from JacobiGQ.
func TestJacobiPOrthonormal(t *testing.T) {
	x, w := JacobiGQ(0, 0, 8)
	for i := 0; i <= 4; i++ {
		for j := 0; j <= 4; j++ {
			Pi := JacobiP(x, 0, 0, i)
			Pj := JacobiP(x, 0, 0, j)
			dot := 0.0
			for k := range x {
				dot += w[k] * Pi[k] * Pj[k]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, dot, 1e-12, "<P_%d, P_%d>", i, j)
		}
	}
}

func TestGradJacobiP(t *testing.T) {
	const h = 1e-6
	pts := []float64{-0.7, -0.2, 0.1, 0.6}
	for n := 1; n <= 4; n++ {
		dP := GradJacobiP(pts, 0, 0, n)
		for k, x := range pts {
			fd := (JacobiP([]float64{x + h}, 0, 0, n)[0] -
				JacobiP([]float64{x - h}, 0, 0, n)[0]) / (2 * h)
			assert.InDelta(t, fd, dP[k], 1e-6, "dP_%d at %g", n, x)
		}
	}
}
