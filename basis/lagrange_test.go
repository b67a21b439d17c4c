package basis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLagrange1DCardinal(t *testing.T) {
	for p := 1; p <= 5; p++ {
		l, err := NewLagrange1D(LobattoNodes(p))
		if err != nil {
			t.Fatal(err)
		}
		vals := make([]float64, l.Size())
		for j, xj := range l.Nodes() {
			l.Eval(xj, vals)
			for k := range vals {
				want := 0.0
				if k == j {
					want = 1.0
				}
				assert.InDelta(t, want, vals[k], 1e-13, "order %d, phi_%d(x_%d)", p, k, j)
			}
		}
	}
}

func TestLagrange1DPartitionOfUnity(t *testing.T) {
	l, _ := NewLagrange1D(LobattoNodes(4))
	vals := make([]float64, l.Size())
	derivs := make([]float64, l.Size())
	for _, x := range []float64{0, 0.13, 0.5, 0.77, 1} {
		l.EvalDeriv(x, vals, derivs)
		sumV, sumD := 0.0, 0.0
		for k := range vals {
			sumV += vals[k]
			sumD += derivs[k]
		}
		assert.InDelta(t, 1.0, sumV, 1e-13)
		assert.InDelta(t, 0.0, sumD, 1e-11)
	}
}

func TestLagrange1DLinearReproduction(t *testing.T) {
	l, _ := NewLagrange1D(LobattoNodes(3))
	nodes := l.Nodes()
	vals := make([]float64, l.Size())
	derivs := make([]float64, l.Size())
	// f(x) = 3x - 1 sampled at the nodes.
	for _, x := range []float64{0.1, 0.42, 0.9} {
		l.EvalDeriv(x, vals, derivs)
		f, df := 0.0, 0.0
		for k, xk := range nodes {
			f += vals[k] * (3*xk - 1)
			df += derivs[k] * (3*xk - 1)
		}
		assert.InDelta(t, 3*x-1, f, 1e-13)
		assert.InDelta(t, 3.0, df, 1e-11)
	}
}

func TestLagrange1DRejectsDuplicateNodes(t *testing.T) {
	if _, err := NewLagrange1D([]float64{0, 0.5, 0.5, 1}); err == nil {
		t.Error("duplicate nodes should be rejected")
	}
}
