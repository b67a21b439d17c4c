package basis

import "fmt"

// Lagrange1D is a nodal Lagrange basis on a fixed set of distinct 1D nodes.
type Lagrange1D struct {
	nodes []float64
}

// NewLagrange1D builds a Lagrange basis on the given nodes. The nodes must be
// distinct; they are not copied.
func NewLagrange1D(nodes []float64) (*Lagrange1D, error) {
	if len(nodes) < 1 {
		return nil, fmt.Errorf("lagrange basis requires at least one node")
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i] == nodes[i-1] {
			return nil, fmt.Errorf("lagrange basis nodes must be distinct, got repeated %g", nodes[i])
		}
	}
	return &Lagrange1D{nodes: nodes}, nil
}

// Size returns the number of basis functions.
func (l *Lagrange1D) Size() int { return len(l.nodes) }

// Nodes returns the underlying node positions.
func (l *Lagrange1D) Nodes() []float64 { return l.nodes }

// Eval writes the value of every basis function at x into vals,
// which must have length Size().
func (l *Lagrange1D) Eval(x float64, vals []float64) {
	for j, xj := range l.nodes {
		v := 1.0
		for k, xk := range l.nodes {
			if k != j {
				v *= (x - xk) / (xj - xk)
			}
		}
		vals[j] = v
	}
}

// EvalDeriv writes basis values and first derivatives at x into vals and
// derivs, each of length Size().
func (l *Lagrange1D) EvalDeriv(x float64, vals, derivs []float64) {
	l.Eval(x, vals)
	for j, xj := range l.nodes {
		d := 0.0
		for m, xm := range l.nodes {
			if m == j {
				continue
			}
			p := 1.0 / (xj - xm)
			for k, xk := range l.nodes {
				if k != j && k != m {
					p *= (x - xk) / (xj - xk)
				}
			}
			d += p
		}
		derivs[j] = d
	}
}
