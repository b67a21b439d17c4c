// Package basis provides the nodal bases behind findpts: 1D Gauss-Lobatto
// Lagrange bases, their tensor products on quads and hexes, PKD-based nodal
// bases on simplices, and the lexicographic dof permutations that connect the
// two orderings.
package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiP evaluates the normalized Jacobi polynomial of type (alpha,beta) at
// points x for order n.
func JacobiP(x []float64, alpha, beta float64, n int) []float64 {
	np := len(x)
	P := make([]float64, np)

	gamma0 := math.Pow(2, alpha+beta+1) / (alpha + beta + 1) *
		math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(alpha+beta+1)

	for i := range P {
		P[i] = 1.0 / math.Sqrt(gamma0)
	}
	if n == 0 {
		return P
	}

	gamma1 := (alpha + 1) * (beta + 1) / (alpha + beta + 3) * gamma0
	Pcur := make([]float64, np)
	for i := range Pcur {
		Pcur[i] = ((alpha+beta+2)*x[i]/2 + (alpha-beta)/2) / math.Sqrt(gamma1)
	}
	if n == 1 {
		return Pcur
	}

	// Three-term recurrence.
	aold := 2.0 / (2.0 + alpha + beta) * math.Sqrt((alpha+1)*(beta+1)/(alpha+beta+3))
	Pprev := P
	for i := 1; i < n; i++ {
		h1 := 2*float64(i) + alpha + beta
		fi := float64(i)
		anew := 2.0 / (h1 + 2) * math.Sqrt((fi+1)*(fi+1+alpha+beta)*
			(fi+1+alpha)*(fi+1+beta)/(h1+1)/(h1+3))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2)

		Pnext := make([]float64, np)
		for j := range Pnext {
			Pnext[j] = (-aold*Pprev[j] + (x[j]-bnew)*Pcur[j]) / anew
		}
		Pprev, Pcur = Pcur, Pnext
		aold = anew
	}
	return Pcur
}

// GradJacobiP evaluates the derivative of the Jacobi polynomial of type
// (alpha,beta) at points x for order n.
func GradJacobiP(x []float64, alpha, beta float64, n int) []float64 {
	dP := make([]float64, len(x))
	if n == 0 {
		return dP
	}
	Ptemp := JacobiP(x, alpha+1, beta+1, n-1)
	fac := math.Sqrt(float64(n) * (float64(n) + alpha + beta + 1))
	for i := range dP {
		dP[i] = fac * Ptemp[i]
	}
	return dP
}

// JacobiGQ computes the order-N Gauss quadrature points and weights for the
// Jacobi polynomial of type (alpha,beta), via the Golub-Welsch eigenproblem.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	if N == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2)}, []float64{2}
	}

	h1 := make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	d0 := make([]float64, N+1)
	fac := beta*beta - alpha*alpha
	for i := 0; i < N+1; i++ {
		d0[i] = fac / (h1[i] * (h1[i] + 2))
	}
	if alpha+beta < 10*1e-16 {
		d0[0] = 0
	}

	d1 := make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		d1[i] = 2.0 / (h1[i] + 2.0) * math.Sqrt(
			ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/(h1[i]+1)/(h1[i]+3))
	}

	JJ := newSymTriDiagonal(d0, d1)
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("jacobi quadrature: eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	V := mat.NewDense(len(X), len(X), nil)
	eig.VectorsTo(V)
	W = make([]float64, len(X))
	g0 := gamma0(alpha, beta)
	for i := range W {
		v := V.At(0, i)
		W[i] = v * v * g0
	}
	return X, W
}

// JacobiGL computes the order-N Gauss-Lobatto points on [-1,1], the zeros of
// (1-x^2) P'_N^{alpha,beta}(x).
func JacobiGL(alpha, beta float64, N int) []float64 {
	if N == 0 {
		return []float64{0}
	}
	if N == 1 {
		return []float64{-1, 1}
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	x := make([]float64, N+1)
	x[0] = -1
	copy(x[1:N], xint)
	x[N] = 1
	return x
}

// LobattoNodes returns the order-p Gauss-Lobatto nodes mapped to [0,1].
func LobattoNodes(p int) []float64 {
	gl := JacobiGL(0, 0, p)
	nodes := make([]float64, len(gl))
	for i, x := range gl {
		nodes[i] = (x + 1) / 2
	}
	// Pin the endpoints against roundoff from the eigen solve.
	nodes[0] = 0
	nodes[len(nodes)-1] = 1
	return nodes
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1
	return math.Gamma(alpha+1) * math.Gamma(beta+1) * math.Pow(2, ab1) / ab1 /
		math.Gamma(ab1)
}

func newSymTriDiagonal(d0, d1 []float64) *mat.SymDense {
	n := len(d0)
	T := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		T.SetSym(i, i, d0[i])
		if i < n-1 {
			T.SetSym(i, i+1, d1[i])
		}
	}
	return T
}
