package basis

import (
	"fmt"
	"math"

	"github.com/notargets/findpts/geometry"
	"gonum.org/v1/gonum/mat"
)

// SimplexBasis is a nodal basis on the unit triangle, tetrahedron or prism,
// built on the orthonormal PKD modal basis through a Vandermonde matrix.
// Triangle and tetrahedron nodes form the uniform lattice on the unit
// simplex; prism nodes are the triangle lattice tensored with Gauss-Lobatto
// nodes along z.
type SimplexBasis struct {
	Geom  geometry.Type
	Order int
	Dim   int
	Np    int

	nodes [][]float64 // [Dim][Np] reference coordinates, native order
	vinv  *mat.Dense
}

// NewSimplexBasis builds the order-p nodal basis for a simplex shape.
func NewSimplexBasis(geom geometry.Type, order int) (*SimplexBasis, error) {
	if !geom.IsSimplex() {
		return nil, fmt.Errorf("element type %v is not a simplex shape", geom)
	}
	if err := geometry.Check(geom, order); err != nil {
		return nil, err
	}

	b := &SimplexBasis{
		Geom:  geom,
		Order: order,
		Dim:   geom.Dim(),
		Np:    geom.NumDofs(order),
	}
	b.nodes = simplexNodes(geom, order)

	V := b.vandermonde(b.nodes)
	b.vinv = mat.NewDense(b.Np, b.Np, nil)
	if err := b.vinv.Inverse(V); err != nil {
		return nil, fmt.Errorf("%v order %d: nodal Vandermonde is singular: %w", geom, order, err)
	}
	return b, nil
}

// Nodes returns the reference coordinates of the nodal points, one slice of
// length Np per dimension, in the basis's native dof order.
func (b *SimplexBasis) Nodes() [][]float64 { return b.nodes }

// InterpMatrix returns the [npts x Np] operator that interpolates native-
// ordered nodal values to the given reference points (one coordinate slice
// per dimension).
func (b *SimplexBasis) InterpMatrix(pts [][]float64) *mat.Dense {
	Vp := b.vandermonde(pts)
	npts := len(pts[0])
	B := mat.NewDense(npts, b.Np, nil)
	B.Mul(Vp, b.vinv)
	return B
}

// vandermonde evaluates every PKD mode at the given points; column j of the
// result holds mode j.
func (b *SimplexBasis) vandermonde(pts [][]float64) *mat.Dense {
	npts := len(pts[0])
	V := mat.NewDense(npts, b.Np, nil)
	p := b.Order

	switch b.Geom {
	case geometry.Triangle:
		r, s := biunit(pts[0]), biunit(pts[1])
		col := 0
		for i := 0; i <= p; i++ {
			for j := 0; j <= p-i; j++ {
				V.SetCol(col, simplex2DP(r, s, i, j))
				col++
			}
		}
	case geometry.Tetrahedron:
		r, s, t := biunit(pts[0]), biunit(pts[1]), biunit(pts[2])
		col := 0
		for i := 0; i <= p; i++ {
			for j := 0; j <= p-i; j++ {
				for k := 0; k <= p-i-j; k++ {
					V.SetCol(col, simplex3DP(r, s, t, i, j, k))
					col++
				}
			}
		}
	case geometry.Prism:
		r, s, z := biunit(pts[0]), biunit(pts[1]), biunit(pts[2])
		col := 0
		for i := 0; i <= p; i++ {
			for j := 0; j <= p-i; j++ {
				tri := simplex2DP(r, s, i, j)
				for k := 0; k <= p; k++ {
					pz := JacobiP(z, 0, 0, k)
					c := make([]float64, npts)
					for n := range c {
						c[n] = tri[n] * pz[n]
					}
					V.SetCol(col, c)
					col++
				}
			}
		}
	}
	return V
}

// simplexNodes returns the nodal lattice for a shape, unit-simplex coords.
func simplexNodes(geom geometry.Type, p int) [][]float64 {
	fp := float64(p)
	switch geom {
	case geometry.Triangle:
		np := geom.NumDofs(p)
		x := make([]float64, 0, np)
		y := make([]float64, 0, np)
		for j := 0; j <= p; j++ {
			for i := 0; i <= p-j; i++ {
				x = append(x, float64(i)/fp)
				y = append(y, float64(j)/fp)
			}
		}
		return [][]float64{x, y}
	case geometry.Tetrahedron:
		np := geom.NumDofs(p)
		x := make([]float64, 0, np)
		y := make([]float64, 0, np)
		z := make([]float64, 0, np)
		for k := 0; k <= p; k++ {
			for j := 0; j <= p-k; j++ {
				for i := 0; i <= p-j-k; i++ {
					x = append(x, float64(i)/fp)
					y = append(y, float64(j)/fp)
					z = append(z, float64(k)/fp)
				}
			}
		}
		return [][]float64{x, y, z}
	default: // Prism
		np := geom.NumDofs(p)
		gll := LobattoNodes(p)
		x := make([]float64, 0, np)
		y := make([]float64, 0, np)
		z := make([]float64, 0, np)
		for k := 0; k <= p; k++ {
			for j := 0; j <= p; j++ {
				for i := 0; i <= p-j; i++ {
					x = append(x, float64(i)/fp)
					y = append(y, float64(j)/fp)
					z = append(z, gll[k])
				}
			}
		}
		return [][]float64{x, y, z}
	}
}

// biunit maps unit-interval coordinates to [-1,1].
func biunit(x []float64) []float64 {
	r := make([]float64, len(x))
	for i, v := range x {
		r[i] = 2*v - 1
	}
	return r
}

// rsToAB converts triangle (r,s) coordinates to collapsed (a,b) coordinates.
func rsToAB(r, s []float64) (a, b []float64) {
	n := len(r)
	a = make([]float64, n)
	b = make([]float64, n)
	for i := 0; i < n; i++ {
		if s[i] != 1 {
			a[i] = 2*(1+r[i])/(1-s[i]) - 1
		} else {
			a[i] = -1
		}
		b[i] = s[i]
	}
	return
}

// rstToABC converts tetrahedron (r,s,t) coordinates to collapsed (a,b,c).
func rstToABC(r, s, t []float64) (a, b, c []float64) {
	const tol = 1e-12
	n := len(r)
	a = make([]float64, n)
	b = make([]float64, n)
	c = make([]float64, n)
	for i := 0; i < n; i++ {
		if math.Abs(s[i]+t[i]) > tol {
			a[i] = 2*(1+r[i])/(-s[i]-t[i]) - 1
		} else {
			a[i] = -1
		}
		if math.Abs(t[i]-1) > tol {
			b[i] = 2*(1+s[i])/(1-t[i]) - 1
		} else {
			b[i] = -1
		}
		c[i] = t[i]
	}
	return
}

// simplex2DP evaluates the 2D orthonormal PKD polynomial of order (i,j) on
// the biunit triangle.
func simplex2DP(r, s []float64, i, j int) []float64 {
	a, b := rsToAB(r, s)
	h1 := JacobiP(a, 0, 0, i)
	h2 := JacobiP(b, float64(2*i+1), 0, j)
	P := make([]float64, len(r))
	sq2 := math.Sqrt2
	for n := range P {
		P[n] = sq2 * h1[n] * h2[n] * intPow(1-b[n], i)
	}
	return P
}

// simplex3DP evaluates the 3D orthonormal PKD polynomial of order (i,j,k) on
// the biunit tetrahedron.
func simplex3DP(r, s, t []float64, i, j, k int) []float64 {
	a, b, c := rstToABC(r, s, t)
	h1 := JacobiP(a, 0, 0, i)
	h2 := JacobiP(b, float64(2*i+1), 0, j)
	h3 := JacobiP(c, float64(2*i+2*j+2), 0, k)
	P := make([]float64, len(r))
	sq8 := math.Sqrt(8)
	for n := range P {
		P[n] = sq8 * h1[n] * h2[n] * h3[n] *
			intPow((1-b[n])/2, i) * intPow((1-c[n])/2, i+j)
	}
	return P
}

func intPow(x float64, n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= x
	}
	return v
}
