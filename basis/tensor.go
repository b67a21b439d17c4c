package basis

import (
	"fmt"

	"github.com/notargets/findpts/geometry"
	"gonum.org/v1/gonum/mat"
)

// TensorBasis is the Gauss-Lobatto tensor-product nodal basis on the
// reference square or cube [0,1]^d. Node i of the lexicographic lattice has
// index i = ix + n*iy (+ n^2*iz) with x varying fastest.
type TensorBasis struct {
	Geom  geometry.Type
	Order int
	Dim   int
	N1D   int // nodes per axis
	Np    int
	L1D   *Lagrange1D
}

// NewTensorBasis builds the order-p tensor basis for Quad or Hex.
func NewTensorBasis(geom geometry.Type, order int) (*TensorBasis, error) {
	if !geom.IsTensorProduct() {
		return nil, fmt.Errorf("element type %v does not carry a tensor-product basis", geom)
	}
	if err := geometry.Check(geom, order); err != nil {
		return nil, err
	}
	l1d, err := NewLagrange1D(LobattoNodes(order))
	if err != nil {
		return nil, err
	}
	return &TensorBasis{
		Geom:  geom,
		Order: order,
		Dim:   geom.Dim(),
		N1D:   order + 1,
		Np:    geom.NumDofs(order),
		L1D:   l1d,
	}, nil
}

// LexNodes returns the reference coordinates of the node lattice in
// lexicographic order, one slice of length Np per dimension.
func (b *TensorBasis) LexNodes() [][]float64 {
	nodes1d := b.L1D.Nodes()
	out := make([][]float64, b.Dim)
	for d := range out {
		out[d] = make([]float64, b.Np)
	}
	nz := 1
	if b.Dim == 3 {
		nz = b.N1D
	}
	p := 0
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < b.N1D; iy++ {
			for ix := 0; ix < b.N1D; ix++ {
				out[0][p] = nodes1d[ix]
				out[1][p] = nodes1d[iy]
				if b.Dim == 3 {
					out[2][p] = nodes1d[iz]
				}
				p++
			}
		}
	}
	return out
}

// Eval writes the value of every lex-ordered basis function at the reference
// point ref (length Dim) into vals (length Np).
func (b *TensorBasis) Eval(ref, vals []float64) {
	vx := make([]float64, b.N1D)
	vy := make([]float64, b.N1D)
	b.L1D.Eval(ref[0], vx)
	b.L1D.Eval(ref[1], vy)
	if b.Dim == 2 {
		p := 0
		for iy := 0; iy < b.N1D; iy++ {
			for ix := 0; ix < b.N1D; ix++ {
				vals[p] = vx[ix] * vy[iy]
				p++
			}
		}
		return
	}
	vz := make([]float64, b.N1D)
	b.L1D.Eval(ref[2], vz)
	p := 0
	for iz := 0; iz < b.N1D; iz++ {
		for iy := 0; iy < b.N1D; iy++ {
			for ix := 0; ix < b.N1D; ix++ {
				vals[p] = vx[ix] * vy[iy] * vz[iz]
				p++
			}
		}
	}
}

// InterpMatrix returns the [len(pts[0]) x Np] operator that interpolates
// lex-ordered nodal values to the given reference points. pts holds one
// coordinate slice per dimension.
func (b *TensorBasis) InterpMatrix(pts [][]float64) *mat.Dense {
	npts := len(pts[0])
	B := mat.NewDense(npts, b.Np, nil)
	ref := make([]float64, b.Dim)
	row := make([]float64, b.Np)
	for i := 0; i < npts; i++ {
		for d := 0; d < b.Dim; d++ {
			ref[d] = pts[d][i]
		}
		b.Eval(ref, row)
		B.SetRow(i, row)
	}
	return B
}
