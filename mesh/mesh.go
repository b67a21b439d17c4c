// Package mesh provides the minimal mesh and nodal-field containers findpts
// operates on: single-shape meshes of possibly curved high-order elements,
// with per-element nodal storage.
package mesh

import (
	"fmt"

	"github.com/notargets/findpts/basis"
	"github.com/notargets/findpts/geometry"
	"gonum.org/v1/gonum/mat"
)

// Mesh is a collection of elements of one shape and one polynomial order.
// Element geometry is isoparametric: the physical map of each element is the
// nodal interpolant of its node coordinates, stored native-ordered in Nodes.
// Mixed-shape meshes are rejected at construction.
type Mesh struct {
	Geom  geometry.Type
	Dim   int
	Order int
	NE    int

	nodes *GridFunction

	tb     *basis.TensorBasis
	sb     *basis.SimplexBasis
	lexMap []int // tensor shapes only, resolved at construction
}

// New builds a straight-sided mesh from corner vertices and element
// connectivity. verts holds one point (length = shape dimension) per vertex;
// elems holds corner vertex indices per element, in the shape's canonical
// corner order. Node coordinates for the order-p basis are generated from the
// corner interpolant; curve the mesh afterwards with SetNodes.
func New(geom geometry.Type, order int, verts [][]float64, elems [][]int) (*Mesh, error) {
	if err := geometry.Check(geom, order); err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("mesh has no elements")
	}
	dim := geom.Dim()
	nv := geom.NumVerts()
	for v, p := range verts {
		if len(p) != dim {
			return nil, fmt.Errorf("vertex %d has %d coordinates, want %d", v, len(p), dim)
		}
	}

	m := &Mesh{Geom: geom, Dim: dim, Order: order, NE: len(elems)}
	if err := m.initBasis(); err != nil {
		return nil, err
	}

	refNodes := m.NativeRefNodes()
	ndof := m.NumDofs()
	m.nodes = NewGridFunction(m, dim)
	corner := make([][]float64, nv)
	pt := make([]float64, dim)
	for e, conn := range elems {
		if len(conn) != nv {
			return nil, fmt.Errorf("element %d: %v needs %d corner vertices, got %d",
				e, geom, nv, len(conn))
		}
		for c, vi := range conn {
			if vi < 0 || vi >= len(verts) {
				return nil, fmt.Errorf("element %d references vertex %d out of range", e, vi)
			}
			corner[c] = verts[vi]
		}
		for j := 0; j < ndof; j++ {
			for d := 0; d < dim; d++ {
				pt[d] = refNodes[d][j]
			}
			x := cornerInterp(geom, corner, pt)
			for d := 0; d < dim; d++ {
				m.nodes.SetElemValue(e, d, j, x[d])
			}
		}
	}
	return m, nil
}

func (m *Mesh) initBasis() error {
	var err error
	if m.Geom.IsTensorProduct() {
		if m.tb, err = basis.NewTensorBasis(m.Geom, m.Order); err != nil {
			return err
		}
		m.lexMap, err = basis.LexOrderMap(m.Geom, m.Order)
	} else {
		m.sb, err = basis.NewSimplexBasis(m.Geom, m.Order)
	}
	return err
}

// NumDofs returns the nodal dof count per element.
func (m *Mesh) NumDofs() int { return m.Geom.NumDofs(m.Order) }

// Nodes returns the nodal coordinate field (vdim = Dim, native dof order).
func (m *Mesh) Nodes() *GridFunction { return m.nodes }

// SetNodes replaces the nodal coordinates, curving the mesh. The field must
// live on this mesh with vdim = Dim.
func (m *Mesh) SetNodes(g *GridFunction) error {
	if g.Mesh() != m {
		return fmt.Errorf("node field is not defined on this mesh")
	}
	if g.VDim != m.Dim {
		return fmt.Errorf("node field has vdim %d, want %d", g.VDim, m.Dim)
	}
	m.nodes = g
	return nil
}

// NativeRefNodes returns the reference coordinates of the element's nodal
// points in native dof order, one slice of length NumDofs per dimension.
func (m *Mesh) NativeRefNodes() [][]float64 {
	if m.sb != nil {
		return m.sb.Nodes()
	}
	lexNodes := m.tb.LexNodes()
	out := make([][]float64, m.Dim)
	for d := range out {
		out[d] = make([]float64, m.NumDofs())
		for l, x := range lexNodes[d] {
			out[d][m.lexMap[l]] = x
		}
	}
	return out
}

// NodalInterp returns the [npts x NumDofs] operator that interpolates
// native-ordered per-element nodal values to the given reference points (one
// coordinate slice per dimension).
func (m *Mesh) NodalInterp(pts [][]float64) *mat.Dense {
	if m.sb != nil {
		return m.sb.InterpMatrix(pts)
	}
	Blex := m.tb.InterpMatrix(pts)
	npts, ndof := Blex.Dims()
	B := mat.NewDense(npts, ndof, nil)
	for l := 0; l < ndof; l++ {
		for i := 0; i < npts; i++ {
			B.Set(i, m.lexMap[l], Blex.At(i, l))
		}
	}
	return B
}

// Transform evaluates the physical map of one element at a reference point,
// writing the physical coordinates into out (length Dim).
func (m *Mesh) Transform(elem int, ref, out []float64) {
	pts := make([][]float64, m.Dim)
	for d := 0; d < m.Dim; d++ {
		pts[d] = []float64{ref[d]}
	}
	B := m.NodalInterp(pts)
	for d := 0; d < m.Dim; d++ {
		vals := m.nodes.ElemValues(elem, d)
		acc := 0.0
		for j, v := range vals {
			acc += B.At(0, j) * v
		}
		out[d] = acc
	}
}

// cornerInterp evaluates the straight-sided corner map at a reference point.
func cornerInterp(geom geometry.Type, v [][]float64, ref []float64) []float64 {
	switch geom {
	case geometry.Quad:
		x, y := ref[0], ref[1]
		return blend(
			[]float64{(1 - x) * (1 - y), x * (1 - y), x * y, (1 - x) * y}, v)
	case geometry.Hex:
		x, y, z := ref[0], ref[1], ref[2]
		return blend([]float64{
			(1 - x) * (1 - y) * (1 - z), x * (1 - y) * (1 - z),
			x * y * (1 - z), (1 - x) * y * (1 - z),
			(1 - x) * (1 - y) * z, x * (1 - y) * z,
			x * y * z, (1 - x) * y * z,
		}, v)
	case geometry.Triangle:
		x, y := ref[0], ref[1]
		return blend([]float64{1 - x - y, x, y}, v)
	case geometry.Tetrahedron:
		x, y, z := ref[0], ref[1], ref[2]
		return blend([]float64{1 - x - y - z, x, y, z}, v)
	default: // Prism
		x, y, z := ref[0], ref[1], ref[2]
		return blend([]float64{
			(1 - x - y) * (1 - z), x * (1 - z), y * (1 - z),
			(1 - x - y) * z, x * z, y * z,
		}, v)
	}
}

func blend(w []float64, v [][]float64) []float64 {
	out := make([]float64, len(v[0]))
	for c, wc := range w {
		for d := range out {
			out[d] += wc * v[c][d]
		}
	}
	return out
}
