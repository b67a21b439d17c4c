package mesh

import "fmt"

// GridFunction is a nodal field over a Mesh with VDim components. Storage is
// flat and component-major: component c of element e occupies
// Data[c*NE*ndof + e*ndof : c*NE*ndof + (e+1)*ndof], native dof order.
// Component views share the underlying storage.
type GridFunction struct {
	VDim int
	Data []float64

	m    *Mesh
	ndof int
}

// NewGridFunction allocates a zero field with vdim components on m.
func NewGridFunction(m *Mesh, vdim int) *GridFunction {
	ndof := m.NumDofs()
	return &GridFunction{
		VDim: vdim,
		Data: make([]float64, vdim*m.NE*ndof),
		m:    m,
		ndof: ndof,
	}
}

// Mesh returns the mesh the field is defined on.
func (g *GridFunction) Mesh() *Mesh { return g.m }

// Component returns a scalar view of component c sharing g's storage.
func (g *GridFunction) Component(c int) *GridFunction {
	if c < 0 || c >= g.VDim {
		panic(fmt.Sprintf("gridfunction component %d out of range [0,%d)", c, g.VDim))
	}
	n := g.m.NE * g.ndof
	return &GridFunction{
		VDim: 1,
		Data: g.Data[c*n : (c+1)*n],
		m:    g.m,
		ndof: g.ndof,
	}
}

// ElemValues returns the nodal values of component c on element e, in native
// dof order, as a view into the underlying storage.
func (g *GridFunction) ElemValues(e, c int) []float64 {
	base := c*g.m.NE*g.ndof + e*g.ndof
	return g.Data[base : base+g.ndof]
}

// SetElemValue sets nodal value j of component c on element e.
func (g *GridFunction) SetElemValue(e, c, j int, v float64) {
	g.Data[c*g.m.NE*g.ndof+e*g.ndof+j] = v
}

// Project fills the field by evaluating f at every nodal point. f receives
// the physical coordinates of a node and returns VDim component values.
func (g *GridFunction) Project(f func(x []float64) []float64) {
	m := g.m
	nodes := m.Nodes()
	x := make([]float64, m.Dim)
	for e := 0; e < m.NE; e++ {
		for j := 0; j < g.ndof; j++ {
			for d := 0; d < m.Dim; d++ {
				x[d] = nodes.ElemValues(e, d)[j]
			}
			vals := f(x)
			for c := 0; c < g.VDim; c++ {
				g.SetElemValue(e, c, j, vals[c])
			}
		}
	}
}
