// Package findpts locates arbitrary physical-space points inside a
// high-order, possibly curved finite-element mesh and interpolates nodal
// fields at the located points, for mesh-to-mesh and mesh-to-point transfer.
//
// A Locator flattens every element of a mesh into the lexicographic point
// lattice a spatial search engine consumes; simplex shapes (triangles,
// tetrahedra, prisms) are first decomposed into fixed tensor-product
// sub-elements and traced through each element's own curved map. Queries
// resolve to (element, reference coordinate) pairs, and fields defined on the
// same mesh can then be sampled at those locations component by component.
package findpts

import (
	"fmt"

	"github.com/notargets/findpts/mesh"
	"github.com/notargets/findpts/search"
)

// Engine setup defaults.
const (
	DefaultInflation     = 0.1   // relative bounding-box inflation
	DefaultNewtonTol     = 1e-12 // reference-coordinate solve tolerance
	DefaultMaxCandidates = 256   // candidate elements tried per query point
)

// Locator owns one search episode over one mesh: Setup builds the point
// cloud and the engine's search structure, FindPoints and Interpolate query
// it, FreeData releases it. A Locator is not safe for concurrent use; query
// calls must not race a Setup or FreeData on the same instance.
type Locator struct {
	engine search.Engine

	m      *mesh.Mesh
	dim    int
	cloud  []float64 // dimension-major physical node coordinates
	st     search.Structure
	lexMap []int          // tensor path: lexicographic -> native dof permutation
	table  *subPointTable // simplex path: cached sub-element point table
}

// Option configures a Locator.
type Option func(*Locator)

// WithEngine substitutes the spatial search engine; the default is the
// in-process search.Local engine.
func WithEngine(e search.Engine) Option {
	return func(l *Locator) { l.engine = e }
}

// New returns a Locator in the uninitialized state.
func New(opts ...Option) *Locator {
	l := &Locator{engine: search.Local{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Setup builds the point cloud for m and constructs the engine's search
// structure. inflation widens element bounding boxes relative to their size,
// newtonTol bounds the reference-coordinate solve, and maxCandidates caps
// the elements tried per query point. Calling Setup on a ready Locator
// releases the previous structure and rebuilds from scratch; a failed Setup
// leaves the Locator uninitialized with no partial state.
func (l *Locator) Setup(m *mesh.Mesh, inflation, newtonTol float64, maxCandidates int) error {
	l.FreeData()

	if m == nil {
		return fmt.Errorf("findpts: mesh is required")
	}
	if m.Nodes() == nil {
		return fmt.Errorf("findpts: mesh nodes are required")
	}
	if m.NE == 0 {
		return fmt.Errorf("findpts: mesh has no elements")
	}

	dim := m.Dim
	dof1D := m.Order + 1
	var (
		numElems int
		err      error
	)
	if m.Geom.IsTensorProduct() {
		numElems = m.NE
		if l.cloud, l.lexMap, err = buildTensorPointCloud(m); err != nil {
			l.reset()
			return err
		}
	} else {
		if l.table, err = buildSubPointTable(m.Geom, m.Order); err != nil {
			l.reset()
			return err
		}
		numElems = m.NE * l.table.subNE
		l.cloud = buildSimplexPointCloud(m, l.table)
	}

	tot := numElems * intPow(dof1D, dim)
	coords := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		coords[d] = l.cloud[d*tot : (d+1)*tot]
	}
	cfg := search.Config{
		Dim:             dim,
		NodesPerAxis:    repeat(dof1D, dim),
		AccelPerAxis:    repeat(2*dof1D, dim), // fixed coarsening ratio
		NumElements:     numElems,
		InflationFactor: inflation,
		NewtonTol:       newtonTol,
		MaxCandidates:   maxCandidates,
	}
	st, err := l.engine.Setup(cfg, coords)
	if err != nil {
		l.reset()
		return fmt.Errorf("findpts: engine setup: %w", err)
	}

	l.m = m
	l.dim = dim
	l.st = st
	return nil
}

// SetupDefault calls Setup with the default tunables.
func (l *Locator) SetupDefault(m *mesh.Mesh) error {
	return l.Setup(m, DefaultInflation, DefaultNewtonTol, DefaultMaxCandidates)
}

// FindPoints resolves query points to owning elements and reference
// coordinates. points holds one coordinate slice per dimension, equal
// lengths; the returned slice has one Result per query point, in query
// order. Per-point misses are reported through Result.Code, never as errors.
func (l *Locator) FindPoints(points [][]float64) ([]search.Result, error) {
	if l.st == nil {
		return nil, fmt.Errorf("findpts: locator is not set up")
	}
	if len(points) != l.dim {
		return nil, fmt.Errorf("findpts: query has %d coordinate slices, want %d", len(points), l.dim)
	}
	n := len(points[0])
	for d := 1; d < l.dim; d++ {
		if len(points[d]) != n {
			return nil, fmt.Errorf("findpts: query coordinate slices have unequal lengths")
		}
	}
	results := make([]search.Result, n)
	if err := l.st.FindPoints(points, results); err != nil {
		return nil, err
	}
	return results, nil
}

// Interpolate samples field at previously resolved query points. The field
// must be defined on the mesh passed to Setup. The output is component-major:
// component c of query point i lands in slot c*len(results)+i. Not-found
// points yield zero.
func (l *Locator) Interpolate(results []search.Result, field *mesh.GridFunction) ([]float64, error) {
	if l.st == nil {
		return nil, fmt.Errorf("findpts: locator is not set up")
	}
	if field.Mesh() != l.m {
		return nil, fmt.Errorf("findpts: field is not defined on the mesh used in Setup")
	}

	n := len(results)
	out := make([]float64, field.VDim*n)
	for c := 0; c < field.VDim; c++ {
		scalar := field
		if field.VDim > 1 {
			scalar = field.Component(c)
		}
		nodal := l.nodeValues(scalar)
		if err := l.st.Evaluate(results, nodal, out[c*n:(c+1)*n]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// nodeValues re-derives per-element nodal values of a scalar field at the
// same points the point cloud was built from: lexicographic node order for
// tensor elements, the cached sub-element table for simplices.
func (l *Locator) nodeValues(scalar *mesh.GridFunction) []float64 {
	if l.m.Geom.IsTensorProduct() {
		return tensorNodeValues(l.m, scalar, l.lexMap)
	}
	return simplexNodeValues(l.m, scalar, l.table)
}

// FreeData releases the search structure and the point cloud. Safe to call
// repeatedly and on an uninitialized Locator.
func (l *Locator) FreeData() {
	if l.st != nil {
		l.st.Free()
	}
	l.reset()
}

func (l *Locator) reset() {
	l.st = nil
	l.m = nil
	l.cloud = nil
	l.lexMap = nil
	l.table = nil
	l.dim = 0
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func intPow(b, n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= b
	}
	return v
}
