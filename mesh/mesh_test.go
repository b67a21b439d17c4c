package mesh

import (
	"testing"

	"github.com/notargets/findpts/geometry"
	"github.com/stretchr/testify/assert"
)

func TestNewCartesianQuad(t *testing.T) {
	m, err := NewCartesianQuad(2, 2, 1, 0, 0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 4, m.NE)
	assert.Equal(t, geometry.Quad, m.Geom)
	assert.Equal(t, 4, m.NumDofs())

	// Element 0 covers [0,1]^2; its node x-coordinates are 0 and 1.
	xs := m.Nodes().ElemValues(0, 0)
	ys := m.Nodes().ElemValues(0, 1)
	for j := range xs {
		assert.Contains(t, []float64{0, 1}, xs[j])
		assert.Contains(t, []float64{0, 1}, ys[j])
	}
}

func TestTransform(t *testing.T) {
	m, err := NewCartesianQuad(1, 1, 2, 0, 0, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]float64, 2)
	m.Transform(0, []float64{0.5, 0.5}, out)
	assert.InDelta(t, 1.0, out[0], 1e-13)
	assert.InDelta(t, 2.0, out[1], 1e-13)
	m.Transform(0, []float64{1, 0}, out)
	assert.InDelta(t, 2.0, out[0], 1e-13)
	assert.InDelta(t, 0.0, out[1], 1e-13)
}

func TestTransformSimplex(t *testing.T) {
	m, err := NewReferenceSimplex(geometry.Triangle, 2)
	if err != nil {
		t.Fatal(err)
	}
	// The reference-element mesh's map is the identity.
	out := make([]float64, 2)
	for _, ref := range [][]float64{{0.2, 0.3}, {0, 0}, {0.5, 0.5}} {
		m.Transform(0, ref, out)
		assert.InDelta(t, ref[0], out[0], 1e-12)
		assert.InDelta(t, ref[1], out[1], 1e-12)
	}
}

// The native reference lattice of a tensor element leads with the corner
// vertices in counterclockwise order.
func TestNativeRefNodesCornersFirst(t *testing.T) {
	m, err := NewCartesianQuad(1, 1, 2, 0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	ref := m.NativeRefNodes()
	wantX := []float64{0, 1, 1, 0}
	wantY := []float64{0, 0, 1, 1}
	for v := 0; v < 4; v++ {
		assert.Equal(t, wantX[v], ref[0][v], "vertex %d x", v)
		assert.Equal(t, wantY[v], ref[1][v], "vertex %d y", v)
	}
}

func TestMeshValidation(t *testing.T) {
	if _, err := New(geometry.Quad, 0, nil, [][]int{{0, 1, 2, 3}}); err == nil {
		t.Error("order 0 should be rejected")
	}
	if _, err := New(geometry.Quad, 1, [][]float64{{0, 0}}, nil); err == nil {
		t.Error("empty mesh should be rejected")
	}
	// Wrong corner count.
	verts := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	if _, err := New(geometry.Quad, 1, verts, [][]int{{0, 1, 2}}); err == nil {
		t.Error("quad with 3 corners should be rejected")
	}
	// Out-of-range vertex.
	if _, err := New(geometry.Triangle, 1, verts, [][]int{{0, 1, 9}}); err == nil {
		t.Error("out-of-range vertex should be rejected")
	}
}

func TestGridFunctionComponentView(t *testing.T) {
	m, err := NewCartesianQuad(2, 1, 1, 0, 0, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGridFunction(m, 3)
	g.SetElemValue(1, 2, 0, 42)

	view := g.Component(2)
	assert.Equal(t, 1, view.VDim)
	assert.Same(t, m, view.Mesh())
	assert.Equal(t, 42.0, view.ElemValues(1, 0)[0])

	// The view shares storage with the parent.
	view.SetElemValue(1, 0, 0, 7)
	assert.Equal(t, 7.0, g.ElemValues(1, 2)[0])
}

func TestGridFunctionProject(t *testing.T) {
	m, err := NewCartesianQuad(2, 2, 2, 0, 0, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGridFunction(m, 1)
	g.Project(func(x []float64) []float64 { return []float64{x[0] + 2*x[1]} })

	nodes := m.Nodes()
	for e := 0; e < m.NE; e++ {
		xs := nodes.ElemValues(e, 0)
		ys := nodes.ElemValues(e, 1)
		vals := g.ElemValues(e, 0)
		for j := range vals {
			assert.InDelta(t, xs[j]+2*ys[j], vals[j], 1e-14)
		}
	}
}

func TestSetNodes(t *testing.T) {
	m, _ := NewCartesianQuad(1, 1, 2, 0, 0, 1, 1)
	other, _ := NewCartesianQuad(1, 1, 2, 0, 0, 1, 1)

	g := NewGridFunction(other, 2)
	if err := m.SetNodes(g); err == nil {
		t.Error("nodes from another mesh should be rejected")
	}
	bad := NewGridFunction(m, 1)
	if err := m.SetNodes(bad); err == nil {
		t.Error("wrong vdim should be rejected")
	}
	good := NewGridFunction(m, 2)
	good.Project(func(x []float64) []float64 {
		return []float64{x[0], x[1] + 0.1*x[0]*(1-x[0])}
	})
	if err := m.SetNodes(good); err != nil {
		t.Fatal(err)
	}
	out := make([]float64, 2)
	m.Transform(0, []float64{0.5, 0}, out)
	assert.InDelta(t, 0.5, out[0], 1e-13)
	assert.InDelta(t, 0.025, out[1], 1e-13)
}
