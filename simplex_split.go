package findpts

import (
	"fmt"
	"sync"

	"github.com/notargets/findpts/basis"
	"github.com/notargets/findpts/geometry"
	"github.com/notargets/findpts/mesh"
	"gonum.org/v1/gonum/mat"
)

// subPointTable is the cached outcome of decomposing a reference simplex
// into tensor sub-elements and curving the decomposition to order p.
//
// Two coordinate frames are in play. The sub-mesh's own node lattice lives in
// each sub-element's local [0,1]^d square or cube; elemRefPts holds the same
// nodes expressed in the PARENT simplex's reference space, which is the frame
// every physical element's map is evaluated in. The table depends only on
// (shape, order) and is shared by all elements of a mesh.
type subPointTable struct {
	geom  geometry.Type
	order int
	subNE int // tensor sub-elements per simplex
	subNp int // lattice points per sub-element

	// elemRefPts[d][s*subNp+j]: coordinate d of lexicographic point j of
	// sub-element s, in parent-simplex reference space.
	elemRefPts [][]float64

	// interp maps a simplex element's native nodal values to values at
	// elemRefPts: [subNE*subNp x NumDofs(geom, order)].
	interp *mat.Dense
}

type tableKey struct {
	geom  geometry.Type
	order int
}

var (
	tableMu    sync.Mutex
	tableCache = map[tableKey]*subPointTable{}
)

// buildSubPointTable returns the sub-element point table for a simplex shape
// at the given order, building and caching it on first use.
func buildSubPointTable(geom geometry.Type, order int) (*subPointTable, error) {
	if err := geometry.Check(geom, order); err != nil {
		return nil, err
	}
	key := tableKey{geom, order}
	tableMu.Lock()
	defer tableMu.Unlock()
	if t, ok := tableCache[key]; ok {
		return t, nil
	}

	split, err := geometry.SplitFor(geom)
	if err != nil {
		return nil, err
	}

	// The reference sub-mesh: its "physical" space is the parent simplex's
	// reference space. Constructing it at the target order curves it to the
	// straight-sided decomposition geometry.
	subMesh, err := mesh.New(split.SubType, order, split.Vertices, split.Connectivity)
	if err != nil {
		return nil, fmt.Errorf("reference sub-mesh for %v: %w", geom, err)
	}
	lexMapSub, err := basis.LexOrderMap(split.SubType, order)
	if err != nil {
		return nil, err
	}

	t := &subPointTable{
		geom:  geom,
		order: order,
		subNE: split.NumSubElements(),
		subNp: split.SubType.NumDofs(order),
	}
	dim := geom.Dim()
	t.elemRefPts = make([][]float64, dim)
	for d := 0; d < dim; d++ {
		t.elemRefPts[d] = make([]float64, t.subNE*t.subNp)
	}
	subMeshNodes := subMesh.Nodes()
	for s := 0; s < t.subNE; s++ {
		for d := 0; d < dim; d++ {
			ev := subMeshNodes.ElemValues(s, d)
			base := s * t.subNp
			for j := 0; j < t.subNp; j++ {
				t.elemRefPts[d][base+j] = ev[lexMapSub[j]]
			}
		}
	}

	sb, err := basis.NewSimplexBasis(geom, order)
	if err != nil {
		return nil, err
	}
	t.interp = sb.InterpMatrix(t.elemRefPts)

	tableCache[key] = t
	return t, nil
}
