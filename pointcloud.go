package findpts

import (
	"github.com/notargets/findpts/basis"
	"github.com/notargets/findpts/mesh"
	"gonum.org/v1/gonum/mat"
)

// buildTensorPointCloud extracts the physical node coordinates of every
// tensor-product element in lexicographic order, laid out dimension-major:
// all x values, then all y, then all z. It also returns the lex-to-native
// dof permutation used, for reuse when sampling fields.
func buildTensorPointCloud(m *mesh.Mesh) ([]float64, []int, error) {
	lexMap, err := basis.LexOrderMap(m.Geom, m.Order)
	if err != nil {
		return nil, nil, err
	}
	ndof := m.NumDofs()
	tot := m.NE * ndof
	cloud := make([]float64, m.Dim*tot)
	nodes := m.Nodes()
	for e := 0; e < m.NE; e++ {
		for d := 0; d < m.Dim; d++ {
			ev := nodes.ElemValues(e, d)
			base := d*tot + e*ndof
			for j := 0; j < ndof; j++ {
				cloud[base+j] = ev[lexMap[j]]
			}
		}
	}
	return cloud, lexMap, nil
}

// tensorNodeValues re-derives a scalar field's per-element nodal values in
// lexicographic order, matching the tensor point cloud layout.
func tensorNodeValues(m *mesh.Mesh, scalar *mesh.GridFunction, lexMap []int) []float64 {
	ndof := m.NumDofs()
	out := make([]float64, m.NE*ndof)
	for e := 0; e < m.NE; e++ {
		ev := scalar.ElemValues(e, 0)
		for j := 0; j < ndof; j++ {
			out[e*ndof+j] = ev[lexMap[j]]
		}
	}
	return out
}

// buildSimplexPointCloud evaluates every element's own physical map at the
// cached sub-element point table, producing the dimension-major cloud for
// the decomposed mesh. The table's points live in the parent element's
// reference space; only the per-element map differs, which is what makes the
// cloud track curved geometry.
func buildSimplexPointCloud(m *mesh.Mesh, table *subPointTable) []float64 {
	ndof := m.NumDofs()
	npts := table.subNE * table.subNp
	tot := m.NE * npts
	cloud := make([]float64, m.Dim*tot)
	nodes := m.Nodes()
	for e := 0; e < m.NE; e++ {
		for d := 0; d < m.Dim; d++ {
			dst := mat.NewVecDense(npts, cloud[d*tot+e*npts:d*tot+(e+1)*npts])
			dst.MulVec(table.interp, mat.NewVecDense(ndof, nodes.ElemValues(e, d)))
		}
	}
	return cloud
}

// simplexNodeValues evaluates a scalar field at the cached sub-element point
// table for every element, matching the simplex point cloud layout.
func simplexNodeValues(m *mesh.Mesh, scalar *mesh.GridFunction, table *subPointTable) []float64 {
	ndof := m.NumDofs()
	npts := table.subNE * table.subNp
	out := make([]float64, m.NE*npts)
	for e := 0; e < m.NE; e++ {
		dst := mat.NewVecDense(npts, out[e*npts:(e+1)*npts])
		dst.MulVec(table.interp, mat.NewVecDense(ndof, scalar.ElemValues(e, 0)))
	}
	return out
}
