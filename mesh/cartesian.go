package mesh

import (
	"fmt"

	"github.com/notargets/findpts/geometry"
)

// NewCartesianQuad builds an nx-by-ny mesh of order-p quadrilaterals covering
// [x0,x1] x [y0,y1].
func NewCartesianQuad(nx, ny, order int, x0, y0, x1, y1 float64) (*Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("cartesian quad mesh needs nx, ny >= 1, got %d, %d", nx, ny)
	}
	verts := make([][]float64, 0, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts = append(verts, []float64{
				x0 + (x1-x0)*float64(i)/float64(nx),
				y0 + (y1-y0)*float64(j)/float64(ny),
			})
		}
	}
	vid := func(i, j int) int { return i + (nx+1)*j }
	elems := make([][]int, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			elems = append(elems, []int{
				vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1),
			})
		}
	}
	return New(geometry.Quad, order, verts, elems)
}

// NewCartesianHex builds an nx-by-ny-by-nz mesh of order-p hexahedra covering
// [x0,x1] x [y0,y1] x [z0,z1].
func NewCartesianHex(nx, ny, nz, order int, x0, y0, z0, x1, y1, z1 float64) (*Mesh, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("cartesian hex mesh needs nx, ny, nz >= 1, got %d, %d, %d", nx, ny, nz)
	}
	verts := make([][]float64, 0, (nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				verts = append(verts, []float64{
					x0 + (x1-x0)*float64(i)/float64(nx),
					y0 + (y1-y0)*float64(j)/float64(ny),
					z0 + (z1-z0)*float64(k)/float64(nz),
				})
			}
		}
	}
	vid := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	elems := make([][]int, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				elems = append(elems, []int{
					vid(i, j, k), vid(i+1, j, k), vid(i+1, j+1, k), vid(i, j+1, k),
					vid(i, j, k+1), vid(i+1, j, k+1), vid(i+1, j+1, k+1), vid(i, j+1, k+1),
				})
			}
		}
	}
	return New(geometry.Hex, order, verts, elems)
}

// NewReferenceSimplex builds a single-element mesh of the given simplex shape
// over its own reference domain.
func NewReferenceSimplex(geom geometry.Type, order int) (*Mesh, error) {
	switch geom {
	case geometry.Triangle:
		return New(geom, order,
			[][]float64{{0, 0}, {1, 0}, {0, 1}},
			[][]int{{0, 1, 2}})
	case geometry.Tetrahedron:
		return New(geom, order,
			[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[][]int{{0, 1, 2, 3}})
	case geometry.Prism:
		return New(geom, order,
			[][]float64{
				{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
				{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
			},
			[][]int{{0, 1, 2, 3, 4, 5}})
	}
	return nil, fmt.Errorf("element type %v is not a simplex shape", geom)
}
