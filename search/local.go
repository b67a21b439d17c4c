package search

import (
	"fmt"
	"math"
	"sort"

	ctgeom "github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/notargets/findpts/basis"
)

// Local is the in-process engine: candidate elements come from an rtree over
// inflated element bounding boxes, the reference coordinate from a projected
// Newton solve on the element's tensor Lagrange map. Single process, so every
// result carries Proc 0.
type Local struct{}

// Setup builds a search structure over the given point cloud.
func (Local) Setup(cfg Config, coords [][]float64) (Structure, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	npts := 1
	for _, n := range cfg.NodesPerAxis {
		npts *= n
	}
	if len(coords) != cfg.Dim {
		return nil, fmt.Errorf("point cloud has %d coordinate slices, want %d", len(coords), cfg.Dim)
	}
	for d, c := range coords {
		if len(c) != cfg.NumElements*npts {
			return nil, fmt.Errorf("coordinate slice %d has %d values, want %d elements x %d lattice points",
				d, len(c), cfg.NumElements, npts)
		}
	}

	s := &localStructure{cfg: cfg, npts: npts, coords: coords}
	for d := 0; d < cfg.Dim; d++ {
		l, err := basis.NewLagrange1D(basis.LobattoNodes(cfg.NodesPerAxis[d] - 1))
		if err != nil {
			return nil, err
		}
		s.l1d = append(s.l1d, l)
	}
	s.buildIndex()
	return s, nil
}

// elemBox is one element's inflated bounding box. The embedded Polygon is
// the xy rectangle the rtree indexes, which carries the geom.Geom methods;
// the z interval is filtered explicitly for 3D clouds.
type elemBox struct {
	ctgeom.Polygon
	id       int
	min, max [3]float64
}

var _ ctgeom.Geom = &elemBox{}

// setRect fills the indexed rectangle from the inflated box extent.
func (b *elemBox) setRect() {
	b.Polygon = ctgeom.Polygon{{
		{X: b.min[0], Y: b.min[1]}, {X: b.max[0], Y: b.min[1]},
		{X: b.max[0], Y: b.max[1]}, {X: b.min[0], Y: b.max[1]},
	}}
}

type localStructure struct {
	cfg    Config
	npts   int
	coords [][]float64
	l1d    []*basis.Lagrange1D

	tree    *rtree.Rtree
	findTol float64 // physical-space acceptance band for a located point
	freed   bool
}

// buildIndex samples every element map on the accelerator lattice to bound
// possibly curved geometry, inflates the boxes, and indexes them.
func (s *localStructure) buildIndex() {
	dim := s.cfg.Dim
	lattice := s.accelLattice()

	s.tree = rtree.NewTree(25, 50)
	gmin := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	gmax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	for e := 0; e < s.cfg.NumElements; e++ {
		b := &elemBox{id: e}
		for d := 0; d < dim; d++ {
			b.min[d] = math.Inf(1)
			b.max[d] = math.Inf(-1)
		}
		x := make([]float64, dim)
		for _, ref := range lattice {
			s.mapPoint(e, ref, x)
			for d := 0; d < dim; d++ {
				b.min[d] = math.Min(b.min[d], x[d])
				b.max[d] = math.Max(b.max[d], x[d])
			}
		}
		for d := 0; d < dim; d++ {
			w := b.max[d] - b.min[d]
			b.min[d] -= s.cfg.InflationFactor * w
			b.max[d] += s.cfg.InflationFactor * w
			gmin[d] = math.Min(gmin[d], b.min[d])
			gmax[d] = math.Max(gmax[d], b.max[d])
		}
		b.setRect()
		s.tree.Insert(b)
	}

	diag := 0.0
	for d := 0; d < dim; d++ {
		diag += (gmax[d] - gmin[d]) * (gmax[d] - gmin[d])
	}
	s.findTol = 1e-9 * (1 + math.Sqrt(diag))
}

// accelLattice returns the uniform reference lattice at AccelPerAxis
// resolution, one []float64 of length dim per point.
func (s *localStructure) accelLattice() [][]float64 {
	dim := s.cfg.Dim
	axes := make([][]float64, dim)
	for d := 0; d < dim; d++ {
		n := s.cfg.AccelPerAxis[d]
		axes[d] = make([]float64, n)
		for i := 0; i < n; i++ {
			axes[d][i] = float64(i) / float64(n-1)
		}
	}
	var out [][]float64
	if dim == 2 {
		for _, y := range axes[1] {
			for _, x := range axes[0] {
				out = append(out, []float64{x, y})
			}
		}
		return out
	}
	for _, z := range axes[2] {
		for _, y := range axes[1] {
			for _, x := range axes[0] {
				out = append(out, []float64{x, y, z})
			}
		}
	}
	return out
}

// FindPoints implements Structure.
func (s *localStructure) FindPoints(points [][]float64, out []Result) error {
	if s.freed {
		return fmt.Errorf("search structure has been freed")
	}
	if len(points) != s.cfg.Dim {
		return fmt.Errorf("query has %d coordinate slices, want %d", len(points), s.cfg.Dim)
	}
	n := len(points[0])
	for d := 1; d < s.cfg.Dim; d++ {
		if len(points[d]) != n {
			return fmt.Errorf("query coordinate slices have unequal lengths")
		}
	}
	if len(out) != n {
		return fmt.Errorf("result buffer has length %d, want %d", len(out), n)
	}

	pt := make([]float64, s.cfg.Dim)
	for i := 0; i < n; i++ {
		for d := 0; d < s.cfg.Dim; d++ {
			pt[d] = points[d][i]
		}
		out[i] = s.findOne(pt)
	}
	return nil
}

func (s *localStructure) findOne(pt []float64) Result {
	dim := s.cfg.Dim
	cands := s.candidates(pt)

	best := Result{Code: CodeNotFound, Elem: -1, Dist: math.Inf(1)}
	for _, e := range cands {
		ref, dist, ok := s.locate(e, pt)
		if !ok {
			continue
		}
		if dist < best.Dist {
			best.Elem = e
			best.Dist = dist
			best.Ref = ref
		}
		if dist <= s.findTol {
			best.Code = CodeInternal
			if onBorder(ref[:dim]) {
				best.Code = CodeBorder
			}
			break
		}
	}
	return best
}

// candidates returns element ids whose inflated boxes contain pt, nearest
// box center first, capped at MaxCandidates.
func (s *localStructure) candidates(pt []float64) []int {
	bb := &ctgeom.Bounds{
		Min: ctgeom.Point{X: pt[0], Y: pt[1]},
		Max: ctgeom.Point{X: pt[0], Y: pt[1]},
	}
	hits := s.tree.SearchIntersect(bb)

	type scored struct {
		id int
		d2 float64
	}
	var sc []scored
	for _, h := range hits {
		b := h.(*elemBox)
		if s.cfg.Dim == 3 && (pt[2] < b.min[2] || pt[2] > b.max[2]) {
			continue
		}
		d2 := 0.0
		for d := 0; d < s.cfg.Dim; d++ {
			c := (b.min[d] + b.max[d]) / 2
			d2 += (pt[d] - c) * (pt[d] - c)
		}
		sc = append(sc, scored{b.id, d2})
	}
	sort.Slice(sc, func(i, j int) bool { return sc[i].d2 < sc[j].d2 })
	if len(sc) > s.cfg.MaxCandidates {
		sc = sc[:s.cfg.MaxCandidates]
	}
	ids := make([]int, len(sc))
	for i, c := range sc {
		ids[i] = c.id
	}
	return ids
}

const borderTol = 1e-9

func onBorder(ref []float64) bool {
	for _, r := range ref {
		if r < borderTol || r > 1-borderTol {
			return true
		}
	}
	return false
}

// Evaluate implements Structure.
func (s *localStructure) Evaluate(results []Result, nodal, out []float64) error {
	if s.freed {
		return fmt.Errorf("search structure has been freed")
	}
	if len(nodal) != s.cfg.NumElements*s.npts {
		return fmt.Errorf("nodal data has %d values, want %d", len(nodal), s.cfg.NumElements*s.npts)
	}
	if len(out) != len(results) {
		return fmt.Errorf("output buffer has length %d, want %d", len(out), len(results))
	}
	for i, r := range results {
		if r.Code == CodeNotFound {
			out[i] = 0
			continue
		}
		out[i] = s.interpValue(r.Elem, r.Ref[:s.cfg.Dim], nodal[r.Elem*s.npts:(r.Elem+1)*s.npts])
	}
	return nil
}

// Free implements Structure.
func (s *localStructure) Free() {
	s.tree = nil
	s.coords = nil
	s.freed = true
}
