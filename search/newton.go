package search

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const maxNewtonIter = 50

// axisEval holds per-axis basis values (and optionally derivatives) at one
// reference point.
type axisEval struct {
	vals [3][]float64
	ders [3][]float64
}

func (s *localStructure) newAxisEval(withDerivs bool) *axisEval {
	ae := &axisEval{}
	for d := 0; d < s.cfg.Dim; d++ {
		ae.vals[d] = make([]float64, s.cfg.NodesPerAxis[d])
		if withDerivs {
			ae.ders[d] = make([]float64, s.cfg.NodesPerAxis[d])
		}
	}
	return ae
}

func (s *localStructure) evalAxes(ref []float64, ae *axisEval, withDerivs bool) {
	for d := 0; d < s.cfg.Dim; d++ {
		if withDerivs {
			s.l1d[d].EvalDeriv(ref[d], ae.vals[d], ae.ders[d])
		} else {
			s.l1d[d].Eval(ref[d], ae.vals[d])
		}
	}
}

// tensorSum accumulates sum_j w(j) * data[j] over the lexicographic lattice,
// where w(j) is the product of per-axis factors; derivAxis selects which axis
// contributes its derivative instead of its value (-1 for none).
func (s *localStructure) tensorSum(ae *axisEval, data []float64, derivAxis int) float64 {
	nx := s.cfg.NodesPerAxis[0]
	ny := s.cfg.NodesPerAxis[1]
	nz := 1
	if s.cfg.Dim == 3 {
		nz = s.cfg.NodesPerAxis[2]
	}
	fac := func(d, i int) float64 {
		if d == derivAxis {
			return ae.ders[d][i]
		}
		return ae.vals[d][i]
	}
	acc := 0.0
	j := 0
	for iz := 0; iz < nz; iz++ {
		wz := 1.0
		if s.cfg.Dim == 3 {
			wz = fac(2, iz)
		}
		for iy := 0; iy < ny; iy++ {
			wyz := wz * fac(1, iy)
			for ix := 0; ix < nx; ix++ {
				acc += wyz * fac(0, ix) * data[j]
				j++
			}
		}
	}
	return acc
}

// mapPoint evaluates element e's map at the reference point, writing physical
// coordinates into out.
func (s *localStructure) mapPoint(e int, ref, out []float64) {
	ae := s.newAxisEval(false)
	s.evalAxes(ref, ae, false)
	for d := 0; d < s.cfg.Dim; d++ {
		out[d] = s.tensorSum(ae, s.coords[d][e*s.npts:(e+1)*s.npts], -1)
	}
}

// interpValue interpolates one element's nodal data at a reference point.
func (s *localStructure) interpValue(e int, ref, nodal []float64) float64 {
	ae := s.newAxisEval(false)
	s.evalAxes(ref, ae, false)
	return s.tensorSum(ae, nodal, -1)
}

// locate runs a projected Newton iteration for the reference coordinate of
// pt within element e, keeping iterates inside [0,1]^dim. It returns the
// converged reference coordinate and the physical distance from pt to its
// image; ok is false when the iteration stalls on a singular Jacobian.
func (s *localStructure) locate(e int, pt []float64) (ref [3]float64, dist float64, ok bool) {
	dim := s.cfg.Dim
	for d := 0; d < dim; d++ {
		ref[d] = 0.5
	}

	ae := s.newAxisEval(true)
	x := make([]float64, dim)
	J := mat.NewDense(dim, dim, nil)
	res := mat.NewVecDense(dim, nil)
	var step mat.VecDense

	for iter := 0; iter < maxNewtonIter; iter++ {
		s.evalAxes(ref[:dim], ae, true)
		for d := 0; d < dim; d++ {
			elx := s.coords[d][e*s.npts : (e+1)*s.npts]
			x[d] = s.tensorSum(ae, elx, -1)
			res.SetVec(d, pt[d]-x[d])
			for a := 0; a < dim; a++ {
				J.Set(d, a, s.tensorSum(ae, elx, a))
			}
		}
		if err := step.SolveVec(J, res); err != nil {
			return ref, math.Inf(1), false
		}
		moved := 0.0
		for d := 0; d < dim; d++ {
			next := math.Min(1, math.Max(0, ref[d]+step.AtVec(d)))
			moved += (next - ref[d]) * (next - ref[d])
			ref[d] = next
		}
		if math.Sqrt(moved) < s.cfg.NewtonTol {
			break
		}
	}

	s.evalAxes(ref[:dim], ae, false)
	dist = 0.0
	for d := 0; d < dim; d++ {
		x[d] = s.tensorSum(ae, s.coords[d][e*s.npts:(e+1)*s.npts], -1)
		dist += (pt[d] - x[d]) * (pt[d] - x[d])
	}
	return ref, math.Sqrt(dist), true
}
