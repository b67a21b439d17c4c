// Package search defines the spatial point-location engine contract findpts
// drives, and provides Local, a single-process implementation of it.
//
// An engine receives one flattened, dimension-major point cloud per mesh
// partition: for every element, a lexicographic lattice of physical node
// coordinates. It resolves arbitrary physical points to (owning process,
// owning element, reference coordinate) and evaluates nodal data at resolved
// points.
package search

import "fmt"

// Code classifies the outcome of locating one query point. The values match
// the classification the facade passes through to callers: misses are data,
// not errors.
type Code uint32

const (
	CodeInternal Code = iota // point found strictly inside an element
	CodeBorder               // point found on an element boundary
	CodeNotFound             // no owning element
)

func (c Code) String() string {
	switch c {
	case CodeInternal:
		return "internal"
	case CodeBorder:
		return "border"
	case CodeNotFound:
		return "not-found"
	}
	return fmt.Sprintf("Code(%d)", uint32(c))
}

// Result is the outcome of locating one query point. Elem indexes the
// engine's element list, which for decomposed simplex meshes counts tensor
// sub-elements. Ref is the reference coordinate within that element; entries
// beyond the spatial dimension are zero. Dist is the distance from the query
// point to its image under the element map, meaningful for CodeBorder and
// CodeNotFound.
type Result struct {
	Code Code
	Proc int
	Elem int
	Ref  [3]float64
	Dist float64
}

// Config carries the engine setup parameters.
type Config struct {
	Dim          int   // 2 or 3
	NodesPerAxis []int // lattice resolution per axis, length Dim
	AccelPerAxis []int // acceleration-structure resolution per axis, length Dim
	NumElements  int

	InflationFactor float64 // relative bounding-box inflation per axis
	NewtonTol       float64 // reference-coordinate solve tolerance
	MaxCandidates   int     // cap on candidate elements per query point
}

func (c Config) validate() error {
	if c.Dim != 2 && c.Dim != 3 {
		return fmt.Errorf("engine supports dim 2 or 3, got %d", c.Dim)
	}
	if len(c.NodesPerAxis) != c.Dim || len(c.AccelPerAxis) != c.Dim {
		return fmt.Errorf("per-axis resolutions must have length %d", c.Dim)
	}
	for d := 0; d < c.Dim; d++ {
		if c.NodesPerAxis[d] < 2 {
			return fmt.Errorf("axis %d: need at least 2 nodes, got %d", d, c.NodesPerAxis[d])
		}
		if c.AccelPerAxis[d] < 2 {
			return fmt.Errorf("axis %d: need accel resolution >= 2, got %d", d, c.AccelPerAxis[d])
		}
	}
	if c.NumElements <= 0 {
		return fmt.Errorf("need at least one element, got %d", c.NumElements)
	}
	if c.NewtonTol <= 0 {
		return fmt.Errorf("newton tolerance must be positive, got %g", c.NewtonTol)
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("max candidates must be positive, got %d", c.MaxCandidates)
	}
	return nil
}

// Structure is the opaque per-setup search state. It is built once from a
// point cloud, queried any number of times, and released with Free. A
// Structure must not be queried concurrently with Free.
type Structure interface {
	// FindPoints resolves the query points (one coordinate slice per
	// dimension, equal lengths) into out, which must hold one Result per
	// query point.
	FindPoints(points [][]float64, out []Result) error

	// Evaluate interpolates nodal data at previously resolved points. nodal
	// holds NumElements x (lattice size) values in engine element order;
	// out receives one value per result. Not-found results produce zero.
	Evaluate(results []Result, nodal, out []float64) error

	// Free releases the structure. Idempotent; queries after Free fail.
	Free()
}

// Engine builds search structures from point clouds. coords holds one slice
// per dimension, each of length NumElements x (lattice size), element-major
// with the lexicographic lattice contiguous per element.
type Engine interface {
	Setup(cfg Config, coords [][]float64) (Structure, error)
}
