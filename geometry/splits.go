package geometry

import "fmt"

// Split is a fixed decomposition of a reference simplex into tensor-product
// sub-elements. Vertices are reference-space coordinates, Connectivity lists
// sub-element corner indices in the usual counterclockwise (2D) or
// bottom-then-top (3D) order. The shared faces of the sub-elements are
// watertight: the union covers the reference simplex exactly.
type Split struct {
	SubType      Type
	Vertices     [][]float64
	Connectivity [][]int
}

// NumSubElements returns the number of tensor sub-elements in the split.
func (s *Split) NumSubElements() int { return len(s.Connectivity) }

var triangleSplit = Split{
	SubType: Quad,
	Vertices: [][]float64{
		{0, 0}, {0.5, 0}, {1, 0}, {0, 0.5},
		{1. / 3., 1. / 3.}, {0.5, 0.5}, {0, 1},
	},
	Connectivity: [][]int{
		{3, 4, 1, 0}, {4, 5, 2, 1}, {6, 5, 4, 3},
	},
}

var tetrahedronSplit = Split{
	SubType: Hex,
	Vertices: [][]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0.5, 0, 0}, {0.5, 0.5, 0}, {0, 0.5, 0},
		{0, 0, 0.5}, {0.5, 0, 0.5}, {0, 0.5, 0.5},
		{1. / 3., 0, 1. / 3.}, {1. / 3., 1. / 3., 1. / 3.}, {0, 1. / 3., 1. / 3.},
		{1. / 3., 1. / 3., 0}, {0.25, 0.25, 0.25},
	},
	Connectivity: [][]int{
		{0, 4, 10, 7, 6, 13, 14, 12},
		{4, 1, 8, 10, 13, 5, 11, 14},
		{13, 5, 11, 14, 6, 2, 9, 12},
		{10, 8, 3, 7, 14, 11, 9, 12},
	},
}

var prismSplit = Split{
	SubType: Hex,
	Vertices: [][]float64{
		{0, 0, 0}, {0.5, 0, 0}, {1, 0, 0}, {0, 0.5, 0},
		{1. / 3., 1. / 3., 0}, {0.5, 0.5, 0}, {0, 1, 0},
		{0, 0, 1}, {0.5, 0, 1}, {1, 0, 1}, {0, 0.5, 1},
		{1. / 3., 1. / 3., 1}, {0.5, 0.5, 1}, {0, 1, 1},
	},
	Connectivity: [][]int{
		{3, 4, 1, 0, 10, 11, 8, 7},
		{4, 5, 2, 1, 11, 12, 9, 8},
		{6, 5, 4, 3, 13, 12, 11, 10},
	},
}

// SplitFor returns the fixed tensor decomposition for a simplex shape.
// The returned record is shared and must not be modified.
func SplitFor(t Type) (*Split, error) {
	switch t {
	case Triangle:
		return &triangleSplit, nil
	case Tetrahedron:
		return &tetrahedronSplit, nil
	case Prism:
		return &prismSplit, nil
	}
	return nil, fmt.Errorf("no tensor split for element type %v", t)
}
