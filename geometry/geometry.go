// Package geometry defines the element shapes supported by findpts and the
// fixed reference-space decompositions that reduce simplex shapes to
// tensor-product sub-elements.
package geometry

import "fmt"

// Type identifies an element shape.
type Type uint8

const (
	Quad Type = iota // reference square [0,1]^2
	Hex              // reference cube [0,1]^3
	Triangle
	Tetrahedron
	Prism // unit triangle extruded along z in [0,1]
)

func (t Type) String() string {
	switch t {
	case Quad:
		return "Quad"
	case Hex:
		return "Hex"
	case Triangle:
		return "Triangle"
	case Tetrahedron:
		return "Tetrahedron"
	case Prism:
		return "Prism"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Dim returns the spatial dimension of the shape.
func (t Type) Dim() int {
	switch t {
	case Quad, Triangle:
		return 2
	default:
		return 3
	}
}

// NumVerts returns the number of corner vertices.
func (t Type) NumVerts() int {
	switch t {
	case Quad:
		return 4
	case Hex:
		return 8
	case Triangle:
		return 3
	case Tetrahedron:
		return 4
	case Prism:
		return 6
	}
	return 0
}

// IsTensorProduct reports whether the shape carries a tensor-product nodal
// basis, and with it a lexicographic dof ordering.
func (t Type) IsTensorProduct() bool {
	return t == Quad || t == Hex
}

// IsSimplex reports whether the shape takes the split-to-tensor path.
func (t Type) IsSimplex() bool {
	return t == Triangle || t == Tetrahedron || t == Prism
}

// NumDofs returns the nodal dof count for a basis of the given order.
func (t Type) NumDofs(order int) int {
	n := order + 1
	switch t {
	case Quad:
		return n * n
	case Hex:
		return n * n * n
	case Triangle:
		return n * (n + 1) / 2
	case Tetrahedron:
		return n * (n + 1) * (n + 2) / 6
	case Prism:
		return n * n * (n + 1) / 2
	}
	return 0
}

// Check validates a (shape, order) pair for use with findpts.
func Check(t Type, order int) error {
	switch t {
	case Quad, Hex, Triangle, Tetrahedron, Prism:
	default:
		return fmt.Errorf("unsupported element type %v", t)
	}
	if order < 1 {
		return fmt.Errorf("unsupported element order %d (must be >= 1)", order)
	}
	return nil
}
