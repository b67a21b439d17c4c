package basis

import (
	"fmt"
	"sync"

	"github.com/notargets/findpts/geometry"
)

// LexOrderMap returns the permutation from lexicographic node ordering to the
// native dof ordering of the tensor-product basis: entry i is the native dof
// index holding the value for lexicographic slot i.
//
// The native ordering is topological: corner vertices first, then edge
// interiors, then face interiors, then volume interiors, each entity in its
// canonical order with node parameters ascending. Only Quad and Hex carry a
// lexicographic permutation; any other shape is a configuration error.
func LexOrderMap(geom geometry.Type, order int) ([]int, error) {
	if !geom.IsTensorProduct() {
		return nil, fmt.Errorf("element type %v: basis is not tensor-product, no lexicographic dof map", geom)
	}
	if err := geometry.Check(geom, order); err != nil {
		return nil, err
	}

	key := dofMapKey{geom, order}
	dofMapMu.Lock()
	defer dofMapMu.Unlock()
	m, ok := dofMapCache[key]
	if !ok {
		var nativeToLex []int
		if geom == geometry.Quad {
			nativeToLex = quadNativeOrder(order + 1)
		} else {
			nativeToLex = hexNativeOrder(order + 1)
		}
		m = make([]int, len(nativeToLex))
		for native, lex := range nativeToLex {
			m[lex] = native
		}
		dofMapCache[key] = m
	}
	// Callers get a private copy; the cached slice stays immutable.
	out := make([]int, len(m))
	copy(out, m)
	return out, nil
}

type dofMapKey struct {
	geom  geometry.Type
	order int
}

var (
	dofMapMu    sync.Mutex
	dofMapCache = map[dofMapKey][]int{}
)

// quadNativeOrder lists lex indices in native order for an n x n lattice.
func quadNativeOrder(n int) []int {
	lex := func(i, j int) int { return i + n*j }
	out := make([]int, 0, n*n)

	// Vertices, counterclockwise from the origin.
	out = append(out, lex(0, 0), lex(n-1, 0), lex(n-1, n-1), lex(0, n-1))
	// Edge interiors: bottom, right, top, left, parameter ascending.
	for i := 1; i < n-1; i++ {
		out = append(out, lex(i, 0))
	}
	for j := 1; j < n-1; j++ {
		out = append(out, lex(n-1, j))
	}
	for i := 1; i < n-1; i++ {
		out = append(out, lex(i, n-1))
	}
	for j := 1; j < n-1; j++ {
		out = append(out, lex(0, j))
	}
	// Interior.
	for j := 1; j < n-1; j++ {
		for i := 1; i < n-1; i++ {
			out = append(out, lex(i, j))
		}
	}
	return out
}

// hexNativeOrder lists lex indices in native order for an n x n x n lattice.
func hexNativeOrder(n int) []int {
	lex := func(i, j, k int) int { return i + n*j + n*n*k }
	m := n - 1
	out := make([]int, 0, n*n*n)

	// Vertices: bottom face counterclockwise, then top face.
	verts := [8][3]int{
		{0, 0, 0}, {m, 0, 0}, {m, m, 0}, {0, m, 0},
		{0, 0, m}, {m, 0, m}, {m, m, m}, {0, m, m},
	}
	for _, v := range verts {
		out = append(out, lex(v[0], v[1], v[2]))
	}

	// Edge interiors: each edge varies along one axis with the other two
	// coordinates pinned; x-edges, then y-edges, then z-edges.
	edges := [12][3]int{
		// axis, fixed1, fixed2 (fixed coords are 0 or m)
		{0, 0, 0}, {0, m, 0}, {0, 0, m}, {0, m, m}, // x varies; (y,z) fixed
		{1, 0, 0}, {1, m, 0}, {1, 0, m}, {1, m, m}, // y varies; (x,z) fixed
		{2, 0, 0}, {2, m, 0}, {2, 0, m}, {2, m, m}, // z varies; (x,y) fixed
	}
	for _, e := range edges {
		for p := 1; p < n-1; p++ {
			var c [3]int
			switch e[0] {
			case 0:
				c = [3]int{p, e[1], e[2]}
			case 1:
				c = [3]int{e[1], p, e[2]}
			default:
				c = [3]int{e[1], e[2], p}
			}
			out = append(out, lex(c[0], c[1], c[2]))
		}
	}

	// Face interiors: x=0, x=m, y=0, y=m, z=0, z=m; within a face the first
	// remaining axis varies fastest.
	for axis := 0; axis < 3; axis++ {
		for _, fixed := range []int{0, m} {
			for q := 1; q < n-1; q++ {
				for p := 1; p < n-1; p++ {
					var c [3]int
					switch axis {
					case 0:
						c = [3]int{fixed, p, q}
					case 1:
						c = [3]int{p, fixed, q}
					default:
						c = [3]int{p, q, fixed}
					}
					out = append(out, lex(c[0], c[1], c[2]))
				}
			}
		}
	}

	// Volume interior.
	for k := 1; k < n-1; k++ {
		for j := 1; j < n-1; j++ {
			for i := 1; i < n-1; i++ {
				out = append(out, lex(i, j, k))
			}
		}
	}
	return out
}
