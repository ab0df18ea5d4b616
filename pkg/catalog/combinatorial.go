package catalog

import (
	"math"

	"github.com/golang/geo/r3"
)

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			out = append(out, q)
		}
	}
	return out
}

// hyperplaneBasis spans x1 + x2 + x3 + x4 = 0 orthonormally.
var hyperplaneBasis = [3][4]float64{
	{1 / math.Sqrt2, -1 / math.Sqrt2, 0, 0},
	{1 / math.Sqrt(6), 1 / math.Sqrt(6), -2 / math.Sqrt(6), 0},
	{1 / math.Sqrt(12), 1 / math.Sqrt(12), 1 / math.Sqrt(12), -3 / math.Sqrt(12)},
}

// project maps points of a hyperplane with constant coordinate sum in R^4
// isometrically into R^3.
func project(pts [][4]float64) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		var c [3]float64
		for k, b := range hyperplaneBasis {
			for j := range p {
				c[k] += b[j] * p[j]
			}
		}
		out[i] = r3.Vector{X: c[0], Y: c[1], Z: c[2]}
	}
	return out
}

// nestohedron returns the vertices of the Minkowski sum of the simplices
// spanned by each tube over four elements. Every priority ordering of the
// elements picks, per tube, its highest-priority element; summing those unit
// vectors gives one vertex.
func nestohedron(tubes [][]int) []r3.Vector {
	seen := make(map[[4]float64]bool)
	var pts [][4]float64
	for _, order := range permutations(4) {
		var rank [4]int
		for i, e := range order {
			rank[e] = i
		}
		var x [4]float64
		for _, t := range tubes {
			top := t[0]
			for _, e := range t[1:] {
				if rank[e] > rank[top] {
					top = e
				}
			}
			x[top]++
		}
		if !seen[x] {
			seen[x] = true
			pts = append(pts, x)
		}
	}
	return project(pts)
}

// associahedronPoints uses the intervals of the path 0-1-2-3 as tubes.
func associahedronPoints() []r3.Vector {
	var tubes [][]int
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			var t []int
			for k := i; k <= j; k++ {
				t = append(t, k)
			}
			tubes = append(tubes, t)
		}
	}
	return nestohedron(tubes)
}

// cyclohedronPoints uses the arcs of the cycle 0-1-2-3-0 as tubes.
func cyclohedronPoints() []r3.Vector {
	tubes := [][]int{{0, 1, 2, 3}}
	for i := 0; i < 4; i++ {
		for l := 1; l < 4; l++ {
			var t []int
			for k := 0; k < l; k++ {
				t = append(t, (i+k)%4)
			}
			tubes = append(tubes, t)
		}
	}
	return nestohedron(tubes)
}

// permutahedronPoints are the orderings of (1, 2, 3, 4).
func permutahedronPoints() []r3.Vector {
	var pts [][4]float64
	for _, p := range permutations(4) {
		var x [4]float64
		for i, e := range p {
			x[i] = float64(e + 1)
		}
		pts = append(pts, x)
	}
	return project(pts)
}

// teslerPoints are the permutation Tesler matrices of size 3 with unit hook
// sums, written as the free entries (a12, a13, a23).
func teslerPoints() []r3.Vector {
	return []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 2},
		{X: 0, Y: 1, Z: 1},
	}
}
