package catalog

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/polyhedron"
)

var (
	phi = (1 + math.Sqrt(5)) / 2
	xi  = math.Sqrt2 - 1
)

// pointSet collects coordinates without duplicates, keeping first-insertion
// order so the hull output is deterministic.
type pointSet struct {
	pts  []r3.Vector
	seen map[[3]int64]bool
}

func newPointSet() *pointSet {
	return &pointSet{seen: make(map[[3]int64]bool)}
}

func (s *pointSet) add(p r3.Vector) {
	const q = 1e9
	key := [3]int64{int64(math.Round(p.X * q)), int64(math.Round(p.Y * q)), int64(math.Round(p.Z * q))}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.pts = append(s.pts, p)
}

// signs adds every sign combination of v.
func (s *pointSet) signs(v [3]float64, keep func([3]float64) bool) *pointSet {
	for mask := 0; mask < 8; mask++ {
		p := v
		for axis := 0; axis < 3; axis++ {
			if mask&(1<<axis) != 0 {
				p[axis] = -p[axis]
			}
		}
		if keep == nil || keep(p) {
			s.add(r3.Vector{X: p[0], Y: p[1], Z: p[2]})
		}
	}
	return s
}

var (
	cyclicPerms = [][3]int{{0, 1, 2}, {1, 2, 0}, {2, 0, 1}}
	oddPerms    = [][3]int{{0, 2, 1}, {2, 1, 0}, {1, 0, 2}}
	allPerms    = append(append([][3]int{}, cyclicPerms...), oddPerms...)
)

// permuted adds every sign combination of each permutation of v.
func (s *pointSet) permuted(v [3]float64, perms [][3]int, keep func([3]float64) bool) *pointSet {
	for _, p := range perms {
		s.signs([3]float64{v[p[0]], v[p[1]], v[p[2]]}, keep)
	}
	return s
}

// orbit adds every image of p under the group generated by gens.
func (s *pointSet) orbit(p r3.Vector, gens []sdf.M44) *pointSet {
	start := len(s.pts)
	s.add(p)
	for i := start; i < len(s.pts); i++ {
		q := v3.Vec{X: s.pts[i].X, Y: s.pts[i].Y, Z: s.pts[i].Z}
		for _, g := range gens {
			r := g.MulPosition(q)
			s.add(r3.Vector{X: r.X, Y: r.Y, Z: r.Z})
		}
	}
	return s
}

// icosahedralRotations generates the rotation group of the icosahedron
// with vertices at the cyclic permutations of (0, ±φ, ±1).
func icosahedralRotations() []sdf.M44 {
	cycle := sdf.M44{
		0, 1, 0, 0,
		0, 0, 1, 0,
		1, 0, 0, 0,
		0, 0, 0, 1,
	}
	return []sdf.M44{
		cycle,
		sdf.RotateZ(math.Pi),
		sdf.Rotate3d(v3.Vec{X: 0, Y: phi, Z: 1}, 2*math.Pi/5),
	}
}

// evenMinus keeps coordinates with an even count of negative entries.
func evenMinus(p [3]float64) bool {
	n := 0
	for _, c := range p {
		if c < 0 {
			n++
		}
	}
	return n%2 == 0
}

func tetrahedronPoints() []r3.Vector {
	return newPointSet().signs([3]float64{1, 1, 1}, evenMinus).pts
}

func cubePoints() []r3.Vector {
	return newPointSet().signs([3]float64{1, 1, 1}, nil).pts
}

func octahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{1, 0, 0}, cyclicPerms, nil).pts
}

func dodecahedronPoints() []r3.Vector {
	s := newPointSet().signs([3]float64{1, 1, 1}, nil)
	return s.permuted([3]float64{0, 1 / phi, phi}, cyclicPerms, nil).pts
}

func icosahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{0, 1, phi}, cyclicPerms, nil).pts
}

func truncatedTetrahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{3, 1, 1}, cyclicPerms, evenMinus).pts
}

func cuboctahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{1, 1, 0}, cyclicPerms, nil).pts
}

func truncatedCubePoints() []r3.Vector {
	return newPointSet().permuted([3]float64{xi, 1, 1}, cyclicPerms, nil).pts
}

func truncatedOctahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{0, 1, 2}, allPerms, nil).pts
}

func rhombicuboctahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{1, 1, 1 + math.Sqrt2}, cyclicPerms, nil).pts
}

func icosidodecahedronPoints() []r3.Vector {
	s := newPointSet().permuted([3]float64{0, 0, phi}, cyclicPerms, nil)
	return s.permuted([3]float64{0.5, phi / 2, phi * phi / 2}, cyclicPerms, nil).pts
}

func rhombicDodecahedronPoints() []r3.Vector {
	s := newPointSet().signs([3]float64{1, 1, 1}, nil)
	return s.permuted([3]float64{2, 0, 0}, cyclicPerms, nil).pts
}

func oddMinus(p [3]float64) bool {
	return !evenMinus(p)
}

func truncatedCuboctahedronPoints() []r3.Vector {
	return newPointSet().permuted([3]float64{1, 1 + math.Sqrt2, 1 + 2*math.Sqrt2}, allPerms, nil).pts
}

func truncatedDodecahedronPoints() []r3.Vector {
	s := newPointSet().permuted([3]float64{0, 1 / phi, 2 + phi}, cyclicPerms, nil)
	s.permuted([3]float64{1 / phi, phi, 2 * phi}, cyclicPerms, nil)
	return s.permuted([3]float64{phi, 2, phi + 1}, cyclicPerms, nil).pts
}

func truncatedIcosahedronPoints() []r3.Vector {
	s := newPointSet().permuted([3]float64{0, 1, 3 * phi}, cyclicPerms, nil)
	s.permuted([3]float64{1, 2 + phi, 2 * phi}, cyclicPerms, nil)
	return s.permuted([3]float64{phi, 2, 2*phi + 1}, cyclicPerms, nil).pts
}

func rhombicosidodecahedronPoints() []r3.Vector {
	s := newPointSet().permuted([3]float64{1, 1, 2*phi + 1}, cyclicPerms, nil)
	s.permuted([3]float64{phi * phi, phi, 2 * phi}, cyclicPerms, nil)
	return s.permuted([3]float64{2 + phi, 0, phi * phi}, cyclicPerms, nil).pts
}

func truncatedIcosidodecahedronPoints() []r3.Vector {
	s := newPointSet().permuted([3]float64{1 / phi, 1 / phi, 3 + phi}, cyclicPerms, nil)
	s.permuted([3]float64{2 / phi, phi, 1 + 2*phi}, cyclicPerms, nil)
	s.permuted([3]float64{1 / phi, phi * phi, 3*phi - 1}, cyclicPerms, nil)
	s.permuted([3]float64{2*phi - 1, 2, 2 + phi}, cyclicPerms, nil)
	return s.permuted([3]float64{phi, 3, 2 * phi}, cyclicPerms, nil).pts
}

// snubCubePoints uses the tribonacci constant t. Even permutations take an
// odd count of minus signs and odd permutations an even count, which picks
// one of the two mirror images.
func snubCubePoints() []r3.Vector {
	t := (1 + math.Cbrt(19+3*math.Sqrt(33)) + math.Cbrt(19-3*math.Sqrt(33))) / 3
	v := [3]float64{1, 1 / t, t}
	return newPointSet().permuted(v, cyclicPerms, oddMinus).permuted(v, oddPerms, evenMinus).pts
}

// snubDodecahedronPoints is the icosahedral orbit of one vertex, with ξ the
// real root of ξ³ - 2ξ = φ.
func snubDodecahedronPoints() []r3.Vector {
	x := 1.7
	for i := 0; i < 50; i++ {
		x -= (x*x*x - 2*x - phi) / (3*x*x - 2)
	}
	a := x - 1/x
	b := x*phi + phi*phi + phi/x
	return newPointSet().orbit(r3.Vector{X: a, Y: 1, Z: b}, icosahedralRotations()).pts
}

// squareCupolaPoints has unit edges: an octagon in z = 0 under a square.
func squareCupolaPoints() []r3.Vector {
	r := (1 + math.Sqrt2) / 2
	s := newPointSet().permuted([3]float64{0.5, r, 0}, [][3]int{{0, 1, 2}, {1, 0, 2}}, nil)
	return s.signs([3]float64{0.5, 0.5, 1 / math.Sqrt2}, func(p [3]float64) bool { return p[2] > 0 }).pts
}

// bilunabirotundaPoints has unit edges.
func bilunabirotundaPoints() []r3.Vector {
	s := newPointSet().signs([3]float64{0.5, 0.5, phi / 2}, nil)
	s.signs([3]float64{0, phi * phi / 2, 0.5}, nil)
	return s.signs([3]float64{phi / 2, 0, 0}, nil).pts
}

// ring returns n points on the unit circle at height z, rotated by offset
// radians.
func ring(n int, z, offset float64) []r3.Vector {
	out := make([]r3.Vector, n)
	for i := range out {
		a := offset + 2*math.Pi*float64(i)/float64(n)
		out[i] = r3.Vector{X: math.Cos(a), Y: math.Sin(a), Z: z}
	}
	return out
}

// sideOf is the edge length of a regular n-gon with unit circumradius.
func sideOf(n int) float64 {
	return 2 * math.Sin(math.Pi/float64(n))
}

// Prism returns the uniform n-gonal prism with unit circumradius and square
// sides.
func Prism(n int) (*polyhedron.Description, error) {
	if n < 3 {
		return nil, errors.Errorf("catalog: prism needs n >= 3, got %d", n)
	}
	h := sideOf(n) / 2
	pts := append(ring(n, -h, 0), ring(n, h, 0)...)
	return FromPoints(fmt.Sprintf("%s prism", polygonName(n)), pts)
}

// Antiprism returns the uniform n-gonal antiprism with unit circumradius.
func Antiprism(n int) (*polyhedron.Description, error) {
	if n < 3 {
		return nil, errors.Errorf("catalog: antiprism needs n >= 3, got %d", n)
	}
	s := sideOf(n)
	c := 2 * math.Sin(math.Pi/float64(2*n))
	h := math.Sqrt(s*s-c*c) / 2
	pts := append(ring(n, -h, 0), ring(n, h, math.Pi/float64(n))...)
	return FromPoints(fmt.Sprintf("%s antiprism", polygonName(n)), pts)
}

// Pyramid returns the n-gonal pyramid with equilateral side triangles. Only
// n from 3 to 5 admit one.
func Pyramid(n int) (*polyhedron.Description, error) {
	if n < 3 || n > 5 {
		return nil, errors.Errorf("catalog: pyramid needs 3 <= n <= 5, got %d", n)
	}
	s := sideOf(n)
	h := math.Sqrt(s*s - 1)
	pts := append(ring(n, 0, 0), r3.Vector{Z: h})
	return FromPoints(fmt.Sprintf("%s pyramid", polygonName(n)), pts)
}

func polygonName(n int) string {
	names := map[int]string{
		3: "triangular", 4: "square", 5: "pentagonal", 6: "hexagonal",
		7: "heptagonal", 8: "octagonal", 9: "enneagonal", 10: "decagonal",
	}
	if s, ok := names[n]; ok {
		return s
	}
	return fmt.Sprintf("%d-gonal", n)
}
