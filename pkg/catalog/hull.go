package catalog

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/polyhedron"
)

const (
	// hullEps is the quickhull plane tolerance for a unit-scale cloud.
	hullEps = 1e-7
	// planeTol is the relative tolerance used to merge hull triangles that
	// lie on one plane into a single polygon face.
	planeTol = 1e-6
)

// ErrDegenerate is returned when the points do not enclose a volume.
var ErrDegenerate = errors.New("catalog: points do not span three dimensions")

// FromPoints returns the convex polyhedron spanned by pts. Coplanar hull
// triangles are merged into polygon faces whose vertices run
// counter-clockwise seen from outside. Points that are not hull corners are
// dropped and the remaining vertices keep their relative order.
func FromPoints(name string, pts []r3.Vector) (d *polyhedron.Description, err error) {
	if len(pts) < 4 {
		return nil, errors.Errorf("catalog: %s: need at least 4 points, got %d", name, len(pts))
	}
	scale := extent(pts)
	if scale == 0 || !spansVolume(pts, scale) {
		return nil, errors.WithMessage(ErrDegenerate, name)
	}

	defer func() {
		if r := recover(); r != nil {
			d, err = nil, errors.Errorf("catalog: %s: convex hull failed: %v", name, r)
		}
	}()

	hull := new(quickhull.QuickHull).ConvexHull(pts, true, true, hullEps)
	if len(hull.Indices) < 12 || len(hull.Indices)%3 != 0 {
		return nil, errors.Errorf("catalog: %s: hull returned %d indices", name, len(hull.Indices))
	}

	faces := mergeCoplanar(pts, hull.Indices, scale)
	return compact(name, pts, faces), nil
}

// extent returns the largest absolute coordinate, used to scale tolerances.
func extent(pts []r3.Vector) float64 {
	var m float64
	for _, p := range pts {
		m = math.Max(m, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	return m
}

// spansVolume reports whether the points contain four that are not coplanar.
func spansVolume(pts []r3.Vector, scale float64) bool {
	tol := planeTol * scale
	a := pts[0]

	bi := -1
	for i, p := range pts {
		if p.Sub(a).Norm() > tol {
			bi = i
			break
		}
	}
	if bi < 0 {
		return false
	}
	ab := pts[bi].Sub(a)

	var n r3.Vector
	found := false
	for _, p := range pts {
		c := ab.Cross(p.Sub(a))
		if c.Norm() > tol*scale {
			n = c.Normalize()
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for _, p := range pts {
		if math.Abs(n.Dot(p.Sub(a))) > tol {
			return true
		}
	}
	return false
}

// hullPlane accumulates the corners of one polygon face.
type hullPlane struct {
	normal  r3.Vector
	offset  float64
	corners []int
	has     map[int]bool
}

func (p *hullPlane) add(i int) {
	if !p.has[i] {
		p.has[i] = true
		p.corners = append(p.corners, i)
	}
}

// mergeCoplanar groups hull triangles by supporting plane and returns one
// ordered corner list per plane.
func mergeCoplanar(pts []r3.Vector, indices []int, scale float64) [][]int {
	var center r3.Vector
	for _, p := range pts {
		center = center.Add(p)
	}
	center = center.Mul(1 / float64(len(pts)))

	var planes []*hullPlane
	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		a, b, c := pts[ia], pts[ib], pts[ic]

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Norm() <= planeTol*scale*scale {
			continue
		}
		n = n.Normalize()
		if n.Dot(a.Sub(center)) < 0 {
			n = n.Mul(-1)
		}
		off := n.Dot(a)

		var target *hullPlane
		for _, p := range planes {
			if p.normal.Dot(n) > 1-planeTol && math.Abs(p.offset-off) <= planeTol*scale {
				target = p
				break
			}
		}
		if target == nil {
			target = &hullPlane{normal: n, offset: off, has: make(map[int]bool)}
			planes = append(planes, target)
		}
		target.add(ia)
		target.add(ib)
		target.add(ic)
	}

	faces := make([][]int, 0, len(planes))
	for _, p := range planes {
		faces = append(faces, orderCorners(pts, p))
	}
	return faces
}

// orderCorners sorts the corners of a plane counter-clockwise around its
// outward normal, starting from the first corner discovered.
func orderCorners(pts []r3.Vector, p *hullPlane) []int {
	var fc r3.Vector
	for _, i := range p.corners {
		fc = fc.Add(pts[i])
	}
	fc = fc.Mul(1 / float64(len(p.corners)))

	u := pts[p.corners[0]].Sub(fc).Normalize()
	w := p.normal.Cross(u)

	angle := make(map[int]float64, len(p.corners))
	for _, i := range p.corners {
		r := pts[i].Sub(fc)
		a := math.Atan2(r.Dot(w), r.Dot(u))
		if a < 0 {
			a += 2 * math.Pi
		}
		angle[i] = a
	}
	// The first corner sits at angle zero by construction.
	angle[p.corners[0]] = 0

	out := append([]int(nil), p.corners...)
	sort.SliceStable(out, func(i, j int) bool { return angle[out[i]] < angle[out[j]] })
	return out
}

// compact builds the description, keeping only referenced points.
func compact(name string, pts []r3.Vector, faces [][]int) *polyhedron.Description {
	used := make([]bool, len(pts))
	for _, f := range faces {
		for _, i := range f {
			used[i] = true
		}
	}

	remap := make([]int, len(pts))
	var vertices []polyhedron.Vec3
	for i, p := range pts {
		if !used[i] {
			continue
		}
		remap[i] = len(vertices)
		vertices = append(vertices, polyhedron.Vec3{p.X, p.Y, p.Z})
	}

	out := make([]polyhedron.Face, len(faces))
	for fi, f := range faces {
		vs := make([]int, len(f))
		for j, i := range f {
			vs[j] = remap[i]
		}
		out[fi] = polyhedron.F(vs...)
	}
	return polyhedron.New(name, vertices, out)
}
