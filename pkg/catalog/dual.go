package catalog

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/polyhedron"
)

// Dual returns the polar dual of d about the origin. Each face of d becomes
// the vertex n/h, where n is the face's unit outward normal and h the
// distance of its plane from the origin, so the origin must lie strictly
// inside d.
func Dual(name string, d *polyhedron.Description) (*polyhedron.Description, error) {
	pts := make([]r3.Vector, 0, d.FaceCount())
	for fi, f := range d.Faces {
		var corners []r3.Vector
		for _, idx := range f {
			v, ok := idx.Value()
			if !ok || int(v) >= len(d.Vertices) {
				return nil, errors.Errorf("catalog: %s: face %d has invalid entry %s", name, fi, idx)
			}
			p := d.Vertices[v]
			corners = append(corners, r3.Vector{X: p[0], Y: p[1], Z: p[2]})
		}
		if len(corners) < 3 {
			return nil, errors.Errorf("catalog: %s: face %d has %d corners", name, fi, len(corners))
		}

		n := newell(corners)
		if n.Norm() == 0 {
			return nil, errors.Errorf("catalog: %s: face %d is degenerate", name, fi)
		}
		n = n.Normalize()
		h := n.Dot(corners[0])
		if h <= planeTol*extent(corners) {
			return nil, errors.Errorf("catalog: %s: origin is not inside face %d", name, fi)
		}
		pts = append(pts, n.Mul(1/h))
	}
	return FromPoints(name, pts)
}

// newell returns the area-weighted normal of a polygon.
func newell(corners []r3.Vector) r3.Vector {
	var n r3.Vector
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}
