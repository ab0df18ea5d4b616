package tessellate

import (
	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Build assembles the renderable mesh of d. Out-of-range indices are
// treated like non-numeric entries. The description is never mutated and
// the result shares no memory with it.
func Build(d *polyhedron.Description) *mesh.Mesh {
	faces := d.Sanitized()
	tri := Triangulate(faces)
	edges := ExtractEdges(faces)

	m := &mesh.Mesh{
		Name:     d.Name,
		Vertices: flatten(d.Vertices),
		Indices:  tri.Indices,
		Groups:   tri.Groups,
		Edges:    edges.Edges,
	}
	m.FaceNormals = faceNormals(d.Vertices, faces, tri.Groups)
	m.Bounds = boundsOf(d.Vertices, tri.Indices)

	m.Diagnostics = make([]mesh.Diagnostic, 0, len(tri.Diagnostics)+len(edges.Diagnostics))
	m.Diagnostics = append(m.Diagnostics, tri.Diagnostics...)
	m.Diagnostics = append(m.Diagnostics, edges.Diagnostics...)

	return m
}

// flatten converts positions to the flat float32 layout used by the renderer.
func flatten(vertices []polyhedron.Vec3) []float32 {
	out := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		out = append(out, float32(v[0]), float32(v[1]), float32(v[2]))
	}
	return out
}

// faceNormals computes one unit normal per group with Newell's method over
// the valid entries of the group's source face. Counter-clockwise winding
// seen from outside yields an outward normal.
func faceNormals(vertices []polyhedron.Vec3, faces []polyhedron.Face, groups []mesh.Group) []float32 {
	out := make([]float32, 0, len(groups)*3)
	for _, g := range groups {
		var pts []v3.Vec
		for _, idx := range faces[g.Face] {
			if v, ok := idx.Value(); ok {
				pts = append(pts, vertices[v].V3())
			}
		}

		var n v3.Vec
		for i, cur := range pts {
			nxt := pts[(i+1)%len(pts)]
			n.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
			n.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
			n.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
		}
		if l := n.Length(); l > 0 {
			n = n.DivScalar(l)
		}
		out = append(out, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return out
}

// boundsOf returns the extent of the vertices referenced by the index
// buffer. An empty index buffer yields zero bounds.
func boundsOf(vertices []polyhedron.Vec3, indices []uint32) mesh.Bounds {
	if len(indices) == 0 {
		return mesh.Bounds{}
	}

	first := vertices[indices[0]].V3()
	box := sdf.Box3{Min: first, Max: first}
	for _, i := range indices[1:] {
		p := vertices[i].V3()
		box = sdf.Box3{Min: box.Min.Min(p), Max: box.Max.Max(p)}
	}

	center := box.Center()
	var radius float64
	for _, i := range indices {
		if r := vertices[i].V3().Sub(center).Length(); r > radius {
			radius = r
		}
	}

	return mesh.Bounds{
		Min:    vec32(box.Min),
		Max:    vec32(box.Max),
		Center: vec32(center),
		Radius: float32(radius),
	}
}

func vec32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
