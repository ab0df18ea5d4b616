// Package tessellate turns a polyhedron description into renderable
// buffers: a fan-triangulated index buffer with one material group per
// usable face, and the deduplicated edge list of the original polygons.
// Both passes are pure and deterministic; malformed input is skipped and
// reported through diagnostics instead of failing.
package tessellate

import (
	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
)

// wholeFace is the Element value of diagnostics that cover a whole face.
const wholeFace = -1

// Triangulation is the result of Triangulate.
type Triangulation struct {
	Indices     []uint32
	Groups      []mesh.Group
	Diagnostics []mesh.Diagnostic
}

// Empty reports whether no face produced a triangle. Callers must not build
// geometry from an empty triangulation.
func (t Triangulation) Empty() bool {
	return len(t.Indices) == 0
}

// EdgeList is the result of ExtractEdges.
type EdgeList struct {
	Edges       []mesh.Edge
	Diagnostics []mesh.Diagnostic
}

// Triangulate fan-triangulates every face from its first vertex, in input
// order. Faces that are missing or shorter than three entries are skipped
// without consuming a material slot. A triangle containing an invalid entry
// is skipped on its own; the face still gets a group if any of its
// triangles survived. Group k always uses material slot k.
func Triangulate(faces []polyhedron.Face) Triangulation {
	var t Triangulation
	slot := 0

	for fi, f := range faces {
		if f == nil {
			t.Diagnostics = append(t.Diagnostics, faceDiagnostic(mesh.PassTriangulate, mesh.FaceMissing, fi))
			continue
		}
		if len(f) < 3 {
			t.Diagnostics = append(t.Diagnostics, faceDiagnostic(mesh.PassTriangulate, mesh.FaceTooShort, fi))
			continue
		}

		start := len(t.Indices)
		emitted := 0
		for i := 1; i < len(f)-1; i++ {
			a, b, c := f[0], f[i], f[i+1]
			if bad, ok := firstInvalid(a, b, c); ok {
				t.Diagnostics = append(t.Diagnostics, mesh.Diagnostic{
					Pass:    mesh.PassTriangulate,
					Kind:    mesh.IndexInvalid,
					Face:    fi,
					Element: i - 1,
					Entry:   bad.String(),
				})
				continue
			}
			av, _ := a.Value()
			bv, _ := b.Value()
			cv, _ := c.Value()
			t.Indices = append(t.Indices, av, bv, cv)
			emitted++
		}

		if emitted == 0 {
			t.Diagnostics = append(t.Diagnostics, faceDiagnostic(mesh.PassTriangulate, mesh.FaceNoTriangles, fi))
			continue
		}
		t.Groups = append(t.Groups, mesh.Group{
			Start:    start,
			Count:    3 * emitted,
			Material: slot,
			Face:     fi,
		})
		slot++
	}

	return t
}

// ExtractEdges walks the boundary of every face with at least two entries,
// closing the loop from the last entry back to the first, and keeps each
// undirected edge once. The first occurrence of an edge decides its stored
// orientation; output order is order of first discovery. A two-entry face
// contributes its single edge.
func ExtractEdges(faces []polyhedron.Face) EdgeList {
	var el EdgeList
	seen := make(map[mesh.EdgeKey]struct{})

	for fi, f := range faces {
		if f == nil {
			el.Diagnostics = append(el.Diagnostics, faceDiagnostic(mesh.PassEdges, mesh.FaceMissing, fi))
			continue
		}
		if len(f) < 2 {
			el.Diagnostics = append(el.Diagnostics, faceDiagnostic(mesh.PassEdges, mesh.FaceTooShort, fi))
			continue
		}

		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			if bad, ok := firstInvalid(a, b); ok {
				el.Diagnostics = append(el.Diagnostics, mesh.Diagnostic{
					Pass:    mesh.PassEdges,
					Kind:    mesh.IndexInvalid,
					Face:    fi,
					Element: i,
					Entry:   bad.String(),
				})
				continue
			}
			av, _ := a.Value()
			bv, _ := b.Value()
			e := mesh.Edge{av, bv}
			key := e.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			el.Edges = append(el.Edges, e)
		}
	}

	return el
}

// firstInvalid returns the first entry that is not a valid index.
func firstInvalid(entries ...polyhedron.Index) (polyhedron.Index, bool) {
	for _, e := range entries {
		if !e.Valid() {
			return e, true
		}
	}
	return polyhedron.Index{}, false
}

func faceDiagnostic(pass mesh.Pass, kind mesh.DiagnosticKind, face int) mesh.Diagnostic {
	return mesh.Diagnostic{Pass: pass, Kind: kind, Face: face, Element: wholeFace}
}
