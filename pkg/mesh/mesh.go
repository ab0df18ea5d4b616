// Package mesh defines the renderable form of a polyhedron: a flat triangle
// index buffer split into per-face material groups, the deduplicated edge
// list for wireframe rendering, and the diagnostics collected while
// building them. A Mesh is derived data; it is rebuilt whenever a new
// description is loaded.
package mesh

import "github.com/pkg/errors"

// ErrNothingToRender is returned by callers that refuse to hand an empty
// mesh to the renderer.
var ErrNothingToRender = errors.New("mesh: nothing to render")

// Group is a contiguous range of the index buffer drawn with one material.
type Group struct {
	Start    int `json:"start"`    // offset into Indices
	Count    int `json:"count"`    // number of indices, always a multiple of 3
	Material int `json:"material"` // material slot, sequential over emitted groups
	Face     int `json:"face"`     // position of the source face in the description
}

// End returns the offset one past the last index of the group.
func (g Group) End() int {
	return g.Start + g.Count
}

// Triangles returns the number of triangles in the group.
func (g Group) Triangles() int {
	return g.Count / 3
}

// Edge is an undirected segment between two vertices, stored in the order
// it was first discovered.
type Edge [2]uint32

// EdgeKey is the canonical (min, max) form of an edge.
type EdgeKey struct {
	Lo, Hi uint32
}

// Key returns the canonical key of e.
func (e Edge) Key() EdgeKey {
	if e[0] <= e[1] {
		return EdgeKey{Lo: e[0], Hi: e[1]}
	}
	return EdgeKey{Lo: e[1], Hi: e[0]}
}

// Bounds is the axis-aligned extent of the referenced vertices together with
// the radius of the enclosing sphere around its center.
type Bounds struct {
	Min    [3]float32 `json:"min"`
	Max    [3]float32 `json:"max"`
	Center [3]float32 `json:"center"`
	Radius float32    `json:"radius"`
}

// Mesh is a triangle mesh with per-face material groups and a wireframe
// edge list. All arrays are flat: Vertices has 3 floats per vertex,
// Indices 3 per triangle, FaceNormals 3 per group.
type Mesh struct {
	Name        string       `json:"name"`
	Vertices    []float32    `json:"vertices"`
	Indices     []uint32     `json:"indices"`
	Groups      []Group      `json:"groups"`
	Edges       []Edge       `json:"edges"`
	FaceNormals []float32    `json:"faceNormals"`
	Bounds      Bounds       `json:"bounds"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// EdgeCount returns the number of unique edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// GroupCount returns the number of material slots the renderer must allocate.
func (m *Mesh) GroupCount() int {
	return len(m.Groups)
}

// IsEmpty returns true if the mesh has no triangles to draw.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// GroupIndices returns the slice of Indices covered by g.
func (m *Mesh) GroupIndices(g Group) []uint32 {
	return m.Indices[g.Start:g.End()]
}

// Position returns the coordinates of vertex i.
func (m *Mesh) Position(i uint32) [3]float32 {
	j := int(i) * 3
	return [3]float32{m.Vertices[j], m.Vertices[j+1], m.Vertices[j+2]}
}

// Triangles returns the corner positions of every triangle, in index order.
func (m *Mesh) Triangles() [][3][3]float32 {
	tris := make([][3][3]float32, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, [3][3]float32{
			m.Position(m.Indices[i]),
			m.Position(m.Indices[i+1]),
			m.Position(m.Indices[i+2]),
		})
	}
	return tris
}

// EulerCharacteristic returns V - E + F, counting only vertices referenced
// by an edge and treating every group as one face. It is 2 for a closed
// polyhedron of genus zero.
func (m *Mesh) EulerCharacteristic() int {
	referenced := make(map[uint32]struct{})
	for _, e := range m.Edges {
		referenced[e[0]] = struct{}{}
		referenced[e[1]] = struct{}{}
	}
	return len(referenced) - len(m.Edges) + len(m.Groups)
}
