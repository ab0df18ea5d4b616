package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
	"github.com/chazu/polyview/pkg/tessellate"
)

// cube returns the unit cube with counter-clockwise quads seen from outside.
func cube() *polyhedron.Description {
	return polyhedron.New("cube",
		[]polyhedron.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		[]polyhedron.Face{
			polyhedron.F(0, 3, 2, 1), // bottom
			polyhedron.F(4, 5, 6, 7), // top
			polyhedron.F(0, 1, 5, 4), // front
			polyhedron.F(1, 2, 6, 5), // right
			polyhedron.F(2, 3, 7, 6), // back
			polyhedron.F(3, 0, 4, 7), // left
		},
	)
}

// polygon returns a face with vertices 0..n-1.
func polygon(n int) polyhedron.Face {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = i
	}
	return polyhedron.F(vs...)
}

// bad returns a non-numeric face entry.
func bad(raw string) polyhedron.Index {
	return polyhedron.Invalid(raw)
}

func idx(v int) polyhedron.Index {
	return polyhedron.Idx(v)
}

// checkTiling asserts that groups cover the index buffer contiguously.
func checkTiling(t *testing.T, tri tessellate.Triangulation) {
	t.Helper()
	offset := 0
	for k, g := range tri.Groups {
		if g.Start != offset {
			t.Errorf("group %d starts at %d, want %d", k, g.Start, offset)
		}
		if g.Count <= 0 || g.Count%3 != 0 {
			t.Errorf("group %d has count %d, want a positive multiple of 3", k, g.Count)
		}
		if g.Material != k {
			t.Errorf("group %d has material %d, want %d", k, g.Material, k)
		}
		offset += g.Count
	}
	if offset != len(tri.Indices) {
		t.Errorf("groups cover %d indices, buffer has %d", offset, len(tri.Indices))
	}
}

func TestTriangleUnchanged(t *testing.T) {
	tri := tessellate.Triangulate([]polyhedron.Face{polyhedron.F(4, 7, 9)})

	want := []uint32{4, 7, 9}
	if len(tri.Indices) != 3 {
		t.Fatalf("expected 3 indices, got %v", tri.Indices)
	}
	for i := range want {
		if tri.Indices[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, tri.Indices[i], want[i])
		}
	}
	if len(tri.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(tri.Groups))
	}
	if tri.Groups[0] != (mesh.Group{Start: 0, Count: 3, Material: 0, Face: 0}) {
		t.Errorf("unexpected group %+v", tri.Groups[0])
	}
	if len(tri.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", tri.Diagnostics)
	}
}

func TestFanTriangulationCounts(t *testing.T) {
	for n := 3; n <= 12; n++ {
		tri := tessellate.Triangulate([]polyhedron.Face{polygon(n)})
		if len(tri.Indices) != 3*(n-2) {
			t.Errorf("n=%d: %d indices, want %d", n, len(tri.Indices), 3*(n-2))
		}
		if len(tri.Groups) != 1 || tri.Groups[0].Count != 3*(n-2) {
			t.Errorf("n=%d: groups %+v, want one group of %d", n, tri.Groups, 3*(n-2))
		}
		// Every triangle fans from the first vertex.
		for i := 0; i < len(tri.Indices); i += 3 {
			k := uint32(i / 3)
			if tri.Indices[i] != 0 || tri.Indices[i+1] != k+1 || tri.Indices[i+2] != k+2 {
				t.Errorf("n=%d: triangle %d = %v", n, k, tri.Indices[i:i+3])
			}
		}
	}
}

func TestCubeTriangulation(t *testing.T) {
	tri := tessellate.Triangulate(cube().Faces)

	if len(tri.Groups) != 6 {
		t.Fatalf("expected 6 groups, got %d", len(tri.Groups))
	}
	if len(tri.Indices) != 36 {
		t.Fatalf("expected 36 indices, got %d", len(tri.Indices))
	}
	for k, g := range tri.Groups {
		if g.Triangles() != 2 {
			t.Errorf("group %d has %d triangles, want 2", k, g.Triangles())
		}
	}
	checkTiling(t, tri)
}

func TestCubeEdges(t *testing.T) {
	el := tessellate.ExtractEdges(cube().Faces)
	if len(el.Edges) != 12 {
		t.Fatalf("expected 12 edges, got %d: %v", len(el.Edges), el.Edges)
	}
	seen := make(map[mesh.EdgeKey]bool)
	for _, e := range el.Edges {
		if seen[e.Key()] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e.Key()] = true
	}
}

func TestSkippedFacesDoNotConsumeSlots(t *testing.T) {
	faces := []polyhedron.Face{
		nil,                   // missing
		polyhedron.F(0, 1),    // too short
		polyhedron.F(0, 1, 2), // slot 0
		{},                    // empty
		polyhedron.F(0, 2, 3), // slot 1
	}
	tri := tessellate.Triangulate(faces)

	if len(tri.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(tri.Groups))
	}
	if tri.Groups[0].Face != 2 || tri.Groups[0].Material != 0 {
		t.Errorf("first group = %+v, want face 2 slot 0", tri.Groups[0])
	}
	if tri.Groups[1].Face != 4 || tri.Groups[1].Material != 1 {
		t.Errorf("second group = %+v, want face 4 slot 1", tri.Groups[1])
	}
	checkTiling(t, tri)

	wantKinds := []mesh.DiagnosticKind{mesh.FaceMissing, mesh.FaceTooShort, mesh.FaceTooShort}
	if len(tri.Diagnostics) != len(wantKinds) {
		t.Fatalf("diagnostics = %v, want %d", tri.Diagnostics, len(wantKinds))
	}
	for i, k := range wantKinds {
		if tri.Diagnostics[i].Kind != k {
			t.Errorf("diagnostic %d kind = %s, want %s", i, tri.Diagnostics[i].Kind, k)
		}
		if tri.Diagnostics[i].Element != -1 {
			t.Errorf("diagnostic %d element = %d, want -1", i, tri.Diagnostics[i].Element)
		}
	}
}

func TestNonNumericFirstTriangleDropsFace(t *testing.T) {
	// [0, "x", 2] has a single candidate triangle, and it is invalid.
	faces := []polyhedron.Face{{idx(0), bad(`"x"`), idx(2)}}
	tri := tessellate.Triangulate(faces)

	if !tri.Empty() {
		t.Fatalf("expected empty triangulation, got %v", tri.Indices)
	}
	if len(tri.Groups) != 0 {
		t.Errorf("expected no groups, got %d", len(tri.Groups))
	}
	if len(tri.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", tri.Diagnostics)
	}
	if d := tri.Diagnostics[0]; d.Kind != mesh.IndexInvalid || d.Element != 0 || d.Entry != `"x"` {
		t.Errorf("unexpected first diagnostic %+v", d)
	}
	if d := tri.Diagnostics[1]; d.Kind != mesh.FaceNoTriangles {
		t.Errorf("unexpected second diagnostic %+v", d)
	}
}

func TestNonNumericSkipsOnlyAffectedTriangles(t *testing.T) {
	// Pentagon with a bad third entry: triangles (0,1,x) and (0,x,3) are
	// dropped, (0,3,4) survives.
	faces := []polyhedron.Face{
		polyhedron.F(0, 1, 2),
		{idx(0), idx(1), bad("null"), idx(3), idx(4)},
	}
	tri := tessellate.Triangulate(faces)

	if len(tri.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(tri.Groups))
	}
	g := tri.Groups[1]
	if g.Count != 3 || g.Start != 3 || g.Material != 1 {
		t.Errorf("second group = %+v, want start 3 count 3 slot 1", g)
	}
	got := tri.Indices[g.Start:g.End()]
	if got[0] != 0 || got[1] != 3 || got[2] != 4 {
		t.Errorf("surviving triangle = %v, want [0 3 4]", got)
	}
	checkTiling(t, tri)

	invalid := 0
	for _, d := range tri.Diagnostics {
		if d.Kind == mesh.IndexInvalid {
			invalid++
		}
	}
	if invalid != 2 {
		t.Errorf("expected 2 invalid-index diagnostics, got %d", invalid)
	}
}

func TestInvalidFirstVertexDropsWholeFace(t *testing.T) {
	faces := []polyhedron.Face{
		{bad(`"a"`), idx(1), idx(2), idx(3)},
		polyhedron.F(1, 2, 3),
	}
	tri := tessellate.Triangulate(faces)
	if len(tri.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(tri.Groups))
	}
	if tri.Groups[0].Face != 1 || tri.Groups[0].Material != 0 {
		t.Errorf("group = %+v, want face 1 slot 0", tri.Groups[0])
	}
}

func TestNoRenderableFaces(t *testing.T) {
	tests := []struct {
		name  string
		faces []polyhedron.Face
	}{
		{"nil faces", nil},
		{"only short faces", []polyhedron.Face{polyhedron.F(0), polyhedron.F(0, 1), nil}},
		{"only invalid entries", []polyhedron.Face{{bad("1"), bad("2"), bad("3")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := tessellate.Triangulate(tt.faces)
			if !tri.Empty() {
				t.Errorf("expected empty triangulation, got %v", tri.Indices)
			}
			if len(tri.Groups) != 0 {
				t.Errorf("expected no groups, got %v", tri.Groups)
			}
		})
	}
}

func TestGroupCountMatchesValidFaces(t *testing.T) {
	faces := []polyhedron.Face{
		polyhedron.F(0, 1, 2, 3),
		polyhedron.F(0, 1),
		polygon(6),
		nil,
		polyhedron.F(2, 3, 4),
		polygon(2),
		polygon(7),
	}
	valid := 0
	for _, f := range faces {
		if len(f) >= 3 {
			valid++
		}
	}
	tri := tessellate.Triangulate(faces)
	if len(tri.Groups) != valid {
		t.Errorf("groups = %d, want %d", len(tri.Groups), valid)
	}
	checkTiling(t, tri)
}

func TestTwoEntryFaceEdgeBoundary(t *testing.T) {
	faces := []polyhedron.Face{polyhedron.F(0, 1)}

	tri := tessellate.Triangulate(faces)
	if len(tri.Groups) != 0 || !tri.Empty() {
		t.Errorf("two-entry face must not be triangulated, got %+v", tri)
	}

	// The cyclic walk visits (0,1) and (1,0); both share one canonical key.
	el := tessellate.ExtractEdges(faces)
	if len(el.Edges) != 1 {
		t.Fatalf("expected exactly 1 edge, got %v", el.Edges)
	}
	if el.Edges[0] != (mesh.Edge{0, 1}) {
		t.Errorf("edge = %v, want [0 1]", el.Edges[0])
	}
	if len(el.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", el.Diagnostics)
	}
}

func TestEdgesSkipShortAndMissingFaces(t *testing.T) {
	faces := []polyhedron.Face{nil, polyhedron.F(3), {}}
	el := tessellate.ExtractEdges(faces)
	if len(el.Edges) != 0 {
		t.Errorf("expected no edges, got %v", el.Edges)
	}
	if len(el.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %v", el.Diagnostics)
	}
	if el.Diagnostics[0].Kind != mesh.FaceMissing || el.Diagnostics[1].Kind != mesh.FaceTooShort {
		t.Errorf("unexpected diagnostics %v", el.Diagnostics)
	}
}

func TestEdgesSkipInvalidPairs(t *testing.T) {
	// Square with one bad entry: pairs (1,x) and (x,3) are skipped.
	faces := []polyhedron.Face{{idx(0), idx(1), bad(`"x"`), idx(3)}}
	el := tessellate.ExtractEdges(faces)

	want := []mesh.Edge{{0, 1}, {3, 0}}
	if len(el.Edges) != len(want) {
		t.Fatalf("edges = %v, want %v", el.Edges, want)
	}
	for i := range want {
		if el.Edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, el.Edges[i], want[i])
		}
	}
	if len(el.Diagnostics) != 2 {
		t.Errorf("expected 2 diagnostics, got %v", el.Diagnostics)
	}
	for _, d := range el.Diagnostics {
		if d.Pass != mesh.PassEdges || d.Kind != mesh.IndexInvalid {
			t.Errorf("unexpected diagnostic %+v", d)
		}
	}
}

func TestSharedEdgeFirstSeenOrientation(t *testing.T) {
	// Two triangles sharing edge 1-2, discovered first as (1,2).
	faces := []polyhedron.Face{polyhedron.F(0, 1, 2), polyhedron.F(2, 1, 3)}
	el := tessellate.ExtractEdges(faces)

	want := []mesh.Edge{{0, 1}, {1, 2}, {2, 0}, {1, 3}, {3, 2}}
	if len(el.Edges) != len(want) {
		t.Fatalf("edges = %v, want %v", el.Edges, want)
	}
	for i := range want {
		if el.Edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, el.Edges[i], want[i])
		}
	}
}

func TestEdgesIgnoreTriangulationDiagonals(t *testing.T) {
	// A hexagon has 6 boundary edges; fan diagonals must not appear.
	el := tessellate.ExtractEdges([]polyhedron.Face{polygon(6)})
	if len(el.Edges) != 6 {
		t.Errorf("expected 6 edges, got %d", len(el.Edges))
	}
	for _, e := range el.Edges {
		k := e.Key()
		if k.Hi-k.Lo != 1 && !(k.Lo == 0 && k.Hi == 5) {
			t.Errorf("unexpected diagonal %v", e)
		}
	}
}

func TestEdgeSetInvariantUnderRotation(t *testing.T) {
	base := cube().Faces
	reference := keySet(tessellate.ExtractEdges(base).Edges)

	for shift := 1; shift < 4; shift++ {
		rotated := make([]polyhedron.Face, len(base))
		for i, f := range base {
			r := make(polyhedron.Face, len(f))
			for j := range f {
				r[j] = f[(j+shift)%len(f)]
			}
			rotated[i] = r
		}
		got := keySet(tessellate.ExtractEdges(rotated).Edges)
		if len(got) != len(reference) {
			t.Fatalf("shift %d: %d edges, want %d", shift, len(got), len(reference))
		}
		for k := range reference {
			if !got[k] {
				t.Errorf("shift %d: missing edge %v", shift, k)
			}
		}
	}
}

func keySet(edges []mesh.Edge) map[mesh.EdgeKey]bool {
	s := make(map[mesh.EdgeKey]bool, len(edges))
	for _, e := range edges {
		s[e.Key()] = true
	}
	return s
}

func TestTriangulateDeterministic(t *testing.T) {
	faces := cube().Faces
	first := tessellate.Triangulate(faces)
	for i := 0; i < 5; i++ {
		again := tessellate.Triangulate(faces)
		if len(again.Indices) != len(first.Indices) {
			t.Fatalf("iteration %d: index count changed", i)
		}
		for j := range first.Indices {
			if again.Indices[j] != first.Indices[j] {
				t.Fatalf("iteration %d: index %d changed", i, j)
			}
		}
	}
}

// --- Build ---

func TestBuildCube(t *testing.T) {
	m := tessellate.Build(cube())

	if m.Name != "cube" {
		t.Errorf("name = %q, want cube", m.Name)
	}
	if m.VertexCount() != 8 {
		t.Errorf("vertex count = %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangle count = %d, want 12", m.TriangleCount())
	}
	if m.EdgeCount() != 12 {
		t.Errorf("edge count = %d, want 12", m.EdgeCount())
	}
	if m.GroupCount() != 6 {
		t.Errorf("group count = %d, want 6", m.GroupCount())
	}
	if got := m.EulerCharacteristic(); got != 2 {
		t.Errorf("Euler characteristic = %d, want 2", got)
	}
	if len(m.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", m.Diagnostics)
	}
	if len(m.FaceNormals) != 18 {
		t.Fatalf("face normals length = %d, want 18", len(m.FaceNormals))
	}

	wantNormals := [][3]float32{
		{0, 0, -1}, {0, 0, 1}, {0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0},
	}
	for k, want := range wantNormals {
		got := [3]float32{m.FaceNormals[3*k], m.FaceNormals[3*k+1], m.FaceNormals[3*k+2]}
		for c := 0; c < 3; c++ {
			if math.Abs(float64(got[c]-want[c])) > 1e-6 {
				t.Errorf("normal %d = %v, want %v", k, got, want)
				break
			}
		}
	}

	b := m.Bounds
	if b.Min != [3]float32{0, 0, 0} || b.Max != [3]float32{1, 1, 1} {
		t.Errorf("bounds = %v..%v, want 0..1", b.Min, b.Max)
	}
	if b.Center != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("center = %v, want 0.5", b.Center)
	}
	if math.Abs(float64(b.Radius)-math.Sqrt(0.75)) > 1e-6 {
		t.Errorf("radius = %f, want %f", b.Radius, math.Sqrt(0.75))
	}
}

func TestBuildTreatsOutOfRangeAsInvalid(t *testing.T) {
	d := cube()
	d.Faces = append(d.Faces, polyhedron.F(0, 1, 42))

	m := tessellate.Build(d)
	if m.GroupCount() != 6 {
		t.Errorf("group count = %d, want 6", m.GroupCount())
	}

	var tri, edges int
	for _, diag := range m.Diagnostics {
		if diag.Kind != mesh.IndexInvalid || diag.Face != 6 {
			continue
		}
		switch diag.Pass {
		case mesh.PassTriangulate:
			tri++
		case mesh.PassEdges:
			edges++
		}
	}
	if tri != 1 {
		t.Errorf("triangulate diagnostics for face 6 = %d, want 1", tri)
	}
	if edges != 2 {
		t.Errorf("edge diagnostics for face 6 = %d, want 2", edges)
	}
	if m.EdgeCount() != 12 {
		t.Errorf("edge count = %d, want 12 (edge 0-1 already exists)", m.EdgeCount())
	}
}

func TestBuildEmpty(t *testing.T) {
	d := polyhedron.New("nothing", []polyhedron.Vec3{{0, 0, 0}, {1, 0, 0}}, []polyhedron.Face{polyhedron.F(0, 1)})
	m := tessellate.Build(d)
	if !m.IsEmpty() {
		t.Fatal("expected empty mesh")
	}
	if m.Bounds != (mesh.Bounds{}) {
		t.Errorf("expected zero bounds, got %+v", m.Bounds)
	}
	if m.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", m.EdgeCount())
	}
}

func TestBuildDoesNotMutateDescription(t *testing.T) {
	d := cube()
	d.Faces[0] = polyhedron.F(0, 3, 2, 99)
	tessellate.Build(d)
	if v, ok := d.Faces[0][3].Value(); !ok || v != 99 {
		t.Errorf("description entry changed to %v", d.Faces[0][3])
	}
}
