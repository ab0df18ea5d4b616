package polyhedron

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeJSON = `{
  "name": "cube",
  "vertices": [[0,0,0],[1,0,0],[1,1,0],[0,1,0],[0,0,1],[1,0,1],[1,1,1],[0,1,1]],
  "faces": [[0,3,2,1],[4,5,6,7],[0,1,5,4],[1,2,6,5],[2,3,7,6],[3,0,4,7]]
}`

func TestIdx(t *testing.T) {
	tests := []struct {
		name  string
		in    int
		valid bool
	}{
		{"zero", 0, true},
		{"positive", 42, true},
		{"negative", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := Idx(tt.in)
			assert.Equal(t, tt.valid, idx.Valid())
			if tt.valid {
				v, ok := idx.Value()
				assert.True(t, ok)
				assert.Equal(t, uint32(tt.in), v)
			}
		})
	}
}

func TestDecodeCube(t *testing.T) {
	d, err := Decode(strings.NewReader(cubeJSON))
	require.NoError(t, err)

	assert.Equal(t, "cube", d.Name)
	assert.Equal(t, 8, d.VertexCount())
	assert.Equal(t, 6, d.FaceCount())
	assert.Equal(t, Vec3{1, 1, 1}, d.Vertices[6])
	for i, f := range d.Faces {
		assert.Len(t, f, 4, "face %d", i)
		assert.True(t, f.Valid(), "face %d", i)
	}
}

func TestDecodeMalformedFaces(t *testing.T) {
	src := `{
	  "vertices": [[0,0,0],[1,0,0],[0,1,0]],
	  "faces": [null, 7, "abc", {"a": 1}, [], [0, "x", 2], [0, 1.5, -1, 2], [0, 1, 2]]
	}`
	d, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, d.Faces, 8)

	for i := 0; i < 4; i++ {
		assert.Nil(t, d.Faces[i], "face %d should decode as missing", i)
	}

	assert.NotNil(t, d.Faces[4])
	assert.Len(t, d.Faces[4], 0)

	f := d.Faces[5]
	require.Len(t, f, 3)
	assert.True(t, f[0].Valid())
	assert.False(t, f[1].Valid())
	assert.Equal(t, `"x"`, f[1].String())
	assert.True(t, f[2].Valid())

	f = d.Faces[6]
	require.Len(t, f, 4)
	assert.False(t, f[1].Valid(), "non-integral entry")
	assert.False(t, f[2].Valid(), "negative entry")

	assert.True(t, d.Faces[7].Valid())
}

func TestDecodeRejectsBadVertex(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"two coordinates", `{"vertices": [[0,0]], "faces": []}`},
		{"not numeric", `{"vertices": [["a","b","c"]], "faces": []}`},
		{"null vertex", `{"vertices": [null], "faces": []}`},
		{"syntax", `{"vertices": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestEncodeRoundTripKeepsInvalidEntries(t *testing.T) {
	d := New("mixed", []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Face{
		{Idx(0), Invalid(`"x"`), Idx(2)},
		nil,
		{Idx(0), Invalid("oops"), Idx(1)},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d))
	assert.Contains(t, buf.String(), `"x"`)
	assert.Contains(t, buf.String(), `null`)
	assert.Contains(t, buf.String(), `"oops"`)

	back, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, back.Faces, 3)
	assert.False(t, back.Faces[0][1].Valid())
	assert.Nil(t, back.Faces[1])
	assert.Equal(t, `"oops"`, back.Faces[2][1].String())
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tetra.json")

	d := New("", []Vec3{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}},
		[]Face{F(0, 1, 2), F(0, 3, 1), F(0, 2, 3), F(1, 3, 2)})
	require.NoError(t, Save(path, d))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tetra", loaded.Name, "name falls back to the file name")
	assert.Equal(t, d.Vertices, loaded.Vertices)
	assert.Equal(t, d.Faces, loaded.Faces)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestSanitizedMarksOutOfRange(t *testing.T) {
	d := New("bad", []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []Face{
		F(0, 1, 2),
		F(0, 1, 9),
		nil,
	})
	faces := d.Sanitized()
	require.Len(t, faces, 3)

	assert.True(t, faces[0].Valid())
	assert.False(t, faces[1][2].Valid())
	assert.Equal(t, "9", faces[1][2].String())
	assert.Nil(t, faces[2])

	// The description itself is untouched.
	assert.True(t, d.Faces[1][2].Valid())
}

func TestTransforms(t *testing.T) {
	d := New("tri", []Vec3{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}, []Face{F(0, 1, 2)})

	s := d.Scaled(2)
	assert.Equal(t, Vec3{2, 0, 0}, s.Vertices[0])
	assert.Equal(t, Vec3{0, 0, 6}, s.Vertices[2])
	assert.Equal(t, Vec3{1, 0, 0}, d.Vertices[0], "original is not mutated")

	tr := d.Translated(Vec3{1, 1, 1})
	assert.Equal(t, Vec3{2, 1, 1}, tr.Vertices[0])

	r := d.Renamed("other")
	assert.Equal(t, "other", r.Name)
	assert.Equal(t, "tri", d.Name)

	c := d.Clone()
	c.Faces[0][0] = Idx(2)
	v, _ := d.Faces[0][0].Value()
	assert.Equal(t, uint32(0), v, "clone owns its faces")
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Cube", "cube"},
		{"Square pyramid (J1)", "square-pyramid-j1"},
		{"Associahedron (k=4)", "associahedron-k-4"},
		{"  truncated   icosahedron ", "truncated-icosahedron"},
		{"../../etc/passwd", "etc-passwd"},
		{"a/b\\c:d", "a-b-c-d"},
		{"Ikosaeder Ä", "ikosaeder-ä"},
		{"", "polyhedron-3"},
		{"()", "polyhedron-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.name, 3))
		})
	}
}
