package polyhedron

import (
	"fmt"
	"math"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec3 is a vertex position. It encodes to JSON as [x, y, z].
type Vec3 [3]float64

// V3 converts the position to an sdfx vector.
func (v Vec3) V3() v3.Vec {
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// FromV3 converts an sdfx vector to a Vec3.
func FromV3(v v3.Vec) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Index is one entry of a face. It is either a vertex index or an invalid
// entry that keeps the raw text it was decoded from.
type Index struct {
	v   uint32
	ok  bool
	raw string
}

// Idx returns a valid index. Negative values and values that do not fit in
// a uint32 produce an invalid entry.
func Idx(v int) Index {
	if v < 0 || int64(v) > math.MaxUint32 {
		return Invalid(strconv.Itoa(v))
	}
	return Index{v: uint32(v), ok: true}
}

// Invalid returns an invalid entry carrying its raw text.
func Invalid(raw string) Index {
	return Index{raw: raw}
}

// Value returns the vertex index and whether the entry is valid.
func (i Index) Value() (uint32, bool) {
	return i.v, i.ok
}

// Valid reports whether the entry is a usable vertex index.
func (i Index) Valid() bool {
	return i.ok
}

func (i Index) String() string {
	if i.ok {
		return strconv.FormatUint(uint64(i.v), 10)
	}
	return i.raw
}

// Face is an ordered list of entries describing one polygon. A nil Face
// stands for a face that was missing or was not a sequence.
type Face []Index

// F builds a face from plain vertex indices.
func F(vs ...int) Face {
	f := make(Face, len(vs))
	for i, v := range vs {
		f[i] = Idx(v)
	}
	return f
}

// Valid reports whether every entry of the face is a valid index.
func (f Face) Valid() bool {
	for _, idx := range f {
		if !idx.ok {
			return false
		}
	}
	return true
}

// Description is a polygon-soup polyhedron: vertex positions plus faces.
type Description struct {
	Name     string `json:"name,omitempty"`
	Vertices []Vec3 `json:"vertices"`
	Faces    []Face `json:"faces"`
}

// New returns a description that owns the given vertices and faces.
func New(name string, vertices []Vec3, faces []Face) *Description {
	return &Description{Name: name, Vertices: vertices, Faces: faces}
}

// VertexCount returns the number of vertices.
func (d *Description) VertexCount() int {
	return len(d.Vertices)
}

// FaceCount returns the number of faces, including malformed ones.
func (d *Description) FaceCount() int {
	return len(d.Faces)
}

func (d *Description) String() string {
	return fmt.Sprintf("%s (%d vertices, %d faces)", d.displayName(), len(d.Vertices), len(d.Faces))
}

func (d *Description) displayName() string {
	if d.Name == "" {
		return "unnamed"
	}
	return d.Name
}

// Sanitized returns a copy of the faces in which indices that do not refer
// to an existing vertex have been replaced by invalid entries. Missing
// faces stay nil.
func (d *Description) Sanitized() []Face {
	n := uint32(len(d.Vertices))
	out := make([]Face, len(d.Faces))
	for i, f := range d.Faces {
		if f == nil {
			continue
		}
		cp := make(Face, len(f))
		for j, idx := range f {
			if v, ok := idx.Value(); ok && v >= n {
				cp[j] = Invalid(idx.String())
				continue
			}
			cp[j] = idx
		}
		out[i] = cp
	}
	return out
}
