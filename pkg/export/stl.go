// Package export writes built meshes to interchange formats: binary STL for
// printing and slicing tools, and Wavefront OBJ that keeps the original
// polygons, material slots and edge set.
package export

import (
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/mesh"
)

// Triangles converts the mesh's index buffer into sdfx triangles.
func Triangles(m *mesh.Mesh) []*sdf.Triangle3 {
	tris := m.Triangles()
	out := make([]*sdf.Triangle3, len(tris))
	for i, t := range tris {
		var tri sdf.Triangle3
		for j, p := range t {
			tri[j] = v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
		}
		out[i] = &tri
	}
	return out
}

// SaveSTL writes m as a binary STL file. An empty mesh is rejected with
// mesh.ErrNothingToRender.
func SaveSTL(path string, m *mesh.Mesh) error {
	if m.IsEmpty() {
		return errors.WithMessage(mesh.ErrNothingToRender, "export: stl")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "export: create directory")
	}
	return errors.Wrapf(render.SaveSTL(path, Triangles(m)), "export: stl %s", path)
}
