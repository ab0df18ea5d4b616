package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/mesh"
	"github.com/chazu/polyview/pkg/polyhedron"
)

// WriteOBJ writes d as Wavefront OBJ using the groups and edges of its
// built mesh m. Every group becomes a `g face_<k>` block with material
// `slot_<n>`. Fully valid faces are written as one polygon; faces that lost
// entries are written as the triangles that survived. The edge set follows
// as `l` lines.
func WriteOBJ(w io.Writer, d *polyhedron.Description, m *mesh.Mesh) error {
	if m.IsEmpty() {
		return errors.WithMessage(mesh.ErrNothingToRender, "export: obj")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# polyview")
	if d.Name != "" {
		fmt.Fprintf(bw, "o %s\n", objName(d.Name))
	}
	for _, v := range d.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}

	faces := d.Sanitized()
	for _, g := range m.Groups {
		fmt.Fprintf(bw, "g face_%d\n", g.Face)
		fmt.Fprintf(bw, "usemtl slot_%d\n", g.Material)

		if f := faces[g.Face]; f.Valid() {
			vs := make([]uint32, len(f))
			for i, idx := range f {
				vs[i], _ = idx.Value()
			}
			writeFace(bw, vs)
			continue
		}
		idx := m.GroupIndices(g)
		for t := 0; t+2 < len(idx); t += 3 {
			writeFace(bw, idx[t:t+3])
		}
	}

	for _, e := range m.Edges {
		fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1)
	}

	return errors.Wrap(bw.Flush(), "export: obj")
}

func writeFace(w io.Writer, vs []uint32) {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v + 1)
	}
	fmt.Fprintf(w, "f %s\n", strings.Join(parts, " "))
}

// objName replaces whitespace, which OBJ treats as a separator.
func objName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// SaveOBJ writes d and its mesh to an OBJ file at path.
func SaveOBJ(path string, d *polyhedron.Description, m *mesh.Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "export: create directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "export: create")
	}
	if err := WriteOBJ(f, d, m); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrap(f.Close(), "export: close")
}
