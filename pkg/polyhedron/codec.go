package polyhedron

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MarshalJSON writes valid entries as numbers and invalid entries as their
// raw JSON text (quoted when the raw text is not itself JSON).
func (i Index) MarshalJSON() ([]byte, error) {
	if i.ok {
		return []byte(strconv.FormatUint(uint64(i.v), 10)), nil
	}
	if i.raw != "" && json.Valid([]byte(i.raw)) {
		return []byte(i.raw), nil
	}
	return json.Marshal(i.raw)
}

// UnmarshalJSON never fails: anything that is not a non-negative integer
// becomes an invalid entry.
func (i *Index) UnmarshalJSON(b []byte) error {
	*i = parseIndex(b)
	return nil
}

func parseIndex(raw json.RawMessage) Index {
	text := strings.TrimSpace(string(raw))
	var f float64
	if err := json.Unmarshal([]byte(text), &f); err != nil {
		return Invalid(text)
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
		return Invalid(text)
	}
	return Index{v: uint32(f), ok: true}
}

// wireDescription is the tolerant on-disk form. Faces stay raw so that a
// malformed face does not fail the whole document.
type wireDescription struct {
	Name     string            `json:"name,omitempty"`
	Vertices []json.RawMessage `json:"vertices"`
	Faces    []json.RawMessage `json:"faces"`
}

// UnmarshalJSON decodes vertices strictly and faces leniently.
func (d *Description) UnmarshalJSON(b []byte) error {
	var w wireDescription
	if err := json.Unmarshal(b, &w); err != nil {
		return errors.Wrap(err, "polyhedron: decode")
	}

	vertices := make([]Vec3, len(w.Vertices))
	for i, raw := range w.Vertices {
		var coords []float64
		if err := json.Unmarshal(raw, &coords); err != nil {
			return errors.Wrapf(err, "polyhedron: vertex %d", i)
		}
		if len(coords) != 3 {
			return errors.Errorf("polyhedron: vertex %d has %d coordinates, want 3", i, len(coords))
		}
		vertices[i] = Vec3{coords[0], coords[1], coords[2]}
	}

	var faces []Face
	if w.Faces != nil {
		faces = make([]Face, len(w.Faces))
	}
	for i, raw := range w.Faces {
		faces[i] = decodeFace(raw)
	}

	d.Name = w.Name
	d.Vertices = vertices
	d.Faces = faces
	return nil
}

// decodeFace returns nil for anything that is not a JSON array.
func decodeFace(raw json.RawMessage) Face {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil
	}
	f := make(Face, len(entries))
	for i, e := range entries {
		f[i] = parseIndex(e)
	}
	return f
}

// Decode reads one description from r.
func Decode(r io.Reader) (*Description, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode writes d to w as indented JSON.
func Encode(w io.Writer, d *Description) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(d), "polyhedron: encode")
}

// Load reads a description from a JSON file. When the document has no name,
// the file name without its extension is used.
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "polyhedron: open")
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "polyhedron: load %s", path)
	}
	if d.Name == "" {
		base := filepath.Base(path)
		d.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return d, nil
}

// Save writes d to path, creating parent directories as needed.
func Save(path string, d *Description) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "polyhedron: create directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "polyhedron: create")
	}
	if err := Encode(f, d); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "polyhedron: close")
}
