package polyhedron

import v3 "github.com/deadsy/sdfx/vec/v3"

// Clone returns a deep copy of d.
func (d *Description) Clone() *Description {
	vertices := make([]Vec3, len(d.Vertices))
	copy(vertices, d.Vertices)

	var faces []Face
	if d.Faces != nil {
		faces = make([]Face, len(d.Faces))
	}
	for i, f := range d.Faces {
		if f == nil {
			continue
		}
		cp := make(Face, len(f))
		copy(cp, f)
		faces[i] = cp
	}
	return &Description{Name: d.Name, Vertices: vertices, Faces: faces}
}

// Scaled returns a copy with every vertex multiplied by k about the origin.
func (d *Description) Scaled(k float64) *Description {
	return d.mapVertices(func(v v3.Vec) v3.Vec { return v.MulScalar(k) })
}

// Translated returns a copy with every vertex moved by t.
func (d *Description) Translated(t Vec3) *Description {
	off := t.V3()
	return d.mapVertices(func(v v3.Vec) v3.Vec { return v.Add(off) })
}

// Renamed returns a copy with a new name.
func (d *Description) Renamed(name string) *Description {
	c := d.Clone()
	c.Name = name
	return c
}

func (d *Description) mapVertices(fn func(v3.Vec) v3.Vec) *Description {
	c := d.Clone()
	for i, v := range c.Vertices {
		c.Vertices[i] = FromV3(fn(v.V3()))
	}
	return c
}
