package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/golang/geo/r3"

	"github.com/chazu/polyview/pkg/catalog"
	"github.com/chazu/polyview/pkg/polyhedron"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a point.
type sexpVec3 struct {
	vec polyhedron.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpPolyhedron wraps a description so it can flow between builtins.
type sexpPolyhedron struct {
	desc *polyhedron.Description
}

func (p *sexpPolyhedron) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polyhedron %q :vertices %d :faces %d)",
		p.desc.Name, p.desc.VertexCount(), p.desc.FaceCount())
}
func (p *sexpPolyhedron) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integral number.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cube) and plain strings ("cube").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a point from a sexpVec3.
func toVec3(s zygo.Sexp) (polyhedron.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return polyhedron.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toPolyhedron extracts a description from a sexpPolyhedron.
func toPolyhedron(s zygo.Sexp) (*polyhedron.Description, error) {
	if p, ok := s.(*sexpPolyhedron); ok {
		return p.desc, nil
	}
	return nil, fmt.Errorf("expected polyhedron, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFace converts a script list into a face. Integer entries become
// indices; anything else is kept as an invalid entry so the builder can
// report it. A value that is not a list yields a missing face.
func toFace(s zygo.Sexp) polyhedron.Face {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil
	}
	f := make(polyhedron.Face, len(items))
	for i, item := range items {
		f[i] = toIndex(item)
	}
	return f
}

func toIndex(s zygo.Sexp) polyhedron.Index {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return polyhedron.Idx(int(v.Val))
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) && v.Val >= 0 && v.Val <= math.MaxUint32 {
			return polyhedron.Idx(int(v.Val))
		}
	case *zygo.SexpStr:
		return polyhedron.Invalid(fmt.Sprintf("%q", strings.TrimPrefix(v.S, kwPrefix)))
	}
	return polyhedron.Invalid(s.SexpString(nil))
}

func wrapPolyhedron(d *polyhedron.Description) zygo.Sexp {
	return &sexpPolyhedron{desc: d}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the polyhedron builtins into a zygomys
// environment. Shown polyhedra are appended to scene.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v polyhedron.Vec3
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (polytope "cube") or (polytope :truncated-cube)
	// -----------------------------------------------------------------------
	env.AddFunction("polytope", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("polytope requires a catalog key")
		}
		key, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polytope: key: %w", err)
		}
		d, err := catalog.Build(key)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polytope: %w", err)
		}
		return wrapPolyhedron(d), nil
	})

	// -----------------------------------------------------------------------
	// (prism 6), (antiprism 5), (pyramid 4)
	// -----------------------------------------------------------------------
	generators := map[string]func(int) (*polyhedron.Description, error){
		"prism":     catalog.Prism,
		"antiprism": catalog.Antiprism,
		"pyramid":   catalog.Pyramid,
	}
	for fname, gen := range generators {
		fname, gen := fname, gen
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a side count", fname)
			}
			n, err := toInt(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: sides: %w", fname, err)
			}
			d, err := gen(n)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
			}
			return wrapPolyhedron(d), nil
		})
	}

	// -----------------------------------------------------------------------
	// (hull "name" p1 p2 ...) or (hull "name" :points (list p1 p2 ...))
	// -----------------------------------------------------------------------
	env.AddFunction("hull", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("hull requires a name")
		}
		hullName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hull: name: %w", err)
		}

		items := pa.positional[1:]
		if v, ok := pa.kw["points"]; ok {
			list, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hull: points: %w", err)
			}
			items = append(items, list...)
		}

		pts := make([]r3.Vector, 0, len(items))
		for i, item := range items {
			v, err := toVec3(item)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hull: point %d: %w", i, err)
			}
			pts = append(pts, r3.Vector{X: v[0], Y: v[1], Z: v[2]})
		}

		d, err := catalog.FromPoints(hullName, pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("hull: %w", err)
		}
		return wrapPolyhedron(d), nil
	})

	// -----------------------------------------------------------------------
	// (polyhedron "name" :vertices (list (vec3 ...) ...) :faces (list (list 0 1 2) ...))
	// -----------------------------------------------------------------------
	env.AddFunction("polyhedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var polyName string
		if len(pa.positional) > 0 {
			s, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: name: %w", err)
			}
			polyName = s
		}

		var vertices []polyhedron.Vec3
		if v, ok := pa.kw["vertices"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: vertices: %w", err)
			}
			for i, item := range items {
				p, err := toVec3(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polyhedron: vertex %d: %w", i, err)
				}
				vertices = append(vertices, p)
			}
		}

		var faces []polyhedron.Face
		if v, ok := pa.kw["faces"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: faces: %w", err)
			}
			for _, item := range items {
				faces = append(faces, toFace(item))
			}
		}

		return wrapPolyhedron(polyhedron.New(polyName, vertices, faces)), nil
	})

	// -----------------------------------------------------------------------
	// (scale p 2), (translate p (vec3 1 0 0)), (rename p "name")
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a polyhedron and a factor")
		}
		d, err := toPolyhedron(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		k, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: factor: %w", err)
		}
		return wrapPolyhedron(d.Scaled(k)), nil
	})

	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a polyhedron and an offset")
		}
		d, err := toPolyhedron(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		off, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		return wrapPolyhedron(d.Translated(off)), nil
	})

	env.AddFunction("rename", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rename requires a polyhedron and a name")
		}
		d, err := toPolyhedron(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rename: %w", err)
		}
		newName, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rename: name: %w", err)
		}
		return wrapPolyhedron(d.Renamed(newName)), nil
	})

	// -----------------------------------------------------------------------
	// (show p1 p2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("show", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("show requires at least one polyhedron")
		}
		shown := make([]*polyhedron.Description, 0, len(args))
		for i, arg := range args {
			d, err := toPolyhedron(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("show: argument %d: %w", i, err)
			}
			shown = append(shown, d)
		}
		for _, d := range shown {
			scene.show(d)
		}
		return zygo.SexpNull, nil
	})
}
