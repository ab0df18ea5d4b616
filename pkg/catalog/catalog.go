// Package catalog is the library of named polytopes the viewer and the
// generator CLI build descriptions from. Every entry is the convex hull of a
// closed-form vertex set, so faces come out as merged polygons with outward
// counter-clockwise winding.
package catalog

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/chazu/polyview/pkg/polyhedron"
)

// ErrUnknownPolytope is returned for keys that are not in the catalog.
var ErrUnknownPolytope = errors.New("catalog: unknown polytope")

// Families, in listing order.
const (
	FamilyPlatonic      = "platonic"
	FamilyArchimedean   = "archimedean"
	FamilyCatalan       = "catalan"
	FamilyPrism         = "prism"
	FamilyAntiprism     = "antiprism"
	FamilyJohnson       = "johnson"
	FamilyCombinatorial = "combinatorial"
	FamilyRegular       = "regular-polytope"
)

var familyOrder = map[string]int{
	FamilyPlatonic:      0,
	FamilyArchimedean:   1,
	FamilyCatalan:       2,
	FamilyPrism:         3,
	FamilyAntiprism:     4,
	FamilyJohnson:       5,
	FamilyCombinatorial: 6,
	FamilyRegular:       7,
}

// Entry describes one catalog polytope.
type Entry struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Family      string `json:"family"`

	build func() (*polyhedron.Description, error)
}

// Build constructs a fresh description for the entry, named after its
// display name.
func (e Entry) Build() (*polyhedron.Description, error) {
	d, err := e.build()
	if err != nil {
		return nil, errors.WithMessagef(err, "catalog: build %s", e.Key)
	}
	d.Name = e.DisplayName
	return d, nil
}

func hullOf(name string, pts func() []r3.Vector) func() (*polyhedron.Description, error) {
	return func() (*polyhedron.Description, error) {
		return FromPoints(name, pts())
	}
}

// dualOf builds the Catalan solid polar to the hull of pts.
func dualOf(name string, pts func() []r3.Vector) func() (*polyhedron.Description, error) {
	return func() (*polyhedron.Description, error) {
		d, err := FromPoints(name, pts())
		if err != nil {
			return nil, err
		}
		return Dual(name, d)
	}
}

func generated(gen func(int) (*polyhedron.Description, error), n int) func() (*polyhedron.Description, error) {
	return func() (*polyhedron.Description, error) {
		return gen(n)
	}
}

// pointEntry names a closed-form vertex set.
type pointEntry struct {
	key, display string
	pts          func() []r3.Vector
}

var registry = map[string]Entry{}

func register(key, display, family string, build func() (*polyhedron.Description, error)) {
	registry[key] = Entry{Key: key, DisplayName: display, Family: family, build: build}
}

func init() {
	register("tetrahedron", "Tetrahedron", FamilyPlatonic, hullOf("tetrahedron", tetrahedronPoints))
	register("cube", "Cube", FamilyPlatonic, hullOf("cube", cubePoints))
	register("octahedron", "Octahedron", FamilyPlatonic, hullOf("octahedron", octahedronPoints))
	register("dodecahedron", "Dodecahedron", FamilyPlatonic, hullOf("dodecahedron", dodecahedronPoints))
	register("icosahedron", "Icosahedron", FamilyPlatonic, hullOf("icosahedron", icosahedronPoints))

	archimedean := []pointEntry{
		{"truncated-tetrahedron", "Truncated tetrahedron", truncatedTetrahedronPoints},
		{"cuboctahedron", "Cuboctahedron", cuboctahedronPoints},
		{"truncated-cube", "Truncated cube", truncatedCubePoints},
		{"truncated-octahedron", "Truncated octahedron", truncatedOctahedronPoints},
		{"rhombicuboctahedron", "Rhombicuboctahedron", rhombicuboctahedronPoints},
		{"truncated-cuboctahedron", "Truncated cuboctahedron", truncatedCuboctahedronPoints},
		{"snub-cube", "Snub cube", snubCubePoints},
		{"icosidodecahedron", "Icosidodecahedron", icosidodecahedronPoints},
		{"truncated-dodecahedron", "Truncated dodecahedron", truncatedDodecahedronPoints},
		{"truncated-icosahedron", "Truncated icosahedron", truncatedIcosahedronPoints},
		{"rhombicosidodecahedron", "Rhombicosidodecahedron", rhombicosidodecahedronPoints},
		{"truncated-icosidodecahedron", "Truncated icosidodecahedron", truncatedIcosidodecahedronPoints},
		{"snub-dodecahedron", "Snub dodecahedron", snubDodecahedronPoints},
	}
	for _, a := range archimedean {
		register(a.key, a.display, FamilyArchimedean, hullOf(a.key, a.pts))
	}

	// Catalan solids are the duals of the Archimedean ones, except the
	// rhombic dodecahedron which has integer coordinates of its own.
	register("rhombic-dodecahedron", "Rhombic dodecahedron", FamilyCatalan, hullOf("rhombic-dodecahedron", rhombicDodecahedronPoints))
	catalan := []pointEntry{
		{"triakis-tetrahedron", "Triakis tetrahedron", truncatedTetrahedronPoints},
		{"triakis-octahedron", "Triakis octahedron", truncatedCubePoints},
		{"tetrakis-hexahedron", "Tetrakis hexahedron", truncatedOctahedronPoints},
		{"deltoidal-icositetrahedron", "Deltoidal icositetrahedron", rhombicuboctahedronPoints},
		{"disdyakis-dodecahedron", "Disdyakis dodecahedron", truncatedCuboctahedronPoints},
		{"pentagonal-icositetrahedron", "Pentagonal icositetrahedron", snubCubePoints},
		{"rhombic-triacontahedron", "Rhombic triacontahedron", icosidodecahedronPoints},
		{"triakis-icosahedron", "Triakis icosahedron", truncatedDodecahedronPoints},
		{"pentakis-dodecahedron", "Pentakis dodecahedron", truncatedIcosahedronPoints},
		{"deltoidal-hexecontahedron", "Deltoidal hexecontahedron", rhombicosidodecahedronPoints},
		{"disdyakis-triacontahedron", "Disdyakis triacontahedron", truncatedIcosidodecahedronPoints},
		{"pentagonal-hexecontahedron", "Pentagonal hexecontahedron", snubDodecahedronPoints},
	}
	for _, c := range catalan {
		register(c.key, c.display, FamilyCatalan, dualOf(c.key, c.pts))
	}

	register("triangular-prism", "Triangular prism", FamilyPrism, generated(Prism, 3))
	register("pentagonal-prism", "Pentagonal prism", FamilyPrism, generated(Prism, 5))
	register("hexagonal-prism", "Hexagonal prism", FamilyPrism, generated(Prism, 6))

	register("square-antiprism", "Square antiprism", FamilyAntiprism, generated(Antiprism, 4))
	register("pentagonal-antiprism", "Pentagonal antiprism", FamilyAntiprism, generated(Antiprism, 5))

	register("johnson-j1", "Square pyramid (J1)", FamilyJohnson, generated(Pyramid, 4))
	register("johnson-j2", "Pentagonal pyramid (J2)", FamilyJohnson, generated(Pyramid, 5))
	register("johnson-j4", "Square cupola (J4)", FamilyJohnson, hullOf("johnson-j4", squareCupolaPoints))
	register("johnson-j91", "Bilunabirotunda (J91)", FamilyJohnson, hullOf("johnson-j91", bilunabirotundaPoints))

	register("associahedron-k4", "Associahedron (k=4)", FamilyCombinatorial, hullOf("associahedron-k4", associahedronPoints))
	register("cyclohedron-k4", "Cyclohedron (k=4)", FamilyCombinatorial, hullOf("cyclohedron-k4", cyclohedronPoints))
	register("permutahedron-n4", "Permutahedron (n=4)", FamilyCombinatorial, hullOf("permutahedron-n4", permutahedronPoints))
	register("tesler-n3", "Tesler polytope (n=3)", FamilyCombinatorial, hullOf("tesler-n3", teslerPoints))

	// The 3-dimensional members of the infinite regular families share
	// their geometry with the Platonic solids.
	register("simplex-3d", "3-simplex", FamilyRegular, hullOf("simplex-3d", tetrahedronPoints))
	register("cross-polytope-3d", "3-orthoplex", FamilyRegular, hullOf("cross-polytope-3d", octahedronPoints))
}

// Entries returns every catalog entry, ordered by family and then key.
func Entries() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		fi, fj := familyOrder[out[i].Family], familyOrder[out[j].Family]
		if fi != fj {
			return fi < fj
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Lookup returns the entry registered under key.
func Lookup(key string) (Entry, bool) {
	e, ok := registry[key]
	return e, ok
}

// Build constructs the polytope registered under key.
func Build(key string) (*polyhedron.Description, error) {
	e, ok := Lookup(key)
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownPolytope, "key %q", key)
	}
	return e.Build()
}
