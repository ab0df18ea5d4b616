// Package polyhedron defines the polyhedron description consumed by the
// mesh builder: vertex positions plus per-face vertex-index lists. Faces are
// polygons of any length and may contain malformed entries; the description
// keeps them as-is so that downstream passes can skip them with diagnostics.
package polyhedron
