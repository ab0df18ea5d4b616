package polyhedron

import "fmt"

// ValidationSeverity indicates whether a finding makes the description
// unusable or is merely advisory.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // description cannot be rendered as intended
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// noFace marks findings that are not tied to a single face.
const noFace = -1

// ValidationError describes a single validation finding.
type ValidationError struct {
	Face     int // face position, or -1 for description-level findings
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Face < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] face %d: %s", e.Severity, e.Face, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Face    int
	Message string
}

func (w ValidationWarning) String() string {
	if w.Face < 0 {
		return w.Message
	}
	return fmt.Sprintf("face %d: %s", w.Face, w.Message)
}

// Validate checks the description against its input contract. It never
// mutates d. Errors mean the data violates the contract (out-of-range
// indices, nothing to describe); warnings flag entries the mesh builder
// will skip.
func (d *Description) Validate() ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	if len(d.Vertices) == 0 {
		errs = append(errs, ValidationError{Face: noFace, Message: "description has no vertices", Severity: SeverityError})
	} else if len(d.Vertices) < 4 {
		warnings = append(warnings, ValidationWarning{
			Face:    noFace,
			Message: fmt.Sprintf("only %d vertices, a closed polyhedron needs at least 4", len(d.Vertices)),
		})
	}
	if len(d.Faces) == 0 {
		errs = append(errs, ValidationError{Face: noFace, Message: "description has no faces", Severity: SeverityError})
	}

	faceErrs, faceWarnings := d.validateFaces()
	errs = append(errs, faceErrs...)
	warnings = append(warnings, faceWarnings...)
	warnings = append(warnings, d.validateUnusedVertices()...)

	return errs, warnings
}

// validateFaces checks every face entry.
func (d *Description) validateFaces() ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning
	n := uint32(len(d.Vertices))

	for i, f := range d.Faces {
		if f == nil {
			warnings = append(warnings, ValidationWarning{Face: i, Message: "face is missing or not a sequence"})
			continue
		}
		if len(f) < 3 {
			warnings = append(warnings, ValidationWarning{
				Face:    i,
				Message: fmt.Sprintf("face has %d entries, at least 3 are needed for a polygon", len(f)),
			})
		}

		seen := make(map[uint32]bool, len(f))
		for j, idx := range f {
			v, ok := idx.Value()
			if !ok {
				warnings = append(warnings, ValidationWarning{
					Face:    i,
					Message: fmt.Sprintf("entry %d (%s) is not a vertex index", j, idx),
				})
				continue
			}
			if v >= n {
				errs = append(errs, ValidationError{
					Face:     i,
					Message:  fmt.Sprintf("entry %d refers to vertex %d, only %d vertices exist", j, v, n),
					Severity: SeverityError,
				})
				continue
			}
			if seen[v] {
				warnings = append(warnings, ValidationWarning{
					Face:    i,
					Message: fmt.Sprintf("vertex %d appears more than once", v),
				})
			}
			seen[v] = true
		}
	}

	return errs, warnings
}

// validateUnusedVertices warns about vertices no face refers to.
func (d *Description) validateUnusedVertices() []ValidationWarning {
	if len(d.Vertices) == 0 {
		return nil
	}
	used := make([]bool, len(d.Vertices))
	for _, f := range d.Faces {
		for _, idx := range f {
			if v, ok := idx.Value(); ok && int(v) < len(used) {
				used[v] = true
			}
		}
	}

	unused := 0
	for _, u := range used {
		if !u {
			unused++
		}
	}
	if unused == 0 {
		return nil
	}
	return []ValidationWarning{{
		Face:    noFace,
		Message: fmt.Sprintf("%d vertices are not referenced by any face", unused),
	}}
}
