package mesh

import "fmt"

// DiagnosticKind classifies a recoverable anomaly found while building a mesh.
type DiagnosticKind int

const (
	FaceMissing     DiagnosticKind = iota // face absent or not a sequence
	FaceTooShort                          // fewer entries than the pass needs
	IndexInvalid                          // non-numeric or out-of-range entry
	FaceNoTriangles                       // every triangle of the face was skipped
)

func (k DiagnosticKind) String() string {
	switch k {
	case FaceMissing:
		return "face-missing"
	case FaceTooShort:
		return "face-too-short"
	case IndexInvalid:
		return "index-invalid"
	case FaceNoTriangles:
		return "face-no-triangles"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Pass names the builder stage that produced a diagnostic.
type Pass string

const (
	PassTriangulate Pass = "triangulate"
	PassEdges       Pass = "edges"
)

// Diagnostic records one skipped face, triangle or edge. Element is the
// triangle position within the face for the triangulation pass and the
// pair position for the edge pass; it is -1 when the whole face was skipped.
type Diagnostic struct {
	Pass    Pass           `json:"pass"`
	Kind    DiagnosticKind `json:"kind"`
	Face    int            `json:"face"`
	Element int            `json:"element"`
	Entry   string         `json:"entry,omitempty"` // raw text of the offending entry
}

func (d Diagnostic) String() string {
	switch {
	case d.Element < 0:
		return fmt.Sprintf("%s: face %d: %s", d.Pass, d.Face, d.Kind)
	case d.Entry != "":
		return fmt.Sprintf("%s: face %d element %d: %s (%s)", d.Pass, d.Face, d.Element, d.Kind, d.Entry)
	default:
		return fmt.Sprintf("%s: face %d element %d: %s", d.Pass, d.Face, d.Element, d.Kind)
	}
}
