package polyhedron

import (
	"fmt"
	"strings"
	"unicode"
)

// Slug turns a name into a file name stem: its lower-case letters and digits,
// with every run of other characters collapsed to a single hyphen. A name
// without letters or digits yields "polyhedron-<i>".
func Slug(name string, i int) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return fmt.Sprintf("polyhedron-%d", i)
	}
	return b.String()
}
