package config

import "sort"

// DefaultScheme is the palette used when none is configured.
const DefaultScheme = "classic"

// schemes maps a scheme name to its material slot colors. Slots beyond the
// palette length wrap around.
var schemes = map[string][]string{
	"classic": {
		"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4",
		"#46f0f0", "#f032e6", "#bcf60c", "#fabebe", "#008080", "#e6beff",
	},
	"pastel": {
		"#a6cee3", "#b2df8a", "#fb9a99", "#fdbf6f", "#cab2d6", "#ffff99",
		"#8dd3c7", "#bebada", "#fb8072", "#80b1d3",
	},
	"viridis": {
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89",
		"#35b779", "#6ece58", "#b5de2b", "#fde725",
	},
	"mono": {"#b0b0b0", "#909090"},
}

// SchemeNames returns the known scheme names, sorted.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette returns the colors of a scheme.
func Palette(name string) ([]string, bool) {
	p, ok := schemes[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), p...), true
}

// SlotColor returns the color of a material slot in palette p.
func SlotColor(p []string, slot int) string {
	if len(p) == 0 || slot < 0 {
		return ""
	}
	return p[slot%len(p)]
}
