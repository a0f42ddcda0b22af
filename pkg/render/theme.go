// Package render turns computed structogram layouts into visual
// output: SVG directly, and PNG or PDF via rsvg-convert.
//
// Rendering is strictly downstream of layout: a Theme controls colors
// and fonts but never influences box sizes, so the same layout can be
// rendered with any theme, concurrently, without shared state.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme holds the visual constants for rendering. It is passed as an
// explicit value, never read from a global, so light/dark/monochrome
// variants can render side by side.
type Theme struct {
	Background  string `toml:"background"`
	Stroke      string `toml:"stroke"`
	Text        string `toml:"text"`
	HeaderFill  string `toml:"header_fill"`
	SectionFill string `toml:"section_fill"`
	AccentText  string `toml:"accent_text"`
	FontFamily  string `toml:"font_family"`
}

const defaultFontFamily = "Menlo, Consolas, monospace"

// Light is the default theme.
func Light() Theme {
	return Theme{
		Background:  "#ffffff",
		Stroke:      "#1f2430",
		Text:        "#1f2430",
		HeaderFill:  "#eef2f7",
		SectionFill: "#f6efdc",
		AccentText:  "#5b6472",
		FontFamily:  defaultFontFamily,
	}
}

// Dark is the inverted variant.
func Dark() Theme {
	return Theme{
		Background:  "#14161c",
		Stroke:      "#d7dce4",
		Text:        "#d7dce4",
		HeaderFill:  "#232836",
		SectionFill: "#2e2a1f",
		AccentText:  "#9aa3b2",
		FontFamily:  defaultFontFamily,
	}
}

// Monochrome renders with no fills, for print.
func Monochrome() Theme {
	return Theme{
		Background:  "#ffffff",
		Stroke:      "#000000",
		Text:        "#000000",
		HeaderFill:  "none",
		SectionFill: "none",
		AccentText:  "#000000",
		FontFamily:  defaultFontFamily,
	}
}

var themes = map[string]func() Theme{
	"light":      Light,
	"dark":       Dark,
	"monochrome": Monochrome,
}

// ThemeNames returns the built-in theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName resolves a built-in theme.
func ThemeByName(name string) (Theme, error) {
	if f, ok := themes[name]; ok {
		return f(), nil
	}
	return Theme{}, fmt.Errorf("invalid theme: %q (must be one of: %s)", name, strings.Join(ThemeNames(), ", "))
}

// LoadThemeFile reads a theme from a TOML file. Unset fields fall back
// to the light theme so partial files stay usable.
func LoadThemeFile(path string) (Theme, error) {
	t := Light()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	return t, nil
}
