package ui

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Theme carries the shared widget defaults: colors, metrics, and input
// tuning. It is plain data, not a styling engine — widgets read it once at
// construction. A zero field means "use the built-in default".
type Theme struct {
	PanelColor   uint32  `toml:"panel_color"`
	AccentColor  uint32  `toml:"accent_color"`
	TextColor    uint32  `toml:"text_color"`
	FontSize     float64 `toml:"font_size"`
	Padding      float64 `toml:"padding"`

	SliderTrackColor  uint32  `toml:"slider_track_color"`
	SliderHandleColor uint32  `toml:"slider_handle_color"`
	TrackThickness    float64 `toml:"slider_track_thickness"`
	HandleRadius      float64 `toml:"slider_handle_radius"`

	CheckboxSize float64 `toml:"checkbox_size"`
	ItemHeight   float64 `toml:"item_height"`
	ScrollStep   float64 `toml:"scroll_step"`
}

// DefaultTheme returns the built-in defaults.
func DefaultTheme() Theme {
	return Theme{
		PanelColor:  0x2D2D30FF,
		AccentColor: 0x3B82F6FF,
		TextColor:   0xE5E7EBFF,
		FontSize:    14,
		Padding:     8,

		SliderTrackColor:  0x4B5563FF,
		SliderHandleColor: 0x3B82F6FF,
		TrackThickness:    4,
		HandleRadius:      8,

		CheckboxSize: 18,
		ItemHeight:   24,
		ScrollStep:   24,
	}
}

// LoadTheme reads a TOML theme file and merges it over the defaults, so a
// file only needs to name the fields it changes.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("load theme: %w", err)
	}
	t := DefaultTheme()
	if err := toml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return t, nil
}

// themeOrDefault returns the theme to use for a widget config: the provided
// one, or a fresh copy of the defaults.
func themeOrDefault(t *Theme) *Theme {
	if t != nil {
		return t
	}
	th := DefaultTheme()
	return &th
}
