package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses #RRGGBB or #AARRGGBB.
func ParseHexColor(s string) (color.Color, error) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return nil, fmt.Errorf("color %q: missing # prefix", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	switch len(h) {
	case 6:
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xFF}, nil
	case 8:
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), uint8(v >> 24)}, nil
	default:
		return nil, fmt.Errorf("color %q: want #RRGGBB or #AARRGGBB", s)
	}
}

// ParseHexColors parses a comma-separated color list for the overlay
// markers. An empty string yields an empty list.
func ParseHexColors(csv string) ([]color.Color, error) {
	var out []color.Color
	for _, p := range strings.Split(csv, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		c, err := ParseHexColor(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
