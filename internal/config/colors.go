package config

import (
	"fmt"
	"strings"

	"github.com/devmobasa/wayscriber/internal/draw"
)

var namedColors = map[string]draw.Color{
	"black":  draw.Black,
	"white":  draw.White,
	"red":    draw.Red,
	"green":  draw.Green,
	"blue":   draw.Blue,
	"yellow": draw.Yellow,
	"orange": draw.Orange,
	"purple": draw.Purple,
	"pink":   draw.Pink,
	"cyan":   draw.Cyan,
}

// ParseColor resolves a palette name or #rrggbb value.
func ParseColor(s string) (draw.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return draw.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}, nil
		}
	}
	return draw.Color{}, fmt.Errorf("unknown color %q", s)
}

// DefaultPenColor resolves the configured pen color, falling back to red.
func (c *Config) DefaultPenColor() draw.Color {
	col, err := ParseColor(c.Drawing.DefaultColor)
	if err != nil {
		return draw.Red
	}
	return col
}
