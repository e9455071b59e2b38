package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastColor(t *testing.T) {
	tests := []struct {
		name string
		bg   Color
		want Color
	}{
		{"white background gets black pen", White, Black},
		{"black background gets white pen", Black, White},
		{"yellow background gets black pen", Yellow, Black},
		{"dark blue background gets white pen", Color{R: 0, G: 0, B: 0.3, A: 1}, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bg.ContrastColor())
		})
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.5)
	assert.InDelta(t, 0.5, c.A, 1e-9)
	assert.InDelta(t, Red.R, c.R, 1e-9)
}

func TestNRGBAClampsChannels(t *testing.T) {
	c := Color{R: 1.5, G: -0.2, B: 0.5, A: 1}
	n := c.NRGBA()
	assert.Equal(t, uint8(255), n.R)
	assert.Equal(t, uint8(0), n.G)
	assert.Equal(t, uint8(255), n.A)
}
