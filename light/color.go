package light

import "fmt"

// Color is an RGB pixel value.
type Color struct {
	R, G, B uint8
}

// Gray returns the color with all three channels at level.
func Gray(level uint8) Color {
	return Color{level, level, level}
}

// Off is the unlit pixel.
var Off = Color{}

// Scale returns c with every channel multiplied by brightness in [0, 1].
func Scale(c Color, brightness float64) Color {
	if brightness >= 1 {
		return c
	}
	if brightness <= 0 {
		return Off
	}
	return Color{
		R: uint8(float64(c.R) * brightness),
		G: uint8(float64(c.G) * brightness),
		B: uint8(float64(c.B) * brightness),
	}
}

// Level is the largest channel value.
func (c Color) Level() uint8 {
	m := c.R
	if c.G > m {
		m = c.G
	}
	if c.B > m {
		m = c.B
	}
	return m
}

// Hex renders the color as RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}
