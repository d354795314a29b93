package model

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple. Channels are conventionally in [0,255] but the
// range is not enforced; interpolation may pass through any real value.
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

// NewColor creates a Color from its three channels.
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// FromColorful converts a colorful.Color (channels in [0,1]) to a Color.
func FromColorful(c colorful.Color) Color {
	return Color{R: c.R * 255, G: c.G * 255, B: c.B * 255}
}

// Rounded returns the channels rounded half-up to the nearest integer.
func (c Color) Rounded() (r, g, b int) {
	return roundHalfUp(c.R), roundHalfUp(c.G), roundHalfUp(c.B)
}

// RGBString renders the rounded channels as "(r,g,b)".
func (c Color) RGBString() string {
	r, g, b := c.Rounded()
	return fmt.Sprintf("(%d,%d,%d)", r, g, b)
}

// Colorful returns the unclamped colorful.Color equivalent.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// Hex renders the colour as #rrggbb, clamping out-of-range channels.
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// RGBA returns an opaque image/color value, clamping out-of-range channels.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Colorful().Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
