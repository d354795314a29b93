package model

import (
	"strconv"
	"strings"
)

// Position is an (x, y) point on the canvas. For rectangles it is the
// minimum corner, for ovals the centre.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// NewPosition creates a Position.
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// String renders the position as "(x,y)".
func (p Position) String() string {
	return "(" + formatFloat(p.X) + "," + formatFloat(p.Y) + ")"
}

// formatFloat prints the shortest decimal that round-trips, always keeping
// a fractional part: 200 -> "200.0", 4.5 -> "4.5".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// formatHundredths prints v with exactly two decimals, rounding half away
// from zero on the shortest decimal form of v: 0.125 -> "0.13",
// 2.675 -> "2.68".
func formatHundredths(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, "NI") {
		return s
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) <= 2 {
		return sign + intPart + "." + frac + strings.Repeat("0", 2-len(frac))
	}

	n, err := strconv.ParseUint(intPart+frac[:2], 10, 64)
	if err != nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	if frac[2] >= '5' {
		n++
	}
	digits := strconv.FormatUint(n, 10)
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	if sign != "" && strings.Trim(digits, "0") == "" {
		sign = ""
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}
