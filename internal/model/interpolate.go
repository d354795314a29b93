package model

// Interpolate evaluates a linear transition from before (at tick start) to
// after (at tick end) at the given tick.
//
// Before start the transition does not apply and ok is false. From end
// onwards the value holds at after. A zero-length transition (start == end)
// jumps straight to after at its end tick.
func Interpolate(before, after float64, start, end, tick int) (value float64, ok bool) {
	if tick < start {
		return before, false
	}
	if tick >= end {
		return after, true
	}

	w := float64(tick-start) / float64(end-start)
	return before*(1-w) + after*w, true
}

func interpolatePosition(from, to Position, start, end, tick int) (Position, bool) {
	x, ok := Interpolate(from.X, to.X, start, end, tick)
	if !ok {
		return from, false
	}
	y, _ := Interpolate(from.Y, to.Y, start, end, tick)
	return Position{X: x, Y: y}, true
}

func interpolateColor(from, to Color, start, end, tick int) (Color, bool) {
	r, ok := Interpolate(from.R, to.R, start, end, tick)
	if !ok {
		return from, false
	}
	g, _ := Interpolate(from.G, to.G, start, end, tick)
	b, _ := Interpolate(from.B, to.B, start, end, tick)
	return Color{R: r, G: g, B: b}, true
}
