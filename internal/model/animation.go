package model

import "fmt"

// AnimationKind identifies which attribute an Animation transitions.
type AnimationKind int

const (
	Move AnimationKind = iota
	Scale
	ColorChange
)

func (k AnimationKind) String() string {
	switch k {
	case Move:
		return "move"
	case Scale:
		return "scale"
	case ColorChange:
		return "color"
	default:
		return fmt.Sprintf("AnimationKind(%d)", int(k))
	}
}

// Animation is a timed transition of one attribute of a named shape.
//
// The transition values never change after construction. The only state an
// Animation gains is being bound, which happens once a scene has attached it
// to its target shape.
type Animation struct {
	kind   AnimationKind
	target string
	start  int
	end    int

	fromPos Position
	toPos   Position

	fromWidth   float64
	fromHeight  float64
	deltaWidth  float64
	deltaHeight float64

	fromColor Color
	toColor   Color

	bound bool
}

func newAnimation(kind AnimationKind, target string, start, end int) (*Animation, error) {
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("%w: %s on %q has negative tick [%d,%d]", ErrInvalidTiming, kind, target, start, end)
	}
	if end < start {
		return nil, fmt.Errorf("%w: %s on %q ends at t=%d before it starts at t=%d", ErrInvalidTiming, kind, target, end, start)
	}
	return &Animation{kind: kind, target: target, start: start, end: end}, nil
}

// NewMove creates a Move of the named shape from one position to another.
func NewMove(target string, start, end int, from, to Position) (*Animation, error) {
	a, err := newAnimation(Move, target, start, end)
	if err != nil {
		return nil, err
	}
	a.fromPos = from
	a.toPos = to
	return a, nil
}

// NewScale creates a Scale of the named shape. The final size is
// (fromWidth+deltaWidth, fromHeight+deltaHeight); both the start and final
// sizes must be strictly positive.
func NewScale(target string, start, end int, fromWidth, fromHeight, deltaWidth, deltaHeight float64) (*Animation, error) {
	a, err := newAnimation(Scale, target, start, end)
	if err != nil {
		return nil, err
	}
	if fromWidth <= 0 || fromHeight <= 0 {
		return nil, fmt.Errorf("%w: scale on %q starts at %vx%v", ErrInvalidSize, target, fromWidth, fromHeight)
	}
	if fromWidth+deltaWidth <= 0 || fromHeight+deltaHeight <= 0 {
		return nil, fmt.Errorf("%w: scale on %q ends at %vx%v", ErrInvalidSize, target, fromWidth+deltaWidth, fromHeight+deltaHeight)
	}
	a.fromWidth = fromWidth
	a.fromHeight = fromHeight
	a.deltaWidth = deltaWidth
	a.deltaHeight = deltaHeight
	return a, nil
}

// NewColorChange creates a ColorChange of the named shape.
func NewColorChange(target string, start, end int, from, to Color) (*Animation, error) {
	a, err := newAnimation(ColorChange, target, start, end)
	if err != nil {
		return nil, err
	}
	a.fromColor = from
	a.toColor = to
	return a, nil
}

func (a *Animation) Kind() AnimationKind { return a.kind }

// Target is the name of the shape the animation applies to.
func (a *Animation) Target() string { return a.target }

func (a *Animation) Start() int { return a.start }
func (a *Animation) End() int   { return a.end }

// Bound reports whether the animation has been attached to its shape.
func (a *Animation) Bound() bool { return a.bound }

func (a *Animation) FromPosition() Position { return a.fromPos }
func (a *Animation) ToPosition() Position   { return a.toPos }

func (a *Animation) FromSize() (width, height float64) { return a.fromWidth, a.fromHeight }
func (a *Animation) Delta() (width, height float64)    { return a.deltaWidth, a.deltaHeight }

// ToSize is the recorded start size plus the delta.
func (a *Animation) ToSize() (width, height float64) {
	return a.fromWidth + a.deltaWidth, a.fromHeight + a.deltaHeight
}

func (a *Animation) FromColor() Color { return a.fromColor }
func (a *Animation) ToColor() Color   { return a.toColor }

// overlaps reports whether both animations are of the same kind and their
// half-open [start,end) windows intersect.
func (a *Animation) overlaps(b *Animation) bool {
	return a.kind == b.kind && a.start < b.end && b.start < a.end
}

// Description renders a one-line human readable summary of the animation.
// The target is resolved by name through the scene. A Move that does not
// change position describes itself as the empty string.
func (a *Animation) Description(scene *Scene) (string, error) {
	if a == nil {
		return "", ErrNullAnimation
	}
	if !a.bound {
		return "", fmt.Errorf("%w: %s on %q", ErrUnbound, a.kind, a.target)
	}
	shape, err := scene.Shape(a.target)
	if err != nil {
		return "", err
	}

	switch a.kind {
	case Move:
		if a.fromPos == a.toPos {
			return "", nil
		}
		return fmt.Sprintf("Shape %s moves from %s to %s from t=%d to t=%d\n",
			shape.Name(), a.fromPos, a.toPos, a.start, a.end), nil
	case Scale:
		toWidth, toHeight := a.ToSize()
		return fmt.Sprintf("Shape %s scales from Width: %s, Height: %s to Width: %s, Height: %s from t=%d to t=%d\n",
			shape.Name(),
			formatFloat(a.fromWidth), formatFloat(a.fromHeight),
			formatFloat(toWidth), formatFloat(toHeight),
			a.start, a.end), nil
	case ColorChange:
		return fmt.Sprintf("Shape %s changes color from %s to %s from t=%d to t=%d\n",
			shape.Name(), a.fromColor.RGBString(), a.toColor.RGBString(), a.start, a.end), nil
	default:
		return "", fmt.Errorf("unknown animation kind %s", a.kind)
	}
}
