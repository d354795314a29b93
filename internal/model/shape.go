package model

import "fmt"

// ShapeKind is the geometry of a Shape.
type ShapeKind int

const (
	Rectangle ShapeKind = iota
	Oval
)

func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Oval:
		return "oval"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a named rectangle or oval with a lifespan and the animations
// attached to it.
//
// Size1 and Size2 are width and height for a rectangle and the x and y
// radius for an oval. Position is the minimum corner of a rectangle and the
// centre of an oval.
type Shape struct {
	name     string
	kind     ShapeKind
	position Position
	color    Color
	size1    float64
	size2    float64
	start    int
	end      int

	animations []*Animation
}

// NewShape creates a shape of the given kind with its baseline attributes.
func NewShape(kind ShapeKind, name string, position Position, color Color, start, end int, size1, size2 float64) (*Shape, error) {
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("%w: shape %q has negative tick [%d,%d]", ErrInvalidTiming, name, start, end)
	}
	if end < start {
		return nil, fmt.Errorf("%w: shape %q ends at t=%d before it starts at t=%d", ErrInvalidTiming, name, end, start)
	}
	if size1 <= 0 || size2 <= 0 {
		return nil, fmt.Errorf("%w: shape %q has size %vx%v", ErrInvalidSize, name, size1, size2)
	}

	return &Shape{
		name:     name,
		kind:     kind,
		position: position,
		color:    color,
		size1:    size1,
		size2:    size2,
		start:    start,
		end:      end,
	}, nil
}

// NewRectangle creates a rectangle whose minimum corner is at position.
func NewRectangle(name string, position Position, color Color, start, end int, width, height float64) (*Shape, error) {
	return NewShape(Rectangle, name, position, color, start, end, width, height)
}

// NewOval creates an oval centred on center.
func NewOval(name string, center Position, color Color, start, end int, radiusX, radiusY float64) (*Shape, error) {
	return NewShape(Oval, name, center, color, start, end, radiusX, radiusY)
}

func (s *Shape) Name() string       { return s.name }
func (s *Shape) Kind() ShapeKind    { return s.kind }
func (s *Shape) Position() Position { return s.position }
func (s *Shape) Color() Color       { return s.color }
func (s *Shape) Size1() float64     { return s.size1 }
func (s *Shape) Size2() float64     { return s.size2 }
func (s *Shape) Start() int         { return s.start }
func (s *Shape) End() int           { return s.end }

// Animations returns the attached animations in attachment order. The slice
// is a copy; attaching goes through Scene.AddAnimation.
func (s *Shape) Animations() []*Animation {
	out := make([]*Animation, len(s.animations))
	copy(out, s.animations)
	return out
}

// Visible reports whether tick falls inside the shape's lifespan.
func (s *Shape) Visible(tick int) bool {
	return s.start <= tick && tick <= s.end
}

// MoveTo replaces the baseline position.
func (s *Shape) MoveTo(p Position) {
	s.position = p
}

// SetColor replaces the baseline colour.
func (s *Shape) SetColor(c Color) {
	s.color = c
}

// Resize replaces the baseline size. It fails with ErrInvalidSize if either
// parameter, or any size reached through the attached scale animations,
// would not be strictly positive.
func (s *Shape) Resize(size1, size2 float64) error {
	if size1 <= 0 || size2 <= 0 {
		return fmt.Errorf("%w: shape %q resized to %vx%v", ErrInvalidSize, s.name, size1, size2)
	}
	if err := s.checkScales(size1, size2, nil); err != nil {
		return err
	}
	s.size1 = size1
	s.size2 = size2
	return nil
}

// Description summarises the baseline geometry and colour.
func (s *Shape) Description() string {
	r, g, b := s.color.Rounded()
	switch s.kind {
	case Oval:
		return fmt.Sprintf("Center: %s, X radius: %s, Y radius: %s, Color: (%d, %d, %d)\n",
			s.position, formatHundredths(s.size1), formatHundredths(s.size2), r, g, b)
	default:
		return fmt.Sprintf("Min corner: %s, Width: %s, Height: %s, Color: (%d, %d, %d)\n",
			s.position, formatFloat(s.size1), formatFloat(s.size2), r, g, b)
	}
}

// attach validates a against the shape and appends it. Nothing changes when
// validation fails.
func (s *Shape) attach(a *Animation) error {
	if a.bound {
		return fmt.Errorf("%w: %s on %q at [%d,%d]", ErrAlreadyBound, a.kind, a.target, a.start, a.end)
	}

	for _, existing := range s.animations {
		if existing.overlaps(a) {
			return fmt.Errorf("%w: %s on %q at [%d,%d] collides with [%d,%d]",
				ErrOverlappingAnimation, a.kind, s.name, a.start, a.end, existing.start, existing.end)
		}
	}

	if a.end < s.start || a.start > s.end {
		return fmt.Errorf("%w: %s on %q at [%d,%d] is outside the shape lifespan [%d,%d]",
			ErrInvalidTiming, a.kind, s.name, a.start, a.end, s.start, s.end)
	}

	if a.kind == Scale {
		if err := s.checkScales(s.size1, s.size2, a); err != nil {
			return err
		}
	}

	a.bound = true
	s.animations = append(s.animations, a)
	return nil
}

// detach removes a from the shape and unbinds it.
func (s *Shape) detach(a *Animation) {
	for i, existing := range s.animations {
		if existing == a {
			s.animations = append(s.animations[:i], s.animations[i+1:]...)
			a.bound = false
			return
		}
	}
}

// checkScales replays every scale delta, plus next if given, on top of the
// baseline (size1, size2) and fails if a running size drops to zero or below.
func (s *Shape) checkScales(size1, size2 float64, next *Animation) error {
	scales := s.animations
	if next != nil {
		scales = append(scales[:len(scales):len(scales)], next)
	}
	for _, a := range scales {
		if a.kind != Scale {
			continue
		}
		size1 += a.deltaWidth
		size2 += a.deltaHeight
		if size1 <= 0 || size2 <= 0 {
			return fmt.Errorf("%w: scale on %q at [%d,%d] shrinks it to %vx%v",
				ErrInvalidSize, s.name, a.start, a.end, size1, size2)
		}
	}
	return nil
}

// GenerateAnimatedShape returns a detached copy of the shape as it appears
// at tick. Animations are applied in attachment order onto a working copy,
// so a scale builds on whatever size earlier scales produced. The receiver
// is not modified and the copy carries no animations.
func (s *Shape) GenerateAnimatedShape(tick int) *Shape {
	out := &Shape{
		name:     s.name,
		kind:     s.kind,
		position: s.position,
		color:    s.color,
		size1:    s.size1,
		size2:    s.size2,
		start:    s.start,
		end:      s.end,
	}

	for _, a := range s.animations {
		switch a.kind {
		case Move:
			if p, ok := interpolatePosition(a.fromPos, a.toPos, a.start, a.end, tick); ok {
				out.position = p
			}
		case Scale:
			if w, ok := Interpolate(out.size1, out.size1+a.deltaWidth, a.start, a.end, tick); ok {
				h, _ := Interpolate(out.size2, out.size2+a.deltaHeight, a.start, a.end, tick)
				out.size1, out.size2 = w, h
			}
		case ColorChange:
			if c, ok := interpolateColor(a.fromColor, a.toColor, a.start, a.end, tick); ok {
				out.color = c
			}
		}
	}

	return out
}
