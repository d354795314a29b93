package model

import (
	"fmt"
	"math"
)

// Bounds is the canvas rectangle declared for a scene. Renderers use it as a
// viewport; interpolation ignores it.
type Bounds struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Scene owns a set of shapes and, through them, every attached animation.
//
// A Scene has a single writer. Snapshot and GenerateAnimatedShape are read
// only and may run concurrently once the scene stops changing.
type Scene struct {
	shapes []*Shape
	bounds Bounds
	tick   int
}

// NewScene creates an empty scene playing at one tick per second.
func NewScene() *Scene {
	return &Scene{tick: 1}
}

// AddShape appends a shape. Name uniqueness is the caller's concern.
func (s *Scene) AddShape(shape *Shape) {
	if shape == nil {
		return
	}
	s.shapes = append(s.shapes, shape)
}

// RemoveShape removes the given shape instance from the scene.
func (s *Scene) RemoveShape(shape *Shape) error {
	for i, existing := range s.shapes {
		if existing == shape {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return nil
		}
	}
	name := "<nil>"
	if shape != nil {
		name = shape.name
	}
	return fmt.Errorf("%w: shape %q is not in the scene", ErrNotFound, name)
}

// AddAnimation attaches an animation to the shape named by its target.
func (s *Scene) AddAnimation(a *Animation) error {
	if a == nil {
		return ErrNullAnimation
	}
	shape, err := s.Shape(a.target)
	if err != nil {
		return fmt.Errorf("attach %s: %w", a.kind, err)
	}
	return shape.attach(a)
}

// AddAnimations attaches every animation or none of them. When one fails,
// the ones already attached by this call are detached again.
func (s *Scene) AddAnimations(animations ...*Animation) error {
	attached := make([]*Animation, 0, len(animations))
	for _, a := range animations {
		if err := s.AddAnimation(a); err != nil {
			for i := len(attached) - 1; i >= 0; i-- {
				if shape, lookupErr := s.Shape(attached[i].target); lookupErr == nil {
					shape.detach(attached[i])
				}
			}
			return err
		}
		attached = append(attached, a)
	}
	return nil
}

// Shape looks a shape up by name.
func (s *Scene) Shape(name string) (*Shape, error) {
	for _, shape := range s.shapes {
		if shape.name == name {
			return shape, nil
		}
	}
	return nil, fmt.Errorf("%w: shape %q", ErrNotFound, name)
}

// Shapes returns the shapes in insertion order. The slice is a copy.
func (s *Scene) Shapes() []*Shape {
	out := make([]*Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Animations returns every attached animation, shape by shape, in
// attachment order.
func (s *Scene) Animations() []*Animation {
	var out []*Animation
	for _, shape := range s.shapes {
		out = append(out, shape.animations...)
	}
	return out
}

// EndTime is the latest tick at which any shape or attached animation ends.
func (s *Scene) EndTime() (int, error) {
	if len(s.shapes) == 0 {
		return 0, ErrEmptyScene
	}
	end := math.MinInt
	for _, shape := range s.shapes {
		if shape.end > end {
			end = shape.end
		}
		for _, a := range shape.animations {
			if a.end > end {
				end = a.end
			}
		}
	}
	return end, nil
}

// SetShapeEnd changes when the named shape disappears. The new end may not
// precede the shape's start or the end of any animation attached to it.
func (s *Scene) SetShapeEnd(name string, end int) error {
	shape, err := s.Shape(name)
	if err != nil {
		return err
	}
	if end < shape.start {
		return fmt.Errorf("%w: shape %q cannot end at t=%d before it starts at t=%d", ErrInvalidTiming, name, end, shape.start)
	}
	for _, a := range shape.animations {
		if a.end > end {
			return fmt.Errorf("%w: shape %q cannot end at t=%d while a %s runs until t=%d", ErrInvalidTiming, name, end, a.kind, a.end)
		}
	}
	shape.end = end
	return nil
}

// Snapshot returns every shape as it appears at tick, in scene order.
func (s *Scene) Snapshot(tick int) []*Shape {
	out := make([]*Shape, len(s.shapes))
	for i, shape := range s.shapes {
		out[i] = shape.GenerateAnimatedShape(tick)
	}
	return out
}

// Tick is the playback speed hint in ticks per second.
func (s *Scene) Tick() int { return s.tick }

// SetTick sets the playback speed hint. It must be at least one.
func (s *Scene) SetTick(tick int) error {
	if tick < 1 {
		return fmt.Errorf("%w: tick rate %d must be positive", ErrInvalidTiming, tick)
	}
	s.tick = tick
	return nil
}

func (s *Scene) Bounds() Bounds { return s.bounds }

func (s *Scene) SetBounds(b Bounds) { s.bounds = b }
