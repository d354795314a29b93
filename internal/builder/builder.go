package builder

import (
	"fmt"
	"math"

	"github.com/ivlev/shapeanim/internal/model"
)

// openEnd is the lifespan end given to a shape on first sight; Build
// tightens it to the last keyframe seen for that shape.
const openEnd = math.MaxInt32

// Keyframe is a full snapshot of a shape's attributes at one tick.
type Keyframe struct {
	T int `yaml:"t"`
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

func (k Keyframe) position() model.Position {
	return model.NewPosition(float64(k.X), float64(k.Y))
}

func (k Keyframe) color() model.Color {
	return model.NewColor(float64(k.R), float64(k.G), float64(k.B))
}

// Builder compiles declared shapes and before/after keyframe pairs into a
// Scene. The first pair seen for a shape creates it; every later pair turns
// into typed animations attached in input order.
type Builder struct {
	scene *model.Scene

	declared     map[string]model.ShapeKind
	ignored      map[string]bool
	instantiated map[string]bool
	lastTick     map[string]int
	order        []string
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{
		scene:        model.NewScene(),
		declared:     make(map[string]model.ShapeKind),
		ignored:      make(map[string]bool),
		instantiated: make(map[string]bool),
		lastTick:     make(map[string]int),
	}
}

// ParseKind maps a declared shape type to a ShapeKind. Only "rectangle" and
// "ellipse" are recognised.
func ParseKind(kind string) (model.ShapeKind, bool) {
	switch kind {
	case "rectangle":
		return model.Rectangle, true
	case "ellipse":
		return model.Oval, true
	default:
		return 0, false
	}
}

// SetBounds records the canvas rectangle on the scene being built.
func (b *Builder) SetBounds(x, y, width, height int) *Builder {
	b.scene.SetBounds(model.Bounds{X: x, Y: y, Width: width, Height: height})
	return b
}

// DeclareShape registers name with a shape type. Unrecognised types are
// dropped without error, and so are any motions later given for that name.
func (b *Builder) DeclareShape(name, kind string) *Builder {
	k, ok := ParseKind(kind)
	if !ok {
		b.ignored[name] = true
		return b
	}
	delete(b.ignored, name)
	b.declared[name] = k
	return b
}

// AddMotion adds one before/after keyframe pair for a declared shape.
func (b *Builder) AddMotion(name string,
	t1, x1, y1, w1, h1, r1, g1, b1 int,
	t2, x2, y2, w2, h2, r2, g2, b2 int) error {
	return b.AddKeyframes(name,
		Keyframe{T: t1, X: x1, Y: y1, W: w1, H: h1, R: r1, G: g1, B: b1},
		Keyframe{T: t2, X: x2, Y: y2, W: w2, H: h2, R: r2, G: g2, B: b2})
}

// AddKeyframes is AddMotion taking the two keyframes as values.
//
// The first pair for a name creates the shape from the first keyframe.
// Later pairs become a ColorChange when any channel differs, a Scale when
// either size differs, and always a Move, in that order, all over [t1,t2].
func (b *Builder) AddKeyframes(name string, from, to Keyframe) error {
	if b.ignored[name] {
		return nil
	}
	kind, ok := b.declared[name]
	if !ok {
		return fmt.Errorf("%w: motion for undeclared shape %q", model.ErrNotFound, name)
	}

	if !b.instantiated[name] {
		shape, err := model.NewShape(kind, name, from.position(), from.color(), from.T, openEnd,
			float64(from.W), float64(from.H))
		if err != nil {
			return err
		}
		b.scene.AddShape(shape)
		b.instantiated[name] = true
		b.order = append(b.order, name)
		b.noteTick(name, from.T, to.T)
		return nil
	}

	var animations []*model.Animation
	if from.R != to.R || from.G != to.G || from.B != to.B {
		a, err := model.NewColorChange(name, from.T, to.T, from.color(), to.color())
		if err != nil {
			return err
		}
		animations = append(animations, a)
	}
	if from.W != to.W || from.H != to.H {
		a, err := model.NewScale(name, from.T, to.T, float64(from.W), float64(from.H),
			float64(to.W-from.W), float64(to.H-from.H))
		if err != nil {
			return err
		}
		animations = append(animations, a)
	}
	move, err := model.NewMove(name, from.T, to.T, from.position(), to.position())
	if err != nil {
		return err
	}
	animations = append(animations, move)

	if err := b.scene.AddAnimations(animations...); err != nil {
		return err
	}
	b.noteTick(name, from.T, to.T)
	return nil
}

func (b *Builder) noteTick(name string, ticks ...int) {
	for _, t := range ticks {
		if last, ok := b.lastTick[name]; !ok || t > last {
			b.lastTick[name] = t
		}
	}
}

// Build tightens every shape's open lifespan to its last keyframe and
// returns the scene.
func (b *Builder) Build() (*model.Scene, error) {
	for _, name := range b.order {
		shape, err := b.scene.Shape(name)
		if err != nil {
			return nil, err
		}
		if shape.End() != openEnd {
			continue
		}
		end := b.lastTick[name]
		if end < shape.Start() {
			end = shape.Start()
		}
		if err := b.scene.SetShapeEnd(name, end); err != nil {
			return nil, err
		}
	}
	return b.scene, nil
}
