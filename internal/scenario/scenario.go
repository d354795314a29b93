package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/shapeanim/internal/builder"
	"github.com/ivlev/shapeanim/internal/model"
)

// Version is written into every exported scenario.
const Version = "1.0"

// Scenario is the YAML form of a keyframed scene
type Scenario struct {
	Version string       `yaml:"version"`
	Canvas  model.Bounds `yaml:"canvas"`
	Speed   int          `yaml:"speed,omitempty"` // Ticks per second
	Shapes  []Shape      `yaml:"shapes"`
}

// Shape lists the keyframes of one shape in time order
type Shape struct {
	Name      string             `yaml:"name"`
	Type      string             `yaml:"type"` // rectangle or ellipse
	Keyframes []builder.Keyframe `yaml:"keyframes"`
}

// Compile builds a scene from the scenario. Each shape starts at its first
// keyframe and every consecutive pair of keyframes becomes one motion.
func Compile(s *Scenario) (*model.Scene, error) {
	b := builder.New().SetBounds(s.Canvas.X, s.Canvas.Y, s.Canvas.Width, s.Canvas.Height)

	for _, shape := range s.Shapes {
		b.DeclareShape(shape.Name, shape.Type)
		kfs := shape.Keyframes
		if len(kfs) == 0 {
			continue
		}
		// The builder creates a shape from its first pair without animating
		// it, so open with a still pair to keep the first segment.
		if err := b.AddKeyframes(shape.Name, kfs[0], kfs[0]); err != nil {
			return nil, fmt.Errorf("shape %s keyframe 1: %w", shape.Name, err)
		}
		for i := 0; i+1 < len(kfs); i++ {
			if err := b.AddKeyframes(shape.Name, kfs[i], kfs[i+1]); err != nil {
				return nil, fmt.Errorf("shape %s keyframes %d-%d: %w", shape.Name, i+1, i+2, err)
			}
		}
	}

	scene, err := b.Build()
	if err != nil {
		return nil, err
	}
	if s.Speed > 0 {
		if err := scene.SetTick(s.Speed); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

// Export samples a scene back into keyframes. Each shape gets a keyframe at
// its start, at every animation boundary inside its lifespan and at its end.
// Attribute values are rounded to whole numbers.
func Export(scene *model.Scene) *Scenario {
	s := &Scenario{
		Version: Version,
		Canvas:  scene.Bounds(),
		Speed:   scene.Tick(),
	}

	for _, shape := range scene.Shapes() {
		out := Shape{Name: shape.Name(), Type: typeName(shape.Kind())}
		for _, tick := range boundaries(shape) {
			out.Keyframes = append(out.Keyframes, keyframeAt(shape, tick))
		}
		s.Shapes = append(s.Shapes, out)
	}

	return s
}

func boundaries(shape *model.Shape) []int {
	seen := map[int]bool{shape.Start(): true, shape.End(): true}
	for _, a := range shape.Animations() {
		seen[a.Start()] = true
		seen[a.End()] = true
	}

	ticks := make([]int, 0, len(seen))
	for t := range seen {
		if shape.Visible(t) {
			ticks = append(ticks, t)
		}
	}
	sort.Ints(ticks)
	return ticks
}

func keyframeAt(shape *model.Shape, tick int) builder.Keyframe {
	at := shape.GenerateAnimatedShape(tick)
	r, g, b := at.Color().Rounded()
	return builder.Keyframe{
		T: tick,
		X: round(at.Position().X),
		Y: round(at.Position().Y),
		W: round(at.Size1()),
		H: round(at.Size2()),
		R: r,
		G: g,
		B: b,
	}
}

func typeName(kind model.ShapeKind) string {
	if kind == model.Oval {
		return "ellipse"
	}
	return "rectangle"
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
