// Package view renders a scene as a plain-text description.
package view

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ivlev/shapeanim/internal/model"
)

const emptyScene = "\nThere are no more 2D shape objects in this model."

// Text builds the textual description of a scene: every shape ordered by
// the tick it appears at, followed by every animation ordered by start tick.
func Text(scene *model.Scene) (string, error) {
	shapes := scene.Shapes()
	if len(shapes) == 0 {
		return emptyScene, nil
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].Start() < shapes[j].Start()
	})

	var sb strings.Builder
	var animations []*model.Animation

	sb.WriteString("Shapes:\n")
	for _, shape := range shapes {
		fmt.Fprintf(&sb, "Name: %s\nType: %s\n", shape.Name(), shape.Kind())
		sb.WriteString(shape.Description())
		fmt.Fprintf(&sb, "Appears at t=%d\nDisappears at t=%d\n\n", shape.Start(), disappearsAt(shape))
		animations = append(animations, shape.Animations()...)
	}

	sort.SliceStable(animations, func(i, j int) bool {
		return animations[i].Start() < animations[j].Start()
	})
	for _, a := range animations {
		desc, err := a.Description(scene)
		if err != nil {
			return "", err
		}
		sb.WriteString(desc)
	}

	return sb.String(), nil
}

// WriteText writes the textual description of scene to w.
func WriteText(w io.Writer, scene *model.Scene) error {
	text, err := Text(scene)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

func disappearsAt(shape *model.Shape) int {
	animations := shape.Animations()
	if len(animations) == 0 {
		return shape.End()
	}
	return animations[len(animations)-1].End()
}
