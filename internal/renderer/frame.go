// Package renderer rasterizes scene snapshots into RGBA frames.
package renderer

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/ivlev/shapeanim/internal/model"
	"github.com/ivlev/shapeanim/internal/system"
)

// DefaultCanvas is the viewport used when a scene declares no bounds.
var DefaultCanvas = model.Bounds{Width: 800, Height: 800}

// kappa places cubic Bézier control points for a quarter ellipse.
const kappa = 0.5522847498

// Options controls the raster size. A zero Width or Height takes the size
// of the viewport.
type Options struct {
	Width      int
	Height     int
	Background color.RGBA
}

// DefaultOptions renders at viewport size on white.
func DefaultOptions() Options {
	return Options{Background: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
}

// Viewport is the canvas area of scene that frames show.
func Viewport(scene *model.Scene) model.Bounds {
	b := scene.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return DefaultCanvas
	}
	return b
}

// FrameSize resolves the pixel size of frames rendered from scene.
func FrameSize(scene *model.Scene, opts Options) (int, int) {
	vp := Viewport(scene)
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = vp.Width
	}
	if h <= 0 {
		h = vp.Height
	}
	return w, h
}

// RenderFrame draws scene as it appears at tick. Shapes outside their
// lifespan are skipped; the rest are painted in scene order, so later
// shapes cover earlier ones. The frame comes from the shared pool and may
// be returned with system.PutFrame once the caller is done with it.
func RenderFrame(scene *model.Scene, tick int, opts Options) *image.RGBA {
	w, h := FrameSize(scene, opts)
	vp := Viewport(scene)

	img := system.GetFrame(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	sx := float32(w) / float32(vp.Width)
	sy := float32(h) / float32(vp.Height)
	ox, oy := float32(vp.X), float32(vp.Y)

	z := vector.NewRasterizer(w, h)
	for _, shape := range scene.Snapshot(tick) {
		if !shape.Visible(tick) {
			continue
		}

		z.Reset(w, h)
		z.DrawOp = draw.Over

		p := shape.Position()
		x, y := (float32(p.X)-ox)*sx, (float32(p.Y)-oy)*sy
		a, b := float32(shape.Size1())*sx, float32(shape.Size2())*sy

		switch shape.Kind() {
		case model.Oval:
			ellipse(z, x, y, a, b)
		default:
			rect(z, x, y, a, b)
		}

		z.Draw(img, img.Bounds(), image.NewUniform(shape.Color().RGBA()), image.Point{})
	}

	return img
}

func rect(z *vector.Rasterizer, x, y, w, h float32) {
	z.MoveTo(x, y)
	z.LineTo(x+w, y)
	z.LineTo(x+w, y+h)
	z.LineTo(x, y+h)
	z.ClosePath()
}

// ellipse traces four cubic arcs around the centre (cx, cy).
func ellipse(z *vector.Rasterizer, cx, cy, rx, ry float32) {
	kx, ky := rx*kappa, ry*kappa

	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.ClosePath()
}
