package renderer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/shapeanim/internal/model"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func testScene(t *testing.T, bounds model.Bounds) *model.Scene {
	t.Helper()
	scene := model.NewScene()
	scene.SetBounds(bounds)

	r, err := model.NewRectangle("R", model.NewPosition(10, 10), model.NewColor(255, 0, 0), 0, 20, 20, 20)
	require.NoError(t, err)
	c, err := model.NewOval("C", model.NewPosition(70, 70), model.NewColor(0, 0, 255), 5, 20, 10, 10)
	require.NoError(t, err)
	scene.AddShape(r)
	scene.AddShape(c)

	move, err := model.NewMove("R", 10, 20, model.NewPosition(10, 10), model.NewPosition(60, 10))
	require.NoError(t, err)
	require.NoError(t, scene.AddAnimation(move))
	return scene
}

func TestRenderFrame(t *testing.T) {
	scene := testScene(t, model.Bounds{Width: 100, Height: 100})

	tests := []struct {
		name  string
		tick  int
		x, y  int
		color color.RGBA
	}{
		{"rectangle body", 0, 20, 20, red},
		{"background", 0, 5, 5, white},
		{"oval hidden before start", 0, 70, 70, white},
		{"oval centre", 5, 70, 70, blue},
		{"oval edge", 5, 78, 70, blue},
		{"outside oval bounding circle", 5, 78, 78, white},
		{"rectangle moved", 20, 65, 20, red},
		{"rectangle left behind", 20, 20, 20, white},
		{"everything gone", 21, 65, 20, white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := RenderFrame(scene, tt.tick, DefaultOptions())
			assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
			assert.Equal(t, tt.color, img.RGBAAt(tt.x, tt.y))
		})
	}
}

func TestRenderFrameViewport(t *testing.T) {
	scene := testScene(t, model.Bounds{X: 10, Y: 10, Width: 100, Height: 100})
	opts := DefaultOptions()
	opts.Width, opts.Height = 200, 200

	img := RenderFrame(scene, 0, opts)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(1, 1))
	assert.Equal(t, red, img.RGBAAt(38, 38))
	assert.Equal(t, white, img.RGBAAt(42, 42))
}

func TestFrameSizeDefaults(t *testing.T) {
	w, h := FrameSize(model.NewScene(), Options{})
	assert.Equal(t, DefaultCanvas.Width, w)
	assert.Equal(t, DefaultCanvas.Height, h)

	w, h = FrameSize(model.NewScene(), Options{Width: 320})
	assert.Equal(t, 320, w)
	assert.Equal(t, DefaultCanvas.Height, h)
}

func TestRenderRangeOrder(t *testing.T) {
	scene := testScene(t, model.Bounds{Width: 100, Height: 100})

	var ticks []int
	err := RenderRange(context.Background(), scene, 0, 7, DefaultOptions(), 3, func(tick int, img *image.RGBA) error {
		ticks = append(ticks, tick)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, ticks)

	calls := 0
	err = RenderRange(context.Background(), scene, 3, 2, DefaultOptions(), 3, func(int, *image.RGBA) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Zero(t, calls)
}

func TestRenderRangeErrors(t *testing.T) {
	scene := testScene(t, model.Bounds{Width: 100, Height: 100})

	errStop := errors.New("stop")
	err := RenderRange(context.Background(), scene, 0, 10, DefaultOptions(), 2, func(tick int, img *image.RGBA) error {
		if tick == 3 {
			return errStop
		}
		return nil
	})
	assert.ErrorIs(t, err, errStop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RenderRange(ctx, scene, 0, 10, DefaultOptions(), 2, func(int, *image.RGBA) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWritePNGs(t *testing.T) {
	scene := testScene(t, model.Bounds{Width: 100, Height: 100})
	dir := filepath.Join(t.TempDir(), "frames")

	n, err := WritePNGs(context.Background(), scene, 0, 5, dir, DefaultOptions(), 4)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)

	f, err := os.Open(filepath.Join(dir, FrameName(5)))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := img.At(70, 70).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
}
