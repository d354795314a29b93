package renderer

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/shapeanim/internal/model"
	"github.com/ivlev/shapeanim/internal/system"
)

// FrameFunc receives rendered frames in tick order. The frame is recycled
// after the call returns, so it must not be retained.
type FrameFunc func(tick int, img *image.RGBA) error

// RenderRange renders every tick in [from, to] and hands the frames to fn in
// order. Up to workers frames are rasterized concurrently per batch.
func RenderRange(ctx context.Context, scene *model.Scene, from, to int, opts Options, workers int, fn FrameFunc) error {
	if to < from {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	frames := make([]*image.RGBA, workers)
	for batch := from; batch <= to; batch += workers {
		n := workers
		if batch+n-1 > to {
			n = to - batch + 1
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				frames[i] = RenderFrame(scene, batch+i, opts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			release(frames[:n])
			return err
		}

		for i := 0; i < n; i++ {
			if err := fn(batch+i, frames[i]); err != nil {
				release(frames[:n])
				return fmt.Errorf("frame %d: %w", batch+i, err)
			}
		}
		release(frames[:n])
	}

	return ctx.Err()
}

func release(frames []*image.RGBA) {
	for i, f := range frames {
		if f != nil {
			system.PutFrame(f)
			frames[i] = nil
		}
	}
}

// FrameName is the file name of the PNG written for tick.
func FrameName(tick int) string {
	return fmt.Sprintf("frame_%05d.png", tick)
}

// WritePNGs renders ticks [from, to] into dir, one PNG per tick, and returns
// the number of files written.
func WritePNGs(ctx context.Context, scene *model.Scene, from, to int, dir string, opts Options, workers int) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	written := 0
	err := RenderRange(ctx, scene, from, to, opts, workers, func(tick int, img *image.RGBA) error {
		f, err := os.Create(filepath.Join(dir, FrameName(tick)))
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, err
}
