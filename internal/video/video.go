package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// Params describes the raw frames fed to the encoder and the output stream.
type Params struct {
	Width, Height int
	FPS           int
	Encoder       string
	Quality       int
}

// VideoEncoder opens an encoding session that accepts frames one at a time.
type VideoEncoder interface {
	Open(ctx context.Context, videoPath string, params Params) (FrameWriter, error)
}

// FrameWriter receives frames in presentation order. Close finishes the
// file and reports any encoder failure.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

type FFmpegEncoder struct{}

// Open starts ffmpeg reading raw RGBA frames from a pipe.
func (e *FFmpegEncoder) Open(ctx context.Context, videoPath string, params Params) (FrameWriter, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", params.Width, params.Height)
	}
	if params.FPS < 1 {
		return nil, fmt.Errorf("invalid frame rate %d", params.FPS)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(videoPath, params)...)
	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return &ffmpegSession{cmd: cmd, stdin: stdin, out: out, params: params}, nil
}

type ffmpegSession struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bytes.Buffer
	params Params
}

func (s *ffmpegSession) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != s.params.Width || b.Dy() != s.params.Height {
		return fmt.Errorf("frame is %dx%d, encoder expects %dx%d", b.Dx(), b.Dy(), s.params.Width, s.params.Height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegSession) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, s.out.String())
	}
	return nil
}

func buildFFmpegArgs(videoPath string, params Params) []string {
	encoderName := params.Encoder
	if encoderName == "" {
		encoderName = "libx264"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		// yuv420p needs even dimensions.
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	switch encoderName {
	case "h264_videotoolbox":
		bitrate := params.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
