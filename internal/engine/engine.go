package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/shapeanim/internal/config"
	"github.com/ivlev/shapeanim/internal/model"
	"github.com/ivlev/shapeanim/internal/reader"
	"github.com/ivlev/shapeanim/internal/renderer"
	"github.com/ivlev/shapeanim/internal/scenario"
	"github.com/ivlev/shapeanim/internal/stream"
	"github.com/ivlev/shapeanim/internal/system"
	"github.com/ivlev/shapeanim/internal/video"
	"github.com/ivlev/shapeanim/internal/view"
)

// AnimationProject is one run: load the input, build the scene, and hand it
// to the configured view.
type AnimationProject struct {
	Config  *config.Config
	Encoder video.VideoEncoder
	// Publisher overrides the MQTT connection built from Config.Mqtt.
	Publisher stream.Publisher
	Stdout    io.Writer

	scene *model.Scene
	stats runStats
}

type runStats struct {
	load   time.Duration
	output time.Duration
	frames int
}

func NewAnimationProject(cfg *config.Config, ve video.VideoEncoder) *AnimationProject {
	return &AnimationProject{
		Config:  cfg,
		Encoder: ve,
		Stdout:  os.Stdout,
	}
}

// LoadScene reads a scene from path. YAML files are scenarios, anything
// else is the keyframe text format.
func LoadScene(path string) (*model.Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return scenario.LoadFile(path)
	default:
		return reader.ParseFile(path)
	}
}

// Scene is the scene built by the last Run.
func (p *AnimationProject) Scene() *model.Scene { return p.scene }

func (p *AnimationProject) Run(ctx context.Context) error {
	if err := p.Config.Validate(); err != nil {
		return err
	}

	startTime := time.Now()
	scene, err := LoadScene(p.Config.InputPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", p.Config.InputPath, err)
	}
	if p.Config.Speed > 0 {
		if err := scene.SetTick(p.Config.Speed); err != nil {
			return err
		}
	}
	p.scene = scene
	p.stats.load = time.Since(startTime)

	outputStart := time.Now()
	switch p.Config.View {
	case config.ViewText:
		err = p.writeText()
	case config.ViewScenario:
		err = p.writeScenario()
	case config.ViewFrames:
		err = p.writeFrames(ctx)
	case config.ViewVideo:
		err = p.writeVideo(ctx)
	case config.ViewStream:
		err = p.runStream(ctx)
	default:
		err = fmt.Errorf("unknown view %q", p.Config.View)
	}
	if err != nil {
		return err
	}
	p.stats.output = time.Since(outputStart)

	if p.Config.ShowStats {
		p.report(time.Since(startTime))
	}
	return nil
}

// output opens the textual destination. The returned closer is a no-op for
// stdout.
func (p *AnimationProject) output() (io.Writer, func() error, error) {
	if p.Config.ToStdout() {
		return p.Stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(p.Config.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(p.Config.OutputPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (p *AnimationProject) writeText() error {
	w, closeFn, err := p.output()
	if err != nil {
		return err
	}
	if err := view.WriteText(w, p.scene); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func (p *AnimationProject) writeScenario() error {
	w, closeFn, err := p.output()
	if err != nil {
		return err
	}
	if err := scenario.Encode(w, scenario.Export(p.scene)); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func (p *AnimationProject) renderOptions() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Width = p.Config.Width
	opts.Height = p.Config.Height
	return opts
}

func (p *AnimationProject) workers() int {
	if p.Config.Workers > 0 {
		return p.Config.Workers
	}
	return system.RecommendedWorkers()
}

func (p *AnimationProject) writeFrames(ctx context.Context) error {
	end, err := p.scene.EndTime()
	if err != nil {
		return err
	}

	fmt.Printf("[*] Rendering ticks 0-%d into %s\n", end, p.Config.OutputPath)
	n, err := renderer.WritePNGs(ctx, p.scene, 0, end, p.Config.OutputPath, p.renderOptions(), p.workers())
	p.stats.frames = n
	if err != nil {
		return fmt.Errorf("frames: %w", err)
	}
	return nil
}

func (p *AnimationProject) writeVideo(ctx context.Context) error {
	end, err := p.scene.EndTime()
	if err != nil {
		return err
	}

	opts := p.renderOptions()
	w, h := renderer.FrameSize(p.scene, opts)
	encoderName := p.Config.VideoEncoder
	if encoderName == "" {
		encoderName = "libx264"
	}
	quality := p.Config.Quality
	if quality == 0 {
		quality = system.DefaultQuality(encoderName)
	}

	params := video.Params{
		Width:   w,
		Height:  h,
		FPS:     p.scene.Tick(),
		Encoder: encoderName,
		Quality: quality,
	}

	if dir := filepath.Dir(p.Config.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	fmt.Println("--- [PROJECT: SHAPE ANIMATION] ---")
	fmt.Printf("[*] Ticks: 0-%d | Resolution: %dx%d @ %d FPS | Encoder: %s\n", end, w, h, params.FPS, encoderName)
	fmt.Println("-----------------------------")

	fw, err := p.Encoder.Open(ctx, p.Config.OutputPath, params)
	if err != nil {
		return err
	}

	step := (end + 1) / 10
	if step < 1 {
		step = 1
	}
	err = renderer.RenderRange(ctx, p.scene, 0, end, opts, p.workers(), func(tick int, img *image.RGBA) error {
		if err := fw.WriteFrame(img); err != nil {
			return err
		}
		p.stats.frames++
		if tick%step == 0 || tick == end {
			fmt.Printf("[>] Ready: %d/%d\n", tick+1, end+1)
		}
		return nil
	})
	closeErr := fw.Close()
	if err != nil {
		return fmt.Errorf("video: %w", err)
	}
	if closeErr != nil {
		return fmt.Errorf("video: %w", closeErr)
	}
	return nil
}

func (p *AnimationProject) runStream(ctx context.Context) error {
	pub := p.Publisher
	if pub == nil {
		mp, err := stream.Connect(p.Config.Mqtt)
		if err != nil {
			return err
		}
		defer mp.Close()
		pub = mp
	}

	s, err := stream.NewStreamer(p.scene, pub, p.Config.Mqtt.Topic, p.Config.Mqtt.Encoding)
	if err != nil {
		return err
	}

	fmt.Printf("[*] Streaming to %s at %d ticks/s\n", p.Config.Mqtt.Topic, p.scene.Tick())
	n, err := s.Run(ctx)
	p.stats.frames = n
	return err
}

func (p *AnimationProject) report(total time.Duration) {
	fps := 0.0
	if p.stats.output > 0 {
		fps = float64(p.stats.frames) / p.stats.output.Seconds()
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Total Time: %.2fs\n"+
			"Loading: %.2fs\n"+
			"Output (%s): %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, system.HostSummary(), total.Seconds(), p.stats.load.Seconds(),
		p.Config.View, p.stats.output.Seconds(), p.stats.frames, fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | View: %s | Frames: %d | Total: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		p.Config.View,
		p.stats.frames,
		total.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
