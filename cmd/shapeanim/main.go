package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ivlev/shapeanim/internal/config"
	"github.com/ivlev/shapeanim/internal/engine"
	"github.com/ivlev/shapeanim/internal/system"
	"github.com/ivlev/shapeanim/internal/video"
)

var buildVersion = "dev"

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	system.InitResourceLimits()

	configPtr := flag.String("config", "", "YAML config file; flags override its values")
	inputPtr := flag.String("in", "", "Input scene: keyframe text or .yaml scenario (default: newest file in input/)")
	outputPtr := flag.String("out", "", "Output file or directory, \"out\" for stdout")
	viewPtr := flag.String("view", "", "View: text, frames, video, stream, scenario")
	speedPtr := flag.Int("speed", 0, "Ticks per second (default: the input's own rate, else 1)")
	widthPtr := flag.Int("width", 0, "Frame width (default: canvas width)")
	heightPtr := flag.Int("height", 0, "Frame height (default: canvas height)")
	workersPtr := flag.Int("workers", 0, "Render workers (default: physical cores)")
	encoderPtr := flag.String("encoder", "", "ffmpeg H.264 encoder (default: best available)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	mqttURLPtr := flag.String("mqtt-url", "", "MQTT broker URL for the stream view")
	mqttTopicPtr := flag.String("mqtt-topic", "", "MQTT topic for the stream view")
	encodingPtr := flag.String("encoding", "", "Stream payload encoding: json, msgpack")
	statsPtr := flag.Bool("stats", false, "Print a performance report")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		if err := config.Load(*configPtr, cfg); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.InputPath = *inputPtr
		case "out":
			cfg.OutputPath = *outputPtr
		case "view":
			cfg.View = *viewPtr
		case "speed":
			if *speedPtr < 1 {
				log.Fatalf("[-] Error: -speed must be at least 1, got %d", *speedPtr)
			}
			cfg.Speed = *speedPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "encoder":
			cfg.VideoEncoder = *encoderPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "mqtt-url":
			cfg.Mqtt.URL = *mqttURLPtr
		case "mqtt-topic":
			cfg.Mqtt.Topic = *mqttTopicPtr
		case "encoding":
			cfg.Mqtt.Encoding = *encodingPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = buildVersion

	if cfg.InputPath == "" {
		latest, err := system.FindLatest("input", ".txt", ".yaml", ".yml")
		if err != nil {
			log.Fatalf("[-] Error: %v. Pass -in or put a scene into input/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Selected input: %s\n", cfg.InputPath)
	}

	if cfg.ToStdout() && (cfg.View == config.ViewFrames || cfg.View == config.ViewVideo) {
		cfg.OutputPath = defaultOutput(cfg.InputPath, cfg.View)
	}

	if cfg.View == config.ViewVideo && cfg.VideoEncoder == "" {
		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", cfg.VideoEncoder)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewAnimationProject(cfg, &video.FFmpegEncoder{})
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	if !cfg.ToStdout() {
		fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputPath)
	}
}

// defaultOutput names a timestamped file or directory under output/.
func defaultOutput(inputPath, view string) string {
	baseName := filepath.Base(inputPath)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if view == config.ViewVideo {
		return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}
	return filepath.Join("output", fmt.Sprintf("%s_%s_frames", cleanName, timestamp))
}
