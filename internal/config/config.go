package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Views understood by the engine.
const (
	ViewText     = "text"
	ViewFrames   = "frames"
	ViewVideo    = "video"
	ViewStream   = "stream"
	ViewScenario = "scenario"
)

// Stdout is the output path that selects standard output.
const Stdout = "out"

// Config is one run of the tool. A zero Speed keeps the tick rate the input
// declares.
type Config struct {
	InputPath    string `yaml:"input"`
	OutputPath   string `yaml:"output"`
	View         string `yaml:"view"`
	Speed        int    `yaml:"speed"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Workers      int    `yaml:"workers"`
	VideoEncoder string `yaml:"encoder"`
	Quality      int    `yaml:"quality"`
	ShowStats    bool   `yaml:"stats"`
	Mqtt         Mqtt   `yaml:"mqtt"`
	BuildVersion string `yaml:"-"`
}

// Mqtt holds broker settings for the stream view.
type Mqtt struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"clientId"`
	Encoding string `yaml:"encoding"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		View:       ViewText,
		OutputPath: Stdout,
		Mqtt: Mqtt{
			URL:      "tcp://localhost:1883",
			Topic:    "shapeanim/frames",
			ClientID: "shapeanim",
			Encoding: "json",
		},
	}
}

// Load overlays the YAML document at path onto cfg. Keys missing from the
// document keep their current values.
func Load(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings that do not depend on the loaded scene.
func (c *Config) Validate() error {
	if c.Speed < 0 {
		return fmt.Errorf("speed must be at least 1, got %d", c.Speed)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("frame size %dx%d is negative", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	switch c.View {
	case ViewText, ViewScenario:
	case ViewFrames, ViewVideo:
		if c.OutputPath == "" || c.OutputPath == Stdout {
			return fmt.Errorf("view %q needs an output path", c.View)
		}
	case ViewStream:
		if c.Mqtt.URL == "" || c.Mqtt.Topic == "" {
			return errors.New("view \"stream\" needs an MQTT url and topic")
		}
	default:
		return fmt.Errorf("unknown view %q", c.View)
	}

	return nil
}

// ToStdout reports whether textual output goes to standard output.
func (c *Config) ToStdout() bool {
	return c.OutputPath == "" || c.OutputPath == Stdout
}
