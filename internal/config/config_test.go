package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlay(t *testing.T) {
	doc := `view: stream
speed: 30
mqtt:
  url: tcp://broker:1883
  topic: demo/frames
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg := Default()
	cfg.InputPath = "scene.txt"
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, ViewStream, cfg.View)
	assert.Equal(t, 30, cfg.Speed)
	assert.Equal(t, "scene.txt", cfg.InputPath)
	assert.Equal(t, "tcp://broker:1883", cfg.Mqtt.URL)
	assert.Equal(t, "demo/frames", cfg.Mqtt.Topic)
	assert.Equal(t, "shapeanim", cfg.Mqtt.ClientID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: red\n"), 0644))

	err := Load(path, Default())
	assert.Error(t, err)

	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml"), Default()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"input speed", func(c *Config) { c.Speed = 0 }, false},
		{"negative speed", func(c *Config) { c.Speed = -1 }, true},
		{"negative width", func(c *Config) { c.Width = -1 }, true},
		{"negative workers", func(c *Config) { c.Workers = -2 }, true},
		{"unknown view", func(c *Config) { c.View = "gui" }, true},
		{"frames to stdout", func(c *Config) { c.View = ViewFrames }, true},
		{"frames to dir", func(c *Config) { c.View = ViewFrames; c.OutputPath = "frames" }, false},
		{"video to file", func(c *Config) { c.View = ViewVideo; c.OutputPath = "a.mp4" }, false},
		{"stream without topic", func(c *Config) { c.View = ViewStream; c.Mqtt.Topic = "" }, true},
		{"scenario to stdout", func(c *Config) { c.View = ViewScenario }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
