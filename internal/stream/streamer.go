// Package stream publishes scene snapshots over MQTT as playback advances.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ivlev/shapeanim/internal/model"
)

// Payload encodings.
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// Publisher delivers one payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// ShapeState is one shape as published in a Frame.
type ShapeState struct {
	Name    string  `json:"name" msgpack:"name"`
	Type    string  `json:"type" msgpack:"type"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Size1   float64 `json:"size1" msgpack:"size1"`
	Size2   float64 `json:"size2" msgpack:"size2"`
	Color   string  `json:"color" msgpack:"color"`
	Visible bool    `json:"visible" msgpack:"visible"`
}

// Frame is the scene at one tick.
type Frame struct {
	Tick   int          `json:"tick" msgpack:"tick"`
	Shapes []ShapeState `json:"shapes" msgpack:"shapes"`
}

// NewFrame samples scene at tick.
func NewFrame(scene *model.Scene, tick int) Frame {
	snapshot := scene.Snapshot(tick)
	f := Frame{Tick: tick, Shapes: make([]ShapeState, 0, len(snapshot))}
	for _, s := range snapshot {
		p := s.Position()
		f.Shapes = append(f.Shapes, ShapeState{
			Name:    s.Name(),
			Type:    s.Kind().String(),
			X:       p.X,
			Y:       p.Y,
			Size1:   s.Size1(),
			Size2:   s.Size2(),
			Color:   s.Color().Hex(),
			Visible: s.Visible(tick),
		})
	}
	return f
}

// Streamer sends one Frame per tick at the scene's tick rate.
type Streamer struct {
	scene    *model.Scene
	pub      Publisher
	topic    string
	interval time.Duration
	marshal  func(interface{}) ([]byte, error)
}

// NewStreamer creates a Streamer for scene publishing to topic.
func NewStreamer(scene *model.Scene, pub Publisher, topic, encoding string) (*Streamer, error) {
	s := &Streamer{
		scene:    scene,
		pub:      pub,
		topic:    topic,
		interval: tickInterval(scene.Tick()),
	}

	switch encoding {
	case EncodingJSON, "":
		s.marshal = json.Marshal
	case EncodingMsgpack:
		s.marshal = msgpack.Marshal
	default:
		return nil, fmt.Errorf("unknown stream encoding %q", encoding)
	}

	return s, nil
}

// tickInterval is the ticker period for rate ticks per second. Rates above
// one per nanosecond run at the ticker's minimum period.
func tickInterval(rate int) time.Duration {
	if rate < 1 {
		rate = 1
	}
	d := time.Second / time.Duration(rate)
	if d < 1 {
		d = 1
	}
	return d
}

// SendFrame publishes the frame for tick.
func (s *Streamer) SendFrame(tick int) error {
	b, err := s.marshal(NewFrame(s.scene, tick))
	if err != nil {
		return fmt.Errorf("encode tick %d: %w", tick, err)
	}
	if err := s.pub.Publish(s.topic, b); err != nil {
		return fmt.Errorf("publish tick %d: %w", tick, err)
	}
	return nil
}

// Run publishes ticks 0 through the scene's end time, one per interval, and
// returns the number of frames sent. It stops early when ctx is cancelled.
func (s *Streamer) Run(ctx context.Context) (int, error) {
	end, err := s.scene.EndTime()
	if err != nil {
		return 0, err
	}

	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()

	sent := 0
	for tick := 0; ; tick++ {
		if err := s.SendFrame(tick); err != nil {
			return sent, err
		}
		sent++
		if tick >= end {
			return sent, nil
		}

		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		case <-publishTimer.C:
		}
	}
}
