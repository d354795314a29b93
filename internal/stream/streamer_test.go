package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ivlev/shapeanim/internal/model"
)

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	failAt   int
}

func (f *fakePublisher) Publish(topic string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAt > 0 && len(f.payloads)+1 == f.failAt {
		return errors.New("broker gone")
	}
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}

func streamScene(t *testing.T, tickRate int) *model.Scene {
	t.Helper()
	scene := model.NewScene()
	require.NoError(t, scene.SetTick(tickRate))

	r, err := model.NewRectangle("R", model.NewPosition(0, 0), model.NewColor(255, 0, 0), 1, 4, 10, 10)
	require.NoError(t, err)
	scene.AddShape(r)

	move, err := model.NewMove("R", 1, 4, model.NewPosition(0, 0), model.NewPosition(30, 0))
	require.NoError(t, err)
	require.NoError(t, scene.AddAnimation(move))
	return scene
}

func TestNewFrame(t *testing.T) {
	scene := streamScene(t, 1)

	f := NewFrame(scene, 2)
	assert.Equal(t, 2, f.Tick)
	require.Len(t, f.Shapes, 1)
	assert.Equal(t, ShapeState{
		Name: "R", Type: "rectangle", X: 10, Y: 0, Size1: 10, Size2: 10,
		Color: "#ff0000", Visible: true,
	}, f.Shapes[0])

	assert.False(t, NewFrame(scene, 0).Shapes[0].Visible)
}

func TestRunPublishesEveryTick(t *testing.T) {
	scene := streamScene(t, 1000)
	pub := &fakePublisher{}

	s, err := NewStreamer(scene, pub, "demo/frames", EncodingJSON)
	require.NoError(t, err)

	sent, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, sent)
	require.Len(t, pub.payloads, 5)

	for i, payload := range pub.payloads {
		assert.Equal(t, "demo/frames", pub.topics[i])
		var f Frame
		require.NoError(t, json.Unmarshal(payload, &f))
		assert.Equal(t, i, f.Tick)
	}

	var last Frame
	require.NoError(t, json.Unmarshal(pub.payloads[4], &last))
	assert.Equal(t, 30.0, last.Shapes[0].X)
}

func TestRunMsgpack(t *testing.T) {
	scene := streamScene(t, 1000)
	pub := &fakePublisher{}

	s, err := NewStreamer(scene, pub, "t", EncodingMsgpack)
	require.NoError(t, err)
	require.NoError(t, s.SendFrame(3))

	var f Frame
	require.NoError(t, msgpack.Unmarshal(pub.payloads[0], &f))
	assert.Equal(t, 3, f.Tick)
	assert.Equal(t, 20.0, f.Shapes[0].X)
}

func TestRunStops(t *testing.T) {
	_, err := NewStreamer(streamScene(t, 1), &fakePublisher{}, "t", "xml")
	assert.Error(t, err)

	s, err := NewStreamer(model.NewScene(), &fakePublisher{}, "t", "")
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, model.ErrEmptyScene)

	pub := &fakePublisher{failAt: 3}
	s, err = NewStreamer(streamScene(t, 1000), pub, "t", "")
	require.NoError(t, err)
	sent, err := s.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, sent)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s, err = NewStreamer(streamScene(t, 1), &fakePublisher{}, "t", "")
	require.NoError(t, err)
	sent, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, sent)
}

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	mqtt.Client
	topic        string
	qos          byte
	payload      interface{}
	err          error
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic, c.qos, c.payload = topic, qos, payload
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Disconnect(quiesce uint) { c.disconnected = true }

func TestMQTTPublisher(t *testing.T) {
	client := &fakeClient{}
	p := NewMQTTPublisher(client, 1)

	require.NoError(t, p.Publish("a/b", []byte("x")))
	assert.Equal(t, "a/b", client.topic)
	assert.Equal(t, byte(1), client.qos)
	assert.Equal(t, []byte("x"), client.payload)

	client.err = errors.New("not connected")
	assert.EqualError(t, p.Publish("a/b", nil), "not connected")

	p.Close()
	assert.True(t, client.disconnected)
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{1, time.Second},
		{1000, time.Millisecond},
		{1_000_000_000, time.Nanosecond},
		{2_000_000_000, time.Nanosecond},
		{0, time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tickInterval(tt.rate), "rate %d", tt.rate)
	}
}

func TestRunAtExtremeRate(t *testing.T) {
	pub := &fakePublisher{}
	s, err := NewStreamer(streamScene(t, 2_000_000_000), pub, "t", "")
	require.NoError(t, err)

	sent, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, sent)
}
