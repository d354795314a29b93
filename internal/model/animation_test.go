package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnimationTiming(t *testing.T) {
	_, err := NewMove("R", -1, 10, Position{}, Position{})
	assert.ErrorIs(t, err, ErrInvalidTiming)
	_, err = NewScale("R", 0, -1, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTiming)
	_, err = NewColorChange("R", 10, 5, Color{}, Color{})
	assert.ErrorIs(t, err, ErrInvalidTiming)

	_, err = NewScale("R", 0, 5, 0, 1, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewScale("R", 0, 5, 10, 10, -10, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	a, err := NewMove("R1", 1, 10, Position{}, Position{})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Start())
	assert.Equal(t, 10, a.End())
	assert.Equal(t, "R1", a.Target())
	assert.Equal(t, Move, a.Kind())
	assert.Equal(t, "move", a.Kind().String())
}

func TestAnimationDescription(t *testing.T) {
	scene := NewScene()
	scene.AddShape(mustRect(t, "R", 200, 200, NewColor(255, 0, 0), 1, 100, 50, 100))

	move, err := NewMove("R", 10, 20, NewPosition(0, 0), NewPosition(2, 1))
	require.NoError(t, err)
	scale, err := NewScale("R", 30, 40, 1, 5, 52, 15)
	require.NoError(t, err)
	change, err := NewColorChange("R", 30, 50, NewColor(100, 0, 0), NewColor(255, 0, 0))
	require.NoError(t, err)

	for _, a := range []*Animation{move, scale, change} {
		_, err := a.Description(scene)
		assert.ErrorIs(t, err, ErrUnbound)
		require.NoError(t, scene.AddAnimation(a))
	}

	got, err := move.Description(scene)
	require.NoError(t, err)
	assert.Equal(t, "Shape R moves from (0.0,0.0) to (2.0,1.0) from t=10 to t=20\n", got)

	got, err = scale.Description(scene)
	require.NoError(t, err)
	assert.Equal(t, "Shape R scales from Width: 1.0, Height: 5.0 to Width: 53.0, Height: 20.0 from t=30 to t=40\n", got)

	got, err = change.Description(scene)
	require.NoError(t, err)
	assert.Equal(t, "Shape R changes color from (100,0,0) to (255,0,0) from t=30 to t=50\n", got)
}

func TestMoveDescriptionSuppressedWhenStill(t *testing.T) {
	scene := NewScene()
	scene.AddShape(mustRect(t, "R", 0, 0, NewColor(0, 0, 0), 0, 100, 1, 1))

	still, err := NewMove("R", 0, 10, NewPosition(3, 4), NewPosition(3, 4))
	require.NoError(t, err)
	require.NoError(t, scene.AddAnimation(still))

	got, err := still.Description(scene)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDescriptionAfterShapeRemoved(t *testing.T) {
	r := mustRect(t, "R", 0, 0, NewColor(0, 0, 0), 0, 100, 1, 1)
	scene := newTestScene(t, r)
	move, err := NewMove("R", 0, 10, NewPosition(0, 0), NewPosition(1, 1))
	require.NoError(t, err)
	require.NoError(t, scene.AddAnimation(move))

	require.NoError(t, scene.RemoveShape(r))
	_, err = move.Description(scene)
	assert.ErrorIs(t, err, ErrNotFound)

	var missing *Animation
	_, err = missing.Description(scene)
	assert.ErrorIs(t, err, ErrNullAnimation)
}
