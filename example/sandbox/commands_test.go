package main

import (
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/scene"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func newSandbox(t *testing.T) *Sandbox {
	s := scene.Default()
	w, err := s.Build()
	require.NoError(t, err)
	return &Sandbox{Scene: s, World: w}
}

func TestSandbox_ForceLastsOneTick(t *testing.T) {
	sb := newSandbox(t)

	require.NoError(t, sb.Force("1", "push", "10", "0"))
	require.NoError(t, sb.Step(1))
	velocity := sb.World.Bodies[1].Velocity
	require.Greater(t, velocity.X(), 0.0)

	require.NoError(t, sb.Step(1))
	require.Equal(t, velocity, sb.World.Bodies[1].Velocity)
	require.Equal(t, 2, sb.Ticks)
}

func TestSandbox_PinAndRemove(t *testing.T) {
	sb := newSandbox(t)

	require.NoError(t, sb.Pin("1", "wind", "-10", "0"))
	require.NoError(t, sb.Step(2))
	require.Less(t, sb.World.Bodies[1].Velocity.X(), 0.0)

	velocity := sb.World.Bodies[1].Velocity
	require.NoError(t, sb.Remove("1", "wind"))
	require.NoError(t, sb.Step(1))
	require.Equal(t, velocity, sb.World.Bodies[1].Velocity)
}

func TestSandbox_ImpulseAndVelocity(t *testing.T) {
	sb := newSandbox(t)

	require.NoError(t, sb.Impulse("1", "30", "0"))
	require.InDelta(t, 3.0, sb.World.Bodies[1].Velocity.X(), 1e-9)

	require.NoError(t, sb.Velocity("1", "0", "-1"))
	require.Equal(t, mgl64.Vec2{0, -1}, sb.World.Bodies[1].Velocity)
}

func TestSandbox_InvalidArguments(t *testing.T) {
	sb := newSandbox(t)

	require.Error(t, sb.Force("7", "push", "1", "0"))
	require.Error(t, sb.Force("-1", "push", "1", "0"))
	require.Error(t, sb.Impulse("0", "x", "0"))
	require.ErrorIs(t, sb.Impulse("0", "NaN", "0"), actor.ErrInvalidInput)
	require.ErrorIs(t, sb.Velocity("0", "0", "Inf"), actor.ErrInvalidInput)
}
