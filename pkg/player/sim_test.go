package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRequireLoadedMedia(t *testing.T) {
	s := NewSim()

	require.ErrorIs(t, s.Play(), ErrNoMedia)
	require.ErrorIs(t, s.Pause(), ErrNoMedia)
	require.ErrorIs(t, s.Stop(), ErrNoMedia)
	require.ErrorIs(t, s.Seek(10), ErrNoMedia)
	require.ErrorIs(t, s.Forward(5), ErrNoMedia)
	require.ErrorIs(t, s.Rewind(5), ErrNoMedia)
	require.ErrorIs(t, s.Wait(1), ErrNoMedia)
}

func TestErrorNamesCommand(t *testing.T) {
	err := NewSim().Seek(10)
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "seek", perr.Command)
}

func TestOpenResetsState(t *testing.T) {
	s := NewSim()

	require.NoError(t, s.Open("first.mp4"))
	require.NoError(t, s.Play())
	require.NoError(t, s.Seek(42))

	require.NoError(t, s.Open("second.mp4"))
	assert.Equal(t, "second.mp4", s.Title())
	assert.EqualValues(t, 0, s.Position())
	assert.False(t, s.IsPlaying())
	assert.False(t, s.Ended())
}

func TestWaitAdvancesOnlyWhilePlaying(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))

	require.NoError(t, s.Wait(10))
	assert.EqualValues(t, 0, s.Position(), "wait must not advance a paused player")

	require.NoError(t, s.Play())
	require.NoError(t, s.Wait(10))
	assert.EqualValues(t, 10, s.Position())

	require.NoError(t, s.Pause())
	require.NoError(t, s.Wait(10))
	assert.EqualValues(t, 10, s.Position())
}

func TestWaitClampsAtDurationAndEnds(t *testing.T) {
	s := NewSim()
	s.SetDuration(30)
	require.NoError(t, s.Open("clip.mp4"))
	require.NoError(t, s.Play())

	require.NoError(t, s.Wait(100))
	assert.EqualValues(t, 30, s.Position())
	assert.True(t, s.Ended())
	assert.False(t, s.IsPlaying())

	// ended stays latched across further waits
	require.NoError(t, s.Wait(1))
	assert.True(t, s.Ended())
}

func TestStopRewindsToStart(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))
	require.NoError(t, s.Play())
	require.NoError(t, s.Wait(25))

	require.NoError(t, s.Stop())
	assert.EqualValues(t, 0, s.Position())
	assert.False(t, s.IsPlaying())
}

func TestSeekIsAbsoluteAndUnclamped(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))

	require.NoError(t, s.Seek(50))
	assert.EqualValues(t, 50, s.Position())

	require.NoError(t, s.Seek(-10))
	assert.EqualValues(t, -10, s.Position(), "seek takes the position as given; only rewind clamps")
}

func TestRewindClampsAtZero(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))
	require.NoError(t, s.Seek(10))

	require.NoError(t, s.Rewind(25))
	assert.EqualValues(t, 0, s.Position())
}

func TestForwardAndRewind(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))

	require.NoError(t, s.Forward(30))
	assert.EqualValues(t, 30, s.Position())

	require.NoError(t, s.Rewind(10))
	assert.EqualValues(t, 20, s.Position())
}

func TestDefaultDuration(t *testing.T) {
	s := NewSim()
	require.NoError(t, s.Open("clip.mp4"))
	assert.EqualValues(t, DefaultDuration, s.Duration())
}

func TestSetDurationIgnoresNonPositive(t *testing.T) {
	s := NewSim()
	s.SetDuration(0)
	assert.EqualValues(t, DefaultDuration, s.Duration())
	s.SetDuration(-5)
	assert.EqualValues(t, DefaultDuration, s.Duration())
}
