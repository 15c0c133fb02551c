// Package player defines the media playback collaborator consumed by the
// interpreter, and a simulated implementation of it.
//
// The interpreter treats every call as a blocking request: a transport
// command returns once the player acknowledges it was issued, and Wait is
// the only call that intentionally suspends the caller. The queries return
// plain values and never fail.
package player

import "fmt"

// Player is the transport-command and state-query surface of a media
// playback backend.
type Player interface {
	// Commands. Each may fail; the interpreter surfaces the failure as a
	// runtime error.
	Open(path string) error
	Play() error
	Pause() error
	Stop() error
	Seek(pos int64) error
	Forward(delta int64) error
	Rewind(delta int64) error
	Wait(seconds int64) error

	// Queries. Positions and durations are in seconds.
	Position() int64
	Duration() int64
	Ended() bool
	IsPlaying() bool
}

// Error is a failure reported by a player for a specific command.
type Error struct {
	Command string // the transport command that failed
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("player: %s: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
