package player

import (
	"errors"
	"log/slog"

	"github.com/zurustar/streamlang/pkg/logger"
)

// DefaultDuration is the duration reported for newly opened media, in
// seconds, until SetDuration overrides it.
const DefaultDuration = 180

// ErrNoMedia is returned by transport commands issued before Open.
var ErrNoMedia = errors.New("no media loaded")

// Sim is an in-process simulated player. It models transport state only:
// Wait advances a simulated clock instead of sleeping, which makes script
// runs deterministic and instantaneous.
type Sim struct {
	title    string
	loaded   bool
	playing  bool
	ended    bool
	position int64
	duration int64

	log *slog.Logger
}

// NewSim creates a simulated player with no media loaded.
func NewSim() *Sim {
	return &Sim{
		duration: DefaultDuration,
		log:      logger.GetLogger(),
	}
}

// SetDuration overrides the duration reported for opened media.
func (s *Sim) SetDuration(seconds int64) {
	if seconds > 0 {
		s.duration = seconds
	}
}

// Open loads a media title and resets the transport state.
func (s *Sim) Open(path string) error {
	s.title = path
	s.loaded = true
	s.playing = false
	s.ended = false
	s.position = 0
	s.log.Info("opened media", "title", path, "duration", s.duration)
	return nil
}

func (s *Sim) Play() error {
	if !s.loaded {
		return &Error{Command: "play", Err: ErrNoMedia}
	}
	s.playing = true
	s.log.Info("playing", "title", s.title, "position", s.position)
	return nil
}

func (s *Sim) Pause() error {
	if !s.loaded {
		return &Error{Command: "pause", Err: ErrNoMedia}
	}
	s.playing = false
	s.log.Info("paused", "position", s.position)
	return nil
}

// Stop halts playback and rewinds to the start.
func (s *Sim) Stop() error {
	if !s.loaded {
		return &Error{Command: "stop", Err: ErrNoMedia}
	}
	s.playing = false
	s.position = 0
	s.log.Info("stopped")
	return nil
}

// Seek moves to an absolute position. The position is taken as given, even
// negative; only Rewind clamps at the start.
func (s *Sim) Seek(pos int64) error {
	if !s.loaded {
		return &Error{Command: "seek", Err: ErrNoMedia}
	}
	s.position = pos
	s.log.Info("seeked", "position", s.position)
	return nil
}

func (s *Sim) Forward(delta int64) error {
	if !s.loaded {
		return &Error{Command: "forward", Err: ErrNoMedia}
	}
	s.position += delta
	s.log.Info("forwarded", "delta", delta, "position", s.position)
	return nil
}

// Rewind skips backward, clamping at position 0.
func (s *Sim) Rewind(delta int64) error {
	if !s.loaded {
		return &Error{Command: "rewind", Err: ErrNoMedia}
	}
	s.position -= delta
	if s.position < 0 {
		s.position = 0
	}
	s.log.Info("rewound", "delta", delta, "position", s.position)
	return nil
}

// Wait advances the simulated clock. While playing, the position moves with
// the clock and latches the ended flag when it reaches the duration.
func (s *Sim) Wait(seconds int64) error {
	if !s.loaded {
		return &Error{Command: "wait", Err: ErrNoMedia}
	}
	if s.playing {
		s.position += seconds
		if s.position >= s.duration {
			s.position = s.duration
			s.ended = true
			s.playing = false
		}
	}
	s.log.Info("waited", "seconds", seconds, "position", s.position)
	return nil
}

func (s *Sim) Position() int64 { return s.position }
func (s *Sim) Duration() int64 { return s.duration }
func (s *Sim) Ended() bool     { return s.ended }
func (s *Sim) IsPlaying() bool { return s.playing }

// Title returns the title of the loaded media, or "" when nothing is open.
func (s *Sim) Title() string { return s.title }
