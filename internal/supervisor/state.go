// Package supervisor is the single-threaded event loop that reconciles
// playlist playback with a Cast receiver: it drives LOAD/PLAY/PAUSE/SEEK,
// watches for stalls, auto-buffers torrent playback, and recovers from
// transport drops. Grounded on the orchestration loop in
// _examples/original_source/src/app.rs (run()/load_media()), restructured
// from one giant async function into Go's idiomatic channel-driven select
// loop, matching the cooperative event-loop shape of the teacher's
// mutex-guarded Manager in internal/torrent/manager.go.
package supervisor

import (
	"time"

	"github.com/adntgv/castbox/internal/source"
	"github.com/adntgv/castbox/internal/torrentstream"
)

// Status is the supervisor's playback state machine (spec.md §4.8).
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusBuffering
	StatusWaiting
	StatusFinished
	StatusReconnecting
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPlaying:
		return "Playing"
	case StatusBuffering:
		return "Buffering"
	case StatusWaiting:
		return "Waiting"
	case StatusFinished:
		return "Finished"
	case StatusReconnecting:
		return "Reconnecting"
	default:
		return "Unknown"
	}
}

const (
	watchdogTimeout         = 30 * time.Second
	pauseRecoveryTimeout    = 10 * time.Second
	bufferUnderrunThreshold = 0.5
	bufferResumeThreshold   = 2.0
	animationTick           = 150 * time.Millisecond
	watchdogTick            = 1 * time.Second
)

// State is the single mutable record the supervisor owns exclusively;
// every field here mirrors AppState in the original implementation.
type State struct {
	Playlist   []source.MediaSource
	CurrentIdx int
	Loop       bool

	Status Status

	MediaSessionID int
	IsTranscoding  bool
	SeekOffset    float64
	CurrentTime   float64

	LastKnownTime float64
	LastUpdateAt  time.Time
	PauseStartAt  time.Time // zero value means unset

	TotalDuration float64
	VideoCodec    string
	AudioCodec    string

	VolumeLevel float64
	IsMuted     bool

	TorrentSession  *torrentstream.Session
	TorrentProgress float64

	Subtitles string
}

// Current returns the playlist entry the supervisor is presently on.
func (s *State) Current() source.MediaSource {
	return s.Playlist[s.CurrentIdx]
}

// PauseStartSet reports whether a pause timer is currently running.
func (s *State) PauseStartSet() bool {
	return !s.PauseStartAt.IsZero()
}

// mediaSessionIDLocked returns the last observed media session id; callers
// must hold Supervisor.mu.
func (s *State) mediaSessionIDLocked() int {
	return s.MediaSessionID
}
