package supervisor

import (
	"time"

	"github.com/adntgv/castbox/internal/castproto"
)

func (s *Supervisor) sendSetVolume(level float64) error {
	return castproto.SetVolume(s.client, level)
}

func (s *Supervisor) sendSetMuted(muted bool) error {
	return castproto.SetMuted(s.client, muted)
}

// nowIfZero returns t unchanged if already set, otherwise the current time;
// used to start a pause timer without clobbering one already running.
func nowIfZero(t time.Time) time.Time {
	if !t.IsZero() {
		return t
	}
	return time.Now()
}

// castSetVolume and castSetMuted always route through the receiver
// namespace (platform-wide volume), updated optimistically in supervisor
// state and reconciled when RECEIVER_STATUS arrives (spec.md §4.8
// "Volume").
func castSetVolume(s *Supervisor) error {
	s.mu.Lock()
	level := s.state.VolumeLevel
	s.mu.Unlock()
	return s.sendSetVolume(level)
}

func castSetMuted(s *Supervisor) error {
	s.mu.Lock()
	muted := s.state.IsMuted
	s.mu.Unlock()
	return s.sendSetMuted(muted)
}
