package supervisor

import (
	"context"

	"github.com/rs/zerolog/log"
)

func (s *Supervisor) applyCommand(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdPlayPause:
		s.togglePlayPause()
	case CmdStop:
		s.stop()
	case CmdSeekForward:
		s.seekBy(ctx, s.cfg.SeekForward.Seconds())
	case CmdSeekBackward:
		s.seekBy(ctx, -s.cfg.SeekBackward.Seconds())
	case CmdVolumeUp:
		s.setVolume(s.clampedVolume(0.05))
	case CmdVolumeDown:
		s.setVolume(s.clampedVolume(-0.05))
	case CmdMute:
		s.toggleMute()
	case CmdNext:
		s.advanceOrStop(ctx)
	case CmdPrev:
		s.previous(ctx)
	case CmdReconnect:
		s.reconnect(ctx)
	}
}

func (s *Supervisor) togglePlayPause() {
	s.mu.Lock()
	sessionID := s.mediaSessionID()
	playing := s.state.Status == StatusPlaying || s.state.Status == StatusBuffering
	if playing {
		s.state.Status = StatusWaiting
		s.state.PauseStartAt = nowIfZero(s.state.PauseStartAt)
	}
	s.mu.Unlock()

	var err error
	if playing {
		err = s.session.Pause(sessionID)
	} else {
		err = s.session.Play(sessionID)
	}
	if err != nil {
		log.Warn().Err(err).Msg("supervisor: play/pause command failed")
	}
}

func (s *Supervisor) stop() {
	s.mu.Lock()
	sessionID := s.mediaSessionID()
	s.state.Status = StatusFinished
	s.mu.Unlock()

	if err := s.session.Stop(sessionID); err != nil {
		log.Warn().Err(err).Msg("supervisor: stop command failed")
	}
	s.teardownCurrent()
}

func (s *Supervisor) previous(ctx context.Context) {
	s.mu.Lock()
	idx := s.state.CurrentIdx
	if idx > 0 {
		idx--
	}
	s.mu.Unlock()
	if err := s.loadEntry(ctx, idx); err != nil {
		log.Error().Err(err).Msg("supervisor: previous load failed")
	}
}

func (s *Supervisor) clampedVolume(delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.state.VolumeLevel + delta
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

func (s *Supervisor) setVolume(level float64) {
	s.mu.Lock()
	s.state.VolumeLevel = level
	s.mu.Unlock()
	if err := castSetVolume(s); err != nil {
		log.Warn().Err(err).Msg("supervisor: set volume failed")
	}
}

func (s *Supervisor) toggleMute() {
	s.mu.Lock()
	s.state.IsMuted = !s.state.IsMuted
	s.mu.Unlock()
	if err := castSetMuted(s); err != nil {
		log.Warn().Err(err).Msg("supervisor: set muted failed")
	}
}

func (s *Supervisor) mediaSessionID() int {
	return s.state.mediaSessionIDLocked()
}
