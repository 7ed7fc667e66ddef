package supervisor

import (
	"context"

	"github.com/rs/zerolog/log"
)

// seekBy applies a relative seek of delta seconds (positive forward,
// negative backward). Transcode-aware: a transcoding source tears down
// its encoder and respawns at the new offset rather than sending SEEK,
// since the encoder's own clock always starts at zero.
func (s *Supervisor) seekBy(ctx context.Context, delta float64) {
	s.mu.Lock()
	target := s.state.CurrentTime + delta
	if target < 0 {
		target = 0
	}
	isTranscoding := s.state.IsTranscoding
	idx := s.state.CurrentIdx
	sessionID := s.state.MediaSessionID
	s.mu.Unlock()

	if isTranscoding {
		if err := s.reloadAt(ctx, idx, target); err != nil {
			log.Error().Err(err).Msg("supervisor: transcode seek failed")
		}
		return
	}

	if err := s.session.Seek(sessionID, target); err != nil {
		log.Warn().Err(err).Msg("supervisor: seek command failed")
	}
	s.mu.Lock()
	s.state.CurrentTime = target
	s.mu.Unlock()
}

// reloadAt tears down the currently installed source and reloads playlist
// entry idx starting at startTime — used both by the watchdog's stall
// recovery and by transcode-aware seeking.
func (s *Supervisor) reloadAt(ctx context.Context, idx int, startTime float64) error {
	s.teardownCurrent()
	return s.loadEntryAt(ctx, idx, startTime)
}
