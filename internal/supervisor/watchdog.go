package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// tickWatchdog implements spec.md §4.8's 1s watchdog: a 30s playback
// stall triggers a reload at the current position, and a 10s user-pause
// (or error) recovery window also triggers a reload, with its timer reset
// to rate-limit retries.
func (s *Supervisor) tickWatchdog(ctx context.Context) {
	s.mu.Lock()
	status := s.state.Status
	stalledPlaying := status == StatusPlaying && !s.state.LastUpdateAt.IsZero() &&
		time.Since(s.state.LastUpdateAt) > watchdogTimeout
	stalledWaiting := status == StatusWaiting && !s.state.PauseStartAt.IsZero() &&
		time.Since(s.state.PauseStartAt) > pauseRecoveryTimeout
	idx := s.state.CurrentIdx
	currentTime := s.state.CurrentTime
	totalDuration := s.state.TotalDuration
	var contentKey string
	if idx < len(s.state.Playlist) {
		contentKey = s.state.Playlist[idx].Value
	}
	if stalledWaiting {
		s.state.PauseStartAt = time.Now()
	}
	s.mu.Unlock()

	if s.history != nil && status == StatusPlaying && contentKey != "" {
		s.history.SavePosition(contentKey, currentTime, totalDuration)
	}

	if !stalledPlaying && !stalledWaiting {
		return
	}

	log.Warn().Bool("playing_stall", stalledPlaying).Bool("waiting_stall", stalledWaiting).
		Float64("current_time", currentTime).Msg("supervisor: watchdog reload")

	if err := s.reloadAt(ctx, idx, currentTime); err != nil {
		log.Error().Err(err).Msg("supervisor: watchdog reload failed")
	}
}

// tickAutoBuffer implements the 150ms auto-buffering rule for torrent
// playback: pause when the download margin over playback position runs
// thin, resume once it has recovered.
func (s *Supervisor) tickAutoBuffer(ctx context.Context) {
	s.mu.Lock()
	ts := s.state.TorrentSession
	total := s.state.TotalDuration
	current := s.state.CurrentTime
	status := s.state.Status
	sessionID := s.state.MediaSessionID
	s.mu.Unlock()

	if ts == nil || total <= 0 {
		return
	}

	havePct := percentOf(ts.BytesCompleted(), ts.FileSize)
	playedPct := current / total * 100
	margin := havePct - playedPct

	s.mu.Lock()
	s.state.TorrentProgress = havePct
	s.mu.Unlock()

	switch {
	case margin < bufferUnderrunThreshold && havePct < 100 && status == StatusPlaying:
		if err := s.session.Pause(sessionID); err != nil {
			log.Warn().Err(err).Msg("supervisor: auto-buffer pause failed")
			return
		}
		s.mu.Lock()
		s.state.Status = StatusBuffering
		s.mu.Unlock()

	case status == StatusBuffering && (margin > bufferResumeThreshold || havePct >= 100):
		if err := s.session.Play(sessionID); err != nil {
			log.Warn().Err(err).Msg("supervisor: auto-buffer resume failed")
			return
		}
		s.mu.Lock()
		s.state.Status = StatusPlaying
		s.mu.Unlock()
	}
}

func percentOf(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func (s *Supervisor) applyProbeCompletion(pc probeCompletion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pc.idx != s.state.CurrentIdx {
		return
	}
	if pc.duration > 0 {
		s.state.TotalDuration = pc.duration
	}
	if pc.video != "" {
		s.state.VideoCodec = pc.video
	}
	if pc.audio != "" {
		s.state.AudioCodec = pc.audio
	}
}
