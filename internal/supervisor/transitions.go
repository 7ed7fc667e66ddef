package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/castproto"
)

// premature-finish guard threshold (spec.md §4.8, footnote 2).
const prematureFinishThreshold = 10 * time.Second

// transition sets status directly, used for the simple PLAYING arm of the
// state table (every row maps PLAYING -> Playing). The Waiting -> Playing
// cell is documented as "Playing (clear timer)" (spec.md §4.8), so the
// pause-recovery timer is cleared here rather than left stale for the
// next pause to find already set.
func (s *Supervisor) transition(ctx context.Context, to Status) {
	s.mu.Lock()
	s.state.Status = to
	if to == StatusPlaying {
		s.state.PauseStartAt = time.Time{}
	}
	s.mu.Unlock()
}

// onPaused implements the PAUSED row: Buffering retains Buffering (self
// induced pause for auto-buffering), everything else becomes Waiting.
func (s *Supervisor) onPaused(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status == StatusBuffering {
		return
	}
	s.state.Status = StatusWaiting
	if s.state.PauseStartAt.IsZero() {
		s.state.PauseStartAt = time.Now()
	}
}

func (s *Supervisor) onBuffering() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Status = StatusBuffering
}

// onIdle implements the IDLE(...) rows, including the premature-finish
// guard: a FINISHED with more than 10s of declared duration remaining is
// treated as a crash, not a genuine end of stream.
func (s *Supervisor) onIdle(ctx context.Context, reason castproto.IdleReason) {
	s.mu.Lock()
	remaining := s.state.TotalDuration - s.state.CurrentTime
	hasDuration := s.state.TotalDuration > 0
	s.mu.Unlock()

	if reason == castproto.IdleFinished {
		if hasDuration && remaining > prematureFinishThreshold.Seconds() {
			log.Warn().Float64("remaining", remaining).Msg("supervisor: premature FINISHED, treating as stall")
			s.enterWaiting()
			return
		}
		s.advanceOrStop(ctx)
		return
	}

	// ERROR, INTERRUPTED, CANCELLED, or none: all route to Waiting with the
	// pause-recovery timer, per the error-taxonomy table (spec.md §7).
	s.enterWaiting()
}

func (s *Supervisor) enterWaiting() {
	s.mu.Lock()
	s.state.Status = StatusWaiting
	if s.state.PauseStartAt.IsZero() {
		s.state.PauseStartAt = time.Now()
	}
	s.mu.Unlock()
}

// advanceOrStop implements "next/loop": load the next playlist entry if
// one exists, or wrap around when Loop is set; otherwise remain Idle.
func (s *Supervisor) advanceOrStop(ctx context.Context) {
	s.mu.Lock()
	next := s.state.CurrentIdx + 1
	n := len(s.state.Playlist)
	var idx int
	var hasNext bool
	switch {
	case next < n:
		idx, hasNext = next, true
	case s.state.Loop && n > 0:
		idx, hasNext = 0, true
	default:
		s.state.Status = StatusIdle
	}
	s.mu.Unlock()

	if !hasNext {
		return
	}
	if err := s.loadEntry(ctx, idx); err != nil {
		log.Error().Err(err).Int("idx", idx).Msg("supervisor: advance load failed")
	}
}
