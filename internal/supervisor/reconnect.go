package supervisor

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/castwire"
	"github.com/adntgv/castbox/internal/receiver"
)

// reconnect implements the user-reconnect command: the wire client's own
// transport loop already rebuilds the TCP/TLS connection on I/O failure
// with backoff (spec.md §4.2), so what a manual reconnect needs to redo is
// the application-layer handshake on top of it — CONNECT to the receiver
// and re-launch the media receiver app, then resubscribe implicitly
// through the relaunch.
func (s *Supervisor) reconnect(ctx context.Context) {
	s.mu.Lock()
	s.state.Status = StatusReconnecting
	idx := s.state.CurrentIdx
	currentTime := s.state.CurrentTime
	s.mu.Unlock()

	if err := castproto.Connect(s.client, castwire.ReceiverID); err != nil {
		log.Warn().Err(err).Msg("supervisor: reconnect CONNECT failed")
	}

	sess, err := receiver.Launch(ctx, s.client)
	if err != nil {
		log.Error().Err(err).Msg("supervisor: reconnect launch failed")
		s.mu.Lock()
		s.state.Status = StatusWaiting
		s.state.PauseStartAt = nowIfZero(s.state.PauseStartAt)
		s.mu.Unlock()
		return
	}
	s.session = sess

	if err := s.reloadAt(ctx, idx, currentTime); err != nil {
		log.Error().Err(err).Msg("supervisor: reconnect reload failed")
	}
}
