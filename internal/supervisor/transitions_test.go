package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/castwire"
)

func TestOnPausedRetainsBuffering(t *testing.T) {
	s := &Supervisor{}
	s.state.Status = StatusBuffering
	s.onPaused(context.Background())
	if s.state.Status != StatusBuffering {
		t.Fatalf("status = %v, want Buffering retained", s.state.Status)
	}
}

func TestOnPausedFromPlayingSetsWaitingAndPauseTimer(t *testing.T) {
	s := &Supervisor{}
	s.state.Status = StatusPlaying
	s.onPaused(context.Background())
	if s.state.Status != StatusWaiting {
		t.Fatalf("status = %v, want Waiting", s.state.Status)
	}
	if s.state.PauseStartAt.IsZero() {
		t.Fatal("pause_start_at not set on transition to Waiting")
	}
}

func TestOnPausedDoesNotResetExistingPauseTimer(t *testing.T) {
	s := &Supervisor{}
	s.state.Status = StatusPlaying
	s.onPaused(context.Background())
	first := s.state.PauseStartAt

	s.state.Status = StatusWaiting
	time.Sleep(time.Millisecond)
	s.onPaused(context.Background())
	if !s.state.PauseStartAt.Equal(first) {
		t.Fatal("pause_start_at was reset by a second PAUSED while already Waiting")
	}
}

func TestPrematureFinishGuardStaysWaiting(t *testing.T) {
	s := &Supervisor{}
	s.state.Status = StatusPlaying
	s.state.TotalDuration = 100
	s.state.CurrentTime = 50 // 50s remaining > 10s threshold

	s.onIdle(context.Background(), castproto.IdleFinished)

	if s.state.Status != StatusWaiting {
		t.Fatalf("status = %v, want Waiting (premature finish guard)", s.state.Status)
	}
}

func TestGenuineFinishWithNoNextStaysIdle(t *testing.T) {
	s := &Supervisor{}
	s.state.Playlist = nil
	s.state.Status = StatusPlaying
	s.state.TotalDuration = 100
	s.state.CurrentTime = 99.5 // within 10s of the end

	s.onIdle(context.Background(), castproto.IdleFinished)

	if s.state.Status != StatusIdle {
		t.Fatalf("status = %v, want Idle", s.state.Status)
	}
}

func TestSeekOffsetOnlyNonZeroWhenTranscoding(t *testing.T) {
	s := &Supervisor{}
	s.state.IsTranscoding = false
	s.state.SeekOffset = 0
	if s.state.IsTranscoding {
		t.Fatal("sanity check failed")
	}
	// A MEDIA_STATUS on a non-transcoded source updates CurrentTime but must
	// leave SeekOffset at zero.
	s.applyEvent(context.Background(), castwire.Event{
		Namespace: castproto.NamespaceMedia,
		Payload:   `{"type":"MEDIA_STATUS","status":[{"mediaSessionId":1,"playerState":"PLAYING","currentTime":42}]}`,
	})
	if s.state.SeekOffset != 0 {
		t.Fatalf("seek_offset = %v, want 0 when not transcoding", s.state.SeekOffset)
	}
	if s.state.CurrentTime != 42 {
		t.Fatalf("current_time = %v, want 42", s.state.CurrentTime)
	}
}
