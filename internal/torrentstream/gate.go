package torrentstream

import (
	"context"
	"time"
)

const (
	earlyPlaybackPercent  = 3.0
	earlyPlaybackMinBytes = 10 * 1024 * 1024
	gatePollInterval      = 500 * time.Millisecond
	stallTimeout          = 30 * time.Second
)

// WaitEarlyPlayback blocks until the session has enough of the file on disk
// to safely begin serving it: at least 3% downloaded, at least 10 MiB
// downloaded, or fully complete. It fails with ErrStalled if progress does
// not advance for 30s.
func WaitEarlyPlayback(ctx context.Context, s *Session) error {
	ticker := time.NewTicker(gatePollInterval)
	defer ticker.Stop()

	var lastBytes int64
	lastProgressAt := time.Now()

	for {
		have := s.BytesCompleted()
		pct := percent(have, s.FileSize)

		if pct >= 100 || have >= earlyPlaybackMinBytes || pct >= earlyPlaybackPercent {
			return nil
		}

		if have > lastBytes {
			lastBytes = have
			lastProgressAt = time.Now()
		} else if time.Since(lastProgressAt) > stallTimeout {
			return ErrStalled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
