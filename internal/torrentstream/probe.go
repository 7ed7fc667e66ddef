package torrentstream

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/transcode"
)

const (
	backgroundProbeMinBytes = 5 * 1024 * 1024
	backgroundProbeSettle   = 2 * time.Second
)

// BackgroundProbe waits until at least 5 MiB has landed on disk, lets it
// settle for 2s, then probes the file and delivers the result to onDone.
// Grounded on the teacher's Manager.probeMedia goroutine, generalized to
// probe the file path directly (now that Download has started writing it
// to DiskPath) rather than piping a torrent reader into ffprobe's stdin.
func BackgroundProbe(ctx context.Context, s *Session, onDone func(transcode.ProbeResult)) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.BytesCompleted() >= backgroundProbeMinBytes {
				goto settle
			}
		}
	}

settle:
	select {
	case <-ctx.Done():
		return
	case <-time.After(backgroundProbeSettle):
	}

	result, err := transcode.ProbeWithTimeout(s.DiskPath)
	if err != nil {
		log.Warn().Err(err).Str("path", s.DiskPath).Msg("torrentstream: background probe failed")
		return
	}
	onDone(result)
}
