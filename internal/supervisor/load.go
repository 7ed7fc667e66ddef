package supervisor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/httpserve"
	"github.com/adntgv/castbox/internal/source"
	"github.com/adntgv/castbox/internal/subtitle"
	"github.com/adntgv/castbox/internal/torrentstream"
	"github.com/adntgv/castbox/internal/transcode"
)

// loadEntry loads playlist entry idx from the beginning.
func (s *Supervisor) loadEntry(ctx context.Context, idx int) error {
	s.teardownCurrent()
	return s.loadEntryAt(ctx, idx, 0)
}

// loadEntryAt realizes playlist entry idx as an HTTP-served (or
// directly-addressed) StreamSource, installs it, and sends LOAD starting
// at startTime (at 0 for a transcoded stream, whose encoder already starts
// at startTime). This is the Go counterpart of load_media() in
// _examples/original_source/src/app.rs, split by MediaSource kind instead
// of one long match arm.
func (s *Supervisor) loadEntryAt(ctx context.Context, idx int, startTime float64) error {
	s.mu.Lock()
	entry := s.state.Playlist[idx]
	subtitlesPath := s.state.Subtitles
	s.mu.Unlock()

	if startTime == 0 && s.history != nil {
		if saved, ok := s.history.LoadPosition(entry.Value); ok {
			startTime = saved
		}
	}

	var (
		contentID     string
		contentType   string
		isTranscoding bool
		duration      float64
	)

	switch entry.Kind {
	case source.KindMagnet, source.KindTorrentFile:
		sess, err := torrentstream.Add(ctx, s.torrent, entry.Value, -1)
		if err != nil {
			return fmt.Errorf("supervisor: add torrent: %w", err)
		}
		if err := torrentstream.WaitEarlyPlayback(ctx, sess); err != nil {
			sess.Drop()
			return fmt.Errorf("supervisor: early playback gate: %w", err)
		}

		streamSrc := &source.StreamSource{
			Kind:        source.KindGrowing,
			Path:        sess.DiskPath,
			TotalSize:   sess.FileSize,
			Progress:    sess,
			FileOffset:  sess.FileOffset,
			PieceLength: sess.PieceLength,
			OnReplace:   sess.Drop,
		}
		s.srv.Install(streamSrc, filepath.Base(sess.DiskPath))

		s.mu.Lock()
		s.currentReplace = sess.Drop
		s.state.TorrentSession = sess
		s.mu.Unlock()

		go torrentstream.BackgroundProbe(ctx, sess, func(pr transcode.ProbeResult) {
			select {
			case s.probeDone <- probeCompletion{idx: idx, duration: pr.Duration, video: pr.VideoCodec, audio: pr.AudioCodec}:
			default:
			}
		})

		contentID = s.cfg.ServerBaseURL + "/"
		contentType = httpserve.InferMIME(sess.DiskPath)

	case source.KindFilePath:
		probe, probeErr := transcode.ProbeWithTimeout(entry.Value)
		needs := probeErr == nil && transcode.NeedsTranscode(probe)
		if probeErr != nil {
			log.Warn().Err(probeErr).Str("path", entry.Value).Msg("supervisor: probe failed, assuming compatible")
		} else {
			duration = probe.Duration
		}

		if needs {
			pipeline, err := transcode.Spawn(entry.Value, startTime)
			if err != nil {
				return fmt.Errorf("supervisor: spawn encoder: %w", err)
			}
			streamSrc := &source.StreamSource{
				Kind:             source.KindTranscoder,
				TranscoderStdout: pipeline.Stdout,
				OnReplace:        pipeline.Kill,
			}
			s.srv.Install(streamSrc, entry.Value)
			s.mu.Lock()
			s.currentReplace = pipeline.Kill
			s.mu.Unlock()
			isTranscoding = true
		} else {
			streamSrc := &source.StreamSource{Kind: source.KindStatic, Path: entry.Value}
			s.srv.Install(streamSrc, entry.Value)
			s.mu.Lock()
			s.currentReplace = nil
			s.mu.Unlock()
		}
		contentID = s.cfg.ServerBaseURL + "/"
		contentType = httpserve.InferMIME(entry.Value)

	case source.KindURL:
		contentID = entry.Value
		contentType = httpserve.InferMIME(entry.Value)

	default:
		return fmt.Errorf("supervisor: unhandled media kind %v", entry.Kind)
	}

	media := castproto.MediaInformation{
		ContentID:   contentID,
		StreamType:  "BUFFERED",
		ContentType: contentType,
	}
	if subtitlesPath != "" {
		if vtt, err := subtitle.LoadVTT(subtitlesPath); err != nil {
			log.Warn().Err(err).Msg("supervisor: load subtitles failed")
		} else {
			s.srv.InstallSubtitle(vtt)
			media.Tracks = []castproto.Track{{
				TrackID:          1,
				Type:             "TEXT",
				TrackContentID:   s.cfg.ServerBaseURL + "/subtitle",
				TrackContentType: "text/vtt",
				Name:             "Subtitles",
				Subtype:          "SUBTITLES",
			}}
		}
	}

	// A transcoded stream already begins at startTime (the encoder was
	// spawned with -ss), so the receiver loads it from 0 and SeekOffset
	// carries the difference.
	remoteStart := startTime
	if isTranscoding {
		remoteStart = 0
	}
	if err := s.session.Load(media, true, remoteStart); err != nil {
		return fmt.Errorf("supervisor: send LOAD: %w", err)
	}

	s.mu.Lock()
	s.state.CurrentIdx = idx
	s.state.IsTranscoding = isTranscoding
	if isTranscoding {
		s.state.SeekOffset = startTime
	} else {
		s.state.SeekOffset = 0
	}
	s.state.CurrentTime = startTime
	s.state.Status = StatusBuffering
	s.state.LastUpdateAt = time.Now()
	s.state.PauseStartAt = time.Time{}
	if duration > 0 {
		s.state.TotalDuration = duration
	}
	s.mu.Unlock()
	return nil
}

// teardownCurrent releases whatever resource backs the currently installed
// source (encoder child or torrent session), if any.
func (s *Supervisor) teardownCurrent() {
	s.mu.Lock()
	replace := s.currentReplace
	s.currentReplace = nil
	s.state.TorrentSession = nil
	s.mu.Unlock()

	if replace != nil {
		replace()
	}
}
