package source

import (
	"fmt"
	"io"
	"os"
)

// StreamKind tags which of the three StreamSource arms is active. The HTTP
// server's source is this tagged variant rather than a virtual interface;
// the read-seek byte stream Open returns is the only behavioral contract
// other components see (spec.md §9 "Dynamic dispatch").
type StreamKind int

const (
	KindStatic StreamKind = iota
	KindGrowing
	KindTranscoder
)

// StreamSource is the HTTP layer's single active source. At most one
// exists at a time; installing a new one atomically replaces it (see
// httpserve.Server.Install).
type StreamSource struct {
	Kind StreamKind

	// Static / Growing
	Path        string
	TotalSize   int64
	Progress    ProgressProbe
	FileOffset  int64
	PieceLength int64

	// Transcoder: Open just hands back the already-running pipeline's
	// stdout; there is exactly one reader regardless of how many HTTP
	// requests arrive, since ffmpeg only runs once per installed source.
	TranscoderStdout io.Reader

	// OnReplace is invoked when this source is swapped out for another; for
	// a Transcoder source it kills the child process. The supervisor also
	// calls the same teardown directly before loading the next entry, so it
	// can run more than once for one source.
	OnReplace func()
}

// OpenedStream is a byte stream the HTTP layer reads from. Static and
// Growing sources are additionally io.Seeker (checked at the call site via
// a type assertion) to support Range requests; Transcoder sources are not.
type OpenedStream interface {
	io.Reader
	io.Closer
}

// Open realizes the source as a byte stream for one incoming HTTP request.
// Static and Growing are opened fresh per request so concurrent Range
// requests don't conflict on seek position; Transcoder hands back the
// single shared stdout pipe.
func (s *StreamSource) Open() (OpenedStream, int64, error) {
	switch s.Kind {
	case KindStatic:
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, 0, fmt.Errorf("source: open static file: %w", err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("source: stat static file: %w", err)
		}
		return f, info.Size(), nil
	case KindGrowing:
		g, err := OpenGrowing(s.Path, s.TotalSize, s.Progress, s.FileOffset, s.PieceLength)
		if err != nil {
			return nil, 0, err
		}
		return g, s.TotalSize, nil
	case KindTranscoder:
		return nopCloser{s.TranscoderStdout}, 0, nil
	default:
		return nil, 0, fmt.Errorf("source: unknown stream kind %d", s.Kind)
	}
}

// IsChunked reports whether this source must be served with
// Transfer-Encoding: chunked rather than Content-Length/Range.
func (s *StreamSource) IsChunked() bool {
	return s.Kind == KindTranscoder
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }
