// Package httpserve exposes the single active StreamSource as a seekable,
// range-aware HTTP byte stream, plus an optional WebVTT subtitle
// side-channel. Grounded on the teacher's internal/stream/server.go
// (http.ServeContent for direct serving, chunked relay for transcoded
// serving) generalized off gin's *gin.Context onto plain net/http so it can
// serve all three StreamSource kinds uniformly rather than only the
// torrent-backed ones the teacher wired it to.
package httpserve

import (
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/source"
)

// Server is the process-wide HTTP endpoint the receiver is pointed at via
// LOAD's contentId. Exactly one StreamSource is active at a time.
type Server struct {
	mu       sync.Mutex
	active   *source.StreamSource
	name     string // filename, for MIME inference
	vtt      string // pre-rendered subtitle blob, empty if none configured
	fileName string

	QueueDepth int
}

// NewServer constructs an httpserve.Server with no active source installed;
// requests to "/" before Install close with no body.
func NewServer() *Server {
	return &Server{}
}

// Install atomically swaps the active source. If a source was already
// active, its OnReplace callback (e.g. killing a running ffmpeg child)
// fires after the new one is in place.
func (s *Server) Install(src *source.StreamSource, fileName string) {
	s.mu.Lock()
	prev := s.active
	s.active = src
	s.fileName = fileName
	s.mu.Unlock()

	if prev != nil && prev.OnReplace != nil {
		prev.OnReplace()
	}
}

// InstallSubtitle sets the WebVTT blob served from /subtitle. Passing an
// empty string removes it.
func (s *Server) InstallSubtitle(vtt string) {
	s.mu.Lock()
	s.vtt = vtt
	s.mu.Unlock()
}

func (s *Server) snapshot() (*source.StreamSource, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.fileName
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/subtitle":
		s.serveSubtitle(w)
	case "/":
		s.serveActive(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) serveSubtitle(w http.ResponseWriter) {
	s.mu.Lock()
	vtt := s.vtt
	s.mu.Unlock()

	if vtt == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/vtt")
	w.Header().Set("Connection", "keep-alive")
	w.Write([]byte(vtt))
}

func (s *Server) serveActive(w http.ResponseWriter, r *http.Request) {
	active, name := s.snapshot()
	if active == nil {
		// No source installed: close with no body, the implicit 404
		// semantic spec.md describes.
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Content-Type", inferMIME(name))

	stream, size, err := active.Open()
	if err != nil {
		log.Error().Err(err).Msg("httpserve: open source failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if active.IsChunked() {
		s.serveChunked(w, stream)
		return
	}
	s.serveRanged(w, r, stream, size)
}

func (s *Server) serveChunked(w http.ResponseWriter, stream source.OpenedStream) {
	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	q := newChunkQueue(stream, s.QueueDepth)
	defer q.Close()

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, chunkSize)
	for {
		n, err := q.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) serveRanged(w http.ResponseWriter, r *http.Request, stream source.OpenedStream, size int64) {
	seeker, ok := stream.(io.Seeker)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	rng, partial := parseRange(r.Header.Get("Range"), size)
	if rng.Start < 0 || rng.End < rng.Start || rng.End >= size {
		rng = byteRange{Start: 0, End: size - 1}
		partial = false
	}

	if _, err := seeker.Seek(rng.Start, io.SeekStart); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	length := rng.End - rng.Start + 1
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))

	if partial {
		w.Header().Set("Content-Range", contentRangeHeader(rng, size))
		w.WriteHeader(http.StatusPartialContent)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if r.Method == http.MethodHead {
		return
	}

	q := newChunkQueue(stream, s.QueueDepth)
	defer q.Close()
	io.CopyN(w, q, length)
}

func contentRangeHeader(rng byteRange, size int64) string {
	return "bytes " + strconv.FormatInt(rng.Start, 10) + "-" + strconv.FormatInt(rng.End, 10) + "/" + strconv.FormatInt(size, 10)
}
