package source

import (
	"fmt"
	"io"
	"os"
	"time"
)

const growingPollInterval = 200 * time.Millisecond

// ProgressProbe reports how many bytes of the torrent-backed file have
// landed on disk so far. torrentstream.Session implements this.
type ProgressProbe interface {
	BytesCompleted() int64
}

// PieceHinter is the forward-looking refinement spec.md describes: a probe
// that can wait precisely on the piece owning a byte range instead of
// polling blindly. torrentstream.Session implements this by reading through
// a responsive anacrolix/torrent reader positioned at the piece.
type PieceHinter interface {
	WaitForPiece(index int)
}

// GrowingFile is a read-seek view over a file whose total size is known a
// priori but whose contents are filled in concurrently by the torrent
// engine. Read blocks (via a bounded poll) rather than returning EOF when
// the position has caught up to what is currently on disk but not yet to
// the declared total size. Grounded on the wake-via-timer idiom in
// _examples/original_source/src/torrent/stream.rs's AsyncRead impl,
// translated into Go's synchronous io.Reader model.
type GrowingFile struct {
	f           *os.File
	TotalSize   int64
	FileOffset  int64
	PieceLength int64
	progress    ProgressProbe
	position    int64
}

// OpenGrowing opens path fresh (one handle per caller, so concurrent Range
// requests don't fight over a shared seek position) as a GrowingFile of
// totalSize bytes.
func OpenGrowing(path string, totalSize int64, progress ProgressProbe, fileOffset, pieceLength int64) (*GrowingFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open growing file: %w", err)
	}
	return &GrowingFile{
		f:           f,
		TotalSize:   totalSize,
		FileOffset:  fileOffset,
		PieceLength: pieceLength,
		progress:    progress,
	}, nil
}

// Read implements read-with-wait: on a read that returns zero bytes while
// position < TotalSize, it waits for more of the file to arrive rather
// than surfacing EOF to the caller.
func (g *GrowingFile) Read(p []byte) (int, error) {
	for {
		n, err := g.f.Read(p)
		if n > 0 {
			g.position += int64(n)
			return n, nil
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if g.position >= g.TotalSize {
			return 0, io.EOF
		}
		g.waitForMore()
	}
}

func (g *GrowingFile) waitForMore() {
	if hinter, ok := g.progress.(PieceHinter); ok && g.PieceLength > 0 {
		idx := int((g.position + g.FileOffset) / g.PieceLength)
		hinter.WaitForPiece(idx)
		return
	}
	time.Sleep(growingPollInterval)
}

// Seek delegates to the underlying file; the logical position tracks the
// file's new position afterward.
func (g *GrowingFile) Seek(offset int64, whence int) (int64, error) {
	pos, err := g.f.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	g.position = pos
	return pos, nil
}

func (g *GrowingFile) Close() error {
	return g.f.Close()
}
