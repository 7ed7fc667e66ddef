package torrentstream

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/anacrolix/torrent"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
}

const metadataTimeout = 30 * time.Second

// Session is one added torrent, resolved down to its chosen video file. It
// implements source.ProgressProbe and source.PieceHinter so
// internal/source's GrowingFile can wait on it directly.
type Session struct {
	torrent *torrent.Torrent
	file    *torrent.File

	DiskPath    string
	FileSize    int64
	FileOffset  int64
	PieceLength int64
}

// Add adds a magnet URI or .torrent file path, waits for metadata (30s hard
// timeout), and resolves the largest file with a video extension.
// FileIndexOverride, if >= 0, selects that file index directly instead of
// picking the largest video file — the teacher's manual-selection escape
// hatch carried forward from internal/torrent/manager.go's session model.
func Add(ctx context.Context, c *Client, input string, fileIndexOverride int) (*Session, error) {
	t, err := addTorrent(c, input)
	if err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()
	select {
	case <-t.GotInfo():
	case <-waitCtx.Done():
		t.Drop()
		return nil, ErrMetadataTimeout
	}

	files := t.Files()
	var chosen *torrent.File
	if fileIndexOverride >= 0 && fileIndexOverride < len(files) {
		chosen = files[fileIndexOverride]
	} else {
		chosen = findLargestVideoFile(files)
	}
	if chosen == nil {
		t.Drop()
		return nil, ErrNoVideoFile
	}

	chosen.Download()

	return &Session{
		torrent:     t,
		file:        chosen,
		// storage.NewFileByInfoHash keeps each torrent under a directory
		// named by its info hash.
		DiskPath:    filepath.Join(c.dataDir, t.InfoHash().HexString(), chosen.Path()),
		FileSize:    chosen.Length(),
		FileOffset:  chosen.Offset(),
		PieceLength: int64(t.Info().PieceLength),
	}, nil
}

// BytesCompleted implements source.ProgressProbe.
func (s *Session) BytesCompleted() int64 {
	return s.file.BytesCompleted()
}

// WaitForPiece implements source.PieceHinter: it blocks until the torrent
// engine reports the piece at index complete.
func (s *Session) WaitForPiece(index int) {
	r := s.torrent.NewReader()
	defer r.Close()
	r.SetResponsive()

	pieceStart := int64(index) * s.PieceLength
	if pieceStart >= s.torrent.Length() {
		return
	}
	r.Seek(pieceStart, 0)
	one := make([]byte, 1)
	r.Read(one)
}

// Drop removes the torrent from the engine, discarding its data.
func (s *Session) Drop() {
	s.torrent.Drop()
}

// addTorrent adds a magnet URI or .torrent file path to the engine,
// dispatching on the input's shape the way the teacher's manager.go does.
func addTorrent(c *Client, input string) (*torrent.Torrent, error) {
	if strings.HasPrefix(input, "magnet:?") {
		return c.engine.AddMagnet(input)
	}
	return c.engine.AddTorrentFromFile(input)
}

func findLargestVideoFile(files []*torrent.File) *torrent.File {
	var largest *torrent.File
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.DisplayPath()))
		if !videoExtensions[ext] {
			continue
		}
		if largest == nil || f.Length() > largest.Length() {
			largest = f
		}
	}
	return largest
}
