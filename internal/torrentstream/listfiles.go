package torrentstream

import (
	"context"
)

// FileInfo describes one file inside a torrent, for manual-selection
// tooling (the debug API's GET /debug/torrents/files) to present before the
// caller picks a FileIndexOverride for Add.
type FileInfo struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Size  int64  `json:"size"`
}

// ListFiles adds input (a magnet URI or .torrent file path) just long
// enough to read its metadata, then drops it without downloading any
// piece. It never selects a file the way Add does; it only reports what
// is available so a caller can choose a FileIndexOverride.
func ListFiles(ctx context.Context, c *Client, input string) ([]FileInfo, error) {
	waitCtx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	t, err := addTorrent(c, input)
	if err != nil {
		return nil, err
	}
	defer t.Drop()

	select {
	case <-t.GotInfo():
	case <-waitCtx.Done():
		return nil, ErrMetadataTimeout
	}

	files := t.Files()
	out := make([]FileInfo, len(files))
	for i, f := range files {
		out[i] = FileInfo{Index: i, Path: f.DisplayPath(), Size: f.Length()}
	}
	return out, nil
}
