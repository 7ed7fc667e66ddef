package torrentstream

import "errors"

var (
	ErrMetadataTimeout = errors.New("torrentstream: timed out waiting for metadata")
	ErrNoVideoFile     = errors.New("torrentstream: no video file found in torrent")
	ErrStalled         = errors.New("torrentstream: no progress for 30s")
)
