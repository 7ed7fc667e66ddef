// Package transcode probes a media file's codecs via ffprobe, decides
// whether it needs re-encoding for the receiver's hard compatibility
// constraints, and supervises an ffmpeg child process that emits
// fragmented MP4 on its stdout. Grounded on
// _examples/original_source/src/transcode.rs, translated from tokio's
// Command into os/exec, and on the teacher's serveTranscoded ffmpeg
// invocation in internal/stream/server.go.
package transcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ProbeResult is ffprobe's first video/audio stream plus container
// duration. All fields are optional; an absent codec means the stream
// wasn't present, not that it was unrecognized.
type ProbeResult struct {
	VideoCodec   string
	VideoProfile string
	PixFmt       string
	AudioCodec   string
	Duration     float64 // seconds, 0 if unknown
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  *ffprobeFormat  `json:"format"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Profile   string `json:"profile"`
	PixFmt    string `json:"pix_fmt"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

var errProbeNotFound = errors.New("transcode: ffprobe not found, install ffmpeg")

// Probe shells out to ffprobe and parses its JSON report for path.
func Probe(ctx context.Context, path string) (ProbeResult, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return ProbeResult{}, errProbeNotFound
		}
		return ProbeResult{}, fmt.Errorf("transcode: ffprobe: %w", err)
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return ProbeResult{}, fmt.Errorf("transcode: parse ffprobe output: %w", err)
	}

	var r ProbeResult
	for _, s := range parsed.Streams {
		switch s.CodecType {
		case "video":
			if r.VideoCodec == "" {
				r.VideoCodec = s.CodecName
				r.VideoProfile = s.Profile
				r.PixFmt = s.PixFmt
			}
		case "audio":
			if r.AudioCodec == "" {
				r.AudioCodec = s.CodecName
			}
		}
	}
	if parsed.Format != nil && parsed.Format.Duration != "" {
		if d, err := strconv.ParseFloat(parsed.Format.Duration, 64); err == nil {
			r.Duration = d
		}
	}
	return r, nil
}

// NeedsTranscode applies the receiver's hard compatibility constraints:
// video must be 8-bit h264, audio must be aac or mp3.
func NeedsTranscode(p ProbeResult) bool {
	if p.VideoCodec != "" {
		if p.VideoCodec != "h264" {
			return true
		}
		if strings.Contains(p.PixFmt, "10le") || strings.Contains(p.PixFmt, "12le") || strings.Contains(p.PixFmt, "10be") {
			return true
		}
		if strings.Contains(p.VideoProfile, "High 10") ||
			strings.Contains(p.VideoProfile, "High 4:2:2") ||
			strings.Contains(p.VideoProfile, "High 4:4:4") {
			return true
		}
	}
	if p.AudioCodec != "" && p.AudioCodec != "aac" && p.AudioCodec != "mp3" {
		return true
	}
	return false
}

var probeTimeout = 10 * time.Second

// ProbeWithTimeout is Probe bounded by a default timeout, used by callers
// that don't already carry a deadline (e.g. the background torrent probe).
func ProbeWithTimeout(path string) (ProbeResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return Probe(ctx, path)
}
