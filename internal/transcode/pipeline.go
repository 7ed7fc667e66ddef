package transcode

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Pipeline bundles a running ffmpeg child with its stdout; Kill tears it
// down when the HTTP layer installs a replacement source (spec.md §4.4
// "source swap semantics"). Grounded on the teacher's cmd.Start/cmd.Wait
// pairing in serveTranscoded, restructured so the caller can hold the
// stdout across an HTTP response lifetime instead of blocking in a single
// handler call.
type Pipeline struct {
	cmd    *exec.Cmd
	Stdout io.ReadCloser
	stderr *bytes.Buffer

	killOnce sync.Once
}

// Spawn starts ffmpeg reading from input (a media file path; nothing is
// connected to the child's stdin) and writing fragmented MP4 to stdout, seeking to
// startTime seconds first if nonzero. Grounded on
// _examples/original_source/src/transcode.rs's spawn_ffmpeg flag set.
func Spawn(input string, startTime float64) (*Pipeline, error) {
	args := []string{}
	if startTime > 0 {
		args = append(args, "-ss", strconv.FormatFloat(startTime, 'f', 3, 64))
	}
	args = append(args,
		"-i", input,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", "ultrafast",
		"-c:a", "aac",
		"-f", "mp4",
		"-movflags", "frag_keyframe+empty_moov+default_base_moof",
		"-y",
		"pipe:1",
	)

	cmd := exec.Command("ffmpeg", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("transcode: stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("transcode: start ffmpeg: %w", err)
	}

	p := &Pipeline{cmd: cmd, Stdout: stdout, stderr: &stderr}
	go p.reap()
	return p, nil
}

func (p *Pipeline) reap() {
	err := p.cmd.Wait()
	if err == nil {
		return
	}
	msg := p.stderr.String()
	if strings.Contains(msg, "Broken pipe") || strings.Contains(err.Error(), "signal: killed") {
		return
	}
	log.Warn().Err(err).Str("stderr", msg).Msg("transcode: ffmpeg exited with error")
}

// Kill terminates the encoder. Safe to call multiple times and safe to
// call after the process has already exited on its own.
func (p *Pipeline) Kill() {
	p.killOnce.Do(func() {
		if p.cmd.Process != nil {
			p.cmd.Process.Kill()
		}
	})
}
