package tui

import (
	"fmt"
	"strings"

	"github.com/adntgv/castbox/internal/supervisor"
)

func (m Model) View() string {
	if m.quitting {
		return dimStyle.Render("bye\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("castbox"))
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(m.name))
	b.WriteString("\n\n")

	b.WriteString(statusLine(m.snapshot.Status))
	if m.snapshot.Status == supervisor.StatusBuffering || m.snapshot.Status == supervisor.StatusWaiting {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(normalStyle.Render(fmt.Sprintf("  Track %d / %d", m.snapshot.CurrentIdx+1, m.snapshot.PlaylistLen)))
	b.WriteString("\n")

	if m.snapshot.TotalDuration > 0 {
		b.WriteString(normalStyle.Render(fmt.Sprintf("  Time: %s / %s",
			formatDuration(m.snapshot.CurrentTime), formatDuration(m.snapshot.TotalDuration))))
		b.WriteString("\n")
		b.WriteString("  " + progressBar(m.snapshot.CurrentTime/m.snapshot.TotalDuration*100, 40))
		b.WriteString("\n")
	}

	if m.snapshot.TorrentProgress > 0 {
		b.WriteString(normalStyle.Render(fmt.Sprintf("  Buffer: %.1f%%", m.snapshot.TorrentProgress)))
		b.WriteString("\n")
	}

	muted := ""
	if m.snapshot.IsMuted {
		muted = " (muted)"
	}
	b.WriteString(normalStyle.Render(fmt.Sprintf("  Volume: %.0f%%%s", m.snapshot.VolumeLevel*100, muted)))
	if m.snapshot.IsTranscoding {
		b.WriteString(dimStyle.Render("  [transcoding]"))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("space: play/pause  s: stop  h/l: seek  n/p: track  +/-: volume  m: mute  r: reconnect  q: quit"))
	return b.String()
}

func statusLine(status supervisor.Status) string {
	label := fmt.Sprintf("  Status: %s", status)
	switch status {
	case supervisor.StatusPlaying:
		return playingStyle.Render(label)
	case supervisor.StatusBuffering, supervisor.StatusWaiting:
		return bufferingStyle.Render(label)
	case supervisor.StatusReconnecting:
		return errorStyle.Render(label)
	default:
		return statusStyle.Render(label)
	}
}

func progressBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return progressFullStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	min := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}
