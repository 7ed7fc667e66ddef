// Package tui renders a single playback screen for the supervisor's state
// snapshot and forwards key presses back as supervisor commands. Grounded
// on the bubbletea/bubbles/lipgloss Model in
// _examples/other_examples/e6fe038b_enrell-just-stream__tui-tui.go.go,
// reduced to one screen (the teacher's screenPlaying) since castbox has no
// file-picker or config screen to navigate between.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6AC1"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9B9B9B"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4D4D4"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7EC8E3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	progressFullStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6AC1"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#333333"))

	playingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B")).
			Bold(true)

	bufferingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))
)
