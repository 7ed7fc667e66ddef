package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adntgv/castbox/internal/supervisor"
)

const pollInterval = 200 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the single playback-screen Bubble Tea model. It owns no
// supervisor state directly — every frame it renders from the latest
// Snapshot polled on a timer, and every key press it translates into a
// supervisor.Command sent on the (buffered, non-blocking) commands channel.
type Model struct {
	sup      *supervisor.Supervisor
	cmds     chan<- supervisor.Command
	snapshot supervisor.Snapshot
	spinner  spinner.Model
	quitting bool
	width    int
	name     string
}

// NewModel builds a Model bound to a running Supervisor.
func NewModel(sup *supervisor.Supervisor, deviceName string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = bufferingStyle
	return Model{
		sup:     sup,
		cmds:    sup.Commands(),
		spinner: sp,
		name:    deviceName,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.snapshot = m.sup.Snapshot()
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.send(supervisor.Command{Kind: supervisor.CmdQuit})
		return m, tea.Quit
	case " ":
		m.send(supervisor.Command{Kind: supervisor.CmdPlayPause})
	case "s":
		m.send(supervisor.Command{Kind: supervisor.CmdStop})
	case "right", "l":
		m.send(supervisor.Command{Kind: supervisor.CmdSeekForward})
	case "left", "h":
		m.send(supervisor.Command{Kind: supervisor.CmdSeekBackward})
	case "n":
		m.send(supervisor.Command{Kind: supervisor.CmdNext})
	case "p":
		m.send(supervisor.Command{Kind: supervisor.CmdPrev})
	case "+", "=":
		m.send(supervisor.Command{Kind: supervisor.CmdVolumeUp})
	case "-", "_":
		m.send(supervisor.Command{Kind: supervisor.CmdVolumeDown})
	case "m":
		m.send(supervisor.Command{Kind: supervisor.CmdMute})
	case "r":
		m.send(supervisor.Command{Kind: supervisor.CmdReconnect})
	}
	return m, nil
}

// send enqueues a command without blocking the render loop; the
// supervisor's command channel is buffered, and a dropped key press under
// backpressure is preferable to freezing the UI.
func (m Model) send(cmd supervisor.Command) {
	select {
	case m.cmds <- cmd:
	default:
	}
}
