package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/castwire"
	"github.com/adntgv/castbox/internal/httpserve"
	"github.com/adntgv/castbox/internal/receiver"
	"github.com/adntgv/castbox/internal/source"
	"github.com/adntgv/castbox/internal/torrentstream"
)

// Config is the subset of CLI options (spec.md §6) the supervisor needs.
type Config struct {
	Host          string
	Port          int
	ServerBaseURL string // e.g. "http://192.168.1.20:8097"
	VolumeLevel   float64
	Loop          bool
	SeekForward   time.Duration
	SeekBackward  time.Duration
	SubtitlesPath string
}

// HistoryStore is the narrow persistence interface loadEntryAt and
// tickWatchdog consult for the --resume convenience flag. A nil store
// disables resume entirely. internal/historydb.DB is adapted to this
// interface at the cmd/castbox call site, since historydb's own methods
// return errors the supervisor only ever logs and moves past.
type HistoryStore interface {
	LoadPosition(key string) (position float64, ok bool)
	SavePosition(key string, position, duration float64)
}

// Supervisor is the single event loop that mutates State; other goroutines
// send it work through channels and read State only through Snapshot,
// under mu.
type Supervisor struct {
	cfg     Config
	client  *castwire.Client
	session *receiver.Session
	srv     *httpserve.Server
	torrent *torrentstream.Client
	history HistoryStore

	mu    sync.Mutex
	state State

	cmds      chan Command
	probeDone chan probeCompletion

	// currentReplace tears down whatever resource (ffmpeg child, torrent
	// session) backs the currently installed StreamSource.
	currentReplace func()
}

type probeCompletion struct {
	idx      int
	duration float64
	video    string
	audio    string
}

// New constructs a Supervisor for an already-launched receiver session and
// already-running HTTP server, over the classified playlist.
func New(cfg Config, client *castwire.Client, session *receiver.Session, srv *httpserve.Server, torrentClient *torrentstream.Client, playlist []source.MediaSource) *Supervisor {
	s := &Supervisor{
		cfg:       cfg,
		client:    client,
		session:   session,
		srv:       srv,
		torrent:   torrentClient,
		cmds:      make(chan Command, 8),
		probeDone: make(chan probeCompletion, 4),
	}
	s.state = State{
		Playlist:    playlist,
		Loop:        cfg.Loop,
		Status:      StatusIdle,
		VolumeLevel: cfg.VolumeLevel,
		Subtitles:   cfg.SubtitlesPath,
	}
	return s
}

// SetHistory attaches a resume-position store. Called before Run when
// --resume is set; left unset, resume lookups and saves are no-ops.
func (s *Supervisor) SetHistory(h HistoryStore) {
	s.history = h
}

// Commands returns the channel the TUI (or any other command source)
// sends user actions on.
func (s *Supervisor) Commands() chan<- Command {
	return s.cmds
}

// Snapshot returns a read-only copy of the current state for rendering.
func (s *Supervisor) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status:          s.state.Status,
		CurrentTime:     s.state.CurrentTime,
		TotalDuration:   s.state.TotalDuration,
		VolumeLevel:     s.state.VolumeLevel,
		IsMuted:         s.state.IsMuted,
		PlaylistLen:     len(s.state.Playlist),
		CurrentIdx:      s.state.CurrentIdx,
		IsTranscoding:   s.state.IsTranscoding,
		TorrentProgress: s.state.TorrentProgress,
	}
}

// Run is the supervisor's cooperative event loop, multiplexing the five
// sources spec.md §4.8 names: commands, wire events, the animation tick,
// the watchdog tick, and background-probe completions. It returns when ctx
// is cancelled or the user issues CmdQuit.
func (s *Supervisor) Run(ctx context.Context) error {
	events, unsubscribe := s.client.Subscribe()
	defer unsubscribe()

	anim := time.NewTicker(animationTick)
	defer anim.Stop()
	watchdog := time.NewTicker(watchdogTick)
	defer watchdog.Stop()

	if err := s.loadEntry(ctx, s.state.CurrentIdx); err != nil {
		log.Error().Err(err).Msg("supervisor: initial load failed")
	}

	for {
		select {
		case <-ctx.Done():
			s.teardownCurrent()
			return ctx.Err()

		case cmd := <-s.cmds:
			if cmd.Kind == CmdQuit {
				s.teardownCurrent()
				return nil
			}
			s.applyCommand(ctx, cmd)

		case ev := <-events:
			s.applyEvent(ctx, ev)

		case <-anim.C:
			s.mu.Lock()
			st := s.state.Status
			s.mu.Unlock()
			if st == StatusPlaying || st == StatusBuffering {
				s.tickAutoBuffer(ctx)
			}

		case <-watchdog.C:
			s.tickWatchdog(ctx)

		case pc := <-s.probeDone:
			s.applyProbeCompletion(pc)
		}
	}
}

func (s *Supervisor) applyEvent(ctx context.Context, ev castwire.Event) {
	if ev.Namespace == castproto.NamespaceReceiver {
		s.applyReceiverStatus(ev.Payload)
		return
	}
	if ev.Namespace != castproto.NamespaceMedia {
		return
	}
	statuses, ok := castproto.ParseMediaStatus(ev.Payload)
	if !ok || len(statuses) == 0 {
		return
	}
	ms := statuses[0]

	s.mu.Lock()
	s.state.MediaSessionID = ms.MediaSessionID
	if ms.Volume != nil {
		if ms.Volume.Level != nil {
			s.state.VolumeLevel = *ms.Volume.Level
		}
		if ms.Volume.Muted != nil {
			s.state.IsMuted = *ms.Volume.Muted
		}
	}
	if ms.CurrentTime != s.state.LastKnownTime {
		s.state.LastKnownTime = ms.CurrentTime
		s.state.LastUpdateAt = time.Now()
	}
	s.state.CurrentTime = ms.CurrentTime + s.state.SeekOffset
	s.mu.Unlock()

	switch ms.PlayerState {
	case castproto.PlayerPlaying:
		s.transition(ctx, StatusPlaying)
	case castproto.PlayerPaused:
		s.onPaused(ctx)
	case castproto.PlayerBuffering:
		s.onBuffering()
	case castproto.PlayerIdle:
		s.onIdle(ctx, ms.IdleReason)
	}
}

// applyReceiverStatus reconciles the optimistically-set volume/mute state
// (apply_command.go's setVolume/toggleMute) against the receiver's own
// report, per spec.md §4.8 "Volume".
func (s *Supervisor) applyReceiverStatus(payload string) {
	status, ok := castproto.ParseReceiverStatus(payload)
	if !ok || status.Volume == nil {
		return
	}
	s.mu.Lock()
	if status.Volume.Level != nil {
		s.state.VolumeLevel = *status.Volume.Level
	}
	if status.Volume.Muted != nil {
		s.state.IsMuted = *status.Volume.Muted
	}
	s.mu.Unlock()
}
