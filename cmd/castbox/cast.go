package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adntgv/castbox/internal/castwire"
	"github.com/adntgv/castbox/internal/config"
	"github.com/adntgv/castbox/internal/debugapi"
	"github.com/adntgv/castbox/internal/discovery"
	"github.com/adntgv/castbox/internal/historydb"
	"github.com/adntgv/castbox/internal/httpserve"
	"github.com/adntgv/castbox/internal/receiver"
	"github.com/adntgv/castbox/internal/source"
	"github.com/adntgv/castbox/internal/supervisor"
	"github.com/adntgv/castbox/internal/torrentstream"
	"github.com/adntgv/castbox/internal/tui"
)

const (
	castWirePort       = 8009
	discoverByNameWait = 10 * time.Second
)

func newCastCmd() *cobra.Command {
	var cast *config.Cast

	cmd := &cobra.Command{
		Use:   "cast [OPTIONS] <inputs...>",
		Short: "Cast one or more local files, URLs, magnets, or torrents to a device",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cast.Validate(); err != nil {
				return err
			}
			return runCast(cmd.Context(), cast, args)
		},
	}

	fs := pflag.NewFlagSet("cast", pflag.ContinueOnError)
	cast = config.BindCastFlags(fs)
	cmd.Flags().AddFlagSet(fs)

	return cmd
}

func runCast(ctx context.Context, cfg *config.Cast, inputs []string) error {
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	device, err := resolveDevice(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Str("device", device.FriendlyName).Str("ip", device.IP.String()).Msg("casting to device")

	client := castwire.Connect(ctx, device.IP.String(), device.Port)
	session, err := receiver.Launch(ctx, client)
	if err != nil {
		return fmt.Errorf("launch receiver: %w", err)
	}

	srv := httpserve.NewServer()
	localIP := cfg.MyIP
	if localIP == "" {
		localIP, err = outboundIP()
		if err != nil {
			return fmt.Errorf("determine local IP: %w", err)
		}
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", localIP, cfg.Port))
	if err != nil {
		return fmt.Errorf("bind http server: %w", err)
	}
	go func() {
		if err := httpServeOn(ln, srv); err != nil {
			log.Warn().Err(err).Msg("http server stopped")
		}
	}()
	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())

	torrentClient, err := torrentstream.NewClient()
	if err != nil {
		return fmt.Errorf("start torrent engine: %w", err)
	}
	defer torrentClient.Close()

	if cfg.DebugAPI {
		api := debugapi.New(torrentClient)
		go func() {
			if err := api.Run(ctx, fmt.Sprintf("%s:9090", localIP)); err != nil {
				log.Warn().Err(err).Msg("debug api stopped")
			}
		}()
	}

	var hist *historydb.DB
	if cfg.Resume {
		dbPath, err := historyDBPath()
		if err != nil {
			log.Warn().Err(err).Msg("could not resolve history db path, --resume disabled")
		} else if hist, err = historydb.Open(dbPath); err != nil {
			log.Warn().Err(err).Msg("could not open history db, --resume disabled")
			hist = nil
		}
	}
	if hist != nil {
		defer hist.Close()
	}

	playlist := make([]source.MediaSource, len(inputs))
	for i, in := range inputs {
		playlist[i] = source.Classify(in)
	}

	sup := supervisor.New(supervisor.Config{
		Host:          device.IP.String(),
		Port:          device.Port,
		ServerBaseURL: baseURL,
		VolumeLevel:   cfg.Volume,
		Loop:          cfg.Loop,
		SeekForward:   time.Duration(cfg.SeekForward) * time.Second,
		SeekBackward:  time.Duration(cfg.SeekBackward) * time.Second,
		SubtitlesPath: cfg.Subtitles,
	}, client, session, srv, torrentClient, playlist)

	if hist != nil {
		sup.SetHistory(&historyAdapter{db: hist})
	}

	runErr := make(chan error, 1)
	go func() { runErr <- sup.Run(ctx) }()

	if cfg.Quiet {
		select {
		case err := <-runErr:
			return err
		case <-ctx.Done():
			return nil
		}
	}

	model := tui.NewModel(sup, device.FriendlyName)
	program := tea.NewProgram(model)
	go func() {
		<-ctx.Done()
		program.Quit()
	}()
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func resolveDevice(ctx context.Context, cfg *config.Cast) (discovery.Device, error) {
	if cfg.IP != "" {
		return discovery.Device{IP: net.ParseIP(cfg.IP), Port: castWirePort, FriendlyName: cfg.IP}, nil
	}

	discoverCtx, cancel := context.WithTimeout(ctx, discoverByNameWait)
	defer cancel()

	devices, err := discovery.Discover(discoverCtx, discoverByNameWait)
	if err != nil {
		return discovery.Device{}, fmt.Errorf("discover: %w", err)
	}
	if len(devices) == 0 {
		return discovery.Device{}, fmt.Errorf("no Cast devices found on the network")
	}
	if cfg.Name == "" {
		return devices[0], nil
	}
	for _, d := range devices {
		if d.FriendlyName == cfg.Name {
			return d, nil
		}
	}
	return discovery.Device{}, fmt.Errorf("no device named %q found", cfg.Name)
}

func outboundIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

func historyDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "castbox")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
