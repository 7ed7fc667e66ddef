// Package config resolves the `cast` subcommand's options from cobra/pflag
// flags, falling back to CASTBOX_* environment variables for anything left
// unset. Grounded on the teacher's internal/config/config.go getEnv /
// getEnvInt idiom, generalized from the teacher's fixed env-only surface
// into flag-plus-env since spec.md §6 specifies a flag-driven CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Cast is the resolved option set for one `cast` invocation (spec.md §6
// "Options for cast").
type Cast struct {
	IP           string
	Name         string
	LogPath      string
	MyIP         string
	Port         int
	Subtitles    string
	Volume       float64
	Loop         bool
	Quiet        bool
	DebugAPI     bool
	Resume       bool
	SeekForward  int // seconds
	SeekBackward int // seconds
}

// BindCastFlags registers the cast subcommand's flags on fs, defaulting
// each to its CASTBOX_* environment variable when present.
func BindCastFlags(fs *pflag.FlagSet) *Cast {
	c := &Cast{}
	fs.StringVar(&c.IP, "ip", getEnv("CASTBOX_IP", ""), "Cast device IP (skip discovery)")
	fs.StringVar(&c.Name, "name", getEnv("CASTBOX_NAME", ""), "friendly name to match during discovery")
	fs.StringVar(&c.LogPath, "log", getEnv("CASTBOX_LOG", ""), "write logs to this path instead of stderr")
	fs.StringVar(&c.MyIP, "myip", getEnv("CASTBOX_MYIP", ""), "local IP to bind the HTTP server on")
	fs.IntVar(&c.Port, "port", getEnvInt("CASTBOX_PORT", 0), "HTTP server port (0 = ephemeral)")
	fs.StringVar(&c.Subtitles, "subtitles", getEnv("CASTBOX_SUBTITLES", ""), "path to an SRT subtitle file")
	fs.Float64Var(&c.Volume, "volume", getEnvFloat("CASTBOX_VOLUME", 1.0), "initial volume, 0..1")
	fs.BoolVar(&c.Loop, "loop", getEnvBool("CASTBOX_LOOP", false), "loop the playlist")
	fs.BoolVar(&c.Quiet, "quiet", getEnvBool("CASTBOX_QUIET", false), "suppress the TUI, log only")
	fs.BoolVar(&c.DebugAPI, "debug-api", getEnvBool("CASTBOX_DEBUG_API", false), "serve a debug HTTP API alongside playback")
	fs.BoolVar(&c.Resume, "resume", getEnvBool("CASTBOX_RESUME", false), "resume from the last saved watch position")
	fs.IntVar(&c.SeekForward, "seek-forward", getEnvInt("CASTBOX_SEEK_FORWARD", 30), "seconds to seek forward per key press")
	fs.IntVar(&c.SeekBackward, "seek-backward", getEnvInt("CASTBOX_SEEK_BACKWARD", 15), "seconds to seek backward per key press")
	return c
}

// Validate enforces the invariants the cast subcommand depends on.
func (c *Cast) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("config: --volume must be within 0..1, got %v", c.Volume)
	}
	if c.SeekForward <= 0 {
		return fmt.Errorf("config: --seek-forward must be positive, got %d", c.SeekForward)
	}
	if c.SeekBackward <= 0 {
		return fmt.Errorf("config: --seek-backward must be positive, got %d", c.SeekBackward)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
