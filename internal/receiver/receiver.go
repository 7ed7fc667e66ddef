// Package receiver wraps the two-step DefaultMediaReceiver bootstrap:
// LAUNCH the app, wait for its RECEIVER_STATUS, then CONNECT to its
// transport id. Grounded on
// _examples/original_source/src/controllers/default_media_receiver.rs.
package receiver

import (
	"context"
	"time"

	"github.com/adntgv/castbox/internal/castproto"
	"github.com/adntgv/castbox/internal/castwire"
)

const launchTimeout = 15 * time.Second

// Session is a launched DefaultMediaReceiver application: the transport id
// media messages must be addressed to, plus the platform session id.
type Session struct {
	client      *castwire.Client
	AppID       string
	TransportID string
	SessionID   string
}

// Launch sends LAUNCH for the default media receiver app, waits for a
// matching RECEIVER_STATUS, and CONNECTs to its transport id. It returns
// castwire.ErrLaunchTimeout if no such status arrives within 15s.
func Launch(ctx context.Context, c *castwire.Client) (*Session, error) {
	return LaunchApp(ctx, c, castproto.DefaultMediaReceiverAppID)
}

// LaunchApp launches an arbitrary application id (used by the `launch`
// CLI subcommand to dump status for apps other than the media receiver).
func LaunchApp(ctx context.Context, c *castwire.Client, appID string) (*Session, error) {
	events, unsubscribe := c.Subscribe()
	defer unsubscribe()

	if err := castproto.LaunchApp(c, appID); err != nil {
		return nil, err
	}

	deadline := time.NewTimer(launchTimeout)
	defer deadline.Stop()

	for {
		select {
		case ev := <-events:
			if ev.Namespace != castproto.NamespaceReceiver {
				continue
			}
			status, ok := castproto.ParseReceiverStatus(ev.Payload)
			if !ok {
				continue
			}
			for _, app := range status.Applications {
				if app.AppID != appID {
					continue
				}
				if err := castproto.Connect(c, app.TransportID); err != nil {
					return nil, err
				}
				return &Session{
					client:      c,
					AppID:       appID,
					TransportID: app.TransportID,
					SessionID:   app.SessionID,
				}, nil
			}
		case <-deadline.C:
			return nil, castwire.ErrLaunchTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Load, Play, Pause, Stop, Seek route to the media namespace addressed at
// the launched application's transport id.

func (s *Session) Load(media castproto.MediaInformation, autoplay bool, currentTime float64) error {
	return castproto.Load(s.client, s.TransportID, media, autoplay, currentTime)
}

func (s *Session) Play(mediaSessionID int) error {
	return castproto.Play(s.client, s.TransportID, mediaSessionID)
}

func (s *Session) Pause(mediaSessionID int) error {
	return castproto.Pause(s.client, s.TransportID, mediaSessionID)
}

func (s *Session) Stop(mediaSessionID int) error {
	return castproto.Stop(s.client, s.TransportID, mediaSessionID)
}

func (s *Session) Seek(mediaSessionID int, currentTime float64) error {
	return castproto.Seek(s.client, s.TransportID, mediaSessionID, currentTime)
}

func (s *Session) GetStatus(mediaSessionID int) error {
	return castproto.GetStatus(s.client, s.TransportID, mediaSessionID)
}
