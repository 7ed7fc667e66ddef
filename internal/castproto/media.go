package castproto

import (
	"encoding/json"

	"github.com/adntgv/castbox/internal/castwire"
)

// PlayerState is the MEDIA_STATUS playback state.
type PlayerState string

const (
	PlayerIdle       PlayerState = "IDLE"
	PlayerPlaying    PlayerState = "PLAYING"
	PlayerPaused     PlayerState = "PAUSED"
	PlayerBuffering  PlayerState = "BUFFERING"
)

// IdleReason qualifies an IDLE player state.
type IdleReason string

const (
	IdleFinished    IdleReason = "FINISHED"
	IdleError       IdleReason = "ERROR"
	IdleInterrupted IdleReason = "INTERRUPTED"
	IdleCancelled   IdleReason = "CANCELLED"
	IdleNone        IdleReason = ""
)

// Track is one text/audio/video track referenced from MediaInformation.
type Track struct {
	TrackID          int    `json:"trackId"`
	Type             string `json:"type"`
	TrackContentID   string `json:"trackContentId,omitempty"`
	TrackContentType string `json:"trackContentType,omitempty"`
	Name             string `json:"name,omitempty"`
	Language         string `json:"language,omitempty"`
	Subtype          string `json:"subtype,omitempty"`
}

// MediaMetadata is the generic/movie metadata block on MediaInformation.
type MediaMetadata struct {
	MetadataType int    `json:"metadataType"`
	Title        string `json:"title,omitempty"`
	Subtitle     string `json:"subtitle,omitempty"`
}

// MediaInformation describes the content being LOADed.
type MediaInformation struct {
	ContentID   string         `json:"contentId"`
	StreamType  string         `json:"streamType"`
	ContentType string         `json:"contentType"`
	Metadata    *MediaMetadata `json:"metadata,omitempty"`
	Tracks      []Track        `json:"tracks,omitempty"`
}

// MediaStatus is one entry of a MEDIA_STATUS push.
type MediaStatus struct {
	MediaSessionID         int         `json:"mediaSessionId"`
	PlaybackRate           float64     `json:"playbackRate"`
	PlayerState            PlayerState `json:"playerState"`
	CurrentTime            float64     `json:"currentTime"`
	SupportedMediaCommands int         `json:"supportedMediaCommands"`
	Volume                 *Volume     `json:"volume,omitempty"`
	IdleReason             IdleReason  `json:"idleReason,omitempty"`
}

type mediaStatusEnvelope struct {
	Type      string        `json:"type"`
	RequestID int           `json:"requestId"`
	Status    []MediaStatus `json:"status"`
}

// ParseMediaStatus decodes a MEDIA_STATUS payload. ok is false if the
// payload is some other media-namespace message (e.g. an error response).
func ParseMediaStatus(payload string) ([]MediaStatus, bool) {
	var env mediaStatusEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, false
	}
	if env.Type != "MEDIA_STATUS" {
		return nil, false
	}
	return env.Status, true
}

// Load sends LOAD addressed to transportID, instructing the receiver to
// start playing media from currentTime (used to resume a directly served
// source at a saved or sought position; a transcoded stream is loaded at 0
// because its encoder already starts at the offset).
func Load(c *castwire.Client, transportID string, media MediaInformation, autoplay bool, currentTime float64) error {
	return c.SendJSON(transportID, NamespaceMedia, map[string]interface{}{
		"type":        "LOAD",
		"requestId":   c.NextRequestID(),
		"media":       media,
		"autoplay":    autoplay,
		"currentTime": currentTime,
	})
}

// Play resumes the named media session.
func Play(c *castwire.Client, transportID string, mediaSessionID int) error {
	return c.SendJSON(transportID, NamespaceMedia, map[string]interface{}{
		"type":           "PLAY",
		"requestId":      c.NextRequestID(),
		"mediaSessionId": mediaSessionID,
	})
}

// Pause pauses the named media session.
func Pause(c *castwire.Client, transportID string, mediaSessionID int) error {
	return c.SendJSON(transportID, NamespaceMedia, map[string]interface{}{
		"type":           "PAUSE",
		"requestId":      c.NextRequestID(),
		"mediaSessionId": mediaSessionID,
	})
}

// Stop stops the named media session.
func Stop(c *castwire.Client, transportID string, mediaSessionID int) error {
	return c.SendJSON(transportID, NamespaceMedia, map[string]interface{}{
		"type":           "STOP",
		"requestId":      c.NextRequestID(),
		"mediaSessionId": mediaSessionID,
	})
}

// Seek sends an absolute-time SEEK for the named media session.
func Seek(c *castwire.Client, transportID string, mediaSessionID int, currentTime float64) error {
	return c.SendJSON(transportID, NamespaceMedia, map[string]interface{}{
		"type":           "SEEK",
		"requestId":      c.NextRequestID(),
		"mediaSessionId": mediaSessionID,
		"currentTime":    currentTime,
	})
}

// GetStatus requests a MEDIA_STATUS push for mediaSessionID (0 = all
// sessions on this transport).
func GetStatus(c *castwire.Client, transportID string, mediaSessionID int) error {
	payload := map[string]interface{}{
		"type":      "GET_STATUS",
		"requestId": c.NextRequestID(),
	}
	if mediaSessionID > 0 {
		payload["mediaSessionId"] = mediaSessionID
	}
	return c.SendJSON(transportID, NamespaceMedia, payload)
}
