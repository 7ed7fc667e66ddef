package castproto

import (
	"encoding/json"

	"github.com/adntgv/castbox/internal/castwire"
)

// Volume mirrors the receiver-level (and media-level) Volume payload.
type Volume struct {
	Level *float64 `json:"level,omitempty"`
	Muted *bool    `json:"muted,omitempty"`
}

// Application describes one running receiver application, as reported in
// RECEIVER_STATUS.
type Application struct {
	AppID        string `json:"appId"`
	DisplayName  string `json:"displayName"`
	SessionID    string `json:"sessionId"`
	TransportID  string `json:"transportId"`
	StatusText   string `json:"statusText"`
	IsIdleScreen bool   `json:"isIdleScreen"`
}

// ReceiverStatus is the payload carried by a RECEIVER_STATUS response.
type ReceiverStatus struct {
	RequestID    int           `json:"requestId"`
	Applications []Application `json:"applications"`
	Volume       *Volume       `json:"volume,omitempty"`
}

type receiverStatusEnvelope struct {
	Type   string         `json:"type"`
	Status ReceiverStatus `json:"status"`
}

// ParseReceiverStatus decodes a RECEIVER_STATUS payload, returning ok=false
// if the payload is a different message type on this namespace.
func ParseReceiverStatus(payload string) (ReceiverStatus, bool) {
	var env receiverStatusEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return ReceiverStatus{}, false
	}
	if env.Type != "RECEIVER_STATUS" {
		return ReceiverStatus{}, false
	}
	return env.Status, true
}

// LaunchApp sends LAUNCH for appID to the platform receiver.
func LaunchApp(c *castwire.Client, appID string) error {
	return c.SendJSON(castwire.ReceiverID, NamespaceReceiver, map[string]interface{}{
		"type":      "LAUNCH",
		"appId":     appID,
		"requestId": c.NextRequestID(),
	})
}

// GetReceiverStatus requests a RECEIVER_STATUS push.
func GetReceiverStatus(c *castwire.Client) error {
	return c.SendJSON(castwire.ReceiverID, NamespaceReceiver, map[string]interface{}{
		"type":      "GET_STATUS",
		"requestId": c.NextRequestID(),
	})
}

// SetVolume sets the platform-wide volume level (0..1).
func SetVolume(c *castwire.Client, level float64) error {
	return c.SendJSON(castwire.ReceiverID, NamespaceReceiver, map[string]interface{}{
		"type":      "SET_VOLUME",
		"requestId": c.NextRequestID(),
		"volume":    Volume{Level: &level},
	})
}

// SetMuted sets the platform-wide mute flag.
func SetMuted(c *castwire.Client, muted bool) error {
	return c.SendJSON(castwire.ReceiverID, NamespaceReceiver, map[string]interface{}{
		"type":      "SET_VOLUME",
		"requestId": c.NextRequestID(),
		"volume":    Volume{Muted: &muted},
	})
}

// StopApp tears down a running receiver application session.
func StopApp(c *castwire.Client, sessionID string) error {
	return c.SendJSON(castwire.ReceiverID, NamespaceReceiver, map[string]interface{}{
		"type":      "STOP",
		"requestId": c.NextRequestID(),
		"sessionId": sessionID,
	})
}
