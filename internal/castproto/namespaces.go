// Package castproto defines the JSON message schemas for the four CASTV2
// namespaces the core speaks, and thin convenience senders that build a
// castwire.Message and hand it to a castwire.Client.
package castproto

const (
	NamespaceConnection = "urn:x-cast:com.google.cast.tp.connection"
	NamespaceHeartbeat  = "urn:x-cast:com.google.cast.tp.heartbeat"
	NamespaceReceiver   = "urn:x-cast:com.google.cast.receiver"
	NamespaceMedia      = "urn:x-cast:com.google.cast.media"
)

// DefaultMediaReceiverAppID is the well-known app id for the stock
// Chromecast media player used to play arbitrary URLs.
const DefaultMediaReceiverAppID = "CC1AD845"
