package castproto

import "github.com/adntgv/castbox/internal/castwire"

// Pong answers a heartbeat PING from the receiver. The transport loop sends
// its own PING on a 5s ticker; Pong exists for the rarer case where the
// receiver pings first and expects an answer on the same namespace.
func Pong(c *castwire.Client, destinationID string) error {
	return c.SendJSON(destinationID, NamespaceHeartbeat, map[string]string{"type": "PONG"})
}
