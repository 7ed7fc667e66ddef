package castproto

import "github.com/adntgv/castbox/internal/castwire"

// Connect sends a transport-level CONNECT to destinationID, establishing a
// virtual connection on top of the shared TCP/TLS socket.
func Connect(c *castwire.Client, destinationID string) error {
	return c.SendJSON(destinationID, NamespaceConnection, map[string]string{"type": "CONNECT"})
}

// Close sends a transport-level CLOSE to destinationID.
func Close(c *castwire.Client, destinationID string) error {
	return c.SendJSON(destinationID, NamespaceConnection, map[string]string{"type": "CLOSE"})
}
