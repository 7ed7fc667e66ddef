package castwire

import "errors"

// Sentinel errors the supervisor classifies against, replacing the
// thiserror enum in the original Rust implementation with Go's idiomatic
// wrapped-sentinel style (see error.rs in the retrieved reference tree).
var (
	ErrMalformedFrame  = errors.New("castwire: malformed frame")
	ErrLaunchTimeout   = errors.New("castwire: timed out waiting for receiver application to launch")
	ErrChannelClosed   = errors.New("castwire: command channel closed")
	ErrNotConnected    = errors.New("castwire: transport has no active connection")
)
