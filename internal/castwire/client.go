package castwire

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// SenderID is the constant source_id the local sender addresses itself
	// with on every outbound message.
	SenderID = "sender-0"
	// ReceiverID is the default destination for platform-level messages.
	ReceiverID = "receiver-0"

	heartbeatInterval = 5 * time.Second
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
)

// Event is a decoded text frame broadcast to every subscriber.
type Event struct {
	Namespace string
	Payload   string
}

// Client is a cheap-to-duplicate handle onto a reconnecting Cast transport:
// a command-channel sender and an event-subscription factory. No cyclic
// references arise because the transport goroutine owns the only hard
// reference to the socket.
type Client struct {
	commandCh chan *Message
	requestID uint32

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// Connect starts the background transport loop and returns immediately; the
// loop itself performs the TCP+TLS dial and begins reconnecting on failure.
// ctx governs the lifetime of the whole transport: once it is cancelled the
// loop returns from its next select or backoff sleep. The command channel
// is never closed.
func Connect(ctx context.Context, host string, port int) *Client {
	c := &Client{
		commandCh: make(chan *Message, 32),
		subs:      make(map[int]chan Event),
	}
	go c.run(ctx, host, port)
	return c
}

// NextRequestID allocates a fresh, monotonically increasing request id.
// The original implementation reused requestId=1 for every outbound
// request, which made responses impossible to correlate; this is the
// fix spec.md calls for.
func (c *Client) NextRequestID() int {
	return int(atomic.AddUint32(&c.requestID, 1))
}

// Subscribe returns a channel of decoded events and an unsubscribe func.
// Multiple subscribers see the same stream; a slow subscriber drops events
// rather than blocking the transport loop.
func (c *Client) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	return ch, func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Client) broadcast(ev Event) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// slow subscriber: drop rather than stall the transport.
		}
	}
}

// Send enqueues a CastMessage for delivery on the current (or next)
// connection. Commands submitted on one connection are delivered in
// submission order; across a reconnect, queued commands are served by the
// new connection once it is established.
func (c *Client) Send(m *Message) error {
	select {
	case c.commandCh <- m:
		return nil
	default:
	}
	// channel momentarily full: block, but respect a closed channel.
	defer func() { recover() }()
	c.commandCh <- m
	return nil
}

// SendJSON builds a CastMessage addressed to destinationID on namespace ns
// with payload JSON-encoded from v, and enqueues it.
func (c *Client) SendJSON(destinationID, ns string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("castwire: encode payload: %w", err)
	}
	return c.Send(&Message{
		ProtocolVersion: ProtocolVersion,
		SourceID:        SenderID,
		DestinationID:   destinationID,
		Namespace:       ns,
		PayloadType:     PayloadString,
		PayloadUTF8:     string(body),
	})
}

// run owns the reconnect loop: dial, TLS handshake, then drive a single
// connection's I/O until it fails, then back off and retry. Backoff resets
// to the initial value after any successful handshake.
func (c *Client) run(ctx context.Context, host string, port int) {
	backoff := initialBackoff
	addr := fmt.Sprintf("%s:%d", host, port)

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, &tls.Config{
			InsecureSkipVerify: true, // Cast devices present self-signed certs we cannot validate.
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", addr).Dur("retry_in", backoff).Msg("cast transport dial failed")
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		log.Info().Str("addr", addr).Msg("cast transport connected")
		backoff = initialBackoff

		if err := c.drive(ctx, conn); err != nil {
			log.Warn().Err(err).Msg("cast transport connection lost, reconnecting")
		}
		conn.Close()

		if !sleepCtx(ctx, initialBackoff) {
			return
		}
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// drive multiplexes the heartbeat ticker, the command channel, and the
// socket reader over a single live connection. It returns once any of the
// three sources reports an unrecoverable I/O condition.
func (c *Client) drive(ctx context.Context, conn net.Conn) error {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	readErrCh := make(chan error, 1)
	frameCh := make(chan *Message, 32)
	readerDone := make(chan struct{})
	go c.readLoop(conn, frameCh, readErrCh, readerDone)
	defer func() {
		conn.Close()
		<-readerDone
	}()

	var encodeBuf []byte
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ping := &Message{
				ProtocolVersion: ProtocolVersion,
				SourceID:        SenderID,
				DestinationID:   ReceiverID,
				Namespace:       "urn:x-cast:com.google.cast.tp.heartbeat",
				PayloadType:     PayloadString,
				PayloadUTF8:     `{"type":"PING"}`,
			}
			encodeBuf = Encode(ping, encodeBuf[:0])
			if _, err := conn.Write(encodeBuf); err != nil {
				return err
			}
		case m, ok := <-c.commandCh:
			if !ok {
				return ErrChannelClosed
			}
			encodeBuf = Encode(m, encodeBuf[:0])
			if _, err := conn.Write(encodeBuf); err != nil {
				return err
			}
		case msg := <-frameCh:
			if msg.PayloadType == PayloadString {
				c.broadcast(Event{Namespace: msg.Namespace, Payload: msg.PayloadUTF8})
			}
		case err := <-readErrCh:
			return err
		}
	}
}

// readLoop accumulates socket bytes and drains complete frames, delivering
// each to frameCh in the order they were decoded.
func (c *Client) readLoop(conn net.Conn, frameCh chan<- *Message, errCh chan<- error, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 32*1024)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for {
				msg, consumed, decErr := Decode(buf)
				if decErr != nil {
					errCh <- decErr
					return
				}
				if msg == nil {
					break
				}
				buf = buf[consumed:]
				select {
				case frameCh <- msg:
				default:
					// Backpressure: block rather than drop a decoded frame,
					// the frame channel is only ever read by drive().
					frameCh <- msg
				}
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}
