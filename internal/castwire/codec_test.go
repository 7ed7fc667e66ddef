package castwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() *Message {
	return &Message{
		ProtocolVersion: ProtocolVersion,
		SourceID:        SenderID,
		DestinationID:   ReceiverID,
		Namespace:       "urn:x-cast:com.google.cast.tp.heartbeat",
		PayloadType:     PayloadString,
		PayloadUTF8:     `{"type":"PING"}`,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	msg := sampleMessage()
	buf := Encode(msg, nil)

	require.Greater(t, len(buf), 4)
	length := int(uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]))
	assert.Equal(t, len(buf)-4, length)

	decoded, consumed, err := Decode(buf)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, len(buf), consumed)
	assert.Equal(t, msg.SourceID, decoded.SourceID)
	assert.Equal(t, msg.DestinationID, decoded.DestinationID)
	assert.Equal(t, msg.Namespace, decoded.Namespace)
	assert.Equal(t, msg.PayloadUTF8, decoded.PayloadUTF8)
}

func TestDecodePartialFrameIsIdempotent(t *testing.T) {
	msg := sampleMessage()
	full := Encode(msg, nil)

	split := len(full) / 2
	first, second := full[:split], full[split:]

	decoded, consumed, err := Decode(first)
	require.NoError(t, err)
	assert.Nil(t, decoded)
	assert.Equal(t, 0, consumed)

	// Deliver the rest: re-running Decode on the recombined buffer advances
	// exactly once and yields the original message.
	combined := append(append([]byte{}, first...), second...)
	decoded, consumed, err = Decode(combined)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, len(combined), consumed)
	assert.Equal(t, msg.PayloadUTF8, decoded.PayloadUTF8)
}

func TestDecodeNoBytesConsumedUntilFrameComplete(t *testing.T) {
	msg := sampleMessage()
	full := Encode(msg, nil)

	var buf []byte
	for i := 0; i < len(full)-1; i++ {
		buf = append(buf, full[i])
		decoded, consumed, err := Decode(buf)
		require.NoError(t, err)
		assert.Nil(t, decoded)
		assert.Equal(t, 0, consumed)
	}

	buf = append(buf, full[len(full)-1])
	decoded, consumed, err := Decode(buf)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, len(buf), consumed)
}

func TestDecodeBinaryPayload(t *testing.T) {
	msg := &Message{
		ProtocolVersion: ProtocolVersion,
		SourceID:        SenderID,
		DestinationID:   ReceiverID,
		Namespace:       "urn:x-cast:com.google.cast.media",
		PayloadType:     PayloadBinary,
		PayloadBinary:   []byte{0x01, 0x02, 0x03, 0x00, 0xff},
	}
	buf := Encode(msg, nil)
	decoded, _, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, msg.PayloadBinary, decoded.PayloadBinary)
}
