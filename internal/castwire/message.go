// Package castwire implements the CASTV2 wire protocol: length-prefixed
// protobuf frames over a TLS socket, multiplexed across namespaces.
package castwire

import (
	"encoding/binary"
	"fmt"
)

// PayloadType mirrors the CastMessage.PayloadType enum on the wire.
type PayloadType int32

const (
	PayloadString PayloadType = 0
	PayloadBinary PayloadType = 1
)

// ProtocolVersion is the only value the core speaks: CASTV2_1_0.
const ProtocolVersion = 0

// Message is the CASTV2 CastMessage frame. Only the fields the core
// namespaces use are modeled; unknown wire fields are dropped on decode.
type Message struct {
	ProtocolVersion int32
	SourceID        string
	DestinationID   string
	Namespace       string
	PayloadType     PayloadType
	PayloadUTF8     string
	PayloadBinary   []byte
}

// field numbers from the real CASTV2 extensions.api.cast_channel.CastMessage
// schema (see _examples/original_source/src/proto for the layout this
// mirrors). google.golang.org/protobuf needs a generated descriptor we
// cannot produce without invoking protoc, so this is a small explicit
// encoder/decoder for this one fixed message shape.
const (
	fieldProtocolVersion = 1
	fieldSourceID        = 2
	fieldDestinationID   = 3
	fieldNamespace       = 4
	fieldPayloadType     = 5
	fieldPayloadUTF8     = 6
	fieldPayloadBinary   = 7
)

const (
	wireVarint = 0
	wireBytes  = 2
)

func tagByte(field int, wireType int) byte {
	return byte(field<<3 | wireType)
}

func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func appendLenDelim(buf []byte, field int, data []byte) []byte {
	buf = append(buf, tagByte(field, wireBytes))
	buf = appendVarint(buf, uint64(len(data)))
	return append(buf, data...)
}

func appendVarintField(buf []byte, field int, v uint64) []byte {
	buf = append(buf, tagByte(field, wireVarint))
	return appendVarint(buf, v)
}

// marshal serializes m using the CastMessage field layout above.
func marshal(m *Message) []byte {
	buf := make([]byte, 0, 64+len(m.PayloadUTF8)+len(m.PayloadBinary))
	buf = appendVarintField(buf, fieldProtocolVersion, uint64(m.ProtocolVersion))
	buf = appendLenDelim(buf, fieldSourceID, []byte(m.SourceID))
	buf = appendLenDelim(buf, fieldDestinationID, []byte(m.DestinationID))
	buf = appendLenDelim(buf, fieldNamespace, []byte(m.Namespace))
	buf = appendVarintField(buf, fieldPayloadType, uint64(m.PayloadType))
	switch m.PayloadType {
	case PayloadBinary:
		buf = appendLenDelim(buf, fieldPayloadBinary, m.PayloadBinary)
	default:
		buf = appendLenDelim(buf, fieldPayloadUTF8, []byte(m.PayloadUTF8))
	}
	return buf
}

func readVarint(data []byte, off int) (uint64, int, error) {
	var v uint64
	var shift uint
	for {
		if off >= len(data) {
			return 0, off, fmt.Errorf("castwire: truncated varint")
		}
		b := data[off]
		off++
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, off, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, off, fmt.Errorf("castwire: varint overflow")
		}
	}
}

// unmarshal parses a serialized CastMessage, tolerating unknown fields.
func unmarshal(data []byte) (*Message, error) {
	m := &Message{}
	off := 0
	for off < len(data) {
		tag, next, err := readVarint(data, off)
		if err != nil {
			return nil, ErrMalformedFrame
		}
		off = next
		field := int(tag >> 3)
		wireType := int(tag & 0x7)

		switch wireType {
		case wireVarint:
			v, next, err := readVarint(data, off)
			if err != nil {
				return nil, ErrMalformedFrame
			}
			off = next
			switch field {
			case fieldProtocolVersion:
				m.ProtocolVersion = int32(v)
			case fieldPayloadType:
				m.PayloadType = PayloadType(v)
			}
		case wireBytes:
			n, next, err := readVarint(data, off)
			if err != nil {
				return nil, ErrMalformedFrame
			}
			off = next
			if off+int(n) > len(data) {
				return nil, ErrMalformedFrame
			}
			chunk := data[off : off+int(n)]
			off += int(n)
			switch field {
			case fieldSourceID:
				m.SourceID = string(chunk)
			case fieldDestinationID:
				m.DestinationID = string(chunk)
			case fieldNamespace:
				m.Namespace = string(chunk)
			case fieldPayloadUTF8:
				m.PayloadUTF8 = string(chunk)
			case fieldPayloadBinary:
				m.PayloadBinary = append([]byte(nil), chunk...)
			}
		default:
			return nil, ErrMalformedFrame
		}
	}
	return m, nil
}

func putUint32BE(buf []byte, v uint32) {
	binary.BigEndian.PutUint32(buf, v)
}
