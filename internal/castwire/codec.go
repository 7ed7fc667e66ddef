package castwire

// Encode appends the framed wire representation of m (4-byte big-endian
// length prefix followed by the serialized message) to buf and returns the
// extended slice.
func Encode(m *Message, buf []byte) []byte {
	body := marshal(m)
	header := make([]byte, 4)
	putUint32BE(header, uint32(len(body)))
	buf = append(buf, header...)
	return append(buf, body...)
}

// Decode consumes exactly one full frame from the front of buf and returns
// the decoded message plus the number of bytes consumed. If buf holds fewer
// than 4+len bytes, it returns (nil, 0, nil) without consuming anything so
// callers can retry once more bytes arrive. A declared length that does not
// parse as a valid message yields ErrMalformedFrame.
func Decode(buf []byte) (*Message, int, error) {
	if len(buf) < 4 {
		return nil, 0, nil
	}
	length := int(uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]))
	if len(buf) < 4+length {
		return nil, 0, nil
	}
	msg, err := unmarshal(buf[4 : 4+length])
	if err != nil {
		return nil, 0, err
	}
	return msg, 4 + length, nil
}
