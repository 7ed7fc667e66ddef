package httpserve

import (
	"strconv"
	"strings"
)

// byteRange is an inclusive [Start, End] byte range already clamped to a
// known file size.
type byteRange struct {
	Start, End int64
}

// parseRange implements the `Range: bytes=...` grammar spec.md requires:
// "start-end", "start-" (tail), "-suffix" (last N bytes). An absent or
// unparsable header yields the full [0, size-1] range. Any parsed range is
// clamped to the file's bound.
func parseRange(header string, size int64) (byteRange, bool) {
	full := byteRange{Start: 0, End: size - 1}
	if header == "" {
		return full, false
	}
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return full, false
	}
	spec := strings.TrimPrefix(header, prefix)
	// Only the first range of a (possibly multi-range) header is honored.
	if i := strings.Index(spec, ","); i >= 0 {
		spec = spec[:i]
	}
	spec = strings.TrimSpace(spec)

	dash := strings.Index(spec, "-")
	if dash < 0 {
		return full, false
	}
	startStr, endStr := spec[:dash], spec[dash+1:]

	switch {
	case startStr == "" && endStr != "":
		// "-suffix": last N bytes.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 {
			return full, false
		}
		if n > size {
			n = size
		}
		return byteRange{Start: size - n, End: size - 1}, true
	case startStr != "" && endStr == "":
		// "start-": tail from start.
		start, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil || start < 0 || start >= size {
			return full, false
		}
		return byteRange{Start: start, End: size - 1}, true
	case startStr != "" && endStr != "":
		start, err1 := strconv.ParseInt(startStr, 10, 64)
		end, err2 := strconv.ParseInt(endStr, 10, 64)
		if err1 != nil || err2 != nil || start < 0 || start > end || start >= size {
			return full, false
		}
		if end >= size {
			end = size - 1
		}
		return byteRange{Start: start, End: end}, true
	default:
		return full, false
	}
}
