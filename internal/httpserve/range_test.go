package httpserve

import "testing"

func TestParseRange(t *testing.T) {
	const size = 1000

	cases := []struct {
		name    string
		header  string
		want    byteRange
		partial bool
	}{
		{"prefix", "bytes=0-499", byteRange{0, 499}, true},
		{"tail", "bytes=500-", byteRange{500, 999}, true},
		{"suffix", "bytes=-500", byteRange{500, 999}, true},
		{"missing", "", byteRange{0, 999}, false},
		{"clamped", "bytes=0-9999", byteRange{0, 999}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, partial := parseRange(tc.header, size)
			if got != tc.want {
				t.Fatalf("parseRange(%q) = %+v, want %+v", tc.header, got, tc.want)
			}
			if partial != tc.partial {
				t.Fatalf("parseRange(%q) partial = %v, want %v", tc.header, partial, tc.partial)
			}
		})
	}
}

func TestInferMIME(t *testing.T) {
	cases := map[string]string{
		"video.mp4":   "video/mp4",
		"song.mp3":    "audio/mpeg",
		"image.jpg":   "image/jpeg",
		"unknown.xyz": "application/octet-stream",
		"noext":       "application/octet-stream",
	}
	for name, want := range cases {
		if got := inferMIME(name); got != want {
			t.Errorf("inferMIME(%q) = %q, want %q", name, got, want)
		}
	}
}
