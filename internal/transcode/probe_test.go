package transcode

import "testing"

func TestNeedsTranscode(t *testing.T) {
	cases := []struct {
		name string
		in   ProbeResult
		want bool
	}{
		{"compatible h264/aac", ProbeResult{VideoCodec: "h264", PixFmt: "yuv420p", AudioCodec: "aac"}, false},
		{"compatible h264/mp3", ProbeResult{VideoCodec: "h264", PixFmt: "yuv420p", AudioCodec: "mp3"}, false},
		{"hevc video", ProbeResult{VideoCodec: "hevc", AudioCodec: "aac"}, true},
		{"10-bit pix_fmt", ProbeResult{VideoCodec: "h264", PixFmt: "yuv420p10le", AudioCodec: "aac"}, true},
		{"high10 profile", ProbeResult{VideoCodec: "h264", VideoProfile: "High 10", AudioCodec: "aac"}, true},
		{"ac3 audio", ProbeResult{VideoCodec: "h264", PixFmt: "yuv420p", AudioCodec: "ac3"}, true},
		{"video only, no audio stream", ProbeResult{VideoCodec: "h264", PixFmt: "yuv420p"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsTranscode(tc.in); got != tc.want {
				t.Errorf("NeedsTranscode(%+v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
