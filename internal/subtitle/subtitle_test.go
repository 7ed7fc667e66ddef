package subtitle

import (
	"strings"
	"testing"
)

func TestToVTT(t *testing.T) {
	srt := []byte("1\n00:00:01,000 --> 00:00:02,500\nHello\n")
	vtt := string(ToVTT(srt))

	if !strings.HasPrefix(vtt, "WEBVTT\n\n") {
		t.Fatalf("missing WEBVTT header: %q", vtt)
	}
	if !strings.Contains(vtt, "00:00:01.000 --> 00:00:02.500") {
		t.Fatalf("timestamps not converted: %q", vtt)
	}
	if strings.Contains(vtt, ",000") || strings.Contains(vtt, ",500") {
		t.Fatalf("commas remain in timestamps: %q", vtt)
	}
}
