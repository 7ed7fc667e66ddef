// Package subtitle converts a local SRT file into the WebVTT blob the
// httpserve /subtitle endpoint serves. Grounded on srtToVTT in the
// teacher's internal/subtitle/opensubtitles.go; the OpenSubtitles REST
// client that used to wrap it is dropped since --subtitles
// takes a local path, not a search query.
package subtitle

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
)

var timestampComma = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}),(\d{3})`)

// LoadVTT reads the SRT file at path and returns it converted to WebVTT:
// commas in timestamp fields become dots, and the file is prefixed with the
// WEBVTT header line.
func LoadVTT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("subtitle: read %s: %w", path, err)
	}
	return string(ToVTT(data)), nil
}

// ToVTT converts raw SRT bytes to WebVTT bytes.
func ToVTT(srt []byte) []byte {
	converted := timestampComma.ReplaceAll(srt, []byte("${1}.${2}"))

	var buf bytes.Buffer
	buf.WriteString("WEBVTT\n\n")
	buf.Write(converted)
	return buf.Bytes()
}
