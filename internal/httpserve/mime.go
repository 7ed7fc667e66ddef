package httpserve

import "strings"

var extToMIME = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mp3":  "audio/mpeg",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// InferMIME extension-maps a filename to a content type, falling back to
// application/octet-stream for anything unrecognized. Exported so the
// supervisor can compute the same contentType it hands the HTTP layer when
// building a LOAD message.
func InferMIME(name string) string {
	return inferMIME(name)
}

// inferMIME extension-maps a filename to a content type, falling back to
// application/octet-stream for anything unrecognized.
func inferMIME(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return "application/octet-stream"
	}
	ext := strings.ToLower(name[dot:])
	if mt, ok := extToMIME[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}
