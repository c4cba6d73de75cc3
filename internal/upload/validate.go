package upload

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MaxImageSize = 5 << 20
	MaxVideoSize = 50 << 20

	// minVideoSize is required of videos whose container has no signature
	// check.
	minVideoSize = 1024
)

// Error codes returned to API clients.
const (
	CodeNoFile         = "NO_FILE"
	CodeInvalidType    = "INVALID_TYPE"
	CodeFileTooLarge   = "FILE_TOO_LARGE"
	CodeInvalidContent = "INVALID_CONTENT"
	CodeStorage        = "STORAGE_ERROR"
)

// Error is an upload failure with the HTTP status it maps to.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NoFile is returned when a request carries no file.
func NoFile() *Error {
	return badRequest(CodeNoFile, "no file provided")
}

func badRequest(code, format string, args ...any) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Kind is the broad class of an accepted file.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

var extensions = map[string]struct {
	kind Kind
	ext  string
}{
	"image/jpeg":      {KindImage, ".jpg"},
	"image/jpg":       {KindImage, ".jpg"},
	"image/png":       {KindImage, ".png"},
	"image/gif":       {KindImage, ".gif"},
	"image/webp":      {KindImage, ".webp"},
	"image/bmp":       {KindImage, ".bmp"},
	"image/svg+xml":   {KindImage, ".svg"},
	"video/mp4":       {KindVideo, ".mp4"},
	"video/avi":       {KindVideo, ".avi"},
	"video/mov":       {KindVideo, ".mov"},
	"video/quicktime": {KindVideo, ".mov"},
	"video/wmv":       {KindVideo, ".wmv"},
	"video/flv":       {KindVideo, ".flv"},
	"video/webm":      {KindVideo, ".webm"},
	"video/mkv":       {KindVideo, ".mkv"},
}

// KindOf classifies a MIME type; parameters such as charset are ignored.
func KindOf(contentType string) Kind {
	return extensions[normalizeType(contentType)].kind
}

// Extension returns the file extension for a MIME type, falling back to the
// original file name.
func Extension(contentType, originalName string) string {
	if e, ok := extensions[normalizeType(contentType)]; ok {
		return e.ext
	}
	return strings.ToLower(filepath.Ext(originalName))
}

func normalizeType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

// MaxSize is the size cap for a kind.
func MaxSize(k Kind) int64 {
	if k == KindVideo {
		return MaxVideoSize
	}
	return MaxImageSize
}

// Check validates a file's declared type, size and leading bytes.
func Check(contentType string, data []byte) *Error {
	if len(data) == 0 {
		return NoFile()
	}
	ct := normalizeType(contentType)
	kind := KindOf(ct)
	if kind == KindUnknown {
		return badRequest(CodeInvalidType, "invalid file type: %s. Only images and videos are allowed", contentType)
	}
	if limit := MaxSize(kind); int64(len(data)) > limit {
		return badRequest(CodeFileTooLarge, "file too large. Maximum size is %dMB", limit>>20)
	}
	switch kind {
	case KindImage:
		if !looksLikeImage(data, ct) {
			return badRequest(CodeInvalidContent, "invalid or corrupted image")
		}
	case KindVideo:
		if !looksLikeVideo(data, ct) {
			return badRequest(CodeInvalidContent, "invalid or corrupted video")
		}
	}
	return nil
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func at(b []byte, off int, s string) bool {
	return len(b) >= off+len(s) && string(b[off:off+len(s)]) == s
}

func looksLikeImage(b []byte, ct string) bool {
	switch ct {
	case "image/png":
		return bytes.HasPrefix(b, pngSignature)
	case "image/jpeg", "image/jpg":
		n := len(b)
		return n >= 4 && b[0] == 0xFF && b[1] == 0xD8 && b[n-2] == 0xFF && b[n-1] == 0xD9
	case "image/gif":
		return at(b, 0, "GIF87a") || at(b, 0, "GIF89a")
	case "image/webp":
		return at(b, 0, "RIFF") && at(b, 8, "WEBP")
	case "image/bmp":
		return at(b, 0, "BM")
	case "image/svg+xml":
		head := b[:min(len(b), 64)]
		return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
	}
	return true
}

func looksLikeVideo(b []byte, ct string) bool {
	switch ct {
	case "video/mp4", "video/mov", "video/quicktime":
		return at(b, 4, "ftyp")
	case "video/webm", "video/mkv":
		return bytes.HasPrefix(b, []byte{0x1A, 0x45, 0xDF, 0xA3})
	case "video/avi":
		return at(b, 0, "RIFF") && at(b, 8, "AVI")
	}
	return len(b) > minVideoSize
}

// SanitizeFolder keeps a folder name to one safe path segment. An empty
// result becomes "uploads".
func SanitizeFolder(folder string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(folder) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "uploads"
	}
	return sb.String()
}
