package asset

import (
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultExtension = "bin"

// resumeExtensions maps resume MIME types to the extension used when the
// uploaded filename carries none.
var resumeExtensions = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ResumeKey names a resume object: resume-<unix ms>.<ext>.
func ResumeKey(now time.Time, filename, contentType string) string {
	return fmt.Sprintf("resume-%d.%s", now.UnixMilli(), extensionFor(filename, contentType, resumeExtensions))
}

// ImageKey names an image object: portfolio-<unix ms>-<token>.<ext>.
func ImageKey(now time.Time, token, filename, contentType string) string {
	return fmt.Sprintf("portfolio-%d-%s.%s", now.UnixMilli(), token, extensionFor(filename, contentType, imageExtensions))
}

// randomToken returns a short lowercase hex suffix for image keys.
func randomToken() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:7]
}

func extensionFor(filename, contentType string, byType map[string]string) string {
	if ext := extension(filename); ext != "" {
		return ext
	}
	if ext, ok := byType[contentType]; ok {
		return ext
	}
	return defaultExtension
}

// extension returns the text after the last dot of filename, or "" when
// there is none or it is not a plain alphanumeric suffix.
func extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// mediaType strips parameters from a declared Content-Type.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(contentType)
	}
	return mt
}
