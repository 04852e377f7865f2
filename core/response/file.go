package response

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/timeclock/core/handler"
)

// sanitizeFilename strips characters that would allow header injection.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\n", "")
	filename = strings.ReplaceAll(filename, "\r", "")
	return strings.ReplaceAll(filename, "\"", "'")
}

func resolveContentType(contentType, filename string) string {
	if contentType != "" {
		return contentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Attachment creates a response for downloading in-memory data as a file.
// If contentType is empty, it is detected from the filename extension.
func Attachment(data []byte, filename string, contentType string) handler.Response {
	filename = sanitizeFilename(filename)

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Type", resolveContentType(contentType, filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

		w.WriteHeader(http.StatusOK)
		_, err := w.Write(data)
		return err
	}
}

// FileReader creates a response that streams data from an io.Reader as a
// downloadable file. Use for generated content that shouldn't be loaded
// entirely into memory.
func FileReader(reader io.Reader, filename string, contentType string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		filename := sanitizeFilename(filename)

		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Type", resolveContentType(contentType, filename))

		w.WriteHeader(http.StatusOK)
		_, err := io.Copy(w, reader)
		return err
	}
}
