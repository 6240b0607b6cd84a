package presentation

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DownloadFilename    = "obituary.txt"
	DownloadContentType = "text/plain"
)

// Download is the plain-text export of the preview.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// NewDownload serialises the plain text of markup.
func NewDownload(markup string) Download {
	return Download{
		Filename:    DownloadFilename,
		ContentType: DownloadContentType,
		Body:        []byte(PlainText(markup)),
	}
}

// ServeHTTP writes the file as an attachment.
func (d Download) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", d.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Body)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(d.Body)
}

// WriteFile stores the download inside dir and returns the written path.
func (d Download) WriteFile(dir string) (string, error) {
	if d.Filename == "" {
		return "", errors.New("presentation: download filename is required")
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, filepath.Base(d.Filename))
	if err := os.WriteFile(path, d.Body, 0o644); err != nil {
		return "", fmt.Errorf("presentation: write download: %w", err)
	}
	return path, nil
}
