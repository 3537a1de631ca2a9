package summarizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a download format for a summary.
type Format string

const (
	FormatText Format = "txt"
	FormatDocx Format = "docx"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Artifact is a downloadable summary file. Name is fixed per format.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseFormat maps "txt"/"text" and "docx"/"word" to a Format. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "docx", "word":
		return FormatDocx, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export renders summary text as a download. title heads the docx document.
func Export(title, text string, format Format) (Artifact, error) {
	switch format {
	case FormatText:
		return Artifact{
			Name:        "summary.txt",
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(text),
		}, nil
	case FormatDocx:
		data, err := renderDocx(title, text)
		if err != nil {
			return Artifact{}, fmt.Errorf("render docx: %w", err)
		}
		return Artifact{
			Name:        "summary.docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Data:        data,
		}, nil
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteDocx writes the summary as a docx file at path.
func WriteDocx(title, text, path string) error {
	return markdownToDocx(title, text, path)
}

func renderDocx(title, text string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "summary-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "summary.docx")
	if err := markdownToDocx(title, text, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
