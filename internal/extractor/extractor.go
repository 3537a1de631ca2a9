package extractor

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	MIMEText = "text/plain"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDoc  = "application/msword"
)

var (
	ErrUnsupportedFormat     = errors.New("unsupported file format")
	ErrConversionUnavailable = errors.New("document conversion unavailable")
	ErrConversionFailed      = errors.New("document conversion failed")
	ErrInvalidDocument       = errors.New("invalid document")
)

// Extract returns the plain text of data according to its declared MIME type.
func (e *implExtractor) Extract(ctx context.Context, data []byte, declaredMIME string) (string, error) {
	switch mediaType(declaredMIME) {
	case MIMEText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: transcript is not valid UTF-8", ErrInvalidDocument)
		}
		return string(data), nil
	case MIMEDocx:
		text, err := docxText(data, e.opts.ParagraphSeparator)
		if err != nil {
			return "", fmt.Errorf("%w: read docx: %w", ErrInvalidDocument, err)
		}
		return text, nil
	case MIMEDoc:
		return e.extractLegacy(ctx, data)
	default:
		e.logger.Warn(ctx, "User uploaded unsupported file type: %s", declaredMIME)
		return "", fmt.Errorf("%w: %q (upload a TXT, DOCX, or DOC file)", ErrUnsupportedFormat, declaredMIME)
	}
}

func (e *implExtractor) extractLegacy(ctx context.Context, data []byte) (string, error) {
	if e.converter == nil {
		return "", fmt.Errorf("%w: no converter configured", ErrConversionUnavailable)
	}

	tmp, err := os.CreateTemp(e.opts.TempDir, "upload-*.doc")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	text, err := e.converter.Convert(ctx, path)
	if err != nil {
		e.logger.Error(ctx, "Error reading DOC file: %v", err)
		return "", err
	}
	return text, nil
}

func mediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(declared))
	}
	return mt
}
