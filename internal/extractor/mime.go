package extractor

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var extensionTypes = map[string]string{
	".txt":  MIMEText,
	".docx": MIMEDocx,
	".doc":  MIMEDoc,
}

// DetectMIME returns a MIME type for a file that arrived without one.
// Known transcript extensions win; otherwise the content is sniffed, which
// tells Word documents apart from plain zip and OLE containers.
func DetectMIME(filename string, head []byte) string {
	if mt, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return mimetype.Detect(head).String()
}

// SupportedExtension reports whether filename has a transcript extension.
func SupportedExtension(filename string) bool {
	_, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}
