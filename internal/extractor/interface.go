package extractor

import "context"

// Extractor turns an uploaded transcript into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, declaredMIME string) (string, error)
}

// Converter extracts text from a legacy binary Word document on disk.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}
