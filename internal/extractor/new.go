package extractor

import (
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

// Options tunes extraction.
type Options struct {
	// ParagraphSeparator joins .docx paragraphs. Empty keeps them run together.
	ParagraphSeparator string
	// TempDir holds legacy uploads while the converter reads them. Empty uses os.TempDir.
	TempDir string
}

type implExtractor struct {
	converter Converter
	opts      Options
	logger    logger.Logger
}

// New creates an Extractor. conv may be nil, in which case .doc uploads fail
// with ErrConversionUnavailable.
func New(conv Converter, opts Options, log logger.Logger) Extractor {
	return &implExtractor{
		converter: conv,
		opts:      opts,
		logger:    log,
	}
}
