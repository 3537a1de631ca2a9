package processor

import (
	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
)

// Options selects the inbox defaults and directories.
type Options struct {
	Template    string
	Backend     backend.Kind
	WriteDocx   bool
	OutputDir   string
	ArchivedDir string
}

type implProcessor struct {
	opts       Options
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a new Processor instance
func New(opts Options, ex extractor.Extractor, sum summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		opts:       opts,
		extractor:  ex,
		summarizer: sum,
		logger:     log,
	}
}
