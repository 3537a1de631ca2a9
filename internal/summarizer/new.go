package summarizer

import (
	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
)

type implSummarizer struct {
	templates *templates.Registry
	backends  *backend.Registry
	logger    logger.Logger
}

// New creates a Summarizer over read-only template and backend registries.
func New(tmpls *templates.Registry, backends *backend.Registry, log logger.Logger) Summarizer {
	return &implSummarizer{
		templates: tmpls,
		backends:  backends,
		logger:    log,
	}
}
