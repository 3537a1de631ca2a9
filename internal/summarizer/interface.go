package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
)

// Request is one summary submission. Nothing in it outlives the call.
type Request struct {
	Template   string
	Backend    backend.Kind
	Transcript string
}

// Result is the generated summary with rough word-count usage.
type Result struct {
	Text         string        `json:"text"`
	Empty        bool          `json:"empty"`
	Template     string        `json:"template"`
	Backend      backend.Kind  `json:"backend"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	Duration     time.Duration `json:"-"`
}

// Summarizer routes a transcript through exactly one backend.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (Result, error)
}
