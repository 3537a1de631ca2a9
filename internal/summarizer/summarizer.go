package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/usage"
)

// ErrEmptyTranscript is returned when there is nothing to summarize.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Summarize builds the prompt from the selected template and sends the transcript
// to the selected backend. There is no retry and no fallback to the other backend.
func (s *implSummarizer) Summarize(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		s.logger.Warn(ctx, "User did not provide a transcript.")
		return Result{}, ErrEmptyTranscript
	}

	tmpl, err := s.templates.Get(req.Template)
	if err != nil {
		return Result{}, err
	}

	b, err := s.backends.Get(req.Backend)
	if err != nil {
		return Result{}, err
	}

	s.logger.Info(ctx, "Generating summary: template=%q backend=%s", tmpl.Name, b.Kind())
	start := time.Now()

	out, err := b.Generate(ctx, req.Transcript, tmpl.Prompt)
	if err != nil {
		s.logger.Error(ctx, "Failed to generate summary with %s: %v", b.Kind(), err)
		return Result{}, fmt.Errorf("generate summary: %w", err)
	}
	if out.Empty {
		s.logger.Warn(ctx, "Backend %s returned no candidates", b.Kind())
	}

	inputTokens, outputTokens := usage.Estimate(req.Transcript, out.Text)
	duration := time.Since(start)
	s.logger.Info(ctx, "Summary generated. Input tokens: %d, Output tokens: %d (%s)", inputTokens, outputTokens, duration)

	return Result{
		Text:         out.Text,
		Empty:        out.Empty,
		Template:     tmpl.Name,
		Backend:      b.Kind(),
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Duration:     duration,
	}, nil
}
