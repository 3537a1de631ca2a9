package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
)

// Process extracts, summarizes and files a single transcript.
// The source is archived only after the summary has been written.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	p.logger.Info(ctx, "Starting transcript processing: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	mimeType := extractor.DetectMIME(path, data)
	transcript, err := p.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		return fmt.Errorf("extract %s: %w", mimeType, err)
	}

	result, err := p.summarizer.Summarize(ctx, summarizer.Request{
		Template:   p.opts.Template,
		Backend:    p.opts.Backend,
		Transcript: transcript,
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	mdPath, err := p.writeMarkdown(name, result)
	if err != nil {
		return err
	}

	if p.opts.WriteDocx {
		docxPath := filepath.Join(p.opts.OutputDir, name+".docx")
		if err := summarizer.WriteDocx(name, result.Text, docxPath); err != nil {
			p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move transcript to archived folder: %v", err)
	}

	p.logger.Info(ctx, "[DONE] %s -> %s (input tokens: %d, output tokens: %d, %s)",
		filepath.Base(path), mdPath, result.InputTokens, result.OutputTokens, time.Since(startTime))
	return nil
}

func (p *implProcessor) writeMarkdown(name string, result summarizer.Result) (string, error) {
	md := fmt.Sprintf("# %s\n\n_%s · %s · %s_\n\n%s\n",
		name,
		result.Template,
		result.Backend.Label(),
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(result.Text),
	)

	mdPath := filepath.Join(p.opts.OutputDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return mdPath, nil
}
