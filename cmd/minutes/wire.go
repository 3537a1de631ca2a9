package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/config"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
	"github.com/nguyentantai21042004/minutes-flow/pkg/executor"
)

// runtime holds the process-wide, read-only dependencies built once at startup.
type runtime struct {
	cfg        *config.Config
	log        logger.Logger
	templates  *templates.Registry
	backends   *backend.Registry
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
}

func buildRuntime(ctx context.Context, cfg *config.Config, log logger.Logger) (*runtime, error) {
	tmpls, err := templates.LoadFile(cfg.Paths.Templates)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	cloud, err := backend.NewCloud(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}
	local, err := backend.NewLocal(cfg.Ollama.BaseURL, cfg.Ollama.Model, nil)
	if err != nil {
		return nil, err
	}
	backends := backend.NewRegistry(cloud, local)

	exec := executor.New()
	conv := extractor.NewCommandConverter(exec, cfg.Converter.BinaryPath, cfg.Converter.Args)
	if _, err := exec.LookPath(cfg.Converter.BinaryPath); err != nil {
		log.Warn(ctx, "Legacy .doc conversion unavailable: %s not found on PATH", cfg.Converter.BinaryPath)
	}
	ex := extractor.New(conv, extractor.Options{ParagraphSeparator: cfg.Extract.ParagraphSeparator}, log)

	return &runtime{
		cfg:        cfg,
		log:        log,
		templates:  tmpls,
		backends:   backends,
		extractor:  ex,
		summarizer: summarizer.New(tmpls, backends, log),
	}, nil
}

// loadConfig loads configuration and the logger. Configuration errors are fatal.
func loadConfig(configPath, envFile string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	return cfg, log, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
