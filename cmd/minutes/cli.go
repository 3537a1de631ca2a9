package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	goruntime "runtime"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/feedback"
	"github.com/nguyentantai21042004/minutes-flow/internal/httpapi"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/processor"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
	"github.com/nguyentantai21042004/minutes-flow/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "minutes",
		Usage:   "Turn meeting transcripts into structured summaries",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "Path to config file"},
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "Dotenv file holding GOOGLE_API_KEY"},
		},
		Commands: []*cli.Command{
			serveCmd(),
			summarizeCmd(),
			watchCmd(),
			templatesCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd starts the HTTP API.
func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the summary API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (overrides server.addr)"},
		},
		Action: func(c *cli.Context) error {
			cfg, log, err := loadConfig(c.String("config"), c.String("env-file"))
			if err != nil {
				return err
			}
			defer logger.Close(log)

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			rt, err := buildRuntime(ctx, cfg, log)
			if err != nil {
				return err
			}

			store, err := feedback.Open(cfg.Feedback.DBPath, log)
			if err != nil {
				return err
			}
			defer store.Close()

			addr := cfg.Server.Addr
			if a := c.String("addr"); a != "" {
				addr = a
			}

			router := httpapi.NewRouter(httpapi.Deps{
				Templates:      rt.templates,
				Backends:       rt.backends,
				Extractor:      rt.extractor,
				Summarizer:     rt.summarizer,
				Feedback:       store,
				Logger:         log,
				MaxUploadBytes: int64(cfg.Server.MaxUploadMB) << 20,
			})
			srv := httpapi.NewServer(addr, router)

			log.Info(ctx, "========================================")
			log.Info(ctx, "Meeting Summary API %s", Version)
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s", goruntime.GOOS, goruntime.GOARCH)
			log.Info(ctx, "Templates: %d", len(rt.templates.Names()))
			log.Info(ctx, "Cloud model: %s", cfg.Gemini.Model)
			log.Info(ctx, "Local model: %s at %s", cfg.Ollama.Model, cfg.Ollama.BaseURL)
			log.Info(ctx, "Listening on %s", addr)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			errChan := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
			}()

			select {
			case <-sigChan:
				log.Info(ctx, "Shutdown signal received")
			case err := <-errChan:
				log.Error(ctx, "Server error: %v", err)
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			log.Info(ctx, "Shutting down gracefully...")
			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			log.Info(ctx, "Server stopped")
			return nil
		},
	}
}

// summarizeCmd summarizes one transcript file, or stdin, and prints or saves the result.
func summarizeCmd() *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: "Summarize a transcript file (reads stdin when --file is omitted)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Transcript file (.txt, .docx, .doc)"},
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Value: "General Meeting", Usage: "Template name"},
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: "cloud", Usage: "Backend: cloud|local"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the summary to this file instead of stdout"},
			&cli.StringFlag{Name: "format", Value: "txt", Usage: "Output file format: txt|docx"},
		},
		Action: func(c *cli.Context) error {
			kind, err := backend.ParseKind(c.String("backend"))
			if err != nil {
				return err
			}
			format, err := summarizer.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			cfg, log, err := loadConfig(c.String("config"), c.String("env-file"))
			if err != nil {
				return err
			}
			defer logger.Close(log)

			ctx := c.Context
			rt, err := buildRuntime(ctx, cfg, log)
			if err != nil {
				return err
			}

			transcript, err := readTranscript(ctx, rt.extractor, c.String("file"), c.App.Reader)
			if err != nil {
				return err
			}

			res, err := rt.summarizer.Summarize(ctx, summarizer.Request{
				Template:   c.String("template"),
				Backend:    kind,
				Transcript: transcript,
			})
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				_, err := fmt.Fprintln(c.App.Writer, res.Text)
				return err
			}

			art, err := summarizer.Export(res.Template, res.Text, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, art.Data, 0644); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			fmt.Fprintf(c.App.ErrWriter, "Summary written to %s (input tokens: %d, output tokens: %d)\n",
				out, res.InputTokens, res.OutputTokens)
			return nil
		},
	}
}

// watchCmd runs the inbox pipeline until interrupted.
func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Summarize every transcript dropped into the inbox directory",
		Action: func(c *cli.Context) error {
			cfg, log, err := loadConfig(c.String("config"), c.String("env-file"))
			if err != nil {
				return err
			}
			defer logger.Close(log)

			ctx, cancel := context.WithCancel(c.Context)
			defer cancel()

			if err := ensureDirectories(cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived); err != nil {
				log.Error(ctx, "Failed to create directories: %v", err)
				return err
			}

			rt, err := buildRuntime(ctx, cfg, log)
			if err != nil {
				return err
			}

			kind, err := backend.ParseKind(cfg.Inbox.Backend)
			if err != nil {
				return err
			}
			if _, err := rt.templates.Get(cfg.Inbox.Template); err != nil {
				return fmt.Errorf("inbox template: %w", err)
			}

			proc := processor.New(processor.Options{
				Template:    cfg.Inbox.Template,
				Backend:     kind,
				WriteDocx:   cfg.Inbox.WriteDocx,
				OutputDir:   cfg.Paths.Output,
				ArchivedDir: cfg.Paths.Archived,
			}, rt.extractor, rt.summarizer, log)

			w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				log.Error(ctx, "Failed to create watcher: %v", err)
				return err
			}
			defer w.Stop()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			log.Info(ctx, "========================================")
			log.Info(ctx, "Meeting inbox is ready!")
			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Template: %s, Backend: %s", cfg.Inbox.Template, kind.Label())
			log.Info(ctx, "Concurrent: %d transcripts at once", cfg.Performance.MaxConcurrent)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			if err := runUntilSignal(ctx, w.Start, sigChan, log); err != nil {
				log.Error(ctx, "Watcher error: %v", err)
				return err
			}
			log.Info(ctx, "Meeting inbox stopped")
			return nil
		},
	}
}

// runUntilSignal runs start until it fails or a signal arrives, then cancels it
// and waits for it to return so in-flight work can finish.
func runUntilSignal(ctx context.Context, start func(context.Context) error, sig <-chan os.Signal, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- start(ctx) }()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-sig:
		log.Info(ctx, "Shutdown signal received")
	case <-ctx.Done():
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// templatesCmd lists the available templates. It needs no credentials.
func templatesCmd() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List the available summary templates",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "templates", Usage: "YAML file overriding the built-in templates"},
		},
		Action: func(c *cli.Context) error {
			reg, err := templates.LoadFile(c.String("templates"))
			if err != nil {
				return err
			}
			for _, t := range reg.List() {
				fmt.Fprintf(c.App.Writer, "%s %s: %s\n", t.Icon, t.Name, t.Description)
			}
			return nil
		},
	}
}

// readTranscript extracts text from path, or reads plain text from stdin when path is empty.
func readTranscript(ctx context.Context, ex extractor.Extractor, path string, stdin io.Reader) (string, error) {
	if path == "" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return ex.Extract(ctx, data, extractor.MIMEText)
	}

	if !extractor.SupportedExtension(path) {
		return "", fmt.Errorf("%w: %s", extractor.ErrUnsupportedFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return ex.Extract(ctx, data, extractor.DetectMIME(path, data))
}
