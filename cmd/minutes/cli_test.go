package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/config"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

// runApp runs the CLI with args and returns captured stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"minutes"}, args...))
	return out.String(), err
}

func TestTemplatesCommand(t *testing.T) {
	out, err := runApp(t, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	for _, want := range []string{"General Meeting", "Daily Stand-up", "One-on-One"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTemplatesCommandOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte("- name: Retro\n  icon: \"R\"\n  description: Sprint retro\n  prompt: Summarize.\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "templates", "--templates", path)
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if out != "R Retro: Sprint retro\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSummarizeMissingKey(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.APIKeyEnv, "")

	_, err := runApp(t, "--config", cfgPath, "--env-file", filepath.Join(dir, "missing.env"), "summarize")
	if !errors.Is(err, config.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestSummarizeRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"summarize", "--backend", "gpt"}},
		{"unknown format", []string{"summarize", "--format", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadTranscript(t *testing.T) {
	ctx := context.Background()
	ex := extractor.New(nil, extractor.Options{}, logger.Nop())

	got, err := readTranscript(ctx, ex, "", strings.NewReader("Alice: hi"))
	if err != nil || got != "Alice: hi" {
		t.Errorf("stdin: got %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "meeting.txt")
	if err := os.WriteFile(path, []byte("Bob: hello"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = readTranscript(ctx, ex, path, nil)
	if err != nil || got != "Bob: hello" {
		t.Errorf("file: got %q, %v", got, err)
	}

	_, err = readTranscript(ctx, ex, filepath.Join(t.TempDir(), "slides.pdf"), nil)
	if !errors.Is(err, extractor.ErrUnsupportedFormat) {
		t.Errorf("pdf: err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	dirs := []string{filepath.Join(base, "inbox"), filepath.Join(base, "out", "nested")}
	if err := ensureDirectories(dirs...); err != nil {
		t.Fatal(err)
	}
	for _, d := range dirs {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("%s not created", d)
		}
	}
}

func TestRunUntilSignalWaitsForStart(t *testing.T) {
	sig := make(chan os.Signal, 1)
	started := make(chan struct{})
	var finished atomic.Bool

	start := func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return ctx.Err()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- runUntilSignal(context.Background(), start, sig, logger.Nop()) }()

	<-started
	sig <- syscall.SIGTERM

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("runUntilSignal: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runUntilSignal did not return")
	}
	if !finished.Load() {
		t.Error("returned before start finished draining")
	}
}

func TestRunUntilSignalStartError(t *testing.T) {
	boom := errors.New("events channel closed")
	err := runUntilSignal(context.Background(), func(context.Context) error { return boom }, make(chan os.Signal), logger.Nop())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
