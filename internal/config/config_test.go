package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Gemini: GeminiConfig{APIKey: "key"},
			},
			wantErr: false,
		},
		{
			name:    "missing api key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "negative upload limit",
			config: Config{
				Gemini: GeminiConfig{APIKey: "key"},
				Server: ServerConfig{MaxUploadMB: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("Validate() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Gemini: GeminiConfig{APIKey: "key"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Gemini.Model = %v, want gemini-2.5-pro", cfg.Gemini.Model)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("Ollama.BaseURL = %v", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "llama3.1" {
		t.Errorf("Ollama.Model = %v, want llama3.1", cfg.Ollama.Model)
	}
	if len(cfg.Converter.Args) != 1 || cfg.Converter.Args[0] != "{input}" {
		t.Errorf("Converter.Args = %v", cfg.Converter.Args)
	}
	if cfg.Extract.ParagraphSeparator != "" {
		t.Errorf("Extract.ParagraphSeparator = %q, want empty", cfg.Extract.ParagraphSeparator)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
gemini:
  model: "gemini-2.5-flash"

ollama:
  base_url: "http://ollama.internal:11434/"
  model: "llama3.1"

extract:
  paragraph_separator: "\n"

paths:
  input: "data/inbox"
  output: "data/out"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GOOGLE_API_KEY=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(APIKeyEnv, "")
	os.Unsetenv(APIKeyEnv)

	cfg, err := Load(path, envPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gemini.APIKey != "from-dotenv" {
		t.Errorf("APIKey = %v, want from-dotenv", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %v, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Extract.ParagraphSeparator != "\n" {
		t.Errorf("ParagraphSeparator = %q, want newline", cfg.Extract.ParagraphSeparator)
	}
	if cfg.Paths.Output != "data/out" {
		t.Errorf("Output = %v, want data/out", cfg.Paths.Output)
	}
	if cfg.Paths.Archived != "data/archived" {
		t.Errorf("Archived = %v, want data/archived", cfg.Paths.Archived)
	}
}

func TestLoadMissingKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(APIKeyEnv, "")

	_, err := Load(path, filepath.Join(dir, "missing.env"))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Load() error = %v, want ErrConfiguration", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml", "")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
