package config

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a startup configuration problem. The process must not start.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Ollama      OllamaConfig      `yaml:"ollama"`
	Converter   ConverterConfig   `yaml:"converter"`
	Extract     ExtractConfig     `yaml:"extract"`
	Inbox       InboxConfig       `yaml:"inbox"`
	Paths       PathsConfig       `yaml:"paths"`
	Server      ServerConfig      `yaml:"server"`
	Feedback    FeedbackConfig    `yaml:"feedback"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
	// APIKey is never read from the YAML file, only from GOOGLE_API_KEY.
	APIKey string `yaml:"-"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type ConverterConfig struct {
	BinaryPath string   `yaml:"binary_path"`
	Args       []string `yaml:"args"`
}

type ExtractConfig struct {
	ParagraphSeparator string `yaml:"paragraph_separator"`
}

type InboxConfig struct {
	Template  string `yaml:"template"`
	Backend   string `yaml:"backend"`
	WriteDocx bool   `yaml:"write_docx"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
	Templates string `yaml:"templates"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type FeedbackConfig struct {
	DBPath string `yaml:"db_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("%w: GOOGLE_API_KEY is not set", ErrConfiguration)
	}
	if c.Server.MaxUploadMB < 0 {
		return fmt.Errorf("%w: server.max_upload_mb must not be negative", ErrConfiguration)
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-pro"
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3.1"
	}
	if c.Converter.BinaryPath == "" {
		c.Converter.BinaryPath = "antiword"
	}
	if len(c.Converter.Args) == 0 {
		c.Converter.Args = []string{"{input}"}
	}
	if c.Inbox.Template == "" {
		c.Inbox.Template = "General Meeting"
	}
	if c.Inbox.Backend == "" {
		c.Inbox.Backend = "cloud"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/summaries"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 20
	}
	if c.Feedback.DBPath == "" {
		c.Feedback.DBPath = "data/feedback.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
