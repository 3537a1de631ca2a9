package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// Local sends prompts to a self-hosted Ollama server.
type Local struct {
	client *ollama.Client
	model  string
}

// NewLocal creates an Ollama client for baseURL. A nil httpClient uses
// http.DefaultClient, so no timeout is applied beyond the caller's context.
func NewLocal(baseURL, model string, httpClient *http.Client) (*Local, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid ollama base url %q: scheme and host are required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Local{client: ollama.NewClient(u, httpClient), model: model}, nil
}

func (l *Local) Kind() Kind { return KindLocal }

// LocalPrompt puts the instruction on its own line followed by the labelled transcript.
func LocalPrompt(prompt, transcript string) string {
	return prompt + "\n" + "Transcript: " + transcript
}

func (l *Local) Generate(ctx context.Context, transcript, prompt string) (Output, error) {
	stream := false
	req := &ollama.GenerateRequest{
		Model:  l.model,
		Prompt: LocalPrompt(prompt, transcript),
		Stream: &stream,
	}

	var text strings.Builder
	if err := l.client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		text.WriteString(gr.Response)
		return nil
	}); err != nil {
		return Output{}, fmt.Errorf("%w: ollama: %w", ErrRemoteGeneration, err)
	}

	if text.Len() == 0 {
		return Output{Text: NoResponseText, Empty: true}, nil
	}
	return Output{Text: text.String()}, nil
}
