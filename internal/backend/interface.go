package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind selects one of the two generation backends for a request.
type Kind string

const (
	KindCloud Kind = "cloud"
	KindLocal Kind = "local"
)

// NoResponseText is returned by the local backend when the model produced nothing.
const NoResponseText = "No response generated"

var (
	ErrRemoteGeneration = errors.New("remote generation failed")
	ErrUnknownBackend   = errors.New("unknown backend")
)

// Output is the normalized text of one generation. Empty is set when the backend
// returned no candidates and Text holds the NoResponseText placeholder.
type Output struct {
	Text  string
	Empty bool
}

// Backend generates a summary of transcript following prompt.
type Backend interface {
	Kind() Kind
	Generate(ctx context.Context, transcript, prompt string) (Output, error)
}

// ParseKind accepts the kind names and the display labels used by the form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cloud", "gemini", "gemini pro", "gemini-pro":
		return KindCloud, nil
	case "local", "ollama":
		return KindLocal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

func (k Kind) String() string {
	return string(k)
}

// Label is the display name shown next to the backend choice.
func (k Kind) Label() string {
	switch k {
	case KindCloud:
		return "Gemini Pro"
	case KindLocal:
		return "Ollama"
	default:
		return string(k)
	}
}
