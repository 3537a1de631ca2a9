package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
)

type fakeBackend struct {
	kind          backend.Kind
	out           backend.Output
	err           error
	calls         int
	gotTranscript string
	gotPrompt     string
}

func (f *fakeBackend) Kind() backend.Kind { return f.kind }

func (f *fakeBackend) Generate(_ context.Context, transcript, prompt string) (backend.Output, error) {
	f.calls++
	f.gotTranscript, f.gotPrompt = transcript, prompt
	return f.out, f.err
}

func newTestSummarizer(t *testing.T, backends ...backend.Backend) Summarizer {
	t.Helper()
	tmpls, err := templates.Load(strings.NewReader(`
- name: Stand-up
  icon: "⏱"
  description: Daily
  prompt: List blockers.
`))
	require.NoError(t, err)
	return New(tmpls, backend.NewRegistry(backends...), logger.Nop())
}

func TestSummarize(t *testing.T) {
	cloud := &fakeBackend{kind: backend.KindCloud, out: backend.Output{Text: "no blockers today"}}
	local := &fakeBackend{kind: backend.KindLocal, out: backend.Output{Text: "unused"}}
	s := newTestSummarizer(t, cloud, local)

	res, err := s.Summarize(context.Background(), Request{
		Template:   "Stand-up",
		Backend:    backend.KindCloud,
		Transcript: "alice: done bob: blocked",
	})
	require.NoError(t, err)

	assert.Equal(t, "no blockers today", res.Text)
	assert.False(t, res.Empty)
	assert.Equal(t, "Stand-up", res.Template)
	assert.Equal(t, backend.KindCloud, res.Backend)
	assert.Equal(t, 4, res.InputTokens)
	assert.Equal(t, 3, res.OutputTokens)

	assert.Equal(t, 1, cloud.calls)
	assert.Equal(t, 0, local.calls, "only the selected backend is called")
	assert.Equal(t, "List blockers.", cloud.gotPrompt)
	assert.Equal(t, "alice: done bob: blocked", cloud.gotTranscript)
}

func TestSummarizeEmptyCandidates(t *testing.T) {
	local := &fakeBackend{kind: backend.KindLocal, out: backend.Output{Text: backend.NoResponseText, Empty: true}}
	s := newTestSummarizer(t, local)

	res, err := s.Summarize(context.Background(), Request{Template: "Stand-up", Backend: backend.KindLocal, Transcript: "x"})
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Equal(t, backend.NoResponseText, res.Text)
}

func TestSummarizeErrors(t *testing.T) {
	failing := &fakeBackend{kind: backend.KindCloud, err: backend.ErrRemoteGeneration}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"blank transcript", Request{Template: "Stand-up", Backend: backend.KindCloud, Transcript: " \n "}, ErrEmptyTranscript},
		{"unknown template", Request{Template: "nonexistent", Backend: backend.KindCloud, Transcript: "x"}, templates.ErrNotFound},
		{"unconfigured backend", Request{Template: "Stand-up", Backend: backend.KindLocal, Transcript: "x"}, backend.ErrUnknownBackend},
		{"backend failure", Request{Template: "Stand-up", Backend: backend.KindCloud, Transcript: "x"}, backend.ErrRemoteGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer(t, failing)
			_, err := s.Summarize(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}
