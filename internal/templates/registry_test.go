package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()

	names := reg.Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "General Meeting", names[0])

	for _, tmpl := range reg.List() {
		assert.NotEmpty(t, tmpl.Icon, tmpl.Name)
		assert.NotEmpty(t, tmpl.Description, tmpl.Name)
		assert.NotEmpty(t, tmpl.Prompt, tmpl.Name)
	}
}

func TestListStableOrder(t *testing.T) {
	reg := Default()

	first := reg.List()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, reg.List())
	}
}

func TestListReturnsCopy(t *testing.T) {
	reg := Default()

	list := reg.List()
	list[0].Prompt = "mutated"

	got, err := reg.Get(list[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", got.Prompt)
}

func TestGet(t *testing.T) {
	reg, err := Load(strings.NewReader(`
- name: Retro
  icon: "🔁"
  description: Sprint retrospective
  prompt: Summarize the retro.
- name: Planning
  icon: "🗓"
  description: Sprint planning
  prompt: Summarize the planning.
`))
	require.NoError(t, err)

	tmpl, err := reg.Get("Planning")
	require.NoError(t, err)
	assert.Equal(t, "Summarize the planning.", tmpl.Prompt)
	assert.Equal(t, []string{"Retro", "Planning"}, reg.Names())

	_, err = reg.Get("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "- prompt: p\n"},
		{"missing prompt", "- name: A\n"},
		{"duplicate name", "- name: A\n  prompt: p\n- name: A\n  prompt: q\n"},
		{"empty list", "[]\n"},
		{"not a list", "name: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: Custom\n  prompt: Do it.\n"), 0644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Custom"}, reg.Names())

	reg, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), reg.Names())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
