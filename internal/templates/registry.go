package templates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Get for an unknown template name.
var ErrNotFound = errors.New("template not found")

//go:embed templates.yaml
var builtin []byte

// Template is a named meeting type. Prompt is sent verbatim as the generation instruction.
type Template struct {
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	Prompt      string `yaml:"prompt" json:"prompt"`
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	order  []Template
	byName map[string]int
}

// Load parses a YAML list of templates. File order is display order.
func Load(r io.Reader) (*Registry, error) {
	var list []Template
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	reg := &Registry{
		order:  make([]Template, 0, len(list)),
		byName: make(map[string]int, len(list)),
	}
	for i, t := range list {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		if strings.TrimSpace(t.Prompt) == "" {
			return nil, fmt.Errorf("template %q: prompt is required", t.Name)
		}
		if _, dup := reg.byName[t.Name]; dup {
			return nil, fmt.Errorf("template %q: duplicate name", t.Name)
		}
		reg.byName[t.Name] = len(reg.order)
		reg.order = append(reg.order, t)
	}
	if len(reg.order) == 0 {
		return nil, errors.New("decode templates: no templates defined")
	}
	return reg, nil
}

// LoadFile loads templates from a YAML file. An empty path returns the built-in set.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in templates.
func Default() *Registry {
	reg, err := Load(bytes.NewReader(builtin))
	if err != nil {
		panic("built-in templates: " + err.Error())
	}
	return reg
}

// Get returns the template with the given name.
func (r *Registry) Get(name string) (Template, error) {
	i, ok := r.byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r.order[i], nil
}

// List returns all templates in display order.
func (r *Registry) List() []Template {
	out := make([]Template, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns template names in display order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, t := range r.order {
		names[i] = t.Name
	}
	return names
}
