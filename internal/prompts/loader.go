// Package prompts holds the LLM prompt templates embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var files embed.FS

// set is one parsed prompt file: raw text per key plus every key parsed as a named template
type set struct {
	raw       map[string]string
	templates *template.Template
}

var (
	mu   sync.Mutex
	sets = make(map[string]*set)
)

// Get returns the raw text of a prompt, e.g. Get("analysis.json", "meeting-system")
func Get(filename, key string) (string, error) {
	s, err := load(filename)
	if err != nil {
		return "", err
	}
	text, ok := s.raw[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return text, nil
}

// Render executes a prompt with data. Every {{.Name}} the prompt uses must have a value.
// Values are inserted verbatim, so transcripts containing template syntax stay inert.
func Render(filename, key string, data map[string]string) (string, error) {
	s, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl := s.templates.Lookup(key)
	if tmpl == nil {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

func load(filename string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()

	if s, ok := sets[filename]; ok {
		return s, nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	root := template.New(filename).Option("missingkey=error")
	for key, text := range raw {
		if _, err := root.New(key).Parse(text); err != nil {
			return nil, fmt.Errorf("invalid prompt %s/%s: %w", filename, key, err)
		}
	}

	s := &set{raw: raw, templates: root}
	sets[filename] = s
	return s, nil
}
