package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds the quizzes available to the service, keyed by kind
type Registry struct {
	mu      sync.RWMutex
	quizzes map[Kind]*Quiz
	order   []Kind
}

// NewRegistry creates a registry from the given quizzes, validating each one
func NewRegistry(quizzes ...*Quiz) (*Registry, error) {
	r := &Registry{quizzes: make(map[Kind]*Quiz)}
	for _, q := range quizzes {
		if err := r.Register(q); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry with the built-in quizzes
func Default() *Registry {
	r, err := NewRegistry(TeamDiagnostic(), Individual(), QuickTest())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return r
}

// Register validates and adds a quiz. A quiz with an existing kind replaces it.
func (r *Registry) Register(q *Quiz) error {
	if q == nil {
		return fmt.Errorf("quiz is nil")
	}
	if err := q.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.quizzes[q.Kind]; !exists {
		r.order = append(r.order, q.Kind)
	}
	r.quizzes[q.Kind] = q
	return nil
}

// Get returns the quiz for a kind
func (r *Registry) Get(kind Kind) (*Quiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quizzes[kind]
	return q, ok
}

// List returns quizzes in registration order
func (r *Registry) List() []*Quiz {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Quiz, 0, len(r.order))
	for _, kind := range r.order {
		result = append(result, r.quizzes[kind])
	}
	return result
}

// LoadFile parses a YAML quiz definition and validates it
func LoadFile(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz file %s: %w", path, err)
	}

	var q Quiz
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to parse quiz file %s: %w", path, err)
	}
	if q.Granularity == "" {
		q.Granularity = GranularityCoarse
	}
	if q.Report == "" {
		q.Report = ReportNone
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// LoadDir registers every *.yaml / *.yml quiz in dir, in file name order.
// Returns the number of quizzes loaded.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	for _, path := range files {
		q, err := LoadFile(path)
		if err != nil {
			return 0, err
		}
		if err := r.Register(q); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}
