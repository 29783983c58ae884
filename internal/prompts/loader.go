// Package prompts loads the catalog of canned coaching prompts.
package prompts

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/talent-tracker/internal/models"
)

//go:embed default_quick_actions.yaml
var defaultCatalog []byte

type catalogFile struct {
	QuickActions []models.QuickAction `yaml:"quick_actions"`
}

// Loader holds quick actions keyed by ID, preserving load order for listing
type Loader struct {
	mu      sync.RWMutex
	actions map[string]*models.QuickAction
	order   []string
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{
		actions: make(map[string]*models.QuickAction),
	}
}

// LoadDefaults loads the built-in catalog
func (l *Loader) LoadDefaults() error {
	if err := l.load(defaultCatalog); err != nil {
		return fmt.Errorf("failed to load default catalog: %w", err)
	}
	return nil
}

// LoadFromDir loads every *.yaml / *.yml file in dir, in file-name order.
// Files that fail to parse are logged and skipped.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading quick actions from directory", "dir", dir)

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("quick action directory unavailable: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load quick actions", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("quick actions loaded", "files", loaded, "total_files", len(files), "actions", l.Len())
	return nil
}

// LoadFromFile loads one catalog file
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return l.load(data)
}

func (l *Loader) load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// A file is applied whole or not at all.
	valid := make([]models.QuickAction, 0, len(file.QuickActions))
	for i, action := range file.QuickActions {
		if action.ID == "" {
			return fmt.Errorf("quick action %d: id is required", i)
		}
		if action.Prompt == "" {
			return fmt.Errorf("quick action %q: prompt is required", action.ID)
		}
		if action.Title == "" {
			action.Title = action.ID
		}
		valid = append(valid, action)
	}

	for _, action := range valid {
		l.Add(action)
	}
	return nil
}

// Add inserts or replaces an action. A replaced action keeps its list position.
func (l *Loader) Add(action models.QuickAction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.actions[action.ID]; !exists {
		l.order = append(l.order, action.ID)
	}
	l.actions[action.ID] = &action
}

// List returns all actions in load order
func (l *Loader) List() []*models.QuickAction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.QuickAction, 0, len(l.order))
	for _, id := range l.order {
		result = append(result, l.actions[id])
	}
	return result
}

// Len returns the number of loaded actions
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.actions)
}

// Replace swaps in the contents of src, leaving src untouched
func (l *Loader) Replace(src *Loader) {
	src.mu.RLock()
	actions := make(map[string]*models.QuickAction, len(src.actions))
	for id, a := range src.actions {
		actions[id] = a
	}
	order := append([]string(nil), src.order...)
	src.mu.RUnlock()

	l.mu.Lock()
	l.actions = actions
	l.order = order
	l.mu.Unlock()
}
