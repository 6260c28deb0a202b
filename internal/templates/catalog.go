// Package templates provides the template catalogue: the bundled templates
// plus any user templates stored as YAML files in the library directory.
package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dpshade/luma/internal/models"
)

// Catalog is an ordered, read-only set of templates
type Catalog struct {
	templates []models.Template
}

// NewCatalog builds a catalogue from the given templates. Later entries
// replace earlier ones with the same ID in place.
func NewCatalog(list ...[]models.Template) *Catalog {
	c := &Catalog{}
	index := make(map[string]int)
	for _, set := range list {
		for _, t := range set {
			if i, ok := index[t.ID]; ok {
				c.templates[i] = t
				continue
			}
			index[t.ID] = len(c.templates)
			c.templates = append(c.templates, t)
		}
	}
	return c
}

// Load returns the built-in catalogue merged with user templates found in dir.
// A missing directory is not an error; unreadable files are skipped and logged.
func Load(dir string, logger *zap.Logger) (*Catalog, error) {
	user, err := LoadDir(dir, logger)
	if err != nil {
		return nil, err
	}
	return NewCatalog(Builtin, user), nil
}

// LoadDir reads every *.yaml / *.yml template in dir
func LoadDir(dir string, logger *zap.Logger) ([]models.Template, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory: %w", err)
	}

	var out []models.Template
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, err := LoadFile(path)
		if err != nil {
			logger.Warn("skipping template", zap.String("path", path), zap.Error(err))
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

// LoadFile parses a single YAML template file
func LoadFile(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var t models.Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if t.ID == "" {
		t.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	if t.Category == "" {
		t.Category = "Custom"
	}
	t.FilePath = path
	return &t, nil
}

// Save writes t as YAML into dir and returns the file path
func Save(dir string, t models.Template) (string, error) {
	if t.ID == "" {
		return "", fmt.Errorf("template id is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create template directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("failed to encode template: %w", err)
	}

	path := filepath.Join(dir, t.ID+".yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write template file: %w", err)
	}
	return path, nil
}

// All returns every template in catalogue order
func (c *Catalog) All() []models.Template {
	out := make([]models.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Get looks a template up by ID
func (c *Catalog) Get(id string) (models.Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

// ByCategory returns the templates in category, in catalogue order
func (c *Catalog) ByCategory(category string) []models.Template {
	var out []models.Template
	for _, t := range c.templates {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the known categories followed by any extra ones used by
// user templates, in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cat := range Categories {
		seen[cat] = true
		out = append(out, cat)
	}
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Apply overlays the template's non-empty fields onto fs
func Apply(t models.Template, fs models.FieldSet) models.FieldSet {
	return fs.Merge(t.Fields)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
