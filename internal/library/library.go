// Package library persists generated prompts as one JSON array under a single
// storage key, newest first.
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/storage"
)

// Key is the storage key holding the saved prompts
const Key = "luma-prompts"

// AllTemplates matches every record in Filter
const AllTemplates = "all"

// Library is the persistence collaborator for generated prompts.
// Failures are logged and returned; callers that have nothing useful to do
// with them may drop the error and the library stays unchanged.
type Library struct {
	store  storage.Store
	logger *zap.Logger

	// serializes read-modify-write so concurrent saves never lose updates
	mu sync.Mutex
}

// New creates a library over store
func New(store storage.Store, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Library{store: store, logger: logger.Named("library")}
}

// load reads the stored array. Missing or corrupt data reads as empty; only
// store failures are returned.
func (l *Library) load(ctx context.Context) ([]models.GeneratedPrompt, error) {
	raw, ok, err := l.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}
	if !ok || raw == "" {
		return []models.GeneratedPrompt{}, nil
	}

	var prompts []models.GeneratedPrompt
	if err := json.Unmarshal([]byte(raw), &prompts); err != nil {
		l.logger.Warn("discarding unreadable library data", zap.Error(err))
		return []models.GeneratedPrompt{}, nil
	}
	if prompts == nil {
		prompts = []models.GeneratedPrompt{}
	}
	return prompts, nil
}

func (l *Library) write(ctx context.Context, prompts []models.GeneratedPrompt) error {
	data, err := json.Marshal(prompts)
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}
	if err := l.store.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("failed to write library: %w", err)
	}
	return nil
}

// Save upserts p: any record with the same ID is removed and p is prepended
func (l *Library) Save(ctx context.Context, p models.GeneratedPrompt) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.save(ctx, p); err != nil {
		l.logger.Error("failed to save prompt", zap.String("id", p.ID), zap.Error(err))
		return err
	}
	l.logger.Debug("saved prompt", zap.String("id", p.ID))
	return nil
}

func (l *Library) save(ctx context.Context, p models.GeneratedPrompt) error {
	prompts, err := l.load(ctx)
	if err != nil {
		return err
	}
	out := make([]models.GeneratedPrompt, 0, len(prompts)+1)
	out = append(out, p)
	for _, existing := range prompts {
		if existing.ID != p.ID {
			out = append(out, existing)
		}
	}
	return l.write(ctx, out)
}

// List returns every saved prompt, newest first. Failures yield an empty list.
func (l *Library) List(ctx context.Context) []models.GeneratedPrompt {
	prompts, err := l.load(ctx)
	if err != nil {
		l.logger.Error("failed to list prompts", zap.Error(err))
		return []models.GeneratedPrompt{}
	}
	return prompts
}

// Get looks a saved prompt up by ID
func (l *Library) Get(ctx context.Context, id string) (models.GeneratedPrompt, bool) {
	for _, p := range l.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return models.GeneratedPrompt{}, false
}

// Delete removes the prompt with the given ID and reports whether one existed.
// Deleting an unknown ID is a no-op.
func (l *Library) Delete(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prompts, err := l.load(ctx)
	if err != nil {
		l.logger.Error("failed to delete prompt", zap.String("id", id), zap.Error(err))
		return false, err
	}

	out := make([]models.GeneratedPrompt, 0, len(prompts))
	for _, p := range prompts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if len(out) == len(prompts) {
		return false, nil
	}

	if err := l.write(ctx, out); err != nil {
		l.logger.Error("failed to delete prompt", zap.String("id", id), zap.Error(err))
		return false, err
	}
	l.logger.Debug("deleted prompt", zap.String("id", id))
	return true, nil
}

// Import saves each record and returns how many were written. Records are
// saved last to first so records[0] stays at the front, keeping the order of
// an exported library.
func (l *Library) Import(ctx context.Context, records []models.GeneratedPrompt) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.ID == "" {
			l.logger.Warn("skipping record without id", zap.Int("index", i))
			continue
		}
		if err := l.save(ctx, r); err != nil {
			l.logger.Error("import stopped", zap.Int("imported", n), zap.Error(err))
			return n, err
		}
		n++
	}
	return n, nil
}

// Filter returns saved prompts matching query and template
func (l *Library) Filter(ctx context.Context, query, template string) []models.GeneratedPrompt {
	return Filter(l.List(ctx), query, template)
}

// Search ranks saved prompts against query by fuzzy match
func (l *Library) Search(ctx context.Context, query string) []models.GeneratedPrompt {
	return Search(l.List(ctx), query)
}

// Templates returns the distinct template tags used by saved prompts
func (l *Library) Templates(ctx context.Context) []string {
	return Templates(l.List(ctx))
}

// Filter keeps prompts whose title or prose contains query (case-insensitive)
// and whose template tag equals template. An empty template or "all" matches
// every tag.
func Filter(prompts []models.GeneratedPrompt, query, template string) []models.GeneratedPrompt {
	q := strings.ToLower(query)
	out := []models.GeneratedPrompt{}
	for _, p := range prompts {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.HumanOptimized), q) {
			continue
		}
		if template != "" && template != AllTemplates && p.Template != template {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Search ranks prompts by fuzzy match of query against title, prose and
// template tag. An empty query returns prompts unchanged.
func Search(prompts []models.GeneratedPrompt, query string) []models.GeneratedPrompt {
	if query == "" {
		return prompts
	}

	var searchStrings []string
	for _, p := range prompts {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s", p.Name, p.Template, p.HumanOptimized))
	}

	matches := fuzzy.Find(query, searchStrings)

	results := []models.GeneratedPrompt{}
	for _, match := range matches {
		results = append(results, prompts[match.Index])
	}
	return results
}

// Templates returns the sorted distinct non-empty template tags in prompts
func Templates(prompts []models.GeneratedPrompt) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range prompts {
		if p.Template != "" && !seen[p.Template] {
			seen[p.Template] = true
			out = append(out, p.Template)
		}
	}
	sort.Strings(out)
	return out
}
