// Package service wires the prompt generator to the library, template,
// theme, export and clipboard collaborators. Both the CLI and the TUI go
// through it.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dpshade/luma/internal/clipboard"
	"github.com/dpshade/luma/internal/config"
	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/export"
	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/importer"
	"github.com/dpshade/luma/internal/library"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/storage"
	"github.com/dpshade/luma/internal/templates"
	"github.com/dpshade/luma/internal/theme"
	"github.com/dpshade/luma/internal/validation"
)

// titleLength is the number of task characters kept in a prompt title
const titleLength = 50

// Service provides business logic for prompt building
type Service struct {
	cfg      *config.Config
	store    storage.Store
	library  *library.Library
	catalog  *templates.Catalog
	themes   *theme.Manager
	logger   *zap.Logger
	now      func() time.Time
	newID    func() (string, error)
	copyText func(string) error

	clipboardReady func() bool
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the UUIDv7 id source
func WithIDs(newID func() (string, error)) Option {
	return func(s *Service) { s.newID = newID }
}

// WithClipboard replaces the system clipboard
func WithClipboard(copyText func(string) error) Option {
	return func(s *Service) {
		s.copyText = copyText
		s.clipboardReady = func() bool { return true }
	}
}

// WithClipboardCheck replaces clipboard availability detection
func WithClipboardCheck(ready func() bool) Option {
	return func(s *Service) { s.clipboardReady = ready }
}

// WithThemeDetector replaces terminal background detection
func WithThemeDetector(detect func() bool) Option {
	return func(s *Service) { s.themes.WithDetector(detect) }
}

// New opens the configured store and template directory
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Service, error) {
	store, err := storage.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	catalog, err := templates.Load(cfg.TemplatesDir(), logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return NewWithStore(cfg, store, catalog, logger, opts...), nil
}

// NewWithStore builds a service over an already-open store
func NewWithStore(cfg *config.Config, store storage.Store, catalog *templates.Catalog, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if catalog == nil {
		catalog = templates.NewCatalog(templates.Builtin)
	}

	s := &Service{
		cfg:      cfg,
		store:    store,
		library:  library.New(store, logger),
		catalog:  catalog,
		themes:   theme.NewManager(store, cfg.Theme, logger),
		logger:   logger,
		now:      time.Now,
		newID:    newUUID,
		copyText: clipboard.Copy,

		clipboardReady: clipboard.IsClipboardAvailable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Close releases the store
func (s *Service) Close() error {
	return s.store.Close()
}

// Config returns the resolved configuration
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Logger returns the shared logger
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Generate composes fields into a new prompt and validates it. templateName
// tags the prompt with the template it started from and may be empty.
func (s *Service) Generate(fields models.FieldSet, templateName string) (models.GeneratedPrompt, models.ValidationResult, error) {
	id, err := s.newID()
	if err != nil {
		return models.GeneratedPrompt{}, models.ValidationResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "Failed to generate prompt id")
	}

	comp := generator.Compose(fields)
	p := models.GeneratedPrompt{
		ID:               id,
		Name:             Title(fields.Task),
		HumanOptimized:   comp.Prose,
		MachineOptimized: comp.Structured,
		Data:             fields,
		Template:         templateName,
		CreatedAt:        s.now(),
	}
	return p, generator.Validate(fields), nil
}

// Instant expands a one-line idea and generates from the expansion
func (s *Service) Instant(text string) (models.GeneratedPrompt, models.ValidationResult, error) {
	fields := generator.Expand(text)
	s.logger.Debug("expanded instant prompt", zap.String("domain", generator.Domain(text)))
	return s.Generate(fields, "")
}

// Validate scores a field-set
func (s *Service) Validate(fields models.FieldSet) models.ValidationResult {
	return generator.Validate(fields)
}

// Title returns the first 50 characters of task, with "..." when truncated
func Title(task string) string {
	if utf8.RuneCountInString(task) <= titleLength {
		return task
	}
	return string([]rune(task)[:titleLength]) + "..."
}

// SavePrompt stores p at the front of the library, replacing any prompt with the same ID
func (s *Service) SavePrompt(ctx context.Context, p models.GeneratedPrompt) error {
	if err := s.library.Save(ctx, p); err != nil {
		return apperrors.StorageError("save prompt", err)
	}
	return nil
}

// ListPrompts returns the library, newest first
func (s *Service) ListPrompts(ctx context.Context) []models.GeneratedPrompt {
	return s.library.List(ctx)
}

// GetPrompt returns the saved prompt with the given ID
func (s *Service) GetPrompt(ctx context.Context, id string) (models.GeneratedPrompt, error) {
	p, ok := s.library.Get(ctx, id)
	if !ok {
		return models.GeneratedPrompt{}, apperrors.NotFoundError(fmt.Sprintf("prompt %s", id))
	}
	return p, nil
}

// DeletePrompt removes a saved prompt
func (s *Service) DeletePrompt(ctx context.Context, id string) error {
	removed, err := s.library.Delete(ctx, id)
	if err != nil {
		return apperrors.StorageError("delete prompt", err)
	}
	if !removed {
		return apperrors.NotFoundError(fmt.Sprintf("prompt %s", id))
	}
	return nil
}

// FilterPrompts applies the library search box and template filter
func (s *Service) FilterPrompts(ctx context.Context, query, template string) []models.GeneratedPrompt {
	return s.library.Filter(ctx, query, template)
}

// SearchPrompts ranks saved prompts by fuzzy match
func (s *Service) SearchPrompts(ctx context.Context, query string) []models.GeneratedPrompt {
	return s.library.Search(ctx, query)
}

// PromptTemplates returns the template tags used by saved prompts
func (s *Service) PromptTemplates(ctx context.Context) []string {
	return s.library.Templates(ctx)
}

// ImportPrompts reads a JSON array of prompts (the export format) and saves them
func (s *Service) ImportPrompts(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to read import file")
	}

	var records []models.GeneratedPrompt
	if err := json.Unmarshal(data, &records); err != nil {
		// a single exported prompt is accepted too
		var single models.GeneratedPrompt
		if err2 := json.Unmarshal(data, &single); err2 != nil || single.ID == "" {
			return 0, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Import file is not a prompt or list of prompts")
		}
		records = []models.GeneratedPrompt{single}
	}

	n, err := s.library.Import(ctx, records)
	if err != nil {
		return n, apperrors.StorageError("import prompts", err)
	}
	s.logger.Info("imported prompts", zap.String("path", path), zap.Int("count", n))
	return n, nil
}

// Export writes p as text or json into dir, defaulting to the configured export dir
func (s *Service) Export(p models.GeneratedPrompt, format, dir string) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", apperrors.InvalidInputError(err.Error())
	}
	if dir == "" {
		dir = s.cfg.ExportDir
	}

	path, err := export.Write(dir, p, f)
	if err != nil {
		s.logger.Error("export failed", zap.String("id", p.ID), zap.Error(err))
		return "", apperrors.ExportError(err)
	}
	s.logger.Info("exported prompt", zap.String("id", p.ID), zap.String("path", path))
	return path, nil
}

// Copy puts text on the system clipboard
func (s *Service) Copy(text string) error {
	if err := s.copyText(text); err != nil {
		s.logger.Warn("clipboard copy failed", zap.Error(err))
		if clipboard.IsUnavailable(err) {
			return apperrors.ClipboardError(err)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeExportFailure, "Copy failed")
	}
	return nil
}

// ClipboardAvailable reports whether Copy can reach a clipboard utility
func (s *Service) ClipboardAvailable() bool {
	return s.clipboardReady()
}

// Templates returns the template catalogue
func (s *Service) Templates() *templates.Catalog {
	return s.catalog
}

// GetTemplate looks a template up by ID
func (s *Service) GetTemplate(id string) (models.Template, error) {
	t, ok := s.catalog.Get(id)
	if !ok {
		return models.Template{}, apperrors.NotFoundError(fmt.Sprintf("template %s", id))
	}
	return t, nil
}

// SaveTemplate writes t to the user template directory and adds it to the catalogue
func (s *Service) SaveTemplate(t models.Template) (string, error) {
	if result := validation.ValidateTemplate(t); !result.Valid {
		return "", result.ToAppError()
	}
	path, err := templates.Save(s.cfg.TemplatesDir(), t)
	if err != nil {
		return "", apperrors.StorageError("save template", err)
	}
	t.FilePath = path
	s.catalog = templates.NewCatalog(s.catalog.All(), []models.Template{t})
	return path, nil
}

// ImportClaudeCode converts Claude Code commands and agents into templates.
// Unless dryRun is set they are written to the template directory. Per-file
// problems are logged and returned alongside the templates.
func (s *Service) ImportClaudeCode(opts importer.ImportOptions, dryRun bool) ([]models.Template, []error, error) {
	result, err := importer.NewClaudeCodeImporter().Import(opts)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Failed to scan for Claude Code files")
	}
	valid := result.Templates[:0]
	for _, t := range result.Templates {
		if check := validation.ValidateTemplate(t); !check.Valid {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", t.ID, check.ToAppError()))
			continue
		}
		valid = append(valid, t)
	}
	result.Templates = valid
	for _, e := range result.Errors {
		s.logger.Warn("skipped Claude Code file", zap.Error(e))
	}
	if dryRun || len(result.Templates) == 0 {
		return result.Templates, result.Errors, nil
	}

	saved := make([]models.Template, 0, len(result.Templates))
	for _, t := range result.Templates {
		path, err := templates.Save(s.cfg.TemplatesDir(), t)
		if err != nil {
			return saved, result.Errors, apperrors.StorageError("save template", err)
		}
		t.FilePath = path
		saved = append(saved, t)
	}
	s.catalog = templates.NewCatalog(s.catalog.All(), saved)
	s.logger.Info("imported Claude Code templates", zap.Int("count", len(saved)))
	return saved, result.Errors, nil
}

// Theme returns the current theme
func (s *Service) Theme(ctx context.Context) theme.Theme {
	return s.themes.Load(ctx)
}

// SetTheme stores t
func (s *Service) SetTheme(ctx context.Context, t theme.Theme) {
	s.themes.Save(ctx, t)
}

// ToggleTheme flips and stores the theme
func (s *Service) ToggleTheme(ctx context.Context) theme.Theme {
	return s.themes.Toggle(ctx)
}
