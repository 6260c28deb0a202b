// Package theme persists the light/dark preference.
package theme

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dpshade/luma/internal/storage"
)

// Key is the storage key holding the preference
const Key = "luma-theme"

// Theme is either Light or Dark
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Auto defers to terminal detection
const Auto = "auto"

// Parse converts a stored or configured value; ok is false for anything else
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// IsDark reports whether t is Dark
func (t Theme) IsDark() bool {
	return t == Dark
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Manager loads and stores the preference. Failures are logged and absorbed.
type Manager struct {
	store    storage.Store
	override string
	detect   func() bool
	logger   *zap.Logger
}

// NewManager creates a manager. override is the configured theme ("light",
// "dark" or "auto"/empty).
func NewManager(store storage.Store, override string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    store,
		override: override,
		detect:   lipgloss.HasDarkBackground,
		logger:   logger.Named("theme"),
	}
}

// WithDetector replaces terminal background detection
func (m *Manager) WithDetector(detect func() bool) *Manager {
	m.detect = detect
	return m
}

// Load returns the stored preference, else the configured override, else the
// detected terminal background
func (m *Manager) Load(ctx context.Context) Theme {
	raw, ok, err := m.store.Get(ctx, Key)
	if err != nil {
		m.logger.Warn("failed to read theme", zap.Error(err))
	}
	if t, valid := Parse(raw); ok && valid {
		return t
	}
	if t, valid := Parse(m.override); valid {
		return t
	}
	if m.detect() {
		return Dark
	}
	return Light
}

// Save stores t
func (m *Manager) Save(ctx context.Context, t Theme) {
	if err := m.store.Set(ctx, Key, string(t)); err != nil {
		m.logger.Warn("failed to save theme", zap.String("theme", string(t)), zap.Error(err))
	}
}

// Toggle flips the current theme, stores it and returns the new value
func (m *Manager) Toggle(ctx context.Context) Theme {
	next := m.Load(ctx).Opposite()
	m.Save(ctx, next)
	return next
}
