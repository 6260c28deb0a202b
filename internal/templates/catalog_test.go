package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dpshade/luma/internal/models"
)

func TestBuiltin_Catalogue(t *testing.T) {
	c := NewCatalog(Builtin)

	assert.Len(t, c.All(), 10)
	for _, cat := range Categories {
		assert.Len(t, c.ByCategory(cat), 2, cat)
	}

	tmpl, ok := c.Get("debug-code")
	require.True(t, ok)
	assert.Equal(t, "Debug Code Issue", tmpl.Name)
	assert.Empty(t, tmpl.Fields.Context)
}

func TestApply_OverlaysNonEmptyFields(t *testing.T) {
	tmpl, _ := NewCatalog(Builtin).Get("study-plan")
	fs := Apply(tmpl, models.FieldSet{Task: "mine", Context: "my context", Iteration: "ask"})

	assert.Equal(t, tmpl.Fields.Role, fs.Role)
	assert.Equal(t, tmpl.Fields.Task, fs.Task)
	assert.Equal(t, "my context", fs.Context)
	assert.Equal(t, "ask", fs.Iteration)
}

func TestLoad_UserTemplatesOverrideAndExtend(t *testing.T) {
	dir := t.TempDir()

	override := `id: debug-code
name: My Debugger
category: Coding Help
description: local override
fields:
  role: You are a Go specialist
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debug.yaml"), []byte(override), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "haiku.yml"), []byte("fields:\n  task: Write a haiku\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("fields: [unterminated"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	c, err := Load(dir, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, c.All(), 11)
	assert.Equal(t, "debug-code", c.All()[0].ID, "override keeps catalogue position")
	assert.Equal(t, "My Debugger", c.All()[0].Name)

	haiku, ok := c.Get("haiku")
	require.True(t, ok)
	assert.Equal(t, "Custom", haiku.Category)
	assert.Equal(t, "Write a haiku", haiku.Fields.Task)
	assert.Contains(t, c.Categories(), "Custom")
}

func TestLoad_MissingDirectory(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent"), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.All(), len(Builtin))
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, models.Template{
		ID:       "release-notes",
		Name:     "Release Notes",
		Category: "Writing",
		Fields:   models.FieldSet{Role: "You are a technical writer", Format: "Markdown bullets"},
	})
	require.NoError(t, err)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Release Notes", loaded.Name)
	assert.Equal(t, "Markdown bullets", loaded.Fields.Format)

	_, err = Save(dir, models.Template{})
	assert.Error(t, err)
}
