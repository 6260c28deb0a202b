package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/renderer"
)

func sample(title string) models.GeneratedPrompt {
	return models.GeneratedPrompt{
		ID:               "id-1",
		Name:             title,
		HumanOptimized:   "You are a poet\n\n**Task:** Write a haiku",
		MachineOptimized: `{"primary_task": "Write a haiku"}`,
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "TXT": FormatText, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		f     Format
		want  string
	}{
		{"Write a haiku", FormatText, "Write a haiku.txt"},
		{"Write a haiku", FormatJSON, "Write a haiku.json"},
		{"", FormatText, "prompt.txt"},
		{"a/b\\c:d", FormatText, "a-b-c-d.txt"},
		{"tab\there", FormatJSON, "tabhere.json"},
		{"..", FormatText, "prompt.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(sample(tt.title), tt.f), tt.title)
	}
}

func TestWrite_Text(t *testing.T) {
	dir := t.TempDir()
	p := sample("Write a haiku")

	path, err := Write(dir, p, FormatText)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Write a haiku.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, renderer.Text(p), string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file was renamed, not copied")
}

func TestWrite_JSON(t *testing.T) {
	dir := t.TempDir()
	p := sample("")

	path, err := Write(dir, p, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "prompt.json", filepath.Base(path))

	want, err := renderer.JSON(p)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestWrite_FailureLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	// a directory squatting on the target name makes the rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "blocked.txt"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked.txt", "keep"), []byte("x"), 0644))

	_, err := Write(dir, sample("blocked"), FormatText)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blocked.txt", entries[0].Name())
}

func TestWrite_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(dir, sample("x"), Format("pdf"))
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
