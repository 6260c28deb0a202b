package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dpshade/luma/internal/models"
)

// Test data
const (
	testClaudeCommand = `---
allowed-tools: [Write, Edit, MultiEdit]
description: Create a new React component
---
# Create React Component

Create a new React component named $COMPONENT_NAME with typed props.`

	testClaudeAgent = `---
name: go-reviewer
description: Reviews Go code for idiom and safety
tools: Read, Grep
---
You are a meticulous Go reviewer. Focus on error handling and concurrency.`
)

func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	files := map[string]string{
		".claude/commands/frontend/component.md": testClaudeCommand,
		".claude/commands/notes.txt":             "not a command",
		".claude/commands/empty.md":              "---\ndescription: nothing\n---\n",
		".claude/commands/broken.md":             "---\ndescription: [unterminated\n",
		".claude/agents/go_reviewer.md":          testClaudeAgent,
	}

	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
	return tmpDir
}

func findTemplate(result *ImportResult, id string) *models.Template {
	for i := range result.Templates {
		if result.Templates[i].ID == id {
			return &result.Templates[i]
		}
	}
	return nil
}

func TestClaudeCodeImporter_ImportCommands(t *testing.T) {
	tmpDir := setupTestEnvironment(t)

	result, err := NewClaudeCodeImporter().Import(ImportOptions{Path: tmpDir})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(result.Templates) != 2 {
		t.Fatalf("Expected 2 templates, got %d", len(result.Templates))
	}
	if len(result.Errors) != 2 {
		t.Errorf("Expected 2 per-file errors (empty, broken), got %v", result.Errors)
	}

	cmd := findTemplate(result, "claude-code-command-frontend-component")
	if cmd == nil {
		t.Fatal("Expected command template")
	}
	if cmd.Name != "/frontend-component" {
		t.Errorf("Expected slash-command name, got %q", cmd.Name)
	}
	if cmd.Category != CategoryCommands {
		t.Errorf("Expected category %q, got %q", CategoryCommands, cmd.Category)
	}
	if cmd.Summary != "Create a new React component" {
		t.Errorf("Unexpected description %q", cmd.Summary)
	}
	if cmd.Fields.Task != "Create a new React component named $COMPONENT_NAME with typed props." {
		t.Errorf("Expected body without heading as task, got %q", cmd.Fields.Task)
	}
	if cmd.Fields.Constraints != "Only use these tools: Write, Edit, MultiEdit" {
		t.Errorf("Unexpected constraints %q", cmd.Fields.Constraints)
	}
}

func TestClaudeCodeImporter_ImportAgents(t *testing.T) {
	tmpDir := setupTestEnvironment(t)

	result, err := NewClaudeCodeImporter().Import(ImportOptions{Path: tmpDir})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	agent := findTemplate(result, "claude-code-agent-go-reviewer")
	if agent == nil {
		t.Fatal("Expected agent template")
	}
	if agent.Name != "go-reviewer" {
		t.Errorf("Expected frontmatter name, got %q", agent.Name)
	}
	if agent.Fields.Role != "You are a meticulous Go reviewer. Focus on error handling and concurrency." {
		t.Errorf("Expected agent prompt as role, got %q", agent.Fields.Role)
	}
	if agent.Fields.Constraints != "Only use these tools: Read, Grep" {
		t.Errorf("Unexpected constraints %q", agent.Fields.Constraints)
	}
}

func TestClaudeCodeImporter_ClaudeDirAndUserLevel(t *testing.T) {
	tmpDir := setupTestEnvironment(t)
	claudeDir := filepath.Join(tmpDir, ".claude")

	importer := NewClaudeCodeImporter()
	importer.homeDir = func() (string, error) { return tmpDir, nil }

	// the project and the user-level dir are the same tree; duplicates collapse
	result, err := importer.Import(ImportOptions{Path: tmpDir, UserLevel: true})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 2 {
		t.Errorf("Expected duplicates to collapse to 2 templates, got %d", len(result.Templates))
	}

	result, err = importer.Import(ImportOptions{Path: claudeDir})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 2 {
		t.Errorf("Expected a .claude path to be scanned directly, got %d", len(result.Templates))
	}
}

func TestClaudeCodeImporter_NothingToImport(t *testing.T) {
	result, err := NewClaudeCodeImporter().Import(ImportOptions{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 0 || len(result.Errors) != 0 {
		t.Errorf("Expected empty result, got %+v", result)
	}
}

func TestParseFrontmatter(t *testing.T) {
	fm, body, err := parseFrontmatter([]byte("no frontmatter here\n"))
	if err != nil || fm != nil || body != "no frontmatter here" {
		t.Errorf("Unexpected result: %v %q %v", fm, body, err)
	}

	if _, _, err := parseFrontmatter([]byte("---\ndescription: x\n")); err == nil {
		t.Error("Expected error for unterminated frontmatter")
	}
}

func TestStripTitle(t *testing.T) {
	tests := map[string]string{
		"# Title\n\nBody":  "Body",
		"# Only a heading": "# Only a heading",
		"Plain body":       "Plain body",
	}
	for in, want := range tests {
		if got := stripTitle(in); got != want {
			t.Errorf("stripTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
