// Package importer turns Claude Code command and agent files into luma
// templates.
package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/luma/internal/models"
)

// Categories assigned to imported templates
const (
	CategoryCommands = "Claude Code Commands"
	CategoryAgents   = "Claude Code Agents"
)

// ImportOptions configures the import process
type ImportOptions struct {
	Path      string // Project or .claude directory; defaults to the working directory
	UserLevel bool   // Also scan ~/.claude
}

// ImportResult contains the results of an import operation
type ImportResult struct {
	Templates []models.Template
	Errors    []error // Per-file failures; the walk continues past them
}

// ClaudeCodeImporter reads .claude/commands and .claude/agents trees
type ClaudeCodeImporter struct {
	homeDir func() (string, error)
}

// NewClaudeCodeImporter creates a new Claude Code importer
func NewClaudeCodeImporter() *ClaudeCodeImporter {
	return &ClaudeCodeImporter{homeDir: os.UserHomeDir}
}

// Import scans the configured paths. Commands become templates whose task is
// the command body; agents become templates whose role is the agent prompt.
func (i *ClaudeCodeImporter) Import(options ImportOptions) (*ImportResult, error) {
	paths, err := i.determinePaths(options)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	seen := make(map[string]bool)
	for _, path := range paths {
		i.importFromPath(path, result, seen)
	}
	return result, nil
}

// determinePaths returns the paths to scan based on options
func (i *ClaudeCodeImporter) determinePaths(options ImportOptions) ([]string, error) {
	var paths []string

	if options.Path != "" {
		paths = append(paths, options.Path)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		paths = append(paths, cwd)
	}

	if options.UserLevel {
		home, err := i.homeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to find home directory: %w", err)
		}
		userClaudeDir := filepath.Join(home, ".claude")
		if userClaudeDir != paths[0] {
			paths = append(paths, userClaudeDir)
		}
	}
	return paths, nil
}

// importFromPath imports from a project directory or a .claude directory
func (i *ClaudeCodeImporter) importFromPath(basePath string, result *ImportResult, seen map[string]bool) {
	root := filepath.Join(basePath, ".claude")
	if filepath.Base(basePath) == ".claude" {
		root = basePath
	}

	i.walk(filepath.Join(root, "commands"), result, seen, i.commandTemplate)
	i.walk(filepath.Join(root, "agents"), result, seen, i.agentTemplate)
}

type convertFunc func(frontmatter map[string]interface{}, body, relPath string) models.Template

// walk converts every .md file under dir. A missing dir is skipped.
func (i *ClaudeCodeImporter) walk(dir string, result *ImportResult, seen map[string]bool, convert convertFunc) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to read %s: %w", path, err))
			return nil
		}

		frontmatter, body, err := parseFrontmatter(content)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to parse %s: %w", path, err))
			return nil
		}
		if body == "" {
			result.Errors = append(result.Errors, fmt.Errorf("%s has no prompt body", path))
			return nil
		}

		relPath, _ := filepath.Rel(dir, path)
		t := convert(frontmatter, body, relPath)
		if seen[t.ID] {
			return nil
		}
		seen[t.ID] = true
		result.Templates = append(result.Templates, t)
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("failed to walk %s: %w", dir, err))
	}
}

func (i *ClaudeCodeImporter) commandTemplate(frontmatter map[string]interface{}, body, relPath string) models.Template {
	return models.Template{
		ID:       generateIDFromPath("command", relPath),
		Name:     "/" + commandName(relPath),
		Category: CategoryCommands,
		Summary:  stringField(frontmatter, "description"),
		Icon:     "⌘",
		Fields:   models.FieldSet{
			Task:        stripTitle(body),
			Constraints: toolsConstraint(frontmatter, "allowed-tools"),
		},
	}
}

func (i *ClaudeCodeImporter) agentTemplate(frontmatter map[string]interface{}, body, relPath string) models.Template {
	name := stringField(frontmatter, "name")
	if name == "" {
		name = extractTitle(body, relPath)
	}
	return models.Template{
		ID:       generateIDFromPath("agent", relPath),
		Name:     name,
		Category: CategoryAgents,
		Summary:  stringField(frontmatter, "description"),
		Icon:     "🤖",
		Fields:   models.FieldSet{
			Role:        stripTitle(body),
			Constraints: toolsConstraint(frontmatter, "tools"),
		},
	}
}

// parseFrontmatter splits YAML frontmatter from the markdown body
func parseFrontmatter(content []byte) (map[string]interface{}, string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, strings.TrimSpace(string(content)), nil
	}

	var frontmatterLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}
	if !closed {
		return nil, "", fmt.Errorf("unterminated frontmatter")
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &frontmatter); err != nil {
		return nil, "", err
	}
	return frontmatter, strings.TrimSpace(strings.Join(contentLines, "\n")), nil
}

// generateIDFromPath creates a template ID from the kind and file path
func generateIDFromPath(kind, relPath string) string {
	return "claude-code-" + kind + "-" + commandName(relPath)
}

// commandName is the slash-command name: path without extension, kebab-cased
func commandName(relPath string) string {
	id := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	id = strings.ReplaceAll(id, string(os.PathSeparator), "-")
	id = strings.ReplaceAll(id, "_", "-")
	return strings.ToLower(id)
}

// extractTitle gets the title from the first heading or the filename
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	name := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	return strings.ReplaceAll(name, "-", " ")
}

// stripTitle drops a leading "# heading" line unless nothing follows it
func stripTitle(body string) string {
	first, rest, _ := strings.Cut(body, "\n")
	if strings.HasPrefix(strings.TrimSpace(first), "# ") {
		if rest = strings.TrimSpace(rest); rest != "" {
			return rest
		}
	}
	return body
}

func stringField(frontmatter map[string]interface{}, key string) string {
	if s, ok := frontmatter[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// toolsConstraint turns a tool list (YAML list or comma string) into a constraint line
func toolsConstraint(frontmatter map[string]interface{}, key string) string {
	var tools []string
	switch v := frontmatter[key].(type) {
	case []interface{}:
		for _, tool := range v {
			if s, ok := tool.(string); ok && s != "" {
				tools = append(tools, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tools = append(tools, s)
			}
		}
	}
	if len(tools) == 0 {
		return ""
	}
	return "Only use these tools: " + strings.Join(tools, ", ")
}
