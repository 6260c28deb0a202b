// Package export writes generated prompts to files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/renderer"
)

// Format selects the export document
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" (or "txt") and "json"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want text or json)", s)
}

// Extension returns the file extension for f, without the dot
func (f Format) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

// Render produces the export document for p
func Render(p models.GeneratedPrompt, f Format) (string, error) {
	switch f {
	case FormatText:
		return renderer.Text(p), nil
	case FormatJSON:
		return renderer.JSON(p)
	}
	return "", fmt.Errorf("unsupported export format %q", f)
}

// Filename returns "<title or prompt>.<ext>" with unsafe characters replaced
func Filename(p models.GeneratedPrompt, f Format) string {
	base := sanitize(p.Name)
	if base == "" {
		base = "prompt"
	}
	return base + "." + f.Extension()
}

func sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '-'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	return strings.Trim(strings.TrimSpace(cleaned), ".")
}

// Write renders p in format f and writes it into dir. The document is written
// to a temp file in dir first and renamed into place, so a failed export never
// leaves a partial file behind. Returns the written path.
func Write(dir string, p models.GeneratedPrompt, f Format) (string, error) {
	content, err := Render(p, f)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".luma-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	path := filepath.Join(dir, Filename(p, f))
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to move export into place: %w", err)
	}
	renamed = true
	return path, nil
}
