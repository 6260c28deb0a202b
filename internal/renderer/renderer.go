// Package renderer turns a generated prompt into export documents and
// terminal previews.
package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/models"
)

// DefaultTitle is used when a prompt has no title
const DefaultTitle = "Generated Prompt"

// Text renders the plain-text export document
func Text(p models.GeneratedPrompt) string {
	title := p.Name
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "## Human-Optimized\n%s\n\n", p.HumanOptimized)
	fmt.Fprintf(&b, "## Machine-Optimized\n%s", p.MachineOptimized)
	return b.String()
}

// JSON renders the full record with two-space indentation
func JSON(p models.GeneratedPrompt) (string, error) {
	out, err := generator.EncodeJSON(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return out, nil
}

// Markdown builds the preview document shown in the terminal. The machine
// form is wrapped in a json code fence.
func Markdown(p models.GeneratedPrompt, machine bool) string {
	if machine {
		return "```json\n" + p.MachineOptimized + "\n```\n"
	}
	return p.HumanOptimized + "\n"
}

// NewTermRenderer creates a glamour renderer for the given theme. GLAMOUR_STYLE
// overrides the theme.
func NewTermRenderer(wordWrap int, dark bool) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	style := "light"
	if dark {
		style = "dark"
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
		glamour.WithEmoji(),
	)
}

// Preview renders p through r, falling back to the raw document if glamour fails
func Preview(r *glamour.TermRenderer, p models.GeneratedPrompt, machine bool) string {
	doc := Markdown(p, machine)
	if r == nil {
		return doc
	}
	out, err := r.Render(doc)
	if err != nil {
		return doc
	}
	return out
}
