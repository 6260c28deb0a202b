package models

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
)

func TestTemplateListItem(t *testing.T) {
	var item list.DefaultItem = Template{
		ID:       "debug-code",
		Name:     "Debug Code Issue",
		Category: "Coding Help",
		Summary:  "Get help debugging specific code problems",
		Icon:     "🐛",
	}

	if got := item.Title(); got != "🐛 Debug Code Issue" {
		t.Errorf("Title() = %q", got)
	}
	if got := item.Description(); got != "Coding Help • Get help debugging specific code problems" {
		t.Errorf("Description() = %q", got)
	}
	if got := item.FilterValue(); got != "Debug Code Issue Coding Help" {
		t.Errorf("FilterValue() = %q", got)
	}
}

func TestGeneratedPromptListItem(t *testing.T) {
	var item list.DefaultItem = GeneratedPrompt{Name: "Fix my test"}
	if got := item.Title(); got != "Fix my test" {
		t.Errorf("Title() = %q", got)
	}
	if got := (GeneratedPrompt{}).Title(); got != "Untitled prompt" {
		t.Errorf("empty Title() = %q", got)
	}
}
