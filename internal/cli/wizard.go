package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/templates"
)

// skipTemplate is the select value for starting from scratch
const skipTemplate = ""

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	colorText   = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
)

// lumaHuhTheme returns the huh theme used by the guided wizard
func lumaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorText)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorText).Background(colorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

// fieldPtr returns a pointer to the named field of fs
func fieldPtr(fs *models.FieldSet, name string) *string {
	switch name {
	case models.FieldRole:
		return &fs.Role
	case models.FieldTask:
		return &fs.Task
	case models.FieldContext:
		return &fs.Context
	case models.FieldFormat:
		return &fs.Format
	case models.FieldConstraints:
		return &fs.Constraints
	case models.FieldExamples:
		return &fs.Examples
	case models.FieldIteration:
		return &fs.Iteration
	}
	panic(fmt.Sprintf("unknown field %q", name))
}

func requiredField(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(title))
		}
		return nil
	}
}

// templateForm asks for a starting template; an empty selection means none
func templateForm(catalog *templates.Catalog, value *string) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("Start from scratch", skipTemplate)}
	for _, cat := range catalog.Categories() {
		for _, t := range catalog.ByCategory(cat) {
			options = append(options, huh.NewOption(fmt.Sprintf("%s  (%s)", t.Title(), t.Category), t.ID))
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a template").
				Description("Templates pre-fill role, task, format and constraints").
				Options(options...).
				Value(value),
		),
	).WithTheme(lumaHuhTheme())
}

// guidedForm walks the seven framework steps, one page each, editing fs in place
func guidedForm(fs *models.FieldSet) *huh.Form {
	groups := make([]*huh.Group, 0, len(generator.Steps))
	for i, step := range generator.Steps {
		field := huh.NewText().
			Title(fmt.Sprintf("Step %d of %d: %s", i+1, len(generator.Steps), step.Title)).
			Description(step.Description).
			Placeholder(step.Placeholder).
			Lines(4).
			Value(fieldPtr(fs, step.ID))
		if step.Required {
			field = field.Validate(requiredField(step.Title))
		}
		groups = append(groups, huh.NewGroup(field))
	}
	return huh.NewForm(groups...).WithTheme(lumaHuhTheme())
}
