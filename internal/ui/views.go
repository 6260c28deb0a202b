package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/library"
)

// View renders the current view
func (m Model) View() string {
	var mainView string

	switch m.viewMode {
	case ViewModeSelect:
		mainView = m.renderModeSelectView()
	case ViewTemplates:
		mainView = m.renderTemplatesView()
	case ViewWizard:
		mainView = m.renderWizardView()
	case ViewInstant:
		mainView = m.renderInstantView()
	case ViewResult:
		mainView = m.renderResultView()
	case ViewLibrary:
		mainView = m.renderLibraryView()
	default:
		mainView = "Unknown view mode"
	}

	if m.statusMsg != "" {
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, m.statusStyle.Render(m.statusMsg)))
	}
	return AddMainPadding(mainView)
}

func (m Model) renderModeSelectView() string {
	elements := []string{
		CreateHeader("LUMA"),
		CreateMetadata("Structured AI prompts in seven steps"),
		"",
	}
	elements = append(elements, m.modeSelect.View()...)
	elements = append(elements, CreateHelp([]string{"enter select", "l library", "t theme", "q quit"}, m.width))
	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderTemplatesView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		CreateHeader("Choose a starting point"),
		m.templateList.View(),
		CreateHelp([]string{"enter start", "/ filter", "esc back", "t theme"}, m.width),
	)
}

func (m Model) renderWizardView() string {
	f := m.wizardForm
	w := f.Wizard()
	step := w.Step()

	label := fmt.Sprintf("Step %d of %d: %s", w.Index()+1, w.Len(), step.Title)
	if step.Required {
		label += " *"
	}

	elements := []string{
		CreateHeader("Guided prompt"),
		CreateStepIndicator(generator.Steps, w.States()),
		CreateProgressBar(w.Progress(), 40),
		"",
		StyleFormLabel.Render(label),
		StyleFormHelp.Render(step.Description),
		f.View(),
	}

	if f.Blocked() {
		elements = append(elements, StyleError.Render(step.Title+" is required"))
	}

	live := m.service.Validate(f.Fields())
	elements = append(elements,
		CreateScore(live),
		CreateHelp([]string{"tab next", "shift+tab back", "esc templates"}, m.width),
	)
	if w.IsLast() {
		elements[len(elements)-1] = CreateHelp([]string{"tab generate", "shift+tab back", "esc templates"}, m.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderInstantView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		CreateHeader("Instant prompt"),
		StyleFormHelp.Render("Describe what you need in one line"),
		"",
		m.instantForm.View(),
		"",
		CreateHelp([]string{"enter generate", "tab example", "esc back"}, m.width),
	)
}

func (m Model) renderResultView() string {
	if m.result == nil {
		return "No prompt generated"
	}

	v := m.validation
	status := "ready"
	if !v.IsValid {
		status = "incomplete"
	}

	rendering := "Human-Optimized"
	if m.showMachine {
		rendering = "Machine-Optimized"
	}

	meta := m.result.Description()
	if m.saved {
		meta = "saved • " + meta
	}

	elements := []string{
		CreateHeader(m.result.Title()),
		CreateMetadata(meta),
		lipgloss.JoinHorizontal(lipgloss.Left, CreateScore(v), StyleTextMuted.Render(fmt.Sprintf("  %s, %s", v.Band(), status))),
	}
	for _, warning := range v.Warnings {
		elements = append(elements, StyleWarning.Render("⚠ "+warning))
	}
	for _, s := range v.Suggestions {
		elements = append(elements, StyleTextMuted.Render("  • "+s))
	}

	elements = append(elements,
		StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleSubtitle.Render(rendering),
			m.viewport.View(),
		)),
		CreateHelp(m.helpParts("m human/machine", "s save", "x .txt", "X .json", "c copy", "e edit", "l library", "esc back"), m.width),
	)
	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderLibraryView() string {
	filter := "all templates"
	if m.libraryTemplate != library.AllTemplates {
		filter = m.libraryTemplate
	}

	body := m.promptList.View()
	if len(m.promptList.Items()) == 0 {
		body = StyleTextMuted.Render("No saved prompts yet. Generate one and press s to save it.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		CreateHeader("Library"),
		CreateMetadata(fmt.Sprintf("%d prompts • %s", len(m.promptList.Items()), filter)),
		body,
		CreateHelp(m.helpParts("enter open", "/ search", "f template", "d delete", "x .txt", "X .json", "c copy", "esc back"), m.width),
	)
}

// helpParts drops the copy hint when no clipboard utility is installed
func (m Model) helpParts(parts ...string) []string {
	if m.service.ClipboardAvailable() {
		return parts
	}
	var kept []string
	for _, p := range parts {
		if p != "c copy" {
			kept = append(kept, p)
		}
	}
	return kept
}
