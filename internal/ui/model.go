package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/export"
	"github.com/dpshade/luma/internal/library"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/renderer"
	"github.com/dpshade/luma/internal/service"
	"github.com/dpshade/luma/internal/templates"
	"github.com/dpshade/luma/internal/theme"
)

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewModeSelect ViewMode = iota
	ViewTemplates
	ViewWizard
	ViewInstant
	ViewResult
	ViewLibrary
)

// origin records how the current result was produced, for edit
type origin int

const (
	originGuided origin = iota
	originInstant
	originLibrary
)

// mode selection values
const (
	modeGuided  = "guided"
	modeInstant = "instant"
	modeLibrary = "library"
)

// Async messages
type libraryLoadedMsg struct {
	prompts   []models.GeneratedPrompt
	templates []string
}

type actionMsg struct {
	status string
	err    error
	saved  bool
	reload bool
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// KeyMap defines all key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Back       key.Binding
	Quit       key.Binding
	Theme      key.Binding
	Library    key.Binding
	Toggle     key.Binding
	Save       key.Binding
	Export     key.Binding
	ExportJSON key.Binding
	Copy       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Filter     key.Binding
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Library: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "library"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "human/machine"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export .txt"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "export .json"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "template filter"),
	),
}

// scratchItem is the "no template" entry at the top of the template list
type scratchItem struct{}

func (scratchItem) FilterValue() string { return "scratch" }
func (scratchItem) Title() string       { return "✨ Start from scratch" }
func (scratchItem) Description() string { return "Fill in all seven steps yourself" }

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	ctx      context.Context
	viewMode ViewMode
	keys     KeyMap
	errors   *apperrors.TUIErrorHandler

	// UI components
	modeSelect   *SelectForm
	templateList list.Model
	promptList   list.Model
	viewport     viewport.Model
	wizardForm   *WizardForm
	instantForm  *InstantForm

	// Result state
	result       *models.GeneratedPrompt
	validation   models.ValidationResult
	origin       origin
	templateName string
	instantText  string
	showMachine  bool
	saved        bool

	// Library state
	libraryTemplate  string
	libraryTemplates []string
	deleteConfirm    bool

	theme           theme.Theme
	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusStyle   lipgloss.Style
	statusTimeout int
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, svc *service.Service) (Model, error) {
	current := svc.Theme(ctx)
	applyTheme(current)

	r, err := renderer.NewTermRenderer(76, current.IsDark())
	if err != nil {
		return Model{}, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	modeSelect := NewSelectForm([]SelectOption{
		{Label: "🧭 Guided", Description: "Build a prompt step by step with the 7-step framework", Value: modeGuided},
		{Label: "⚡ Instant", Description: "Turn a one-line idea into a complete prompt", Value: modeInstant},
		{Label: "📚 Library", Description: "Browse, export and copy saved prompts", Value: modeLibrary},
	})

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return Model{
		service:         svc,
		ctx:             ctx,
		viewMode:        ViewModeSelect,
		keys:            keys,
		errors:          apperrors.NewTUIErrorHandler(true, svc.Logger()),
		modeSelect:      modeSelect,
		templateList:    newTemplateList(svc.Templates()),
		promptList:      newPromptList(),
		viewport:        vp,
		libraryTemplate: library.AllTemplates,
		theme:           current,
		glamourRenderer: r,
	}, nil
}

func newTemplateList(catalog *templates.Catalog) list.Model {
	items := []list.Item{scratchItem{}}
	for _, t := range catalog.All() {
		items = append(items, t)
	}
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	return l
}

func newPromptList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(true)
	return l
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// loadLibraryCmd lists saved prompts for the given template filter
func loadLibraryCmd(ctx context.Context, svc *service.Service, template string) tea.Cmd {
	return func() tea.Msg {
		return libraryLoadedMsg{
			prompts:   svc.FilterPrompts(ctx, "", template),
			templates: svc.PromptTemplates(ctx),
		}
	}
}

func saveCmd(ctx context.Context, svc *service.Service, p models.GeneratedPrompt) tea.Cmd {
	return func() tea.Msg {
		if err := svc.SavePrompt(ctx, p); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Saved to library", saved: true, reload: true}
	}
}

func deleteCmd(ctx context.Context, svc *service.Service, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeletePrompt(ctx, id); err != nil {
			return actionMsg{err: err, reload: true}
		}
		return actionMsg{status: "Deleted", reload: true}
	}
}

func exportCmd(svc *service.Service, p models.GeneratedPrompt, f export.Format) tea.Cmd {
	return func() tea.Msg {
		path, err := svc.Export(p, string(f), "")
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Exported to " + path}
	}
}

func copyCmd(svc *service.Service, text string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Copy(text); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Copied to clipboard!"}
	}
}

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// setStatus shows text in the status bar for a few seconds
func (m *Model) setStatus(text string, style lipgloss.Style) tea.Cmd {
	m.statusMsg = text
	m.statusStyle = style
	m.statusTimeout = 3
	return clearStatusCmd()
}

// setError logs err and shows it in the status bar. Storage, export and
// clipboard failures are only logged.
func (m *Model) setError(err error) tea.Cmd {
	err = m.errors.HandleError(err)
	if m.errors.IsSilent(err) {
		return nil
	}
	icon, color := m.errors.GetErrorStyle(err)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Padding(0, 1)
	return m.setStatus(icon+" "+m.errors.FormatError(err), style)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case libraryLoadedMsg:
		items := make([]list.Item, len(msg.prompts))
		for i, p := range msg.prompts {
			items[i] = p
		}
		m.libraryTemplates = msg.templates
		return m, m.promptList.SetItems(items)

	case actionMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			if cmd := m.setError(msg.err); cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			cmds = append(cmds, m.setStatus(msg.status, StyleSuccess))
		}
		if msg.saved {
			m.saved = true
		}
		if msg.reload {
			cmds = append(cmds, loadLibraryCmd(m.ctx, m.service, m.libraryTemplate))
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewModeSelect:
			return m.updateModeSelect(msg)
		case ViewTemplates:
			return m.updateTemplates(msg)
		case ViewWizard:
			return m.updateWizard(msg)
		case ViewInstant:
			return m.updateInstant(msg)
		case ViewResult:
			return m.updateResult(msg)
		case ViewLibrary:
			return m.updateLibrary(msg)
		}
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// title, status, help and margins
	const reservedHeight = 8
	available := max(height-reservedHeight, 5)

	m.templateList.SetSize(width-4, available)
	m.promptList.SetSize(width-4, available)

	m.viewport.Width = max(width-8, 40)
	m.viewport.Height = max(available-6, 5)
	if r, err := renderer.NewTermRenderer(m.viewport.Width-4, m.theme.IsDark()); err == nil {
		m.glamourRenderer = r
	}

	if m.wizardForm != nil {
		m.wizardForm.Resize(width, height)
	}
	if m.instantForm != nil {
		m.instantForm.Resize(width, height)
	}
	m.renderResult()
}

// toggleTheme flips and persists the theme, then restyles everything
func (m *Model) toggleTheme() tea.Cmd {
	m.theme = m.service.ToggleTheme(m.ctx)
	applyTheme(m.theme)
	if r, err := renderer.NewTermRenderer(max(m.viewport.Width-4, 40), m.theme.IsDark()); err == nil {
		m.glamourRenderer = r
	} else {
		m.service.Logger().Warn("failed to rebuild renderer", zap.Error(err))
	}
	m.renderResult()
	return m.setStatus(fmt.Sprintf("Theme: %s", m.theme), StyleInfo)
}

// openLibrary switches to the library and reloads it
func (m *Model) openLibrary() tea.Cmd {
	m.viewMode = ViewLibrary
	m.deleteConfirm = false
	return loadLibraryCmd(m.ctx, m.service, m.libraryTemplate)
}

func (m Model) updateModeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Library):
		return m, m.openLibrary()
	}

	m.modeSelect.Update(msg)
	if !m.modeSelect.IsSubmitted() {
		return m, nil
	}
	choice, _ := m.modeSelect.GetSelected().Value.(string)
	m.modeSelect.submitted = false

	switch choice {
	case modeGuided:
		m.viewMode = ViewTemplates
	case modeInstant:
		m.instantForm = NewInstantForm("")
		m.instantForm.Resize(m.width, m.height)
		m.viewMode = ViewInstant
	case modeLibrary:
		return m, m.openLibrary()
	}
	return m, nil
}

func (m Model) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.templateList.FilterState() == list.FilterApplied {
			m.templateList.ResetFilter()
			return m, nil
		}
		m.viewMode = ViewModeSelect
		return m, nil
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Library):
		return m, m.openLibrary()
	case key.Matches(msg, m.keys.Enter):
		var fields models.FieldSet
		m.templateName = ""
		if t, ok := m.templateList.SelectedItem().(models.Template); ok {
			fields = templates.Apply(t, fields)
			m.templateName = t.Name
		}
		m.startWizard(fields)
		return m, nil
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m *Model) startWizard(fields models.FieldSet) {
	m.wizardForm = NewWizardForm(fields)
	m.wizardForm.Resize(m.width, m.height)
	m.viewMode = ViewWizard
}

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.wizardForm.Update(msg)

	switch {
	case m.wizardForm.IsExited():
		m.viewMode = ViewTemplates
		return m, nil
	case m.wizardForm.IsSubmitted():
		p, v, err := m.service.Generate(m.wizardForm.Fields(), m.templateName)
		if err != nil {
			m.wizardForm.submitted = false
			return m, m.setError(err)
		}
		m.showResult(p, v, originGuided)
		return m, nil
	}
	return m, cmd
}

func (m Model) updateInstant(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.viewMode = ViewModeSelect
		return m, nil
	}

	cmd := m.instantForm.Update(msg)
	if !m.instantForm.IsSubmitted() {
		return m, cmd
	}
	m.instantForm.Reset()

	text := strings.TrimSpace(m.instantForm.Value())
	if text == "" {
		return m, m.setStatus("Describe what you need first", StyleWarning)
	}

	p, v, err := m.service.Instant(text)
	if err != nil {
		return m, m.setError(err)
	}
	m.instantText = text
	m.showResult(p, v, originInstant)
	return m, nil
}

// showResult switches to the result view for p
func (m *Model) showResult(p models.GeneratedPrompt, v models.ValidationResult, o origin) {
	m.result = &p
	m.validation = v
	m.origin = o
	m.showMachine = false
	m.saved = o == originLibrary
	m.viewMode = ViewResult
	m.renderResult()
}

// renderResult renders the current result into the viewport
func (m *Model) renderResult() {
	if m.result == nil {
		return
	}
	m.viewport.SetContent(renderer.Preview(m.glamourRenderer, *m.result, m.showMachine))
	m.viewport.GotoTop()
}

// currentText is the rendering shown in the result view
func (m Model) currentText() string {
	if m.showMachine {
		return m.result.MachineOptimized
	}
	return m.result.HumanOptimized
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.origin == originLibrary {
			return m, m.openLibrary()
		}
		m.viewMode = ViewModeSelect
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Library):
		return m, m.openLibrary()
	case key.Matches(msg, m.keys.Toggle):
		m.showMachine = !m.showMachine
		m.renderResult()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if m.saved {
			return m, m.setStatus("Already saved", StyleInfo)
		}
		return m, saveCmd(m.ctx, m.service, *m.result)
	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.service, *m.result, export.FormatText)
	case key.Matches(msg, m.keys.ExportJSON):
		return m, exportCmd(m.service, *m.result, export.FormatJSON)
	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.service, m.currentText())
	case key.Matches(msg, m.keys.Edit):
		switch m.origin {
		case originInstant:
			m.instantForm = NewInstantForm(m.instantText)
			m.instantForm.Resize(m.width, m.height)
			m.viewMode = ViewInstant
		case originLibrary:
			m.templateName = m.result.Template
			m.startWizard(m.result.Data)
		default:
			m.startWizard(m.result.Data)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) selectedPrompt() (models.GeneratedPrompt, bool) {
	p, ok := m.promptList.SelectedItem().(models.GeneratedPrompt)
	return p, ok
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.promptList, cmd = m.promptList.Update(msg)
		return m, cmd
	}

	if m.deleteConfirm {
		m.deleteConfirm = false
		if msg.String() == "d" || msg.String() == "y" {
			if p, ok := m.selectedPrompt(); ok {
				return m, deleteCmd(m.ctx, m.service, p.ID)
			}
		}
		return m, m.setStatus("Delete cancelled", StyleInfo)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.promptList.FilterState() == list.FilterApplied {
			m.promptList.ResetFilter()
			return m, nil
		}
		m.viewMode = ViewModeSelect
		return m, nil
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Filter):
		m.libraryTemplate = nextTemplate(m.libraryTemplates, m.libraryTemplate)
		return m, loadLibraryCmd(m.ctx, m.service, m.libraryTemplate)
	}

	p, ok := m.selectedPrompt()
	if ok {
		switch {
		case key.Matches(msg, m.keys.Enter):
			m.showResult(p, m.service.Validate(p.Data), originLibrary)
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.deleteConfirm = true
			return m, m.setStatus(fmt.Sprintf("Delete %q? d/y to confirm", p.Title()), StyleWarning)
		case key.Matches(msg, m.keys.Export):
			return m, exportCmd(m.service, p, export.FormatText)
		case key.Matches(msg, m.keys.ExportJSON):
			return m, exportCmd(m.service, p, export.FormatJSON)
		case key.Matches(msg, m.keys.Copy):
			return m, copyCmd(m.service, p.HumanOptimized)
		}
	}

	var cmd tea.Cmd
	m.promptList, cmd = m.promptList.Update(msg)
	return m, cmd
}

// nextTemplate cycles "all" followed by each template tag in use
func nextTemplate(tags []string, current string) string {
	cycle := append([]string{library.AllTemplates}, tags...)
	for i, t := range cycle {
		if t == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return library.AllTemplates
}
