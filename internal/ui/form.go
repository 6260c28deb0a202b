package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/wizard"
)

// WizardForm edits one framework step at a time in a textarea
type WizardForm struct {
	wizard    *wizard.Wizard
	textarea  textarea.Model
	blocked   bool // last Next was refused on a required step
	submitted bool
	exited    bool
}

// NewWizardForm starts the guided flow with the given fields pre-filled
func NewWizardForm(initial models.FieldSet) *WizardForm {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(80)
	ta.SetHeight(6)
	ta.Focus()

	f := &WizardForm{
		wizard:   wizard.New(initial),
		textarea: ta,
	}
	f.load()
	return f
}

// load puts the current step's value and placeholder into the textarea
func (f *WizardForm) load() {
	step := f.wizard.Step()
	f.textarea.Placeholder = step.Placeholder
	f.textarea.SetValue(f.wizard.Value())
	f.textarea.CursorEnd()
}

// store writes the textarea back into the current step
func (f *WizardForm) store() {
	f.wizard.Set(f.textarea.Value())
}

// Update handles form updates
func (f *WizardForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "ctrl+n":
			f.next()
			return nil
		case "shift+tab", "ctrl+p":
			f.prev()
			return nil
		case "esc":
			f.store()
			f.exited = true
			return nil
		}
	}

	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	f.store()
	if f.wizard.CanAdvance() {
		f.blocked = false
	}
	return cmd
}

func (f *WizardForm) next() {
	f.store()
	if !f.wizard.CanAdvance() {
		f.blocked = true
		return
	}
	f.blocked = false
	if f.wizard.Next() {
		f.submitted = true
		return
	}
	f.load()
}

func (f *WizardForm) prev() {
	f.store()
	f.blocked = false
	if f.wizard.Prev() {
		f.exited = true
		return
	}
	f.load()
}

// Resize updates form dimensions based on window size
func (f *WizardForm) Resize(width, height int) {
	f.textarea.SetWidth(max(width-8, 20))
	f.textarea.SetHeight(max(height-14, 3))
}

// Wizard exposes step state for rendering
func (f *WizardForm) Wizard() *wizard.Wizard {
	return f.wizard
}

// Fields returns the field-set as edited so far
func (f *WizardForm) Fields() models.FieldSet {
	return f.wizard.Fields()
}

// Blocked reports whether the user tried to skip a required step
func (f *WizardForm) Blocked() bool {
	return f.blocked
}

// IsSubmitted reports whether Next was pressed on the last step
func (f *WizardForm) IsSubmitted() bool {
	return f.submitted
}

// IsExited reports whether the user left the wizard
func (f *WizardForm) IsExited() bool {
	return f.exited
}

// View renders the textarea
func (f *WizardForm) View() string {
	return f.textarea.View()
}

// InstantForm takes a one-line idea
type InstantForm struct {
	textarea  textarea.Model
	example   int
	submitted bool
}

// NewInstantForm creates an instant-mode input with the given text
func NewInstantForm(text string) *InstantForm {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Placeholder = generator.InstantExamples[0]
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.SetValue(text)
	ta.Focus()
	return &InstantForm{textarea: ta, example: -1}
}

// Update handles form updates. Enter submits, tab cycles example ideas.
func (f *InstantForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			f.submitted = true
			return nil
		case "tab":
			f.example = (f.example + 1) % len(generator.InstantExamples)
			f.textarea.SetValue(generator.InstantExamples[f.example])
			f.textarea.CursorEnd()
			return nil
		}
	}

	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	return cmd
}

// Resize updates form dimensions based on window size
func (f *InstantForm) Resize(width, height int) {
	f.textarea.SetWidth(max(width-8, 20))
}

// Value returns the idea text
func (f *InstantForm) Value() string {
	return f.textarea.Value()
}

// IsSubmitted reports whether enter was pressed
func (f *InstantForm) IsSubmitted() bool {
	return f.submitted
}

// Reset clears the submitted flag so the form can be reused
func (f *InstantForm) Reset() {
	f.submitted = false
}

// View renders the textarea
func (f *InstantForm) View() string {
	return f.textarea.View()
}

// SelectForm handles selection from a list of options
type SelectForm struct {
	options   []SelectOption
	selected  int
	submitted bool
}

// SelectOption represents an option in the select form
type SelectOption struct {
	Label       string
	Description string
	Value       interface{}
}

// NewSelectForm creates a new select form
func NewSelectForm(options []SelectOption) *SelectForm {
	return &SelectForm{
		options:  options,
		selected: 0,
	}
}

// Update handles select form updates
func (f *SelectForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if f.selected > 0 {
				f.selected--
			} else {
				// Wrap to bottom
				f.selected = len(f.options) - 1
			}
		case "down", "j":
			if f.selected < len(f.options)-1 {
				f.selected++
			} else {
				// Wrap to top
				f.selected = 0
			}
		case "enter":
			f.submitted = true
			return nil
		}
	}
	return nil
}

// GetSelected returns the selected option
func (f *SelectForm) GetSelected() *SelectOption {
	if f.selected >= 0 && f.selected < len(f.options) {
		return &f.options[f.selected]
	}
	return nil
}

// IsSubmitted returns whether an option has been selected
func (f *SelectForm) IsSubmitted() bool {
	return f.submitted
}

// Reset resets the select form
func (f *SelectForm) Reset() {
	f.selected = 0
	f.submitted = false
}

// View renders the options
func (f *SelectForm) View() []string {
	var lines []string
	for i, opt := range f.options {
		lines = append(lines, CreateOption(opt.Label, opt.Description, i == f.selected)...)
	}
	return lines
}
