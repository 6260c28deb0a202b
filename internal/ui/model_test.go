package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dpshade/luma/internal/config"
	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/service"
	"github.com/dpshade/luma/internal/storage"
	"github.com/dpshade/luma/internal/theme"
)

type testEnv struct {
	svc    *service.Service
	copied string
	dir    string
	logs   *observer.ObservedLogs
}

func newTestModel(t *testing.T, opts ...service.Option) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{dir: t.TempDir()}
	cfg := &config.Config{
		DataDir:   env.dir,
		Store:     storage.BackendMemory,
		ExportDir: filepath.Join(env.dir, "exports"),
		Theme:     "auto",
	}
	defaults := []service.Option{
		service.WithClipboard(func(s string) error {
			env.copied = s
			return nil
		}),
		service.WithThemeDetector(func() bool { return false }),
	}
	core, logs := observer.New(zapcore.DebugLevel)
	env.logs = logs
	env.svc = service.NewWithStore(cfg, storage.NewMemoryStore(), nil, zap.New(core), append(defaults, opts...)...)
	t.Cleanup(func() { env.svc.Close() })

	m, err := NewModel(context.Background(), env.svc)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(func() { applyTheme(theme.Light) })
	return m, env
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys in order and returns the model and the last command
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestGuidedFlow_FromScratch(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "enter")
	if m.viewMode != ViewTemplates {
		t.Fatalf("expected template view, got %v", m.viewMode)
	}

	m, _ = press(m, "enter")
	if m.viewMode != ViewWizard {
		t.Fatalf("expected wizard view, got %v", m.viewMode)
	}

	m, _ = press(m, "tab")
	if !m.wizardForm.Blocked() || m.wizardForm.Wizard().Index() != 0 {
		t.Fatal("expected empty role to block the wizard")
	}
	if !strings.Contains(m.View(), "Role is required") {
		t.Error("expected required-field message in view")
	}

	m, _ = press(m, "You are an expert chef", "tab", "Plan a five course tasting menu")
	if m.wizardForm.Wizard().Index() != 1 {
		t.Fatalf("expected task step, got %d", m.wizardForm.Wizard().Index())
	}

	m, _ = press(m, "tab", "tab", "tab", "tab", "tab", "tab")
	if m.viewMode != ViewResult {
		t.Fatalf("expected result view, got %v", m.viewMode)
	}

	want := "You are an expert chef\n\n**Task:** Plan a five course tasting menu"
	if m.result.HumanOptimized != want {
		t.Errorf("unexpected prose:\n%s", m.result.HumanOptimized)
	}
	if m.validation.Score != 60 {
		t.Errorf("expected score 60, got %d", m.validation.Score)
	}
	if m.result.Template != "" {
		t.Errorf("expected no template tag, got %q", m.result.Template)
	}
	if !strings.Contains(m.View(), "Score: 60/100") {
		t.Error("expected score in result view")
	}
}

func TestGuidedFlow_FromTemplate(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(m, "enter", "down", "enter")
	if m.viewMode != ViewWizard {
		t.Fatalf("expected wizard view, got %v", m.viewMode)
	}
	if got := m.wizardForm.Fields().Role; got != "You are an expert software engineer and debugging specialist" {
		t.Fatalf("expected template role, got %q", got)
	}

	m, _ = press(m, "tab", "tab", "tab", "tab", "tab", "tab", "tab")
	if m.viewMode != ViewResult {
		t.Fatalf("expected result view, got %v", m.viewMode)
	}
	if m.result.Template != "Debug Code Issue" {
		t.Errorf("expected template tag, got %q", m.result.Template)
	}
}

func TestWizard_BackNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(m, "enter", "down", "enter", "tab", "shift+tab")
	if m.wizardForm.Wizard().Index() != 0 {
		t.Fatalf("expected first step, got %d", m.wizardForm.Wizard().Index())
	}

	m, _ = press(m, "shift+tab")
	if m.viewMode != ViewTemplates {
		t.Errorf("expected back on first step to leave the wizard, got %v", m.viewMode)
	}

	m, _ = press(m, "enter", "esc")
	if m.viewMode != ViewTemplates {
		t.Errorf("expected esc to leave the wizard, got %v", m.viewMode)
	}
}

func TestInstantFlow(t *testing.T) {
	m, env := newTestModel(t)

	m, _ = press(m, "down", "enter")
	if m.viewMode != ViewInstant {
		t.Fatalf("expected instant view, got %v", m.viewMode)
	}

	m, _ = press(m, "enter")
	if m.viewMode != ViewInstant || !strings.Contains(m.statusMsg, "Describe what you need") {
		t.Fatalf("expected empty idea to be refused, status %q", m.statusMsg)
	}

	m, _ = press(m, "debug my code", "enter")
	if m.viewMode != ViewResult {
		t.Fatalf("expected result view, got %v", m.viewMode)
	}
	if m.result.Data.Iteration != "Ask me if you need any clarification" {
		t.Errorf("unexpected iteration %q", m.result.Data.Iteration)
	}

	// copy follows the human/machine toggle
	m, cmd := press(m, "m", "c")
	if !m.showMachine {
		t.Fatal("expected machine rendering")
	}
	m = send(m, cmd())
	if env.copied != m.result.MachineOptimized {
		t.Errorf("expected machine JSON on clipboard, got %q", env.copied)
	}

	m, cmd = press(m, "s")
	m = send(m, cmd())
	if !m.saved {
		t.Error("expected result to be marked saved")
	}
	if got := env.svc.ListPrompts(context.Background()); len(got) != 1 || got[0].ID != m.result.ID {
		t.Fatalf("expected the prompt in the library, got %+v", got)
	}

	m, _ = press(m, "s")
	if m.statusMsg != "Already saved" {
		t.Errorf("expected duplicate save to be refused, status %q", m.statusMsg)
	}

	m, cmd = press(m, "X")
	m = send(m, cmd())
	path := filepath.Join(env.dir, "exports", "debug my code.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected export at %s: %v", path, err)
	}
	if !strings.Contains(m.statusMsg, path) {
		t.Errorf("expected export path in status, got %q", m.statusMsg)
	}

	m, _ = press(m, "e")
	if m.viewMode != ViewInstant || m.instantForm.Value() != "debug my code" {
		t.Errorf("expected edit to return to instant input, got view %v value %q", m.viewMode, m.instantForm.Value())
	}
}

func TestCopyFailureIsOnlyLogged(t *testing.T) {
	m, env := newTestModel(t, service.WithClipboard(func(string) error {
		return errors.New("no display")
	}))

	m, _ = press(m, "down", "enter", "write a blog post", "enter")
	m, cmd := press(m, "c")
	m = send(m, cmd())
	if m.statusMsg != "" {
		t.Errorf("expected no status after a failed copy, got %q", m.statusMsg)
	}
	if m.viewMode != ViewResult {
		t.Error("expected failure to leave the result view in place")
	}
	if env.logs.FilterMessage("tui error").Len() != 1 {
		t.Errorf("expected the copy failure to be logged, got %v", env.logs.All())
	}
}

func TestCopyHintNeedsClipboard(t *testing.T) {
	m, _ := newTestModel(t)
	if got := strings.Join(m.helpParts("s save", "c copy"), ","); got != "s save,c copy" {
		t.Errorf("expected copy hint with a clipboard, got %q", got)
	}

	m, _ = newTestModel(t, service.WithClipboardCheck(func() bool { return false }))
	if got := strings.Join(m.helpParts("s save", "c copy"), ","); got != "s save" {
		t.Errorf("expected copy hint hidden without a clipboard, got %q", got)
	}
}

func savePrompt(t *testing.T, svc *service.Service, task, template string) models.GeneratedPrompt {
	t.Helper()
	p, _, err := svc.Generate(models.FieldSet{Role: "You are a tester", Task: task}, template)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SavePrompt(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLibrary(t *testing.T) {
	m, env := newTestModel(t)
	savePrompt(t, env.svc, "first task", "")
	second := savePrompt(t, env.svc, "second task", "Code Review")

	m, cmd := press(m, "l")
	if m.viewMode != ViewLibrary {
		t.Fatalf("expected library view, got %v", m.viewMode)
	}
	m = send(m, cmd())
	if n := len(m.promptList.Items()); n != 2 {
		t.Fatalf("expected 2 prompts, got %d", n)
	}

	// newest first, so the cursor is on the second prompt
	m, _ = press(m, "enter")
	if m.viewMode != ViewResult || m.result.ID != second.ID || !m.saved {
		t.Fatalf("expected saved second prompt in result view, got %+v", m.result)
	}

	m, cmd = press(m, "esc")
	if m.viewMode != ViewLibrary {
		t.Fatalf("expected esc to return to library, got %v", m.viewMode)
	}
	m = send(m, cmd())

	m, cmd = press(m, "f")
	if m.libraryTemplate != "Code Review" {
		t.Fatalf("expected template filter, got %q", m.libraryTemplate)
	}
	m = send(m, cmd())
	if n := len(m.promptList.Items()); n != 1 {
		t.Errorf("expected 1 filtered prompt, got %d", n)
	}
	m, cmd = press(m, "f")
	m = send(m, cmd())
	if n := len(m.promptList.Items()); n != 2 {
		t.Errorf("expected filter to cycle back to all, got %d", n)
	}

	m, _ = press(m, "d", "n")
	if m.statusMsg != "Delete cancelled" {
		t.Errorf("expected cancelled delete, got %q", m.statusMsg)
	}

	m, cmd = press(m, "d", "d")
	m = send(m, cmd())
	m = send(m, loadLibraryCmd(context.Background(), env.svc, m.libraryTemplate)())
	if n := len(m.promptList.Items()); n != 1 {
		t.Fatalf("expected 1 prompt after delete, got %d", n)
	}
	if _, err := env.svc.GetPrompt(context.Background(), second.ID); err == nil {
		t.Error("expected deleted prompt to be gone")
	}
}

func TestEmptyLibraryView(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := press(m, "l")
	m = send(m, cmd())
	if !strings.Contains(m.View(), "No saved prompts yet") {
		t.Error("expected empty library hint")
	}
}

func TestThemeToggle(t *testing.T) {
	m, env := newTestModel(t)
	if m.theme != theme.Light {
		t.Fatalf("expected detected light theme, got %s", m.theme)
	}

	m, _ = press(m, "t")
	if m.theme != theme.Dark || ColorPrimary != "205" {
		t.Errorf("expected dark palette, got %s / %s", m.theme, ColorPrimary)
	}
	if got := env.svc.Theme(context.Background()); got != theme.Dark {
		t.Errorf("expected dark theme to persist, got %s", got)
	}

	m, _ = press(m, "t")
	if m.theme != theme.Light || ColorPrimary != "125" {
		t.Errorf("expected light palette, got %s / %s", m.theme, ColorPrimary)
	}
}

func TestNextTemplate(t *testing.T) {
	tags := []string{"A", "B"}
	if got := nextTemplate(tags, "all"); got != "A" {
		t.Errorf("expected A, got %q", got)
	}
	if got := nextTemplate(tags, "B"); got != "all" {
		t.Errorf("expected wrap to all, got %q", got)
	}
	if got := nextTemplate(tags, "gone"); got != "all" {
		t.Errorf("expected unknown tag to reset, got %q", got)
	}
}
