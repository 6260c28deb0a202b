package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/luma/internal/models"
	"github.com/dpshade/luma/internal/theme"
	"github.com/dpshade/luma/internal/wizard"
)

// Design system colours, set by applyTheme
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
)

// Component styles, rebuilt whenever the theme changes
var (
	StyleTitle            lipgloss.Style
	StyleSubtitle         lipgloss.Style
	StyleText             lipgloss.Style
	StyleTextMuted        lipgloss.Style
	StyleTextDim          lipgloss.Style
	StyleFocused          lipgloss.Style
	StyleUnselected       lipgloss.Style
	StyleSuccess          lipgloss.Style
	StyleWarning          lipgloss.Style
	StyleError            lipgloss.Style
	StyleInfo             lipgloss.Style
	StyleContentContainer lipgloss.Style
	StyleFormLabel        lipgloss.Style
	StyleFormHelp         lipgloss.Style
	StyleMetadata         lipgloss.Style
	StyleStepDone         lipgloss.Style
	StyleStepCurrent      lipgloss.Style
	StyleStepPending      lipgloss.Style
)

func init() {
	applyTheme(theme.Light)
}

// applyTheme switches the palette and rebuilds every style
func applyTheme(t theme.Theme) {
	if t.IsDark() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
	buildStyles()
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorInfo = lipgloss.Color("12")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorInfo = lipgloss.Color("24")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

func buildStyles() {
	StyleTitle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	StyleSubtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleText = lipgloss.NewStyle().Foreground(ColorText)
	StyleTextMuted = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleTextDim = lipgloss.NewStyle().Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(ColorSecondary).
		Bold(true).
		Padding(0, 1)

	StyleUnselected = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Padding(0, 1)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true).Padding(0, 1)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true).Padding(0, 1)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Padding(0, 1)

	StyleContentContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		MarginTop(1)

	StyleFormLabel = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Italic(true)

	StyleMetadata = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Padding(0, 1)

	StyleStepDone = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleStepCurrent = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleStepPending = lipgloss.NewStyle().Foreground(ColorTextDim)
}

// CreateHeader renders a page title
func CreateHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

func CreateMetadata(text string) string {
	return StyleMetadata.Render(text)
}

// CreateHelp renders a help line, truncated to width
func CreateHelp(parts []string, width int) string {
	text := strings.Join(parts, " • ")
	if width > 8 && len(text) > width-4 {
		text = text[:width-7] + "..."
	}
	return StyleTextDim.Render(text)
}

func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	case "info":
		return StyleInfo.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateOption renders a selectable row with an optional description
func CreateOption(label, description string, isSelected bool) []string {
	var style lipgloss.Style
	var prefix string

	if isSelected {
		style = StyleFocused
		prefix = "▶ "
	} else {
		style = StyleUnselected
		prefix = "  "
	}

	lines := []string{style.Render(prefix + label)}
	if description != "" {
		lines = append(lines, StyleFormHelp.PaddingLeft(3).Render(description))
	}
	lines = append(lines, "")
	return lines
}

// BandColor is the colour of a score band: green, amber or red
func BandColor(b models.ScoreBand) lipgloss.Color {
	switch b {
	case models.BandGood:
		return ColorSuccess
	case models.BandFair:
		return ColorWarning
	default:
		return ColorError
	}
}

// CreateScore renders "Score: N/100" in the band colour
func CreateScore(v models.ValidationResult) string {
	style := lipgloss.NewStyle().Foreground(BandColor(v.Band())).Bold(true)
	return style.Render(fmt.Sprintf("Score: %d/100", v.Score))
}

// CreateStepIndicator renders one marker per wizard step
func CreateStepIndicator(steps []models.Step, states []wizard.StepState) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		switch states[i] {
		case wizard.StepDone:
			parts[i] = StyleStepDone.Render("✓ " + s.Title)
		case wizard.StepCurrent:
			parts[i] = StyleStepCurrent.Render("● " + s.Title)
		default:
			parts[i] = StyleStepPending.Render("○ " + s.Title)
		}
	}
	return strings.Join(parts, "  ")
}

// CreateProgressBar renders a percentage as a fixed-width bar
func CreateProgressBar(percent, width int) string {
	if width < 10 {
		width = 10
	}
	filled := percent * width / 100
	bar := lipgloss.NewStyle().Foreground(ColorPrimary).Render(strings.Repeat("━", filled)) +
		StyleTextDim.Render(strings.Repeat("─", width-filled))
	return bar + StyleTextMuted.Render(fmt.Sprintf(" %d%%", percent))
}

// AddMainPadding indents page content
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}
