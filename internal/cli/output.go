package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/luma/internal/models"
)

// output selectors for generated prompts
const (
	outputHuman   = "human"
	outputMachine = "machine"
	outputBoth    = "both"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	fairStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	poorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func bandStyle(b models.ScoreBand) lipgloss.Style {
	switch b {
	case models.BandGood:
		return goodStyle
	case models.BandFair:
		return fairStyle
	default:
		return poorStyle
	}
}

// printPrompt writes the selected renderings of p
func printPrompt(w io.Writer, p models.GeneratedPrompt, output string) error {
	switch output {
	case outputHuman, "":
		fmt.Fprintln(w, p.HumanOptimized)
	case outputMachine:
		fmt.Fprintln(w, p.MachineOptimized)
	case outputBoth:
		fmt.Fprintln(w, headingStyle.Render("Human-Optimized"))
		fmt.Fprintln(w, p.HumanOptimized)
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Machine-Optimized"))
		fmt.Fprintln(w, p.MachineOptimized)
	default:
		return fmt.Errorf("unknown output %q (want human, machine or both)", output)
	}
	return nil
}

// printValidation writes the score line followed by warnings and suggestions
func printValidation(w io.Writer, v models.ValidationResult) {
	band := v.Band()
	status := "ready"
	if !v.IsValid {
		status = "incomplete"
	}
	fmt.Fprintf(w, "Score: %s (%s, %s)\n", bandStyle(band).Render(fmt.Sprintf("%d/100", v.Score)), band, status)
	for _, warning := range v.Warnings {
		fmt.Fprintf(w, "  ⚠ %s\n", warning)
	}
	for _, s := range v.Suggestions {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

// formatOutput prints a list of prompts as table, json or ids
func formatOutput(w io.Writer, prompts []models.GeneratedPrompt, format string) error {
	switch format {
	case "json":
		return writeJSON(w, prompts)
	case "ids":
		for _, p := range prompts {
			fmt.Fprintln(w, p.ID)
		}
	case "table", "":
		if len(prompts) == 0 {
			fmt.Fprintln(w, "No saved prompts.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tTEMPLATE\tCREATED")
		for _, p := range prompts {
			template := p.Template
			if template == "" {
				template = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, models.Excerpt(p.Title(), 40), template, p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or ids)", format)
	}
	return nil
}

// formatTemplates prints the template catalogue grouped by category
func formatTemplates(w io.Writer, templates []models.Template, categories []string, format string) error {
	switch format {
	case "json":
		return writeJSON(w, templates)
	case "table", "":
		for _, cat := range categories {
			var inCat []models.Template
			for _, t := range templates {
				if strings.EqualFold(t.Category, cat) {
					inCat = append(inCat, t)
				}
			}
			if len(inCat) == 0 {
				continue
			}
			fmt.Fprintln(w, headingStyle.Render(cat))
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for _, t := range inCat {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", t.ID, t.Title(), t.Summary)
			}
			tw.Flush()
			fmt.Fprintln(w)
		}
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
