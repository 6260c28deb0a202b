package generator

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dpshade/luma/internal/models"
)

// Composition holds both renderings of a field-set
type Composition struct {
	Prose      string
	Structured string
}

// proseLabels maps each labelled field to its heading. Role has no label.
var proseLabels = []struct {
	field string
	label string
}{
	{models.FieldTask, "Task"},
	{models.FieldContext, "Context"},
	{models.FieldFormat, "Required Format"},
	{models.FieldConstraints, "Constraints"},
	{models.FieldExamples, "Examples"},
	{models.FieldIteration, "Follow-up"},
}

// StructuredPrompt is the machine-optimized form. Field order is the
// serialization order.
type StructuredPrompt struct {
	SystemRole            string `json:"system_role" jsonschema:"description=Persona and expertise the model should adopt"`
	PrimaryTask           string `json:"primary_task" jsonschema:"description=What the model is asked to do"`
	ContextInformation    string `json:"context_information" jsonschema:"description=Background relevant to the task"`
	OutputFormat          string `json:"output_format" jsonschema:"description=Shape of the expected response"`
	Constraints           string `json:"constraints" jsonschema:"description=Limits and requirements on the response"`
	Examples              string `json:"examples" jsonschema:"description=Examples guiding the response"`
	IterationInstructions string `json:"iteration_instructions" jsonschema:"description=How to handle follow-up and refinement"`
}

// Compose renders fs as prose and as structured JSON
func Compose(fs models.FieldSet) Composition {
	return Composition{
		Prose:      Prose(fs),
		Structured: Structured(fs),
	}
}

// Prose renders the human-optimized form: the role as an opening line, then
// each present field under its label, separated by blank lines.
func Prose(fs models.FieldSet) string {
	var sections []string
	if fs.Role != "" {
		sections = append(sections, fs.Role)
	}
	for _, l := range proseLabels {
		if v := fs.Get(l.field); v != "" {
			sections = append(sections, "**"+l.label+":** "+v)
		}
	}
	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// Structured renders the machine-optimized form as 2-space indented JSON
func Structured(fs models.FieldSet) string {
	sp := StructuredPrompt{
		SystemRole:            fs.Role,
		PrimaryTask:           fs.Task,
		ContextInformation:    fs.Context,
		OutputFormat:          fs.Format,
		Constraints:           fs.Constraints,
		Examples:              fs.Examples,
		IterationInstructions: fs.Iteration,
	}

	// A struct of strings always encodes
	out, _ := EncodeJSON(sp)
	return out
}

// EncodeJSON writes v as 2-space indented JSON with no trailing newline.
// HTML characters and the U+2028/U+2029 line separators are left unescaped,
// matching the browser version's exports.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return rawLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// rawLineSeparators undoes the \u2028 and \u2029 escapes. Escape pairs are
// consumed together so an escaped backslash followed by "u2028" is kept.
func rawLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch rest := s[i+1:]; {
		case strings.HasPrefix(rest, "u2028"):
			b.WriteRune('\u2028')
			i += 5
		case strings.HasPrefix(rest, "u2029"):
			b.WriteRune('\u2029')
			i += 5
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i++
		}
	}
	return b.String()
}
