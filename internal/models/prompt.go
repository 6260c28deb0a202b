package models

import (
	"strings"
	"time"
)

// FieldSet holds the seven framework fields of a prompt under construction.
// An empty string means the field is unset.
type FieldSet struct {
	Role        string `json:"role" yaml:"role"`
	Task        string `json:"task" yaml:"task"`
	Context     string `json:"context" yaml:"context"`
	Format      string `json:"format" yaml:"format"`
	Constraints string `json:"constraints" yaml:"constraints"`
	Examples    string `json:"examples" yaml:"examples"`
	Iteration   string `json:"iteration" yaml:"iteration"`
}

// Field names in framework order
const (
	FieldRole        = "role"
	FieldTask        = "task"
	FieldContext     = "context"
	FieldFormat      = "format"
	FieldConstraints = "constraints"
	FieldExamples    = "examples"
	FieldIteration   = "iteration"
)

// FieldNames lists the framework fields in their fixed order
var FieldNames = []string{
	FieldRole,
	FieldTask,
	FieldContext,
	FieldFormat,
	FieldConstraints,
	FieldExamples,
	FieldIteration,
}

// Get returns the value of the named field, or "" for unknown names
func (f FieldSet) Get(name string) string {
	switch name {
	case FieldRole:
		return f.Role
	case FieldTask:
		return f.Task
	case FieldContext:
		return f.Context
	case FieldFormat:
		return f.Format
	case FieldConstraints:
		return f.Constraints
	case FieldExamples:
		return f.Examples
	case FieldIteration:
		return f.Iteration
	}
	return ""
}

// Set assigns the named field. Unknown names are ignored and reported as false.
func (f *FieldSet) Set(name, value string) bool {
	switch name {
	case FieldRole:
		f.Role = value
	case FieldTask:
		f.Task = value
	case FieldContext:
		f.Context = value
	case FieldFormat:
		f.Format = value
	case FieldConstraints:
		f.Constraints = value
	case FieldExamples:
		f.Examples = value
	case FieldIteration:
		f.Iteration = value
	default:
		return false
	}
	return true
}

// Merge returns a copy of f with every non-empty field of other laid over it
func (f FieldSet) Merge(other FieldSet) FieldSet {
	out := f
	for _, name := range FieldNames {
		if v := other.Get(name); v != "" {
			out.Set(name, v)
		}
	}
	return out
}

// IsEmpty reports whether every field is unset
func (f FieldSet) IsEmpty() bool {
	return f == FieldSet{}
}

// GeneratedPrompt is the immutable result of composing a field-set.
// JSON keys match the browser export format.
type GeneratedPrompt struct {
	ID               string    `json:"id"`
	Name             string    `json:"title"`
	HumanOptimized   string    `json:"humanOptimized"`
	MachineOptimized string    `json:"machineOptimized"`
	Data             FieldSet  `json:"data"`
	Template         string    `json:"template,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (p GeneratedPrompt) FilterValue() string {
	return cleanString(p.Name + " " + p.HumanOptimized)
}

// Title satisfies the list.Item interface
func (p GeneratedPrompt) Title() string {
	if p.Name != "" {
		return cleanString(p.Name)
	}
	return "Untitled prompt"
}

// Description satisfies the list.Item interface
func (p GeneratedPrompt) Description() string {
	var parts []string

	if p.Template != "" {
		parts = append(parts, p.Template)
	}
	if !p.CreatedAt.IsZero() {
		parts = append(parts, p.CreatedAt.Local().Format("2006-01-02"))
	}
	if preview := Excerpt(p.HumanOptimized, 60); preview != "" {
		parts = append(parts, preview)
	}

	return cleanString(strings.Join(parts, " • "))
}

// Excerpt returns the first n runes of s with newlines flattened, followed by
// "..." when s was longer.
func Excerpt(s string, n int) string {
	s = cleanString(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// cleanString removes problematic characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
		} else if r >= 32 && r != 127 {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
