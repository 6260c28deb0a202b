package models

// Template is a pre-filled starting point for the guided wizard
type Template struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Summary  string   `yaml:"description" json:"description"` // Shown under the name in pickers
	Icon     string   `yaml:"icon,omitempty" json:"icon,omitempty"`
	Fields   FieldSet `yaml:"fields" json:"fields"`

	FilePath string `yaml:"-" json:"-"` // Empty for built-in templates
}

// FilterValue satisfies the list.Item interface
func (t Template) FilterValue() string {
	return t.Name + " " + t.Category
}

// Title satisfies the list.DefaultItem interface
func (t Template) Title() string {
	if t.Icon != "" {
		return t.Icon + " " + t.Name
	}
	return t.Name
}

// Description satisfies the list.DefaultItem interface
func (t Template) Description() string {
	return t.Category + " • " + t.Summary
}

// Step describes one page of the guided wizard
type Step struct {
	ID          string
	Title       string
	Description string
	Placeholder string
	Required    bool
}
