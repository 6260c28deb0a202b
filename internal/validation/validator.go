// Package validation checks user-supplied records before they are persisted.
//
// Templates arrive from `luma templates save`, from YAML files and from the
// Claude Code importer. Each is checked against a named schema so that a bad
// ID or an oversized field is reported as INVALID_INPUT rather than written
// to the template directory.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/models"
)

// Schema names
const (
	SchemaTemplate = "template"
)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name      string
	Required  bool
	MinLength int // in characters
	MaxLength int // in characters
	Pattern   *regexp.Regexp
	Options   []string
	Custom    func(string) error
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Schema is an ordered list of field rules plus cross-field rules
type Schema struct {
	Name   string
	Fields []FieldValidator
	Rules  []func(map[string]string) error
}

// Validator holds registered schemas
type Validator struct {
	schemas map[string]*Schema
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// NewValidator creates a validator with the built-in schemas registered
func NewValidator() *Validator {
	v := &Validator{schemas: make(map[string]*Schema)}
	v.registerBuiltinSchemas()
	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]string) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{Valid: true}
	for _, field := range schema.Fields {
		validateField(field, data[field.Name], result)
	}
	for _, rule := range schema.Rules {
		if err := rule(data); err != nil {
			result.fail("schema", "SCHEMA_RULE_VIOLATION", err.Error())
		}
	}
	return result
}

func (r *ValidationResult) fail(field, code, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Code: code, Message: message})
}

func validateField(f FieldValidator, value string, result *ValidationResult) {
	if value == "" {
		if f.Required {
			result.fail(f.Name, "REQUIRED_FIELD_MISSING", fmt.Sprintf("Field '%s' is required", f.Name))
		}
		return
	}

	n := utf8.RuneCountInString(value)
	if f.MinLength > 0 && n < f.MinLength {
		result.fail(f.Name, "MIN_LENGTH_VIOLATION", fmt.Sprintf("Field '%s' must be at least %d characters long", f.Name, f.MinLength))
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		result.fail(f.Name, "MAX_LENGTH_VIOLATION", fmt.Sprintf("Field '%s' must be at most %d characters long", f.Name, f.MaxLength))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		result.fail(f.Name, "PATTERN_MISMATCH", fmt.Sprintf("Field '%s' does not match required pattern", f.Name))
	}
	if len(f.Options) > 0 {
		valid := false
		for _, option := range f.Options {
			if value == option {
				valid = true
				break
			}
		}
		if !valid {
			result.fail(f.Name, "INVALID_OPTION", fmt.Sprintf("Field '%s' must be one of: %s", f.Name, strings.Join(f.Options, ", ")))
		}
	}
	if f.Custom != nil {
		if err := f.Custom(value); err != nil {
			result.fail(f.Name, "CUSTOM_VALIDATION_FAILED", fmt.Sprintf("Field '%s': %s", f.Name, err.Error()))
		}
	}
}

func (v *Validator) registerBuiltinSchemas() {
	fields := []FieldValidator{
		{Name: "id", Required: true, MaxLength: 64, Pattern: idPattern},
		{Name: "name", MaxLength: 100},
		{Name: "category", MaxLength: 50},
		{Name: "description", MaxLength: 300},
		{Name: "icon", MaxLength: 8},
	}
	for _, name := range models.FieldNames {
		fields = append(fields, FieldValidator{Name: name, MaxLength: 20000})
	}

	v.RegisterSchema(&Schema{
		Name:   SchemaTemplate,
		Fields: fields,
		Rules: []func(map[string]string) error{
			func(data map[string]string) error {
				for _, name := range models.FieldNames {
					if data[name] != "" {
						return nil
					}
				}
				return fmt.Errorf("a template needs at least one field")
			},
		},
	})
}

// TemplateData flattens t into the map the template schema checks
func TemplateData(t models.Template) map[string]string {
	data := map[string]string{
		"id":          t.ID,
		"name":        t.Name,
		"category":    t.Category,
		"description": t.Summary,
		"icon":        t.Icon,
	}
	for _, name := range models.FieldNames {
		data[name] = t.Fields.Get(name)
	}
	return data
}

// ValidateTemplate checks t against the template schema
func ValidateTemplate(t models.Template) *ValidationResult {
	return NewValidator().Validate(SchemaTemplate, TemplateData(t))
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}
	if len(result.Errors) == 0 {
		return errors.InvalidInputError("Validation failed")
	}

	// Use the first error as the primary error
	appErr := errors.InvalidInputError(result.Errors[0].Message)

	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}
	appErr.WithDetails(strings.Join(details, "; "))
	appErr.WithContext("validation_errors", result.Errors)
	return appErr
}
