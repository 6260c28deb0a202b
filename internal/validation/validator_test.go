package validation

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dpshade/luma/internal/errors"
	"github.com/dpshade/luma/internal/models"
)

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name  string
		tmpl  models.Template
		codes []string
	}{
		{
			name: "valid",
			tmpl: models.Template{ID: "code-review", Name: "Code Review", Fields: models.FieldSet{Task: "Review this diff"}},
		},
		{
			name:  "missing id",
			tmpl:  models.Template{Fields: models.FieldSet{Task: "x"}},
			codes: []string{"REQUIRED_FIELD_MISSING"},
		},
		{
			name:  "bad id",
			tmpl:  models.Template{ID: "Code Review", Fields: models.FieldSet{Task: "x"}},
			codes: []string{"PATTERN_MISMATCH"},
		},
		{
			name:  "long id",
			tmpl:  models.Template{ID: strings.Repeat("a", 65), Fields: models.FieldSet{Task: "x"}},
			codes: []string{"MAX_LENGTH_VIOLATION"},
		},
		{
			name:  "no fields",
			tmpl:  models.Template{ID: "empty"},
			codes: []string{"SCHEMA_RULE_VIOLATION"},
		},
		{
			name:  "long name and no fields",
			tmpl:  models.Template{ID: "x", Name: strings.Repeat("é", 101)},
			codes: []string{"MAX_LENGTH_VIOLATION", "SCHEMA_RULE_VIOLATION"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateTemplate(tt.tmpl)
			assert.Equal(t, len(tt.codes) == 0, result.Valid)

			var codes []string
			for _, e := range result.Errors {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestValidate_CustomSchema(t *testing.T) {
	v := NewValidator()
	v.RegisterSchema(&Schema{
		Name: "tag",
		Fields: []FieldValidator{
			{Name: "kind", Required: true, Options: []string{"command", "agent"}},
			{Name: "slug", MinLength: 3, Pattern: regexp.MustCompile(`^[a-z]+$`)},
		},
	})

	result := v.Validate("tag", map[string]string{"kind": "skill", "slug": "ab"})
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "INVALID_OPTION", result.Errors[0].Code)
	assert.Equal(t, "Field 'kind' must be one of: command, agent", result.Errors[0].Message)
	assert.Equal(t, "MIN_LENGTH_VIOLATION", result.Errors[1].Code)

	assert.True(t, v.Validate("tag", map[string]string{"kind": "agent"}).Valid)

	missing := v.Validate("nope", nil)
	assert.False(t, missing.Valid)
	assert.Equal(t, "SCHEMA_NOT_FOUND", missing.Errors[0].Code)
}

func TestToAppError(t *testing.T) {
	assert.Nil(t, (&ValidationResult{Valid: true}).ToAppError())

	appErr := ValidateTemplate(models.Template{ID: "Bad"}).ToAppError()
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
	assert.Equal(t, "Field 'id' does not match required pattern", appErr.Message)
	assert.Contains(t, appErr.Details, "schema: a template needs at least one field")
}
