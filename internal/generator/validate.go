package generator

import (
	"strings"
	"unicode/utf8"

	"github.com/dpshade/luma/internal/models"
)

// Scoring weights
const (
	scoreRole          = 20
	scoreRoleAuthority = 10
	scoreTask          = 20
	scoreTaskDetail    = 10
	scoreContext       = 15
	scoreFormat        = 15
	scoreConstraints   = 10
	scoreExamples      = 10

	maxScore      = 100
	minValidScore = 40

	// Tasks longer than this many characters earn the detail bonus
	detailedTaskLength = 20
)

// Feedback messages
const (
	WarnMissingRole = "Missing role definition - the AI won't know its expertise level"
	WarnMissingTask = "Missing task specification - the AI won't know what to do"

	SuggestSpecificTask = `Make your task more specific. Instead of "help me", specify exactly what you want`
	SuggestContext      = "Adding context will help the AI provide more relevant responses"
	SuggestFormat       = "Specify the desired output format (list, paragraph, code, etc.)"
	SuggestConstraints  = "Adding constraints helps ensure the AI stays focused and relevant"
	SuggestExamples     = "Examples significantly improve AI understanding and output quality"
)

// Validate scores fs for completeness and returns feedback.
// Keyword checks are case-sensitive substring matches.
func Validate(fs models.FieldSet) models.ValidationResult {
	warnings := []string{}
	suggestions := []string{}
	score := 0

	if fs.Role == "" {
		warnings = append(warnings, WarnMissingRole)
	} else {
		score += scoreRole
		if strings.Contains(fs.Role, "expert") || strings.Contains(fs.Role, "specialist") {
			score += scoreRoleAuthority
		}
	}

	if fs.Task == "" {
		warnings = append(warnings, WarnMissingTask)
	} else {
		score += scoreTask
		if utf8.RuneCountInString(fs.Task) > detailedTaskLength {
			score += scoreTaskDetail
		}
	}

	if strings.Contains(fs.Task, "help me") || strings.Contains(fs.Task, "can you") {
		suggestions = append(suggestions, SuggestSpecificTask)
	}

	if fs.Context != "" {
		score += scoreContext
	} else {
		suggestions = append(suggestions, SuggestContext)
	}

	if fs.Format != "" {
		score += scoreFormat
	} else {
		suggestions = append(suggestions, SuggestFormat)
	}

	if fs.Constraints != "" {
		score += scoreConstraints
	} else {
		suggestions = append(suggestions, SuggestConstraints)
	}

	if fs.Examples != "" {
		score += scoreExamples
	} else {
		suggestions = append(suggestions, SuggestExamples)
	}

	return models.ValidationResult{
		IsValid:     score >= minValidScore && fs.Role != "" && fs.Task != "",
		Score:       min(score, maxScore),
		Warnings:    warnings,
		Suggestions: suggestions,
	}
}
