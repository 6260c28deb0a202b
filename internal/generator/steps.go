// Package generator implements the 7-step prompt framework: composing a
// field-set into prose and structured renderings, scoring it, and expanding a
// single line of text into a full field-set.
//
// Every function in this package is pure and safe for concurrent use.
package generator

import "github.com/dpshade/luma/internal/models"

// Steps are the wizard pages in framework order
var Steps = []models.Step{
	{
		ID:          models.FieldRole,
		Title:       "Role",
		Description: "Define the AI's expertise and persona",
		Placeholder: "You are an expert software engineer with 10+ years of experience...",
		Required:    true,
	},
	{
		ID:          models.FieldTask,
		Title:       "Task",
		Description: "Specify exactly what you want the AI to do",
		Placeholder: "Help me debug this React component that's not rendering properly...",
		Required:    true,
	},
	{
		ID:          models.FieldContext,
		Title:       "Context",
		Description: "Provide relevant background information",
		Placeholder: "I'm building a React app with TypeScript. The component should display user data...",
	},
	{
		ID:          models.FieldFormat,
		Title:       "Format",
		Description: "Specify how you want the output structured",
		Placeholder: "Provide the corrected code, explain the issue, and suggest improvements...",
	},
	{
		ID:          models.FieldConstraints,
		Title:       "Constraints",
		Description: "Set limitations and requirements",
		Placeholder: "Keep the solution under 50 lines, use modern ES6+ syntax, include error handling...",
	},
	{
		ID:          models.FieldExamples,
		Title:       "Examples",
		Description: "Provide examples to guide the AI's response",
		Placeholder: "Good example: [show desired output]. Bad example: [show what to avoid]...",
	},
	{
		ID:          models.FieldIteration,
		Title:       "Iteration",
		Description: "Instructions for follow-up and refinement",
		Placeholder: "Ask me clarifying questions if anything is unclear. Offer to explain any part in detail...",
	},
}

// InstantExamples are sample one-liners offered in instant mode
var InstantExamples = []string{
	"Help me debug a React component that won't render",
	"Write compelling landing page copy for my SaaS product",
	"Explain machine learning concepts in simple terms",
	"Create a study plan for learning Python programming",
	"Generate ideas for a sci-fi short story",
}
