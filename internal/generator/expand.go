package generator

import (
	"strings"

	"github.com/dpshade/luma/internal/models"
)

// persona is the role/format/constraints triple inferred for a domain
type persona struct {
	name        string
	keywords    []string
	role        string
	format      string
	constraints string
}

// personas are tested in order; the first keyword match wins
var personas = []persona{
	{
		name:        "software",
		keywords:    []string{"code", "programming", "debug"},
		role:        "You are an expert software engineer with extensive programming experience",
		format:      "Provide working code with explanations",
		constraints: "Use best practices and include error handling",
	},
	{
		name:        "writing",
		keywords:    []string{"write", "content", "copy"},
		role:        "You are a professional content writer and copywriting expert",
		format:      "Create engaging, well-structured content",
		constraints: "Keep it clear, concise, and audience-appropriate",
	},
	{
		name:        "education",
		keywords:    []string{"learn", "explain", "teach"},
		role:        "You are an expert educator and learning specialist",
		format:      "Break down complex topics into easy-to-understand explanations",
		constraints: "Use simple language and provide examples",
	},
	{
		name:        "design",
		keywords:    []string{"design", "creative"},
		role:        "You are a creative design expert with extensive experience",
		format:      "Provide creative solutions with detailed reasoning",
		constraints: "Consider usability, aesthetics, and current trends",
	},
}

var genericPersona = persona{
	name:        "general",
	role:        "You are a helpful AI assistant",
	format:      "Provide a clear and detailed response",
	constraints: "Be accurate and helpful",
}

// DefaultIteration is the follow-up instruction used by instant mode
const DefaultIteration = "Ask me if you need any clarification"

// Expand infers a complete field-set from one line of free text.
// Context and examples are never inferred and stay empty.
func Expand(text string) models.FieldSet {
	task := strings.TrimSpace(text)
	p := classify(task)

	return models.FieldSet{
		Role:        p.role,
		Task:        task,
		Context:     "",
		Format:      p.format,
		Constraints: p.constraints,
		Examples:    "",
		Iteration:   DefaultIteration,
	}
}

// Domain returns the name of the persona Expand would pick for text
func Domain(text string) string {
	return classify(strings.TrimSpace(text)).name
}

func classify(task string) persona {
	lower := strings.ToLower(task)
	for _, p := range personas {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p
			}
		}
	}
	return genericPersona
}
