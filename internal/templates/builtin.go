package templates

import "github.com/dpshade/luma/internal/models"

// Categories in display order
var Categories = []string{
	"Coding Help",
	"Marketing Copy",
	"Study Aid",
	"Storytelling",
	"Resume/Job Prep",
}

// Builtin is the bundled template catalogue
var Builtin = []models.Template{
	{
		ID:       "debug-code",
		Name:     "Debug Code Issue",
		Category: "Coding Help",
		Summary:  "Get help debugging specific code problems",
		Icon:     "🐛",
		Fields:   models.FieldSet{
			Role:        "You are an expert software engineer and debugging specialist",
			Task:        "Help me debug and fix a specific code issue",
			Format:      "Provide the corrected code, explain the issue, and suggest best practices",
			Constraints: "Focus on the specific problem, provide working code, explain your reasoning",
		},
	},
	{
		ID:       "code-review",
		Name:     "Code Review",
		Category: "Coding Help",
		Summary:  "Get comprehensive code review and improvements",
		Icon:     "🔍",
		Fields:   models.FieldSet{
			Role:        "You are a senior software architect and code reviewer",
			Task:        "Review my code and provide detailed feedback on improvements",
			Format:      "Structured review with sections for: Issues, Improvements, Best Practices, Refactored Code",
			Constraints: "Be constructive, focus on maintainability, performance, and readability",
		},
	},
	{
		ID:       "landing-page",
		Name:     "Landing Page Copy",
		Category: "Marketing Copy",
		Summary:  "Create compelling landing page content",
		Icon:     "🚀",
		Fields:   models.FieldSet{
			Role:        "You are a conversion copywriting expert with 10+ years of experience",
			Task:        "Write high-converting landing page copy for my product/service",
			Format:      "Include headline, subheadline, benefits, features, social proof, and CTA",
			Constraints: "Focus on benefits over features, use persuasive language, keep it scannable",
		},
	},
	{
		ID:       "email-campaign",
		Name:     "Email Campaign",
		Category: "Marketing Copy",
		Summary:  "Generate engaging email marketing content",
		Icon:     "📧",
		Fields:   models.FieldSet{
			Role:        "You are an email marketing specialist with expertise in engagement and conversions",
			Task:        "Create an email campaign sequence for my target audience",
			Format:      "Subject line, preview text, body content with clear structure and CTA",
			Constraints: "Keep subject line under 50 characters, personalize content, include clear value proposition",
		},
	},
	{
		ID:       "explain-concept",
		Name:     "Explain Complex Concept",
		Category: "Study Aid",
		Summary:  "Break down difficult topics into understandable explanations",
		Icon:     "🧠",
		Fields:   models.FieldSet{
			Role:        "You are an expert educator and learning specialist",
			Task:        "Explain a complex concept in simple, understandable terms",
			Format:      "Start with simple explanation, add details progressively, include analogies and examples",
			Constraints: "Use clear language, provide real-world examples, break into digestible chunks",
		},
	},
	{
		ID:       "study-plan",
		Name:     "Study Plan Creator",
		Category: "Study Aid",
		Summary:  "Create structured learning plans for any subject",
		Icon:     "📚",
		Fields:   models.FieldSet{
			Role:        "You are an educational consultant and learning strategist",
			Task:        "Create a comprehensive study plan for mastering a specific subject",
			Format:      "Weekly breakdown with topics, resources, exercises, and milestones",
			Constraints: "Consider different learning styles, include practical exercises, set realistic timelines",
		},
	},
	{
		ID:       "story-outline",
		Name:     "Story Outline",
		Category: "Storytelling",
		Summary:  "Create compelling story structures and outlines",
		Icon:     "📖",
		Fields:   models.FieldSet{
			Role:        "You are a professional storyteller and narrative structure expert",
			Task:        "Create a detailed story outline with compelling plot structure",
			Format:      "Three-act structure with character development, plot points, and scene breakdowns",
			Constraints: "Include character motivations, conflict development, and satisfying resolution",
		},
	},
	{
		ID:       "character-development",
		Name:     "Character Development",
		Category: "Storytelling",
		Summary:  "Develop rich, complex characters for your stories",
		Icon:     "🎭",
		Fields:   models.FieldSet{
			Role:        "You are a character development specialist and creative writing coach",
			Task:        "Help me create detailed, complex characters for my story",
			Format:      "Character profile including background, motivations, flaws, growth arc, and relationships",
			Constraints: "Make characters relatable and flawed, ensure clear motivations and realistic development",
		},
	},
	{
		ID:       "resume-optimizer",
		Name:     "Resume Optimizer",
		Category: "Resume/Job Prep",
		Summary:  "Improve your resume for specific job applications",
		Icon:     "📄",
		Fields:   models.FieldSet{
			Role:        "You are a professional career coach and resume writing expert",
			Task:        "Optimize my resume for a specific job application",
			Format:      "Improved resume sections with quantified achievements and relevant keywords",
			Constraints: "Use action verbs, quantify achievements, tailor to job description, maintain ATS compatibility",
		},
	},
	{
		ID:       "interview-prep",
		Name:     "Interview Preparation",
		Category: "Resume/Job Prep",
		Summary:  "Prepare for job interviews with tailored questions and answers",
		Icon:     "💼",
		Fields:   models.FieldSet{
			Role:        "You are an experienced hiring manager and interview preparation specialist",
			Task:        "Help me prepare for a job interview with likely questions and strong answers",
			Format:      "Common questions, STAR method answers, company-specific insights, and follow-up questions",
			Constraints: "Focus on specific role and company, use concrete examples, practice behavioral questions",
		},
	},
}
