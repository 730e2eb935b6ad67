package llm

// SkillExtractionPrompt is the system role for comma-separated skill
// extraction from free text.
const SkillExtractionPrompt = "Extract technical skills, programming languages, frameworks, and tools " +
	"from the following text. Return only the skills as a comma-separated list, no explanations. " +
	"Focus on technical and professional skills."

// JobSuggestionPrompt is the system role for structured job-posting
// suggestions.
const JobSuggestionPrompt = "Analyze this job posting and provide suggestions for: " +
	"1) Additional skills that might be relevant, 2) Experience level, 3) Job type, 4) Budget range. " +
	"Return as JSON with keys: additionalSkills, experienceLevel, jobType, budgetRange."
