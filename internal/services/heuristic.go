package services

import (
	"fmt"
	"regexp"
	"strings"

	"alfredoptarigan/interview-copilot/internal/models"
)

// HeuristicAnalyzer is the deterministic fallback behind every AI-backed
// operation. It never errors and never calls the network, so the interview
// flow keeps working with no provider configured.
type HeuristicAnalyzer interface {
	ExtractSkills(text string) []string
	ExtractExperienceYears(text string) int
	ExtractAchievements(text string) []string
	AnalyzeDocuments(resumeText, jobText string) *models.DocumentAnalysis
	ContextualQuestions(resumeText, jobText string) []models.GeneratedQuestion
	ClassifySTAR(responseText string) (models.StarBreakdown, string)
	StarFollowUps(breakdown models.StarBreakdown) []string
	SummaryPoints(text string) []string
	MatchQuestion(spokenText string, questions []string) models.QuestionMatch
}

type heuristicAnalyzer struct{}

func NewHeuristicAnalyzer() HeuristicAnalyzer {
	return &heuristicAnalyzer{}
}

var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "React", "Angular", "Vue",
	"Node.js", "SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins",
	"Machine Learning", "Data Analysis", "Project Management",
	"Agile", "Scrum", "Git", "CI/CD", "REST API", "Microservices",
}

var (
	situationKeywords = []string{"situation", "when", "time", "project", "company", "team", "context", "background"}
	taskKeywords      = []string{"task", "responsibility", "goal", "objective", "needed", "required", "assigned", "role"}
	actionKeywords    = []string{"action", "did", "implemented", "created", "developed", "led", "managed", "approached", "decided"}
	resultKeywords    = []string{"result", "outcome", "achieved", "improved", "increased", "successful", "impact", "saved", "reduced"}
)

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)experience\s*:\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\s*years?\s*in`),
}

var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)increased [^.\n]+ by \d+%`),
	regexp.MustCompile(`(?i)reduced [^.\n]+ by \d+%`),
	regexp.MustCompile(`(?i)led [^.\n]+ team`),
	regexp.MustCompile(`(?i)managed [^.\n]+ project`),
	regexp.MustCompile(`(?i)implemented [^.\n]+`),
	regexp.MustCompile(`(?i)developed [^.\n]+`),
	regexp.MustCompile(`(?i)achieved [^.\n]+`),
}

var companyPattern = regexp.MustCompile(`at\s+([A-Z][A-Za-z0-9 &]+(?:Inc|LLC|Corp|Company|Technologies|Software|Systems|Solutions|Services|Labs))`)

// ExtractSkills implements HeuristicAnalyzer. Matching is a case-insensitive
// substring scan against a fixed vocabulary, so output order is stable.
func (h *heuristicAnalyzer) ExtractSkills(text string) []string {
	textLower := strings.ToLower(text)

	var skills []string
	for _, skill := range skillVocabulary {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// ExtractExperienceYears implements HeuristicAnalyzer. Returns 0 when no
// pattern matches.
func (h *heuristicAnalyzer) ExtractExperienceYears(text string) int {
	for _, pattern := range experiencePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			var years int
			fmt.Sscanf(m[1], "%d", &years)
			return years
		}
	}
	return 0
}

// ExtractAchievements implements HeuristicAnalyzer. Takes up to two matches
// per pattern, five overall.
func (h *heuristicAnalyzer) ExtractAchievements(text string) []string {
	var achievements []string
	for _, pattern := range achievementPatterns {
		matches := pattern.FindAllString(text, 2)
		achievements = append(achievements, matches...)
	}

	if len(achievements) > 5 {
		achievements = achievements[:5]
	}
	return achievements
}

// AnalyzeDocuments implements HeuristicAnalyzer. It derives a document
// analysis purely from keyword extraction: the same inputs always yield the
// same analysis.
func (h *heuristicAnalyzer) AnalyzeDocuments(resumeText, jobText string) *models.DocumentAnalysis {
	resumeSkills := h.ExtractSkills(resumeText)
	jobSkills := h.ExtractSkills(jobText)

	matching, missing := intersectSkills(resumeSkills, jobSkills)
	years := h.ExtractExperienceYears(resumeText)
	achievements := h.ExtractAchievements(resumeText)

	matchPercentage := 0
	if len(jobSkills) > 0 {
		matchPercentage = len(matching) * 100 / len(jobSkills)
	}

	experience := "Experience level not stated in resume"
	if years > 0 {
		experience = fmt.Sprintf("%d years of stated experience", years)
	}

	strengths := matching
	if len(strengths) == 0 {
		strengths = []string{"General professional background"}
	}

	var concerns []string
	for _, skill := range missing {
		concerns = append(concerns, fmt.Sprintf("No stated experience with %s", skill))
	}

	return &models.DocumentAnalysis{
		CandidateProfile: models.CandidateProfile{
			KeySkills:           resumeSkills,
			ExperienceYears:     fmt.Sprintf("%d years", years),
			NotableAchievements: achievements,
			Strengths:           strengths,
			PotentialConcerns:   concerns,
		},
		JobRequirements: models.JobRequirements{
			RequiredSkills: jobSkills,
		},
		MatchAnalysis: models.MatchAnalysis{
			SkillMatchPercentage: matchPercentage,
			ExperienceAlignment:  experience,
			GapsToExplore:        missing,
			StrengthsToHighlight: matching,
		},
	}
}

// ContextualQuestions implements HeuristicAnalyzer. Questions are built from
// whatever the extraction actually found, capped at seven.
func (h *heuristicAnalyzer) ContextualQuestions(resumeText, jobText string) []models.GeneratedQuestion {
	resumeSkills := h.ExtractSkills(resumeText)
	jobSkills := h.ExtractSkills(jobText)
	matching, missing := intersectSkills(resumeSkills, jobSkills)
	achievements := h.ExtractAchievements(resumeText)
	years := h.ExtractExperienceYears(resumeText)
	companies := extractCompanies(resumeText)
	jobTitle := extractJobTitle(jobText)

	var questions []models.GeneratedQuestion

	if len(matching) > 0 {
		skill := matching[0]
		context := "your previous role"
		if len(companies) > 0 {
			context = companies[0]
		}
		questions = append(questions, models.GeneratedQuestion{
			Text:      fmt.Sprintf("I noticed you used %s at %s. Can you walk me through a specific challenge you faced using %s and how you overcame it, particularly as it relates to the %s we're discussing?", skill, context, skill, jobTitle),
			Category:  "technical",
			Rationale: fmt.Sprintf("Assesses practical application of %s, directly relevant to job requirements", skill),
		})
	}

	if len(missing) > 0 {
		skill := missing[0]
		questions = append(questions, models.GeneratedQuestion{
			Text:      fmt.Sprintf("This role requires experience with %s. While it's not explicitly mentioned in your resume, how would you approach learning and applying %s in this position?", skill, skill),
			Category:  "technical",
			Rationale: fmt.Sprintf("Evaluates learning ability and approach to %s required for the role", skill),
		})
	}

	if len(achievements) > 0 {
		questions = append(questions, models.GeneratedQuestion{
			Text:      fmt.Sprintf("You mentioned '%s' in your resume. What was the business impact of this achievement, and how did you measure its success?", achievements[0]),
			Category:  "behavioral",
			Rationale: "Explores a specific achievement from the resume with focus on measurable impact",
		})
	}

	questions = append(questions, models.GeneratedQuestion{
		Text:      fmt.Sprintf("Given your background and the requirements for %s, how would you prioritize your first 90 days in this position? What specific initiatives would you focus on?", jobTitle),
		Category:  "situational",
		Rationale: fmt.Sprintf("Assesses strategic thinking and understanding of %s requirements", jobTitle),
	})

	if years > 3 {
		questions = append(questions, models.GeneratedQuestion{
			Text:      fmt.Sprintf("With %d years of experience, you've likely mentored or led others. Describe a time when you had to guide a team member through a challenging technical problem.", years),
			Category:  "behavioral",
			Rationale: "Evaluates leadership and mentoring capabilities based on experience level",
		})
	} else {
		questions = append(questions, models.GeneratedQuestion{
			Text:      "Describe a situation where you had to collaborate with a difficult team member or stakeholder. How did you handle it and what was the outcome?",
			Category:  "behavioral",
			Rationale: "Assesses interpersonal skills and conflict resolution",
		})
	}

	questions = append(questions, models.GeneratedQuestion{
		Text:      fmt.Sprintf("Based on what you know about this role, what interests you most about the opportunity, and how do you see yourself contributing to the team as %s?", jobTitle),
		Category:  "cultural",
		Rationale: "Evaluates motivation and cultural fit",
	})

	if len(matching) > 1 {
		tech := matching[1]
		questions = append(questions, models.GeneratedQuestion{
			Text:      fmt.Sprintf("Since %s appears in both your resume and the job requirements, can you describe the architecture decisions you made when working with it and any optimizations you implemented?", tech),
			Category:  "technical",
			Rationale: fmt.Sprintf("Technical deep-dive into %s, a required skill the candidate already has", tech),
		})
	}

	if len(questions) > 7 {
		questions = questions[:7]
	}
	return questions
}

// ClassifySTAR implements HeuristicAnalyzer. Each component is classified by
// keyword scan: its content is up to two matching sentences, its quality
// graded by word count. The second return is the overall quality label.
func (h *heuristicAnalyzer) ClassifySTAR(responseText string) (models.StarBreakdown, string) {
	breakdown := models.StarBreakdown{
		Situation: classifyComponent(responseText, situationKeywords),
		Task:      classifyComponent(responseText, taskKeywords),
		Action:    classifyComponent(responseText, actionKeywords),
		Result:    classifyComponent(responseText, resultKeywords),
	}

	presentCount := 0
	for _, c := range breakdown.Components() {
		if c.Component.Present {
			presentCount++
		}
	}

	overall := "needs_improvement"
	switch {
	case presentCount == 4:
		overall = "good"
	case presentCount >= 2:
		overall = "adequate"
	}

	return breakdown, overall
}

func classifyComponent(text string, keywords []string) models.StarComponent {
	content := extractComponentContent(text, keywords)
	if content == "" {
		return models.StarComponent{Present: false, Quality: models.QualityMissing}
	}

	quality := models.QualityStrong
	wordCount := len(strings.Fields(content))
	switch {
	case wordCount < 10:
		quality = models.QualityWeak
	case wordCount < 30:
		quality = models.QualityAdequate
	}

	return models.StarComponent{Present: true, Content: &content, Quality: quality}
}

// extractComponentContent joins the first two sentences mentioning any of the
// keywords.
func extractComponentContent(text string, keywords []string) string {
	sentences := strings.Split(text, ".")

	var relevant []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				relevant = append(relevant, strings.TrimSpace(sentence))
				break
			}
		}
		if len(relevant) == 2 {
			break
		}
	}

	return strings.Join(relevant, ". ")
}

var starFollowUpTemplates = map[string]struct{ missing, weak string }{
	"situation": {
		missing: "Can you provide more context about the situation? What was happening at the time, and what made this challenging?",
		weak:    "Could you elaborate on the background? What specific circumstances led to this situation?",
	},
	"task": {
		missing: "What was your specific role or responsibility in this situation? What were you tasked with accomplishing?",
		weak:    "Can you clarify what your specific objectives were? What were you personally responsible for?",
	},
	"action": {
		missing: "What specific actions did you take to address this challenge? Walk me through your approach step by step.",
		weak:    "Could you provide more detail about the specific steps you took? What was your personal contribution?",
	},
	"result": {
		missing: "What was the outcome of your actions? Can you share any specific results or metrics?",
		weak:    "Can you quantify the impact of your actions? What changed as a result of your efforts?",
	},
}

// StarFollowUps implements HeuristicAnalyzer. At most three follow-ups, in
// situation/task/action/result order.
func (h *heuristicAnalyzer) StarFollowUps(breakdown models.StarBreakdown) []string {
	var followUps []string
	for _, c := range breakdown.Components() {
		templates := starFollowUpTemplates[c.Name]
		switch {
		case !c.Component.Present:
			followUps = append(followUps, templates.missing)
		case c.Component.Quality == models.QualityWeak:
			followUps = append(followUps, templates.weak)
		}
	}

	if len(followUps) > 3 {
		followUps = followUps[:3]
	}
	return followUps
}

// SummaryPoints implements HeuristicAnalyzer. The first three non-empty
// sentences stand in for key points.
func (h *heuristicAnalyzer) SummaryPoints(text string) []string {
	sentences := strings.Split(text, ".")

	var points []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		points = append(points, sentence)
		if len(points) == 3 {
			break
		}
	}
	return points
}

// MatchQuestion implements HeuristicAnalyzer. A question matches when it
// shares at least three words with the spoken text; confidence is the word
// overlap ratio capped at 0.95.
func (h *heuristicAnalyzer) MatchQuestion(spokenText string, questions []string) models.QuestionMatch {
	spokenLower := strings.ToLower(spokenText)
	spokenWords := wordSet(spokenLower)

	for i, question := range questions {
		questionLower := strings.ToLower(question)
		questionWords := wordSet(questionLower)

		overlap := 0
		for word := range questionWords {
			if spokenWords[word] {
				overlap++
			}
		}

		if overlap >= 3 {
			confidence := float64(overlap) / float64(len(questionWords))
			if confidence > 0.95 {
				confidence = 0.95
			}
			return models.QuestionMatch{
				Matched:       true,
				QuestionIndex: i,
				Confidence:    confidence,
				ExactMatch:    spokenLower == questionLower,
			}
		}
	}

	return models.QuestionMatch{Matched: false, QuestionIndex: -1}
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		set[word] = true
	}
	return set
}

func intersectSkills(resumeSkills, jobSkills []string) (matching, missing []string) {
	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = true
	}

	for _, s := range jobSkills {
		if have[s] {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matching, missing
}

func extractCompanies(resumeText string) []string {
	matches := companyPattern.FindAllStringSubmatch(resumeText, 3)

	var companies []string
	seen := make(map[string]bool)
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if len(name) > 2 && !seen[name] {
			seen[name] = true
			companies = append(companies, name)
		}
	}
	return companies
}

// extractJobTitle takes the first short line of the job listing as the title.
func extractJobTitle(jobText string) string {
	lines := strings.Split(jobText, "\n")
	for i, line := range lines {
		if i >= 5 {
			break
		}
		line = strings.TrimSpace(line)
		if len(line) > 5 && len(line) < 100 {
			return line
		}
	}
	return "this position"
}

// CommonQuestions is the pre-populated HR question pool served by the
// common-questions endpoint; the first five are also attached to every
// analyzed interview.
func CommonQuestions() []models.GeneratedQuestion {
	return []models.GeneratedQuestion{
		{
			Text:      "Tell me about yourself and your background.",
			Category:  "behavioral",
			Rationale: "Allows candidate to provide overview and sets the tone for the interview",
		},
		{
			Text:      "Why are you interested in this position and our company?",
			Category:  "cultural",
			Rationale: "Assesses motivation and cultural alignment",
		},
		{
			Text:      "Describe a challenging situation you faced at work and how you handled it.",
			Category:  "behavioral",
			Rationale: "Evaluates problem-solving skills and resilience",
		},
		{
			Text:      "What are your greatest strengths and how do they apply to this role?",
			Category:  "behavioral",
			Rationale: "Identifies key competencies and self-awareness",
		},
		{
			Text:      "Describe a time when you had to work with a difficult team member.",
			Category:  "behavioral",
			Rationale: "Assesses interpersonal and conflict resolution skills",
		},
		{
			Text:      "Where do you see yourself in 5 years?",
			Category:  "cultural",
			Rationale: "Evaluates career goals and long-term commitment",
		},
		{
			Text:      "Describe a project you led and the outcome.",
			Category:  "behavioral",
			Rationale: "Assesses leadership and project management capabilities",
		},
		{
			Text:      "How do you handle stress and pressure?",
			Category:  "behavioral",
			Rationale: "Evaluates stress management and coping strategies",
		},
		{
			Text:      "What motivates you in your work?",
			Category:  "cultural",
			Rationale: "Assesses intrinsic motivation and job satisfaction factors",
		},
		{
			Text:      "Do you have any questions for us?",
			Category:  "cultural",
			Rationale: "Evaluates engagement level and preparation",
		},
	}
}
