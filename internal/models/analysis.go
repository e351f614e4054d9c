package models

// Quality labels attached to STAR components and whole responses.
const (
	QualityStrong   = "strong"
	QualityAdequate = "adequate"
	QualityWeak     = "weak"
	QualityMissing  = "missing"
)

type StarComponent struct {
	Present bool    `json:"present"`
	Content *string `json:"content"`
	Quality string  `json:"quality,omitempty"`
}

type StarBreakdown struct {
	Situation StarComponent `json:"situation"`
	Task      StarComponent `json:"task"`
	Action    StarComponent `json:"action"`
	Result    StarComponent `json:"result"`
}

// Components returns the breakdown in canonical order, paired with names.
func (b *StarBreakdown) Components() []struct {
	Name      string
	Component *StarComponent
} {
	return []struct {
		Name      string
		Component *StarComponent
	}{
		{"situation", &b.Situation},
		{"task", &b.Task},
		{"action", &b.Action},
		{"result", &b.Result},
	}
}

func (b *StarBreakdown) MissingComponents() []string {
	var missing []string
	for _, c := range b.Components() {
		if !c.Component.Present || c.Component.Quality == QualityMissing || c.Component.Quality == QualityWeak {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

type CandidateProfile struct {
	KeySkills           []string `json:"key_skills"`
	ExperienceYears     string   `json:"experience_years"`
	Education           string   `json:"education,omitempty"`
	NotableAchievements []string `json:"notable_achievements"`
	Strengths           []string `json:"strengths"`
	PotentialConcerns   []string `json:"potential_concerns"`
}

type JobRequirements struct {
	RequiredSkills           []string `json:"required_skills"`
	PreferredQualifications  []string `json:"preferred_qualifications"`
	KeyResponsibilities      []string `json:"key_responsibilities"`
	CompanyCultureIndicators []string `json:"company_culture_indicators"`
}

type MatchAnalysis struct {
	SkillMatchPercentage int      `json:"skill_match_percentage"`
	ExperienceAlignment  string   `json:"experience_alignment"`
	GapsToExplore        []string `json:"gaps_to_explore"`
	StrengthsToHighlight []string `json:"strengths_to_highlight"`
}

// DocumentAnalysis is the structured result of analyzing a resume against a
// job listing; it is serialized onto the resume document.
type DocumentAnalysis struct {
	CandidateProfile CandidateProfile `json:"candidate_profile"`
	JobRequirements  JobRequirements  `json:"job_requirements"`
	MatchAnalysis    MatchAnalysis    `json:"match_analysis"`
}

type GeneratedQuestion struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Rationale string `json:"rationale"`
}

type ResponseEvaluation struct {
	RelevanceScore      float64  `json:"relevance_score"`
	CompletenessScore   float64  `json:"completeness_score"`
	SpecificityScore    float64  `json:"specificity_score"`
	OverallScore        float64  `json:"overall_score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

type SentimentAnalysis struct {
	ConfidenceLevel string `json:"confidence_level"`
	Enthusiasm      string `json:"enthusiasm"`
	Clarity         string `json:"clarity"`
}

// ResponseInsights is the full per-answer analysis: STAR breakdown, derived
// follow-ups, and numeric evaluation, from either the LLM or the heuristics.
type ResponseInsights struct {
	StarBreakdown     StarBreakdown      `json:"star_breakdown"`
	MissingComponents []string           `json:"missing_components"`
	FollowUpQuestions []string           `json:"follow_up_questions"`
	Strengths         []string           `json:"strengths"`
	Improvements      []string           `json:"improvements"`
	OverallQuality    string             `json:"overall_quality"`
	SummaryPoints     []string           `json:"summary_points"`
	Evaluation        ResponseEvaluation `json:"evaluation"`
	Sentiment         SentimentAnalysis  `json:"sentiment_analysis"`
}

type FinalEvaluation struct {
	OverallScore        int            `json:"overall_score"`
	CategoryScores      map[string]int `json:"category_scores"`
	Strengths           []string       `json:"strengths"`
	AreasForDevelopment []string       `json:"areas_for_development"`
	Recommendation      string         `json:"recommendation"`
	KeyInsights         []string       `json:"key_insights"`
	NextSteps           []string       `json:"next_steps"`
	Summary             string         `json:"summary"`
	Error               string         `json:"error,omitempty"`
}

type QuestionMatch struct {
	Matched       bool    `json:"matched"`
	QuestionIndex int     `json:"question_index"`
	Confidence    float64 `json:"confidence"`
	ExactMatch    bool    `json:"exact_match"`
}
