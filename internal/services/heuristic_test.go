package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-copilot/internal/models"
)

const fullStarResponse = "When I was working on a large migration project at my previous company, our deployment pipeline kept failing under load. " +
	"My responsibility as the team lead was to stabilize releases within one quarter without pausing feature work for the team. " +
	"I implemented a canary rollout process, developed automated rollback tooling and led three engineers through the changes step by step. " +
	"As a result we achieved a 40% reduction in failed deployments and improved release confidence across the whole organization."

func TestClassifySTARFullResponse(t *testing.T) {
	h := NewHeuristicAnalyzer()

	breakdown, overall := h.ClassifySTAR(fullStarResponse)

	assert.True(t, breakdown.Situation.Present)
	assert.True(t, breakdown.Task.Present)
	assert.True(t, breakdown.Action.Present)
	assert.True(t, breakdown.Result.Present)
	assert.Equal(t, "good", overall)

	for _, c := range breakdown.Components() {
		require.NotNil(t, c.Component.Content, "component %s should have content", c.Name)
		assert.NotEqual(t, models.QualityMissing, c.Component.Quality)
	}
}

func TestClassifySTAREmptyResponse(t *testing.T) {
	h := NewHeuristicAnalyzer()

	breakdown, overall := h.ClassifySTAR("Yes.")

	assert.False(t, breakdown.Situation.Present)
	assert.False(t, breakdown.Task.Present)
	assert.False(t, breakdown.Action.Present)
	assert.False(t, breakdown.Result.Present)
	assert.Equal(t, "needs_improvement", overall)
	assert.Len(t, breakdown.MissingComponents(), 4)
}

func TestClassifySTARQualityGrading(t *testing.T) {
	h := NewHeuristicAnalyzer()

	// Short situation sentence: present but under ten words
	breakdown, _ := h.ClassifySTAR("The situation was bad.")
	assert.True(t, breakdown.Situation.Present)
	assert.Equal(t, models.QualityWeak, breakdown.Situation.Quality)

	// Weak components still count as missing for follow-up purposes
	assert.Contains(t, breakdown.MissingComponents(), "situation")
}

func TestClassifySTARDeterministic(t *testing.T) {
	h := NewHeuristicAnalyzer()

	first, firstOverall := h.ClassifySTAR(fullStarResponse)
	second, secondOverall := h.ClassifySTAR(fullStarResponse)

	assert.Equal(t, first, second)
	assert.Equal(t, firstOverall, secondOverall)
}

func TestStarFollowUpsCapAndOrder(t *testing.T) {
	h := NewHeuristicAnalyzer()

	breakdown, _ := h.ClassifySTAR("Yes.")
	followUps := h.StarFollowUps(breakdown)

	require.Len(t, followUps, 3)
	assert.Contains(t, followUps[0], "context about the situation")
	assert.Contains(t, followUps[1], "role or responsibility")
	assert.Contains(t, followUps[2], "actions did you take")
}

func TestStarFollowUpsNoneWhenComplete(t *testing.T) {
	h := NewHeuristicAnalyzer()

	content := "x"
	breakdown := models.StarBreakdown{
		Situation: models.StarComponent{Present: true, Content: &content, Quality: models.QualityStrong},
		Task:      models.StarComponent{Present: true, Content: &content, Quality: models.QualityAdequate},
		Action:    models.StarComponent{Present: true, Content: &content, Quality: models.QualityStrong},
		Result:    models.StarComponent{Present: true, Content: &content, Quality: models.QualityStrong},
	}

	assert.Empty(t, h.StarFollowUps(breakdown))
}

func TestMatchQuestionOverlap(t *testing.T) {
	h := NewHeuristicAnalyzer()

	questions := make([]string, 0)
	for _, q := range CommonQuestions() {
		questions = append(questions, q.Text)
	}

	match := h.MatchQuestion("so, tell me about yourself and your background please", questions)
	require.True(t, match.Matched)
	assert.Equal(t, 0, match.QuestionIndex)
	assert.False(t, match.ExactMatch)
	assert.Greater(t, match.Confidence, 0.0)
	assert.LessOrEqual(t, match.Confidence, 0.95)
}

func TestMatchQuestionExact(t *testing.T) {
	h := NewHeuristicAnalyzer()

	match := h.MatchQuestion("How do you handle stress and pressure?", []string{"How do you handle stress and pressure?"})
	require.True(t, match.Matched)
	assert.True(t, match.ExactMatch)
}

func TestMatchQuestionNoMatch(t *testing.T) {
	h := NewHeuristicAnalyzer()

	match := h.MatchQuestion("completely unrelated words here", []string{"Tell me about yourself and your background."})
	assert.False(t, match.Matched)
	assert.Equal(t, -1, match.QuestionIndex)
	assert.Zero(t, match.Confidence)
}

func TestExtractExperienceYears(t *testing.T) {
	h := NewHeuristicAnalyzer()

	assert.Equal(t, 7, h.ExtractExperienceYears("Senior engineer with 7+ years of experience in backend systems."))
	assert.Equal(t, 4, h.ExtractExperienceYears("Experience: 4 years"))
	assert.Equal(t, 0, h.ExtractExperienceYears("Recent graduate looking for a first role."))
}

func TestExtractAchievementsCapped(t *testing.T) {
	h := NewHeuristicAnalyzer()

	resume := "Increased revenue by 20%. Increased signups by 15%. Reduced costs by 30%. " +
		"Led the platform team. Managed the migration project. Implemented a caching layer. " +
		"Developed an internal tool. Achieved top performer status."

	achievements := h.ExtractAchievements(resume)
	assert.Len(t, achievements, 5)
}

func TestExtractSkillsStableOrder(t *testing.T) {
	h := NewHeuristicAnalyzer()

	text := "Built services in Go and Python, deployed with Docker on AWS."
	first := h.ExtractSkills(text)
	second := h.ExtractSkills(text)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Python")
	assert.Contains(t, first, "Go")
	assert.Contains(t, first, "Docker")
	assert.Contains(t, first, "AWS")
}

func TestContextualQuestionsCapAndDeterminism(t *testing.T) {
	h := NewHeuristicAnalyzer()

	resume := "Senior Backend Engineer at Initech Systems with 6 years of experience. " +
		"Skilled in Python, Docker, AWS and PostgreSQL. Increased throughput by 50%."
	job := "Staff Engineer\n\nWe need Python, Kubernetes and AWS expertise."

	first := h.ContextualQuestions(resume, job)
	second := h.ContextualQuestions(resume, job)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
	assert.LessOrEqual(t, len(first), 7)

	for _, q := range first {
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Category)
		assert.NotEmpty(t, q.Rationale)
	}
}

func TestContextualQuestionsSkillGap(t *testing.T) {
	h := NewHeuristicAnalyzer()

	resume := "Engineer experienced with Python."
	job := "Role\n\nRequires Python and Kubernetes."

	questions := h.ContextualQuestions(resume, job)

	found := false
	for _, q := range questions {
		if q.Category == "technical" && strings.Contains(q.Text, "Kubernetes") {
			found = true
		}
	}
	assert.True(t, found, "expected a gap question about Kubernetes")
}

func TestSummaryPointsFirstThreeSentences(t *testing.T) {
	h := NewHeuristicAnalyzer()

	points := h.SummaryPoints("First point. Second point. Third point. Fourth point.")
	require.Len(t, points, 3)
	assert.Equal(t, "First point", points[0])
	assert.Equal(t, "Third point", points[2])
}

func TestAnalyzeDocumentsHeuristic(t *testing.T) {
	h := NewHeuristicAnalyzer()

	resume := "Engineer with 5 years of experience in Python and Docker. Increased uptime by 10%."
	job := "Backend Engineer\n\nMust know Python, Docker, Kubernetes and AWS."

	analysis := h.AnalyzeDocuments(resume, job)

	require.NotNil(t, analysis)
	assert.Equal(t, "5 years", analysis.CandidateProfile.ExperienceYears)
	assert.Contains(t, analysis.MatchAnalysis.StrengthsToHighlight, "Python")
	assert.Contains(t, analysis.MatchAnalysis.GapsToExplore, "Kubernetes")
	assert.Equal(t, 50, analysis.MatchAnalysis.SkillMatchPercentage)
}

func TestCommonQuestionsPool(t *testing.T) {
	questions := CommonQuestions()

	require.Len(t, questions, 10)
	assert.Equal(t, "Tell me about yourself and your background.", questions[0].Text)
	for _, q := range questions {
		assert.NotEmpty(t, q.Category)
		assert.NotEmpty(t, q.Rationale)
	}
}
