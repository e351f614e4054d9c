package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentAnalysisPromptTruncates(t *testing.T) {
	pb := NewPromptBuilder()

	longResume := strings.Repeat("x", maxPromptDocChars+500)
	prompt := pb.BuildDocumentAnalysisPrompt(longResume, "job", "", "")

	assert.Contains(t, prompt, strings.Repeat("x", maxPromptDocChars))
	assert.NotContains(t, prompt, strings.Repeat("x", maxPromptDocChars+1))
	assert.Contains(t, prompt, "match_analysis")
}

func TestTruncateOnRuneBoundary(t *testing.T) {
	assert.Equal(t, "short", truncateOnRuneBoundary("short", 100))
	assert.Equal(t, "abc", truncateOnRuneBoundary("abcdef", 3))

	// 世 is three bytes, so a limit of 2000 falls mid-rune; the cut must
	// back off rather than emit a broken sequence
	wide := strings.Repeat("世", 700)
	truncated := truncateOnRuneBoundary(wide, maxPromptDocChars)
	assert.True(t, utf8.ValidString(truncated))
	assert.LessOrEqual(t, len(truncated), maxPromptDocChars)
	assert.Equal(t, 1998, len(truncated))

	prompt := NewPromptBuilder().BuildDocumentAnalysisPrompt(wide, "job", "", "")
	assert.True(t, utf8.ValidString(prompt))
}

func TestBuildDocumentAnalysisPromptBankContext(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildDocumentAnalysisPrompt("resume", "job", "", "bank entry text")
	assert.Contains(t, prompt, "RELATED QUESTION BANK ENTRIES:")
	assert.Contains(t, prompt, "bank entry text")

	prompt = pb.BuildDocumentAnalysisPrompt("resume", "job", "", "")
	assert.NotContains(t, prompt, "RELATED QUESTION BANK ENTRIES:")
}

func TestBuildResponseAnalysisPromptShape(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildResponseAnalysisPrompt("the question", "the answer", "the job")

	assert.Contains(t, prompt, "the question")
	assert.Contains(t, prompt, "the answer")
	assert.Contains(t, prompt, "star_breakdown")
	assert.Contains(t, prompt, "sentiment_analysis")
	assert.Contains(t, prompt, "Scores are 0-10")
}

func TestBuildFollowUpPromptListsMissing(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildFollowUpPrompt("q", "r", []string{"situation", "result"})

	assert.Contains(t, prompt, "situation, result")
}

func TestBuildQuestionDetectionPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildQuestionDetectionPrompt("tell me about yourself", `["q1"]`)

	assert.Contains(t, prompt, `"tell me about yourself"`)
	assert.Contains(t, prompt, `"question_index": -1`)
}

func TestBuildFinalEvaluationPromptScale(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildFinalEvaluationPrompt(`{"responses": []}`)

	assert.Contains(t, prompt, "Scores are 0-100")
	assert.Contains(t, prompt, "strong_hire|hire|maybe|no_hire")
}
