package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxPromptDocChars caps how much raw document text goes into a prompt.
const maxPromptDocChars = 2000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildDocumentAnalysisPrompt creates the prompt for resume vs job listing analysis
func (pb *PromptBuilder) BuildDocumentAnalysisPrompt(resumeText, jobListingText, companyQuestions, questionBankContext string) string {
	extra := ""
	if questionBankContext != "" {
		extra = fmt.Sprintf("\nRELATED QUESTION BANK ENTRIES:\n%s\n", questionBankContext)
	}

	return fmt.Sprintf(`As an HR expert, analyze the following documents and provide a comprehensive analysis:

RESUME:
%s

JOB LISTING:
%s

COMPANY INTERVIEW QUESTIONS (if provided):
%s
%s
Please provide a JSON response with the following structure:
{
    "candidate_profile": {
        "key_skills": ["skill1", "skill2"],
        "experience_years": "X years",
        "education": "education details",
        "notable_achievements": ["achievement1", "achievement2"],
        "strengths": ["strength1", "strength2"],
        "potential_concerns": ["concern1", "concern2"]
    },
    "job_requirements": {
        "required_skills": ["skill1", "skill2"],
        "preferred_qualifications": ["qual1", "qual2"],
        "key_responsibilities": ["resp1", "resp2"],
        "company_culture_indicators": ["indicator1", "indicator2"]
    },
    "match_analysis": {
        "skill_match_percentage": 85,
        "experience_alignment": "description",
        "gaps_to_explore": ["gap1", "gap2"],
        "strengths_to_highlight": ["strength1", "strength2"]
    }
}

Return only valid JSON.`,
		truncateForPrompt(resumeText),
		truncateForPrompt(jobListingText),
		truncateForPrompt(companyQuestions),
		extra,
	)
}

// BuildQuestionGenerationPrompt creates the prompt for tailored interview questions
func (pb *PromptBuilder) BuildQuestionGenerationPrompt(analysisJSON string, numQuestions int) string {
	return fmt.Sprintf(`Based on the following candidate and job analysis, generate %d tailored interview questions.

ANALYSIS:
%s

Generate questions that:
1. Explore the candidate's experience relevant to the job requirements
2. Address any gaps or concerns identified in the analysis
3. Allow the candidate to showcase their strengths
4. Follow best practices for behavioral interviewing

Provide the response as a JSON array of objects with this structure:
[
    {
        "text": "Question text here",
        "category": "behavioral|technical|situational|cultural",
        "rationale": "Why this question is important for this candidate"
    }
]`,
		numQuestions, analysisJSON)
}

// BuildResponseAnalysisPrompt creates the prompt for full response analysis
func (pb *PromptBuilder) BuildResponseAnalysisPrompt(question, responseText, jobContext string) string {
	return fmt.Sprintf(`As an HR expert, analyze this candidate's response to an interview question:

QUESTION: %s
RESPONSE: %s
JOB CONTEXT: %s

Provide a comprehensive analysis in JSON format:
{
    "summary_points": ["bullet point 1", "bullet point 2", "bullet point 3"],
    "star_breakdown": {
        "situation": {"present": true, "content": "extracted situation or null", "quality": "strong/adequate/weak/missing"},
        "task": {"present": true, "content": "extracted task or null", "quality": "strong/adequate/weak/missing"},
        "action": {"present": true, "content": "extracted action or null", "quality": "strong/adequate/weak/missing"},
        "result": {"present": true, "content": "extracted result or null", "quality": "strong/adequate/weak/missing"}
    },
    "missing_components": ["list of missing or weak components"],
    "follow_up_questions": ["Specific follow-up question 1", "Specific follow-up question 2"],
    "strengths": ["strength1", "strength2"],
    "improvements": ["improvement1", "improvement2"],
    "overall_quality": "excellent/good/adequate/needs_improvement",
    "evaluation": {
        "relevance_score": 0,
        "completeness_score": 0,
        "specificity_score": 0,
        "overall_score": 0,
        "strengths": ["strength1", "strength2"],
        "areas_for_improvement": ["area1", "area2"]
    },
    "sentiment_analysis": {
        "confidence_level": "high|medium|low",
        "enthusiasm": "high|medium|low",
        "clarity": "high|medium|low"
    }
}

Scores are 0-10. Return only valid JSON.`,
		question, responseText, truncateForPrompt(jobContext))
}

// BuildFollowUpPrompt creates the prompt for STAR gap follow-up questions
func (pb *PromptBuilder) BuildFollowUpPrompt(originalQuestion, responseText string, missingComponents []string) string {
	missing := strings.Join(missingComponents, ", ")

	return fmt.Sprintf(`Based on the candidate's response to the interview question, generate follow-up questions to explore missing STAR components.

ORIGINAL QUESTION: %s
CANDIDATE RESPONSE: %s
MISSING STAR COMPONENTS: %s

Generate 2-3 follow-up questions that would help the candidate provide the missing information.
Focus on: %s

Provide the response as a JSON array of question strings:
["Follow-up question 1", "Follow-up question 2", "Follow-up question 3"]`,
		originalQuestion, responseText, missing, missing)
}

// BuildFinalEvaluationPrompt creates the prompt for the whole-interview verdict
func (pb *PromptBuilder) BuildFinalEvaluationPrompt(interviewDataJSON string) string {
	return fmt.Sprintf(`As an HR expert, provide a comprehensive final evaluation of this candidate based on their interview performance:

INTERVIEW DATA:
%s

Provide a detailed evaluation in JSON format:
{
    "overall_score": 0,
    "category_scores": {
        "technical_competency": 0,
        "communication_skills": 0,
        "cultural_fit": 0,
        "problem_solving": 0,
        "leadership_potential": 0
    },
    "strengths": ["strength1", "strength2", "strength3"],
    "areas_for_development": ["area1", "area2"],
    "recommendation": "strong_hire|hire|maybe|no_hire",
    "key_insights": ["insight1", "insight2", "insight3"],
    "next_steps": ["step1", "step2"],
    "summary": "2-3 sentence overall summary of the candidate"
}

Scores are 0-100. Return only valid JSON.`, interviewDataJSON)
}

// BuildQuestionDetectionPrompt creates the prompt for matching spoken text to a prepared question
func (pb *PromptBuilder) BuildQuestionDetectionPrompt(spokenText string, questionsJSON string) string {
	return fmt.Sprintf(`Analyze the spoken text and determine which of the available questions it matches best.

SPOKEN TEXT: "%s"

AVAILABLE QUESTIONS:
%s

If the spoken text matches or is a variation of one of the available questions, return:
{
    "matched": true,
    "question_index": 0,
    "confidence": 0.95,
    "exact_match": false
}

If no match is found, return:
{
    "matched": false,
    "question_index": -1,
    "confidence": 0.0,
    "exact_match": false
}`,
		spokenText, questionsJSON)
}

func truncateForPrompt(text string) string {
	return truncateOnRuneBoundary(text, maxPromptDocChars)
}

// truncateOnRuneBoundary cuts text to at most n bytes without splitting a
// multi-byte rune at the boundary.
func truncateOnRuneBoundary(text string, n int) string {
	if len(text) <= n {
		return text
	}

	cut := n
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
