package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

// generatedQuestionCount is how many tailored questions one analysis adds.
const generatedQuestionCount = 7

// commonQuestionOffset separates common HR questions from generated ones in
// the ordering.
const commonQuestionOffset = 10

// maxBankQueryChars caps each document's share of the question bank query.
const maxBankQueryChars = 1000

// AnalysisResult is the outcome of the document analysis pipeline.
type AnalysisResult struct {
	Analysis           *models.DocumentAnalysis   `json:"analysis"`
	GeneratedQuestions []models.GeneratedQuestion `json:"generated_questions"`
	TotalQuestions     int                        `json:"total_questions"`
	UsedFallback       bool                       `json:"used_fallback"`
}

// SaveResponseResult pairs the stored response row with its full analysis.
type SaveResponseResult struct {
	Response  models.ResponseView      `json:"response"`
	Insights  *models.ResponseInsights `json:"analysis"`
	FollowUps []string                 `json:"follow_up_questions"`
}

// LiveAnalysis is the streamlined shape returned while a candidate is still
// talking.
type LiveAnalysis struct {
	StarBreakdown     models.StarBreakdown `json:"star_breakdown"`
	MissingComponents []string             `json:"missing_components"`
	FollowUpQuestions []string             `json:"follow_up_questions"`
	SummaryPoints     []string             `json:"summary_points"`
	OverallQuality    string               `json:"overall_quality"`
}

// DetectionResult is the outcome of matching spoken text to a prepared
// question.
type DetectionResult struct {
	Matched    bool             `json:"matched"`
	Question   *models.Question `json:"question,omitempty"`
	Confidence float64          `json:"confidence"`
	ExactMatch bool             `json:"exact_match"`
}

// CompletionResult pairs the completed interview with its final evaluation.
type CompletionResult struct {
	Interview       *models.Interview       `json:"interview"`
	FinalEvaluation *models.FinalEvaluation `json:"final_evaluation"`
}

// AnalysisService runs the AI pipeline: document analysis, question
// generation, response scoring and the final verdict. Every LLM call has a
// deterministic heuristic behind it, so none of these operations fail just
// because no provider is configured.
type AnalysisService interface {
	Analyze(ctx context.Context, interviewID uuid.UUID) (*AnalysisResult, error)
	SaveResponse(ctx context.Context, interviewID uuid.UUID, req *models.SaveResponseRequest) (*SaveResponseResult, error)
	AnalyzeLive(ctx context.Context, interviewID uuid.UUID, req *models.AnalyzeLiveRequest) (*LiveAnalysis, error)
	DetectQuestion(ctx context.Context, interviewID uuid.UUID, spokenText string) (*DetectionResult, error)
	Complete(ctx context.Context, interviewID uuid.UUID) (*CompletionResult, error)
}

type analysisService struct {
	interviewRepo repositories.InterviewRepository
	docRepo       repositories.DocumentRepository
	questionRepo  repositories.QuestionRepository
	responseRepo  repositories.ResponseRepository
	ai            AIService
	heuristic     HeuristicAnalyzer
	questionBank  QuestionBankService
}

func NewAnalysisService(
	interviewRepo repositories.InterviewRepository,
	docRepo repositories.DocumentRepository,
	questionRepo repositories.QuestionRepository,
	responseRepo repositories.ResponseRepository,
	ai AIService,
	heuristic HeuristicAnalyzer,
	questionBank QuestionBankService,
) AnalysisService {
	return &analysisService{
		interviewRepo: interviewRepo,
		docRepo:       docRepo,
		questionRepo:  questionRepo,
		responseRepo:  responseRepo,
		ai:            ai,
		heuristic:     heuristic,
		questionBank:  questionBank,
	}
}

// Analyze implements AnalysisService. Requires resume and job listing
// documents; the questions document is optional context. Re-analysis
// overwrites the stored analysis but accumulates questions after the
// existing ones.
func (s *analysisService) Analyze(ctx context.Context, interviewID uuid.UUID) (*AnalysisResult, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	resumeDoc, err := s.docRepo.FindByInterviewAndType(interviewID, models.DocumentResume)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: both resume and job listing are required for analysis", ErrInvalidInput)
		}
		return nil, err
	}

	jobDoc, err := s.docRepo.FindByInterviewAndType(interviewID, models.DocumentJobListing)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: both resume and job listing are required for analysis", ErrInvalidInput)
		}
		return nil, err
	}

	companyQuestions := ""
	if questionsDoc, err := s.docRepo.FindByInterviewAndType(interviewID, models.DocumentQuestions); err == nil {
		companyQuestions = questionsDoc.ExtractedText
	}

	bankContext := s.retrieveBankContext(ctx, interviewID, resumeDoc.ExtractedText, jobDoc.ExtractedText)

	result := &AnalysisResult{}

	analysis, err := s.ai.AnalyzeDocuments(ctx, resumeDoc.ExtractedText, jobDoc.ExtractedText, companyQuestions, bankContext)
	if err != nil {
		log.Printf("⚠️ AI document analysis unavailable, using heuristics: %v\n", err)
		analysis = s.heuristic.AnalyzeDocuments(resumeDoc.ExtractedText, jobDoc.ExtractedText)
		result.UsedFallback = true
	}
	result.Analysis = analysis

	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := s.docRepo.SaveAnalysis(resumeDoc.ID, string(analysisJSON)); err != nil {
		return nil, err
	}

	generated := s.generateQuestions(ctx, analysis, resumeDoc.ExtractedText, jobDoc.ExtractedText, result)
	result.GeneratedQuestions = generated

	if err := s.persistQuestions(interviewID, generated); err != nil {
		return nil, err
	}

	result.TotalQuestions = len(generated) + 5
	return result, nil
}

func (s *analysisService) generateQuestions(ctx context.Context, analysis *models.DocumentAnalysis, resumeText, jobText string, result *AnalysisResult) []models.GeneratedQuestion {
	if !result.UsedFallback {
		questions, err := s.ai.GenerateQuestions(ctx, analysis, generatedQuestionCount)
		if err == nil && len(questions) > 0 {
			return questions
		}
		if err != nil {
			log.Printf("⚠️ AI question generation unavailable, using heuristics: %v\n", err)
		}
		result.UsedFallback = true
	}

	return s.heuristic.ContextualQuestions(resumeText, jobText)
}

// persistQuestions writes the generated questions plus the first five common
// HR questions, offset past any questions from earlier analysis runs.
func (s *analysisService) persistQuestions(interviewID uuid.UUID, generated []models.GeneratedQuestion) error {
	maxIndex, err := s.questionRepo.MaxOrderIndex(interviewID)
	if err != nil {
		return err
	}
	base := maxIndex + 1

	now := time.Now()
	var questions []models.Question

	for i, q := range generated {
		questions = append(questions, models.Question{
			ID:          uuid.New(),
			InterviewID: interviewID,
			Text:        q.Text,
			Category:    q.Category,
			Rationale:   q.Rationale,
			IsGenerated: true,
			OrderIndex:  base + i,
			CreatedAt:   now,
		})
	}

	for i, q := range CommonQuestions()[:5] {
		questions = append(questions, models.Question{
			ID:          uuid.New(),
			InterviewID: interviewID,
			Text:        q.Text,
			Category:    q.Category,
			Rationale:   q.Rationale,
			IsGenerated: false,
			OrderIndex:  base + i + commonQuestionOffset,
			CreatedAt:   now,
		})
	}

	return s.questionRepo.CreateBatch(questions)
}

func (s *analysisService) retrieveBankContext(ctx context.Context, interviewID uuid.UUID, resumeText, jobText string) string {
	if s.questionBank == nil || !s.ai.Configured() {
		return ""
	}

	query := truncateOnRuneBoundary(resumeText, maxBankQueryChars) + "\n" +
		truncateOnRuneBoundary(jobText, maxBankQueryChars)

	bankContext, err := s.questionBank.RetrieveContext(ctx, interviewID, query, 3)
	if err != nil {
		log.Printf("⚠️ Question bank retrieval failed: %v\n", err)
		return ""
	}
	return bankContext
}

// SaveResponse implements AnalysisService. The LLM analysis wins when the
// call succeeds; heuristic results fill any STAR component the LLM left
// absent, and replace everything when the LLM is unavailable.
func (s *analysisService) SaveResponse(ctx context.Context, interviewID uuid.UUID, req *models.SaveResponseRequest) (*SaveResponseResult, error) {
	if req.TranscribedText == "" {
		return nil, fmt.Errorf("%w: no transcribed text provided", ErrInvalidInput)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	jobContext := ""
	if jobDoc, err := s.docRepo.FindByInterviewAndType(interviewID, models.DocumentJobListing); err == nil {
		jobContext = jobDoc.ExtractedText
	}

	insights, llmOK := s.analyzeWithFallback(ctx, req.QuestionText, req.TranscribedText, jobContext)

	followUps := insights.FollowUpQuestions
	if llmOK && len(followUps) == 0 && len(insights.MissingComponents) > 0 {
		generated, err := s.ai.GenerateFollowUps(ctx, req.QuestionText, req.TranscribedText, insights.MissingComponents)
		if err != nil {
			followUps = s.heuristic.StarFollowUps(insights.StarBreakdown)
		} else {
			followUps = generated
		}
		insights.FollowUpQuestions = followUps
	}

	response := &models.Response{
		ID:              uuid.New(),
		InterviewID:     interviewID,
		QuestionText:    req.QuestionText,
		TranscribedText: req.TranscribedText,
		CreatedAt:       time.Now(),
	}

	if req.QuestionID != "" {
		if questionID, err := uuid.Parse(req.QuestionID); err == nil {
			response.QuestionID = &questionID
		}
	}

	if summaryJSON, err := json.Marshal(insights.SummaryPoints); err == nil {
		response.SummaryPoints = string(summaryJSON)
	}
	if starJSON, err := json.Marshal(insights.StarBreakdown); err == nil {
		response.StarAnalysis = string(starJSON)
	}
	if followUpJSON, err := json.Marshal(followUps); err == nil {
		response.FollowUpQuestions = string(followUpJSON)
	}

	if llmOK {
		confidence := confidenceScore(insights.Sentiment.ConfidenceLevel)
		response.ConfidenceScore = &confidence

		evaluation := insights.Evaluation.OverallScore / 10.0
		response.EvaluationScore = &evaluation
	}

	if err := s.responseRepo.Create(response); err != nil {
		return nil, err
	}

	return &SaveResponseResult{
		Response:  models.NewResponseView(*response),
		Insights:  insights,
		FollowUps: followUps,
	}, nil
}

// AnalyzeLive implements AnalysisService. Same analysis as SaveResponse but
// nothing is persisted.
func (s *analysisService) AnalyzeLive(ctx context.Context, interviewID uuid.UUID, req *models.AnalyzeLiveRequest) (*LiveAnalysis, error) {
	if req.PartialResponse == "" {
		return nil, fmt.Errorf("%w: no response text provided", ErrInvalidInput)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	insights, _ := s.analyzeWithFallback(ctx, req.QuestionText, req.PartialResponse, "")

	return &LiveAnalysis{
		StarBreakdown:     insights.StarBreakdown,
		MissingComponents: insights.MissingComponents,
		FollowUpQuestions: insights.FollowUpQuestions,
		SummaryPoints:     insights.SummaryPoints,
		OverallQuality:    insights.OverallQuality,
	}, nil
}

// DetectQuestion implements AnalysisService. A successful match marks the
// question as asked.
func (s *analysisService) DetectQuestion(ctx context.Context, interviewID uuid.UUID, spokenText string) (*DetectionResult, error) {
	if spokenText == "" {
		return nil, fmt.Errorf("%w: no spoken text provided", ErrInvalidInput)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByInterview(interviewID)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(questions))
	for i, q := range questions {
		texts[i] = q.Text
	}

	match, err := s.ai.DetectQuestion(ctx, spokenText, texts)
	if err != nil {
		heuristicMatch := s.heuristic.MatchQuestion(spokenText, texts)
		match = &heuristicMatch
	}

	if !match.Matched {
		return &DetectionResult{Matched: false}, nil
	}

	matched := questions[match.QuestionIndex]
	if err := s.questionRepo.MarkAsked(interviewID, matched.ID); err != nil {
		return nil, err
	}
	matched.IsAsked = true

	return &DetectionResult{
		Matched:    true,
		Question:   &matched,
		Confidence: match.Confidence,
		ExactMatch: match.ExactMatch,
	}, nil
}

// Complete implements AnalysisService. Only an active interview can
// complete. The final evaluation is best effort: when the LLM is
// unavailable the interview still completes and the evaluation carries an
// error note instead.
func (s *analysisService) Complete(ctx context.Context, interviewID uuid.UUID) (*CompletionResult, error) {
	interview, err := s.interviewRepo.FindByID(interviewID)
	if err != nil {
		return nil, err
	}

	if interview.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: interview is not active", ErrInvalidState)
	}

	responses, err := s.responseRepo.FindByInterview(interviewID)
	if err != nil {
		return nil, err
	}
	documents, err := s.docRepo.FindByInterview(interviewID)
	if err != nil {
		return nil, err
	}

	interviewData := map[string]interface{}{
		"interview": interview,
		"responses": models.NewResponseViews(responses),
		"documents": documents,
	}
	dataJSON, err := json.Marshal(interviewData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interview data: %w", err)
	}

	evaluation, err := s.ai.FinalEvaluation(ctx, string(dataJSON))
	if err != nil {
		log.Printf("⚠️ Final evaluation unavailable: %v\n", err)
		evaluation = &models.FinalEvaluation{
			Error: fmt.Sprintf("Final evaluation failed: %v", err),
		}
	}

	now := time.Now()
	if err := s.interviewRepo.UpdateStatus(interviewID, models.StatusCompleted, now); err != nil {
		return nil, err
	}

	interview.Status = models.StatusCompleted
	interview.CompletedAt = &now

	return &CompletionResult{
		Interview:       interview,
		FinalEvaluation: evaluation,
	}, nil
}

// analyzeWithFallback merges LLM and heuristic response analysis. The bool
// reports whether the LLM call succeeded.
func (s *analysisService) analyzeWithFallback(ctx context.Context, question, responseText, jobContext string) (*models.ResponseInsights, bool) {
	heuristicInsights := s.buildHeuristicInsights(responseText)

	insights, err := s.ai.AnalyzeResponse(ctx, question, responseText, jobContext)
	if err != nil {
		log.Printf("⚠️ AI response analysis unavailable, using heuristics: %v\n", err)
		return heuristicInsights, false
	}

	// Fill components the LLM left absent from the keyword scan
	for _, pair := range []struct {
		llm       *models.StarComponent
		heuristic *models.StarComponent
	}{
		{&insights.StarBreakdown.Situation, &heuristicInsights.StarBreakdown.Situation},
		{&insights.StarBreakdown.Task, &heuristicInsights.StarBreakdown.Task},
		{&insights.StarBreakdown.Action, &heuristicInsights.StarBreakdown.Action},
		{&insights.StarBreakdown.Result, &heuristicInsights.StarBreakdown.Result},
	} {
		if !pair.llm.Present && pair.heuristic.Present {
			*pair.llm = *pair.heuristic
		}
	}

	if len(insights.MissingComponents) == 0 {
		insights.MissingComponents = insights.StarBreakdown.MissingComponents()
	}
	if len(insights.SummaryPoints) == 0 {
		insights.SummaryPoints = heuristicInsights.SummaryPoints
	}
	if insights.OverallQuality == "" {
		insights.OverallQuality = heuristicInsights.OverallQuality
	}

	return insights, true
}

func (s *analysisService) buildHeuristicInsights(responseText string) *models.ResponseInsights {
	breakdown, overall := s.heuristic.ClassifySTAR(responseText)
	missing := breakdown.MissingComponents()

	improvements := []string{"Could provide more specific details", "Could include more quantifiable results"}
	if len(missing) > 0 {
		improvements[0] = fmt.Sprintf("Could elaborate more on %s", missing[0])
	}

	return &models.ResponseInsights{
		StarBreakdown:     breakdown,
		MissingComponents: missing,
		FollowUpQuestions: s.heuristic.StarFollowUps(breakdown),
		Strengths: []string{
			"Provided a response to the question",
			"Demonstrated communication skills",
		},
		Improvements:   improvements,
		OverallQuality: overall,
		SummaryPoints:  s.heuristic.SummaryPoints(responseText),
	}
}

// confidenceScore maps the sentiment confidence label onto a numeric score.
func confidenceScore(level string) float64 {
	switch level {
	case "high":
		return 0.8
	case "medium":
		return 0.6
	case "low":
		return 0.4
	}
	return 0.5
}
