package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/models"
)

// ErrProviderNotConfigured signals that no usable AI credentials are set; the
// caller is expected to fall back to the heuristic analyzer.
var ErrProviderNotConfigured = errors.New("ai provider not configured")

// TextGenerator is the common surface of the Gemini and OpenAI backends.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// GeneratorFactory builds a TextGenerator from the current credentials.
// Injected so tests can stub the provider.
type GeneratorFactory func(creds config.Credentials) (TextGenerator, error)

// NewGeneratorForCredentials is the default GeneratorFactory.
func NewGeneratorForCredentials(creds config.Credentials) (TextGenerator, error) {
	switch creds.Provider {
	case "gemini":
		if creds.GeminiAPIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return NewGeminiGenerator(creds.GeminiAPIKey)
	case "openai":
		if creds.OpenAIAPIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return NewOpenAIGenerator(creds.OpenAIAPIKey), nil
	}
	return nil, ErrProviderNotConfigured
}

// AIService runs every LLM-backed operation of the interview flow. All
// methods return an error when the provider is unreachable or produces
// garbage; callers decide whether to fall back.
type AIService interface {
	AnalyzeDocuments(ctx context.Context, resumeText, jobText, companyQuestions, bankContext string) (*models.DocumentAnalysis, error)
	GenerateQuestions(ctx context.Context, analysis *models.DocumentAnalysis, numQuestions int) ([]models.GeneratedQuestion, error)
	AnalyzeResponse(ctx context.Context, question, responseText, jobContext string) (*models.ResponseInsights, error)
	GenerateFollowUps(ctx context.Context, question, responseText string, missingComponents []string) ([]string, error)
	FinalEvaluation(ctx context.Context, interviewDataJSON string) (*models.FinalEvaluation, error)
	DetectQuestion(ctx context.Context, spokenText string, questions []string) (*models.QuestionMatch, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	Configured() bool
}

type aiService struct {
	credStore     *config.CredentialStore
	promptBuilder *PromptBuilder
	newGenerator  GeneratorFactory
	timeout       time.Duration
}

func NewAIService(credStore *config.CredentialStore, timeout time.Duration) AIService {
	return &aiService{
		credStore:     credStore,
		promptBuilder: NewPromptBuilder(),
		newGenerator:  NewGeneratorForCredentials,
		timeout:       timeout,
	}
}

// Configured implements AIService.
func (s *aiService) Configured() bool {
	return s.credStore.Get().Configured()
}

func (s *aiService) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	gen, err := s.newGenerator(s.credStore.Get())
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return gen.GenerateText(ctx, prompt, temperature)
}

// AnalyzeDocuments implements AIService.
func (s *aiService) AnalyzeDocuments(ctx context.Context, resumeText, jobText, companyQuestions, bankContext string) (*models.DocumentAnalysis, error) {
	prompt := s.promptBuilder.BuildDocumentAnalysisPrompt(resumeText, jobText, companyQuestions, bankContext)

	response, err := s.generate(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze documents: %w", err)
	}

	var analysis models.DocumentAnalysis
	if err := parseJSONResponse(response, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse document analysis: %w", err)
	}

	return &analysis, nil
}

// GenerateQuestions implements AIService.
func (s *aiService) GenerateQuestions(ctx context.Context, analysis *models.DocumentAnalysis, numQuestions int) ([]models.GeneratedQuestion, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	prompt := s.promptBuilder.BuildQuestionGenerationPrompt(string(analysisJSON), numQuestions)

	response, err := s.generate(ctx, prompt, 0.4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var questions []models.GeneratedQuestion
	if err := parseJSONResponse(response, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}

	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	return questions, nil
}

// AnalyzeResponse implements AIService.
func (s *aiService) AnalyzeResponse(ctx context.Context, question, responseText, jobContext string) (*models.ResponseInsights, error) {
	prompt := s.promptBuilder.BuildResponseAnalysisPrompt(question, responseText, jobContext)

	response, err := s.generate(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze response: %w", err)
	}

	var insights models.ResponseInsights
	if err := parseJSONResponse(response, &insights); err != nil {
		return nil, fmt.Errorf("failed to parse response analysis: %w", err)
	}

	return &insights, nil
}

// GenerateFollowUps implements AIService.
func (s *aiService) GenerateFollowUps(ctx context.Context, question, responseText string, missingComponents []string) ([]string, error) {
	if len(missingComponents) == 0 {
		return nil, nil
	}

	prompt := s.promptBuilder.BuildFollowUpPrompt(question, responseText, missingComponents)

	response, err := s.generate(ctx, prompt, 0.4)
	if err != nil {
		return nil, fmt.Errorf("failed to generate follow-ups: %w", err)
	}

	var followUps []string
	if err := parseJSONResponse(response, &followUps); err != nil {
		return nil, fmt.Errorf("failed to parse follow-ups: %w", err)
	}

	if len(followUps) > 3 {
		followUps = followUps[:3]
	}
	return followUps, nil
}

// FinalEvaluation implements AIService.
func (s *aiService) FinalEvaluation(ctx context.Context, interviewDataJSON string) (*models.FinalEvaluation, error) {
	prompt := s.promptBuilder.BuildFinalEvaluationPrompt(interviewDataJSON)

	response, err := s.generate(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate final evaluation: %w", err)
	}

	var evaluation models.FinalEvaluation
	if err := parseJSONResponse(response, &evaluation); err != nil {
		return nil, fmt.Errorf("failed to parse final evaluation: %w", err)
	}

	return &evaluation, nil
}

// DetectQuestion implements AIService.
func (s *aiService) DetectQuestion(ctx context.Context, spokenText string, questions []string) (*models.QuestionMatch, error) {
	questionsJSON, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	prompt := s.promptBuilder.BuildQuestionDetectionPrompt(spokenText, string(questionsJSON))

	response, err := s.generate(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("failed to detect question: %w", err)
	}

	var match models.QuestionMatch
	if err := parseJSONResponse(response, &match); err != nil {
		return nil, fmt.Errorf("failed to parse question match: %w", err)
	}

	if match.QuestionIndex < 0 || match.QuestionIndex >= len(questions) {
		match.Matched = false
		match.QuestionIndex = -1
	}
	return &match, nil
}

// GenerateEmbedding implements AIService.
func (s *aiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	gen, err := s.newGenerator(s.credStore.Get())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return gen.GenerateEmbedding(ctx, text)
}

// TestConnection verifies that the given credentials can reach their provider
// with a minimal generation call.
func TestConnection(ctx context.Context, creds config.Credentials) error {
	gen, err := NewGeneratorForCredentials(creds)
	if err != nil {
		return err
	}

	if _, err := gen.GenerateText(ctx, "Reply with the single word: ok", 0); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON pulls the first complete JSON object or array out of LLM
// output. Models wrap payloads in markdown fences or prose, and prose can
// contain stray brackets, so this walks the text with a depth counter that is
// string-literal aware instead of trusting first/last index positions.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.IndexByte(text, '{')
	startArr := strings.IndexByte(text, '[')

	start := startObj
	open, close := byte('{'), byte('}')
	if start == -1 || (startArr != -1 && startArr < start) {
		start = startArr
		open, close = '[', ']'
	}
	if start == -1 {
		return text
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return text[start:]
}
