package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeInterviewRepo struct {
	interviews map[uuid.UUID]*models.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[uuid.UUID]*models.Interview)}
}

func (f *fakeInterviewRepo) Create(interview *models.Interview) error {
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	copied := *interview
	f.interviews[interview.ID] = &copied
	return nil
}

func (f *fakeInterviewRepo) FindByID(id uuid.UUID) (*models.Interview, error) {
	interview, ok := f.interviews[id]
	if !ok {
		return nil, fmt.Errorf("interview %s: %w", id, repositories.ErrNotFound)
	}
	copied := *interview
	return &copied, nil
}

func (f *fakeInterviewRepo) FindByIDWithRelations(id uuid.UUID) (*models.Interview, error) {
	return f.FindByID(id)
}

func (f *fakeInterviewRepo) FindAll() ([]models.Interview, error) {
	var all []models.Interview
	for _, interview := range f.interviews {
		all = append(all, *interview)
	}
	return all, nil
}

func (f *fakeInterviewRepo) UpdateStatus(id uuid.UUID, status models.InterviewStatus, at time.Time) error {
	interview, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview %s: %w", id, repositories.ErrNotFound)
	}
	interview.Status = status
	switch status {
	case models.StatusActive:
		interview.StartedAt = &at
	case models.StatusCompleted:
		interview.CompletedAt = &at
	}
	return nil
}

func (f *fakeInterviewRepo) Delete(id uuid.UUID) error {
	if _, ok := f.interviews[id]; !ok {
		return fmt.Errorf("interview %s: %w", id, repositories.ErrNotFound)
	}
	delete(f.interviews, id)
	return nil
}

type fakeDocumentRepo struct {
	documents map[uuid.UUID]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{documents: make(map[uuid.UUID]*models.Document)}
}

func (f *fakeDocumentRepo) Upsert(document *models.Document) error {
	for _, existing := range f.documents {
		if existing.InterviewID == document.InterviewID && existing.DocumentType == document.DocumentType {
			document.ID = existing.ID
			existing.Filename = document.Filename
			existing.FilePath = document.FilePath
			existing.ExtractedText = document.ExtractedText
			existing.AnalysisResult = nil
			existing.UploadedAt = document.UploadedAt
			return nil
		}
	}
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	copied := *document
	f.documents[document.ID] = &copied
	return nil
}

func (f *fakeDocumentRepo) FindByInterviewAndType(interviewID uuid.UUID, docType models.DocumentType) (*models.Document, error) {
	for _, doc := range f.documents {
		if doc.InterviewID == interviewID && doc.DocumentType == docType {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%s document: %w", docType, repositories.ErrNotFound)
}

func (f *fakeDocumentRepo) FindByInterview(interviewID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	for _, doc := range f.documents {
		if doc.InterviewID == interviewID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (f *fakeDocumentRepo) SaveAnalysis(id uuid.UUID, analysisJSON string) error {
	doc, ok := f.documents[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, repositories.ErrNotFound)
	}
	doc.AnalysisResult = &analysisJSON
	return nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]*models.Question)}
}

func (f *fakeQuestionRepo) CreateBatch(questions []models.Question) error {
	for i := range questions {
		if questions[i].ID == uuid.Nil {
			questions[i].ID = uuid.New()
		}
		copied := questions[i]
		f.questions[copied.ID] = &copied
	}
	return nil
}

func (f *fakeQuestionRepo) FindByInterview(interviewID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	for _, q := range f.questions {
		if q.InterviewID == interviewID {
			questions = append(questions, *q)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].OrderIndex < questions[j].OrderIndex
	})
	return questions, nil
}

func (f *fakeQuestionRepo) FindByID(interviewID, questionID uuid.UUID) (*models.Question, error) {
	q, ok := f.questions[questionID]
	if !ok || q.InterviewID != interviewID {
		return nil, fmt.Errorf("question %s: %w", questionID, repositories.ErrNotFound)
	}
	copied := *q
	return &copied, nil
}

func (f *fakeQuestionRepo) MarkAsked(interviewID, questionID uuid.UUID) error {
	q, ok := f.questions[questionID]
	if !ok || q.InterviewID != interviewID {
		return fmt.Errorf("question %s: %w", questionID, repositories.ErrNotFound)
	}
	q.IsAsked = true
	return nil
}

func (f *fakeQuestionRepo) MaxOrderIndex(interviewID uuid.UUID) (int, error) {
	max := -1
	for _, q := range f.questions {
		if q.InterviewID == interviewID && q.OrderIndex > max {
			max = q.OrderIndex
		}
	}
	return max, nil
}

type fakeResponseRepo struct {
	responses []models.Response
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{}
}

func (f *fakeResponseRepo) Create(response *models.Response) error {
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseRepo) FindByInterview(interviewID uuid.UUID) ([]models.Response, error) {
	var responses []models.Response
	for _, r := range f.responses {
		if r.InterviewID == interviewID {
			responses = append(responses, r)
		}
	}
	return responses, nil
}

// fakeAIService drives the pipeline from canned results. A nil field means
// the corresponding call fails, which is how the fallback paths get
// exercised.
type fakeAIService struct {
	analysis   *models.DocumentAnalysis
	questions  []models.GeneratedQuestion
	insights   *models.ResponseInsights
	followUps  []string
	evaluation *models.FinalEvaluation
	match      *models.QuestionMatch
	configured bool
}

func (f *fakeAIService) AnalyzeDocuments(ctx context.Context, resumeText, jobText, companyQuestions, bankContext string) (*models.DocumentAnalysis, error) {
	if f.analysis == nil {
		return nil, ErrProviderNotConfigured
	}
	return f.analysis, nil
}

func (f *fakeAIService) GenerateQuestions(ctx context.Context, analysis *models.DocumentAnalysis, numQuestions int) ([]models.GeneratedQuestion, error) {
	if f.questions == nil {
		return nil, ErrProviderNotConfigured
	}
	return f.questions, nil
}

func (f *fakeAIService) AnalyzeResponse(ctx context.Context, question, responseText, jobContext string) (*models.ResponseInsights, error) {
	if f.insights == nil {
		return nil, ErrProviderNotConfigured
	}
	copied := *f.insights
	return &copied, nil
}

func (f *fakeAIService) GenerateFollowUps(ctx context.Context, question, responseText string, missingComponents []string) ([]string, error) {
	if f.followUps == nil {
		return nil, ErrProviderNotConfigured
	}
	return f.followUps, nil
}

func (f *fakeAIService) FinalEvaluation(ctx context.Context, interviewDataJSON string) (*models.FinalEvaluation, error) {
	if f.evaluation == nil {
		return nil, ErrProviderNotConfigured
	}
	return f.evaluation, nil
}

func (f *fakeAIService) DetectQuestion(ctx context.Context, spokenText string, questions []string) (*models.QuestionMatch, error) {
	if f.match == nil {
		return nil, ErrProviderNotConfigured
	}
	return f.match, nil
}

func (f *fakeAIService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrProviderNotConfigured
}

func (f *fakeAIService) Configured() bool {
	return f.configured
}
