package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

// InterviewService manages interview lifecycle and the prepared question
// list. Interviews move preparation -> active -> completed and never back.
type InterviewService interface {
	Create(req *models.CreateInterviewRequest) (*models.Interview, error)
	Get(id uuid.UUID) (*models.Interview, error)
	List() ([]models.Interview, error)
	Delete(id uuid.UUID) error
	Start(id uuid.UUID) (*models.Interview, error)
	Questions(interviewID uuid.UUID) ([]models.Question, error)
	AskQuestion(interviewID, questionID uuid.UUID) (*models.Question, error)
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	questionRepo  repositories.QuestionRepository
}

func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	questionRepo repositories.QuestionRepository,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		questionRepo:  questionRepo,
	}
}

// Create implements InterviewService.
func (s *interviewService) Create(req *models.CreateInterviewRequest) (*models.Interview, error) {
	if req.InterviewerName == "" || req.InterviewerEmail == "" || req.CandidateName == "" || req.PositionTitle == "" {
		return nil, fmt.Errorf("%w: interviewer_name, interviewer_email, candidate_name and position_title are required", ErrInvalidInput)
	}

	interview := &models.Interview{
		ID:               uuid.New(),
		InterviewerName:  req.InterviewerName,
		InterviewerEmail: req.InterviewerEmail,
		CandidateName:    req.CandidateName,
		PositionTitle:    req.PositionTitle,
		Status:           models.StatusPreparation,
		CreatedAt:        time.Now(),
	}
	if req.CandidateEmail != "" {
		email := req.CandidateEmail
		interview.CandidateEmail = &email
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}
	return interview, nil
}

// Get implements InterviewService. Relations come preloaded.
func (s *interviewService) Get(id uuid.UUID) (*models.Interview, error) {
	return s.interviewRepo.FindByIDWithRelations(id)
}

// List implements InterviewService.
func (s *interviewService) List() ([]models.Interview, error) {
	return s.interviewRepo.FindAll()
}

// Delete implements InterviewService.
func (s *interviewService) Delete(id uuid.UUID) error {
	return s.interviewRepo.Delete(id)
}

// Start implements InterviewService. Only a preparation interview can start.
func (s *interviewService) Start(id uuid.UUID) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if interview.Status != models.StatusPreparation {
		return nil, fmt.Errorf("%w: interview cannot be started from status %q", ErrInvalidState, interview.Status)
	}

	now := time.Now()
	if err := s.interviewRepo.UpdateStatus(id, models.StatusActive, now); err != nil {
		return nil, err
	}

	interview.Status = models.StatusActive
	interview.StartedAt = &now
	return interview, nil
}

// Questions implements InterviewService.
func (s *interviewService) Questions(interviewID uuid.UUID) ([]models.Question, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}
	return s.questionRepo.FindByInterview(interviewID)
}

// AskQuestion implements InterviewService.
func (s *interviewService) AskQuestion(interviewID, questionID uuid.UUID) (*models.Question, error) {
	question, err := s.questionRepo.FindByID(interviewID, questionID)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.MarkAsked(interviewID, questionID); err != nil {
		return nil, err
	}

	question.IsAsked = true
	return question, nil
}
