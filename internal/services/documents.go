package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

// DocumentService ingests interview material: file uploads (multipart or
// base64) and job posting URLs. Every path ends in the same place, an
// upserted document row with extracted text.
type DocumentService interface {
	Upload(ctx context.Context, interviewID uuid.UUID, file *multipart.FileHeader, docType string) (*models.Document, error)
	UploadBase64(ctx context.Context, interviewID uuid.UUID, req *models.Base64UploadRequest) (*models.Document, error)
	AddJobURL(ctx context.Context, interviewID uuid.UUID, jobURL string, fetch bool) (*models.Document, error)
	ListByInterview(interviewID uuid.UUID) ([]models.Document, error)
}

type documentService struct {
	interviewRepo repositories.InterviewRepository
	docRepo       repositories.DocumentRepository
	storage       StorageService
	extractor     TextExtractorService
	jobPosting    JobPostingService
	questionBank  QuestionBankService
	ai            AIService
}

func NewDocumentService(
	interviewRepo repositories.InterviewRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	extractor TextExtractorService,
	jobPosting JobPostingService,
	questionBank QuestionBankService,
	ai AIService,
) DocumentService {
	return &documentService{
		interviewRepo: interviewRepo,
		docRepo:       docRepo,
		storage:       storage,
		extractor:     extractor,
		jobPosting:    jobPosting,
		questionBank:  questionBank,
		ai:            ai,
	}
}

// Upload implements DocumentService.
func (s *documentService) Upload(ctx context.Context, interviewID uuid.UUID, file *multipart.FileHeader, docType string) (*models.Document, error) {
	if !models.ValidDocumentType(docType) {
		return nil, fmt.Errorf("%w: invalid document type %q (must be resume, job_listing or questions)", ErrInvalidInput, docType)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	filename, filePath, err := s.storage.SaveFile(file, docType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.finishUpload(ctx, interviewID, models.DocumentType(docType), filename, filePath)
}

// UploadBase64 implements DocumentService.
func (s *documentService) UploadBase64(ctx context.Context, interviewID uuid.UUID, req *models.Base64UploadRequest) (*models.Document, error) {
	if req.FileData == "" || req.Filename == "" || req.DocumentType == "" {
		return nil, fmt.Errorf("%w: file_data, filename and document_type are required", ErrInvalidInput)
	}
	if !models.ValidDocumentType(req.DocumentType) {
		return nil, fmt.Errorf("%w: invalid document type %q (must be resume, job_listing or questions)", ErrInvalidInput, req.DocumentType)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	filename, filePath, err := s.storage.SaveBase64File(req.FileData, req.Filename, req.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.finishUpload(ctx, interviewID, models.DocumentType(req.DocumentType), filename, filePath)
}

func (s *documentService) finishUpload(ctx context.Context, interviewID uuid.UUID, docType models.DocumentType, filename, filePath string) (*models.Document, error) {
	extractedText, err := s.extractor.ExtractText(filePath)
	if err != nil {
		s.storage.DeleteFile(filename)
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	replacedFilename := s.replacedFilename(interviewID, docType, filename)

	document := &models.Document{
		ID:            uuid.New(),
		InterviewID:   interviewID,
		DocumentType:  docType,
		Filename:      filename,
		FilePath:      filePath,
		ExtractedText: extractedText,
		UploadedAt:    time.Now(),
	}

	if err := s.docRepo.Upsert(document); err != nil {
		s.storage.DeleteFile(filename)
		return nil, err
	}

	s.removeReplacedFile(replacedFilename)
	s.indexQuestionsDocument(ctx, interviewID, docType, extractedText)

	return document, nil
}

// replacedFilename returns the stored file an upsert is about to orphan, or ""
// when the existing document has no file on disk (URL-sourced or first upload).
func (s *documentService) replacedFilename(interviewID uuid.UUID, docType models.DocumentType, newFilename string) string {
	previous, err := s.docRepo.FindByInterviewAndType(interviewID, docType)
	if err != nil || previous.Filename == newFilename || strings.HasPrefix(previous.FilePath, "url:") {
		return ""
	}
	return previous.Filename
}

func (s *documentService) removeReplacedFile(filename string) {
	if filename == "" {
		return
	}
	if err := s.storage.DeleteFile(filename); err != nil {
		log.Printf("⚠️ Failed to remove replaced document file %s: %v\n", filename, err)
	}
}

// AddJobURL implements DocumentService. With fetch the page is downloaded and
// stripped to text; without it only the URL is recorded.
func (s *documentService) AddJobURL(ctx context.Context, interviewID uuid.UUID, jobURL string, fetch bool) (*models.Document, error) {
	if jobURL == "" {
		return nil, fmt.Errorf("%w: job URL is required", ErrInvalidInput)
	}
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}

	var content string
	if fetch {
		fetched, err := s.jobPosting.FetchContent(ctx, jobURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		content = fetched
	} else {
		content = s.jobPosting.PlaceholderContent(jobURL)
	}

	replacedFilename := s.replacedFilename(interviewID, models.DocumentJobListing, "job_listing_from_url.txt")

	document := &models.Document{
		ID:            uuid.New(),
		InterviewID:   interviewID,
		DocumentType:  models.DocumentJobListing,
		Filename:      "job_listing_from_url.txt",
		FilePath:      fmt.Sprintf("url:%s", jobURL),
		ExtractedText: content,
		UploadedAt:    time.Now(),
	}

	if err := s.docRepo.Upsert(document); err != nil {
		return nil, err
	}

	s.removeReplacedFile(replacedFilename)
	return document, nil
}

// ListByInterview implements DocumentService.
func (s *documentService) ListByInterview(interviewID uuid.UUID) ([]models.Document, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		return nil, err
	}
	return s.docRepo.FindByInterview(interviewID)
}

// indexQuestionsDocument pushes an uploaded company questions document into
// the question bank. Best effort: indexing failures are logged, never
// surfaced, since the bank only enriches prompts.
func (s *documentService) indexQuestionsDocument(ctx context.Context, interviewID uuid.UUID, docType models.DocumentType, text string) {
	if s.questionBank == nil || docType != models.DocumentQuestions || !s.ai.Configured() {
		return
	}

	if err := s.questionBank.IndexDocument(ctx, interviewID, text); err != nil {
		log.Printf("⚠️ Failed to index questions document for interview %s: %v\n", interviewID, err)
	}
}
