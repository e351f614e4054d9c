package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
)

type documentFixture struct {
	svc        DocumentService
	interviews *fakeInterviewRepo
	documents  *fakeDocumentRepo
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	storage := NewStorageService(t.TempDir(), 1<<20)
	require.NoError(t, storage.EnsureUploadDir())

	f := &documentFixture{
		interviews: newFakeInterviewRepo(),
		documents:  newFakeDocumentRepo(),
	}
	f.svc = NewDocumentService(
		f.interviews,
		f.documents,
		storage,
		NewTextExtractorService(),
		NewJobPostingService(),
		nil,
		&fakeAIService{},
	)
	return f
}

func (f *documentFixture) seedInterview(t *testing.T) uuid.UUID {
	t.Helper()
	interview := &models.Interview{
		ID:               uuid.New(),
		InterviewerName:  "Dana",
		InterviewerEmail: "dana@example.com",
		CandidateName:    "Alex",
		PositionTitle:    "Backend Engineer",
		Status:           models.StatusPreparation,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, f.interviews.Create(interview))
	return interview.ID
}

func base64Upload(content, filename, docType string) *models.Base64UploadRequest {
	return &models.Base64UploadRequest{
		FileData:     base64.StdEncoding.EncodeToString([]byte(content)),
		Filename:     filename,
		DocumentType: docType,
	}
}

func TestUploadBase64(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	doc, err := f.svc.UploadBase64(context.Background(), id, base64Upload("Five years of Go.", "resume.txt", "resume"))

	require.NoError(t, err)
	assert.Equal(t, models.DocumentResume, doc.DocumentType)
	assert.Contains(t, doc.ExtractedText, "Five years of Go.")

	stored, err := f.documents.FindByInterviewAndType(id, models.DocumentResume)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, stored.ID)
}

func TestUploadBase64ReplacesSameType(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	first, err := f.svc.UploadBase64(context.Background(), id, base64Upload("version one", "resume.txt", "resume"))
	require.NoError(t, err)

	// Analysis on the old text must not survive the re-upload
	require.NoError(t, f.documents.SaveAnalysis(first.ID, `{"stale": true}`))

	second, err := f.svc.UploadBase64(context.Background(), id, base64Upload("version two", "resume_v2.txt", "resume"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := f.documents.FindByInterviewAndType(id, models.DocumentResume)
	require.NoError(t, err)
	assert.Contains(t, stored.ExtractedText, "version two")
	assert.Nil(t, stored.AnalysisResult)

	all, err := f.documents.FindByInterview(id)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// The overwritten upload must not leave its file behind
	_, err = os.Stat(first.FilePath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(second.FilePath)
	assert.NoError(t, err)
}

func TestAddJobURLRemovesReplacedFile(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	uploaded, err := f.svc.UploadBase64(context.Background(), id, base64Upload("pasted job text", "job.txt", "job_listing"))
	require.NoError(t, err)

	doc, err := f.svc.AddJobURL(context.Background(), id, "https://example.com/jobs/7", false)
	require.NoError(t, err)
	assert.Equal(t, uploaded.ID, doc.ID)

	_, err = os.Stat(uploaded.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadBase64Validation(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	_, err := f.svc.UploadBase64(context.Background(), id, &models.Base64UploadRequest{Filename: "x.txt", DocumentType: "resume"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UploadBase64(context.Background(), id, base64Upload("text", "x.txt", "cover_letter"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UploadBase64(context.Background(), id, base64Upload("text", "x.exe", "resume"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadBase64UnknownInterview(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.svc.UploadBase64(context.Background(), uuid.New(), base64Upload("text", "x.txt", "resume"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAddJobURLPlaceholder(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	doc, err := f.svc.AddJobURL(context.Background(), id, "https://example.com/jobs/42", false)

	require.NoError(t, err)
	assert.Equal(t, models.DocumentJobListing, doc.DocumentType)
	assert.Equal(t, "job_listing_from_url.txt", doc.Filename)
	assert.Equal(t, "url:https://example.com/jobs/42", doc.FilePath)
	assert.Contains(t, doc.ExtractedText, "https://example.com/jobs/42")
}

func TestAddJobURLFetches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Staff Engineer - Example Corp</title>
			<script>trackingCode();</script></head>
			<body><nav>menu</nav><p>Build distributed systems in Go.</p></body></html>`))
	}))
	defer server.Close()

	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	doc, err := f.svc.AddJobURL(context.Background(), id, server.URL, true)

	require.NoError(t, err)
	assert.Contains(t, doc.ExtractedText, "Staff Engineer - Example Corp")
	assert.Contains(t, doc.ExtractedText, "Build distributed systems in Go.")
	assert.NotContains(t, doc.ExtractedText, "trackingCode")
	assert.NotContains(t, doc.ExtractedText, "menu")
}

func TestAddJobURLFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	_, err := f.svc.AddJobURL(context.Background(), id, server.URL, true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddJobURLRequiresURL(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	_, err := f.svc.AddJobURL(context.Background(), id, "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByInterview(t *testing.T) {
	f := newDocumentFixture(t)
	id := f.seedInterview(t)

	_, err := f.svc.UploadBase64(context.Background(), id, base64Upload("resume", "resume.txt", "resume"))
	require.NoError(t, err)
	_, err = f.svc.AddJobURL(context.Background(), id, "https://example.com/jobs/1", false)
	require.NoError(t, err)

	docs, err := f.svc.ListByInterview(id)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	_, err = f.svc.ListByInterview(uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
