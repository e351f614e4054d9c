package models

import "encoding/json"

type CreateInterviewRequest struct {
	InterviewerName  string `json:"interviewer_name"`
	InterviewerEmail string `json:"interviewer_email"`
	CandidateName    string `json:"candidate_name"`
	CandidateEmail   string `json:"candidate_email"`
	PositionTitle    string `json:"position_title"`
}

type Base64UploadRequest struct {
	FileData     string `json:"file_data"`
	Filename     string `json:"filename"`
	DocumentType string `json:"document_type"`
}

type JobURLRequest struct {
	URL string `json:"url"`
}

type SaveResponseRequest struct {
	QuestionID      string `json:"question_id"`
	QuestionText    string `json:"question_text"`
	TranscribedText string `json:"transcribed_text"`
}

type AnalyzeLiveRequest struct {
	QuestionText    string `json:"question_text"`
	PartialResponse string `json:"partial_response"`
}

type DetectQuestionRequest struct {
	SpokenText string `json:"spoken_text"`
}

type TranscribeRequest struct {
	AudioData  string `json:"audio_data"`
	QuestionID string `json:"question_id"`
}

type SaveAPIKeysRequest struct {
	Provider     string `json:"ai_provider"`
	GeminiAPIKey string `json:"gemini_api_key"`
	OpenAIAPIKey string `json:"openai_api_key"`
}

type TestConnectionRequest struct {
	Provider     string `json:"provider"`
	GeminiAPIKey string `json:"gemini_api_key"`
	OpenAIAPIKey string `json:"openai_api_key"`
}

// ResponseView is the API shape of a Response with the serialized analysis
// columns decoded back into structures.
type ResponseView struct {
	Response
	SummaryPoints     []string      `json:"summary_points"`
	StarAnalysis      StarBreakdown `json:"star_analysis"`
	FollowUpQuestions []string      `json:"follow_up_questions"`
}

// NewResponseView decodes the serialized analysis columns of a Response.
// Broken or empty JSON decodes to zero values rather than failing the read.
func NewResponseView(r Response) ResponseView {
	view := ResponseView{Response: r}
	if r.SummaryPoints != "" {
		json.Unmarshal([]byte(r.SummaryPoints), &view.SummaryPoints)
	}
	if r.StarAnalysis != "" {
		json.Unmarshal([]byte(r.StarAnalysis), &view.StarAnalysis)
	}
	if r.FollowUpQuestions != "" {
		json.Unmarshal([]byte(r.FollowUpQuestions), &view.FollowUpQuestions)
	}
	return view
}

// InterviewView is the API shape of an interview with relations; the
// responses override the embedded raw rows with their decoded form.
type InterviewView struct {
	Interview
	Responses []ResponseView `json:"responses"`
}

// NewInterviewView decodes the response rows of a preloaded interview.
func NewInterviewView(interview Interview) InterviewView {
	return InterviewView{
		Interview: interview,
		Responses: NewResponseViews(interview.Responses),
	}
}

// NewResponseViews maps NewResponseView over a result set.
func NewResponseViews(responses []Response) []ResponseView {
	views := make([]ResponseView, 0, len(responses))
	for _, r := range responses {
		views = append(views, NewResponseView(r))
	}
	return views
}
