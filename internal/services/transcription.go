package services

// TranscriptionResult mirrors what a speech-to-text backend would return.
type TranscriptionResult struct {
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
}

// TranscriptionService is a stub for live audio transcription. Real
// speech-to-text happens in the browser; this keeps the endpoint contract in
// place for clients that post audio anyway.
type TranscriptionService interface {
	Transcribe(audioData string) TranscriptionResult
}

type transcriptionService struct{}

func NewTranscriptionService() TranscriptionService {
	return &transcriptionService{}
}

// Transcribe implements TranscriptionService.
func (t *transcriptionService) Transcribe(audioData string) TranscriptionResult {
	return TranscriptionResult{
		Text:       "This is a simulated transcription. Connect a speech-to-text provider to transcribe real audio.",
		Speaker:    "candidate",
		Confidence: 0.95,
		Timestamp:  "00:00:05",
	}
}
