package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// JobPostingService turns a job posting URL into a job_listing document.
// PlaceholderContent records just the URL; FetchContent actually downloads
// and strips the page.
type JobPostingService interface {
	PlaceholderContent(jobURL string) string
	FetchContent(ctx context.Context, jobURL string) (string, error)
}

type jobPostingService struct {
	httpClient *http.Client
}

func NewJobPostingService() JobPostingService {
	return &jobPostingService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// PlaceholderContent implements JobPostingService.
func (j *jobPostingService) PlaceholderContent(jobURL string) string {
	return fmt.Sprintf("Job Posting URL: %s\n\nThis is a placeholder for job content that would be scraped from the URL. Use the enhanced endpoint to download the actual job description, requirements, and company information from the provided URL.", jobURL)
}

// FetchContent implements JobPostingService.
func (j *jobPostingService) FetchContent(ctx context.Context, jobURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jobURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid job URL: %w", err)
	}
	req.Header.Set("User-Agent", "interview-copilot/1.0")

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch job posting: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse job posting page: %w", err)
	}

	doc.Find("script, style, nav, footer, header, noscript").Remove()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Job Posting URL: %s\n\n", jobURL))

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	body := doc.Find("body").Text()
	b.WriteString(CleanText(body))

	content := b.String()
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("no readable content at job posting URL")
	}

	return content, nil
}
