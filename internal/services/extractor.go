package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrFileNotFound      = errors.New("file not found")
)

// TextExtractorService turns an uploaded document into plain text. Supported
// formats are txt, pdf, doc and docx; anything else is rejected up front by
// the storage layer, but the extractor double-checks.
type TextExtractorService interface {
	ExtractText(filePath string) (string, error)
}

type textExtractorService struct{}

func NewTextExtractorService() TextExtractorService {
	return &textExtractorService{}
}

// ExtractText implements TextExtractorService.
func (t *textExtractorService) ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".txt":
		return t.extractPlainText(filePath)
	case ".pdf":
		return t.extractPDF(filePath)
	case ".docx":
		return t.extractDocx(filePath)
	case ".doc":
		// Legacy Word binaries have no pure-Go reader. Return a stub so the
		// upload still succeeds and the interviewer can paste text manually.
		info, err := os.Stat(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to stat file: %w", err)
		}
		return fmt.Sprintf(
			"Document %s (%d bytes) uploaded. Legacy .doc text extraction is not supported; please convert to .docx or .txt for full analysis.",
			filepath.Base(filePath), info.Size(),
		), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func (t *textExtractorService) extractPlainText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text content found in file")
	}

	return string(data), nil
}

func (t *textExtractorService) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages and keep going
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func (t *textExtractorService) extractDocx(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	content := r.Editable().GetContent()
	text := stripXMLTags(content)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in docx")
	}

	return text, nil
}

// stripXMLTags flattens raw document XML into readable text. Paragraph ends
// become newlines so downstream sentence splitting keeps working.
func stripXMLTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")

	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return CleanText(b.String())
}

// CleanText trims whitespace and drops empty lines.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
