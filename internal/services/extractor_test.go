package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlainText(t *testing.T) {
	svc := NewTextExtractorService()

	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Five years of Go experience.\n"), 0644))

	text, err := svc.ExtractText(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Five years of Go experience.")
}

func TestExtractTextEmptyFile(t *testing.T) {
	svc := NewTextExtractorService()

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t"), 0644))

	_, err := svc.ExtractText(path)
	assert.Error(t, err)
}

func TestExtractTextMissingFile(t *testing.T) {
	svc := NewTextExtractorService()

	_, err := svc.ExtractText(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	svc := NewTextExtractorService()

	path := filepath.Join(t.TempDir(), "resume.rtf")
	require.NoError(t, os.WriteFile(path, []byte("{\\rtf1}"), 0644))

	_, err := svc.ExtractText(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextLegacyDocStub(t *testing.T) {
	svc := NewTextExtractorService()

	path := filepath.Join(t.TempDir(), "resume.doc")
	require.NoError(t, os.WriteFile(path, []byte("binary word content"), 0644))

	text, err := svc.ExtractText(path)

	require.NoError(t, err)
	assert.Contains(t, text, "resume.doc")
	assert.Contains(t, text, "not supported")
}

func TestStripXMLTags(t *testing.T) {
	content := `<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p><w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>`

	assert.Equal(t, "First paragraph\nSecond paragraph", stripXMLTags(content))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "one\ntwo", CleanText("  one  \n\n   \n  two \n"))
	assert.Equal(t, "", CleanText("   \n \t "))
}
