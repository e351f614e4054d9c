package services

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, maxFileSize int64) StorageService {
	t.Helper()
	svc := NewStorageService(t.TempDir(), maxFileSize)
	require.NoError(t, svc.EnsureUploadDir())
	return svc
}

func TestSaveBase64File(t *testing.T) {
	svc := newTestStorage(t, 1024)

	payload := base64.StdEncoding.EncodeToString([]byte("resume body"))
	filename, path, err := svc.SaveBase64File(payload, "resume.txt", "resume")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "resume_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "resume body", string(data))
}

func TestSaveBase64FileDataURLPrefix(t *testing.T) {
	svc := newTestStorage(t, 1024)

	payload := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("job listing"))
	_, path, err := svc.SaveBase64File(payload, "job.txt", "job_listing")

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "job listing", string(data))
}

func TestSaveBase64FileRejectsExtension(t *testing.T) {
	svc := newTestStorage(t, 1024)

	_, _, err := svc.SaveBase64File("aGk=", "malware.exe", "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file extension")
}

func TestSaveBase64FileRejectsOversized(t *testing.T) {
	svc := newTestStorage(t, 8)

	payload := base64.StdEncoding.EncodeToString([]byte("this is more than eight bytes"))
	_, _, err := svc.SaveBase64File(payload, "resume.txt", "resume")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file size exceeds")
}

func TestSaveBase64FileRejectsGarbage(t *testing.T) {
	svc := newTestStorage(t, 1024)

	_, _, err := svc.SaveBase64File("%%%not-base64%%%", "resume.txt", "resume")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestDeleteFile(t *testing.T) {
	svc := newTestStorage(t, 1024)

	payload := base64.StdEncoding.EncodeToString([]byte("temp"))
	filename, path, err := svc.SaveBase64File(payload, "resume.txt", "resume")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFile(filename))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, svc.DeleteFile(filename))
}

func TestGetFilePath(t *testing.T) {
	svc := NewStorageService("/var/uploads", 1024)

	assert.Equal(t, "/var/uploads/resume_x.txt", svc.GetFilePath("resume_x.txt"))
}
