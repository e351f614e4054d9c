package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsConfigured(t *testing.T) {
	assert.False(t, Credentials{}.Configured())
	assert.False(t, Credentials{Provider: "gemini"}.Configured())
	assert.False(t, Credentials{Provider: "gemini", OpenAIAPIKey: "sk"}.Configured())
	assert.True(t, Credentials{Provider: "gemini", GeminiAPIKey: "g"}.Configured())
	assert.True(t, Credentials{Provider: "openai", OpenAIAPIKey: "sk"}.Configured())
	assert.False(t, Credentials{Provider: "other", GeminiAPIKey: "g"}.Configured())
}

func TestCredentialStoreUpdate(t *testing.T) {
	store := NewCredentialStore(AIConfig{Provider: "gemini", GeminiAPIKey: "initial"})

	// Empty fields leave existing values alone
	creds := store.Update(Credentials{OpenAIAPIKey: "sk-new"})
	assert.Equal(t, "gemini", creds.Provider)
	assert.Equal(t, "initial", creds.GeminiAPIKey)
	assert.Equal(t, "sk-new", creds.OpenAIAPIKey)

	// Switching provider keeps both keys so switching back needs no re-entry
	creds = store.Update(Credentials{Provider: "openai"})
	assert.Equal(t, "openai", creds.Provider)
	assert.Equal(t, "initial", creds.GeminiAPIKey)
	assert.True(t, creds.Configured())

	assert.Equal(t, creds, store.Get())
}
