package config

import "sync"

// Credentials are the provider settings the settings API can swap at runtime.
type Credentials struct {
	Provider     string
	GeminiAPIKey string
	OpenAIAPIKey string
}

// Configured reports whether the selected provider has a usable key.
func (c Credentials) Configured() bool {
	switch c.Provider {
	case "gemini":
		return c.GeminiAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	}
	return false
}

// CredentialStore holds the current provider credentials. It is passed
// explicitly to whatever needs them instead of living in package-level state;
// updates are last-writer-wins.
type CredentialStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewCredentialStore(ai AIConfig) *CredentialStore {
	return &CredentialStore{
		creds: Credentials{
			Provider:     ai.Provider,
			GeminiAPIKey: ai.GeminiAPIKey,
			OpenAIAPIKey: ai.OpenAIAPIKey,
		},
	}
}

func (s *CredentialStore) Get() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

func (s *CredentialStore) Update(update Credentials) Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Provider != "" {
		s.creds.Provider = update.Provider
	}
	if update.GeminiAPIKey != "" {
		s.creds.GeminiAPIKey = update.GeminiAPIKey
	}
	if update.OpenAIAPIKey != "" {
		s.creds.OpenAIAPIKey = update.OpenAIAPIKey
	}
	return s.creds
}
