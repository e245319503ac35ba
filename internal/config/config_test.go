package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AI_MODE", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("INTERVIEW_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "mock", cfg.Ai.Mode)
	assert.Equal(t, 30, cfg.Auth.AccessTokenExpireMinutes)
	assert.Equal(t, time.Hour, cfg.Interview.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Voice.MaxAge)
	assert.Equal(t, 10*1024*1024, cfg.Upload.MaxFileSize)
}

func TestLoadModeSelection(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		provider string
		key      string
		want     string
	}{
		{name: "explicit mock wins over key", mode: "mock", provider: "openai", key: "sk-test", want: "mock"},
		{name: "key implies live", mode: "", provider: "openai", key: "sk-test", want: "live"},
		{name: "ollama needs no key", mode: "", provider: "ollama", key: "", want: "live"},
		{name: "no key means mock", mode: "", provider: "openai", key: "", want: "mock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AI_MODE", tt.mode)
			t.Setenv("LLM_PROVIDER", tt.provider)
			t.Setenv("OPENAI_API_KEY", tt.key)

			assert.Equal(t, tt.want, Load().Ai.Mode)
		})
	}
}

func TestLoadVoiceProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		want     string
	}{
		{name: "key implies openai", provider: "", key: "sk-test", want: "openai"},
		{name: "no key disables audio", provider: "", key: "", want: "none"},
		{name: "explicit mock kept", provider: "mock", key: "", want: "mock"},
		{name: "explicit none wins over key", provider: "none", key: "sk-test", want: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VOICE_PROVIDER", tt.provider)
			t.Setenv("OPENAI_API_KEY", tt.key)

			assert.Equal(t, tt.want, Load().Voice.Provider)
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("AI_FALLBACK_RESPONSES", " Tell me more. | |Why?|")

	assert.Equal(t, []string{"Tell me more.", "Why?"}, getEnvAsList("AI_FALLBACK_RESPONSES", "|"))
	assert.Nil(t, getEnvAsList("SOMETHING_NOT_SET_AT_ALL", "|"))
}
