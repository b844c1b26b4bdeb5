package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable FromEnv reads for the duration of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAPIKey, EnvProvider, EnvModel, EnvChatModel, EnvMaxOutputTokens, EnvThinkingBudget,
		EnvTemperature, EnvRequestTimeout, EnvChatHistoryLimit, EnvPort, EnvSessionTTL,
		EnvChromePath, EnvVerbose, EnvRateLimitOff, EnvGeneratePerHour, EnvChatPerHour, EnvRateLimitAllow,
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"provider": "gemini",
		"model": "gemini-2.5-pro",
		"max_output_tokens": 4096,
		"temperature": 0.7,
		"request_timeout": "45s",
		"session_ttl": 600,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 4096, cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-9)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout.Std())
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL.Std())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_BadDuration(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `{"request_timeout": "soon"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvMaxOutputTokens, "1000")
	t.Setenv(EnvRequestTimeout, "30s")
	t.Setenv(EnvTemperature, "0.5")
	t.Setenv(EnvVerbose, "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 1000, cfg.MaxOutputTokens)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout.Std())
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-9)
	assert.True(t, cfg.Verbose)
	assert.Zero(t, cfg.Port)
}

func TestFromEnv_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "eighty")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestResolve_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModel, "env-model")
	path := writeConfig(t, `{"model": "file-model", "chat_model": "file-chat", "port": 9000}`)

	cfg, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "env-model", cfg.Model, "environment beats the file")
	assert.Equal(t, "file-chat", cfg.ChatModel, "file beats defaults")
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 20000, cfg.MaxOutputTokens, "defaults fill the rest")
	assert.Equal(t, 10000, cfg.ThinkingBudget)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL.Std())
}

func TestResolve_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Model, cfg.Model)
	assert.Equal(t, 8080, cfg.Port)
}

func TestValidate(t *testing.T) {
	neg := -1.0
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown provider", Config{Provider: "openai"}, "unknown provider"},
		{"negative tokens", Config{MaxOutputTokens: -1}, "max_output_tokens"},
		{"negative budget", Config{ThinkingBudget: -5}, "thinking_budget"},
		{"negative history", Config{ChatHistoryLimit: -1}, "chat_history_limit"},
		{"temperature", Config{Temperature: &neg}, "temperature"},
		{"port", Config{Port: 70000}, "port"},
		{"negative generate limit", Config{GeneratePerHour: -1}, "rate limits"},
		{"chrome path", Config{ChromePath: "/nonexistent/chrome"}, "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	valid := Defaults()
	assert.NoError(t, valid.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Model: "mine"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "mine", merged.Model)
	assert.Equal(t, Defaults().ChatModel, merged.ChatModel)
	assert.Equal(t, "", cfg.ChatModel, "receiver is not modified")
}

func TestConversions(t *testing.T) {
	temp := 0.9
	cfg := Config{
		Provider:         "gemini",
		Model:            "gen-model",
		ChatModel:        "chat-model",
		MaxOutputTokens:  512,
		ThinkingBudget:   64,
		Temperature:      &temp,
		RequestTimeout:   Duration(5 * time.Second),
		ChatHistoryLimit: 12,
		Verbose:          true,
	}

	lc := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderGemini, lc.Provider)
	assert.Equal(t, "gen-model", lc.GetModel(llm.TierStandard))
	assert.Equal(t, "chat-model", lc.GetModel(llm.TierAdvanced))
	assert.InDelta(t, 0.9, float64(lc.Temperature), 1e-6)
	assert.Equal(t, 5*time.Second, lc.Timeout)

	gen := cfg.GenerationOptions()
	assert.Equal(t, int32(512), gen.MaxOutputTokens)
	assert.Equal(t, int32(64), gen.ThinkingBudget)
	assert.True(t, gen.Verbose)

	assert.Equal(t, 12, cfg.ChatOptions().HistoryLimit)
}

func TestFromEnv_RateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGeneratePerHour, "4")
	t.Setenv(EnvChatPerHour, "40")
	t.Setenv(EnvRateLimitAllow, "10.0.0.1, 10.0.0.2,")
	t.Setenv(EnvRateLimitOff, "false")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.GeneratePerHour)
	assert.Equal(t, 40, cfg.ChatPerHour)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimitAllow)
	assert.False(t, cfg.RateLimitDisabled)
}

func TestRateLimitConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Resolve(writeConfig(t, `{"generate_per_hour": 3, "rate_limit_allow": ["127.0.0.1"]}`))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.ChatPerHour, "defaults fill the chat tier")

	rl := cfg.RateLimitConfig()
	assert.True(t, rl.Enabled)
	assert.True(t, rl.Allow["127.0.0.1"])

	gen := ratelimit.MatchRoute("POST", "/sessions/abc/generate", rl.Routes)
	require.NotNil(t, gen)
	assert.Equal(t, 3, gen.Limit)
	chat := ratelimit.MatchRoute("POST", "/sessions/abc/chat", rl.Routes)
	require.NotNil(t, chat)
	assert.Equal(t, 120, chat.Limit)

	off := Config{RateLimitDisabled: true}
	assert.False(t, off.RateLimitConfig().Enabled)
}
