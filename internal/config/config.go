// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/chat"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/server/ratelimit"
)

// Config holds every tunable. All fields are optional; zero values are
// filled from the environment and then from Defaults.
type Config struct {
	// Model access
	APIKey          string   `json:"api_key,omitempty"`           // Gemini API key
	Provider        string   `json:"provider,omitempty"`          // genai or gemini
	Model           string   `json:"model,omitempty"`             // model used for resume generation
	ChatModel       string   `json:"chat_model,omitempty"`        // model used for the career coach
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"` // output cap per generation
	ThinkingBudget  int      `json:"thinking_budget,omitempty"`   // reasoning tokens per generation
	Temperature     *float64 `json:"temperature,omitempty"`
	RequestTimeout  Duration `json:"request_timeout,omitempty"` // bound on each model call

	// Chat
	ChatHistoryLimit int `json:"chat_history_limit,omitempty"` // prior messages sent upstream, 0 = all

	// Server
	Port       int      `json:"port,omitempty"`
	SessionTTL Duration `json:"session_ttl,omitempty"` // idle workspace lifetime
	ChromePath string   `json:"chrome_path,omitempty"` // Chrome binary for PDF export

	// Throttling, per client IP
	RateLimitDisabled bool     `json:"rate_limit_disabled,omitempty"`
	GeneratePerHour   int      `json:"generate_per_hour,omitempty"` // generate and generate/stream combined
	ChatPerHour       int      `json:"chat_per_hour,omitempty"`
	RateLimitAllow    []string `json:"rate_limit_allow,omitempty"` // client IPs never throttled

	Verbose bool `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads and writes strings such as "90s".
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Environment variable names
const (
	EnvAPIKey           = "GEMINI_API_KEY"
	EnvProvider         = "LLM_PROVIDER"
	EnvModel            = "LLM_MODEL"
	EnvChatModel        = "LLM_CHAT_MODEL"
	EnvMaxOutputTokens  = "LLM_MAX_OUTPUT_TOKENS"
	EnvThinkingBudget   = "LLM_THINKING_BUDGET"
	EnvTemperature      = "LLM_TEMPERATURE"
	EnvRequestTimeout   = "LLM_TIMEOUT"
	EnvChatHistoryLimit = "CHAT_HISTORY_LIMIT"
	EnvPort             = "PORT"
	EnvSessionTTL       = "SESSION_TTL"
	EnvChromePath       = "CHROME_PATH"
	EnvRateLimitOff     = "RATE_LIMIT_DISABLED"
	EnvGeneratePerHour  = "RATE_LIMIT_GENERATE_PER_HOUR"
	EnvChatPerHour      = "RATE_LIMIT_CHAT_PER_HOUR"
	EnvRateLimitAllow   = "RATE_LIMIT_ALLOW"
	EnvVerbose          = "VERBOSE"
)

// Defaults returns the built-in configuration
func Defaults() Config {
	llmDefaults := llm.DefaultConfig()
	genDefaults := generation.DefaultOptions()
	temp := float64(llmDefaults.Temperature)
	return Config{
		Provider:        string(llmDefaults.Provider),
		Model:           llmDefaults.GetModel(llm.TierStandard),
		ChatModel:       llmDefaults.GetModel(llm.TierAdvanced),
		MaxOutputTokens: int(genDefaults.MaxOutputTokens),
		ThinkingBudget:  int(genDefaults.ThinkingBudget),
		Temperature:     &temp,
		RequestTimeout:  Duration(llmDefaults.Timeout),
		Port:            8080,
		SessionTTL:      Duration(2 * time.Hour),
		GeneratePerHour: 30,
		ChatPerHour:     120,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the environment variables listed above. Unset variables
// leave the field zero.
func FromEnv() (Config, error) {
	var cfg Config
	var err error

	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.Provider = os.Getenv(EnvProvider)
	cfg.Model = os.Getenv(EnvModel)
	cfg.ChatModel = os.Getenv(EnvChatModel)
	cfg.ChromePath = os.Getenv(EnvChromePath)

	if cfg.MaxOutputTokens, err = envInt(EnvMaxOutputTokens); err != nil {
		return cfg, err
	}
	if cfg.ThinkingBudget, err = envInt(EnvThinkingBudget); err != nil {
		return cfg, err
	}
	if cfg.ChatHistoryLimit, err = envInt(EnvChatHistoryLimit); err != nil {
		return cfg, err
	}
	if cfg.Port, err = envInt(EnvPort); err != nil {
		return cfg, err
	}
	if cfg.GeneratePerHour, err = envInt(EnvGeneratePerHour); err != nil {
		return cfg, err
	}
	if cfg.ChatPerHour, err = envInt(EnvChatPerHour); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = envDuration(EnvRequestTimeout); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = envDuration(EnvSessionTTL); err != nil {
		return cfg, err
	}
	if v := os.Getenv(EnvTemperature); v != "" {
		temp, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("config error: %s must be a number: %w", EnvTemperature, err)
		}
		cfg.Temperature = &temp
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Verbose, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv(EnvRateLimitOff); v != "" {
		cfg.RateLimitDisabled, _ = strconv.ParseBool(v)
	}
	for _, ip := range strings.Split(os.Getenv(EnvRateLimitAllow), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			cfg.RateLimitAllow = append(cfg.RateLimitAllow, ip)
		}
	}
	return cfg, nil
}

// Resolve layers configuration: environment over the optional file at path,
// then Defaults for anything still unset.
func Resolve(path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	merged := env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		merged = env.MergeWithDefaults(*file)
	}
	merged = merged.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate checks that the configuration has valid values.
// Missing API keys are reported by the commands that need them.
func (c *Config) Validate() error {
	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGenAI, llm.ProviderGemini:
	default:
		return fmt.Errorf("config error: unknown provider %q (want %s or %s)", c.Provider, llm.ProviderGenAI, llm.ProviderGemini)
	}

	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("config error: 'max_output_tokens' must be non-negative")
	}
	if c.ThinkingBudget < 0 {
		return fmt.Errorf("config error: 'thinking_budget' must be non-negative")
	}
	if c.ChatHistoryLimit < 0 {
		return fmt.Errorf("config error: 'chat_history_limit' must be non-negative")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.GeneratePerHour < 0 || c.ChatPerHour < 0 {
		return fmt.Errorf("config error: per-hour rate limits must be non-negative")
	}
	if c.RequestTimeout < 0 || c.SessionTTL < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ChatModel == "" {
		result.ChatModel = defaults.ChatModel
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Numeric fields: use default if zero
	if result.MaxOutputTokens == 0 {
		result.MaxOutputTokens = defaults.MaxOutputTokens
	}
	if result.ThinkingBudget == 0 {
		result.ThinkingBudget = defaults.ThinkingBudget
	}
	if result.ChatHistoryLimit == 0 {
		result.ChatHistoryLimit = defaults.ChatHistoryLimit
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.SessionTTL == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.GeneratePerHour == 0 {
		result.GeneratePerHour = defaults.GeneratePerHour
	}
	if result.ChatPerHour == 0 {
		result.ChatPerHour = defaults.ChatPerHour
	}
	if len(result.RateLimitAllow) == 0 {
		result.RateLimitAllow = defaults.RateLimitAllow
	}

	// Bools cannot tell unset from false, so either side enables verbose
	result.Verbose = result.Verbose || defaults.Verbose
	result.RateLimitDisabled = result.RateLimitDisabled || defaults.RateLimitDisabled

	return result
}

// LLMConfig builds the model client configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	if c.ChatModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.ChatModel)
	}
	if c.Temperature != nil {
		cfg.Temperature = float32(*c.Temperature)
	}
	if c.RequestTimeout > 0 {
		cfg.Timeout = c.RequestTimeout.Std()
	}
	return cfg
}

// GenerationOptions builds the resume generator tuning
func (c *Config) GenerationOptions() generation.Options {
	return generation.Options{
		Tier:            llm.TierStandard,
		MaxOutputTokens: int32(c.MaxOutputTokens),
		ThinkingBudget:  int32(c.ThinkingBudget),
		Verbose:         c.Verbose,
	}
}

// ChatOptions builds the chat session options
func (c *Config) ChatOptions() chat.Options {
	return chat.Options{
		Tier:         llm.TierAdvanced,
		HistoryLimit: c.ChatHistoryLimit,
	}
}

// RateLimitConfig builds the server throttling tiers
func (c *Config) RateLimitConfig() *ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = !c.RateLimitDisabled
	cfg.Routes = ratelimit.DefaultRoutes(c.GeneratePerHour, c.ChatPerHour)
	for _, ip := range c.RateLimitAllow {
		cfg.Allow[ip] = true
	}
	return cfg
}

func envInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func envDuration(key string) (Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: %s must be a duration such as 90s: %w", key, err)
	}
	return Duration(d), nil
}
