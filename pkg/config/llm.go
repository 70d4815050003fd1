package config

import "time"

// LLMConfig configures the chat-completion gateway. Defaults target Groq's
// OpenAI-compatible endpoint.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
	Timeout     time.Duration
	JSONMode    bool
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		APIKey:      getEnv("GROQ_API_KEY", ""),
		BaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:       getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
		Temperature: getEnvFloat("LLM_TEMPERATURE", 0.5),
		MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 512),
		TopP:        getEnvFloat("LLM_TOP_P", 1),
		Timeout:     getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		JSONMode:    getEnvBool("LLM_JSON_MODE", false),
	}
}
