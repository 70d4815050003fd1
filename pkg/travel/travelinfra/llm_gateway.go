package travelinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Abraxas-365/traveldocs/pkg/ai/llm"
	aiopenai "github.com/Abraxas-365/traveldocs/pkg/ai/providers/openai"
	"github.com/Abraxas-365/traveldocs/pkg/config"
	"github.com/Abraxas-365/traveldocs/pkg/logx"
	"github.com/Abraxas-365/traveldocs/pkg/travel"
	"github.com/openai/openai-go/v3/option"
)

// LLMGateway asks a chat model for travel requirements and decodes its reply
type LLMGateway struct {
	client *llm.Client
}

// NewLLMGateway wraps a client already carrying the sampling options
func NewLLMGateway(client *llm.Client) *LLMGateway {
	return &LLMGateway{client: client}
}

// NewLLMGatewayFromConfig builds the OpenAI-compatible provider and the fixed
// sampling options from cfg. The SDK's own retries are disabled.
func NewLLMGatewayFromConfig(cfg *config.LLMConfig) *LLMGateway {
	provider := aiopenai.NewOpenAIProvider(cfg.APIKey,
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	)
	return NewLLMGateway(llm.NewClient(provider, ChatOptionsFromConfig(cfg)...))
}

// ChatOptionsFromConfig returns the per-call sampling options
func ChatOptionsFromConfig(cfg *config.LLMConfig) []llm.Option {
	opts := []llm.Option{
		llm.WithModel(cfg.Model),
		llm.WithTemperature(cfg.Temperature),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithTopP(cfg.TopP),
	}
	if cfg.JSONMode {
		opts = append(opts, llm.WithJSONMode())
	}
	return opts
}

func (g *LLMGateway) Complete(ctx context.Context, messages []llm.Message) (*travel.Requirements, error) {
	resp, err := g.client.Chat(ctx, messages)
	if err != nil {
		return nil, travel.ErrUpstreamCall(err)
	}

	logx.Debugf("gateway reply: %d prompt tokens, %d completion tokens",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	return DecodeRequirements(resp.Message.Content)
}

// DecodeRequirements parses a model reply into Requirements. The reply must be
// a JSON object holding every key in travel.RequiredKeys; a surrounding
// Markdown code fence is tolerated.
func DecodeRequirements(content string) (*travel.Requirements, error) {
	raw := stripCodeFence(strings.TrimSpace(content))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, travel.ErrUpstreamParse(err)
	}
	if fields == nil {
		return nil, travel.ErrUpstreamParse(fmt.Errorf("reply is not a JSON object"))
	}

	var missing []string
	for _, key := range travel.RequiredKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, travel.ErrUpstreamParse(fmt.Errorf("reply is missing keys: %s", strings.Join(missing, ", "))).
			WithMessage("Model response is missing required keys.").
			WithDetail("missing_keys", missing)
	}

	var req travel.Requirements
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, travel.ErrUpstreamParse(err)
	}
	return &req, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
