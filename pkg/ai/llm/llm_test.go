package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLLM struct {
	got *ChatOptions
}

func (r *recordingLLM) Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error) {
	r.got = Apply(opts...)
	return Response{Message: NewAssistantMessage("ok")}, nil
}

func TestClient_DefaultsThenCallOptions(t *testing.T) {
	rec := &recordingLLM{}
	client := NewClient(rec, WithModel("base"), WithTemperature(0.5), WithMaxTokens(512))

	resp, err := client.Chat(context.Background(), []Message{NewUserMessage("hi")}, WithTemperature(0.1))
	require.NoError(t, err)

	assert.Equal(t, RoleAssistant, resp.Message.Role)
	assert.Equal(t, "base", rec.got.Model)
	assert.Equal(t, float32(0.1), rec.got.Temperature)
	assert.Equal(t, 512, rec.got.MaxTokens)
	assert.Equal(t, float32(1.0), rec.got.TopP)
}

func TestApply_JSONMode(t *testing.T) {
	opts := Apply(WithJSONMode(), WithResponseFormat(&ResponseFormat{Type: TextFormat}))
	assert.True(t, opts.JSONMode)
	assert.Equal(t, TextFormat, opts.ResponseFormat.Type)
}
