package travelapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Abraxas-365/traveldocs/pkg/ai/llm"
	"github.com/Abraxas-365/traveldocs/pkg/config"
	"github.com/Abraxas-365/traveldocs/pkg/server"
	"github.com/Abraxas-365/traveldocs/pkg/travel"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelinfra"
	"github.com/Abraxas-365/traveldocs/pkg/travel/travelsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelReply = `{"required_visa_documentation": "...", "passport_requirements": "...", "additional_documents": "...", "travel_advisories": "..."}`

// scriptedLLM stands in for the chat-completion API
type scriptedLLM struct {
	mu    sync.Mutex
	reply string
	err   error
	calls [][]llm.Message
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, messages)
	if s.err != nil {
		return llm.Response{}, s.err
	}
	return llm.Response{Message: llm.NewAssistantMessage(s.reply)}, nil
}

func newTestApp(t *testing.T, model *scriptedLLM, seed ...*travel.Conversation) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			CORSOrigins:          []string{"*"},
			CORSAllowCredentials: true,
			BodyLimit:            1024 * 1024,
		},
		LLM: config.LLMConfig{
			Model:       "llama-3.1-8b-instant",
			Temperature: 0.5,
			MaxTokens:   512,
			TopP:        1,
		},
		Environment: config.EnvironmentProduction,
	}

	store := travelinfra.NewMemoryConversationStore(seed...)
	gateway := travelinfra.NewLLMGateway(llm.NewClient(model, travelinfra.ChatOptionsFromConfig(&cfg.LLM)...))
	svc := travelsrv.NewTravelService(store, gateway)

	return server.New(cfg, nil, NewTravelHandlers(svc))
}

func postTravelInfo(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/travel-info/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestPostTravelInfo_Success(t *testing.T) {
	model := &scriptedLLM{reply: modelReply}
	app := newTestApp(t, model)

	status, body := postTravelInfo(t, app, `{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Japan", body["destination_country"])
	assert.Equal(t, "Canada", body["nationality"])
	assert.Equal(t, "abc", body["conversation_id"])

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(modelReply), &want))
	assert.Equal(t, want, body["requirements"])
}

func TestPostTravelInfo_SecondTurnReplaysHistory(t *testing.T) {
	model := &scriptedLLM{reply: modelReply}
	app := newTestApp(t, model)

	status, _ := postTravelInfo(t, app, `{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = postTravelInfo(t, app, `{"destination_country": "Peru", "nationality": "Canada", "conversation_id": "abc"}`)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, model.calls, 2)
	second := model.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t,
		[]string{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant, llm.RoleUser},
		[]string{second[0].Role, second[1].Role, second[2].Role, second[3].Role})
	assert.Contains(t, second[3].Content, "going to Peru")
}

func TestPostTravelInfo_WithoutTrailingSlash(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{reply: modelReply})

	req := httptest.NewRequest(http.MethodPost, "/travel-info",
		strings.NewReader(`{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostTravelInfo_InvalidJSONFromModel(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{reply: "not json"})

	status, body := postTravelInfo(t, app, `{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, string(travel.CodeUpstreamInvalidJSON), body["code"])
	assert.Contains(t, body["detail"], "valid JSON")
}

func TestPostTravelInfo_UpstreamCallFailure(t *testing.T) {
	app := newTestApp(t, &scriptedLLM{err: errors.New("connection reset by peer")})

	status, body := postTravelInfo(t, app, `{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, string(travel.CodeUpstreamCallFailed), body["code"])
	assert.Contains(t, body["detail"], "connection reset by peer")
}

func TestPostTravelInfo_SessionEnded(t *testing.T) {
	model := &scriptedLLM{reply: modelReply}
	app := newTestApp(t, model, travel.NewConversation("abc", travel.WithActive(false)))

	status, body := postTravelInfo(t, app, `{"destination_country": "Japan", "nationality": "Canada", "conversation_id": "abc"}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(travel.CodeSessionEnded), body["code"])
	assert.Contains(t, body["detail"], "session has ended")
	assert.Empty(t, model.calls)
}

func TestPostTravelInfo_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing field", body: `{"destination_country": "Japan", "nationality": "Canada"}`},
		{name: "empty field", body: `{"destination_country": "", "nationality": "Canada", "conversation_id": "abc"}`},
		{name: "malformed json", body: `{"destination_country": `},
		{name: "wrong type", body: `{"destination_country": 7, "nationality": "Canada", "conversation_id": "abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &scriptedLLM{reply: modelReply}
			app := newTestApp(t, model)

			status, body := postTravelInfo(t, app, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, string(travel.CodeValidation), body["code"])
			assert.Empty(t, model.calls)
		})
	}
}
