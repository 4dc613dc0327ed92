package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history() []models.Turn {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.Turn{
		{Role: types.UserTurn, Text: "hello", At: at},
		{Role: types.AssistantTurn, Text: "hi", At: at},
		{Role: types.UserTurn, Text: "which region is best?", At: at},
	}
}

func TestOpenAI_Answer(t *testing.T) {
	var got openAIChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  North leads.  "}}]}`))
	}))
	defer srv.Close()

	o, err := NewOpenAI(OpenAIOptions{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	text, err := o.Answer(context.Background(), "system prompt", history())
	require.NoError(t, err)
	assert.Equal(t, "North leads.", text)

	assert.Equal(t, defaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, openAIMessage{Role: "system", Content: "system prompt"}, got.Messages[0])
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "which region is best?", got.Messages[3].Content)
}

func TestOpenAI_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason string
	}{
		{name: "status", status: http.StatusServiceUnavailable, body: `{}`, reason: "http_503"},
		{name: "bad json", status: http.StatusOK, body: `{`, reason: "decode_response"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, reason: "empty_choices"},
		{name: "blank", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, reason: "empty_response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			o, err := NewOpenAI(OpenAIOptions{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = o.Answer(context.Background(), "s", history())
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrRemoteUnavailable)

			var re *types.RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.reason, re.Reason)
		})
	}
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIOptions{APIKey: "  "})
	assert.Error(t, err)
}

func TestGeminiHistory(t *testing.T) {
	out := geminiHistory(history()[:2])
	require.Len(t, out, 2)
	assert.Equal(t, "user", out[0].Role)
	assert.Equal(t, "model", out[1].Role)
	assert.Equal(t, genai.Text("hi"), out[1].Parts[0])
}
