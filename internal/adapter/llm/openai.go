package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
)

const (
	openAIDefaultTimeout = 15 * time.Second
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type OpenAIOptions struct {
	APIKey       string
	Model        string
	BaseURL      string
	Organization string
	Temperature  float64
	HTTPClient   *http.Client
}

// OpenAI answers over the chat completions endpoint.
type OpenAI struct {
	apiKey       string
	model        string
	baseURL      string
	organization string
	temperature  float64
	client       *http.Client
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	return &OpenAI{
		apiKey:       strings.TrimSpace(opts.APIKey),
		model:        model,
		baseURL:      baseURL,
		organization: strings.TrimSpace(opts.Organization),
		temperature:  opts.Temperature,
		client:       client,
	}, nil
}

func (o *OpenAI) Answer(ctx context.Context, system string, history []models.Turn) (string, error) {
	payload := openAIChatRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages:    make([]openAIMessage, 0, len(history)+1),
	}
	payload.Messages = append(payload.Messages, openAIMessage{Role: "system", Content: system})
	for _, t := range history {
		payload.Messages = append(payload.Messages, openAIMessage{Role: string(t.Role), Content: t.Text})
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", types.NewRemoteError("encode_request", err)
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", types.NewRemoteError("build_request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		req.Header.Set("OpenAI-Organization", o.organization)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", types.NewRemoteError("http_request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", types.NewRemoteError(fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("openai status %d", resp.StatusCode))
	}

	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", types.NewRemoteError("decode_response", err)
	}
	if len(out.Choices) == 0 {
		return "", types.NewRemoteError("empty_choices", errors.New("no choices"))
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", types.NewRemoteError("empty_response", errors.New("empty response"))
	}
	return text, nil
}
