package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

type Gemini struct {
	client    *genai.Client
	modelName string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}
	return &Gemini{client: client, modelName: model}, nil
}

func (g *Gemini) Answer(ctx context.Context, system string, history []models.Turn) (string, error) {
	if len(history) == 0 {
		return "", types.NewRemoteError("empty_history", errors.New("nothing to answer"))
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))

	chat := model.StartChat()
	chat.History = geminiHistory(history[:len(history)-1])

	last := history[len(history)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Text))
	if err != nil {
		return "", types.NewRemoteError("generate_content", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", types.NewRemoteError("empty_choices", errors.New("no content returned"))
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", types.NewRemoteError("empty_response", errors.New("empty response"))
	}
	return text, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// geminiHistory maps turns onto the "user"/"model" roles.
func geminiHistory(turns []models.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == types.AssistantTurn {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Text)}})
	}
	return out
}
