package ideas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// Idea is one AI-generated content suggestion. The entitlement layer never
// inspects the payload beyond counting it.
type Idea struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Hashtags       []string `json:"hashtags"`
	Difficulty     string   `json:"difficulty"`
	EstimatedViews string   `json:"estimated_views"`
}

// Generator produces content ideas for a topic. Implementations are gated by
// the entitlement facade; they do not check quotas themselves.
type Generator interface {
	GenerateIdeas(ctx context.Context, topic string, count int) ([]Idea, error)
}

const systemPrompt = "You are an expert in viral short-video content. " +
	"You produce concrete, actionable video ideas for creators and answer only with valid JSON."

// OpenAIGenerator produces ideas through the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator constructs a generator with the default model.
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// GenerateIdeas asks the model for count ideas about topic and parses the
// JSON reply. Every idea gets an id if the model omitted one.
func (g *OpenAIGenerator) GenerateIdeas(ctx context.Context, topic string, count int) ([]Idea, error) {
	prompt := fmt.Sprintf(`Generate exactly %d short-video content ideas about: %q.

Answer ONLY with a JSON array, no markdown, where each element is:
{"title": "...", "description": "...", "category": "...", "hashtags": ["#...", "#..."], "difficulty": "easy|medium|hard", "estimated_views": "10K-50K"}`, count, topic)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.9,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("ideas: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("ideas: empty completion")
	}

	content := stripFences(resp.Choices[0].Message.Content)
	var out []Idea
	if errUnmarshal := json.Unmarshal([]byte(content), &out); errUnmarshal != nil {
		return nil, fmt.Errorf("ideas: parse completion: %w", errUnmarshal)
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out, nil
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
