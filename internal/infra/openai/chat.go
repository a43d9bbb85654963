package openai

import (
	"context"
	"fmt"
	"math"

	goopenai "github.com/sashabaranov/go-openai"
)

const (
	DefaultChatModel   = goopenai.GPT4oMini
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 500
)

// ChatClient analyzes transcripts with the chat-completions API.
type ChatClient struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewChatClient(apiKey, model string, temperature float32, maxTokens int) *ChatClient {
	return NewChatClientWithURL(apiKey, model, temperature, maxTokens, defaultBaseURL)
}

func NewChatClientWithURL(apiKey, model string, temperature float32, maxTokens int, baseURL string) *ChatClient {
	if model == "" {
		model = DefaultChatModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &ChatClient{
		client:      newAPIClient(apiKey, baseURL),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (c *ChatClient) Analyze(ctx context.Context, transcript, prompt string) (string, error) {
	// go-openai omits a zero temperature, which the API reads as 1.
	temperature := c.temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompt},
			{Role: goopenai.ChatMessageRoleUser, Content: transcript},
		},
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
