package openai

import (
	goopenai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.openai.com/v1"

func newAPIClient(apiKey, baseURL string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return goopenai.NewClientWithConfig(cfg)
}
