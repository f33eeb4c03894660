package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"faqbot/config"
)

const (
	chatMaxTokens       = 150
	completionMaxTokens = 100
	defaultTemperature  = 0.7
)

// OpenAIChatGenerator answers through a chat completions endpoint.
// It serves both OpenAI and Azure OpenAI.
type OpenAIChatGenerator struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIChatGenerator creates a generator for the OpenAI chat API
func NewOpenAIChatGenerator(apiKey, baseURL, model string) *OpenAIChatGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &OpenAIChatGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   config.ProviderOpenAI,
	}
}

// NewAzureChatGenerator creates a generator for an Azure OpenAI deployment
func NewAzureChatGenerator(apiKey, endpoint, deployment string) *OpenAIChatGenerator {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	cfg.AzureModelMapperFunc = func(string) string {
		return deployment
	}

	return &OpenAIChatGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  deployment,
		name:   config.ProviderAzureOpenAI,
	}
}

func (g *OpenAIChatGenerator) Name() string {
	return g.name
}

// Generate sends the system instruction, FAQ context and query as one chat turn
func (g *OpenAIChatGenerator) Generate(ctx context.Context, query, faqContext string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    buildChatMessages(query, faqContext),
		MaxTokens:   chatMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", providerError(g.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", providerError(g.name, errors.New("no response choices"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildChatMessages constructs the message sequence for the chat API
func buildChatMessages(query, faqContext string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction + "\n\n" + faqContext,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: query,
		},
	}
}

// OpenAICompletionGenerator answers through the legacy text completions endpoint
type OpenAICompletionGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAICompletionGenerator creates a generator for /completions
func NewOpenAICompletionGenerator(apiKey, baseURL, model string) *OpenAICompletionGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	return &OpenAICompletionGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAICompletionGenerator) Name() string {
	return config.ProviderOpenAICompletion
}

// Generate sends the flattened prompt and returns the first completion
func (g *OpenAICompletionGenerator) Generate(ctx context.Context, query, faqContext string) (string, error) {
	resp, err := g.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       g.model,
		Prompt:      buildPrompt(query, faqContext),
		MaxTokens:   completionMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", providerError(g.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", providerError(g.Name(), errors.New("no completion choices"))
	}

	return strings.TrimSpace(resp.Choices[0].Text), nil
}
