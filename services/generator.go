package services

import (
	"context"
	"fmt"
	"strings"

	"faqbot/config"
)

// systemInstruction steers the model toward the FAQ and toward the sentinel
// phrase when it cannot answer.
const systemInstruction = "You are a customer support assistant for an online store. " +
	"Answer the customer's question using the frequently asked questions below. " +
	"Keep answers to two or three sentences. " +
	"If the answer is not covered, reply exactly with \"" + SentinelPhrase + "\"."

// AnswerGenerator obtains an answer for a query not covered by the FAQ store
type AnswerGenerator interface {
	// Generate returns the trimmed answer text. Failures wrap ErrProvider.
	Generate(ctx context.Context, query, faqContext string) (string, error)
	// Name identifies the provider in logs and metrics.
	Name() string
}

// NewAnswerGenerator builds the generator selected by the provider config
func NewAnswerGenerator(cfg config.ProviderConfig) (AnswerGenerator, error) {
	switch cfg.Name {
	case config.ProviderOpenAI:
		return NewOpenAIChatGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case config.ProviderAzureOpenAI:
		return NewAzureChatGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case config.ProviderOpenAICompletion:
		return NewOpenAICompletionGenerator(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case config.ProviderOllama:
		return NewOllamaGenerator(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Name)
	}
}

// buildPrompt renders a single-string prompt for completion-style providers
func buildPrompt(query, faqContext string) string {
	var prompt strings.Builder
	prompt.WriteString(systemInstruction)
	prompt.WriteString("\n\n")
	prompt.WriteString(faqContext)
	prompt.WriteString("\nUser: ")
	prompt.WriteString(query)
	prompt.WriteString("\nChatbot:")
	return prompt.String()
}

func providerError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrProvider, provider, err)
}
