package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"faqbot/metrics"
	"faqbot/models"
)

const (
	// SentinelPhrase marks a generated answer as unanswered. Detection is a
	// plain substring test on the trimmed answer.
	SentinelPhrase = "I'm not sure"

	// FallbackMessage is returned whenever a question is escalated
	FallbackMessage = "An admin will assist you shortly!"
)

// ChatbotDeps are the collaborators a Chatbot is built from. All of them are
// constructed once at startup and never mutated afterwards.
type ChatbotDeps struct {
	FAQs        *FAQStore
	Matcher     Matcher
	Generator   AnswerGenerator
	Escalations *EscalationLogger
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Chatbot runs the FAQ-match, generate, escalate flow for one message
type Chatbot struct {
	faqs        *FAQStore
	matcher     Matcher
	generator   AnswerGenerator
	escalations *EscalationLogger
	timeout     time.Duration
	logger      *slog.Logger
	startTime   time.Time
}

// NewChatbot creates a new chatbot instance
func NewChatbot(deps ChatbotDeps) *Chatbot {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("chatbot initialized",
		"provider", deps.Generator.Name(),
		"match_policy", deps.Matcher.Policy(),
		"store", deps.Escalations.StoreName(),
		"faq_count", deps.FAQs.Len(),
	)

	return &Chatbot{
		faqs:        deps.FAQs,
		matcher:     deps.Matcher,
		generator:   deps.Generator,
		escalations: deps.Escalations,
		timeout:     deps.Timeout,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// ProcessMessage answers one user message.
//
// An empty or whitespace-only message fails with ErrEmptyInput before any
// matching. A FAQ hit is returned without calling the generator. An empty or
// sentinel-bearing generated answer is escalated and replaced with
// FallbackMessage. A generator failure is escalated and returned wrapped in
// ErrProvider.
func (c *Chatbot) ProcessMessage(ctx context.Context, message string) (models.Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.Reply{}, ErrEmptyInput
	}

	if answer, ok := c.matcher.Match(message); ok {
		return c.reply(answer, models.SourceFAQ, noProvider, 0, nil), nil
	}

	genCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	provider := c.generator.Name()
	start := time.Now()
	answer, err := c.generator.Generate(genCtx, message, c.faqs.Context())
	elapsed := time.Since(start)
	metrics.RecordProviderCall(provider, elapsed, err)

	if err != nil {
		_ = c.escalations.Escalate(ctx, message)
		return c.reply("", models.SourceError, provider, elapsed, err), err
	}

	answer = strings.TrimSpace(answer)
	if NeedsEscalation(answer) {
		_ = c.escalations.Escalate(ctx, message)
		return c.reply(FallbackMessage, models.SourceEscalated, provider, elapsed, nil), nil
	}

	return c.reply(answer, models.SourceGenerated, provider, elapsed, nil), nil
}

// noProvider is logged for replies that never reached the generator
const noProvider = "none"

// reply records the outcome of one message: a metric and exactly one log line
func (c *Chatbot) reply(text string, source models.AnswerSource, provider string, latency time.Duration, err error) models.Reply {
	metrics.RecordReply(string(source))

	attrs := []any{"source", source, "provider", provider, "latency", latency}
	if err != nil {
		c.logger.Error("chat reply", append(attrs, "error", err)...)
	} else {
		c.logger.Info("chat reply", attrs...)
	}

	return models.Reply{Text: text, Source: source}
}

// NeedsEscalation reports whether a generated answer counts as unanswered
func NeedsEscalation(answer string) bool {
	return answer == "" || strings.Contains(answer, SentinelPhrase)
}

// FAQs returns the store the chatbot answers from
func (c *Chatbot) FAQs() *FAQStore {
	return c.faqs
}

// Escalations returns the logger unanswered questions are written to
func (c *Chatbot) Escalations() *EscalationLogger {
	return c.escalations
}

// GetStatus returns the current status of the chatbot
func (c *Chatbot) GetStatus() models.HealthResponse {
	return models.HealthResponse{
		Status:      models.StatusHealthy,
		Provider:    c.generator.Name(),
		MatchPolicy: c.matcher.Policy(),
		Store:       c.escalations.StoreName(),
		FAQCount:    c.faqs.Len(),
		Uptime:      time.Since(c.startTime).Round(time.Second).String(),
	}
}
