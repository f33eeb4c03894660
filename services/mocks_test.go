package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"faqbot/models"
)

// mockGenerator implements AnswerGenerator for testing
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, query, faqContext string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockGenerator) Generate(ctx context.Context, query, faqContext string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, query, faqContext)
	}
	return "", nil
}

func (m *mockGenerator) Name() string {
	return "mock"
}

func (m *mockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// answering returns a generator that always replies with answer
func answering(answer string) *mockGenerator {
	return &mockGenerator{
		GenerateFunc: func(context.Context, string, string) (string, error) {
			return answer, nil
		},
	}
}

// memoryStore implements EscalationStore in memory
type memoryStore struct {
	AppendErr error
	ListErr   error

	mu      sync.Mutex
	records []models.EscalatedQuestion
	ctxErrs []error
}

func (s *memoryStore) Append(ctx context.Context, q models.EscalatedQuestion) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	if s.AppendErr != nil {
		return "", s.AppendErr
	}
	s.records = append(s.records, q)
	return "doc-1", nil
}

func (s *memoryStore) List(ctx context.Context, status models.EscalationStatus, limit int) ([]models.EscalatedQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}

	var out []models.EscalatedQuestion
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].Status == status {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *memoryStore) Name() string {
	return "memory"
}

func (s *memoryStore) Close() error {
	return nil
}

func (s *memoryStore) Records() []models.EscalatedQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.EscalatedQuestion(nil), s.records...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestChatbot wires a containment-policy chatbot over the default FAQs
func newTestChatbot(gen AnswerGenerator, store EscalationStore) *Chatbot {
	return newTestChatbotWithMatcher(gen, store, NewContainmentMatcher(DefaultFAQStore()))
}

func newTestChatbotWithMatcher(gen AnswerGenerator, store EscalationStore, matcher Matcher) *Chatbot {
	logger := discardLogger()
	return NewChatbot(ChatbotDeps{
		FAQs:        DefaultFAQStore(),
		Matcher:     matcher,
		Generator:   gen,
		Escalations: NewEscalationLogger(store, time.Second, logger),
		Timeout:     time.Second,
		Logger:      logger,
	})
}
