package services

import (
	"fmt"
	"strings"

	"faqbot/config"
	"faqbot/models"
)

// Matcher decides whether a query is covered by the FAQ store
type Matcher interface {
	// Match returns the static answer for query, if any.
	Match(query string) (string, bool)
	// Policy names the matching policy.
	Policy() string
}

// ContainmentMatcher answers when the lower-cased query is a substring of a
// FAQ question. The direction is query-inside-question: "return policy"
// matches "What is your return policy?", but a longer query that merely
// contains a FAQ question does not.
type ContainmentMatcher struct {
	questions []string
	entries   []models.FAQEntry
}

// NewContainmentMatcher builds a matcher over the store's entries
func NewContainmentMatcher(store *FAQStore) *ContainmentMatcher {
	entries := store.Entries()
	questions := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = strings.ToLower(e.Question)
	}
	return &ContainmentMatcher{questions: questions, entries: entries}
}

// Match scans the questions in store order; the first hit wins
func (m *ContainmentMatcher) Match(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	for i, question := range m.questions {
		if strings.Contains(question, q) {
			return m.entries[i].Answer, true
		}
	}
	return "", false
}

func (m *ContainmentMatcher) Policy() string {
	return "containment"
}

// PromptMatcher never matches; the FAQ pairs reach the generator through the
// prompt context instead.
type PromptMatcher struct{}

func (PromptMatcher) Match(string) (string, bool) {
	return "", false
}

func (PromptMatcher) Policy() string {
	return "prompt"
}

// NewMatcher returns the matcher for a MATCH_POLICY value
func NewMatcher(policy string, store *FAQStore) (Matcher, error) {
	switch policy {
	case config.PolicyContainment:
		return NewContainmentMatcher(store), nil
	case config.PolicyPrompt:
		return PromptMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown match policy %q", policy)
	}
}
