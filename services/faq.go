package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"faqbot/models"
)

// defaultFAQs is the built-in FAQ set used when no FAQ file is configured
var defaultFAQs = []models.FAQEntry{
	{
		Question: "What is your return policy?",
		Answer:   "We accept returns within 7 days of purchase. Items must be in original condition.",
	},
	{
		Question: "How can I track my order?",
		Answer:   "You can track your order in the 'Order History' section of your account.",
	},
	{
		Question: "Do you offer international shipping?",
		Answer:   "Yes, we ship internationally. Shipping costs and times vary by location.",
	},
	{
		Question: "What payment methods do you accept?",
		Answer:   "We accept Visa, MasterCard, PayPal, and other major payment methods.",
	},
	{
		Question: "How can I contact customer support?",
		Answer:   "You can reach us via live chat, email at support@example.com, or call +1-800-123-4567.",
	},
	{
		Question: "Is my personal information secure?",
		Answer:   "Yes, we use encryption and security best practices to protect your data.",
	},
	{
		Question: "How do I reset my password?",
		Answer:   "Go to the login page, click 'Forgot Password,' and follow the instructions.",
	},
	{
		Question: "Can I cancel my order?",
		Answer:   "Orders can be canceled within 12 hours of placement. Contact support for assistance.",
	},
}

// FAQStore is an immutable ordered list of question/answer pairs.
// It is safe for concurrent use.
type FAQStore struct {
	entries []models.FAQEntry
	context string
}

// NewFAQStore copies entries into a new store
func NewFAQStore(entries []models.FAQEntry) *FAQStore {
	copied := make([]models.FAQEntry, len(entries))
	copy(copied, entries)

	return &FAQStore{
		entries: copied,
		context: buildFAQContext(copied),
	}
}

// DefaultFAQStore returns the built-in eight-entry store
func DefaultFAQStore() *FAQStore {
	return NewFAQStore(defaultFAQs)
}

type faqFile struct {
	FAQs []models.FAQEntry `yaml:"faqs"`
}

// LoadFAQFile reads a YAML file of the form
//
//	faqs:
//	  - question: ...
//	    answer: ...
func LoadFAQFile(path string) (*FAQStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading FAQ file: %w", err)
	}

	var file faqFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing FAQ file %s: %w", path, err)
	}

	if len(file.FAQs) == 0 {
		return nil, fmt.Errorf("FAQ file %s contains no entries", path)
	}
	for i, entry := range file.FAQs {
		if strings.TrimSpace(entry.Question) == "" || strings.TrimSpace(entry.Answer) == "" {
			return nil, fmt.Errorf("FAQ file %s: entry %d needs both question and answer", path, i+1)
		}
	}

	return NewFAQStore(file.FAQs), nil
}

// Entries returns a copy of the stored pairs in order
func (s *FAQStore) Entries() []models.FAQEntry {
	out := make([]models.FAQEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *FAQStore) Len() int {
	return len(s.entries)
}

// Context returns all pairs rendered for inclusion in a prompt
func (s *FAQStore) Context() string {
	return s.context
}

func buildFAQContext(entries []models.FAQEntry) string {
	var b strings.Builder
	b.WriteString("Here are some frequently asked questions:\n")
	for _, faq := range entries {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", faq.Question, faq.Answer)
	}
	return b.String()
}
