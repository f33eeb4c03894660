package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqbot/models"
)

func newTestDiscordService(t *testing.T, gen AnswerGenerator, store EscalationStore) *DiscordService {
	t.Helper()
	d, err := NewDiscordService(newTestChatbot(gen, store), models.DiscordConfig{}, discardLogger())
	require.NoError(t, err)
	return d
}

func TestDiscordService_ReplyFor(t *testing.T) {
	tests := []struct {
		name    string
		content string
		gen     *mockGenerator
		want    string
		wantOK  bool
	}{
		{
			name:    "not addressed",
			content: "what is your return policy?",
			gen:     answering("unused"),
			wantOK:  false,
		},
		{
			name:    "faq hit",
			content: "!ask return policy",
			gen:     answering("unused"),
			want:    "We accept returns within 7 days of purchase. Items must be in original condition.",
			wantOK:  true,
		},
		{
			name:    "generated",
			content: "!ask do you sell bikes?",
			gen:     answering("No, we only sell apparel."),
			want:    "No, we only sell apparel.",
			wantOK:  true,
		},
		{
			name:    "escalated",
			content: "!ask banana",
			gen:     answering("I'm not sure."),
			want:    FallbackMessage,
			wantOK:  true,
		},
		{
			name:    "empty question",
			content: "!ask    ",
			gen:     answering("unused"),
			want:    "Please provide a question after `!ask`",
			wantOK:  true,
		},
		{
			name:    "provider failure",
			content: "!ask banana",
			gen: &mockGenerator{GenerateFunc: func(context.Context, string, string) (string, error) {
				return "", providerError("mock", errors.New("boom"))
			}},
			want:   "Sorry, something went wrong while answering. " + FallbackMessage,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDiscordService(t, tt.gen, &memoryStore{})

			got, ok := d.replyFor(context.Background(), tt.content)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscordService_Disabled(t *testing.T) {
	d := newTestDiscordService(t, answering("x"), &memoryStore{})

	assert.False(t, d.IsEnabled())
	assert.NoError(t, d.Start())
	assert.NoError(t, d.Stop())

	status := d.GetStatus()
	assert.Equal(t, "disabled", status.State)
	assert.Equal(t, "!ask ", status.CommandPrefix)
	assert.Nil(t, status.User)
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	words := strings.Repeat("word ", 30)
	chunks := splitMessage(words, 40)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 40)
		assert.False(t, strings.HasPrefix(c, " "))
	}
	assert.Equal(t, strings.Fields(words), strings.Fields(strings.Join(chunks, " ")))

	unbroken := strings.Repeat("x", 25)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), "xxxxx"}, splitMessage(unbroken, 10))
}

func TestSplitMessage_MultibyteWithoutSpaces(t *testing.T) {
	message := strings.Repeat("€", 3000)

	chunks := splitMessage(message, 1900)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1900, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 1100, utf8.RuneCountInString(chunks[1]))
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c))
	}
	assert.Equal(t, message, strings.Join(chunks, ""))
}

func TestSplitMessage_CountsCharactersNotBytes(t *testing.T) {
	// 1500 characters, 4500 bytes: fits in one Discord message.
	message := strings.Repeat("日", 1500)
	assert.Equal(t, []string{message}, splitMessage(message, 1900))

	words := strings.Repeat("héllo wörld ", 20)
	for _, c := range splitMessage(words, 25) {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 25)
	}
}
