package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"faqbot/models"
)

const discordMessageLimit = 2000

// DiscordService answers prefixed Discord messages through the chatbot
type DiscordService struct {
	session       *discordgo.Session
	chatbot       *Chatbot
	commandPrefix string
	enabled       bool
	startTime     time.Time
	logger        *slog.Logger
}

// NewDiscordService creates a new Discord service instance. A disabled config
// yields a service whose Start is a no-op.
func NewDiscordService(chatbot *Chatbot, cfg models.DiscordConfig, logger *slog.Logger) (*DiscordService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	prefix := cfg.CommandPrefix
	if prefix == "" {
		prefix = "!ask "
	}

	service := &DiscordService{
		chatbot:       chatbot,
		commandPrefix: prefix,
		startTime:     time.Now(),
		logger:        logger,
	}

	if !cfg.Enabled {
		return service, nil
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	session.AddHandler(func(s *discordgo.Session, event *discordgo.Ready) {
		logger.Info("discord bot online", "user", event.User.Username, "guilds", len(event.Guilds))
	})
	session.AddHandler(service.messageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	service.session = session
	service.enabled = true
	return service, nil
}

// Start opens the gateway connection
func (d *DiscordService) Start() error {
	if !d.enabled {
		return nil
	}

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}

	d.logger.Info("discord bot started", "prefix", d.commandPrefix)
	return nil
}

// Stop closes the Discord bot connection
func (d *DiscordService) Stop() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// messageCreate handles incoming Discord messages
func (d *DiscordService) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	reply, ok := d.replyFor(context.Background(), m.Content)
	if !ok {
		return
	}

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		d.logger.Debug("typing indicator failed", "error", err)
	}

	for _, chunk := range splitMessage(reply, discordMessageLimit-100) {
		if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
			d.logger.Error("error sending Discord message", "channel", m.ChannelID, "error", err)
			return
		}
	}
}

// replyFor returns the text to post for a channel message, or false when the
// message is not addressed to the bot.
func (d *DiscordService) replyFor(ctx context.Context, content string) (string, bool) {
	if !strings.HasPrefix(content, d.commandPrefix) {
		return "", false
	}

	reply, err := d.chatbot.ProcessMessage(ctx, content[len(d.commandPrefix):])
	switch {
	case errors.Is(err, ErrEmptyInput):
		return fmt.Sprintf("Please provide a question after `%s`", strings.TrimSpace(d.commandPrefix)), true
	case err != nil:
		return "Sorry, something went wrong while answering. " + FallbackMessage, true
	}

	return reply.Text, true
}

// splitMessage splits a message into chunks of at most maxLength characters,
// preferring word boundaries. Chunks always end on a rune boundary.
func splitMessage(message string, maxLength int) []string {
	runes := []rune(message)
	if len(runes) <= maxLength {
		return []string{message}
	}

	var chunks []string
	for len(runes) > maxLength {
		splitIndex := maxLength
		for i := maxLength - 1; i > maxLength/2; i-- {
			if runes[i] == ' ' {
				splitIndex = i
				break
			}
		}

		chunks = append(chunks, string(runes[:splitIndex]))
		runes = runes[splitIndex:]
		if len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}

// IsEnabled returns whether the Discord service is enabled
func (d *DiscordService) IsEnabled() bool {
	return d.enabled
}

// GetStatus returns the current status of the Discord service
func (d *DiscordService) GetStatus() *models.DiscordStatus {
	status := &models.DiscordStatus{
		Enabled:       d.enabled,
		CommandPrefix: d.commandPrefix,
	}

	if !d.enabled {
		status.State = "disabled"
		return status
	}

	status.Uptime = time.Since(d.startTime).Round(time.Second).String()
	if d.session != nil && d.session.State != nil && d.session.State.User != nil {
		status.State = "connected"
		status.User = &models.DiscordUser{
			ID:       d.session.State.User.ID,
			Username: d.session.State.User.Username,
		}
		status.Guilds = len(d.session.State.Guilds)
	} else {
		status.State = "initialized_not_started"
	}

	return status
}
