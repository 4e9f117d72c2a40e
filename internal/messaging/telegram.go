package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/masskeeper/masskeeper/internal/models"
)

// Opts holds configuration for Telegram service construction.
type Opts struct {
	// Token is the bot token from BotFather.
	Token string
	// PollTimeout is the long-polling timeout in seconds.
	PollTimeout int
	// BufferSize is the capacity of the inbound message channel.
	BufferSize int
}

// Option configures Telegram service construction.
type Option func(*Opts)

// WithToken sets the bot token.
func WithToken(token string) Option {
	return func(o *Opts) { o.Token = token }
}

// WithPollTimeout sets the long-polling timeout in seconds.
func WithPollTimeout(seconds int) Option {
	return func(o *Opts) { o.PollTimeout = seconds }
}

// WithBufferSize sets the inbound channel capacity.
func WithBufferSize(n int) Option {
	return func(o *Opts) { o.BufferSize = n }
}

// TelegramService receives updates via long polling and delivers
// replies through the Telegram Bot API.
type TelegramService struct {
	bot         *tgbotapi.BotAPI
	messages    chan models.Message
	pollTimeout int
}

var _ Service = (*TelegramService)(nil)

// NewTelegramService creates and authorizes a Telegram transport.
func NewTelegramService(options ...Option) (*TelegramService, error) {
	opts := Opts{PollTimeout: 60, BufferSize: 100}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.Token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	slog.Info("TelegramService authorized", "username", bot.Self.UserName)
	return &TelegramService{
		bot:         bot,
		messages:    make(chan models.Message, opts.BufferSize),
		pollTimeout: opts.PollTimeout,
	}, nil
}

// Start begins long polling. The messages channel closes when polling
// stops or the context is cancelled.
func (s *TelegramService) Start(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = s.pollTimeout
	updates := s.bot.GetUpdatesChan(cfg)

	go func() {
		defer close(s.messages)
		for {
			select {
			case <-ctx.Done():
				slog.Debug("TelegramService context cancelled, stopping pump")
				return
			case update, ok := <-updates:
				if !ok {
					slog.Debug("TelegramService updates channel closed")
					return
				}
				s.handleUpdate(ctx, update)
			}
		}
	}()
	slog.Info("TelegramService started", "pollTimeout", s.pollTimeout)
	return nil
}

// Stop ends long polling; the pump goroutine then drains out and closes
// the messages channel.
func (s *TelegramService) Stop() error {
	s.bot.StopReceivingUpdates()
	slog.Info("TelegramService stopped")
	return nil
}

// Messages returns the channel of normalized inbound messages.
func (s *TelegramService) Messages() <-chan models.Message {
	return s.messages
}

func (s *TelegramService) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	in := update.Message
	if in == nil {
		return
	}
	msg := models.Message{
		UserID:    in.Chat.ID,
		MessageID: in.MessageID,
		Text:      in.Text,
	}
	if in.Document != nil {
		msg.Attachment = &models.Attachment{
			Ref:  in.Document.FileID,
			Name: in.Document.FileName,
			Size: int64(in.Document.FileSize),
		}
	}
	slog.Debug("TelegramService inbound message", "userID", msg.UserID, "hasAttachment", msg.HasAttachment())

	select {
	case s.messages <- msg:
	case <-ctx.Done():
	case <-time.After(DefaultChannelTimeout):
		slog.Warn("TelegramService messages channel blocked, dropping message", "userID", msg.UserID, "timeout", DefaultChannelTimeout)
	}
}

// SendReply delivers one reply, picking photo, document or plain text
// delivery from the reply's artifact fields.
func (s *TelegramService) SendReply(ctx context.Context, userID int64, reply models.Reply, replyToID int) error {
	var chattable tgbotapi.Chattable
	switch {
	case reply.PhotoPath != "":
		photo := tgbotapi.NewPhoto(userID, tgbotapi.FilePath(reply.PhotoPath))
		photo.Caption = reply.Text
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyToMessageID = replyToID
		photo.ReplyMarkup = quickReplyMarkup(reply.QuickReplies)
		chattable = photo
	case reply.DocumentPath != "":
		document := tgbotapi.NewDocument(userID, tgbotapi.FilePath(reply.DocumentPath))
		document.Caption = reply.Text
		document.ParseMode = tgbotapi.ModeHTML
		document.ReplyToMessageID = replyToID
		document.ReplyMarkup = quickReplyMarkup(reply.QuickReplies)
		chattable = document
	default:
		msg := tgbotapi.NewMessage(userID, reply.Text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyToMessageID = replyToID
		msg.DisableWebPagePreview = true
		msg.ReplyMarkup = quickReplyMarkup(reply.QuickReplies)
		chattable = msg
	}

	if _, err := s.bot.Send(chattable); err != nil {
		return fmt.Errorf("failed to send telegram reply to %d: %w", userID, err)
	}
	return nil
}

// AttachmentURL resolves a Telegram file ID to its download URL.
func (s *TelegramService) AttachmentURL(ref string) (string, error) {
	file, err := s.bot.GetFile(tgbotapi.FileConfig{FileID: ref})
	if err != nil {
		return "", fmt.Errorf("failed to resolve telegram file %s: %w", ref, err)
	}
	return file.Link(s.bot.Token), nil
}

// quickReplyMarkup builds a one-time keyboard row, or nil for replies
// without suggestions.
func quickReplyMarkup(quickReplies []string) interface{} {
	if len(quickReplies) == 0 {
		return nil
	}
	buttons := make([]tgbotapi.KeyboardButton, len(quickReplies))
	for i, text := range quickReplies {
		buttons[i] = tgbotapi.NewKeyboardButton(text)
	}
	markup := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(buttons...))
	markup.OneTimeKeyboard = true
	return markup
}
