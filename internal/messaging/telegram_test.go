package messaging

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/masskeeper/masskeeper/internal/models"
)

func TestHandleUpdateNormalizesMessage(t *testing.T) {
	s := &TelegramService{messages: make(chan models.Message, 1)}

	s.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 42,
			Chat:      &tgbotapi.Chat{ID: 7},
			Text:      "/plot",
		},
	})

	msg := <-s.messages
	if msg.UserID != 7 || msg.MessageID != 42 || msg.Text != "/plot" {
		t.Errorf("normalized message = %+v", msg)
	}
	if msg.HasAttachment() {
		t.Error("text message should carry no attachment")
	}
}

func TestHandleUpdateDocument(t *testing.T) {
	s := &TelegramService{messages: make(chan models.Message, 1)}

	s.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 43,
			Chat:      &tgbotapi.Chat{ID: 7},
			Document:  &tgbotapi.Document{FileID: "abc123", FileName: "data.csv", FileSize: 512},
		},
	})

	msg := <-s.messages
	if !msg.HasAttachment() {
		t.Fatal("document message should carry an attachment")
	}
	if msg.Attachment.Ref != "abc123" || msg.Attachment.Size != 512 || msg.Attachment.Name != "data.csv" {
		t.Errorf("attachment = %+v", msg.Attachment)
	}
}

func TestHandleUpdateIgnoresNonMessageUpdates(t *testing.T) {
	s := &TelegramService{messages: make(chan models.Message, 1)}
	s.handleUpdate(context.Background(), tgbotapi.Update{})
	select {
	case msg := <-s.messages:
		t.Errorf("unexpected message emitted: %+v", msg)
	default:
	}
}

func TestQuickReplyMarkup(t *testing.T) {
	if got := quickReplyMarkup(nil); got != nil {
		t.Errorf("quickReplyMarkup(nil) = %v, want nil", got)
	}

	markup, ok := quickReplyMarkup([]string{"A", "B"}).(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatal("quickReplyMarkup did not return a ReplyKeyboardMarkup")
	}
	if !markup.OneTimeKeyboard {
		t.Error("keyboard should be one-time")
	}
	if len(markup.Keyboard) != 1 || len(markup.Keyboard[0]) != 2 {
		t.Errorf("keyboard layout = %+v", markup.Keyboard)
	}
	if markup.Keyboard[0][0].Text != "A" || markup.Keyboard[0][1].Text != "B" {
		t.Errorf("button texts = %+v", markup.Keyboard[0])
	}
}
