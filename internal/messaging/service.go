// Package messaging abstracts the chat transport behind a pluggable
// service so the conversation flow never touches transport types.
package messaging

import (
	"context"
	"time"

	"github.com/masskeeper/masskeeper/internal/models"
)

// DefaultChannelTimeout bounds non-blocking channel emits; messages that
// cannot be handed over within it are dropped with a warning.
const DefaultChannelTimeout = 1 * time.Second

// Service is a pluggable message transport. Inbound messages arrive
// normalized on Messages(); outbound replies go through SendReply.
type Service interface {
	// Start begins background processing (e.g. long polling).
	Start(ctx context.Context) error

	// Stop stops background processing and closes the Messages channel.
	Stop() error

	// Messages returns the channel of normalized inbound messages.
	Messages() <-chan models.Message

	// SendReply delivers one reply to a user. replyToID references the
	// inbound message being answered; 0 sends without a reference.
	SendReply(ctx context.Context, userID int64, reply models.Reply, replyToID int) error

	// AttachmentURL resolves a transport-opaque attachment reference to
	// a fetchable URL.
	AttachmentURL(ref string) (string, error)
}
