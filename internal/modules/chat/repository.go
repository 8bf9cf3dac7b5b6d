package chat

import "context"

// Repository defines chat and message storage.
type Repository interface {
	// CreateIfAbsent inserts the chat unless one already exists for the
	// same campaign, vendor and influencer; c is filled from the stored row.
	CreateIfAbsent(ctx context.Context, c *Chat) error
	GetByID(ctx context.Context, id int64) (*Chat, error)
	ListForUser(ctx context.Context, userID int64) ([]*Chat, error)

	AddMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, chatID int64) ([]*Message, error)
}
