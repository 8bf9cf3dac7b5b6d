package chat

import (
	"errors"
	"time"
)

// Chat is a conversation between a vendor and an influencer about one campaign.
type Chat struct {
	ID           int64     `json:"id"`
	CampaignID   int64     `json:"campaign_id"`
	VendorID     int64     `json:"vendor_id"`
	InfluencerID int64     `json:"influencer_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasParticipant reports whether userID is one of the two chat members.
func (c *Chat) HasParticipant(userID int64) bool {
	return userID == c.VendorID || userID == c.InfluencerID
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	SenderID  int64     `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type OpenChatRequest struct {
	CampaignID   int64 `json:"campaign_id"`
	VendorID     int64 `json:"vendor_id"`
	InfluencerID int64 `json:"influencer_id"`
}

type SendMessageRequest struct {
	ChatID   int64  `json:"chat_id"`
	SenderID int64  `json:"sender_id"`
	Text     string `json:"text"`
}

var (
	ErrNotFound       = errors.New("chat not found")
	ErrInvalidChat    = errors.New("invalid chat")
	ErrEmptyMessage   = errors.New("message text is required")
	ErrNotParticipant = errors.New("sender is not part of this chat")
)
