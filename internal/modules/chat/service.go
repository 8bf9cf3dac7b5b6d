package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/campaign"
	"github.com/influencehub/marketplace-api/internal/modules/user"
)

type CampaignLookup interface {
	GetCampaign(ctx context.Context, id int64) (*campaign.Campaign, error)
}

type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

// Service defines chat business logic.
type Service interface {
	OpenChat(ctx context.Context, req OpenChatRequest) (*Chat, error)
	ListChatsForUser(ctx context.Context, userID int64) ([]*Chat, error)
	SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error)
	ListMessages(ctx context.Context, chatID int64) ([]*Message, error)
}

type service struct {
	repo      Repository
	campaigns CampaignLookup
	users     UserLookup
	log       *zap.Logger
}

func NewService(repo Repository, campaigns CampaignLookup, users UserLookup, log *zap.Logger) Service {
	return &service{repo: repo, campaigns: campaigns, users: users, log: log}
}

// OpenChat returns the chat for the campaign, vendor and influencer,
// creating it on first contact.
func (s *service) OpenChat(ctx context.Context, req OpenChatRequest) (*Chat, error) {
	c, err := s.campaigns.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if c.VendorID != req.VendorID {
		return nil, fmt.Errorf("%w: campaign %d does not belong to vendor %d", ErrInvalidChat, c.ID, req.VendorID)
	}
	influencer, err := s.users.GetUser(ctx, req.InfluencerID)
	if err != nil {
		return nil, err
	}
	if influencer.Role != user.RoleInfluencer {
		return nil, fmt.Errorf("%w: user %d is not an influencer", ErrInvalidChat, influencer.ID)
	}

	chat := &Chat{
		CampaignID:   req.CampaignID,
		VendorID:     req.VendorID,
		InfluencerID: req.InfluencerID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateIfAbsent(ctx, chat); err != nil {
		return nil, fmt.Errorf("open chat: %w", err)
	}
	return chat, nil
}

func (s *service) ListChatsForUser(ctx context.Context, userID int64) ([]*Chat, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	c, err := s.repo.GetByID(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(req.SenderID) {
		return nil, ErrNotParticipant
	}

	m := &Message{
		ChatID:    c.ID,
		SenderID:  req.SenderID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("add message: %w", err)
	}
	s.log.Debug("message sent", zap.Int64("chat_id", m.ChatID), zap.Int64("sender_id", m.SenderID))
	return m, nil
}

func (s *service) ListMessages(ctx context.Context, chatID int64) ([]*Message, error) {
	return s.repo.ListMessages(ctx, chatID)
}
