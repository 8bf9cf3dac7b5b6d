package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateIfAbsent(ctx context.Context, c *Chat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chats (campaign_id, vendor_id, influencer_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, vendor_id, influencer_id) DO NOTHING`,
		c.CampaignID, c.VendorID, c.InfluencerID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, vendor_id, influencer_id, created_at
		FROM chats WHERE campaign_id = $1 AND vendor_id = $2 AND influencer_id = $3`,
		c.CampaignID, c.VendorID, c.InfluencerID).
		Scan(&c.ID, &c.CampaignID, &c.VendorID, &c.InfluencerID, &c.CreatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Chat, error) {
	c := &Chat{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, vendor_id, influencer_id, created_at
		FROM chats WHERE id = $1`, id).
		Scan(&c.ID, &c.CampaignID, &c.VendorID, &c.InfluencerID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListForUser(ctx context.Context, userID int64) ([]*Chat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, vendor_id, influencer_id, created_at
		FROM chats WHERE vendor_id = $1 OR influencer_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	chats := []*Chat{}
	for rows.Next() {
		c := &Chat{}
		if err := rows.Scan(&c.ID, &c.CampaignID, &c.VendorID, &c.InfluencerID, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (r *postgresRepo) AddMessage(ctx context.Context, m *Message) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO messages (chat_id, sender_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		m.ChatID, m.SenderID, m.Text, m.CreatedAt).Scan(&m.ID)
}

func (r *postgresRepo) ListMessages(ctx context.Context, chatID int64) ([]*Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, sender_id, text, created_at
		FROM messages WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	messages := []*Message{}
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
