package campaign

import (
	"errors"
	"time"
)

// Campaign is a vendor's call for influencers to promote a product.
type Campaign struct {
	ID          int64     `json:"id"`
	VendorID    int64     `json:"vendor_id"`
	ProductName string    `json:"product_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCampaignRequest is the payload for launching a campaign.
type CreateCampaignRequest struct {
	VendorID    int64  `json:"vendor_id"`
	ProductName string `json:"product_name"`
	Description string `json:"description"`
}

var (
	ErrNotFound        = errors.New("campaign not found")
	ErrInvalidCampaign = errors.New("invalid campaign")
)
