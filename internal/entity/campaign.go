package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// DripMessage is one step of a campaign. DelayDays counts from the
// previous step, or from enrollment for step 0.
type DripMessage struct {
	DelayDays int    `json:"delay_days"`
	Subject   string `json:"subject,omitempty"` // email campaigns only
	Body      string `json:"body"`
}

// DripCampaign is an ordered, single-channel message sequence.
// Steps are referenced, not snapshotted: editing a campaign changes
// future sends for every enrollment still in progress.
type DripCampaign struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Channel   string        `json:"channel"` // sms or email
	Messages  []DripMessage `json:"messages"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewDripCampaign(name, channel string, messages []DripMessage) (*DripCampaign, error) {
	c := &DripCampaign{
		ID:        uuid.New().String(),
		Name:      name,
		Channel:   channel,
		Messages:  messages,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if c.Messages == nil {
		c.Messages = []DripMessage{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *DripCampaign) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Channel != ChannelSMS && c.Channel != ChannelEmail {
		return errors.New("channel must be sms or email")
	}
	return nil
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *DripCampaign) error
	List(ctx context.Context) ([]*DripCampaign, error)
	ListActive(ctx context.Context) ([]*DripCampaign, error)
	FindByID(ctx context.Context, id string) (*DripCampaign, error)
	Update(ctx context.Context, c *DripCampaign) error
	Delete(ctx context.Context, id string) error
}
