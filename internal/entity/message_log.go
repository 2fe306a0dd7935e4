package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	MessageSent   = "sent"
	MessageFailed = "failed"
)

// MessageLog records one outbound send attempt. It backs the conversation
// history view; the drip engine never reads it back.
type MessageLog struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	Channel    string    `json:"channel"`
	Recipient  string    `json:"recipient"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	ProviderID string    `json:"provider_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewMessageLog(leadID, channel, recipient, body, status, providerID string) *MessageLog {
	return &MessageLog{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		Channel:    channel,
		Recipient:  recipient,
		Body:       body,
		Status:     status,
		ProviderID: providerID,
		CreatedAt:  time.Now(),
	}
}

type MessageLogRepositoryInterface interface {
	Create(ctx context.Context, m *MessageLog) error
	ListByLead(ctx context.Context, leadID string) ([]*MessageLog, error)
}
