package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageSentEvent is published once per successful outbound message so
// dashboards and conversation views can consume sends without polling.
type MessageSentEvent struct {
	LeadID     string    `json:"lead_id"`
	CampaignID string    `json:"campaign_id,omitempty"` // empty for welcome messages
	Channel    string    `json:"channel"`
	Recipient  string    `json:"recipient"`
	ProviderID string    `json:"provider_id,omitempty"`
	Step       int       `json:"step"`
	Origin     string    `json:"origin"` // WELCOME or DRIP
	SentAt     time.Time `json:"sent_at"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

func (p *Producer) PublishMessageSent(ctx context.Context, event MessageSentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message event: %w", err)
	}
	return nil
}
