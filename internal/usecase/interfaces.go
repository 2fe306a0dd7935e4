package usecase

import (
	"context"

	"github.com/summitview/outreach/internal/infra/queue"
)

// SMSSenderInterface submits exactly one message to the SMS gateway and
// returns the provider-assigned id and status. Provider errors come back
// verbatim; there is no retry here.
type SMSSenderInterface interface {
	Send(to, body string) (providerID string, status string, err error)
}

type EmailSenderInterface interface {
	Send(to, subject, html string) (providerID string, status string, err error)
}

// EventPublisherInterface announces successful sends to downstream
// consumers. Publishing is best effort: callers log failures and move on.
type EventPublisherInterface interface {
	PublishMessageSent(ctx context.Context, event queue.MessageSentEvent) error
}
