package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Enrollment states. Active is the only non-terminal one: a row leaves it
// by completing the sequence or by being suppressed, never the other way.
const (
	DripActive       = "active"
	DripCompleted    = "completed"
	DripPaused       = "paused"
	DripUnsubscribed = "unsubscribed"
)

// LeadDripState is one (lead, campaign) enrollment.
type LeadDripState struct {
	ID          string     `json:"id"`
	LeadID      string     `json:"lead_id"`
	CampaignID  string     `json:"campaign_id"`
	CurrentStep int        `json:"current_step"`
	NextSendAt  *time.Time `json:"next_send_at,omitempty"`
	Status      string     `json:"status"`
	LastSentAt  *time.Time `json:"last_sent_at,omitempty"`
}

func NewLeadDripState(leadID, campaignID string, nextSendAt time.Time) *LeadDripState {
	return &LeadDripState{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		CampaignID:  campaignID,
		CurrentStep: 0,
		NextSendAt:  &nextSendAt,
		Status:      DripActive,
	}
}

// DueEnrollment is a due state row joined with its lead and campaign.
// Lead is nil when the joined lead no longer exists.
type DueEnrollment struct {
	State    LeadDripState
	Lead     *Lead
	Campaign DripCampaign
}

type DripStateRepositoryInterface interface {
	// Create inserts the enrollment. A second insert for the same
	// (lead, campaign) pair while one is still active is a silent no-op.
	Create(ctx context.Context, state *LeadDripState) error

	// ListDue returns active rows with next_send_at <= now, in storage
	// return order.
	ListDue(ctx context.Context, now time.Time) ([]DueEnrollment, error)

	Advance(ctx context.Context, id string, step int, nextSendAt, lastSentAt time.Time) error
	Complete(ctx context.Context, id string, step int) error

	// PauseForLead marks every active enrollment of the lead on the given
	// channel as unsubscribed. The status predicate makes it idempotent.
	PauseForLead(ctx context.Context, leadID, channel string) error
}
