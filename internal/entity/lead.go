package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// Pipeline stages. Deployments may add custom stages on top of these,
// so Status stays a plain string.
const (
	StatusNew          = "new"
	StatusContacted    = "contacted"
	StatusConverted    = "converted"
	StatusUnsubscribed = "unsubscribed"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Message         string    `json:"message,omitempty"`
	ProjectInterest string    `json:"project_interest,omitempty"`
	SMSConsent      bool      `json:"sms_consent"`
	EmailConsent    bool      `json:"email_consent"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	CampaignIDs     []string  `json:"campaign_ids"`
	PipelineIDs     []string  `json:"pipeline_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewLead builds a lead from an already validated submission.
func NewLead(name, email, phone, message, projectInterest, source string, smsConsent, emailConsent bool) *Lead {
	if source == "" {
		source = "website"
	}
	now := time.Now()
	return &Lead{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           email,
		Phone:           phone,
		Message:         message,
		ProjectInterest: projectInterest,
		SMSConsent:      smsConsent,
		EmailConsent:    emailConsent,
		Status:          StatusNew,
		Source:          source,
		CampaignIDs:     []string{},
		PipelineIDs:     []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasConsent reports whether the lead may currently be contacted on channel.
func (l *Lead) HasConsent(channel string) bool {
	switch channel {
	case ChannelSMS:
		return l.SMSConsent
	case ChannelEmail:
		return l.EmailConsent
	}
	return false
}

// LeadPatch is a partial update. Nil fields are left untouched.
type LeadPatch struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Message         *string  `json:"message,omitempty"`
	ProjectInterest *string  `json:"project_interest,omitempty"`
	SMSConsent      *bool    `json:"sms_consent,omitempty"`
	EmailConsent    *bool    `json:"email_consent,omitempty"`
	Status          *string  `json:"status,omitempty"`
	Source          *string  `json:"source,omitempty"`
	CampaignIDs     []string `json:"campaign_ids,omitempty"`
	PipelineIDs     []string `json:"pipeline_ids,omitempty"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	Update(ctx context.Context, id string, patch LeadPatch) error
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status string) error

	// Unsubscribe revokes consent for one channel. Consent is never
	// re-enabled through this path.
	Unsubscribe(ctx context.Context, id, channel string) error

	AssignCampaign(ctx context.Context, leadID, campaignID string) error
}
