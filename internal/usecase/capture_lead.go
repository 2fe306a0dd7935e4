package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/queue"
	"github.com/summitview/outreach/internal/templates"
)

type CaptureLeadOutput struct {
	Success bool   `json:"success"`
	LeadID  string `json:"leadId"`
}

// CaptureLeadUseCase handles public lead capture: validate, persist, then
// best-effort welcome messages and drip enrollment. Once the lead row is
// stored the submitter always gets a success; messaging failures are an
// internal concern.
type CaptureLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Logs     entity.MessageLogRepositoryInterface
	Drip     *DripEngine
	SMS      SMSSenderInterface
	Email    EmailSenderInterface
	Renderer *templates.Renderer
	Events   EventPublisherInterface // optional
	Log      *zap.SugaredLogger
}

func NewCaptureLeadUseCase(
	leads entity.LeadRepositoryInterface,
	logs entity.MessageLogRepositoryInterface,
	drip *DripEngine,
	sms SMSSenderInterface,
	email EmailSenderInterface,
	renderer *templates.Renderer,
	events EventPublisherInterface,
	log *zap.SugaredLogger,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Leads:    leads,
		Logs:     logs,
		Drip:     drip,
		SMS:      sms,
		Email:    email,
		Renderer: renderer,
		Events:   events,
		Log:      log,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input LeadSubmission) (*CaptureLeadOutput, error) {
	if errs := ValidateLeadSubmission(&input); len(errs) > 0 {
		return nil, errs
	}

	lead := entity.NewLead(
		input.Name,
		input.Email,
		input.Phone,
		input.Message,
		input.ProjectInterest,
		input.Source,
		*input.SMSConsent,
		*input.EmailConsent,
	)

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to store lead: %w", err)
	}

	uc.sendWelcomeMessages(ctx, lead)

	if err := uc.Drip.Enroll(ctx, lead); err != nil {
		uc.Log.Errorw("drip enrollment failed after capture", "lead_id", lead.ID, "error", err)
	}

	return &CaptureLeadOutput{Success: true, LeadID: lead.ID}, nil
}

// sendWelcomeMessages runs the welcome batch fire-and-forget style: each
// side effect is attempted, failures are logged, nothing propagates to the
// capture response.
func (uc *CaptureLeadUseCase) sendWelcomeMessages(ctx context.Context, lead *entity.Lead) {
	if lead.Phone != "" && lead.SMSConsent {
		body := uc.Renderer.WelcomeSMS(lead)
		providerID, _, err := uc.SMS.Send(lead.Phone, body)
		uc.logWelcome(ctx, lead, entity.ChannelSMS, lead.Phone, body, providerID, err)
	}

	if lead.Email != "" && lead.EmailConsent {
		content := uc.Renderer.WelcomeEmail(lead)
		providerID, _, err := uc.Email.Send(lead.Email, content.Subject, content.HTML)
		uc.logWelcome(ctx, lead, entity.ChannelEmail, lead.Email, content.Subject, providerID, err)
	}
}

func (uc *CaptureLeadUseCase) logWelcome(ctx context.Context, lead *entity.Lead, channel, recipient, body, providerID string, sendErr error) {
	status := entity.MessageSent
	if sendErr != nil {
		status = entity.MessageFailed
		uc.Log.Warnw("welcome message failed", "lead_id", lead.ID, "channel", channel, "error", sendErr)
	}

	if err := uc.Logs.Create(ctx, entity.NewMessageLog(lead.ID, channel, recipient, body, status, providerID)); err != nil {
		uc.Log.Warnw("failed to write message log", "lead_id", lead.ID, "channel", channel, "error", err)
	}

	if sendErr == nil && uc.Events != nil {
		event := queue.MessageSentEvent{
			LeadID:     lead.ID,
			Channel:    channel,
			Recipient:  recipient,
			ProviderID: providerID,
			Origin:     "WELCOME",
			SentAt:     time.Now(),
		}
		if err := uc.Events.PublishMessageSent(ctx, event); err != nil {
			uc.Log.Warnw("failed to publish message event", "lead_id", lead.ID, "error", err)
		}
	}
}
