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

// ProcessResult aggregates one ProcessDue pass for observability.
type ProcessResult struct {
	Sent   int `json:"sent"`
	Errors int `json:"errors"`
}

// DripEngine owns campaign enrollment and the scheduled advance-and-send
// pass. It runs only when the cron endpoint triggers it; there is no
// background goroutine and no concurrency within a pass.
type DripEngine struct {
	Campaigns entity.CampaignRepositoryInterface
	States    entity.DripStateRepositoryInterface
	Leads     entity.LeadRepositoryInterface
	Logs      entity.MessageLogRepositoryInterface
	SMS       SMSSenderInterface
	Email     EmailSenderInterface
	Renderer  *templates.Renderer
	Events    EventPublisherInterface // optional
	Log       *zap.SugaredLogger
}

func NewDripEngine(
	campaigns entity.CampaignRepositoryInterface,
	states entity.DripStateRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	logs entity.MessageLogRepositoryInterface,
	sms SMSSenderInterface,
	email EmailSenderInterface,
	renderer *templates.Renderer,
	events EventPublisherInterface,
	log *zap.SugaredLogger,
) *DripEngine {
	return &DripEngine{
		Campaigns: campaigns,
		States:    states,
		Leads:     leads,
		Logs:      logs,
		SMS:       sms,
		Email:     email,
		Renderer:  renderer,
		Events:    events,
		Log:       log,
	}
}

func (e *DripEngine) ListActiveCampaigns(ctx context.Context) ([]*entity.DripCampaign, error) {
	return e.Campaigns.ListActive(ctx)
}

// Enroll creates an enrollment row for every active campaign whose channel
// the lead has consented to. Each row starts at step 0 with the first
// step's delay applied from now. Per-campaign failures are logged and do
// not block the remaining campaigns.
func (e *DripEngine) Enroll(ctx context.Context, lead *entity.Lead) error {
	campaigns, err := e.Campaigns.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active campaigns: %w", err)
	}

	now := time.Now()
	for _, c := range campaigns {
		if !lead.HasConsent(c.Channel) {
			continue
		}

		delay := 0
		if len(c.Messages) > 0 {
			delay = c.Messages[0].DelayDays
		}

		state := entity.NewLeadDripState(lead.ID, c.ID, now.AddDate(0, 0, delay))
		if err := e.States.Create(ctx, state); err != nil {
			e.Log.Errorw("drip enrollment failed", "lead_id", lead.ID, "campaign_id", c.ID, "error", err)
			continue
		}

		if err := e.Leads.AssignCampaign(ctx, lead.ID, c.ID); err != nil {
			e.Log.Warnw("failed to record campaign assignment on lead", "lead_id", lead.ID, "campaign_id", c.ID, "error", err)
		}
	}
	return nil
}

// ProcessDue is the cron entry point. It fetches every active enrollment
// whose next_send_at has passed and handles rows one at a time. A row
// failure counts an error and leaves the row due, so the next run retries
// it; only the initial fetch can fail the whole pass.
func (e *DripEngine) ProcessDue(ctx context.Context, now time.Time) (ProcessResult, error) {
	var result ProcessResult

	due, err := e.States.ListDue(ctx, now)
	if err != nil {
		return result, fmt.Errorf("failed to fetch due enrollments: %w", err)
	}

	for _, row := range due {
		sent, err := e.processRow(ctx, row, now)
		if err != nil {
			result.Errors++
			e.Log.Errorw("drip row failed",
				"state_id", row.State.ID,
				"lead_id", row.State.LeadID,
				"campaign_id", row.State.CampaignID,
				"step", row.State.CurrentStep,
				"error", err,
			)
			continue
		}
		if sent {
			result.Sent++
		}
	}

	return result, nil
}

// processRow handles a single due enrollment. It reports whether a message
// went out; a nil error means the row's state was advanced (or completed).
func (e *DripEngine) processRow(ctx context.Context, row entity.DueEnrollment, now time.Time) (bool, error) {
	state := row.State
	campaign := row.Campaign

	if row.Lead == nil {
		return false, fmt.Errorf("lead %s no longer exists", state.LeadID)
	}
	lead := row.Lead

	// A campaign with no content completes immediately with nothing sent.
	if len(campaign.Messages) == 0 {
		if err := e.States.Complete(ctx, state.ID, state.CurrentStep); err != nil {
			return false, fmt.Errorf("failed to complete empty campaign enrollment: %w", err)
		}
		return false, nil
	}

	if state.CurrentStep >= len(campaign.Messages) {
		// Campaign was edited shorter after this row advanced past the end.
		// Left untouched: the row stays due and surfaces on every run until
		// the campaign grows back or the row is suppressed.
		return false, fmt.Errorf("campaign %s has no step %d", campaign.ID, state.CurrentStep)
	}

	msg := campaign.Messages[state.CurrentStep]
	sent := false

	// Consent is checked per send, not only at enrollment. A revoked
	// channel skips the send but still advances the row.
	if lead.HasConsent(campaign.Channel) {
		var err error
		switch campaign.Channel {
		case entity.ChannelSMS:
			err = e.sendSMS(ctx, lead, campaign, state.CurrentStep, msg)
		case entity.ChannelEmail:
			err = e.sendEmail(ctx, lead, campaign, state.CurrentStep, msg)
		default:
			return false, fmt.Errorf("campaign %s has unknown channel %q", campaign.ID, campaign.Channel)
		}
		if err != nil {
			// No state mutation: the row stays due and retries next run.
			return false, err
		}
		sent = true
	}

	nextStep := state.CurrentStep + 1
	if nextStep >= len(campaign.Messages) {
		if err := e.States.Complete(ctx, state.ID, nextStep); err != nil {
			return sent, fmt.Errorf("failed to mark enrollment completed: %w", err)
		}
		return sent, nil
	}

	delay := campaign.Messages[nextStep].DelayDays
	if delay <= 0 {
		delay = 1
	}
	if err := e.States.Advance(ctx, state.ID, nextStep, now.AddDate(0, 0, delay), now); err != nil {
		return sent, fmt.Errorf("failed to advance enrollment: %w", err)
	}
	return sent, nil
}

func (e *DripEngine) sendSMS(ctx context.Context, lead *entity.Lead, campaign entity.DripCampaign, step int, msg entity.DripMessage) error {
	body := msg.Body
	if body == "" {
		body = e.Renderer.DripSMS(step, lead)
	}

	providerID, _, err := e.SMS.Send(lead.Phone, body)
	e.recordSend(ctx, lead, campaign.ID, entity.ChannelSMS, lead.Phone, body, step, providerID, err)
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	return nil
}

func (e *DripEngine) sendEmail(ctx context.Context, lead *entity.Lead, campaign entity.DripCampaign, step int, msg entity.DripMessage) error {
	rendered := e.Renderer.DripEmail(step, lead)

	// A literal step subject or body wins over the generated one.
	subject := rendered.Subject
	if msg.Subject != "" {
		subject = msg.Subject
	}
	html := rendered.HTML
	if msg.Body != "" {
		html = e.Renderer.EmailEnvelope(lead, msg.Body)
	}

	providerID, _, err := e.Email.Send(lead.Email, subject, html)
	e.recordSend(ctx, lead, campaign.ID, entity.ChannelEmail, lead.Email, subject, step, providerID, err)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// recordSend writes the message log entry and, on success, publishes the
// message event. Both are best effort and never fail the send path.
func (e *DripEngine) recordSend(ctx context.Context, lead *entity.Lead, campaignID, channel, recipient, body string, step int, providerID string, sendErr error) {
	status := entity.MessageSent
	if sendErr != nil {
		status = entity.MessageFailed
	}

	if err := e.Logs.Create(ctx, entity.NewMessageLog(lead.ID, channel, recipient, body, status, providerID)); err != nil {
		e.Log.Warnw("failed to write message log", "lead_id", lead.ID, "channel", channel, "error", err)
	}

	if sendErr == nil && e.Events != nil {
		event := queue.MessageSentEvent{
			LeadID:     lead.ID,
			CampaignID: campaignID,
			Channel:    channel,
			Recipient:  recipient,
			ProviderID: providerID,
			Step:       step,
			Origin:     "DRIP",
			SentAt:     time.Now(),
		}
		if err := e.Events.PublishMessageSent(ctx, event); err != nil {
			e.Log.Warnw("failed to publish message event", "lead_id", lead.ID, "error", err)
		}
	}
}

// PauseForLead suppresses every active enrollment of the lead on the given
// channel. Safe to call repeatedly; already-suppressed rows are untouched.
func (e *DripEngine) PauseForLead(ctx context.Context, leadID, channel string) error {
	if err := e.States.PauseForLead(ctx, leadID, channel); err != nil {
		return fmt.Errorf("failed to pause campaigns for lead %s: %w", leadID, err)
	}
	return nil
}
