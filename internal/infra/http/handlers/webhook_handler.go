package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/http/middleware"
	"github.com/summitview/outreach/internal/infra/integration/twilio"
)

// WebhookHandler consumes provider callbacks. Both endpoints always return
// 200 to the provider no matter what happens internally; anything else
// risks a provider-side retry storm. Failures are swallowed and logged at
// this boundary only.
type WebhookHandler struct {
	LeadRepo entity.LeadRepositoryInterface
	Drip     CampaignPauser
	Log      *zap.SugaredLogger
}

func NewWebhookHandler(leadRepo entity.LeadRepositoryInterface, drip CampaignPauser, log *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{LeadRepo: leadRepo, Drip: drip, Log: log}
}

// HandleSMS processes Twilio's inbound-message callback (form encoded).
func (h *WebhookHandler) HandleSMS(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	if err := r.ParseForm(); err != nil {
		h.Log.Warnw("sms webhook: unreadable form payload", "error", err)
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")

	if from == "" || !twilio.IsOptOut(body) {
		return
	}

	h.suppress(r, entity.ChannelSMS, func() (*entity.Lead, error) {
		return h.LeadRepo.FindByPhone(r.Context(), from)
	})
}

// sendGridEvent is one entry of the email provider's event batch.
type sendGridEvent struct {
	Email string `json:"email"`
	Event string `json:"event"`
}

// Events that revoke email consent. Plain bounces count: a dead mailbox
// should not keep receiving drip steps.
var suppressingEmailEvents = map[string]bool{
	"unsubscribe": true,
	"spamreport":  true,
	"bounce":      true,
}

// HandleEmail processes the email provider's event webhook (JSON array).
func (h *WebhookHandler) HandleEmail(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	var events []sendGridEvent
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		h.Log.Warnw("email webhook: unreadable payload", "error", err)
		return
	}

	for _, ev := range events {
		if ev.Email == "" || !suppressingEmailEvents[ev.Event] {
			continue
		}
		email := ev.Email
		h.suppress(r, entity.ChannelEmail, func() (*entity.Lead, error) {
			return h.LeadRepo.FindByEmail(r.Context(), email)
		})
	}
}

func (h *WebhookHandler) suppress(r *http.Request, channel string, resolve func() (*entity.Lead, error)) {
	ctx := r.Context()

	lead, err := resolve()
	if err != nil {
		h.Log.Warnw("webhook: lead not resolved", "channel", channel, "error", err)
		return
	}

	if err := h.LeadRepo.Unsubscribe(ctx, lead.ID, channel); err != nil {
		h.Log.Errorw("webhook: consent revocation failed", "lead_id", lead.ID, "channel", channel, "error", err)
	} else {
		middleware.RecordConsentRevoked(channel)
	}
	if err := h.Drip.PauseForLead(ctx, lead.ID, channel); err != nil {
		h.Log.Errorw("webhook: campaign pause failed", "lead_id", lead.ID, "channel", channel, "error", err)
	}
	if err := h.LeadRepo.UpdateStatus(ctx, lead.ID, entity.StatusUnsubscribed); err != nil {
		h.Log.Warnw("webhook: status update failed", "lead_id", lead.ID, "error", err)
	}

	h.Log.Infow("webhook: lead suppressed", "lead_id", lead.ID, "channel", channel)
}
