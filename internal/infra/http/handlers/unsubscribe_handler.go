package handlers

import (
	"context"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/http/middleware"
)

// CampaignPauser is the slice of the drip engine the suppression paths need.
type CampaignPauser interface {
	PauseForLead(ctx context.Context, leadID, channel string) error
}

type UnsubscribeHandler struct {
	LeadRepo    entity.LeadRepositoryInterface
	Drip        CampaignPauser
	CompanyName string
	Log         *zap.SugaredLogger
}

func NewUnsubscribeHandler(leadRepo entity.LeadRepositoryInterface, drip CampaignPauser, companyName string, log *zap.SugaredLogger) *UnsubscribeHandler {
	return &UnsubscribeHandler{LeadRepo: leadRepo, Drip: drip, CompanyName: companyName, Log: log}
}

var unsubscribePage = template.Must(template.New("unsubscribe").Parse(`<!DOCTYPE html>
<html>
<head><title>Unsubscribed</title></head>
<body style="font-family: Arial, sans-serif; text-align: center; padding: 64px 16px;">
  <h1>You're unsubscribed</h1>
  <p>You will no longer receive {{.Channel}} messages from {{.CompanyName}}.</p>
</body>
</html>`))

// HandleUnsubscribe serves the public link embedded in every email.
// Idempotent: repeat visits land on the same confirmation page.
func (h *UnsubscribeHandler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("leadId")
	channel := r.URL.Query().Get("channel")

	if leadID == "" || (channel != entity.ChannelSMS && channel != entity.ChannelEmail) {
		http.Error(w, "Invalid unsubscribe link", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := h.LeadRepo.Unsubscribe(ctx, leadID, channel); err != nil {
		h.Log.Warnw("unsubscribe consent revocation failed", "lead_id", leadID, "channel", channel, "error", err)
	} else {
		middleware.RecordConsentRevoked(channel)
	}
	if err := h.Drip.PauseForLead(ctx, leadID, channel); err != nil {
		h.Log.Warnw("unsubscribe campaign pause failed", "lead_id", leadID, "channel", channel, "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	unsubscribePage.Execute(w, struct {
		Channel     string
		CompanyName string
	}{Channel: channel, CompanyName: h.CompanyName})
}
