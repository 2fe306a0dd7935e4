package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/http/handlers"
)

func newWebhookHandler() (*handlers.WebhookHandler, *MockLeadRepository, *MockDripStateRepository) {
	leads := new(MockLeadRepository)
	drip := new(MockDripStateRepository)
	return handlers.NewWebhookHandler(leads, drip, zap.NewNop().Sugar()), leads, drip
}

func postSMSWebhook(h *handlers.WebhookHandler, from, body string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", body)

	req := httptest.NewRequest("POST", "/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleSMS(rec, req)
	return rec
}

func TestHandleSMSStopSuppressesLead(t *testing.T) {
	h, leads, drip := newWebhookHandler()
	lead := entity.NewLead("Ana Souza", "", "+14155551234", "", "", "website", true, false)

	leads.On("FindByPhone", mock.Anything, "+14155551234").Return(lead, nil)
	leads.On("Unsubscribe", mock.Anything, lead.ID, entity.ChannelSMS).Return(nil)
	leads.On("UpdateStatus", mock.Anything, lead.ID, entity.StatusUnsubscribed).Return(nil)
	drip.On("PauseForLead", mock.Anything, lead.ID, entity.ChannelSMS).Return(nil)

	rec := postSMSWebhook(h, "+14155551234", "STOP")

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertExpectations(t)
	drip.AssertExpectations(t)
}

func TestHandleSMSNonKeywordIsIgnored(t *testing.T) {
	h, leads, _ := newWebhookHandler()

	rec := postSMSWebhook(h, "+14155551234", "what time works?")

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	leads.AssertNotCalled(t, "Unsubscribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSMSUnknownSenderStillReturns200(t *testing.T) {
	h, leads, drip := newWebhookHandler()

	leads.On("FindByPhone", mock.Anything, "+19995550000").Return(nil, entity.ErrLeadNotFound)

	rec := postSMSWebhook(h, "+19995550000", "STOP")

	assert.Equal(t, http.StatusOK, rec.Code)
	drip.AssertNotCalled(t, "PauseForLead", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSMSSuppressionErrorsStayInternal(t *testing.T) {
	h, leads, drip := newWebhookHandler()
	lead := entity.NewLead("Ana Souza", "", "+14155551234", "", "", "website", true, false)

	leads.On("FindByPhone", mock.Anything, "+14155551234").Return(lead, nil)
	leads.On("Unsubscribe", mock.Anything, lead.ID, entity.ChannelSMS).Return(errors.New("db down"))
	leads.On("UpdateStatus", mock.Anything, lead.ID, entity.StatusUnsubscribed).Return(errors.New("db down"))
	drip.On("PauseForLead", mock.Anything, lead.ID, entity.ChannelSMS).Return(errors.New("db down"))

	rec := postSMSWebhook(h, "+14155551234", "stop")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func postEmailWebhook(h *handlers.WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/webhooks/email", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleEmail(rec, req)
	return rec
}

func TestHandleEmailSuppressingEvents(t *testing.T) {
	h, leads, drip := newWebhookHandler()
	lead := entity.NewLead("Ana Souza", "ana@example.com", "", "", "", "website", false, true)

	leads.On("FindByEmail", mock.Anything, "ana@example.com").Return(lead, nil)
	leads.On("Unsubscribe", mock.Anything, lead.ID, entity.ChannelEmail).Return(nil)
	leads.On("UpdateStatus", mock.Anything, lead.ID, entity.StatusUnsubscribed).Return(nil)
	drip.On("PauseForLead", mock.Anything, lead.ID, entity.ChannelEmail).Return(nil)

	body := `[
		{"email":"ana@example.com","event":"open"},
		{"email":"ana@example.com","event":"unsubscribe"}
	]`
	rec := postEmailWebhook(h, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertNumberOfCalls(t, "FindByEmail", 1)
	leads.AssertExpectations(t)
}

func TestHandleEmailDeliveryEventsIgnored(t *testing.T) {
	h, leads, _ := newWebhookHandler()

	body := `[
		{"email":"ana@example.com","event":"delivered"},
		{"email":"ana@example.com","event":"click"}
	]`
	rec := postEmailWebhook(h, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	leads.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestHandleEmailMalformedPayloadStillReturns200(t *testing.T) {
	h, _, _ := newWebhookHandler()

	rec := postEmailWebhook(h, `{"not":"an array"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}
