package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/infra/http/handlers"
)

func newUnsubscribeHandler() (*handlers.UnsubscribeHandler, *MockLeadRepository, *MockDripStateRepository) {
	leads := new(MockLeadRepository)
	drip := new(MockDripStateRepository)
	h := handlers.NewUnsubscribeHandler(leads, drip, "Summit View", zap.NewNop().Sugar())
	return h, leads, drip
}

func TestHandleUnsubscribe(t *testing.T) {
	h, leads, drip := newUnsubscribeHandler()

	leads.On("Unsubscribe", mock.Anything, "lead-1", entity.ChannelEmail).Return(nil)
	drip.On("PauseForLead", mock.Anything, "lead-1", entity.ChannelEmail).Return(nil)

	req := httptest.NewRequest("GET", "/unsubscribe?leadId=lead-1&channel=email", nil)
	rec := httptest.NewRecorder()
	h.HandleUnsubscribe(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "You're unsubscribed")
	assert.Contains(t, rec.Body.String(), "Summit View")
	leads.AssertExpectations(t)
	drip.AssertExpectations(t)
}

func TestHandleUnsubscribeInvalidChannel(t *testing.T) {
	h, leads, _ := newUnsubscribeHandler()

	req := httptest.NewRequest("GET", "/unsubscribe?leadId=lead-1&channel=fax", nil)
	rec := httptest.NewRecorder()
	h.HandleUnsubscribe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	leads.AssertNotCalled(t, "Unsubscribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleUnsubscribeMissingLeadID(t *testing.T) {
	h, _, _ := newUnsubscribeHandler()

	req := httptest.NewRequest("GET", "/unsubscribe?channel=sms", nil)
	rec := httptest.NewRecorder()
	h.HandleUnsubscribe(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Repeat visits confirm again even when the consent write no-ops or fails.
func TestHandleUnsubscribeIdempotentOnFailure(t *testing.T) {
	h, leads, drip := newUnsubscribeHandler()

	leads.On("Unsubscribe", mock.Anything, "lead-1", entity.ChannelSMS).Return(entity.ErrLeadNotFound)
	drip.On("PauseForLead", mock.Anything, "lead-1", entity.ChannelSMS).Return(errors.New("db down"))

	req := httptest.NewRequest("GET", "/unsubscribe?leadId=lead-1&channel=sms", nil)
	rec := httptest.NewRecorder()
	h.HandleUnsubscribe(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You're unsubscribed")
}
