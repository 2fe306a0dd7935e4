package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/summitview/outreach/internal/entity"
	"github.com/summitview/outreach/internal/usecase"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) Unsubscribe(ctx context.Context, id, channel string) error {
	args := m.Called(ctx, id, channel)
	return args.Error(0)
}

func (m *MockLeadRepository) AssignCampaign(ctx context.Context, leadID, campaignID string) error {
	args := m.Called(ctx, leadID, campaignID)
	return args.Error(0)
}

type MockMessageLogRepository struct {
	mock.Mock
}

func (m *MockMessageLogRepository) Create(ctx context.Context, log *entity.MessageLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockMessageLogRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.MessageLog, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MessageLog), args.Error(1)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.DripCampaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) List(ctx context.Context) ([]*entity.DripCampaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.DripCampaign), args.Error(1)
}

func (m *MockCampaignRepository) ListActive(ctx context.Context) ([]*entity.DripCampaign, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.DripCampaign), args.Error(1)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.DripCampaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DripCampaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *entity.DripCampaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDripStateRepository struct {
	mock.Mock
}

func (m *MockDripStateRepository) Create(ctx context.Context, state *entity.LeadDripState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockDripStateRepository) ListDue(ctx context.Context, now time.Time) ([]entity.DueEnrollment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DueEnrollment), args.Error(1)
}

func (m *MockDripStateRepository) Advance(ctx context.Context, id string, step int, nextSendAt, lastSentAt time.Time) error {
	args := m.Called(ctx, id, step, nextSendAt, lastSentAt)
	return args.Error(0)
}

func (m *MockDripStateRepository) Complete(ctx context.Context, id string, step int) error {
	args := m.Called(ctx, id, step)
	return args.Error(0)
}

func (m *MockDripStateRepository) PauseForLead(ctx context.Context, leadID, channel string) error {
	args := m.Called(ctx, leadID, channel)
	return args.Error(0)
}

type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(to, body string) (string, string, error) {
	args := m.Called(to, body)
	return args.String(0), args.String(1), args.Error(2)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(to, subject, html string) (string, string, error) {
	args := m.Called(to, subject, html)
	return args.String(0), args.String(1), args.Error(2)
}

type MockDripProcessor struct {
	mock.Mock
}

func (m *MockDripProcessor) ProcessDue(ctx context.Context, now time.Time) (usecase.ProcessResult, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(usecase.ProcessResult), args.Error(1)
}
