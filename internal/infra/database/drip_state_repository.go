package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/summitview/outreach/internal/entity"
)

type DripStateRepository struct {
	DB *sql.DB
}

func NewDripStateRepository(db *sql.DB) *DripStateRepository {
	return &DripStateRepository{DB: db}
}

// Create inserts the enrollment. The partial unique index on active
// (lead_id, campaign_id) pairs makes a re-enrollment attempt a no-op
// instead of a duplicate row.
func (r *DripStateRepository) Create(ctx context.Context, state *entity.LeadDripState) error {
	query := `
		INSERT INTO lead_drip_states (id, lead_id, campaign_id, current_step, next_send_at, status, last_sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`

	_, err := r.DB.ExecContext(ctx, query,
		state.ID,
		state.LeadID,
		state.CampaignID,
		state.CurrentStep,
		state.NextSendAt,
		state.Status,
		state.LastSentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert drip state: %w", err)
	}
	return nil
}

// ListDue joins due rows with their lead and campaign. The lead side is a
// LEFT JOIN so an orphaned row surfaces with a nil Lead instead of
// silently disappearing from the batch.
func (r *DripStateRepository) ListDue(ctx context.Context, now time.Time) ([]entity.DueEnrollment, error) {
	query := `
		SELECT s.id, s.lead_id, s.campaign_id, s.current_step, s.next_send_at, s.status, s.last_sent_at,
			l.id, l.name, l.email, l.phone, l.sms_consent, l.email_consent,
			c.id, c.name, c.channel, c.messages, c.is_active, c.created_at
		FROM lead_drip_states s
		JOIN drip_campaigns c ON c.id = s.campaign_id
		LEFT JOIN leads l ON l.id = s.lead_id
		WHERE s.status = $1 AND s.next_send_at <= $2
	`

	rows, err := r.DB.QueryContext(ctx, query, entity.DripActive, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due enrollments: %w", err)
	}
	defer rows.Close()

	var due []entity.DueEnrollment
	for rows.Next() {
		var row entity.DueEnrollment
		var leadID, leadName, leadEmail, leadPhone sql.NullString
		var smsConsent, emailConsent sql.NullBool
		var steps []byte

		err := rows.Scan(
			&row.State.ID,
			&row.State.LeadID,
			&row.State.CampaignID,
			&row.State.CurrentStep,
			&row.State.NextSendAt,
			&row.State.Status,
			&row.State.LastSentAt,
			&leadID,
			&leadName,
			&leadEmail,
			&leadPhone,
			&smsConsent,
			&emailConsent,
			&row.Campaign.ID,
			&row.Campaign.Name,
			&row.Campaign.Channel,
			&steps,
			&row.Campaign.IsActive,
			&row.Campaign.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due enrollment: %w", err)
		}

		if err := json.Unmarshal(steps, &row.Campaign.Messages); err != nil {
			return nil, fmt.Errorf("failed to decode campaign steps: %w", err)
		}

		if leadID.Valid {
			row.Lead = &entity.Lead{
				ID:           leadID.String,
				Name:         leadName.String,
				Email:        leadEmail.String,
				Phone:        leadPhone.String,
				SMSConsent:   smsConsent.Bool,
				EmailConsent: emailConsent.Bool,
			}
		}

		due = append(due, row)
	}
	return due, rows.Err()
}

func (r *DripStateRepository) Advance(ctx context.Context, id string, step int, nextSendAt, lastSentAt time.Time) error {
	query := `
		UPDATE lead_drip_states
		SET current_step = $1, next_send_at = $2, last_sent_at = $3
		WHERE id = $4 AND status = $5
	`
	_, err := r.DB.ExecContext(ctx, query, step, nextSendAt, lastSentAt, id, entity.DripActive)
	if err != nil {
		return fmt.Errorf("failed to advance drip state: %w", err)
	}
	return nil
}

func (r *DripStateRepository) Complete(ctx context.Context, id string, step int) error {
	query := `
		UPDATE lead_drip_states
		SET status = $1, current_step = $2, next_send_at = NULL
		WHERE id = $3 AND status = $4
	`
	_, err := r.DB.ExecContext(ctx, query, entity.DripCompleted, step, id, entity.DripActive)
	if err != nil {
		return fmt.Errorf("failed to complete drip state: %w", err)
	}
	return nil
}

// PauseForLead suppresses the lead's active enrollments on one channel.
// The status predicate only touches rows still active, so repeat calls
// are no-ops.
func (r *DripStateRepository) PauseForLead(ctx context.Context, leadID, channel string) error {
	query := `
		UPDATE lead_drip_states s
		SET status = $1, next_send_at = NULL
		FROM drip_campaigns c
		WHERE c.id = s.campaign_id
			AND s.lead_id = $2
			AND c.channel = $3
			AND s.status = $4
	`
	_, err := r.DB.ExecContext(ctx, query, entity.DripUnsubscribed, leadID, channel, entity.DripActive)
	if err != nil {
		return fmt.Errorf("failed to pause drip states: %w", err)
	}
	return nil
}
