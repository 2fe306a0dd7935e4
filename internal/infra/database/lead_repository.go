package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/summitview/outreach/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, email, phone, message, project_interest,
	sms_consent, email_consent, status, source, campaign_ids, pipeline_ids,
	created_at, updated_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, message, project_interest,
			sms_consent, email_consent, status, source, campaign_ids, pipeline_ids,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.ProjectInterest,
		lead.SMSConsent,
		lead.EmailConsent,
		lead.Status,
		lead.Source,
		pq.Array(lead.CampaignIDs),
		pq.Array(lead.PipelineIDs),
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.findOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	return r.findOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE email = $1 ORDER BY created_at DESC LIMIT 1`, email)
}

func (r *LeadRepository) FindByPhone(ctx context.Context, phone string) (*entity.Lead, error) {
	return r.findOne(ctx, `SELECT `+leadColumns+` FROM leads WHERE phone = $1 ORDER BY created_at DESC LIMIT 1`, phone)
}

func (r *LeadRepository) findOne(ctx context.Context, query string, arg any) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, query, arg)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}
	return lead, nil
}

// Update applies a partial patch and always stamps updated_at.
func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) error {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Message != nil {
		add("message", *patch.Message)
	}
	if patch.ProjectInterest != nil {
		add("project_interest", *patch.ProjectInterest)
	}
	if patch.SMSConsent != nil {
		add("sms_consent", *patch.SMSConsent)
	}
	if patch.EmailConsent != nil {
		add("email_consent", *patch.EmailConsent)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Source != nil {
		add("source", *patch.Source)
	}
	if patch.CampaignIDs != nil {
		add("campaign_ids", pq.Array(patch.CampaignIDs))
	}
	if patch.PipelineIDs != nil {
		add("pipeline_ids", pq.Array(patch.PipelineIDs))
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE leads SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

// Unsubscribe only ever turns a consent flag off.
func (r *LeadRepository) Unsubscribe(ctx context.Context, id, channel string) error {
	var column string
	switch channel {
	case entity.ChannelSMS:
		column = "sms_consent"
	case entity.ChannelEmail:
		column = "email_consent"
	default:
		return fmt.Errorf("unknown channel %q", channel)
	}

	query := fmt.Sprintf(`UPDATE leads SET %s = FALSE, updated_at = NOW() WHERE id = $1`, column)
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to revoke %s consent: %w", channel, err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) AssignCampaign(ctx context.Context, leadID, campaignID string) error {
	query := `
		UPDATE leads
		SET campaign_ids = array_append(campaign_ids, $2), updated_at = NOW()
		WHERE id = $1 AND NOT (campaign_ids @> ARRAY[$2])
	`
	if _, err := r.DB.ExecContext(ctx, query, leadID, campaignID); err != nil {
		return fmt.Errorf("failed to assign campaign: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var campaignIDs, pipelineIDs pq.StringArray

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Message,
		&lead.ProjectInterest,
		&lead.SMSConsent,
		&lead.EmailConsent,
		&lead.Status,
		&lead.Source,
		&campaignIDs,
		&pipelineIDs,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.CampaignIDs = campaignIDs
	lead.PipelineIDs = pipelineIDs
	return &lead, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil // driver without RowsAffected support; treat as success
	}
	if n == 0 {
		return notFound
	}
	return nil
}
