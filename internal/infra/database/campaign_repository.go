package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/summitview/outreach/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.DripCampaign) error {
	steps, err := json.Marshal(c.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode campaign steps: %w", err)
	}

	query := `
		INSERT INTO drip_campaigns (id, name, channel, messages, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Channel, steps, c.IsActive, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]*entity.DripCampaign, error) {
	return r.list(ctx, `SELECT id, name, channel, messages, is_active, created_at FROM drip_campaigns ORDER BY created_at DESC`)
}

func (r *CampaignRepository) ListActive(ctx context.Context) ([]*entity.DripCampaign, error) {
	return r.list(ctx, `SELECT id, name, channel, messages, is_active, created_at FROM drip_campaigns WHERE is_active ORDER BY created_at`)
}

func (r *CampaignRepository) list(ctx context.Context, query string) ([]*entity.DripCampaign, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*entity.DripCampaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.DripCampaign, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, name, channel, messages, is_active, created_at FROM drip_campaigns WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.DripCampaign) error {
	steps, err := json.Marshal(c.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode campaign steps: %w", err)
	}

	query := `
		UPDATE drip_campaigns
		SET name = $1, channel = $2, messages = $3, is_active = $4
		WHERE id = $5
	`
	res, err := r.DB.ExecContext(ctx, query, c.Name, c.Channel, steps, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return requireRow(res, entity.ErrCampaignNotFound)
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM drip_campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return requireRow(res, entity.ErrCampaignNotFound)
}

func scanCampaign(row rowScanner) (*entity.DripCampaign, error) {
	var c entity.DripCampaign
	var steps []byte

	if err := row.Scan(&c.ID, &c.Name, &c.Channel, &steps, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(steps, &c.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode campaign steps: %w", err)
	}
	if c.Messages == nil {
		c.Messages = []entity.DripMessage{}
	}
	return &c, nil
}
