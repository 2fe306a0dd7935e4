package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/summitview/outreach/internal/entity"
)

type MessageLogRepository struct {
	DB *sql.DB
}

func NewMessageLogRepository(db *sql.DB) *MessageLogRepository {
	return &MessageLogRepository{DB: db}
}

func (r *MessageLogRepository) Create(ctx context.Context, m *entity.MessageLog) error {
	query := `
		INSERT INTO message_logs (id, lead_id, channel, recipient, body, status, provider_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.LeadID, m.Channel, m.Recipient, m.Body, m.Status, m.ProviderID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message log: %w", err)
	}
	return nil
}

func (r *MessageLogRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.MessageLog, error) {
	query := `
		SELECT id, lead_id, channel, recipient, body, status, provider_id, created_at
		FROM message_logs
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list message logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.MessageLog
	for rows.Next() {
		var m entity.MessageLog
		err := rows.Scan(&m.ID, &m.LeadID, &m.Channel, &m.Recipient, &m.Body, &m.Status, &m.ProviderID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message log: %w", err)
		}
		logs = append(logs, &m)
	}
	return logs, rows.Err()
}
