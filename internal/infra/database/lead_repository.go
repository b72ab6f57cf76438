package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/pzk-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// EnsureSchema creates the leads table on boot. A failure here is fatal
// to the process; it is the only startup crash path.
func (r *LeadRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			source TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			crm_sent BOOLEAN NOT NULL DEFAULT FALSE,
			crm_response TEXT
		)
	`

	_, err := r.DB.ExecContext(ctx, query)
	return err
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (name, phone, source)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, crm_sent
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.Name,
		lead.Phone,
		nullString(lead.Source),
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&lead.CRMSent,
	)
}

// UpdateCRMOutcome is the single post-insert mutation a lead ever sees.
// crm_response is overwritten with either the success payload or the
// serialized error.
func (r *LeadRepository) UpdateCRMOutcome(ctx context.Context, id int64, sent bool, response string) error {
	query := `
		UPDATE leads
		SET crm_sent = $1, crm_response = $2
		WHERE id = $3
	`

	_, err := r.DB.ExecContext(ctx, query, sent, response, id)
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
