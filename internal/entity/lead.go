package entity

import (
	"context"
	"time"
)

type Lead struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CRMSent     bool      `json:"crm_sent"`
	CRMResponse string    `json:"crm_response,omitempty"`
}

type LeadRepositoryInterface interface {

	// Create inserts the lead with crm_sent=false and fills the
	// server-assigned ID and CreatedAt.
	Create(ctx context.Context, lead *Lead) error

	// UpdateCRMOutcome records the single CRM attempt result for a lead.
	UpdateCRMOutcome(ctx context.Context, id int64, sent bool, response string) error
}
