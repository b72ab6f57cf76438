package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/xavierca1/pzk-backend/internal/entity"
	"github.com/xavierca1/pzk-backend/internal/infra/integration/bitrix"
	"github.com/xavierca1/pzk-backend/internal/infra/queue"
)

type CreateLeadInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	// Source arrives on the wire as "path": the page the form was
	// submitted from.
	Source string `json:"path"`
}

type CreateLeadOutput struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	BitrixLeadID *int   `json:"bitrixLeadId"`
}

type CreateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
	CRM  CRMNotifier

	// Optional best-effort side channels; left nil when not configured.
	Events   LeadEventPublisher
	Notifier LeadNotificationSender
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, crm CRMNotifier) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, CRM: crm}
}

// Execute validates and persists a lead, then forwards it to the CRM
// best-effort. The persisted row is the durability guarantee: a CRM failure
// is recorded on the row and swallowed, never surfaced to the caller.
// A persistence failure aborts before any CRM attempt.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead := &entity.Lead{
		Name:   input.Name,
		Phone:  input.Phone,
		Source: input.Source,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    CodeDatabaseError,
			Message: "failed to persist lead: " + err.Error(),
		}
	}
	log.Printf("lead %d persisted (%s)", lead.ID, lead.Phone)

	output := &CreateLeadOutput{
		ID:    lead.ID,
		Name:  lead.Name,
		Phone: lead.Phone,
	}

	result, err := uc.CRM.CreateLead(ctx, bitrix.CreateLeadInput{
		Name:     lead.Name,
		Phone:    lead.Phone,
		Comments: lead.Source,
	})
	if err != nil {
		log.Printf("lead %d not forwarded to CRM: %v", lead.ID, err)
		uc.recordCRMOutcome(ctx, lead.ID, false, errorPayload(err))
	} else {
		log.Printf("lead %d forwarded to CRM as #%d", lead.ID, result.LeadID)
		uc.recordCRMOutcome(ctx, lead.ID, true, string(result.Raw))
		leadID := result.LeadID
		output.BitrixLeadID = &leadID
	}

	if uc.Events != nil || uc.Notifier != nil {
		go uc.notify(lead)
	}

	return output, nil
}

// recordCRMOutcome updates the row with the settled CRM result. Its own
// failure is logged and swallowed: the lead is already durable.
func (uc *CreateLeadUseCase) recordCRMOutcome(ctx context.Context, id int64, sent bool, response string) {
	if err := uc.Repo.UpdateCRMOutcome(ctx, id, sent, response); err != nil {
		log.Printf("failed to record CRM outcome for lead %d: %v", id, err)
	}
}

func (uc *CreateLeadUseCase) notify(lead *entity.Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if uc.Events != nil {
		payload := queue.LeadCreatedPayload{
			LeadID:    lead.ID,
			Name:      lead.Name,
			Phone:     lead.Phone,
			Source:    lead.Source,
			CreatedAt: lead.CreatedAt.Format(time.RFC3339),
		}
		if err := uc.Events.PublishLeadCreated(ctx, payload); err != nil {
			log.Printf("failed to publish lead.created for lead %d: %v", lead.ID, err)
		}
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.SendLeadNotification(lead.Name, lead.Phone, lead.Source); err != nil {
			log.Printf("failed to send lead notification for lead %d: %v", lead.ID, err)
		}
	}
}

func errorPayload(err error) string {
	body, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return `{"error":"unknown"}`
	}
	return string(body)
}
