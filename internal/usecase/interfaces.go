package usecase

import (
	"context"

	"github.com/xavierca1/pzk-backend/internal/infra/integration/bitrix"
	"github.com/xavierca1/pzk-backend/internal/infra/integration/genapi"
	"github.com/xavierca1/pzk-backend/internal/infra/queue"
)

type CRMNotifier interface {
	CreateLead(ctx context.Context, input bitrix.CreateLeadInput) (*bitrix.CreateLeadResult, error)
}

type GenerationClient interface {
	CreateTask(ctx context.Context, input genapi.CreateTaskInput) (string, error)
	GetTaskStatus(ctx context.Context, taskID string) (*genapi.TaskStatus, error)
}

type LeadEventPublisher interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

type LeadNotificationSender interface {
	SendLeadNotification(name, phone, source string) error
}
