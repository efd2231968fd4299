package tenantRepo

import (
	"context"
	"errors"

	"bookwell/models"
)

var ErrNotFound = errors.New("tenant not found")

// TenantRepository reads and updates tenant accounts and their
// reminder configuration.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	ListReminderEnabled(ctx context.Context) ([]models.Tenant, error)
	UpdateReminderSettings(ctx context.Context, tenantID string, s models.ReminderSettings) error
}
