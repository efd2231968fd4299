package catalogRepo

import (
	"context"
	"errors"

	"bookwell/models"
)

var ErrNotFound = errors.New("catalog entry not found")

// CatalogRepository is the read model the conversation machine and the
// notification layer consume: tenant-scoped services, staff and customers.
type CatalogRepository interface {
	ListServices(ctx context.Context, tenantID string) ([]models.Service, error)
	GetService(ctx context.Context, tenantID, id string) (*models.Service, error)

	ListStaff(ctx context.Context, tenantID string) ([]models.Staff, error)
	GetStaff(ctx context.Context, tenantID, id string) (*models.Staff, error)
	GetStaffByEmail(ctx context.Context, tenantID, email string) (*models.Staff, error)

	GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error)
	// GetOrCreateCustomerByChatID resolves a chat user to a customer,
	// creating a bare record on first contact.
	GetOrCreateCustomerByChatID(ctx context.Context, tenantID, chatID string) (*models.Customer, error)
}
