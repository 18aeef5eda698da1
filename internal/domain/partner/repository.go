package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Customer, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// OutletRepository defines persistence operations for outlets
type OutletRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Outlet, error)
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Outlet, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Outlet, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Outlet, error)
	Save(ctx context.Context, outlet *Outlet) error
}
