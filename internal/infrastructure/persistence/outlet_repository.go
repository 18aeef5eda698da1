package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOutletRepository implements partner.OutletRepository using GORM
type GormOutletRepository struct {
	db *gorm.DB
}

// NewGormOutletRepository creates a new GormOutletRepository
func NewGormOutletRepository(db *gorm.DB) *GormOutletRepository {
	return &GormOutletRepository{db: db}
}

// FindByID finds an outlet by its ID
func (r *GormOutletRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Outlet, error) {
	var outlet partner.Outlet
	if err := dbFor(ctx, r.db).First(&outlet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outlet, nil
}

// FindByIDForTenant finds an outlet by ID for a specific tenant
func (r *GormOutletRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Outlet, error) {
	var outlet partner.Outlet
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&outlet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outlet, nil
}

// FindByCode finds an outlet by code for a tenant
func (r *GormOutletRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Outlet, error) {
	var outlet partner.Outlet
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&outlet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &outlet, nil
}

// FindAllForTenant finds all outlets for a tenant with filtering
func (r *GormOutletRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Outlet, error) {
	var outlets []partner.Outlet
	query := dbFor(ctx, r.db).Where("tenant_id = ?", tenantID)
	query = applySharedFilter(query, filter, OutletSortFields, "code", "name")

	if err := query.Find(&outlets).Error; err != nil {
		return nil, err
	}
	return outlets, nil
}

// Save creates or updates an outlet
func (r *GormOutletRepository) Save(ctx context.Context, outlet *partner.Outlet) error {
	return dbFor(ctx, r.db).Save(outlet).Error
}

// Ensure GormOutletRepository implements partner.OutletRepository
var _ partner.OutletRepository = (*GormOutletRepository)(nil)
