package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/domain/shared"
)

// OutletService handles outlet-related business operations
type OutletService struct {
	outletRepo partner.OutletRepository
	logger     *zap.Logger
}

// NewOutletService creates a new OutletService
func NewOutletService(outletRepo partner.OutletRepository, logger *zap.Logger) *OutletService {
	return &OutletService{
		outletRepo: outletRepo,
		logger:     logger,
	}
}

// Create creates a new outlet
func (s *OutletService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOutletRequest) (*OutletResponse, error) {
	if _, err := s.outletRepo.FindByCode(ctx, tenantID, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Outlet with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	outlet, err := partner.NewOutlet(tenantID, req.Code, req.Name, req.Jurisdiction)
	if err != nil {
		return nil, err
	}

	if req.GSTIN != "" {
		if err := outlet.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.Phone != "" {
		outlet.SetContact(req.Address, req.Phone)
	}

	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, err
	}

	s.logger.Info("Outlet created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("outlet_id", outlet.ID.String()),
		zap.String("code", outlet.Code),
	)

	response := ToOutletResponse(outlet)
	return &response, nil
}

// GetByID retrieves an outlet by ID
func (s *OutletService) GetByID(ctx context.Context, tenantID, outletID uuid.UUID) (*OutletResponse, error) {
	outlet, err := s.outletRepo.FindByIDForTenant(ctx, tenantID, outletID)
	if err != nil {
		return nil, err
	}
	response := ToOutletResponse(outlet)
	return &response, nil
}

// List retrieves outlets for a tenant
func (s *OutletService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OutletResponse, error) {
	outlets, err := s.outletRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OutletResponse, 0, len(outlets))
	for i := range outlets {
		responses = append(responses, ToOutletResponse(&outlets[i]))
	}
	return responses, nil
}

// Close marks an outlet as inactive
func (s *OutletService) Close(ctx context.Context, tenantID, outletID uuid.UUID) (*OutletResponse, error) {
	outlet, err := s.outletRepo.FindByIDForTenant(ctx, tenantID, outletID)
	if err != nil {
		return nil, err
	}
	outlet.Close()
	if err := s.outletRepo.Save(ctx, outlet); err != nil {
		return nil, err
	}

	s.logger.Info("Outlet closed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("outlet_id", outletID.String()),
	)

	response := ToOutletResponse(outlet)
	return &response, nil
}
