package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentworks/backend/internal/domain/partner"
	"github.com/rentworks/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	if _, err := s.customerRepo.FindByCode(ctx, tenantID, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	gstClass := partner.GSTClassificationRegular
	if req.GSTClass != "" {
		gstClass = partner.GSTClassification(req.GSTClass)
	}

	customer, err := partner.NewCustomer(tenantID, req.Code, req.Name, gstClass)
	if err != nil {
		return nil, err
	}

	if req.Jurisdiction != "" {
		if err := customer.SetJurisdiction(req.Jurisdiction); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != "" {
		if err := customer.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" || req.Email != "" || req.Address != "" {
		customer.SetContact(req.Phone, req.Email, req.Address)
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.DefaultDueDays != nil {
		if err := customer.SetDefaultDueDays(*req.DefaultDueDays); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.Notes = req.Notes
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	publishEvents(s.logger, customer)
	s.logger.Info("Customer created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("code", customer.Code),
	)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, int64, error) {
	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}

// Update applies partial updates to a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Jurisdiction != nil {
		if err := customer.SetJurisdiction(*req.Jurisdiction); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != nil {
		if err := customer.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Email != nil || req.Address != nil {
		phone, email, address := customer.Phone, customer.Email, customer.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		customer.SetContact(phone, email, address)
	}
	if req.CreditLimit != nil {
		if err := customer.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.DefaultDueDays != nil {
		if err := customer.SetDefaultDueDays(*req.DefaultDueDays); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate marks a customer as inactive. Existing invoices are unaffected;
// new invoices for the customer are rejected.
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID, reason string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.Deactivate(reason); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	publishEvents(s.logger, customer)
	s.logger.Info("Customer deactivated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("customer_id", customerID.String()),
	)

	response := ToCustomerResponse(customer)
	return &response, nil
}
