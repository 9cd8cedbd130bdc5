package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/entity"
	"github.com/sangkips/salespoint-api/internal/domain/repository"
	"github.com/sangkips/salespoint-api/pkg/apperror"
	"github.com/sangkips/salespoint-api/pkg/pagination"
	"github.com/sangkips/salespoint-api/pkg/utils"
)

// CustomerService handles member customer management
type CustomerService struct {
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, transactionRepo repository.TransactionRepository) *CustomerService {
	return &CustomerService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CreateCustomer registers a new member. A member code is generated and
// phone numbers must be unique since cashiers look members up by phone.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Phone number already registered")
		}
	}

	customer := &entity.Customer{
		MemberCode: utils.GenerateMemberCode(),
		Name:       input.Name,
	}
	if input.Phone != "" {
		customer.Phone = &input.Phone
	}
	if input.Email != "" {
		customer.Email = &input.Email
	}
	if input.Address != "" {
		customer.Address = &input.Address
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer returns a single customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// LookupCustomer finds a member by member code or phone number, whichever
// matches first. Used at the register when a member identifies themselves.
func (s *CustomerService) LookupCustomer(ctx context.Context, code, phone string) (*entity.Customer, error) {
	if code != "" {
		customer, err := s.customerRepo.GetByMemberCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			return customer, nil
		}
	}

	if phone != "" {
		customer, err := s.customerRepo.GetByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			return customer, nil
		}
	}

	return nil, apperror.NewNotFoundError("Customer")
}

// ListCustomers returns a paginated list of customers
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params, search)
}

// ListCustomerTransactions returns a member's purchase history
func (s *CustomerService) ListCustomerTransactions(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.Transaction, int64, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}
	if customer == nil {
		return nil, 0, apperror.NewNotFoundError("Customer")
	}

	return s.transactionRepo.ListByCustomer(ctx, customerID, params)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateCustomer updates a member's details. Member codes and points are
// never edited directly; points move only through checkout and void.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}

	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("Phone number already registered")
		}
		customer.Phone = input.Phone
	}

	if input.Email != nil {
		customer.Email = input.Email
	}

	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a member
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	return s.customerRepo.Delete(ctx, id)
}
