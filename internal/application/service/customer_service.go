package service

import (
	"context"
	"strings"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CustomerService handles the customer directory
type CustomerService struct {
	customerRepo repository.CustomerRepository
	log          *logrus.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, log *logrus.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		log:          log,
	}
}

// ListCustomers returns the directory in storage order, filtered by name
// (ignoring case) or mobile when query is not empty
func (s *CustomerService) ListCustomers(ctx context.Context, query string) ([]entity.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return customers, nil
	}

	matches := make([]entity.Customer, 0)
	for i := range customers {
		if customers[i].Matches(query) {
			matches = append(matches, customers[i])
		}
	}
	return matches, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Mobile  string
	Email   string
	Address string
	GSTIN   string
}

// CreateCustomer appends a new customer to the directory
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	mobile := strings.TrimSpace(input.Mobile)

	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if mobile == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "mobile", Message: "Mobile is required"})
	}
	if len(fieldErrors) > 0 {
		appErr := apperror.NewValidationError(fieldErrors)
		appErr.Message = "Name and Mobile are required"
		return nil, appErr
	}

	customer := &entity.Customer{
		ID:      utils.NewID(),
		Name:    name,
		Mobile:  mobile,
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
		GSTIN:   strings.TrimSpace(input.GSTIN),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"name":        customer.Name,
	}).Info("customer created")

	return customer, nil
}

// FindByMobile returns the first customer with the mobile number, or nil
func (s *CustomerService) FindByMobile(ctx context.Context, mobile string) (*entity.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Mobile == mobile {
			return &customers[i], nil
		}
	}
	return nil, nil
}
