package service

import (
	"context"
	"strings"

	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/repository"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// CustomerService coordinates customer records and the package catalog.
type CustomerService struct {
	customers repository.CustomerRepository
	packages  repository.PackageRepository
	coverage  *CoverageService
}

// CustomerDependencies bundles collaborators for customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	PackageRepo  repository.PackageRepository
	Coverage     *CoverageService
}

// CustomerInput describes customer create/update payloads.
type CustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Zone    string
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers: deps.CustomerRepo,
		packages:  deps.PackageRepo,
		coverage:  deps.Coverage,
	}
}

// CreateCustomer registers a customer record.
func (s *CustomerService) CreateCustomer(ctx context.Context, staff *domain.StaffMember, input CustomerInput) (*domain.Customer, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperrors.NewValidationError("nombre y teléfono son obligatorios", nil)
	}
	zone := strings.ToLower(strings.TrimSpace(input.Zone))
	if s.coverage != nil && zone != "" && !s.coverage.HasCoverage(zone) {
		return nil, apperrors.NewValidationError("la zona no cuenta con cobertura", map[string]any{"zone": zone})
	}

	customer := &domain.Customer{
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
		Zone:    zone,
	}
	if err := s.customers.Create(ctx, customer, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// UpdateCustomer edits a customer record.
func (s *CustomerService) UpdateCustomer(ctx context.Context, staff *domain.StaffMember, customerID string, input CustomerInput) (*domain.Customer, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		customer.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		customer.Phone = phone
	}
	customer.Email = strings.TrimSpace(input.Email)
	customer.Address = strings.TrimSpace(input.Address)
	if zone := strings.ToLower(strings.TrimSpace(input.Zone)); zone != "" {
		if s.coverage != nil && !s.coverage.HasCoverage(zone) {
			return nil, apperrors.NewValidationError("la zona no cuenta con cobertura", map[string]any{"zone": zone})
		}
		customer.Zone = zone
	}
	if err := s.customers.Update(ctx, customer, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// GetCustomer fetches a customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ListCustomers searches customers by name or phone.
func (s *CustomerService) ListCustomers(ctx context.Context, search *string, limit, offset int) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx, search, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}

// ListPackages returns the active package catalog, cheapest first.
func (s *CustomerService) ListPackages(ctx context.Context) ([]domain.ServicePackage, error) {
	packages, err := s.packages.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return packages, nil
}

// CreatePackage adds an entry to the package catalog.
func (s *CustomerService) CreatePackage(ctx context.Context, staff *domain.StaffMember, name string, speedMbps int, monthlyFee float64) (*domain.ServicePackage, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	if strings.TrimSpace(name) == "" || monthlyFee <= 0 {
		return nil, apperrors.NewValidationError("nombre y tarifa mensual son obligatorios", nil)
	}
	pkg := &domain.ServicePackage{
		Name:       strings.TrimSpace(name),
		SpeedMbps:  speedMbps,
		MonthlyFee: monthlyFee,
		IsActive:   true,
	}
	if err := s.packages.Create(ctx, pkg, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return pkg, nil
}
