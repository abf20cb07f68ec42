package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/repository"
)

// In-memory repository fakes. They only implement the behavior the services
// exercise; listing applies the subset of filters the tests rely on.

type fakeTicketRepo struct {
	mu      sync.Mutex
	seq     int
	tickets map[string]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *fakeTicketRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("ticket-%d", r.seq)
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = r.nextID()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *fakeTicketRepo) GetByFolio(_ context.Context, folio string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.Folio == folio {
			copied := ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.Zone != nil && ticket.Zone != *filter.Zone {
			continue
		}
		if filter.Type != nil && ticket.Type != *filter.Type {
			continue
		}
		result = append(result, ticket)
	}
	return result, nil
}

type fakeStaffRepo struct {
	mu      sync.Mutex
	members map[string]domain.StaffMember
}

func newFakeStaffRepo(members ...domain.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{members: map[string]domain.StaffMember{}}
	for _, member := range members {
		repo.members[member.ID] = member
	}
	return repo
}

func (r *fakeStaffRepo) Create(_ context.Context, member *domain.StaffMember, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if member.ID == "" {
		member.ID = fmt.Sprintf("staff-%d", len(r.members)+1)
	}
	r.members[member.ID] = *member
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, member *domain.StaffMember, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.members[member.ID] = *member
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &member, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.members {
		if strings.EqualFold(member.Email, email) {
			copied := member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) List(_ context.Context, role *domain.StaffRole, zone *string) ([]domain.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.StaffMember
	for _, member := range r.members {
		if !member.Active {
			continue
		}
		if role != nil && member.Role != *role {
			continue
		}
		if zone != nil && (member.Zone == nil || *member.Zone != *zone) {
			continue
		}
		result = append(result, member)
	}
	return result, nil
}

type fakeContractRepo struct {
	mu        sync.Mutex
	seq       int
	contracts map[string]domain.ServiceContract
}

func newFakeContractRepo(contracts ...domain.ServiceContract) *fakeContractRepo {
	repo := &fakeContractRepo{contracts: map[string]domain.ServiceContract{}}
	for _, contract := range contracts {
		repo.contracts[contract.ID] = contract
	}
	return repo
}

func (r *fakeContractRepo) Create(_ context.Context, contract *domain.ServiceContract, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	contract.ID = fmt.Sprintf("contract-%d", r.seq)
	r.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) Update(_ context.Context, contract *domain.ServiceContract, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[contract.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.contracts[contract.ID] = *contract
	return nil
}

func (r *fakeContractRepo) GetByID(_ context.Context, id string) (*domain.ServiceContract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contract, ok := r.contracts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &contract, nil
}

func (r *fakeContractRepo) ListWithFilter(_ context.Context, filter repository.ContractFilter) ([]domain.ServiceContract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ServiceContract
	for _, contract := range r.contracts {
		if filter.CustomerID != nil && contract.CustomerID != *filter.CustomerID {
			continue
		}
		result = append(result, contract)
	}
	return result, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]domain.Customer
}

func newFakeCustomerRepo(customers ...domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: map[string]domain.Customer{}}
	for _, customer := range customers {
		repo.customers[customer.ID] = customer
	}
	return repo
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%d", len(r.customers)+1)
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &customer, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *string, _, _ int) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Customer
	for _, customer := range r.customers {
		result = append(result, customer)
	}
	return result, nil
}

type fakePackageRepo struct {
	mu       sync.Mutex
	packages map[string]domain.ServicePackage
}

func newFakePackageRepo(packages ...domain.ServicePackage) *fakePackageRepo {
	repo := &fakePackageRepo{packages: map[string]domain.ServicePackage{}}
	for _, pkg := range packages {
		repo.packages[pkg.ID] = pkg
	}
	return repo
}

func (r *fakePackageRepo) Create(_ context.Context, pkg *domain.ServicePackage, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pkg.ID == "" {
		pkg.ID = fmt.Sprintf("package-%d", len(r.packages)+1)
	}
	r.packages[pkg.ID] = *pkg
	return nil
}

func (r *fakePackageRepo) Update(_ context.Context, pkg *domain.ServicePackage, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[pkg.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.packages[pkg.ID] = *pkg
	return nil
}

func (r *fakePackageRepo) GetByID(_ context.Context, id string) (*domain.ServicePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pkg, ok := r.packages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &pkg, nil
}

func (r *fakePackageRepo) ListActive(_ context.Context) ([]domain.ServicePackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ServicePackage
	for _, pkg := range r.packages {
		if pkg.IsActive {
			result = append(result, pkg)
		}
	}
	return result, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	seq      int
	payments map[string]domain.Payment
}

func newFakePaymentRepo(payments ...domain.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: map[string]domain.Payment{}}
	for _, payment := range payments {
		repo.payments[payment.ID] = payment
	}
	return repo
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	payment.ID = fmt.Sprintf("payment-%d", r.seq)
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *domain.Payment, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &payment, nil
}

func (r *fakePaymentRepo) ListWithFilter(_ context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Payment
	for _, payment := range r.payments {
		if filter.ContractID != nil && payment.ContractID != *filter.ContractID {
			continue
		}
		result = append(result, payment)
	}
	return result, nil
}

type fakeWorkOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]domain.WorkOrder
}

func newFakeWorkOrderRepo(orders ...domain.WorkOrder) *fakeWorkOrderRepo {
	repo := &fakeWorkOrderRepo{orders: map[string]domain.WorkOrder{}}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (r *fakeWorkOrderRepo) Create(_ context.Context, order *domain.WorkOrder, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	order.ID = fmt.Sprintf("order-%d", r.seq)
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeWorkOrderRepo) Update(_ context.Context, order *domain.WorkOrder, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(_ context.Context, id string) (*domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (r *fakeWorkOrderRepo) ListByContract(_ context.Context, contractID string) ([]domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.WorkOrder
	for _, order := range r.orders {
		if order.ContractID == contractID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeWorkOrderRepo) ListWithFilter(_ context.Context, filter repository.WorkOrderFilter) ([]domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.WorkOrder
	for _, order := range r.orders {
		if filter.ContractID != nil && order.ContractID != *filter.ContractID {
			continue
		}
		result = append(result, order)
	}
	return result, nil
}
