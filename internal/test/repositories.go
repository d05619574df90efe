package test

import (
	"context"
	"fmt"
	"sort"
	"time"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// ProfileRepositoryStub stores profiles in-memory for tests.
type ProfileRepositoryStub struct {
	Profiles map[string]*model.Profile
	Err      error
}

// NewProfileRepositoryStub constructs stub repository with initialized maps.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{Profiles: make(map[string]*model.Profile)}
}

// Create registers profile unless the email is taken or stub has explicit error.
func (s *ProfileRepositoryStub) Create(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Profiles == nil {
		s.Profiles = make(map[string]*model.Profile)
	}
	for _, existing := range s.Profiles {
		if existing.Email == profile.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if profile.ID == "" {
		profile.ID = fmt.Sprintf("profile-%d", len(s.Profiles)+1)
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	stored := profile
	s.Profiles[profile.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches profile by email or returns not found.
func (s *ProfileRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, profile := range s.Profiles {
		if profile.Email == email {
			return profile, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches profile by identifier or returns not found.
func (s *ProfileRepositoryStub) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if profile, ok := s.Profiles[id]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListVendors returns vendor profiles sorted newest first.
func (s *ProfileRepositoryStub) ListVendors(ctx context.Context) ([]model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	vendors := make([]model.Profile, 0, len(s.Profiles))
	for _, profile := range s.Profiles {
		if profile.Role == model.RoleVendor {
			vendors = append(vendors, *profile)
		}
	}
	sort.Slice(vendors, func(i, j int) bool { return vendors[i].CreatedAt.After(vendors[j].CreatedAt) })
	return vendors, nil
}

// SetActive toggles the vendor's access flag.
func (s *ProfileRepositoryStub) SetActive(ctx context.Context, id string, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	profile, ok := s.Profiles[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	profile.IsActive = active
	return nil
}

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	Orders map[string]*model.Order
	Err    error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create stores the order, generating an identifier when absent.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if order.OrderNumber != "" {
		for _, existing := range s.Orders {
			if existing.OrderNumber == order.OrderNumber {
				return nil, domainErrors.ErrAlreadyExists
			}
		}
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(s.Orders)+1)
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	stored := order
	s.Orders[order.ID] = &stored
	return &stored, nil
}

// CreateBatch inserts orders one by one, skipping duplicates.
func (s *OrderRepositoryStub) CreateBatch(ctx context.Context, orders []model.Order) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	inserted := 0
	for _, order := range orders {
		if _, err := s.Create(ctx, order); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

// GetByID fetches an order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored order, most recently updated first.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	orders := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].UpdatedAt.After(orders[j].UpdatedAt) })
	return orders, nil
}

// ListByVendor returns orders assigned to the vendor.
func (s *OrderRepositoryStub) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	orders := make([]model.Order, 0)
	for _, order := range s.Orders {
		if order.AssignedVendorID == vendorID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].UpdatedAt.After(orders[j].UpdatedAt) })
	return orders, nil
}

// Update overlays typed column values onto the stored order.
func (s *OrderRepositoryStub) Update(ctx context.Context, id string, changes map[model.Field]any) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for field, value := range changes {
		switch field {
		case model.FieldAssignedVendorID:
			order.AssignedVendorID, _ = value.(string)
		case model.FieldOrderNumber:
			order.OrderNumber, _ = value.(string)
		case model.FieldCustomerName:
			order.CustomerName, _ = value.(string)
		case model.FieldShippingAddress:
			order.ShippingAddress, _ = value.(string)
		case model.FieldCarrier:
			if raw, ok := value.(model.Carrier); ok {
				order.Carrier = raw
			}
		case model.FieldTrackingNumber:
			order.TrackingNumber, _ = value.(string)
		case model.FieldTrackingURL:
			order.TrackingURL, _ = value.(string)
		case model.FieldStatus:
			if raw, ok := value.(model.OrderStatus); ok {
				order.Status = raw
			}
		case model.FieldIssueReason:
			order.IssueReason, _ = value.(string)
		case model.FieldShipDate:
			order.ShipDate, _ = value.(*time.Time)
		}
	}
	order.UpdatedAt = time.Now()
	return nil
}

// Delete removes the order or returns not found.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// ExistingOrderNumbers reports which of the numbers are already present.
func (s *OrderRepositoryStub) ExistingOrderNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	known := make(map[string]struct{}, len(numbers))
	for _, order := range s.Orders {
		known[order.OrderNumber] = struct{}{}
	}
	existing := make(map[string]struct{})
	for _, number := range numbers {
		if _, ok := known[number]; ok {
			existing[number] = struct{}{}
		}
	}
	return existing, nil
}

// AuditRepositoryStub is an in-memory append-only change log.
type AuditRepositoryStub struct {
	Entries []model.AuditEntry
	Err     error
}

// Append stores the entry with a sequential identifier.
func (s *AuditRepositoryStub) Append(ctx context.Context, entry model.AuditEntry) error {
	if s.Err != nil {
		return s.Err
	}
	entry.ID = int64(len(s.Entries) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.Entries = append(s.Entries, entry)
	return nil
}

// ListByOrder returns entries for the order, newest first.
func (s *AuditRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.AuditEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	entries := make([]model.AuditEntry, 0)
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if s.Entries[i].OrderID == orderID {
			entries = append(entries, s.Entries[i])
		}
	}
	return entries, nil
}
