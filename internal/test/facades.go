package test

import (
	"context"
	"sync"

	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (*model.Profile, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.Profile, string, error)
	ParseFn        func(string) (string, error)
	ProfileFn      func(context.Context, string) (*model.Profile, error)
}

// Register delegates to the override or returns a default vendor session.
func (s AuthFacadeStub) Register(ctx context.Context, email, password string) (*model.Profile, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password)
	}
	return &model.Profile{ID: "profile-1", Email: email, Role: model.RoleVendor, IsActive: true}, "token", nil
}

// Authenticate delegates to the override or returns a default session.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.Profile, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.Profile{ID: "profile-1", Email: email, Role: model.RoleVendor, IsActive: true}, "token", nil
}

// ParseToken resolves tokens to profile IDs.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "profile-1", nil
}

// ProfileByID returns the configured profile.
func (s AuthFacadeStub) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, id)
	}
	return &model.Profile{ID: id, Role: model.RoleVendor, IsActive: true}, nil
}

// OrderFacadeStub provides controllable behaviour for sheet endpoints.
type OrderFacadeStub struct {
	OrdersFn  func(context.Context, *model.Profile) ([]model.Order, error)
	CreateFn  func(context.Context, *model.Profile, map[string]any) (*model.Order, error)
	PatchFn   func(context.Context, *model.Profile, string, map[string]any, model.AuditDescriptor) error
	DeleteFn  func(context.Context, *model.Profile, string) error
	HistoryFn func(context.Context, *model.Profile, string) ([]model.AuditEntry, error)
}

// Orders returns predefined rows for the actor.
func (s OrderFacadeStub) Orders(ctx context.Context, actor *model.Profile) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, actor)
	}
	return []model.Order{{ID: "order-1", OrderNumber: "1001", Status: model.OrderStatusPreShipment}}, nil
}

// CreateOrder delegates to the override or echoes a created row.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor *model.Profile, fields map[string]any) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, fields)
	}
	return &model.Order{ID: "order-1", Status: model.OrderStatusPreShipment}, nil
}

// PatchOrder executes configured patch handler.
func (s OrderFacadeStub) PatchOrder(ctx context.Context, actor *model.Profile, id string, changes map[string]any, audit model.AuditDescriptor) error {
	if s.PatchFn != nil {
		return s.PatchFn(ctx, actor, id, changes, audit)
	}
	return nil
}

// DeleteOrder executes configured delete handler.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, actor *model.Profile, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, actor, id)
	}
	return nil
}

// OrderHistory returns the preconfigured audit trail.
func (s OrderFacadeStub) OrderHistory(ctx context.Context, actor *model.Profile, id string) ([]model.AuditEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, actor, id)
	}
	return []model.AuditEntry{{ID: 1, OrderID: id, Field: model.FieldStatus}}, nil
}

// VendorFacadeStub simulates vendor directory operations.
type VendorFacadeStub struct {
	VendorsFn   func(context.Context, *model.Profile) ([]model.Profile, error)
	CreateFn    func(context.Context, *model.Profile, string, string, string) (*model.Profile, error)
	SetActiveFn func(context.Context, *model.Profile, string, bool) error
}

// Vendors returns the preconfigured directory.
func (s VendorFacadeStub) Vendors(ctx context.Context, actor *model.Profile) ([]model.Profile, error) {
	if s.VendorsFn != nil {
		return s.VendorsFn(ctx, actor)
	}
	return []model.Profile{{ID: "vendor-1", Role: model.RoleVendor, VendorName: "Acme", IsActive: true}}, nil
}

// CreateVendor delegates to the override or echoes a vendor profile.
func (s VendorFacadeStub) CreateVendor(ctx context.Context, actor *model.Profile, email, password, vendorName string) (*model.Profile, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, actor, email, password, vendorName)
	}
	return &model.Profile{ID: "vendor-1", Email: email, Role: model.RoleVendor, VendorName: vendorName, IsActive: true}, nil
}

// SetVendorActive executes configured toggle handler.
func (s VendorFacadeStub) SetVendorActive(ctx context.Context, actor *model.Profile, id string, active bool) error {
	if s.SetActiveFn != nil {
		return s.SetActiveFn(ctx, actor, id, active)
	}
	return nil
}

// NotifyCall stores information about Notify invocations.
type NotifyCall struct {
	Subject string
	Body    string
}

// ImportFacadeStub simulates shop import and mailing list operations.
type ImportFacadeStub struct {
	ImportFn func(context.Context, *model.Profile, int) (*usecase.ImportSummary, error)
	NotifyFn func(context.Context, string, string) error

	mu      sync.Mutex
	Notices []NotifyCall
}

// ImportOrders returns the preconfigured summary.
func (s *ImportFacadeStub) ImportOrders(ctx context.Context, actor *model.Profile, sinceDays int) (*usecase.ImportSummary, error) {
	if s.ImportFn != nil {
		return s.ImportFn(ctx, actor, sinceDays)
	}
	return &usecase.ImportSummary{Imported: 1, Skipped: 0, Total: 1}, nil
}

// Notify records the message or delegates to the override.
func (s *ImportFacadeStub) Notify(ctx context.Context, subject, body string) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, subject, body)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notices = append(s.Notices, NotifyCall{Subject: subject, Body: body})
	return nil
}

// SheetFacadeStub aggregates all facade stubs for router level tests.
type SheetFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	VendorFacadeStub
	*ImportFacadeStub
}

// NewSheetFacadeStub constructs an aggregate stub with defaults.
func NewSheetFacadeStub() *SheetFacadeStub {
	return &SheetFacadeStub{ImportFacadeStub: &ImportFacadeStub{}}
}
