package app

import (
	"context"

	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// Notifier delivers operational messages to the admin mailing list.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// SheetFacade aggregates the use cases behind the HTTP surface.
type SheetFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	vendors  *usecase.VendorUseCase
	importer *usecase.ImportUseCase
	notifier Notifier
}

// NewSheetFacade constructs SheetFacade.
func NewSheetFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, vendors *usecase.VendorUseCase, importer *usecase.ImportUseCase, notifier Notifier) *SheetFacade {
	return &SheetFacade{auth: auth, orders: orders, vendors: vendors, importer: importer, notifier: notifier}
}

func (f *SheetFacade) Register(ctx context.Context, email, password string) (*model.Profile, string, error) {
	return f.auth.Register(ctx, email, password)
}

func (f *SheetFacade) Authenticate(ctx context.Context, email, password string) (*model.Profile, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *SheetFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *SheetFacade) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	return f.auth.ProfileByID(ctx, id)
}

func (f *SheetFacade) Orders(ctx context.Context, actor *model.Profile) ([]model.Order, error) {
	return f.orders.List(ctx, actor)
}

func (f *SheetFacade) CreateOrder(ctx context.Context, actor *model.Profile, fields map[string]any) (*model.Order, error) {
	return f.orders.Create(ctx, actor, fields)
}

func (f *SheetFacade) PatchOrder(ctx context.Context, actor *model.Profile, id string, changes map[string]any, audit model.AuditDescriptor) error {
	return f.orders.Patch(ctx, actor, id, changes, audit)
}

func (f *SheetFacade) DeleteOrder(ctx context.Context, actor *model.Profile, id string) error {
	return f.orders.Delete(ctx, actor, id)
}

func (f *SheetFacade) OrderHistory(ctx context.Context, actor *model.Profile, id string) ([]model.AuditEntry, error) {
	return f.orders.History(ctx, actor, id)
}

func (f *SheetFacade) Vendors(ctx context.Context, actor *model.Profile) ([]model.Profile, error) {
	return f.vendors.ListVendors(ctx, actor)
}

func (f *SheetFacade) CreateVendor(ctx context.Context, actor *model.Profile, email, password, vendorName string) (*model.Profile, error) {
	return f.vendors.CreateVendor(ctx, actor, email, password, vendorName)
}

func (f *SheetFacade) SetVendorActive(ctx context.Context, actor *model.Profile, id string, active bool) error {
	return f.vendors.SetActive(ctx, actor, id, active)
}

func (f *SheetFacade) ImportOrders(ctx context.Context, actor *model.Profile, sinceDays int) (*usecase.ImportSummary, error) {
	return f.importer.Run(ctx, actor, sinceDays)
}

func (f *SheetFacade) Notify(ctx context.Context, subject, body string) error {
	return f.notifier.Send(ctx, subject, body)
}
