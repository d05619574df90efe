package handlers

import (
	"context"

	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (*model.Profile, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.Profile, string, error)
	ParseToken(token string) (string, error)
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

// OrderFacade encapsulates sheet operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, actor *model.Profile) ([]model.Order, error)
	CreateOrder(ctx context.Context, actor *model.Profile, fields map[string]any) (*model.Order, error)
	PatchOrder(ctx context.Context, actor *model.Profile, id string, changes map[string]any, audit model.AuditDescriptor) error
	DeleteOrder(ctx context.Context, actor *model.Profile, id string) error
	OrderHistory(ctx context.Context, actor *model.Profile, id string) ([]model.AuditEntry, error)
}

// VendorFacade provides vendor directory management.
type VendorFacade interface {
	Vendors(ctx context.Context, actor *model.Profile) ([]model.Profile, error)
	CreateVendor(ctx context.Context, actor *model.Profile, email, password, vendorName string) (*model.Profile, error)
	SetVendorActive(ctx context.Context, actor *model.Profile, id string, active bool) error
}

// ImportFacade pulls shop orders into the sheet and reaches the mailing list.
type ImportFacade interface {
	ImportOrders(ctx context.Context, actor *model.Profile, sinceDays int) (*usecase.ImportSummary, error)
	Notify(ctx context.Context, subject, body string) error
}

// SheetFacade aggregates the full set of operations used across handlers.
type SheetFacade interface {
	AuthFacade
	OrderFacade
	VendorFacade
	ImportFacade
}
