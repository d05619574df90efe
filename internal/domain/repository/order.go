package repository

import (
	"context"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	CreateBatch(ctx context.Context, orders []model.Order) (int, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error)
	Update(ctx context.Context, id string, changes map[model.Field]any) error
	Delete(ctx context.Context, id string) error
	ExistingOrderNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error)
}
