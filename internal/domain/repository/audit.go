package repository

import (
	"context"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// AuditRepository provides access to the append-only order change log.
type AuditRepository interface {
	Append(ctx context.Context, entry model.AuditEntry) error
	ListByOrder(ctx context.Context, orderID string) ([]model.AuditEntry, error)
}
