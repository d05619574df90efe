package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/domain/repository"
)

const defaultImportSinceDays = 30

// OrderSource pulls open orders from an external shop.
type OrderSource interface {
	FetchUnfulfilled(ctx context.Context, sinceDays int) ([]model.ImportedOrder, error)
}

// Notifier delivers operational messages to the admin mailing list.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// ImportSummary reports one import run.
type ImportSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// ImportUseCase pulls unfulfilled shop orders into the sheet, skipping order
// numbers that already exist.
type ImportUseCase struct {
	orders   repository.OrderRepository
	source   OrderSource
	notifier Notifier
	logger   *slog.Logger
}

// NewImportUseCase constructs ImportUseCase.
func NewImportUseCase(orders repository.OrderRepository, source OrderSource, notifier Notifier, logger *slog.Logger) *ImportUseCase {
	return &ImportUseCase{orders: orders, source: source, notifier: notifier, logger: logger}
}

// Run imports orders created within the last sinceDays days. Admin only.
// Imported rows start as pre_shipment with all tracking fields empty.
func (u *ImportUseCase) Run(ctx context.Context, actor *model.Profile, sinceDays int) (*ImportSummary, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	if sinceDays <= 0 {
		sinceDays = defaultImportSinceDays
	}

	fetched, err := u.source.FetchUnfulfilled(ctx, sinceDays)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, 0, len(fetched))
	for _, row := range fetched {
		if row.OrderNumber != "" {
			numbers = append(numbers, row.OrderNumber)
		}
	}

	existing := map[string]struct{}{}
	if len(numbers) > 0 {
		existing, err = u.orders.ExistingOrderNumbers(ctx, numbers)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(fetched))
	drafts := make([]model.Order, 0, len(fetched))
	for _, row := range fetched {
		if row.OrderNumber == "" {
			continue
		}
		if _, dup := existing[row.OrderNumber]; dup {
			continue
		}
		if _, dup := seen[row.OrderNumber]; dup {
			continue
		}
		seen[row.OrderNumber] = struct{}{}
		drafts = append(drafts, model.Order{
			OrderNumber:     row.OrderNumber,
			CustomerName:    row.CustomerName,
			ShippingAddress: row.ShippingAddress,
			Status:          model.OrderStatusPreShipment,
			CreatedBy:       actor.ID,
		})
	}

	imported := 0
	if len(drafts) > 0 {
		imported, err = u.orders.CreateBatch(ctx, drafts)
		if err != nil {
			return nil, err
		}
	}

	summary := &ImportSummary{
		Imported: imported,
		Skipped:  len(fetched) - imported,
		Total:    len(fetched),
	}

	body := fmt.Sprintf("Imported %d new orders (%d skipped of %d fetched).",
		summary.Imported, summary.Skipped, summary.Total)
	if err := u.notifier.Send(ctx, "Order import finished", body); err != nil {
		u.logger.Warn("import notification failed", slog.String("error", err.Error()))
	}

	return summary, nil
}
