package usecase

import (
	"context"
	"log/slog"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/domain/repository"
	"github.com/shipsheet/shipsheet/internal/tracking"
)

// OrderUseCase encapsulates order lifecycle logic: role-scoped listing,
// creation, field-by-field patching with re-validation, and deletion.
type OrderUseCase struct {
	orders repository.OrderRepository
	audit  repository.AuditRepository
	logger *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, audit repository.AuditRepository, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, audit: audit, logger: logger}
}

// List returns orders visible to the actor, most recently updated first.
// Admins see the whole sheet, vendors only rows assigned to them.
func (u *OrderUseCase) List(ctx context.Context, actor *model.Profile) ([]model.Order, error) {
	if actor.Role == model.RoleAdmin {
		return u.orders.List(ctx)
	}
	return u.orders.ListByVendor(ctx, actor.ID)
}

// Create inserts a new order from a partial field map. Admin only. Status
// defaults to pre_shipment; the tracking URL is derived server-side.
func (u *OrderUseCase) Create(ctx context.Context, actor *model.Profile, fields map[string]any) (*model.Order, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}

	draft := model.Order{
		Status:    model.OrderStatusPreShipment,
		CreatedBy: actor.ID,
	}
	for field, value := range model.FilterEditable(actor.Role, fields) {
		if err := model.ApplyChange(&draft, field, value); err != nil {
			return nil, err
		}
	}

	// A derivable URL always wins; a manual URL survives only for carrier Other.
	if url, ok := tracking.BuildURL(draft.Carrier, draft.TrackingNumber); ok {
		draft.TrackingURL = url
	} else if draft.Carrier != model.CarrierOther {
		draft.TrackingURL = ""
	}

	if err := ValidateOrder(draft); err != nil {
		return nil, err
	}

	return u.orders.Create(ctx, draft)
}

// Patch applies a change-set to one order. The merged prospective record is
// re-validated before anything is written; a violation aborts the whole
// change-set. The audit descriptor records the field the user directly
// edited, and only when its value actually changed. Audit append is
// best-effort and never rolls back the update.
func (u *OrderUseCase) Patch(ctx context.Context, actor *model.Profile, id string, changes map[string]any, audit model.AuditDescriptor) error {
	existing, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role == model.RoleVendor && existing.AssignedVendorID != actor.ID {
		return domainErrors.ErrForbidden
	}

	filtered := model.FilterEditable(actor.Role, changes)

	prospective := *existing
	for field, value := range filtered {
		if err := model.ApplyChange(&prospective, field, value); err != nil {
			return err
		}
	}

	if err := ValidateOrder(prospective); err != nil {
		return err
	}

	// Recompute the tracking URL from the prospective carrier and number.
	// Client-supplied URLs are trusted only for carrier Other; when nothing
	// can be derived the stored URL is left untouched, not cleared.
	if url, ok := tracking.BuildURL(prospective.Carrier, prospective.TrackingNumber); ok {
		prospective.TrackingURL = url
		filtered[model.FieldTrackingURL] = url
	} else if prospective.Carrier != model.CarrierOther {
		delete(filtered, model.FieldTrackingURL)
	}

	update := make(map[model.Field]any, len(filtered))
	for field := range filtered {
		update[field] = prospective.FieldValue(field)
	}
	if err := u.orders.Update(ctx, id, update); err != nil {
		return err
	}

	if audit.Changed() {
		entry := model.AuditEntry{
			OrderID:   id,
			UpdatedBy: actor.ID,
			Field:     audit.Field,
			OldValue:  model.Stringify(audit.OldValue),
			NewValue:  model.Stringify(audit.NewValue),
		}
		if err := u.audit.Append(ctx, entry); err != nil {
			u.logger.Warn("audit append failed",
				slog.String("order_id", id),
				slog.String("field", string(audit.Field)),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// Delete removes an order. Admins delete anything; a vendor may delete only
// orders they originally created, regardless of current assignment.
func (u *OrderUseCase) Delete(ctx context.Context, actor *model.Profile, id string) error {
	existing, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role == model.RoleVendor && existing.CreatedBy != actor.ID {
		return domainErrors.ErrForbidden
	}

	return u.orders.Delete(ctx, id)
}

// History returns the audit trail of one order, visible to admins and the
// order's current assignee.
func (u *OrderUseCase) History(ctx context.Context, actor *model.Profile, id string) ([]model.AuditEntry, error) {
	existing, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == model.RoleVendor && existing.AssignedVendorID != actor.ID {
		return nil, domainErrors.ErrForbidden
	}

	return u.audit.ListByOrder(ctx, id)
}
