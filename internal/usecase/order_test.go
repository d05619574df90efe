package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
)

type stubOrderRepository struct {
	createFn       func(context.Context, model.Order) (*model.Order, error)
	createBatchFn  func(context.Context, []model.Order) (int, error)
	getFn          func(context.Context, string) (*model.Order, error)
	listFn         func(context.Context) ([]model.Order, error)
	listByVendorFn func(context.Context, string) ([]model.Order, error)
	updateFn       func(context.Context, string, map[model.Field]any) error
	deleteFn       func(context.Context, string) error
	existingFn     func(context.Context, []string) (map[string]struct{}, error)
}

func (s stubOrderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	return s.createFn(ctx, order)
}

func (s stubOrderRepository) CreateBatch(ctx context.Context, orders []model.Order) (int, error) {
	return s.createBatchFn(ctx, orders)
}

func (s stubOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return s.getFn(ctx, id)
}

func (s stubOrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return s.listFn(ctx)
}

func (s stubOrderRepository) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	return s.listByVendorFn(ctx, vendorID)
}

func (s stubOrderRepository) Update(ctx context.Context, id string, changes map[model.Field]any) error {
	return s.updateFn(ctx, id, changes)
}

func (s stubOrderRepository) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s stubOrderRepository) ExistingOrderNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error) {
	return s.existingFn(ctx, numbers)
}

type stubAuditRepository struct {
	appendFn func(context.Context, model.AuditEntry) error
	listFn   func(context.Context, string) ([]model.AuditEntry, error)
}

func (s stubAuditRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	if s.appendFn != nil {
		return s.appendFn(ctx, entry)
	}
	return nil
}

func (s stubAuditRepository) ListByOrder(ctx context.Context, orderID string) ([]model.AuditEntry, error) {
	if s.listFn != nil {
		return s.listFn(ctx, orderID)
	}
	return nil, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var (
	adminActor  = &model.Profile{ID: "admin-1", Role: model.RoleAdmin, IsActive: true}
	vendorActor = &model.Profile{ID: "vendor-1", Role: model.RoleVendor, IsActive: true}
)

func TestOrderUseCaseListScopesByRole(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		listFn: func(context.Context) ([]model.Order, error) {
			return []model.Order{{ID: "a"}, {ID: "b"}}, nil
		},
		listByVendorFn: func(_ context.Context, vendorID string) ([]model.Order, error) {
			if vendorID != "vendor-1" {
				t.Fatalf("unexpected vendor filter %q", vendorID)
			}
			return []model.Order{{ID: "a"}}, nil
		},
	}, stubAuditRepository{}, testLogger())

	all, err := uc.List(context.Background(), adminActor)
	if err != nil || len(all) != 2 {
		t.Fatalf("expected full sheet for admin, got %v %v", all, err)
	}

	mine, err := uc.List(context.Background(), vendorActor)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected scoped list for vendor, got %v %v", mine, err)
	}
}

func TestOrderUseCaseCreateForbiddenForVendor(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		createFn: func(context.Context, model.Order) (*model.Order, error) {
			t.Fatal("create should not be called")
			return nil, nil
		},
	}, stubAuditRepository{}, testLogger())

	if _, err := uc.Create(context.Background(), vendorActor, nil); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOrderUseCaseCreateDefaultsAndDerivesURL(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		createFn: func(_ context.Context, order model.Order) (*model.Order, error) {
			return &order, nil
		},
	}, stubAuditRepository{}, testLogger())

	order, err := uc.Create(context.Background(), adminActor, map[string]any{
		"carrier":         "UPS",
		"tracking_number": "1Z999AA10123456784",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != model.OrderStatusPreShipment {
		t.Fatalf("expected default status, got %q", order.Status)
	}
	if order.CreatedBy != "admin-1" {
		t.Fatalf("expected creator recorded, got %q", order.CreatedBy)
	}
	if order.TrackingURL != "https://www.ups.com/track?tracknum=1Z999AA10123456784" {
		t.Fatalf("expected derived URL, got %q", order.TrackingURL)
	}
}

func TestOrderUseCaseCreateManualURLOnlyForOther(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		createFn: func(_ context.Context, order model.Order) (*model.Order, error) {
			return &order, nil
		},
	}, stubAuditRepository{}, testLogger())

	kept, err := uc.Create(context.Background(), adminActor, map[string]any{
		"carrier":      "Other",
		"tracking_url": "https://couriers.example/x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if kept.TrackingURL != "https://couriers.example/x" {
		t.Fatalf("expected manual URL kept for Other, got %q", kept.TrackingURL)
	}

	dropped, err := uc.Create(context.Background(), adminActor, map[string]any{
		"carrier":      "DHL",
		"tracking_url": "https://couriers.example/x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dropped.TrackingURL != "" {
		t.Fatalf("expected manual URL dropped for DHL without number, got %q", dropped.TrackingURL)
	}
}

func TestOrderUseCaseCreateValidatesProspectiveRow(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		createFn: func(context.Context, model.Order) (*model.Order, error) {
			t.Fatal("create should not be called for invalid row")
			return nil, nil
		},
	}, stubAuditRepository{}, testLogger())

	_, err := uc.Create(context.Background(), adminActor, map[string]any{"status": "shipped"})
	if !errors.Is(err, domainErrors.ErrShippedNeedsTracking) {
		t.Fatalf("expected ErrShippedNeedsTracking, got %v", err)
	}
}

func patchFixtures(t *testing.T, existing model.Order) (*OrderUseCase, *[]map[model.Field]any, *[]model.AuditEntry) {
	t.Helper()
	updates := &[]map[model.Field]any{}
	entries := &[]model.AuditEntry{}
	uc := NewOrderUseCase(stubOrderRepository{
		getFn: func(_ context.Context, id string) (*model.Order, error) {
			if id != existing.ID {
				return nil, domainErrors.ErrNotFound
			}
			row := existing
			return &row, nil
		},
		updateFn: func(_ context.Context, _ string, changes map[model.Field]any) error {
			*updates = append(*updates, changes)
			return nil
		},
	}, stubAuditRepository{
		appendFn: func(_ context.Context, entry model.AuditEntry) error {
			*entries = append(*entries, entry)
			return nil
		},
	}, testLogger())
	return uc, updates, entries
}

func TestOrderUseCasePatchNotFound(t *testing.T) {
	uc, _, _ := patchFixtures(t, model.Order{ID: "o1"})
	err := uc.Patch(context.Background(), adminActor, "missing", map[string]any{"carrier": "DHL"}, model.AuditDescriptor{})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderUseCasePatchVendorMustBeAssignee(t *testing.T) {
	uc, updates, _ := patchFixtures(t, model.Order{ID: "o1", AssignedVendorID: "vendor-2"})
	err := uc.Patch(context.Background(), vendorActor, "o1", map[string]any{"carrier": "DHL"}, model.AuditDescriptor{})
	if !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(*updates) != 0 {
		t.Fatal("no write expected")
	}
}

func TestOrderUseCasePatchDropsVendorForbiddenFields(t *testing.T) {
	uc, updates, _ := patchFixtures(t, model.Order{ID: "o1", AssignedVendorID: "vendor-1", Status: model.OrderStatusPreShipment})

	err := uc.Patch(context.Background(), vendorActor, "o1", map[string]any{
		"shipping_address": "x",
		"carrier":          "DHL",
	}, model.AuditDescriptor{Field: model.FieldCarrier, OldValue: "", NewValue: "DHL"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	if len(*updates) != 1 {
		t.Fatalf("expected one update, got %d", len(*updates))
	}
	changes := (*updates)[0]
	if _, ok := changes[model.FieldShippingAddress]; ok {
		t.Fatalf("shipping_address must be dropped for vendors: %v", changes)
	}
	if changes[model.FieldCarrier] != "DHL" {
		t.Fatalf("expected carrier persisted, got %v", changes)
	}
}

func TestOrderUseCasePatchRejectsInvalidProspectiveRow(t *testing.T) {
	uc, updates, entries := patchFixtures(t, model.Order{ID: "o1", Status: model.OrderStatusShipped, Carrier: model.CarrierUPS, TrackingNumber: "1Z"})

	// Clearing the tracking number while the row is shipped re-validates the
	// shipped rule against the existing status.
	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{"tracking_number": ""}, model.AuditDescriptor{Field: model.FieldTrackingNumber, OldValue: "1Z", NewValue: ""})
	if !errors.Is(err, domainErrors.ErrShippedNeedsTracking) {
		t.Fatalf("expected ErrShippedNeedsTracking, got %v", err)
	}
	if len(*updates) != 0 {
		t.Fatal("validation violation must abort before any write")
	}
	if len(*entries) != 0 {
		t.Fatal("no audit entry for rejected patch")
	}

	err = uc.Patch(context.Background(), adminActor, "o1", map[string]any{"status": "issue"}, model.AuditDescriptor{})
	if !errors.Is(err, domainErrors.ErrIssueNeedsReason) {
		t.Fatalf("expected ErrIssueNeedsReason, got %v", err)
	}
}

func TestOrderUseCasePatchRecomputesTrackingURL(t *testing.T) {
	uc, updates, _ := patchFixtures(t, model.Order{ID: "o1", Carrier: model.CarrierUPS, TrackingNumber: "1Z999AA10123456784", Status: model.OrderStatusPreShipment})

	// The client-supplied URL for a known carrier is never trusted.
	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{
		"tracking_number": "1Z000",
		"tracking_url":    "https://spoofed.example",
	}, model.AuditDescriptor{})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	changes := (*updates)[0]
	if changes[model.FieldTrackingURL] != "https://www.ups.com/track?tracknum=1Z000" {
		t.Fatalf("expected server-derived URL, got %v", changes[model.FieldTrackingURL])
	}
}

func TestOrderUseCasePatchKeepsManualURLForOther(t *testing.T) {
	uc, updates, _ := patchFixtures(t, model.Order{ID: "o1", Carrier: model.CarrierOther, Status: model.OrderStatusPreShipment})

	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{
		"tracking_url": "https://couriers.example/x",
	}, model.AuditDescriptor{})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	changes := (*updates)[0]
	if changes[model.FieldTrackingURL] != "https://couriers.example/x" {
		t.Fatalf("expected manual URL passed through, got %v", changes)
	}
}

func TestOrderUseCasePatchNeverClearsUnderivableURL(t *testing.T) {
	uc, updates, _ := patchFixtures(t, model.Order{ID: "o1", Carrier: model.CarrierDHL, TrackingURL: "https://old.example", Status: model.OrderStatusPreShipment})

	// No tracking number means nothing can be derived; the stored URL stays.
	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{
		"tracking_url": "https://client.example",
	}, model.AuditDescriptor{})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	changes := (*updates)[0]
	if _, ok := changes[model.FieldTrackingURL]; ok {
		t.Fatalf("tracking_url must be dropped, not cleared: %v", changes)
	}
}

func TestOrderUseCasePatchAuditOnlyOnChange(t *testing.T) {
	uc, _, entries := patchFixtures(t, model.Order{ID: "o1", Status: model.OrderStatusPreShipment})

	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{"customer_name": "Jess"},
		model.AuditDescriptor{Field: model.FieldCustomerName, OldValue: "Jess", NewValue: "Jess"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if len(*entries) != 0 {
		t.Fatalf("no-op audit descriptor must not append: %v", *entries)
	}

	err = uc.Patch(context.Background(), adminActor, "o1", map[string]any{"customer_name": "Sam"},
		model.AuditDescriptor{Field: model.FieldCustomerName, OldValue: "Jess", NewValue: "Sam"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if len(*entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(*entries))
	}
	entry := (*entries)[0]
	if entry.Field != model.FieldCustomerName || entry.OldValue != "Jess" || entry.NewValue != "Sam" || entry.UpdatedBy != "admin-1" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestOrderUseCasePatchAuditFailureDoesNotFailUpdate(t *testing.T) {
	updated := false
	uc := NewOrderUseCase(stubOrderRepository{
		getFn: func(context.Context, string) (*model.Order, error) {
			return &model.Order{ID: "o1", Status: model.OrderStatusPreShipment}, nil
		},
		updateFn: func(context.Context, string, map[model.Field]any) error {
			updated = true
			return nil
		},
	}, stubAuditRepository{
		appendFn: func(context.Context, model.AuditEntry) error {
			return errors.New("audit table unavailable")
		},
	}, testLogger())

	err := uc.Patch(context.Background(), adminActor, "o1", map[string]any{"customer_name": "Sam"},
		model.AuditDescriptor{Field: model.FieldCustomerName, OldValue: "", NewValue: "Sam"})
	if err != nil {
		t.Fatalf("audit failure must not fail the patch: %v", err)
	}
	if !updated {
		t.Fatal("expected the update to be written")
	}
}

func TestOrderUseCaseDeleteOwnership(t *testing.T) {
	deleted := []string{}
	uc := NewOrderUseCase(stubOrderRepository{
		getFn: func(_ context.Context, id string) (*model.Order, error) {
			return &model.Order{ID: id, CreatedBy: "vendor-2"}, nil
		},
		deleteFn: func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}, stubAuditRepository{}, testLogger())

	if err := uc.Delete(context.Background(), vendorActor, "o1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-creator vendor, got %v", err)
	}
	if len(deleted) != 0 {
		t.Fatal("order must remain after forbidden delete")
	}

	if err := uc.Delete(context.Background(), adminActor, "o1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatal("expected admin delete to go through")
	}
}

func TestOrderUseCaseHistoryAuthz(t *testing.T) {
	uc := NewOrderUseCase(stubOrderRepository{
		getFn: func(_ context.Context, id string) (*model.Order, error) {
			return &model.Order{ID: id, AssignedVendorID: "vendor-2"}, nil
		},
	}, stubAuditRepository{
		listFn: func(_ context.Context, orderID string) ([]model.AuditEntry, error) {
			return []model.AuditEntry{{OrderID: orderID, Field: model.FieldStatus}}, nil
		},
	}, testLogger())

	if _, err := uc.History(context.Background(), vendorActor, "o1"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-assignee, got %v", err)
	}

	entries, err := uc.History(context.Background(), adminActor, "o1")
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected history for admin, got %v %v", entries, err)
	}
}
