package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

type cellWrite struct {
	field model.Field
	value string
}

type fakeGrid struct {
	writes []cellWrite
}

func (g *fakeGrid) SetCell(field model.Field, value string) {
	g.writes = append(g.writes, cellWrite{field: field, value: value})
}

type patchCall struct {
	orderID string
	changes map[model.Field]string
	audit   model.AuditDescriptor
}

type fakeStore struct {
	err   error
	calls []patchCall
}

func (s *fakeStore) Patch(_ context.Context, orderID string, changes map[model.Field]string, audit model.AuditDescriptor) error {
	s.calls = append(s.calls, patchCall{orderID: orderID, changes: changes, audit: audit})
	return s.err
}

type fakeAlerts struct {
	messages []string
}

func (a *fakeAlerts) Alert(message string) {
	a.messages = append(a.messages, message)
}

func newHarness() (*Reconciler, *fakeGrid, *fakeStore, *fakeAlerts) {
	grid := &fakeGrid{}
	store := &fakeStore{}
	alerts := &fakeAlerts{}
	return New(grid, store, alerts), grid, store, alerts
}

func TestHandleCellEditNoOpOnEqualValues(t *testing.T) {
	r, grid, store, alerts := newHarness()
	row := model.Order{ID: "o1", Status: model.OrderStatusPreShipment}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldCarrier, Old: "DHL", New: "DHL",
	})

	if outcome != OutcomeNoOp {
		t.Fatalf("expected no-op, got %v", outcome)
	}
	if len(store.calls) != 0 || len(grid.writes) != 0 || len(alerts.messages) != 0 {
		t.Fatal("no side effects expected for a no-op edit")
	}
}

func TestHandleCellEditIgnoresSystemWrites(t *testing.T) {
	r, _, store, _ := newHarness()
	row := model.Order{ID: "o1", Status: model.OrderStatusPreShipment}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: SystemEdit, Field: model.FieldTrackingURL, Old: "", New: "https://example.com",
	})

	if outcome != OutcomeNoOp {
		t.Fatalf("expected system write to be ignored, got %v", outcome)
	}
	if len(store.calls) != 0 {
		t.Fatal("system writes must not reach the store")
	}
}

func TestHandleCellEditRejectsShippedWithoutTracking(t *testing.T) {
	r, grid, store, alerts := newHarness()
	// Row snapshot after the user cleared the tracking number.
	row := model.Order{
		ID:      "o1",
		Status:  model.OrderStatusShipped,
		Carrier: model.CarrierUPS,
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldTrackingNumber, Old: "1Z999AA10123456784", New: "",
	})

	if outcome != OutcomeRejected {
		t.Fatalf("expected rejection, got %v", outcome)
	}
	if len(store.calls) != 0 {
		t.Fatal("rejected edit must not reach the store")
	}
	if row.TrackingNumber != "1Z999AA10123456784" {
		t.Fatalf("expected cell reverted, got %q", row.TrackingNumber)
	}
	if len(grid.writes) != 1 || grid.writes[0] != (cellWrite{model.FieldTrackingNumber, "1Z999AA10123456784"}) {
		t.Fatalf("unexpected grid writes: %v", grid.writes)
	}
	if len(alerts.messages) != 1 {
		t.Fatalf("expected one alert, got %v", alerts.messages)
	}
}

func TestHandleCellEditRejectsShippedStatusWithoutCarrier(t *testing.T) {
	r, _, store, _ := newHarness()
	row := model.Order{ID: "o1", Status: model.OrderStatusShipped}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldStatus, Old: "pre_shipment", New: "shipped",
	})

	if outcome != OutcomeRejected {
		t.Fatalf("expected rejection, got %v", outcome)
	}
	if row.Status != model.OrderStatusPreShipment {
		t.Fatalf("expected status reverted, got %q", row.Status)
	}
	if len(store.calls) != 0 {
		t.Fatal("rejected edit must not reach the store")
	}
}

func TestHandleCellEditAutoRepairsIssueReason(t *testing.T) {
	r, grid, store, alerts := newHarness()
	row := model.Order{ID: "o1", Status: model.OrderStatusIssue}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldStatus, Old: "pre_shipment", New: "issue",
	})

	if outcome != OutcomeSaved {
		t.Fatalf("expected save, got %v", outcome)
	}
	if row.IssueReason != model.IssueReasonOther {
		t.Fatalf("expected auto-repaired reason, got %q", row.IssueReason)
	}
	if len(grid.writes) != 1 || grid.writes[0] != (cellWrite{model.FieldIssueReason, model.IssueReasonOther}) {
		t.Fatalf("unexpected grid writes: %v", grid.writes)
	}
	if len(alerts.messages) != 1 || !strings.Contains(alerts.messages[0], "Set to Other") {
		t.Fatalf("unexpected alerts: %v", alerts.messages)
	}

	if len(store.calls) != 1 {
		t.Fatalf("expected one patch, got %d", len(store.calls))
	}
	call := store.calls[0]
	if call.changes[model.FieldStatus] != "issue" || call.changes[model.FieldIssueReason] != model.IssueReasonOther {
		t.Fatalf("unexpected change-set: %v", call.changes)
	}
	// Audit describes the user's edit, never the cascade.
	if call.audit.Field != model.FieldStatus {
		t.Fatalf("unexpected audit field %q", call.audit.Field)
	}
	if call.audit.OldValue != "pre_shipment" || call.audit.NewValue != "issue" {
		t.Fatalf("unexpected audit values: %+v", call.audit)
	}
}

func TestHandleCellEditRejectsOtherEditWhileIssueUnreasoned(t *testing.T) {
	r, _, store, alerts := newHarness()
	row := model.Order{
		ID:             "o1",
		Status:         model.OrderStatusIssue,
		TrackingNumber: "abc",
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldTrackingNumber, Old: "", New: "abc",
	})

	if outcome != OutcomeRejected {
		t.Fatalf("expected rejection, got %v", outcome)
	}
	if row.TrackingNumber != "" {
		t.Fatalf("expected cell reverted, got %q", row.TrackingNumber)
	}
	if len(store.calls) != 0 {
		t.Fatal("rejected edit must not reach the store")
	}
	if len(alerts.messages) != 1 {
		t.Fatalf("expected one alert, got %v", alerts.messages)
	}
}

func TestHandleCellEditDerivesTrackingURL(t *testing.T) {
	r, grid, store, _ := newHarness()
	row := model.Order{
		ID:             "o1",
		Status:         model.OrderStatusPreShipment,
		Carrier:        model.CarrierUPS,
		TrackingNumber: "1Z999AA10123456784",
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldTrackingNumber, Old: "", New: "1Z999AA10123456784",
	})

	if outcome != OutcomeSaved {
		t.Fatalf("expected save, got %v", outcome)
	}
	wantURL := "https://www.ups.com/track?tracknum=1Z999AA10123456784"
	if row.TrackingURL != wantURL {
		t.Fatalf("expected derived URL on row, got %q", row.TrackingURL)
	}
	if len(grid.writes) != 1 || grid.writes[0] != (cellWrite{model.FieldTrackingURL, wantURL}) {
		t.Fatalf("unexpected grid writes: %v", grid.writes)
	}
	call := store.calls[0]
	if call.changes[model.FieldTrackingURL] != wantURL {
		t.Fatalf("expected derived URL in change-set, got %v", call.changes)
	}
	if call.audit.Field != model.FieldTrackingNumber {
		t.Fatalf("audit must describe the edited field, got %q", call.audit.Field)
	}
}

func TestHandleCellEditSkipsSilentWriteWhenURLUnchanged(t *testing.T) {
	r, grid, store, _ := newHarness()
	url := "https://www.ups.com/track?tracknum=1Z999AA10123456784"
	row := model.Order{
		ID:             "o1",
		Status:         model.OrderStatusPreShipment,
		Carrier:        model.CarrierUPS,
		TrackingNumber: "1Z999AA10123456784",
		TrackingURL:    url,
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldCarrier, Old: "DHL", New: "UPS",
	})

	if outcome != OutcomeSaved {
		t.Fatalf("expected save, got %v", outcome)
	}
	if len(grid.writes) != 0 {
		t.Fatalf("no silent write expected when URL unchanged: %v", grid.writes)
	}
	if store.calls[0].changes[model.FieldTrackingURL] != url {
		t.Fatalf("URL still belongs in the change-set: %v", store.calls[0].changes)
	}
}

func TestHandleCellEditLeavesManualURLForOtherCarrier(t *testing.T) {
	r, grid, store, _ := newHarness()
	row := model.Order{
		ID:             "o1",
		Status:         model.OrderStatusPreShipment,
		Carrier:        model.CarrierOther,
		TrackingNumber: "XYZ-1",
		TrackingURL:    "https://couriers.example/XYZ-1",
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldTrackingNumber, Old: "", New: "XYZ-1",
	})

	if outcome != OutcomeSaved {
		t.Fatalf("expected save, got %v", outcome)
	}
	if len(grid.writes) != 0 {
		t.Fatalf("no derivation expected for Other carrier: %v", grid.writes)
	}
	if _, ok := store.calls[0].changes[model.FieldTrackingURL]; ok {
		t.Fatalf("manual URL must not be overwritten: %v", store.calls[0].changes)
	}
	if row.TrackingURL != "https://couriers.example/XYZ-1" {
		t.Fatalf("manual URL touched: %q", row.TrackingURL)
	}
}

func TestHandleCellEditRevertsEverythingOnStoreFailure(t *testing.T) {
	r, grid, store, alerts := newHarness()
	store.err = errors.New("order not found")
	row := model.Order{
		ID:             "o1",
		Status:         model.OrderStatusPreShipment,
		Carrier:        model.CarrierUPS,
		TrackingNumber: "1Z999AA10123456784",
		TrackingURL:    "https://www.ups.com/track?tracknum=OLD",
	}

	outcome := r.HandleCellEdit(context.Background(), &row, Edit{
		Origin: UserEdit, Field: model.FieldTrackingNumber, Old: "OLD", New: "1Z999AA10123456784",
	})

	if outcome != OutcomeFailed {
		t.Fatalf("expected failure, got %v", outcome)
	}
	if row.TrackingNumber != "OLD" {
		t.Fatalf("edited cell not reverted: %q", row.TrackingNumber)
	}
	if row.TrackingURL != "https://www.ups.com/track?tracknum=OLD" {
		t.Fatalf("derived cell not reverted: %q", row.TrackingURL)
	}
	// One optimistic write plus two reverts, newest first.
	if len(grid.writes) != 3 {
		t.Fatalf("unexpected grid writes: %v", grid.writes)
	}
	last := grid.writes[len(grid.writes)-1]
	if last != (cellWrite{model.FieldTrackingNumber, "OLD"}) {
		t.Fatalf("expected edited cell reverted last, got %v", last)
	}
	if len(alerts.messages) != 1 || !strings.Contains(alerts.messages[0], "Save failed") {
		t.Fatalf("unexpected alerts: %v", alerts.messages)
	}
}
