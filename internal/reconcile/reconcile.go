// Package reconcile implements the client-side controller that decides what
// happens to a proposed cell edit before it is persisted: accept it, reject
// and revert it, or cascade it into dependent cells.
package reconcile

import (
	"context"
	"errors"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/tracking"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// Origin tags where an edit event came from. Only user-initiated edits run
// through the reconciliation state machine; writes the reconciler performs
// itself come back as SystemEdit and are ignored on delivery.
type Origin int

const (
	UserEdit Origin = iota
	SystemEdit
)

// Edit is one cell-edit event carrying the grid's string renderings of the
// previous and proposed values.
type Edit struct {
	Origin Origin
	Field  model.Field
	Old    string
	New    string
}

// Outcome is the terminal state of one reconciliation run.
type Outcome int

const (
	// OutcomeNoOp: nothing to do (no value change, or a system write).
	OutcomeNoOp Outcome = iota
	// OutcomeRejected: validation failed, the edit was reverted locally.
	OutcomeRejected
	// OutcomeSaved: the change-set was accepted by the store.
	OutcomeSaved
	// OutcomeFailed: the store rejected the change-set, local state reverted.
	OutcomeFailed
)

// CellWriter applies a value to a grid cell. Implementations must deliver
// the resulting change event with Origin SystemEdit so it does not re-enter
// the state machine.
type CellWriter interface {
	SetCell(field model.Field, value string)
}

// Alerter surfaces a user-facing message next to the grid.
type Alerter interface {
	Alert(message string)
}

// Store persists an accepted change-set together with its audit descriptor.
type Store interface {
	Patch(ctx context.Context, orderID string, changes map[model.Field]string, audit model.AuditDescriptor) error
}

// Reconciler drives the per-edit state machine for one grid.
type Reconciler struct {
	grid   CellWriter
	store  Store
	alerts Alerter
}

// New constructs a Reconciler around a grid, a store client and an alert
// surface.
func New(grid CellWriter, store Store, alerts Alerter) *Reconciler {
	return &Reconciler{grid: grid, store: store, alerts: alerts}
}

// mutation is one pending local write, kept so rejection can replay its
// inverse.
type mutation struct {
	field  model.Field
	before string
}

type journal []mutation

func (j *journal) record(field model.Field, before string) {
	*j = append(*j, mutation{field: field, before: before})
}

// HandleCellEdit processes one cell-edit event against the row snapshot as
// it stands after the edit. The row is mutated in place for cascades and
// reverts; matching grid cells are written through the CellWriter.
func (r *Reconciler) HandleCellEdit(ctx context.Context, row *model.Order, e Edit) Outcome {
	if e.Origin != UserEdit {
		return OutcomeNoOp
	}
	if e.New == e.Old {
		return OutcomeNoOp
	}

	// The user's own edit is pending until the store confirms it.
	var pending journal
	pending.record(e.Field, e.Old)

	prevTrackingURL := row.TrackingURL

	switch err := usecase.ValidateOrder(*row); {
	case err == nil:
	case errors.Is(err, domainErrors.ErrIssueNeedsReason) && e.Field == model.FieldStatus:
		// The one cascading auto-correction: the user just flagged the row
		// as an issue, so default the reason instead of blocking them.
		pending.record(model.FieldIssueReason, row.IssueReason)
		r.writeSilently(row, model.FieldIssueReason, model.IssueReasonOther)
		r.alerts.Alert("Issue reason required. Set to Other; update if needed.")
	default:
		r.replay(row, pending)
		r.alerts.Alert(err.Error())
		return OutcomeRejected
	}

	changes := map[model.Field]string{e.Field: e.New}

	if e.Field == model.FieldCarrier || e.Field == model.FieldTrackingNumber {
		if url, ok := tracking.BuildURL(row.Carrier, row.TrackingNumber); ok {
			changes[model.FieldTrackingURL] = url
			if url != prevTrackingURL {
				pending.record(model.FieldTrackingURL, prevTrackingURL)
				r.writeSilently(row, model.FieldTrackingURL, url)
			}
		}
	}

	// Make sure the auto-repaired reason reaches the server even though the
	// local write alone would not be persisted.
	if e.Field == model.FieldStatus && row.Status == model.OrderStatusIssue && row.IssueReason == model.IssueReasonOther {
		changes[model.FieldIssueReason] = model.IssueReasonOther
	}

	audit := model.AuditDescriptor{Field: e.Field, OldValue: e.Old, NewValue: e.New}

	if err := r.store.Patch(ctx, row.ID, changes, audit); err != nil {
		r.replay(row, pending)
		r.alerts.Alert("Save failed: " + err.Error())
		return OutcomeFailed
	}

	return OutcomeSaved
}

// replay undoes pending mutations in reverse order.
func (r *Reconciler) replay(row *model.Order, pending journal) {
	for i := len(pending) - 1; i >= 0; i-- {
		r.writeSilently(row, pending[i].field, pending[i].before)
	}
}

// writeSilently updates the local row and the grid cell without re-entering
// reconciliation. Values originate from the row itself, so the overlay
// cannot fail on well-formed input.
func (r *Reconciler) writeSilently(row *model.Order, field model.Field, value string) {
	var v any = value
	if value == "" {
		v = nil
	}
	_ = model.ApplyChange(row, field, v)
	r.grid.SetCell(field, value)
}
