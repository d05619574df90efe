package usecase

import (
	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// ValidateOrder checks cross-field rules against the full prospective row,
// not just a changed field. A shipped order needs both carrier and tracking
// number; an issue order needs a reason.
func ValidateOrder(o model.Order) error {
	if o.Status == model.OrderStatusShipped && (o.Carrier == "" || o.TrackingNumber == "") {
		return domainErrors.ErrShippedNeedsTracking
	}
	if o.Status == model.OrderStatusIssue && o.IssueReason == "" {
		return domainErrors.ErrIssueNeedsReason
	}
	return nil
}
