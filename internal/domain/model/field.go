package model

import (
	"fmt"
	"time"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
)

// Field names an editable order column. Values match the JSON keys used by
// the grid and the HTTP API.
type Field string

const (
	FieldAssignedVendorID Field = "assigned_vendor_id"
	FieldOrderNumber      Field = "order_number"
	FieldCustomerName     Field = "customer_name"
	FieldShippingAddress  Field = "shipping_address"
	FieldCarrier          Field = "carrier"
	FieldTrackingNumber   Field = "tracking_number"
	FieldTrackingURL      Field = "tracking_url"
	FieldStatus           Field = "status"
	FieldIssueReason      Field = "issue_reason"
	FieldShipDate         Field = "ship_date"
)

// EditableFields lists every column an admin may change through the sheet.
var EditableFields = []Field{
	FieldAssignedVendorID,
	FieldOrderNumber,
	FieldCustomerName,
	FieldShippingAddress,
	FieldCarrier,
	FieldTrackingNumber,
	FieldTrackingURL,
	FieldStatus,
	FieldIssueReason,
	FieldShipDate,
}

// vendorEditableFields is the deny-by-omission allow-list for vendors.
var vendorEditableFields = map[Field]struct{}{
	FieldOrderNumber:    {},
	FieldCarrier:        {},
	FieldTrackingNumber: {},
	FieldTrackingURL:    {},
	FieldStatus:         {},
	FieldIssueReason:    {},
}

// CanEdit reports whether the role may change the given field.
func (r Role) CanEdit(f Field) bool {
	if r == RoleAdmin {
		return true
	}
	_, ok := vendorEditableFields[f]
	return ok
}

// FilterEditable keeps only fields the role is allowed to change. Disallowed
// fields are dropped silently, not rejected.
func FilterEditable(role Role, changes map[string]any) map[Field]any {
	filtered := make(map[Field]any, len(changes))
	for key, value := range changes {
		field := Field(key)
		if !role.CanEdit(field) {
			continue
		}
		filtered[field] = value
	}
	return filtered
}

// ShipDateLayouts are the accepted wire formats for ship_date values.
var shipDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ApplyChange overlays one raw JSON value onto the order. It is the single
// place where untyped change-set values become typed columns.
func ApplyChange(o *Order, field Field, value any) error {
	switch field {
	case FieldAssignedVendorID:
		return applyString(&o.AssignedVendorID, field, value)
	case FieldOrderNumber:
		return applyString(&o.OrderNumber, field, value)
	case FieldCustomerName:
		return applyString(&o.CustomerName, field, value)
	case FieldShippingAddress:
		return applyString(&o.ShippingAddress, field, value)
	case FieldTrackingNumber:
		return applyString(&o.TrackingNumber, field, value)
	case FieldTrackingURL:
		return applyString(&o.TrackingURL, field, value)
	case FieldIssueReason:
		return applyString(&o.IssueReason, field, value)
	case FieldCarrier:
		var raw string
		if err := applyString(&raw, field, value); err != nil {
			return err
		}
		carrier := Carrier(raw)
		if !carrier.Valid() {
			return fmt.Errorf("%w: unknown carrier %q", domainErrors.ErrInvalidField, raw)
		}
		o.Carrier = carrier
		return nil
	case FieldStatus:
		raw, ok := value.(string)
		if !ok || !OrderStatus(raw).Valid() {
			return fmt.Errorf("%w: invalid status %v", domainErrors.ErrInvalidField, value)
		}
		o.Status = OrderStatus(raw)
		return nil
	case FieldShipDate:
		if value == nil {
			o.ShipDate = nil
			return nil
		}
		raw, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: ship_date must be a string", domainErrors.ErrInvalidField)
		}
		if raw == "" {
			o.ShipDate = nil
			return nil
		}
		for _, layout := range shipDateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				o.ShipDate = &parsed
				return nil
			}
		}
		return fmt.Errorf("%w: invalid ship_date %q", domainErrors.ErrInvalidField, raw)
	}
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidField, field)
}

func applyString(dst *string, field Field, value any) error {
	if value == nil {
		*dst = ""
		return nil
	}
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", domainErrors.ErrInvalidField, field)
	}
	*dst = raw
	return nil
}

// FieldValue returns the current typed value of the named column, suitable
// for a persistence layer column map.
func (o *Order) FieldValue(field Field) any {
	switch field {
	case FieldAssignedVendorID:
		return o.AssignedVendorID
	case FieldOrderNumber:
		return o.OrderNumber
	case FieldCustomerName:
		return o.CustomerName
	case FieldShippingAddress:
		return o.ShippingAddress
	case FieldCarrier:
		return string(o.Carrier)
	case FieldTrackingNumber:
		return o.TrackingNumber
	case FieldTrackingURL:
		return o.TrackingURL
	case FieldStatus:
		return string(o.Status)
	case FieldIssueReason:
		return o.IssueReason
	case FieldShipDate:
		return o.ShipDate
	}
	return nil
}
