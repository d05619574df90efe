package dto

import (
	"time"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// OrderResponse mirrors one sheet row. Blank optional columns serialize as
// empty strings, matching the grid's rendering.
type OrderResponse struct {
	ID               string     `json:"id"`
	AssignedVendorID string     `json:"assigned_vendor_id"`
	OrderNumber      string     `json:"order_number"`
	CustomerName     string     `json:"customer_name"`
	ShippingAddress  string     `json:"shipping_address"`
	Carrier          string     `json:"carrier"`
	TrackingNumber   string     `json:"tracking_number"`
	TrackingURL      string     `json:"tracking_url"`
	Status           string     `json:"status"`
	IssueReason      string     `json:"issue_reason"`
	ShipDate         *time.Time `json:"ship_date"`
	CreatedBy        string     `json:"created_by"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its wire form.
func ToOrderResponse(order model.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID,
		AssignedVendorID: order.AssignedVendorID,
		OrderNumber:      order.OrderNumber,
		CustomerName:     order.CustomerName,
		ShippingAddress:  order.ShippingAddress,
		Carrier:          string(order.Carrier),
		TrackingNumber:   order.TrackingNumber,
		TrackingURL:      order.TrackingURL,
		Status:           string(order.Status),
		IssueReason:      order.IssueReason,
		ShipDate:         order.ShipDate,
		CreatedBy:        order.CreatedBy,
		UpdatedAt:        order.UpdatedAt,
	}
}

// AuditRequest carries the descriptor of the user's direct edit.
type AuditRequest struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// PatchOrderRequest is the change-set envelope for PATCH /api/orders.
type PatchOrderRequest struct {
	ID      string         `json:"id"`
	Changes map[string]any `json:"changes"`
	Audit   *AuditRequest  `json:"audit"`
}

// DeleteOrderRequest identifies the row to remove.
type DeleteOrderRequest struct {
	ID string `json:"id"`
}

// AuditEntryResponse is one audit trail record.
type AuditEntryResponse struct {
	ID        int64     `json:"id"`
	OrderID   string    `json:"order_id"`
	UpdatedBy string    `json:"updated_by"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `json:"created_at"`
}

// ToAuditEntryResponse converts a domain audit entry to its wire form.
func ToAuditEntryResponse(entry model.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        entry.ID,
		OrderID:   entry.OrderID,
		UpdatedBy: entry.UpdatedBy,
		Field:     string(entry.Field),
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
		CreatedAt: entry.CreatedAt,
	}
}
