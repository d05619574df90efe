package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPreShipment OrderStatus = "pre_shipment"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusIssue       OrderStatus = "issue"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPreShipment, OrderStatusShipped, OrderStatusIssue:
		return true
	}
	return false
}

// Carrier identifies the shipping company. Empty value means not set.
type Carrier string

const (
	CarrierDHL   Carrier = "DHL"
	CarrierUPS   Carrier = "UPS"
	CarrierFedEx Carrier = "FedEx"
	CarrierUSPS  Carrier = "USPS"
	CarrierOther Carrier = "Other"
)

// Valid reports whether the carrier is empty or one of the known options.
func (c Carrier) Valid() bool {
	switch c {
	case "", CarrierDHL, CarrierUPS, CarrierFedEx, CarrierUSPS, CarrierOther:
		return true
	}
	return false
}

// IssueReasonOther is the default reason assigned when an order is flagged as
// an issue without an explicit reason.
const IssueReasonOther = "Other"

// Order describes a fulfillment record tracked through the sheet.
// Nullable text columns are modeled as empty strings.
type Order struct {
	ID               string
	AssignedVendorID string
	OrderNumber      string
	CustomerName     string
	ShippingAddress  string
	Carrier          Carrier
	TrackingNumber   string
	TrackingURL      string
	Status           OrderStatus
	IssueReason      string
	ShipDate         *time.Time
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
