package model

// ImportedOrder is a fulfillment row pulled from an external shop, reduced to
// the columns the sheet tracks.
type ImportedOrder struct {
	OrderNumber     string
	CustomerName    string
	ShippingAddress string
}
