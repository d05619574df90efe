package tracking

import (
	"strings"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// carrierURLs maps carriers with a public tracking page to their URL template.
// Carrier "Other" has no template on purpose: its URL is authored manually.
var carrierURLs = map[model.Carrier]string{
	model.CarrierDHL:   "https://www.dhl.com/global-en/home/tracking.html?tracking-id=",
	model.CarrierUPS:   "https://www.ups.com/track?tracknum=",
	model.CarrierFedEx: "https://www.fedex.com/fedextrack/?trknbr=",
	model.CarrierUSPS:  "https://tools.usps.com/go/TrackConfirmAction?tLabels=",
}

// BuildURL derives the canonical tracking URL for a carrier and tracking
// number. It reports false when no URL can be derived: unknown carrier,
// carrier Other, or an empty tracking number after trimming.
func BuildURL(carrier model.Carrier, trackingNumber string) (string, bool) {
	trimmed := strings.TrimSpace(trackingNumber)
	if trimmed == "" {
		return "", false
	}
	prefix, ok := carrierURLs[carrier]
	if !ok {
		return "", false
	}
	return prefix + trimmed, true
}
