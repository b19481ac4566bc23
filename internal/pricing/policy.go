// Package pricing computes derived basket totals including the tiered
// shipping discount.
package pricing

import "storefront/internal/domain"

// Policy parameterizes the shipping rule. Historical page variants differed
// only in these two values, so they are configuration rather than code.
type Policy struct {
	// ShippingFeeUSD is the flat fee charged below the free-shipping tier.
	ShippingFeeUSD int64
	// FreeShippingDeviceCount is the device count at which shipping
	// becomes free.
	FreeShippingDeviceCount int
}

// Default matches the current storefront: 10 USD flat, free at 3+ devices.
func Default() Policy {
	return Policy{ShippingFeeUSD: 10, FreeShippingDeviceCount: 3}
}

// ShippingUSD is a step function of the device count. It applies regardless
// of basket emptiness; checkout is guarded separately.
func (p Policy) ShippingUSD(deviceCount int) int64 {
	if deviceCount >= p.FreeShippingDeviceCount {
		return 0
	}
	return p.ShippingFeeUSD
}

// Totals recomputes every derived figure from the basket. Totals are never
// cached; callers get a fresh computation on each read.
func (p Policy) Totals(b domain.Basket) domain.Totals {
	devices := b.DeviceCount()
	subtotal := b.SubtotalUSD()
	shipping := p.ShippingUSD(devices)
	return domain.Totals{
		ItemCount:   b.Count(),
		DeviceCount: devices,
		SubtotalUSD: subtotal,
		ShippingUSD: shipping,
		TotalUSD:    subtotal + shipping,
	}
}
