// Package catalog is the authoritative registry of purchasable SKUs.
// Prices and names are fixed configuration, not runtime state.
package catalog

import (
	"storefront/internal/domain"
)

var names = map[domain.SKU]string{
	domain.SKUPlastic:   "Plastic",
	domain.SKUAluminium: "Aluminium",
	domain.SKUBundle:    "Bundle (Aluminium + Plastic)",
}

var pricesUSD = map[domain.SKU]int64{
	domain.SKUPlastic:   42,
	domain.SKUAluminium: 69,
	domain.SKUBundle:    99,
}

// Item is one catalog entry as exposed to clients.
type Item struct {
	SKU     domain.SKU `json:"sku"`
	Name    string     `json:"name"`
	UnitUSD int64      `json:"unitUsd"`
}

// PriceOf returns the unit price in whole USD. An unknown SKU is a
// programmer error, not a runtime condition; callers holding a parsed
// domain.SKU never see ErrUnknownSKU.
func PriceOf(sku domain.SKU) (int64, error) {
	price, ok := pricesUSD[sku]
	if !ok {
		return 0, domain.ErrUnknownSKU
	}
	return price, nil
}

func NameOf(sku domain.SKU) (string, error) {
	name, ok := names[sku]
	if !ok {
		return "", domain.ErrUnknownSKU
	}
	return name, nil
}

// Line builds a basket line for sku with the given quantity, stamping the
// current catalog name and price.
func Line(sku domain.SKU, qty int) (domain.Line, error) {
	price, err := PriceOf(sku)
	if err != nil {
		return domain.Line{}, err
	}
	name, err := NameOf(sku)
	if err != nil {
		return domain.Line{}, err
	}
	return domain.Line{SKU: sku, Name: name, UnitUSD: price, Qty: qty}, nil
}

// All lists every catalog entry in stable SKU order.
func All() []Item {
	out := make([]Item, 0, len(pricesUSD))
	for _, sku := range []domain.SKU{domain.SKUAluminium, domain.SKUBundle, domain.SKUPlastic} {
		out = append(out, Item{SKU: sku, Name: names[sku], UnitUSD: pricesUSD[sku]})
	}
	return out
}
