package domain

import "sort"

// Line is one SKU's presence in a basket. Name and UnitUSD are snapshots of
// the catalog values at mutation time; the catalog stays the source of truth
// and lines are re-stamped from it whenever the basket is loaded.
type Line struct {
	SKU     SKU    `json:"sku"`
	Name    string `json:"name"`
	UnitUSD int64  `json:"unitUsd"`
	Qty     int    `json:"qty"`
}

// Basket maps each SKU to at most one line. A line's quantity is always >= 1;
// dropping to zero removes the line entirely.
type Basket map[SKU]Line

// Lines returns the current line items in stable SKU order. Order carries no
// meaning beyond deterministic output.
func (b Basket) Lines() []Line {
	out := make([]Line, 0, len(b))
	for _, line := range b {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

func (b Basket) Count() int {
	n := 0
	for _, line := range b {
		n += line.Qty
	}
	return n
}

func (b Basket) SubtotalUSD() int64 {
	var sum int64
	for _, line := range b {
		sum += int64(line.Qty) * line.UnitUSD
	}
	return sum
}

// DeviceCount is the number of physical devices the basket ships as.
func (b Basket) DeviceCount() int {
	n := 0
	for _, line := range b {
		n += line.Qty * line.SKU.DeviceUnits()
	}
	return n
}

func (b Basket) Clone() Basket {
	out := make(Basket, len(b))
	for sku, line := range b {
		out[sku] = line
	}
	return out
}

// Totals are pure functions of the basket at any instant; they are computed
// on demand and never persisted.
type Totals struct {
	ItemCount   int   `json:"itemCount"`
	DeviceCount int   `json:"deviceCount"`
	SubtotalUSD int64 `json:"subtotalUsd"`
	ShippingUSD int64 `json:"shippingUsd"`
	TotalUSD    int64 `json:"totalUsd"`
}
