// Package helio builds the configuration handed to the hosted Helio
// checkout widget. The widget itself is an opaque collaborator; this
// package only shapes the request and normalizes the charge amount.
package helio

import (
	"math"
	"strconv"

	"storefront/internal/domain"
)

// DefaultPaylinkID is the dashboard paylink used when no override is
// configured. The link must have dynamic pricing enabled.
const DefaultPaylinkID = "6913f286a438059a7e340339"

// Config carries the dashboard-level settings for the widget.
type Config struct {
	PaylinkID    string
	ThemeMode    string
	PrimaryColor string
	NeutralColor string
}

func DefaultConfig() Config {
	return Config{
		PaylinkID:    DefaultPaylinkID,
		ThemeMode:    "dark",
		PrimaryColor: "#FA8500",
		NeutralColor: "#5A6578",
	}
}

// LineMeta is one reconciliation line forwarded to the processor.
type LineMeta struct {
	SKU     string `json:"sku"`
	Name    string `json:"name"`
	Qty     int    `json:"qty"`
	UnitUSD int64  `json:"unitUsd"`
}

type Theme struct {
	ThemeMode string `json:"themeMode"`
}

// CheckoutRequest is the exact shape the widget consumes. Amount is a
// decimal string; the processor charges this value verbatim under dynamic
// pricing.
type CheckoutRequest struct {
	PaylinkID            string     `json:"paylinkId"`
	Amount               string     `json:"amount"`
	Theme                Theme      `json:"theme"`
	PrimaryColor         string     `json:"primaryColor"`
	NeutralColor         string     `json:"neutralColor"`
	Display              string     `json:"display"`
	PrimaryPaymentMethod string     `json:"primaryPaymentMethod"`
	Lines                []LineMeta `json:"lines,omitempty"`
}

// NewCheckoutRequest assembles the widget config for the given totals and
// method. When shipping is charged, a synthetic shipping line is appended so
// the processor-side record reconciles against the amount.
func NewCheckoutRequest(cfg Config, method domain.PaymentMethod, lines []domain.Line, totals domain.Totals) CheckoutRequest {
	meta := make([]LineMeta, 0, len(lines)+1)
	for _, line := range lines {
		meta = append(meta, LineMeta{
			SKU:     string(line.SKU),
			Name:    line.Name,
			Qty:     line.Qty,
			UnitUSD: line.UnitUSD,
		})
	}
	if totals.ShippingUSD > 0 {
		meta = append(meta, LineMeta{
			SKU:     "shipping",
			Name:    "Shipping",
			Qty:     1,
			UnitUSD: totals.ShippingUSD,
		})
	}

	return CheckoutRequest{
		PaylinkID:            cfg.PaylinkID,
		Amount:               FormatAmount(float64(totals.TotalUSD)),
		Theme:                Theme{ThemeMode: cfg.ThemeMode},
		PrimaryColor:         cfg.PrimaryColor,
		NeutralColor:         cfg.NeutralColor,
		Display:              "inline",
		PrimaryPaymentMethod: string(method),
		Lines:                meta,
	}
}

// FormatAmount clamps the amount at zero, rounds to 2 decimal places before
// stringification to avoid floating-point drift, and renders without
// trailing zeros ("121", "120.5").
func FormatAmount(usd float64) string {
	v := math.Round(usd*100) / 100
	if v < 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
