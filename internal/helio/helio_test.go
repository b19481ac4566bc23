package helio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "121", FormatAmount(121))
	assert.Equal(t, "120.5", FormatAmount(120.5))
	assert.Equal(t, "120.46", FormatAmount(120.456))
	assert.Equal(t, "0.1", FormatAmount(0.1))
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "0", FormatAmount(-3))
	// Rounding happens before stringification.
	assert.Equal(t, "0.3", FormatAmount(0.1+0.2))
}

func TestNewCheckoutRequestAppendsShippingLine(t *testing.T) {
	lines := []domain.Line{
		{SKU: domain.SKUAluminium, Name: "Aluminium", UnitUSD: 69, Qty: 1},
		{SKU: domain.SKUPlastic, Name: "Plastic", UnitUSD: 42, Qty: 1},
	}
	totals := domain.Totals{ItemCount: 2, DeviceCount: 2, SubtotalUSD: 111, ShippingUSD: 10, TotalUSD: 121}

	req := NewCheckoutRequest(DefaultConfig(), domain.MethodCrypto, lines, totals)

	assert.Equal(t, DefaultPaylinkID, req.PaylinkID)
	assert.Equal(t, "121", req.Amount)
	assert.Equal(t, "crypto", req.PrimaryPaymentMethod)
	assert.Equal(t, "dark", req.Theme.ThemeMode)
	assert.Equal(t, "inline", req.Display)

	if assert.Len(t, req.Lines, 3) {
		last := req.Lines[2]
		assert.Equal(t, "shipping", last.SKU)
		assert.Equal(t, "Shipping", last.Name)
		assert.Equal(t, 1, last.Qty)
		assert.Equal(t, int64(10), last.UnitUSD)
	}
}

func TestNewCheckoutRequestNoShippingLineWhenFree(t *testing.T) {
	lines := []domain.Line{
		{SKU: domain.SKUBundle, Name: "Bundle (Aluminium + Plastic)", UnitUSD: 99, Qty: 2},
	}
	totals := domain.Totals{ItemCount: 2, DeviceCount: 4, SubtotalUSD: 198, ShippingUSD: 0, TotalUSD: 198}

	req := NewCheckoutRequest(DefaultConfig(), domain.MethodFiat, lines, totals)

	assert.Equal(t, "198", req.Amount)
	assert.Equal(t, "fiat", req.PrimaryPaymentMethod)
	if assert.Len(t, req.Lines, 1) {
		assert.Equal(t, "bundle", req.Lines[0].SKU)
	}
}
