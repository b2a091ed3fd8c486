package cart

import (
	"github.com/shopspring/decimal"
)

// Item is a single cart line. Price is the display price already resolved for
// the chosen variant (the variant override when present, the product base
// price otherwise).
type Item struct {
	ProductID   int64    `json:"productId"`
	VariantID   *int64   `json:"variantId,omitempty"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	VariantName *string  `json:"variantName,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// Totals holds the derived cart amounts, each rounded to two decimal places.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// ComputeTotals derives subtotal, tax amount and total for the given items
// and tax rate (in percent). Amounts are rounded half-up at the cent
// boundary. An empty cart always yields a zero tax amount, whatever the rate.
func ComputeTotals(items []Item, taxRatePercent float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	taxAmount := decimal.Zero
	if len(items) > 0 {
		rate := decimal.NewFromFloat(taxRatePercent)
		taxAmount = subtotal.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	}

	total := subtotal.Add(taxAmount).Round(2)

	sub, _ := subtotal.Float64()
	tax, _ := taxAmount.Float64()
	tot, _ := total.Float64()

	return Totals{
		Subtotal:  sub,
		TaxAmount: tax,
		Total:     tot,
	}
}
