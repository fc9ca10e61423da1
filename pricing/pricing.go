package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"goldenwine/errs"
	"goldenwine/models"
)

// ComputeSubtotal sums quantity*price over the line items. Prices arrive as
// decimal strings and stay decimal all the way through.
func ComputeSubtotal(items []models.LineItem) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for i, it := range items {
		if it.Quantity <= 0 {
			return decimal.Zero, errs.Validation("line item %d: quantity must be positive", i)
		}
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return decimal.Zero, errs.Validation("line item %d: bad price %q", i, it.Price)
		}
		if price.IsNegative() {
			return decimal.Zero, errs.Validation("line item %d: price must not be negative", i)
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return subtotal, nil
}

// ApplyDiscounts folds the discount codes over the subtotal in order.
// Percentage discounts compound against the running total; fixed amounts
// subtract directly. The total never drops below zero.
//
// Amount parsing is tolerant: a trailing "%" is stripped, and codes whose
// amount is negative or non-numeric are skipped entirely.
func ApplyDiscounts(subtotal decimal.Decimal, codes []models.DiscountCode) decimal.Decimal {
	total := subtotal
	for _, dc := range codes {
		raw := strings.TrimSuffix(strings.TrimSpace(dc.Amount), "%")
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			continue
		}
		switch dc.Type {
		case models.DiscountPercentage:
			total = total.Sub(total.Mul(amount).Div(decimal.NewFromInt(100)))
		case models.DiscountFixed, models.DiscountFixedAmount:
			total = total.Sub(amount)
		}
		if total.IsNegative() {
			total = decimal.Zero
		}
	}
	return total
}

// ComputeTotal prices the order in one call and also reports the amount the
// discounts took off.
func ComputeTotal(items []models.LineItem, codes []models.DiscountCode) (subtotal, discount, total decimal.Decimal, err error) {
	subtotal, err = ComputeSubtotal(items)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	total = ApplyDiscounts(subtotal, codes)
	return subtotal, subtotal.Sub(total), total, nil
}

// FormatAmount renders a decimal as the wire money string: no exponent, no
// trailing zeros after the point ("90000", not "90000.0").
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
