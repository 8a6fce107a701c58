package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freshkart/freshkart-backend/internal/client/state"
)

// ParsePrice turns a display price ("₹40", "₹1,299.00") into a decimal.
func ParsePrice(price string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(price)
	cleaned = strings.TrimPrefix(cleaned, "₹")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", price, err)
	}
	return value, nil
}

// CartTotal sums price x quantity across the basket in major units.
func CartTotal(items []state.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		price, err := ParsePrice(item.Price)
		if err != nil {
			return decimal.Zero, err
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}
