// Package cart prices a cart without touching any persistent state.
// It is safe to call concurrently and repeatedly; totals are recomputed
// from scratch on every call.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// TaxRate is the flat sales tax applied to every order subtotal.
var TaxRate = decimal.NewFromFloat(0.13)

// Line is a single priced cart entry: a unit price and a quantity.
// The unit price is expected to be a snapshot taken by the caller.
type Line struct {
	UnitPrice valueobject.Money
	Quantity  int64
}

// Quote is the priced result of a cart. Amounts carry full decimal
// precision; rounding to 2 places happens at presentation boundaries only.
// Shipping is always free, so Total is exactly Subtotal + Tax.
type Quote struct {
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
}

// Price computes the quote for the given lines in order.
// Returns an error if any quantity is not positive or a unit price is
// negative; an empty cart prices to zero.
func Price(lines []Line) (Quote, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Quote{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return Quote{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		subtotal = subtotal.Add(line.UnitPrice.Amount().Mul(decimal.NewFromInt(line.Quantity)))
	}

	tax := subtotal.Mul(TaxRate)

	return Quote{
		Subtotal: valueobject.NewMoneyUSD(subtotal),
		Tax:      valueobject.NewMoneyUSD(tax),
		Total:    valueobject.NewMoneyUSD(subtotal.Add(tax)),
	}, nil
}
