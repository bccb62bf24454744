// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package royalty computes author royalties from publisher revenue.

A royalty is revenue multiplied by the book's default rate (a percentage),
rounded half away from zero to cents. Editors may override the computed
value; [Editor] tracks whether the stored royalty still matches the formula.
*/
package royalty

import (
	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
)

var (
	hundred = decimal.NewFromInt(100)

	// ErrInvalidInput is returned for negative revenue or a rate outside [0, 100].
	ErrInvalidInput = apperr.ValidationError("Revenue must be non-negative and the rate between 0 and 100")
)

/*
Compute returns round(revenue * ratePercent / 100, 2).

Parameters:
  - revenue: decimal.Decimal (publisher revenue, >= 0)
  - ratePercent: decimal.Decimal (0..100)

Returns:
  - decimal.Decimal: Royalty rounded to cents
  - error: ErrInvalidInput
*/
func Compute(revenue, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if revenue.IsNegative() || ratePercent.IsNegative() || ratePercent.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidInput
	}

	return revenue.Mul(ratePercent).Div(hundred).Round(constants.MoneyScale), nil
}

// Round rounds a money amount to cents, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(constants.MoneyScale)
}
