// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// Payment status labels.
const (
	StatusPaid   = "Paid"
	StatusUnpaid = "Unpaid"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with the currency symbol and digit grouping,
// e.g. "$1,234.50".
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(constants.MoneyScale)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	return sign + constants.CurrencySymbol + printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// StatusLabel returns the payment status label for a paid flag.
func StatusLabel(paid bool) string {
	if paid {
		return StatusPaid
	}
	return StatusUnpaid
}
