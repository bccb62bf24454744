// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer turns pasted sales text into reviewable sale candidates.

# Format

One sale per line, four comma-separated fields:

	MM-YYYY, ISBN, quantity, publisher revenue
	01-2025, 978-0-12-345678-9, 10, 250.00

Blank lines are skipped. Every other line becomes either a [Row] or an
[InvalidRow] carrying its 1-based line number and raw text.
*/
package importer

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/royalty"
	"github.com/taibuivan/folio/internal/core/sale"
)

// Failure reasons, in the order the rules are applied.
const (
	ReasonFieldCount      = "Expected 4 comma-separated fields"
	ReasonPeriod          = "Month must match MM-YYYY (e.g. 01-2025)"
	ReasonISBN            = "ISBN must contain 10 or 13 digits"
	ReasonQuantity        = "Quantity must be a positive integer"
	ReasonRevenue         = "Revenue must be a number"
	ReasonNegativeRevenue = "Revenue cannot be negative"
)

const fieldsPerLine = 4

// Row is a syntactically valid line.
type Row struct {
	Line             int             `json:"line"`
	Raw              string          `json:"raw"`
	Period           sale.Period     `json:"period"`
	ISBN             string          `json:"isbn"`
	Quantity         int             `json:"quantity"`
	PublisherRevenue decimal.Decimal `json:"publisher_revenue"`
}

// InvalidRow is a rejected line with the first rule it broke.
type InvalidRow struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// Result splits parsed lines by outcome, both in input order.
type Result struct {
	Valid   []Row        `json:"valid"`
	Invalid []InvalidRow `json:"invalid"`
}

// Parse reads pasted text line by line. It never fails as a whole.
func Parse(text string) Result {
	result := Result{Valid: []Row{}, Invalid: []InvalidRow{}}

	for index, line := range strings.Split(text, "\n") {
		raw := strings.TrimRight(line, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		row, reason := parseLine(raw)
		if reason != "" {
			result.Invalid = append(result.Invalid, InvalidRow{Line: index + 1, Raw: raw, Reason: reason})
			continue
		}

		row.Line = index + 1
		row.Raw = raw
		result.Valid = append(result.Valid, row)
	}

	return result
}

// parseLine applies the rules in order; the first failure wins.
func parseLine(raw string) (Row, string) {
	fields := strings.Split(raw, ",")
	if len(fields) != fieldsPerLine {
		return Row{}, ReasonFieldCount
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	period, err := sale.ParsePeriod(fields[0])
	if err != nil {
		return Row{}, ReasonPeriod
	}

	isbn := book.NormalizeISBN(fields[1])
	if len(isbn) != 10 && len(isbn) != 13 {
		return Row{}, ReasonISBN
	}

	quantity, err := strconv.Atoi(fields[2])
	if err != nil || quantity <= 0 {
		return Row{}, ReasonQuantity
	}

	revenue, err := decimal.NewFromString(fields[3])
	if err != nil {
		return Row{}, ReasonRevenue
	}
	if revenue.IsNegative() {
		return Row{}, ReasonNegativeRevenue
	}

	return Row{
		Period:           period,
		ISBN:             isbn,
		Quantity:         quantity,
		PublisherRevenue: royalty.Round(revenue),
	}, ""
}
