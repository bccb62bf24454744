// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package payment groups unpaid sales by author set and settles them in bulk.

# Grouping

A book with several authors forms one group for the whole set: the unpaid
sales of a two-author book are never split between the individual authors.
The key is the sorted author id tuple, so name spelling does not matter.
*/
package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/sale"
)

// AuthorGroup is the derived set of unpaid sales for one author set.
type AuthorGroup struct {
	AuthorIDs          []int           `json:"author_ids"`
	AuthorNames        string          `json:"author_names"`
	Sales              []sale.View     `json:"sales"`
	SaleCount          int             `json:"sale_count"`
	UnpaidTotal        decimal.Decimal `json:"unpaid_total"`
	UnpaidTotalDisplay string          `json:"unpaid_total_display"`
}

// Result reports a bulk payment.
type Result struct {
	UpdatedCount int             `json:"updated_count"`
	Amount       decimal.Decimal `json:"amount"`
	BatchID      *int            `json:"batch_id"`
}

// Batch is a recorded group payment.
type Batch struct {
	ID        int             `json:"id"`
	AuthorIDs []int           `json:"author_ids"`
	SaleCount int             `json:"sale_count"`
	Amount    decimal.Decimal `json:"amount"`
	PaidBy    string          `json:"paid_by"`
	CreatedAt time.Time       `json:"created_at"`
}

const FieldAuthorIDs = "author_ids"
