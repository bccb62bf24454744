// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/royalty"
	"github.com/taibuivan/folio/internal/core/sale"
)

// BookLookup resolves a normalized ISBN to a book. [book.Index] satisfies it.
type BookLookup interface {
	Lookup(isbn string) (*book.Book, bool)
}

// PendingItem is a matched row ready for review, with its computed royalty.
type PendingItem struct {
	Line              int             `json:"line"`
	BookID            int             `json:"book_id"`
	Title             string          `json:"title"`
	AuthorNames       string          `json:"author_names"`
	ISBN              string          `json:"isbn"`
	Period            sale.Period     `json:"period"`
	Quantity          int             `json:"quantity"`
	PublisherRevenue  decimal.Decimal `json:"publisher_revenue"`
	AuthorRoyalty     decimal.Decimal `json:"author_royalty"`
	RoyaltyOverridden bool            `json:"royalty_overridden"`
}

// Input converts the item to a sale payload. The royalty is left for the
// sale service to recompute from the book's current rate.
func (item PendingItem) Input() sale.Input {
	return sale.Input{
		BookID:           item.BookID,
		Period:           item.Period.String(),
		Quantity:         item.Quantity,
		PublisherRevenue: item.PublisherRevenue,
	}
}

// Submission splits valid rows into pending items and rows with no known book.
type Submission struct {
	Pending   []PendingItem `json:"pending"`
	Unmatched []Row         `json:"unmatched"`
}

// Submit matches rows against lookup. Unmatched rows never become pending items.
func Submit(rows []Row, lookup BookLookup) Submission {
	submission := Submission{Pending: []PendingItem{}, Unmatched: []Row{}}

	for _, row := range rows {
		b, ok := lookup.Lookup(row.ISBN)
		if !ok {
			submission.Unmatched = append(submission.Unmatched, row)
			continue
		}

		// Parse guarantees a non-negative revenue and stored rates are in range.
		amount, err := royalty.Compute(row.PublisherRevenue, b.RoyaltyRate)
		if err != nil {
			submission.Unmatched = append(submission.Unmatched, row)
			continue
		}

		submission.Pending = append(submission.Pending, PendingItem{
			Line:             row.Line,
			BookID:           b.ID,
			Title:            b.Title,
			AuthorNames:      b.AuthorNames(),
			ISBN:             row.ISBN,
			Period:           row.Period,
			Quantity:         row.Quantity,
			PublisherRevenue: row.PublisherRevenue,
			AuthorRoyalty:    amount,
		})
	}

	return submission
}
