// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sale records monthly sales transactions and their author royalties.

# Overview

A sale belongs to one book and one period (MM-YYYY). Its royalty is computed
from the book's default rate unless an editor overrides it; overridden values
survive later edits until reverted. Listings go through [Aggregate], which
filters, sorts and paginates joined [View] rows.
*/
package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/slice"
)

// Sale is the persisted sales record.
type Sale struct {
	ID                int             `json:"id"`
	BookID            int             `json:"book_id"`
	Period            Period          `json:"period"`
	Quantity          int             `json:"quantity"`
	PublisherRevenue  decimal.Decimal `json:"publisher_revenue"`
	AuthorRoyalty     decimal.Decimal `json:"author_royalty"`
	RoyaltyOverridden bool            `json:"royalty_overridden"`
	Paid              bool            `json:"paid"`
	PaidAt            *time.Time      `json:"paid_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Input is the create/update payload for a sale.
//
// A nil AuthorRoyalty means "use the computed value". RevertOverride drops a
// previous manual royalty.
type Input struct {
	BookID           int              `json:"book_id"`
	Period           string           `json:"period"`
	Quantity         int              `json:"quantity"`
	PublisherRevenue decimal.Decimal  `json:"publisher_revenue"`
	AuthorRoyalty    *decimal.Decimal `json:"author_royalty,omitempty"`
	RevertOverride   bool             `json:"revert_override,omitempty"`
}

// View is a sale joined to its book, with display fields resolved.
type View struct {
	ID                int              `json:"id"`
	BookID            int              `json:"book_id"`
	Title             string           `json:"title"`
	Authors           []book.AuthorRef `json:"authors"`
	AuthorNames       string           `json:"author_names"`
	ISBN13            *string          `json:"isbn13"`
	Period            Period           `json:"period"`
	PeriodLabel       string           `json:"period_label"`
	Quantity          int              `json:"quantity"`
	PublisherRevenue  decimal.Decimal  `json:"publisher_revenue"`
	AuthorRoyalty     decimal.Decimal  `json:"author_royalty"`
	RoyaltyOverridden bool             `json:"royalty_overridden"`
	Paid              bool             `json:"paid"`
	PaidAt            *time.Time       `json:"paid_at"`
	StatusLabel       string           `json:"status_label"`
	RevenueDisplay    string           `json:"publisher_revenue_display"`
	RoyaltyDisplay    string           `json:"author_royalty_display"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// NewView joins a sale to its book and fills the display fields.
func NewView(s *Sale, b *book.Book) View {
	return View{
		ID:                s.ID,
		BookID:            s.BookID,
		Title:             b.Title,
		Authors:           b.Authors,
		AuthorNames:       b.AuthorNames(),
		ISBN13:            b.ISBN13,
		Period:            s.Period,
		PeriodLabel:       s.Period.Label(),
		Quantity:          s.Quantity,
		PublisherRevenue:  s.PublisherRevenue,
		AuthorRoyalty:     s.AuthorRoyalty,
		RoyaltyOverridden: s.RoyaltyOverridden,
		Paid:              s.Paid,
		PaidAt:            s.PaidAt,
		StatusLabel:       StatusLabel(s.Paid),
		RevenueDisplay:    FormatMoney(s.PublisherRevenue),
		RoyaltyDisplay:    FormatMoney(s.AuthorRoyalty),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// AuthorIDs returns the canonical sorted author id set of the sale's book.
func (v View) AuthorIDs() []int {
	return slice.SortedUnique(slice.Map(v.Authors, func(a book.AuthorRef) int { return a.ID }))
}

// ViewFilter narrows the rows loaded before aggregation.
type ViewFilter struct {
	BookID     *int
	UnpaidOnly bool
}

// BatchReport summarizes a batch submission. Rows that fail do not undo the
// rows that were written.
type BatchReport struct {
	Total      int            `json:"total"`
	Created    int            `json:"created"`
	Failed     int            `json:"failed"`
	CreatedIDs []int          `json:"created_ids"`
	Failures   []BatchFailure `json:"failures"`
}

// BatchFailure describes one rejected batch item by its 0-based index.
type BatchFailure struct {
	Index   int                 `json:"index"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// Global field names for validation
const (
	FieldBookID           = "book_id"
	FieldPeriod           = "period"
	FieldQuantity         = "quantity"
	FieldPublisherRevenue = "publisher_revenue"
	FieldAuthorRoyalty    = "author_royalty"
	FieldISBN13           = "isbn13"
	FieldISBN10           = "isbn10"
	FieldItems            = "items"
)
