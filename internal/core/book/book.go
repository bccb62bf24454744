// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages the publisher's catalog of books.

A book carries its authors, normalized ISBNs, an optional publication month
and year, the default royalty rate applied to new sales, and an optional
series membership.
*/
package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/pkg/slice"
)

// AuthorRef is an author as attached to a book, in credit order.
type AuthorRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Book represents a catalog entry.
type Book struct {
	ID               int             `json:"id"`
	Title            string          `json:"title"`
	Authors          []AuthorRef     `json:"authors"`
	ISBN13           *string         `json:"isbn13"`
	ISBN10           *string         `json:"isbn10"`
	PublicationMonth *string         `json:"publication_month"`
	PublicationYear  *int            `json:"publication_year"`
	RoyaltyRate      decimal.Decimal `json:"royalty_rate"`
	SeriesID         *int            `json:"series_id"`
	SeriesPosition   *int            `json:"series_position"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AuthorIDs returns the canonical sorted author id set of the book.
func (b *Book) AuthorIDs() []int {
	return slice.SortedUnique(slice.Map(b.Authors, func(a AuthorRef) int { return a.ID }))
}

// AuthorNames joins author names in credit order, e.g. "Ann Lee, Bo Chen".
func (b *Book) AuthorNames() string {
	return strings.Join(slice.Map(b.Authors, func(a AuthorRef) string { return a.Name }), ", ")
}

// Input is the create/update payload for a book.
type Input struct {
	Title            string          `json:"title"`
	AuthorIDs        []int           `json:"author_ids"`
	ISBN13           string          `json:"isbn13"`
	ISBN10           string          `json:"isbn10"`
	PublicationMonth string          `json:"publication_month"`
	PublicationYear  *int            `json:"publication_year"`
	RoyaltyRate      decimal.Decimal `json:"royalty_rate"`
	SeriesID         *int            `json:"series_id"`
	SeriesPosition   *int            `json:"series_position"`
}

// Filter holds the parameters for a paginated book search.
type Filter struct {
	Query     string // ILIKE against title and ISBNs
	AuthorIDs []int  // books credited to any of these authors
	SeriesID  *int
}

// Global field names for validation
const (
	FieldTitle            = "title"
	FieldAuthorIDs        = "author_ids"
	FieldISBN13           = "isbn13"
	FieldISBN10           = "isbn10"
	FieldPublicationMonth = "publication_month"
	FieldPublicationYear  = "publication_year"
	FieldRoyaltyRate      = "royalty_rate"
	FieldSeriesID         = "series_id"
	FieldSeriesPosition   = "series_position"
)
