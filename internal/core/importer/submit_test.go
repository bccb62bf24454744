// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/importer"
	"github.com/taibuivan/folio/pkg/pointer"
)

func catalog() []*book.Book {
	return []*book.Book{
		{
			ID: 1, Title: "Harbour Lights", RoyaltyRate: decimal.NewFromInt(25),
			ISBN13: pointer.To("9780123456789"), ISBN10: pointer.To("0123456789"),
			Authors: []book.AuthorRef{{ID: 1, Name: "Ann Lee"}},
		},
		{
			ID: 2, Title: "Winter Tales", RoyaltyRate: decimal.NewFromInt(10),
			Authors: []book.AuthorRef{{ID: 2, Name: "Bo Chen"}},
		},
	}
}

/*
TestSubmit_ComputesRoyalty uses the book's default rate and never marks an override.
*/
func TestSubmit_ComputesRoyalty(t *testing.T) {
	parsed := importer.Parse("01-2025,9780123456789,10,250.00")
	require.Len(t, parsed.Valid, 1)

	submission := importer.Submit(parsed.Valid, book.NewIndex(catalog()))

	require.Len(t, submission.Pending, 1)
	assert.Empty(t, submission.Unmatched)

	item := submission.Pending[0]
	assert.Equal(t, 1, item.BookID)
	assert.Equal(t, "Harbour Lights", item.Title)
	assert.Equal(t, "Ann Lee", item.AuthorNames)
	assert.Equal(t, "62.50", item.AuthorRoyalty.StringFixed(2))
	assert.False(t, item.RoyaltyOverridden)

	input := item.Input()
	assert.Equal(t, "01-2025", input.Period)
	assert.Nil(t, input.AuthorRoyalty)
}

/*
TestSubmit_MatchesBothISBNForms indexes ISBN-10 and ISBN-13 to the same book.
*/
func TestSubmit_MatchesBothISBNForms(t *testing.T) {
	parsed := importer.Parse("01-2025,0-12-345678-9,1,40\n02-2025,978-0-12-345678-9,1,40")

	submission := importer.Submit(parsed.Valid, book.NewIndex(catalog()))

	require.Len(t, submission.Pending, 2)
	assert.Equal(t, 1, submission.Pending[0].BookID)
	assert.Equal(t, 1, submission.Pending[1].BookID)
}

/*
TestSubmit_Unmatched keeps rows with unknown ISBNs out of the pending set.
*/
func TestSubmit_Unmatched(t *testing.T) {
	parsed := importer.Parse("01-2025,9789999999999,10,250.00\n01-2025,9780123456789,1,4")

	submission := importer.Submit(parsed.Valid, book.NewIndex(catalog()))

	require.Len(t, submission.Pending, 1)
	require.Len(t, submission.Unmatched, 1)
	assert.Equal(t, 1, submission.Unmatched[0].Line)
	assert.Equal(t, "9789999999999", submission.Unmatched[0].ISBN)
}
