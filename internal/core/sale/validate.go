// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/validate"
)

/*
Validate checks a sale payload against the book it references.

A nil book means the reference could not be resolved.

Returns:
  - error: apperr.ValidationError with one detail per failed field, or nil
*/
func Validate(input Input, b *book.Book) error {
	validator := &validate.Validator{}

	validator.Custom(FieldBookID, b == nil, "Must reference an existing book")
	validator.Matches(FieldPeriod, input.Period, PeriodPattern, "Month must match MM-YYYY (e.g. 01-2025)")
	validator.Positive(FieldQuantity, input.Quantity)
	validator.NonNegative(FieldPublisherRevenue, input.PublisherRevenue)
	if input.AuthorRoyalty != nil {
		validator.NonNegative(FieldAuthorRoyalty, *input.AuthorRoyalty)
	}

	if b != nil {
		if b.ISBN13 != nil {
			validator.Custom(FieldISBN13, !book.IsISBN13(*b.ISBN13), "Book ISBN-13 must contain 13 digits")
		}
		if b.ISBN10 != nil {
			validator.Custom(FieldISBN10, !book.IsISBN10(*b.ISBN10), "Book ISBN-10 must contain 10 digits")
		}
	}

	return validator.Err()
}
