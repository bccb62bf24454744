// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/slice"
)

const (
	maxTitleLen = 500
	minYear     = 1450
	maxYear     = 9999
)

var (
	monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	maxRate      = decimal.NewFromInt(100)
)

// Service implements the catalog rules for books.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, filter, limit, offset)
}

// ListAll returns every book matching filter, without pagination.
func (service *Service) ListAll(context context.Context, filter Filter) ([]*Book, error) {
	books, _, err := service.repo.ListBooks(context, filter, 0, 0)
	return books, err
}

// Index loads every book into an ISBN index for bulk matching.
func (service *Service) Index(context context.Context) (Index, error) {
	books, err := service.repo.ListAllBooks(context)
	if err != nil {
		return nil, err
	}
	return NewIndex(books), nil
}

func (service *Service) GetBook(context context.Context, id int) (*Book, error) {
	b, err := service.repo.GetBook(context, id)
	return b, dberr.NotFound(err, "Book")
}

/*
CreateBook validates the input and persists a new book.

Returns:
  - *Book: The stored book with its authors resolved
  - error: ValidationError, Conflict (duplicate ISBN) or Internal
*/
func (service *Service) CreateBook(context context.Context, input Input) (*Book, error) {
	b, err := service.prepare(context, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateBook(context, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int("book_id", b.ID),
		slog.String("title", b.Title),
		slog.String("actor", ctxutil.Actor(context)),
	)
	return service.GetBook(context, b.ID)
}

func (service *Service) UpdateBook(context context.Context, id int, input Input) (*Book, error) {
	b, err := service.prepare(context, input)
	if err != nil {
		return nil, err
	}
	b.ID = id

	if err := service.repo.UpdateBook(context, b); err != nil {
		return nil, dberr.NotFound(err, "Book")
	}

	service.logger.Info("book_updated", slog.Int("book_id", id), slog.String("actor", ctxutil.Actor(context)))
	return service.GetBook(context, id)
}

// DeleteBook removes a book that has no recorded sales.
func (service *Service) DeleteBook(context context.Context, id int) error {
	if _, err := service.GetBook(context, id); err != nil {
		return err
	}

	count, err := service.repo.CountSales(context, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("Book has %d recorded sales and cannot be deleted", count))
	}

	if err := service.repo.DeleteBook(context, id); err != nil {
		return dberr.NotFound(err, "Book")
	}

	service.logger.Warn("book_deleted", slog.Int("book_id", id), slog.String("actor", ctxutil.Actor(context)))
	return nil
}

// prepare validates input and converts it into a normalized [Book].
func (service *Service) prepare(context context.Context, input Input) (*Book, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	authorIDs := slice.SortedUnique(input.AuthorIDs)
	found, err := service.repo.CountAuthors(context, authorIDs)
	if err != nil {
		return nil, err
	}
	if found != len(authorIDs) {
		return nil, validate.RequiredError(FieldAuthorIDs, "Every author must exist")
	}

	b := &Book{
		Title:            strings.TrimSpace(input.Title),
		ISBN13:           pointer.NilIfZero(NormalizeISBN(input.ISBN13)),
		ISBN10:           pointer.NilIfZero(NormalizeISBN(input.ISBN10)),
		PublicationMonth: pointer.NilIfZero(strings.TrimSpace(input.PublicationMonth)),
		PublicationYear:  input.PublicationYear,
		RoyaltyRate:      input.RoyaltyRate,
		SeriesID:         input.SeriesID,
		SeriesPosition:   input.SeriesPosition,
	}

	// keep the submitted credit order, dropping repeats
	seen := make(map[int]bool, len(input.AuthorIDs))
	for _, authorID := range input.AuthorIDs {
		if seen[authorID] {
			continue
		}
		seen[authorID] = true
		b.Authors = append(b.Authors, AuthorRef{ID: authorID})
	}

	return b, nil
}

// ValidateInput checks the field rules of a book payload.
func ValidateInput(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLen)
	validator.Custom(FieldAuthorIDs, len(input.AuthorIDs) == 0, "At least one author is required")
	for _, authorID := range input.AuthorIDs {
		if authorID <= 0 {
			validator.Custom(FieldAuthorIDs, true, "Author ids must be positive integers")
			break
		}
	}

	if input.ISBN13 != "" {
		validator.Custom(FieldISBN13, !IsISBN13(input.ISBN13), "ISBN-13 must contain 13 digits")
	}
	if input.ISBN10 != "" {
		validator.Custom(FieldISBN10, !IsISBN10(input.ISBN10), "ISBN-10 must contain 10 digits")
	}

	month := strings.TrimSpace(input.PublicationMonth)
	if month != "" {
		validator.Matches(FieldPublicationMonth, month, monthPattern, "Month must be 01 to 12")
	}
	if input.PublicationYear != nil {
		validator.Range(FieldPublicationYear, *input.PublicationYear, minYear, maxYear)
		validator.Custom(FieldPublicationMonth, month == "", "Required when a publication year is set")
	}

	validator.DecimalRange(FieldRoyaltyRate, input.RoyaltyRate, decimal.Zero, maxRate)

	if input.SeriesID != nil {
		validator.Custom(FieldSeriesID, *input.SeriesID <= 0, "Must be a positive integer")
	}
	if input.SeriesPosition != nil {
		validator.Custom(FieldSeriesPosition, *input.SeriesPosition < 1, "Must be 1 or greater")
		validator.Custom(FieldSeriesID, input.SeriesID == nil, "Required when a series position is set")
	}

	return validator.Err()
}
