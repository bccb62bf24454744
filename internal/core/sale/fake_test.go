// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/pkg/pointer"
)

// fakeBooks serves a fixed catalog.
type fakeBooks map[int]*book.Book

func (books fakeBooks) GetBook(_ context.Context, id int) (*book.Book, error) {
	if b, ok := books[id]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func catalog() fakeBooks {
	return fakeBooks{
		1: {ID: 1, Title: "Harbour Lights", ISBN13: pointer.To("9780123456789"), RoyaltyRate: decimal.NewFromInt(25),
			Authors: []book.AuthorRef{{ID: 1, Name: "Ann Lee"}}},
		2: {ID: 2, Title: "Winter Tales", RoyaltyRate: decimal.NewFromInt(10),
			Authors: []book.AuthorRef{{ID: 2, Name: "Bo Chen"}, {ID: 1, Name: "Ann Lee"}}},
	}
}

// fakeRepository stores sales in memory and joins them to fakeBooks.
type fakeRepository struct {
	books  fakeBooks
	sales  map[int]*sale.Sale
	order  []int
	nextID int
	// failOn makes CreateSale fail for a given quantity.
	failOn int
}

func newFakeRepository(books fakeBooks) *fakeRepository {
	return &fakeRepository{books: books, sales: map[int]*sale.Sale{}, nextID: 1}
}

func (repository *fakeRepository) ListViews(_ context.Context, f sale.ViewFilter) ([]sale.View, error) {
	views := []sale.View{}
	for _, id := range repository.order {
		s, ok := repository.sales[id]
		if !ok {
			continue
		}
		if f.BookID != nil && s.BookID != *f.BookID {
			continue
		}
		if f.UnpaidOnly && s.Paid {
			continue
		}
		views = append(views, sale.NewView(s, repository.books[s.BookID]))
	}
	return views, nil
}

func (repository *fakeRepository) GetView(_ context.Context, id int) (*sale.View, error) {
	s, ok := repository.sales[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	view := sale.NewView(s, repository.books[s.BookID])
	return &view, nil
}

func (repository *fakeRepository) GetSale(_ context.Context, id int) (*sale.Sale, error) {
	s, ok := repository.sales[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (repository *fakeRepository) CreateSale(_ context.Context, s *sale.Sale) error {
	if repository.failOn != 0 && s.Quantity == repository.failOn {
		return apperr.Internal(errors.New("connection reset"))
	}
	s.ID = repository.nextID
	repository.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	copied := *s
	repository.sales[s.ID] = &copied
	repository.order = append(repository.order, s.ID)
	return nil
}

func (repository *fakeRepository) UpdateSale(_ context.Context, s *sale.Sale) error {
	if _, ok := repository.sales[s.ID]; !ok {
		return dberr.ErrNotFound
	}
	copied := *s
	repository.sales[s.ID] = &copied
	return nil
}

func (repository *fakeRepository) SetPaid(_ context.Context, id int, paid bool) error {
	s, ok := repository.sales[id]
	if !ok {
		return dberr.ErrNotFound
	}
	s.Paid = paid
	return nil
}

func (repository *fakeRepository) DeleteSale(_ context.Context, id int) error {
	if _, ok := repository.sales[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.sales, id)
	return nil
}

func newService() (*sale.Service, *fakeRepository) {
	books := catalog()
	repository := newFakeRepository(books)
	return sale.NewService(repository, books, slog.New(slog.NewTextHandler(io.Discard, nil))), repository
}
