// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// fakeRepository is an in-memory [book.Repository].
type fakeRepository struct {
	books   map[int]*book.Book
	authors map[int]string
	sales   map[int]int
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books:   map[int]*book.Book{},
		authors: map[int]string{1: "Ann Lee", 2: "Bo Chen"},
		sales:   map[int]int{},
		nextID:  1,
	}
}

func (repository *fakeRepository) ListBooks(_ context.Context, _ book.Filter, limit, offset int) ([]*book.Book, int, error) {
	all, _ := repository.ListAllBooks(context.Background())
	total := len(all)
	if limit <= 0 {
		return all, total, nil
	}
	end := min(offset+limit, total)
	if offset > total {
		offset = total
	}
	return all[offset:end], total, nil
}

func (repository *fakeRepository) ListAllBooks(context.Context) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range repository.books {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *book.Book) int { return a.ID - b.ID })
	return out, nil
}

func (repository *fakeRepository) GetBook(_ context.Context, id int) (*book.Book, error) {
	b, ok := repository.books[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (repository *fakeRepository) CreateBook(_ context.Context, b *book.Book) error {
	b.ID = repository.nextID
	repository.nextID++
	repository.store(b)
	return nil
}

func (repository *fakeRepository) UpdateBook(_ context.Context, b *book.Book) error {
	if _, ok := repository.books[b.ID]; !ok {
		return dberr.ErrNotFound
	}
	repository.store(b)
	return nil
}

func (repository *fakeRepository) store(b *book.Book) {
	copied := *b
	copied.Authors = nil
	for _, author := range b.Authors {
		copied.Authors = append(copied.Authors, book.AuthorRef{ID: author.ID, Name: repository.authors[author.ID]})
	}
	repository.books[b.ID] = &copied
}

func (repository *fakeRepository) DeleteBook(_ context.Context, id int) error {
	if _, ok := repository.books[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.books, id)
	return nil
}

func (repository *fakeRepository) CountAuthors(_ context.Context, ids []int) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := repository.authors[id]; ok {
			count++
		}
	}
	return count, nil
}

func (repository *fakeRepository) CountSales(_ context.Context, bookID int) (int, error) {
	return repository.sales[bookID], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
