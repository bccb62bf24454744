// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the persistence operations for books.
type Repository interface {
	ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	ListAllBooks(context context.Context) ([]*Book, error)
	GetBook(context context.Context, id int) (*Book, error)
	CreateBook(context context.Context, b *Book) error
	UpdateBook(context context.Context, b *Book) error
	DeleteBook(context context.Context, id int) error

	// CountAuthors returns how many of the given author ids exist.
	CountAuthors(context context.Context, authorIDs []int) (int, error)
	// CountSales returns the number of sales recorded against a book.
	CountSales(context context.Context, bookID int) (int, error)
}
