// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over catalog.book and catalog.bookauthor.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	colBook       = schema.CatalogBook
	colBookAuthor = schema.CatalogBookAuthor
	colAuthor     = schema.CatalogAuthor
)

// selectColumns lists the book columns plus the aggregated authors (JSON, credit order).
var selectColumns = fmt.Sprintf(`
	bk.%s, bk.%s, bk.%s, bk.%s, bk.%s, bk.%s, bk.%s::text, bk.%s, bk.%s, bk.%s, bk.%s,
	COALESCE((
		SELECT json_agg(json_build_object('id', au.%s, 'name', au.%s) ORDER BY x.%s, au.%s)
		FROM %s x JOIN %s au ON au.%s = x.%s
		WHERE x.%s = bk.%s
	), '[]'::json)`,
	colBook.ID, colBook.Title, colBook.ISBN13, colBook.ISBN10, colBook.PublicationMonth, colBook.PublicationYear, colBook.RoyaltyRate,
	colBook.SeriesID, colBook.SeriesPosition, colBook.CreatedAt, colBook.UpdatedAt,
	colAuthor.ID, colAuthor.Name, colBookAuthor.Position, colAuthor.ID,
	colBookAuthor.Table, colAuthor.Table, colAuthor.ID, colBookAuthor.AuthorID,
	colBookAuthor.BookID, colBook.ID,
)

func scanBook(row pgx.Row) (*Book, error) {
	bk := &Book{}
	var rate string
	err := row.Scan(
		&bk.ID, &bk.Title, &bk.ISBN13, &bk.ISBN10, &bk.PublicationMonth, &bk.PublicationYear, &rate,
		&bk.SeriesID, &bk.SeriesPosition, &bk.CreatedAt, &bk.UpdatedAt, &bk.Authors,
	)
	if err != nil {
		return nil, err
	}
	if err := bk.RoyaltyRate.UnmarshalText([]byte(rate)); err != nil {
		return nil, err
	}
	return bk, nil
}

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	var (
		where []string
		args  []any
	)

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := itos(len(args))
		where = append(where, fmt.Sprintf("(bk.%s ILIKE $%s OR bk.%s LIKE $%s OR bk.%s LIKE $%s)",
			colBook.Title, n, colBook.ISBN13, n, colBook.ISBN10, n))
	}
	if len(f.AuthorIDs) > 0 {
		args = append(args, f.AuthorIDs)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM %s f WHERE f.%s = bk.%s AND f.%s = ANY($%s))",
			colBookAuthor.Table, colBookAuthor.BookID, colBook.ID, colBookAuthor.AuthorID, itos(len(args))))
	}
	if f.SeriesID != nil {
		args = append(args, *f.SeriesID)
		where = append(where, fmt.Sprintf("bk.%s = $%s", colBook.SeriesID, itos(len(args))))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s bk%s`, colBook.Table, clause)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s bk%s ORDER BY bk.%s ASC, bk.%s ASC LIMIT $%s OFFSET $%s`,
		selectColumns, colBook.Table, clause, colBook.Title, colBook.ID, itos(len(args)+1), itos(len(args)+2))
	// LIMIT NULL returns every row
	var limitArg any = limit
	if limit <= 0 {
		limitArg = nil
	}
	args = append(args, limitArg, offset)

	books, err := repository.query(context, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (repository *PostgresRepository) ListAllBooks(context context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s bk ORDER BY bk.%s ASC`, selectColumns, colBook.Table, colBook.ID)
	return repository.query(context, query)
}

func (repository *PostgresRepository) query(context context.Context, query string, args ...any) ([]*Book, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		bk, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, bk)
	}

	return books, dberr.Wrap(rows.Err(), "list_books")
}

func (repository *PostgresRepository) GetBook(context context.Context, id int) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s bk WHERE bk.%s = $1`, selectColumns, colBook.Table, colBook.ID)

	bk, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return bk, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, bk *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		colBook.Table, colBook.Title, colBook.ISBN13, colBook.ISBN10, colBook.PublicationMonth, colBook.PublicationYear, colBook.RoyaltyRate,
		colBook.SeriesID, colBook.SeriesPosition, colBook.CreatedAt, colBook.UpdatedAt,
		colBook.ID, colBook.CreatedAt, colBook.UpdatedAt,
	)

	return postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query,
			bk.Title, bk.ISBN13, bk.ISBN10, bk.PublicationMonth, bk.PublicationYear, bk.RoyaltyRate.String(),
			bk.SeriesID, bk.SeriesPosition,
		).Scan(&bk.ID, &bk.CreatedAt, &bk.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_book")
		}

		return replaceAuthors(context, tx, bk)
	})
}

func (repository *PostgresRepository) UpdateBook(context context.Context, bk *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7::numeric, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		colBook.Table, colBook.Title, colBook.ISBN13, colBook.ISBN10, colBook.PublicationMonth, colBook.PublicationYear, colBook.RoyaltyRate,
		colBook.SeriesID, colBook.SeriesPosition, colBook.UpdatedAt,
		colBook.ID,
		colBook.UpdatedAt,
	)

	return postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query,
			bk.ID, bk.Title, bk.ISBN13, bk.ISBN10, bk.PublicationMonth, bk.PublicationYear, bk.RoyaltyRate.String(),
			bk.SeriesID, bk.SeriesPosition,
		).Scan(&bk.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "update_book")
		}

		return replaceAuthors(context, tx, bk)
	})
}

// replaceAuthors rewrites the credit list of a book inside tx.
func replaceAuthors(context context.Context, tx pgx.Tx, bk *Book) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, colBookAuthor.Table, colBookAuthor.BookID)
	if _, err := tx.Exec(context, deleteQuery, bk.ID); err != nil {
		return dberr.Wrap(err, "clear_book_authors")
	}

	rows := make([][]any, 0, len(bk.Authors))
	for position, author := range bk.Authors {
		rows = append(rows, []any{bk.ID, author.ID, position})
	}

	_, err := tx.CopyFrom(context,
		pgx.Identifier{"catalog", "bookauthor"},
		[]string{colBookAuthor.BookID, colBookAuthor.AuthorID, colBookAuthor.Position},
		pgx.CopyFromRows(rows),
	)
	return dberr.Wrap(err, "insert_book_authors")
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, colBook.Table, colBook.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountAuthors(context context.Context, authorIDs []int) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = ANY($1)`, colAuthor.Table, colAuthor.ID)

	var count int
	err := repository.db.QueryRow(context, query, authorIDs).Scan(&count)
	return count, dberr.Wrap(err, "count_authors")
}

func (repository *PostgresRepository) CountSales(context context.Context, bookID int) (int, error) {
	sale := schema.LedgerSale
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, sale.Table, sale.BookID)

	var count int
	err := repository.db.QueryRow(context, query, bookID).Scan(&count)
	return count, dberr.Wrap(err, "count_book_sales")
}

func itos(i int) string {
	return strconv.Itoa(i)
}
