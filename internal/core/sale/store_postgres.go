// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over ledger.sale.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	colSale       = schema.LedgerSale
	colBook       = schema.CatalogBook
	colBookAuthor = schema.CatalogBookAuthor
	colAuthor     = schema.CatalogAuthor
)

// saleColumns is the column list shared by every sale read.
var saleColumns = fmt.Sprintf(`s.%s, s.%s, s.%s, s.%s, s.%s::text, s.%s::text, s.%s, s.%s, s.%s, s.%s, s.%s`,
	colSale.ID, colSale.BookID, colSale.Period, colSale.Quantity,
	colSale.PublisherRevenue, colSale.AuthorRoyalty, colSale.RoyaltyOverridden,
	colSale.Paid, colSale.PaidAt, colSale.CreatedAt, colSale.UpdatedAt,
)

// selectViews joins sales to their book and the book's authors (JSON, credit order).
var selectViews = fmt.Sprintf(`
	SELECT %s,
		bk.%s, bk.%s, bk.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', au.%s, 'name', au.%s) ORDER BY x.%s, au.%s)
			FROM %s x JOIN %s au ON au.%s = x.%s
			WHERE x.%s = bk.%s
		), '[]'::json)
	FROM %s s
	JOIN %s bk ON bk.%s = s.%s`,
	saleColumns,
	colBook.Title, colBook.ISBN13, colBook.ISBN10,
	colAuthor.ID, colAuthor.Name, colBookAuthor.Position, colAuthor.ID,
	colBookAuthor.Table, colAuthor.Table, colAuthor.ID, colBookAuthor.AuthorID,
	colBookAuthor.BookID, colBook.ID,
	colSale.Table,
	colBook.Table, colBook.ID, colSale.BookID,
)

// scanSale reads saleColumns followed by any extra targets.
func scanSale(row pgx.Row, extra ...any) (*Sale, error) {
	s := &Sale{}
	var period, revenue, royaltyAmount string

	targets := append([]any{
		&s.ID, &s.BookID, &period, &s.Quantity, &revenue, &royaltyAmount,
		&s.RoyaltyOverridden, &s.Paid, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt,
	}, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	var err error
	if s.Period, err = ParsePeriod(strings.TrimSpace(period)); err != nil {
		return nil, fmt.Errorf("stored period %q: %w", period, err)
	}
	if s.PublisherRevenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, err
	}
	if s.AuthorRoyalty, err = decimal.NewFromString(royaltyAmount); err != nil {
		return nil, err
	}
	return s, nil
}

func scanView(row pgx.Row) (View, error) {
	b := &book.Book{}
	s, err := scanSale(row, &b.Title, &b.ISBN13, &b.ISBN10, &b.Authors)
	if err != nil {
		return View{}, err
	}
	b.ID = s.BookID
	return NewView(s, b), nil
}

func (repository *PostgresRepository) ListViews(context context.Context, f ViewFilter) ([]View, error) {
	var (
		where []string
		args  []any
	)
	if f.BookID != nil {
		args = append(args, *f.BookID)
		where = append(where, fmt.Sprintf("s.%s = $%d", colSale.BookID, len(args)))
	}
	if f.UnpaidOnly {
		where = append(where, fmt.Sprintf("s.%s = FALSE", colSale.Paid))
	}

	query := selectViews
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY s.%s ASC", colSale.ID)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sale_views")
	}
	defer rows.Close()

	views := []View{}
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_sale_view")
		}
		views = append(views, view)
	}

	return views, dberr.Wrap(rows.Err(), "list_sale_views")
}

func (repository *PostgresRepository) GetView(context context.Context, id int) (*View, error) {
	query := selectViews + fmt.Sprintf(" WHERE s.%s = $1", colSale.ID)

	view, err := scanView(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_sale_view")
	}
	return &view, nil
}

func (repository *PostgresRepository) GetSale(context context.Context, id int) (*Sale, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`, saleColumns, colSale.Table, colSale.ID)

	s, err := scanSale(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_sale")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSale(context context.Context, s *Sale) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, FALSE, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		colSale.Table, colSale.BookID, colSale.Period, colSale.Quantity,
		colSale.PublisherRevenue, colSale.AuthorRoyalty, colSale.RoyaltyOverridden, colSale.Paid,
		colSale.CreatedAt, colSale.UpdatedAt,
		colSale.ID, colSale.CreatedAt, colSale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.BookID, s.Period.String(), s.Quantity,
		s.PublisherRevenue.StringFixed(2), s.AuthorRoyalty.StringFixed(2), s.RoyaltyOverridden,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_sale")
}

func (repository *PostgresRepository) UpdateSale(context context.Context, s *Sale) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5::numeric, %s = $6::numeric, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		colSale.Table, colSale.BookID, colSale.Period, colSale.Quantity,
		colSale.PublisherRevenue, colSale.AuthorRoyalty, colSale.RoyaltyOverridden, colSale.UpdatedAt,
		colSale.ID,
		colSale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		s.ID, s.BookID, s.Period.String(), s.Quantity,
		s.PublisherRevenue.StringFixed(2), s.AuthorRoyalty.StringFixed(2), s.RoyaltyOverridden,
	).Scan(&s.UpdatedAt)
	return dberr.Wrap(err, "update_sale")
}

// SetPaid stamps paidat when paid and clears it otherwise.
func (repository *PostgresRepository) SetPaid(context context.Context, id int, paid bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = CASE WHEN $2 THEN COALESCE(%s, NOW()) ELSE NULL END, %s = NOW()
		WHERE %s = $1
	`,
		colSale.Table, colSale.Paid, colSale.PaidAt, colSale.PaidAt, colSale.UpdatedAt, colSale.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, paid)
	if err != nil {
		return dberr.Wrap(err, "set_sale_paid")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteSale(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, colSale.Table, colSale.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_sale")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
