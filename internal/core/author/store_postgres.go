// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookCount is a correlated subquery over catalog.bookauthor.
var bookCount = fmt.Sprintf(`(SELECT count(*) FROM %s ba WHERE ba.%s = a.%s)`,
	schema.CatalogBookAuthor.Table, schema.CatalogBookAuthor.AuthorID, schema.CatalogAuthor.ID,
)

func (repository *PostgresRepository) ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, %s, a.%s, a.%s
		FROM %s a
		WHERE TRUE
	`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio, bookCount,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s a WHERE TRUE`, schema.CatalogAuthor.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		filter := fmt.Sprintf(` AND a.%s ILIKE $1`, schema.CatalogAuthor.Name)
		query += filter
		countQuery += filter
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY a.%s ASC, a.%s ASC LIMIT $", schema.CatalogAuthor.Name, schema.CatalogAuthor.ID) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.BookCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, dberr.Wrap(rows.Err(), "list_authors")
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id int) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, %s, a.%s, a.%s
		FROM %s a
		WHERE a.%s = $1
	`,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio, bookCount,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.Name, &a.Bio, &a.BookCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_author")
	}

	return a, nil
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
		schema.CatalogAuthor.ID, schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.Name, a.Bio).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogAuthor.Table, schema.CatalogAuthor.Name, schema.CatalogAuthor.Bio,
		schema.CatalogAuthor.UpdatedAt, schema.CatalogAuthor.ID,
		schema.CatalogAuthor.CreatedAt, schema.CatalogAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, a.ID, a.Name, a.Bio).Scan(&a.CreatedAt, &a.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}

// DeleteAuthor fails with a Conflict (foreign key) while the author is credited on a book.
func (repository *PostgresRepository) DeleteAuthor(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogAuthor.Table, schema.CatalogAuthor.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
