// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
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

var selectSeries = fmt.Sprintf(`
	SELECT s.%s, s.%s, s.%s,
		(SELECT count(*) FROM %s b WHERE b.%s = s.%s),
		s.%s, s.%s
	FROM %s s`,
	schema.CatalogSeries.ID, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
	schema.CatalogBook.Table, schema.CatalogBook.SeriesID, schema.CatalogSeries.ID,
	schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
	schema.CatalogSeries.Table,
)

func scanSeries(row pgx.Row) (*Series, error) {
	s := &Series{}
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.BookCount, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (repository *PostgresRepository) ListSeries(context context.Context) ([]*Series, error) {
	query := selectSeries + fmt.Sprintf(` ORDER BY s.%s ASC`, schema.CatalogSeries.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	var out []*Series
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		out = append(out, s)
	}

	return out, dberr.Wrap(rows.Err(), "list_series")
}

func (repository *PostgresRepository) GetSeries(context context.Context, id int) (*Series, error) {
	query := selectSeries + fmt.Sprintf(` WHERE s.%s = $1`, schema.CatalogSeries.ID)

	s, err := scanSeries(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_series")
	}
	return s, nil
}

func (repository *PostgresRepository) CreateSeries(context context.Context, s *Series) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CatalogSeries.Table, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
		schema.CatalogSeries.ID, schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, s.Name, s.Description).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_series")
}

func (repository *PostgresRepository) UpdateSeries(context context.Context, s *Series) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CatalogSeries.Table, schema.CatalogSeries.Name, schema.CatalogSeries.Description,
		schema.CatalogSeries.UpdatedAt, schema.CatalogSeries.ID,
		schema.CatalogSeries.CreatedAt, schema.CatalogSeries.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, s.ID, s.Name, s.Description).Scan(&s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "update_series")
}

func (repository *PostgresRepository) DeleteSeries(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogSeries.Table, schema.CatalogSeries.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_series")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
