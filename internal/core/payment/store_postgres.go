// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/taibuivan/folio/internal/core/royalty"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over ledger.sale and ledger.royaltypayment.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	colSale       = schema.LedgerSale
	colBookAuthor = schema.CatalogBookAuthor
	colPayment    = schema.LedgerRoyaltyPayment
)

// markPaid matches a sale when its book's sorted author id array equals $1.
var markPaid = fmt.Sprintf(`
	UPDATE %s s
	SET %s = TRUE, %s = NOW(), %s = NOW()
	WHERE s.%s = FALSE
	  AND (SELECT array_agg(x.%s ORDER BY x.%s) FROM %s x WHERE x.%s = s.%s) = $1::int[]
	RETURNING s.%s::text`,
	colSale.Table,
	colSale.Paid, colSale.PaidAt, colSale.UpdatedAt,
	colSale.Paid,
	colBookAuthor.AuthorID, colBookAuthor.AuthorID, colBookAuthor.Table, colBookAuthor.BookID, colSale.BookID,
	colSale.AuthorRoyalty,
)

var insertBatch = fmt.Sprintf(`
	INSERT INTO %s (%s, %s, %s, %s, %s)
	VALUES ($1::int[], $2, $3::numeric, $4, NOW())
	RETURNING %s`,
	colPayment.Table, colPayment.AuthorIDs, colPayment.SaleCount, colPayment.Amount, colPayment.PaidBy, colPayment.CreatedAt,
	colPayment.ID,
)

func (repository *PostgresRepository) MarkGroupPaid(context context.Context, authorIDs []int, paidBy string) (Result, error) {
	result := Result{Amount: decimal.Zero}

	err := postgres.InTx(context, repository.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(context, markPaid, authorIDs)
		if err != nil {
			return dberr.Wrap(err, "mark_group_paid")
		}

		for rows.Next() {
			var raw string
			if err := rows.Scan(&raw); err != nil {
				rows.Close()
				return dberr.Wrap(err, "scan_paid_royalty")
			}
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				rows.Close()
				return dberr.Wrap(err, "parse_paid_royalty")
			}
			result.UpdatedCount++
			result.Amount = result.Amount.Add(amount)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "mark_group_paid")
		}

		if result.UpdatedCount == 0 {
			return nil
		}

		result.Amount = royalty.Round(result.Amount)

		var batchID int
		if err := tx.QueryRow(context, insertBatch,
			authorIDs, result.UpdatedCount, result.Amount.StringFixed(2), paidBy,
		).Scan(&batchID); err != nil {
			return dberr.Wrap(err, "insert_payment_batch")
		}
		result.BatchID = &batchID
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (repository *PostgresRepository) ListBatches(context context.Context, limit, offset int) ([]*Batch, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, colPayment.Table)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_payment_batches")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s::text, %s, %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		colPayment.ID, colPayment.AuthorIDs, colPayment.SaleCount, colPayment.Amount, colPayment.PaidBy, colPayment.CreatedAt,
		colPayment.Table,
		colPayment.CreatedAt, colPayment.ID,
	)

	var limitArg any = limit
	if limit <= 0 {
		limitArg = nil
	}

	rows, err := repository.db.Query(context, query, limitArg, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_payment_batches")
	}
	defer rows.Close()

	var batches []*Batch
	for rows.Next() {
		batch := &Batch{}
		var amount string
		if err := rows.Scan(&batch.ID, &batch.AuthorIDs, &batch.SaleCount, &amount, &batch.PaidBy, &batch.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_payment_batch")
		}
		if batch.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, dberr.Wrap(err, "parse_payment_amount")
		}
		batches = append(batches, batch)
	}

	return batches, total, dberr.Wrap(rows.Err(), "list_payment_batches")
}
