// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package payment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/metrics"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/slice"
)

// UnpaidLister loads unpaid sale views.
type UnpaidLister interface {
	ListUnpaid(context context.Context) ([]sale.View, error)
}

type Service struct {
	sales  UnpaidLister
	repo   Repository
	logger *slog.Logger
}

func NewService(sales UnpaidLister, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		sales:  sales,
		repo:   repo,
		logger: logger,
	}
}

// Groups returns the current unpaid author groups.
func (service *Service) Groups(context context.Context) ([]AuthorGroup, error) {
	views, err := service.sales.ListUnpaid(context)
	if err != nil {
		return nil, err
	}
	return GroupUnpaid(views), nil
}

/*
MarkGroupPaid settles every unpaid sale of the exact author set.

Paying a group twice is not an error: the second call updates nothing and
returns UpdatedCount 0.

Parameters:
  - authorIDs: []int (order and duplicates are irrelevant)

Returns:
  - Result: Number of sales flipped and the amount settled
  - error: ValidationError or Internal
*/
func (service *Service) MarkGroupPaid(context context.Context, authorIDs []int) (Result, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldAuthorIDs, len(authorIDs) == 0, "At least one author is required")
	for _, authorID := range authorIDs {
		if authorID <= 0 {
			validator.Custom(FieldAuthorIDs, true, "Author ids must be positive integers")
			break
		}
	}
	if err := validator.Err(); err != nil {
		return Result{}, err
	}

	canonical := slice.SortedUnique(authorIDs)
	actor := ctxutil.Actor(context)

	result, err := service.repo.MarkGroupPaid(context, canonical, actor)
	if err != nil {
		return Result{}, err
	}

	if result.UpdatedCount == 0 {
		service.logger.Info("group_nothing_to_pay", slog.Any("author_ids", canonical))
		return result, nil
	}

	metrics.ObservePayment(result.UpdatedCount, result.Amount)
	service.logger.Info("group_marked_paid",
		slog.Any("author_ids", canonical),
		slog.Int("updated_count", result.UpdatedCount),
		slog.String("amount", result.Amount.StringFixed(2)),
		slog.String("actor", actor),
	)
	return result, nil
}

// History lists recorded payment batches, newest first.
func (service *Service) History(context context.Context, limit, offset int) ([]*Batch, int, error) {
	return service.repo.ListBatches(context, limit, offset)
}
