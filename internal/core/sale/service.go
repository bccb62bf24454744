// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/royalty"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/metrics"
)

// BookGetter resolves the book a sale references.
type BookGetter interface {
	GetBook(context context.Context, id int) (*book.Book, error)
}

// Service implements sale recording, editing and listing.
type Service struct {
	repo   Repository
	books  BookGetter
	logger *slog.Logger
}

func NewService(repo Repository, books BookGetter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// List aggregates every sale.
func (service *Service) List(context context.Context, q Query) (Page, error) {
	views, err := service.repo.ListViews(context, ViewFilter{UnpaidOnly: q.UnpaidOnly})
	if err != nil {
		return Page{}, err
	}
	return Aggregate(views, q), nil
}

// ListForBook aggregates the sales of one book.
func (service *Service) ListForBook(context context.Context, bookID int, q Query) (Page, error) {
	if _, err := service.books.GetBook(context, bookID); err != nil {
		return Page{}, err
	}

	views, err := service.repo.ListViews(context, ViewFilter{BookID: &bookID, UnpaidOnly: q.UnpaidOnly})
	if err != nil {
		return Page{}, err
	}
	return Aggregate(views, q), nil
}

// ListUnpaid returns every unpaid sale, for payment grouping.
func (service *Service) ListUnpaid(context context.Context) ([]View, error) {
	return service.repo.ListViews(context, ViewFilter{UnpaidOnly: true})
}

func (service *Service) GetSale(context context.Context, id int) (*View, error) {
	view, err := service.repo.GetView(context, id)
	return view, dberr.NotFound(err, "Sale")
}

/*
CreateSale validates input and records a new sale.

The royalty is computed from the book's default rate. A supplied
AuthorRoyalty that differs from the computed value is stored as an override.
*/
func (service *Service) CreateSale(context context.Context, input Input) (*View, error) {
	b, err := service.resolveBook(context, input.BookID)
	if err != nil {
		return nil, err
	}
	if err := Validate(input, b); err != nil {
		return nil, err
	}

	period, _ := ParsePeriod(input.Period)

	// Revenue is stored in cents, so the royalty must be computed from the cents value.
	editor, err := royalty.NewEditor(royalty.Round(input.PublisherRevenue), b.RoyaltyRate)
	if err != nil {
		return nil, err
	}
	if input.AuthorRoyalty != nil {
		if err := editor.SetRoyalty(*input.AuthorRoyalty); err != nil {
			return nil, err
		}
	}

	s := &Sale{
		BookID:            b.ID,
		Period:            period,
		Quantity:          input.Quantity,
		PublisherRevenue:  editor.Revenue,
		AuthorRoyalty:     editor.Royalty,
		RoyaltyOverridden: editor.Overridden,
	}

	if err := service.repo.CreateSale(context, s); err != nil {
		return nil, err
	}
	metrics.SalesCreated.Inc()

	service.logger.Info("sale_created",
		slog.Int("sale_id", s.ID),
		slog.Int("book_id", s.BookID),
		slog.String("period", s.Period.String()),
		slog.Bool("royalty_overridden", s.RoyaltyOverridden),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return service.GetSale(context, s.ID)
}

/*
UpdateSale applies an edit to an existing sale.

# Royalty rules

  - Revenue or book changes recompute the royalty unless it is overridden.
  - A royalty that differs from the stored one is a manual edit.
  - RevertOverride recomputes and clears the override.

The paid flag is left untouched.
*/
func (service *Service) UpdateSale(context context.Context, id int, input Input) (*View, error) {
	existing, err := service.repo.GetSale(context, id)
	if err != nil {
		return nil, dberr.NotFound(err, "Sale")
	}

	b, err := service.resolveBook(context, input.BookID)
	if err != nil {
		return nil, err
	}
	if err := Validate(input, b); err != nil {
		return nil, err
	}

	period, _ := ParsePeriod(input.Period)

	editor := royalty.Restore(existing.PublisherRevenue, b.RoyaltyRate, existing.AuthorRoyalty, existing.RoyaltyOverridden)
	if err := editor.SetRevenue(royalty.Round(input.PublisherRevenue)); err != nil {
		return nil, err
	}
	if input.AuthorRoyalty != nil && !input.AuthorRoyalty.Equal(existing.AuthorRoyalty) {
		if err := editor.SetRoyalty(*input.AuthorRoyalty); err != nil {
			return nil, err
		}
	}
	if input.RevertOverride {
		if err := editor.Revert(); err != nil {
			return nil, err
		}
	}

	existing.BookID = b.ID
	existing.Period = period
	existing.Quantity = input.Quantity
	existing.PublisherRevenue = editor.Revenue
	existing.AuthorRoyalty = editor.Royalty
	existing.RoyaltyOverridden = editor.Overridden

	if err := service.repo.UpdateSale(context, existing); err != nil {
		return nil, dberr.NotFound(err, "Sale")
	}

	service.logger.Info("sale_updated",
		slog.Int("sale_id", id),
		slog.Bool("royalty_overridden", existing.RoyaltyOverridden),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return service.GetSale(context, id)
}

// SetPaid toggles the payment status of a single sale.
func (service *Service) SetPaid(context context.Context, id int, paid bool) (*View, error) {
	if err := service.repo.SetPaid(context, id, paid); err != nil {
		return nil, dberr.NotFound(err, "Sale")
	}

	service.logger.Info("sale_paid_changed", slog.Int("sale_id", id), slog.Bool("paid", paid), slog.String("actor", ctxutil.Actor(context)))
	return service.GetSale(context, id)
}

func (service *Service) DeleteSale(context context.Context, id int) error {
	if err := service.repo.DeleteSale(context, id); err != nil {
		return dberr.NotFound(err, "Sale")
	}

	service.logger.Warn("sale_deleted", slog.Int("sale_id", id), slog.String("actor", ctxutil.Actor(context)))
	return nil
}

/*
SubmitBatch creates each item independently.

A failing item is reported and skipped; earlier and later items are still
written. Only internal failures are logged as errors.
*/
func (service *Service) SubmitBatch(context context.Context, inputs []Input) BatchReport {
	report := BatchReport{Total: len(inputs), CreatedIDs: []int{}, Failures: []BatchFailure{}}

	for index, input := range inputs {
		created, err := service.CreateSale(context, input)
		if err != nil {
			failure := BatchFailure{Index: index, Message: err.Error()}
			if appErr := apperr.As(err); appErr != nil {
				failure.Details = appErr.Details
				if appErr.Code == apperr.CodeInternal {
					service.logger.Error("sale_batch_item_failed", slog.Int("index", index), slog.Any("error", appErr.Cause))
				}
			}
			report.Failures = append(report.Failures, failure)
			report.Failed++
			continue
		}

		report.Created++
		report.CreatedIDs = append(report.CreatedIDs, created.ID)
	}

	service.logger.Info("sale_batch_submitted",
		slog.Int("total", report.Total),
		slog.Int("created", report.Created),
		slog.Int("failed", report.Failed),
		slog.String("actor", ctxutil.Actor(context)),
	)
	return report
}

// resolveBook loads the referenced book, mapping a missing one to nil so
// [Validate] reports it as a field error.
func (service *Service) resolveBook(context context.Context, bookID int) (*book.Book, error) {
	if bookID <= 0 {
		return nil, nil
	}

	b, err := service.books.GetBook(context, bookID)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, nil
	}
	return b, err
}
