// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/metrics"
	"github.com/taibuivan/folio/pkg/slice"
)

// BookIndexer builds the ISBN lookup over every known book.
type BookIndexer interface {
	Index(context context.Context) (book.Index, error)
}

// BatchSubmitter writes sales one by one and reports partial failures.
type BatchSubmitter interface {
	SubmitBatch(context context.Context, inputs []sale.Input) sale.BatchReport
}

// Preview is the review payload for pasted text.
type Preview struct {
	Valid     []Row         `json:"valid"`
	Invalid   []InvalidRow  `json:"invalid"`
	Pending   []PendingItem `json:"pending"`
	Unmatched []Row         `json:"unmatched"`
}

type Service struct {
	books  BookIndexer
	sales  BatchSubmitter
	logger *slog.Logger
}

func NewService(books BookIndexer, sales BatchSubmitter, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		sales:  sales,
		logger: logger,
	}
}

// Preview parses text and matches the valid rows against the catalog. Nothing is written.
func (service *Service) Preview(context context.Context, text string) (*Preview, error) {
	parsed := Parse(text)

	index, err := service.books.Index(context)
	if err != nil {
		return nil, err
	}

	submission := Submit(parsed.Valid, index)
	metrics.ObserveImport(len(submission.Pending), len(parsed.Invalid), len(submission.Unmatched))

	service.logger.Info("import_previewed",
		slog.Int("valid", len(parsed.Valid)),
		slog.Int("invalid", len(parsed.Invalid)),
		slog.Int("unmatched", len(submission.Unmatched)),
		slog.String("actor", ctxutil.Actor(context)),
	)

	return &Preview{
		Valid:     parsed.Valid,
		Invalid:   parsed.Invalid,
		Pending:   submission.Pending,
		Unmatched: submission.Unmatched,
	}, nil
}

// Submit writes reviewed items as sales. Royalties are recomputed on write.
func (service *Service) Submit(context context.Context, items []PendingItem) sale.BatchReport {
	report := service.sales.SubmitBatch(context, slice.Map(items, PendingItem.Input))

	service.logger.Info("import_submitted",
		slog.Int("total", report.Total),
		slog.Int("created", report.Created),
		slog.Int("failed", report.Failed),
		slog.String("actor", ctxutil.Actor(context)),
	)
	return report
}
