// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

type Service struct {
	provider Provider
	cache    *Cache
	logger   *slog.Logger
}

func NewService(provider Provider, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

/*
Lookup resolves bibliographic data for an ISBN.

Cache failures are logged and ignored; only the provider decides the outcome.

Returns:
  - *Record: The provider record
  - error: ValidationError, NotFound or ExternalLookup
*/
func (service *Service) Lookup(context context.Context, rawISBN string) (*Record, error) {
	isbn := book.NormalizeISBN(rawISBN)
	if !book.IsISBN(isbn) {
		return nil, validate.RequiredError("isbn", "ISBN must contain 10 or 13 digits")
	}

	cached, ok, err := service.cache.Get(context, isbn)
	if err != nil {
		service.logger.Warn("metadata_cache_read_failed", slog.String("isbn", isbn), slog.Any("error", err))
	}
	if ok {
		return cached, nil
	}

	record, err := service.provider.Lookup(context, isbn)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, apperr.NotFound("Metadata")
		}
		service.logger.Warn("metadata_lookup_failed", slog.String("isbn", isbn), slog.Any("error", err))
		return nil, apperr.ExternalLookup("Metadata provider is unavailable, please try again later", err)
	}

	if record.Title == "" {
		return nil, apperr.ExternalLookup("Metadata provider returned an incomplete record", nil)
	}

	if err := service.cache.Set(context, record); err != nil {
		service.logger.Warn("metadata_cache_write_failed", slog.String("isbn", isbn), slog.Any("error", err))
	}

	service.logger.Info("metadata_lookup", slog.String("isbn", isbn))
	return record, nil
}
