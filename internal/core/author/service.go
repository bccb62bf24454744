// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

const (
	maxNameLen = 200
	maxBioLen  = 5000
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id int) (*Author, error) {
	a, err := service.repo.GetAuthor(context, id)
	return a, dberr.NotFound(err, "Author")
}

func (service *Service) CreateAuthor(context context.Context, input Input) (*Author, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	a := &Author{Name: strings.TrimSpace(input.Name), Bio: input.Bio}
	if err := service.repo.CreateAuthor(context, a); err != nil {
		return nil, err
	}

	service.logger.Info("author_created", slog.Int("author_id", a.ID), slog.String("actor", ctxutil.Actor(context)))
	return a, nil
}

func (service *Service) UpdateAuthor(context context.Context, id int, input Input) (*Author, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	a := &Author{ID: id, Name: strings.TrimSpace(input.Name), Bio: input.Bio}
	if err := service.repo.UpdateAuthor(context, a); err != nil {
		return nil, dberr.NotFound(err, "Author")
	}

	service.logger.Info("author_updated", slog.Int("author_id", a.ID), slog.String("actor", ctxutil.Actor(context)))
	return a, nil
}

// DeleteAuthor removes an author that is not credited on any book.
func (service *Service) DeleteAuthor(context context.Context, id int) error {
	err := service.repo.DeleteAuthor(context, id)
	if apperr.HasCode(err, apperr.CodeConflict) {
		return apperr.Conflict("Author is credited on one or more books and cannot be deleted")
	}
	if err != nil {
		return dberr.NotFound(err, "Author")
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id), slog.String("actor", ctxutil.Actor(context)))
	return nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLen)
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, maxBioLen)
	}

	return validator.Err()
}
