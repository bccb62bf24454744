// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListSeries(context context.Context) ([]*Series, error) {
	return service.repo.ListSeries(context)
}

func (service *Service) GetSeries(context context.Context, id int) (*Series, error) {
	s, err := service.repo.GetSeries(context, id)
	return s, dberr.NotFound(err, "Series")
}

func (service *Service) CreateSeries(context context.Context, input Input) (*Series, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s := &Series{Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := service.repo.CreateSeries(context, s); err != nil {
		return nil, duplicateName(err)
	}

	service.logger.Info("series_created", slog.Int("series_id", s.ID), slog.String("actor", ctxutil.Actor(context)))
	return s, nil
}

func (service *Service) UpdateSeries(context context.Context, id int, input Input) (*Series, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s := &Series{ID: id, Name: strings.TrimSpace(input.Name), Description: input.Description}
	if err := service.repo.UpdateSeries(context, s); err != nil {
		return nil, dberr.NotFound(duplicateName(err), "Series")
	}

	service.logger.Info("series_updated", slog.Int("series_id", id), slog.String("actor", ctxutil.Actor(context)))
	return s, nil
}

func (service *Service) DeleteSeries(context context.Context, id int) error {
	if err := service.repo.DeleteSeries(context, id); err != nil {
		return dberr.NotFound(err, "Series")
	}

	service.logger.Warn("series_deleted", slog.Int("series_id", id), slog.String("actor", ctxutil.Actor(context)))
	return nil
}

func duplicateName(err error) error {
	if apperr.HasCode(err, apperr.CodeConflict) {
		return apperr.Conflict("A series with this name already exists")
	}
	return err
}

func validateInput(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, 2000)
	}

	return validator.Err()
}
