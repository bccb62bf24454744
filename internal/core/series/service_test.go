// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/series"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// fakeRepository enforces the unique name constraint in memory.
type fakeRepository struct {
	rows   map[int]*series.Series
	nextID int
}

func (repository *fakeRepository) ListSeries(context.Context) ([]*series.Series, error) {
	var out []*series.Series
	for _, s := range repository.rows {
		out = append(out, s)
	}
	return out, nil
}

func (repository *fakeRepository) GetSeries(_ context.Context, id int) (*series.Series, error) {
	if s, ok := repository.rows[id]; ok {
		return s, nil
	}
	return nil, dberr.ErrNotFound
}

func (repository *fakeRepository) CreateSeries(_ context.Context, s *series.Series) error {
	for _, existing := range repository.rows {
		if existing.Name == s.Name {
			return apperr.Conflict("A record with the same identifier already exists")
		}
	}
	repository.nextID++
	s.ID = repository.nextID
	repository.rows[s.ID] = s
	return nil
}

func (repository *fakeRepository) UpdateSeries(_ context.Context, s *series.Series) error {
	if _, ok := repository.rows[s.ID]; !ok {
		return dberr.ErrNotFound
	}
	repository.rows[s.ID] = s
	return nil
}

func (repository *fakeRepository) DeleteSeries(_ context.Context, id int) error {
	if _, ok := repository.rows[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repository.rows, id)
	return nil
}

/*
TestService_Lifecycle covers create, duplicate names and deletion.
*/
func TestService_Lifecycle(t *testing.T) {
	service := series.NewService(&fakeRepository{rows: map[int]*series.Series{}}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	created, err := service.CreateSeries(ctx, series.Input{Name: "Northern Lights"})
	require.NoError(t, err)

	_, err = service.CreateSeries(ctx, series.Input{Name: " Northern Lights "})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeConflict, appErr.Code)
	assert.Equal(t, "A series with this name already exists", appErr.Message)

	_, err = service.CreateSeries(ctx, series.Input{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	require.NoError(t, service.DeleteSeries(ctx, created.ID))

	_, err = service.GetSeries(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
